package terminal

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/cart-report/pkg/runtime/app"
	"github.com/de-tools/cart-report/pkg/runtime/terminal/commands"
	"github.com/de-tools/cart-report/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	rootCmd  *cobra.Command
	logger   zerolog.Logger
	open     commands.Opener
	appOpts  app.Options
	verbose  bool
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Logs receives structured logs. Defaults to stderr so tables on Output stay clean.
	Logs io.Writer
	// Open overrides how the application is built from the global flags.
	Open commands.Opener
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
		logger:   zerolog.New(opts.Logs).With().Timestamp().Logger(),
		open:     opts.Open,
	}
	if cli.open == nil {
		cli.open = func(ctx context.Context) (*app.App, error) {
			return app.Load(ctx, cli.appOpts)
		}
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteArgs runs the CLI with explicit arguments instead of os.Args.
func (cli *CLI) ExecuteArgs(args []string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cart-report",
		Short:         "Shopping cart report",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.InfoLevel
			if cli.verbose {
				level = zerolog.DebugLevel
			}
			logger := cli.logger.Level(level)

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			cmd.SetContext(logger.WithContext(parent))
		},
	}

	cmd.PersistentFlags().StringVarP(&cli.appOpts.ConfigPath, "config", "c", "", "Path to a settings yaml file")
	cmd.PersistentFlags().StringVarP(&cli.appOpts.Profile, "profile", "p", "", "Connection profile name")
	cmd.PersistentFlags().StringVar(&cli.appOpts.ProfilesPath, "profiles", "",
		"Path to the connection profiles file (default is $HOME/.cartreportcfg)")
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Log executed queries")

	cmd.AddCommand(commands.NewSearchCmd(cli.open, cli.reporter))
	cmd.AddCommand(commands.NewTotalsCmd(cli.open, cli.reporter))
	cmd.AddCommand(commands.NewMigrateCmd(cli.open))

	return cmd
}
