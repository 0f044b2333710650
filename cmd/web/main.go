package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/cart-report/pkg/runtime/app"
	"github.com/de-tools/cart-report/pkg/server"
)

var opts app.Options

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the cart report API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a settings yaml file")
	rootCmd.Flags().StringVarP(&opts.Profile, "profile", "p", "", "Connection profile name")
	rootCmd.Flags().StringVar(&opts.ProfilesPath, "profiles", "",
		"Path to the connection profiles file (default is $HOME/.cartreportcfg)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	a, err := app.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to initialize report: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	logger.Info().Msgf("Profile `%s` loaded from `%s`.", a.Profile.Name, a.Settings.Store.ProfilesPath)

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(a.Settings.Server.Host, a.Settings.Server.Port),
		Dependencies: server.Dependencies{
			Report:     a.Report,
			Identities: a.Identities,
			Translator: a.Translator,
			Logger:     logger,
		},
	})

	return api.Start()
}
