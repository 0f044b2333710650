package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/cart-report/pkg/store/migrations"
)

type MigrateCmd struct {
	down bool
	open Opener
}

func NewMigrateCmd(open Opener) *cobra.Command {
	mc := &MigrateCmd{open: open}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the cart and user tables on an empty PostgreSQL database",
		RunE:  mc.run,
	}

	cmd.Flags().BoolVar(&mc.down, "down", false, "Drop the tables instead")

	return cmd
}

func (mc *MigrateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	logger := zerolog.Ctx(ctx)

	a, err := mc.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if mc.down {
		if err := migrations.Down(a.DB.DB, a.Profile); err != nil {
			return err
		}
		logger.Info().Str("profile", a.Profile.String()).Msg("migrations reverted")
		return nil
	}

	if err := migrations.Up(a.DB.DB, a.Profile); err != nil {
		return err
	}
	logger.Info().Str("profile", a.Profile.String()).Msg("migrations applied")
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema for %s is up to date\n", a.Profile.Name)
	return err
}
