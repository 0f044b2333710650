package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/cart-report/pkg/runtime/terminal/export"
)

type TotalsCmd struct {
	filters filterFlags
	open    Opener
	report  *export.Reporter
}

func NewTotalsCmd(open Opener, reporter *export.Reporter) *cobra.Command {
	tc := &TotalsCmd{open: open, report: reporter}
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Sum payable amounts per currency for the carts matching the filters",
		RunE:  tc.run,
	}

	tc.filters.register(cmd)

	return cmd
}

func (tc *TotalsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	a, err := tc.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	totals, err := a.Report.Totals(ctx, tc.filters.values())
	if err != nil {
		return fmt.Errorf("failed to sum payable amounts: %w", err)
	}

	return tc.report.HandleTotals(totals, a.Translator)
}
