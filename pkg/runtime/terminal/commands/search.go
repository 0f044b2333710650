package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/runtime/terminal/export"
)

type SearchCmd struct {
	filters filterFlags
	sort    string
	dir     string
	page    int
	open    Opener
	report  *export.Reporter
}

func NewSearchCmd(open Opener, reporter *export.Reporter) *cobra.Command {
	sc := &SearchCmd{open: open, report: reporter}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List carts matching the filters, one page at a time",
		RunE:  sc.run,
	}

	sc.filters.register(cmd)
	cmd.Flags().StringVar(&sc.sort, "sort", string(domain.SortByCheckoutAt), "Sort column: id, coupon_code, payable, status, checkout_at")
	cmd.Flags().StringVar(&sc.dir, "dir", string(domain.SortDesc), "Sort direction: asc or desc")
	cmd.Flags().IntVar(&sc.page, "page", 0, "Page number, starting at 0")

	return cmd
}

func (sc *SearchCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	a, err := sc.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	values := sc.filters.values()
	values[domain.ParamSort] = sc.sort
	values[domain.ParamDir] = sc.dir
	values[domain.ParamPage] = strconv.Itoa(sc.page)

	result, err := a.Report.Search(ctx, values)
	if err != nil {
		return fmt.Errorf("failed to search carts: %w", err)
	}

	return sc.report.HandleSearch(result, a.Translator)
}
