package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/cart-report/pkg/models/domain"
)

// filterFlags are the report filters shared by search and totals.
type filterFlags struct {
	id         string
	user       string
	couponCode string
	status     string
	from       string
	to         string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "id", "", "Cart id")
	cmd.Flags().StringVar(&f.user, "user", "", "Buyer user id")
	cmd.Flags().StringVar(&f.couponCode, "coupon", "", "Coupon code (exact match)")
	cmd.Flags().StringVar(&f.status, "status", "", "Cart status: pending, checkout, delivered, canceled or its code")
	cmd.Flags().StringVar(&f.from, "from", "", "First checkout day (YYYY-MM-DD), delivered carts only")
	cmd.Flags().StringVar(&f.to, "to", "", "Last checkout day (YYYY-MM-DD), delivered carts only")
}

func (f *filterFlags) values() map[string]string {
	return map[string]string{
		domain.ParamID:         f.id,
		domain.ParamUser:       f.user,
		domain.ParamCouponCode: f.couponCode,
		domain.ParamStatus:     f.status,
		domain.ParamFrom:       f.from,
		domain.ParamTo:         f.to,
	}
}
