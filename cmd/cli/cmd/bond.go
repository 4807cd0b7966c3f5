package cmd

import (
	"fmt"
	"time"

	"tvm-engine/internal/bond"

	"github.com/spf13/cobra"
)

func newBondCmd(opts *options) *cobra.Command {
	var (
		settle, maturity string
		couponRate, par  float64
		freq             int
		yield, price     float64
	)

	c := &cobra.Command{
		Use:   "bond",
		Short: "Price a bond from its yield, or solve its yield from a price",
		Long: `Exactly one of --yield or --price must be given.

Examples:
  cli bond --settle 2020-01-15 --maturity 2030-01-15 --yield 0.06
  cli bond --settle 2020-01-15 --maturity 2030-01-15 --coupon 4 --price 97.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := time.Parse("2006-01-02", settle)
			if err != nil {
				return fmt.Errorf("--settle must be YYYY-MM-DD")
			}
			m, err := time.Parse("2006-01-02", maturity)
			if err != nil {
				return fmt.Errorf("--maturity must be YYYY-MM-DD")
			}
			b := bond.New(s, m)
			b.CouponRate, b.CouponFrequency, b.ParValue = couponRate, freq, par

			haveYield, havePrice := cmd.Flags().Changed("yield"), cmd.Flags().Changed("price")
			switch {
			case haveYield == havePrice:
				return fmt.Errorf("exactly one of --yield or --price is required")
			case haveYield:
				price, err = b.Price(yield)
			default:
				yield, err = b.YieldToMaturity(price)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "periods=%d coupon=%.4f price=%.4f yield=%.6f\n",
				b.Periods(), b.Coupon(), price, yield)
			return nil
		},
	}

	c.Flags().StringVar(&settle, "settle", "", "Settlement date (YYYY-MM-DD)")
	c.Flags().StringVar(&maturity, "maturity", "", "Maturity date (YYYY-MM-DD)")
	c.Flags().Float64Var(&couponRate, "coupon", bond.DefaultCouponRate, "Annual coupon, percent of par")
	c.Flags().IntVar(&freq, "freq", bond.DefaultCouponFrequency, "Coupons per year")
	c.Flags().Float64Var(&par, "par", bond.DefaultParValue, "Par value")
	c.Flags().Float64Var(&yield, "yield", 0, "Annual yield (0.06 = 6%)")
	c.Flags().Float64Var(&price, "price", 0, "Price")
	_ = c.MarkFlagRequired("settle")
	_ = c.MarkFlagRequired("maturity")
	return c
}
