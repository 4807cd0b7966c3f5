package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"tvm-engine/internal/depreciation"

	"github.com/spf13/cobra"
)

func newDepreciateCmd(opts *options) *cobra.Command {
	var (
		method       string
		asset        depreciation.Asset
		factor       float64
		discountRate float64
		outPath      string
	)

	c := &cobra.Command{
		Use:   "depreciate",
		Short: "Build a depreciation schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if factor == 0 {
				factor = opts.cfg.Finance.DecliningFactor
			}
			m, err := depreciation.NewMethod(method, asset, depreciation.MethodParams{Factor: factor})
			if err != nil {
				return err
			}
			schedule, err := depreciation.New().Run(asset, m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := depreciation.EncodeScheduleCSV(out, schedule); err != nil {
				return err
			}
			if cmd.Flags().Changed("discount-rate") {
				fmt.Fprintf(out, "present value at %.4f: %.2f\n", discountRate, schedule.PresentValue(discountRate))
			}

			if outPath != "" {
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					return err
				}
				if err := depreciation.WriteScheduleCSV(outPath, schedule); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %d rows to %s\n", len(schedule.Periods), outPath)
			}
			return nil
		},
	}

	c.Flags().StringVar(&method, "method", depreciation.MethodDoubleDeclining, "double-declining, macrs or straight-line")
	c.Flags().Float64Var(&asset.StartingValue, "value", 0, "Starting value")
	c.Flags().Float64Var(&asset.SalvageValue, "salvage", 0, "Salvage value")
	c.Flags().IntVar(&asset.UsefulLifeYears, "life", 0, "Useful life in years")
	c.Flags().IntVar(&asset.StartMonth, "start-month", 0, "Month of year 0 the asset enters service (0-11)")
	c.Flags().Float64Var(&factor, "factor", 0, "Declining-balance factor (default from config)")
	c.Flags().Float64Var(&discountRate, "discount-rate", 0, "Also report the present value of the schedule")
	c.Flags().StringVar(&outPath, "out", "", "Optional CSV output path")
	_ = c.MarkFlagRequired("value")
	_ = c.MarkFlagRequired("life")
	return c
}
