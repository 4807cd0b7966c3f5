package cmd

import (
	"fmt"

	"tvm-engine/internal/forecast"

	"github.com/spf13/cobra"
)

func newForecastCmd(opts *options) *cobra.Command {
	var (
		model              string
		series             []float64
		periods, season    int
		alpha, beta, gamma float64
	)

	c := &cobra.Command{
		Use:   "forecast",
		Short: "Exponential smoothing forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out []float64
				err error
			)
			switch model {
			case "single":
				out, err = forecast.ExponentialSmoothing(series, periods, alpha)
			case "double":
				out, err = forecast.DoubleExponentialSmoothing(series, periods, alpha, beta)
			case "triple":
				out, err = forecast.TripleExponentialSmoothing(series, periods, season, alpha, beta, gamma)
			default:
				return fmt.Errorf("unknown model %q (want single, double or triple)", model)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, v := range out {
				kind := "fit"
				if i >= len(series) {
					kind = "forecast"
				}
				fmt.Fprintf(w, "%4d %-8s %12.4f\n", i, kind, v)
			}
			return nil
		},
	}

	c.Flags().StringVar(&model, "model", "single", "single, double or triple")
	c.Flags().Float64SliceVar(&series, "series", nil, "Comma-separated observations")
	c.Flags().IntVar(&periods, "periods", 1, "Periods to forecast")
	c.Flags().IntVar(&season, "season", 12, "Season length (triple only)")
	c.Flags().Float64Var(&alpha, "alpha", 0.5, "Level smoothing constant")
	c.Flags().Float64Var(&beta, "beta", 0.5, "Trend smoothing constant")
	c.Flags().Float64Var(&gamma, "gamma", 0.5, "Seasonal smoothing constant")
	_ = c.MarkFlagRequired("series")
	return c
}
