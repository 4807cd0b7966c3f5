package cmd

import (
	"fmt"
	"sort"
	"strings"

	"tvm-engine/internal/finance"

	"github.com/spf13/cobra"
)

type tvmInputs struct {
	rate, periods, pv, pmt, fv float64
	due                        bool
}

var tvmVariables = map[string]func(in tvmInputs) (float64, error){
	"present-value": func(in tvmInputs) (float64, error) {
		return finance.PresentValue(in.rate, in.periods, in.pmt, in.fv, in.due), nil
	},
	"future-value": func(in tvmInputs) (float64, error) {
		return finance.FutureValue(in.rate, in.periods, in.pv, in.pmt, in.due), nil
	},
	"payment": func(in tvmInputs) (float64, error) {
		return finance.Payment(in.rate, in.periods, in.pv, in.fv, in.due)
	},
	"periods": func(in tvmInputs) (float64, error) {
		return finance.Periods(in.rate, in.pv, in.pmt, in.fv, in.due)
	},
	"rate": func(in tvmInputs) (float64, error) {
		return finance.Rate(in.periods, in.pv, in.pmt, in.fv, in.due)
	},
}

func tvmVariableNames() []string {
	names := make([]string, 0, len(tvmVariables))
	for name := range tvmVariables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newTVMCmd(opts *options) *cobra.Command {
	var in tvmInputs

	c := &cobra.Command{
		Use:       "tvm <variable>",
		Short:     "Solve one TVM equation",
		Long:      "Solves for one of: " + strings.Join(tvmVariableNames(), ", ") + ".\nMoney paid out is negative, money received positive.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: tvmVariableNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := tvmVariables[args[0]](in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %.6f\n", args[0], v)
			return nil
		},
	}

	c.Flags().Float64Var(&in.rate, "rate", 0, "Rate per period (0.05 = 5%)")
	c.Flags().Float64Var(&in.periods, "periods", 0, "Number of periods")
	c.Flags().Float64Var(&in.pv, "pv", 0, "Present value")
	c.Flags().Float64Var(&in.pmt, "pmt", 0, "Payment per period")
	c.Flags().Float64Var(&in.fv, "fv", 0, "Future value")
	c.Flags().BoolVar(&in.due, "due", false, "Payments at the start of each period")
	return c
}
