package cmd

import (
	"fmt"

	"tvm-engine/internal/analysis"
	"tvm-engine/internal/data"

	"github.com/spf13/cobra"
)

func newRankCmd(opts *options) *cobra.Command {
	var (
		file string
		rate float64
	)

	c := &cobra.Command{
		Use:   "rank",
		Short: "Rank the projects of a portfolio file by NPV",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := data.LoadPortfolio(file)
			if err != nil {
				return err
			}
			r := p.RateOr(opts.cfg.Finance.DiscountRate)
			if cmd.Flags().Changed("rate") {
				r = rate
			}

			ranked, err := analysis.RankByNPV(p.Projects, r, opts.cfg.Finance.Solver.ToSolverParams())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-4s %-20s %-14s %-10s %-10s %-10s\n", "rank", "project", "npv", "irr", "mirr", "payback")
			for _, m := range ranked {
				fmt.Fprintf(out, "%-4d %-20s %-14.2f %-10s %-10s %-10s\n",
					m.Rank,
					m.Name,
					m.NPV,
					fmtOptional(m.IRR, "%.4f"),
					fmtOptional(m.MIRR, "%.4f"),
					fmtOptional(m.Payback, "%.2f"),
				)
			}
			return nil
		},
	}

	c.Flags().StringVar(&file, "file", "", "Portfolio file (.json or .yaml)")
	c.Flags().Float64Var(&rate, "rate", 0, "Discount rate per period (default from file, then config)")
	_ = c.MarkFlagRequired("file")
	return c
}
