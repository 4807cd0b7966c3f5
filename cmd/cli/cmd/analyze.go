package cmd

import (
	"fmt"
	"io"
	"sort"

	"tvm-engine/internal/analysis"
	"tvm-engine/internal/data"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		flows []float64
		file  string
		name  string
		save  string
		rate  float64
	)

	c := &cobra.Command{
		Use:   "analyze",
		Short: "NPV, IRR, MIRR and payback of a cash-flow series",
		Long: `Analyzes one series given with --flows, or every project of a
portfolio file given with --file. --save writes the analyzed projects and rate as a
portfolio file that rank and analyze --file can read back.

Examples:
  cli analyze --flows=-1000,300,300,300,300
  cli analyze --flows=-500,200,200,200 --name pump --save results/pump.json
  cli analyze --file projects.json --rate 0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := []analysis.Project{{Name: name, Flows: flows}}
			r := opts.cfg.Finance.DiscountRate

			switch {
			case file != "":
				p, err := data.LoadPortfolio(file)
				if err != nil {
					return err
				}
				projects = p.Projects
				r = p.RateOr(r)
			case len(flows) == 0:
				return fmt.Errorf("either --flows or --file is required")
			}
			if cmd.Flags().Changed("rate") {
				r = rate
			}

			out := cmd.OutOrStdout()
			for i, pr := range projects {
				m, err := analysis.EvaluateFlows(pr, r, opts.cfg.Finance.Solver.ToSolverParams())
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				printMetrics(out, m)
			}

			if save != "" {
				if err := data.SavePortfolio(&data.Portfolio{Rate: &r, Projects: projects}, save); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nWrote portfolio: %s\n", save)
			}
			return nil
		},
	}

	c.Flags().Float64SliceVar(&flows, "flows", nil, "Comma-separated cash flows, time zero first")
	c.Flags().StringVar(&file, "file", "", "Portfolio file (.json or .yaml)")
	c.Flags().Float64Var(&rate, "rate", 0, "Discount rate per period (default from config)")
	c.Flags().StringVar(&name, "name", "series", "Project name for --flows")
	c.Flags().StringVar(&save, "save", "", "Write the projects and rate to a portfolio file (JSON)")
	return c
}

func printMetrics(w io.Writer, m analysis.ProjectMetrics) {
	fmt.Fprintf(w, "%s (%d flows at %.4f)\n", m.Name, m.Count, m.Rate)
	fmt.Fprintf(w, "  net cash flow       %14.2f\n", m.NetCashFlow)
	fmt.Fprintf(w, "  npv                 %14.4f\n", m.NPV)
	fmt.Fprintf(w, "  irr                 %14s\n", fmtOptional(m.IRR, "%.6f"))
	fmt.Fprintf(w, "  mirr                %14s\n", fmtOptional(m.MIRR, "%.6f"))
	fmt.Fprintf(w, "  payback             %14s\n", fmtOptional(m.Payback, "%.4f"))
	fmt.Fprintf(w, "  discounted payback  %14s\n", fmtOptional(m.DiscountedPayback, "%.4f"))

	names := make([]string, 0, len(m.Errors))
	for name := range m.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  ! %s: %v\n", name, m.Errors[name])
	}
}
