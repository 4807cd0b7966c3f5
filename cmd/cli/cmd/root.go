package cmd

import (
	"fmt"

	"tvm-engine/internal/config"

	"github.com/spf13/cobra"
)

// options holds the flags shared by every subcommand.
type options struct {
	cfgFile string
	cfg     *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cli",
		Short: "Time-value-of-money calculator",
		Long: `Solves TVM equations, analyzes and ranks cash-flow series, and builds
depreciation schedules, smoothing forecasts and bond prices.

Examples:
  cli tvm payment --rate 0.005 --periods 360 --pv 200000
  cli analyze --flows=-1000,300,300,300,300 --rate 0.08
  cli rank --file projects.json
  cli depreciate --method double-declining --value 1000 --salvage 200 --life 10 --start-month 4`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Config file (.yaml or .toml)")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newRankCmd(opts),
		newTVMCmd(opts),
		newDepreciateCmd(opts),
		newForecastCmd(opts),
		newBondCmd(opts),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

// fmtOptional renders a metric that may be missing.
func fmtOptional(v *float64, format string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf(format, *v)
}
