package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"tvm-engine/internal/analysis"
	"tvm-engine/internal/depreciation"
	"tvm-engine/internal/finance"
)

// Demo:
// - Analyze an even annuity (NPV, IRR, MIRR, payback)
// - Show the TVM closed forms on a mortgage
// - Build a double-declining schedule and show its present value
func main() {
	rate := flag.Float64("rate", 0.08, "Discount rate per period")
	outCSV := flag.String("out", "", "Optional path to write the schedule CSV (e.g. results/ddb.csv)")
	flag.Parse()

	flows := []float64{-1000, 300, 300, 300, 300}
	series, err := finance.NewCashFlowSeries(flows, *rate)
	if err != nil {
		panic(err)
	}

	m := analysis.Evaluate("annuity", series)
	fmt.Printf("Cash flows %v at %.2f%%\n", flows, *rate*100)
	fmt.Printf("  NPV                %10.4f\n", m.NPV)
	fmt.Printf("  IRR                %10s\n", fmtOptional(m.IRR))
	fmt.Printf("  MIRR               %10s\n", fmtOptional(m.MIRR))
	fmt.Printf("  payback            %10s\n", fmtOptional(m.Payback))
	fmt.Printf("  discounted payback %10s\n", fmtOptional(m.DiscountedPayback))
	if err := m.Errors[analysis.MetricDiscountedPayback]; errors.Is(err, finance.ErrNoPayback) {
		fmt.Println("  (discounted inflows never recover the investment)")
	}

	series.AddCashFlow(300)
	fmt.Printf("\nAfter appending 300: NPV=%.4f", series.NetPresentValue())
	if p, err := series.DiscountedPayback(); err == nil {
		fmt.Printf(" discounted payback=%.4f", p)
	}
	fmt.Println()

	pmt, err := finance.Payment(0.06/12, 360, 200000, 0, false)
	if err != nil {
		panic(err)
	}
	n, err := finance.Periods(0.06/12, 200000, pmt, 0, false)
	if err != nil {
		panic(err)
	}
	r, err := finance.Rate(360, 200000, pmt, 0, false)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\nMortgage 200000 over 30y at 6%%: payment=%.2f periods=%.1f rate=%.6f/month\n", pmt, n, r)

	asset := depreciation.Asset{StartingValue: 1000, SalvageValue: 200, UsefulLifeYears: 10, StartMonth: 4}
	ddb, err := depreciation.NewDoubleDeclining(depreciation.DefaultDecliningFactor)
	if err != nil {
		panic(err)
	}
	schedule, err := depreciation.New().Run(asset, ddb)
	if err != nil {
		panic(err)
	}

	fmt.Printf("\nDouble-declining: value=%.0f salvage=%.0f life=%dy start month=%d\n",
		asset.StartingValue, asset.SalvageValue, asset.UsefulLifeYears, asset.StartMonth)
	for _, p := range schedule.Periods {
		fmt.Printf("  year %2d  expense=%8.2f  accumulated=%8.2f  book=%8.2f\n",
			p.Index, p.DepreciationExpense, p.AccumulatedDepreciation, p.BookValue)
	}
	fmt.Printf("  present value of expenses at %.2f%%: %.2f\n", *rate*100, schedule.PresentValue(*rate))

	if *outCSV != "" {
		if err := depreciation.WriteScheduleCSV(*outCSV, schedule); err != nil {
			fmt.Fprintf(os.Stderr, "write csv: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}
}

func fmtOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}
