package depreciation

import (
	"fmt"

	"tvm-engine/internal/finance"
)

// DefaultDecliningFactor is the 200% double-declining multiple.
const DefaultDecliningFactor = 2.0

// DoubleDeclining depreciates a fixed share of the remaining book value
// each year: Factor/UsefulLifeYears, prorated by month in the first year.
type DoubleDeclining struct {
	Factor float64
}

func NewDoubleDeclining(factor float64) (*DoubleDeclining, error) {
	if factor == 0 {
		factor = DefaultDecliningFactor
	}
	if factor < 0 {
		return nil, fmt.Errorf("declining factor must be > 0, got %g: %w", factor, finance.ErrDomain)
	}
	return &DoubleDeclining{Factor: factor}, nil
}

func (d *DoubleDeclining) Name() string { return MethodDoubleDeclining }

func (d *DoubleDeclining) Periods(a Asset) int { return a.fiscalYears() }

func (d *DoubleDeclining) Expense(ctx Context) float64 {
	rate := d.Factor / float64(ctx.Asset.UsefulLifeYears)
	expense := ctx.BookValue * rate
	if ctx.Index == 0 {
		expense *= ctx.Asset.firstYearFraction()
	}
	return expense
}
