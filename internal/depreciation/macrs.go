package depreciation

import (
	"fmt"
	"sort"

	"tvm-engine/internal/finance"
)

// ErrUnsupportedLife is returned for recovery periods without a MACRS table.
var ErrUnsupportedLife = fmt.Errorf("%w: unsupported MACRS recovery period", finance.ErrDomain)

// macrsTables holds IRS Pub. 946 table A-1 (half-year convention), as
// fractions of the depreciable base per table year.
var macrsTables = map[int][]float64{
	3:  {.3333, .4445, .1481, .0741},
	5:  {.2, .32, .192, .1152, .1152, .0576},
	7:  {.1429, .2449, .1749, .1249, .0893, .0892, .0893, .0446},
	10: {.1, .18, .144, .1152, .0922, .0737, .0655, .0655, .0656, .0655, .0328},
	15: {.05, .095, .0855, .077, .0693, .0623, .059, .059, .0591, .059, .0591, .059, .0591, .059, .0591, .0295},
	20: {.0375, .07219, .06677, .06177, .05713, .05285, .04888, .04522, .04462, .04461, .04462, .04461, .04462, .04461, .04462, .04461, .04462, .04461, .04462, .04461, .02231},
}

// MacrsLives returns the supported recovery periods in ascending order.
func MacrsLives() []int {
	lives := make([]int, 0, len(macrsTables))
	for life := range macrsTables {
		lives = append(lives, life)
	}
	sort.Ints(lives)
	return lives
}

// Macrs follows a precomputed plan: each table year's amount is spread
// monthly from StartMonth, so a mid-year start spills into the next
// fiscal year.
type Macrs struct {
	plan []float64
}

func NewMacrs(a Asset) (*Macrs, error) {
	table, ok := macrsTables[a.UsefulLifeYears]
	if !ok {
		return nil, fmt.Errorf("NewMacrs: %d years (want one of %v): %w", a.UsefulLifeYears, MacrsLives(), ErrUnsupportedLife)
	}

	years := len(table)
	if a.StartMonth > 0 {
		years++
	}
	plan := make([]float64, years)
	base := a.DepreciableBase()
	for i, pct := range table {
		monthly := base * pct / 12
		for m := 0; m < 12; m++ {
			plan[i+(a.StartMonth+m)/12] += monthly
		}
	}
	return &Macrs{plan: plan}, nil
}

func (m *Macrs) Name() string { return MethodMacrs }

func (m *Macrs) Periods(Asset) int { return len(m.plan) }

func (m *Macrs) Expense(ctx Context) float64 {
	if ctx.Index < 0 || ctx.Index >= len(m.plan) {
		return 0
	}
	return m.plan[ctx.Index]
}
