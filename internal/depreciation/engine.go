package depreciation

import (
	"fmt"
	"math"

	"tvm-engine/internal/finance"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run builds the year-by-year schedule of asset under method.
func (e *Engine) Run(asset Asset, method Method) (*Schedule, error) {
	if method == nil {
		return nil, fmt.Errorf("method is nil")
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}

	n := method.Periods(asset)
	if n <= 0 {
		return nil, fmt.Errorf("method %s yields no periods", method.Name())
	}

	periods := make([]Period, 0, n)
	book := asset.StartingValue
	acc := 0.0

	for idx := 0; idx < n; idx++ {
		expense := method.Expense(Context{
			Index:       idx,
			Asset:       asset,
			BookValue:   book,
			Accumulated: acc,
		})
		if math.IsNaN(expense) || math.IsInf(expense, 0) {
			return nil, fmt.Errorf("year %d: non-finite expense from %s: %w", idx, method.Name(), finance.ErrDomain)
		}

		// Book value is floored at salvage.
		expense = math.Max(0, math.Min(expense, book-asset.SalvageValue))
		acc += expense
		book -= expense

		periods = append(periods, Period{
			Index:                   idx,
			DepreciationExpense:     expense,
			AccumulatedDepreciation: acc,
			BookValue:               book,
		})
	}

	return &Schedule{
		Method:  method.Name(),
		Asset:   asset,
		Periods: periods,
	}, nil
}
