package depreciation

import (
	"fmt"

	"tvm-engine/internal/finance"
)

// Period is one fiscal year of a schedule.
type Period struct {
	Index                   int     `json:"index"`
	DepreciationExpense     float64 `json:"depreciation_expense"`
	AccumulatedDepreciation float64 `json:"accumulated_depreciation"`
	BookValue               float64 `json:"book_value"`
}

type Schedule struct {
	Method  string
	Asset   Asset
	Periods []Period
}

func (s *Schedule) period(index int) (Period, error) {
	if index < 0 || index >= len(s.Periods) {
		return Period{}, fmt.Errorf("schedule index %d of %d: %w", index, len(s.Periods), finance.ErrIndexOutOfRange)
	}
	return s.Periods[index], nil
}

// DepreciationExpense returns the expense taken in fiscal year index.
func (s *Schedule) DepreciationExpense(index int) (float64, error) {
	p, err := s.period(index)
	return p.DepreciationExpense, err
}

// AccumulatedDepreciation returns the total taken through fiscal year index.
func (s *Schedule) AccumulatedDepreciation(index int) (float64, error) {
	p, err := s.period(index)
	return p.AccumulatedDepreciation, err
}

// Total is the depreciation taken over the whole schedule.
func (s *Schedule) Total() float64 {
	if len(s.Periods) == 0 {
		return 0
	}
	return s.Periods[len(s.Periods)-1].AccumulatedDepreciation
}

// PresentValue discounts each year's expense to time zero, treating the
// expense of year i as received at the end of period i+1.
func (s *Schedule) PresentValue(rate float64) float64 {
	pv := 0.0
	for _, p := range s.Periods {
		pv += -finance.PresentValue(rate, float64(p.Index+1), 0, p.DepreciationExpense, false)
	}
	return pv
}
