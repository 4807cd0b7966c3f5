package depreciation

import (
	"fmt"

	"tvm-engine/internal/finance"
)

// Asset defines what is being depreciated.
// Units:
// - StartingValue, SalvageValue: currency
// - UsefulLifeYears: whole years
// - StartMonth: 0-based month (0..11) of fiscal year 0 in which the asset
//   enters service; 0 means a full first year
type Asset struct {
	StartingValue   float64
	SalvageValue    float64
	UsefulLifeYears int
	StartMonth      int
}

// DepreciableBase is the amount written off over the asset's life.
func (a Asset) DepreciableBase() float64 {
	return a.StartingValue - a.SalvageValue
}

// firstYearFraction is the share of fiscal year 0 the asset is in service.
func (a Asset) firstYearFraction() float64 {
	return float64(12-a.StartMonth) / 12
}

// fiscalYears is the number of fiscal years touched by a life starting
// in StartMonth.
func (a Asset) fiscalYears() int {
	if a.StartMonth > 0 {
		return a.UsefulLifeYears + 1
	}
	return a.UsefulLifeYears
}

// Validate rejects assets no schedule can be built for. Errors wrap
// finance.ErrDomain.
func (a Asset) Validate() error {
	switch {
	case a.StartingValue <= 0:
		return fmt.Errorf("StartingValue must be > 0: %w", finance.ErrDomain)
	case a.SalvageValue < 0 || a.SalvageValue > a.StartingValue:
		return fmt.Errorf("SalvageValue must be in [0, StartingValue]: %w", finance.ErrDomain)
	case a.UsefulLifeYears <= 0:
		return fmt.Errorf("UsefulLifeYears must be > 0: %w", finance.ErrDomain)
	case a.StartMonth < 0 || a.StartMonth > 11:
		return fmt.Errorf("StartMonth must be in [0, 11]: %w", finance.ErrDomain)
	}
	return nil
}
