package depreciation

// StraightLine writes the depreciable base off evenly. A mid-year start
// splits one year's amount between the first and a trailing partial year.
type StraightLine struct{}

func (StraightLine) Name() string { return MethodStraightLine }

func (StraightLine) Periods(a Asset) int { return a.fiscalYears() }

func (StraightLine) Expense(ctx Context) float64 {
	a := ctx.Asset
	annual := a.DepreciableBase() / float64(a.UsefulLifeYears)
	switch {
	case ctx.Index == 0:
		return annual * a.firstYearFraction()
	case ctx.Index == a.UsefulLifeYears:
		return annual * (1 - a.firstYearFraction())
	default:
		return annual
	}
}
