package analysis

import (
	"sort"

	"tvm-engine/internal/finance"
)

type RankedProject struct {
	Rank int
	ProjectMetrics
}

// RankByNPV evaluates every project at rate and sorts descending by NPV,
// breaking ties by IRR. Projects without an IRR sort after those with one.
func RankByNPV(projects []Project, rate float64, solver finance.SolverParams) ([]RankedProject, error) {
	out := make([]RankedProject, 0, len(projects))
	for _, p := range projects {
		m, err := EvaluateFlows(p, rate, solver)
		if err != nil {
			return nil, err
		}
		out = append(out, RankedProject{ProjectMetrics: m})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NPV != out[j].NPV {
			return out[i].NPV > out[j].NPV
		}
		a, b := out[i].IRR, out[j].IRR
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
