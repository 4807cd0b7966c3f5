package analysis

import (
	"errors"
	"math"
	"testing"

	"tvm-engine/internal/finance"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	m, err := EvaluateFlows(Project{Name: "annuity", Flows: []float64{-1000, 300, 300, 300, 300}}, 0.08, finance.DefaultSolver())
	if err != nil {
		t.Fatal(err)
	}
	if m.Count != 5 || m.TotalInflow != 1200 || m.TotalOutflow != -1000 || m.NetCashFlow != 200 {
		t.Fatalf("unexpected totals: %+v", m)
	}
	if math.Abs(m.NPV-(-6.3619)) > 1e-3 {
		t.Fatalf("NPV = %v", m.NPV)
	}
	if m.IRR == nil || m.MIRR == nil || m.Payback == nil {
		t.Fatalf("missing metrics, errors: %v", m.Errors)
	}
	if m.DiscountedPayback != nil {
		t.Fatalf("DiscountedPayback = %v, want nil", *m.DiscountedPayback)
	}
	if err := m.Errors[MetricDiscountedPayback]; !errors.Is(err, finance.ErrNoPayback) {
		t.Fatalf("discounted payback error = %v", err)
	}
	if len(m.Errors) != 1 {
		t.Fatalf("errors = %v, want only discounted payback", m.Errors)
	}
}

func TestEvaluateKeepsDivergenceOutOfValues(t *testing.T) {
	t.Parallel()

	m, err := EvaluateFlows(Project{Name: "inflows", Flows: []float64{100, 100}}, 0.08, finance.DefaultSolver())
	if err != nil {
		t.Fatal(err)
	}
	if m.IRR != nil {
		t.Fatalf("IRR = %v, want nil", *m.IRR)
	}
	if !errors.Is(m.Errors[MetricIRR], finance.ErrDivergent) {
		t.Fatalf("IRR error = %v", m.Errors[MetricIRR])
	}
}

func TestEvaluateFlowsRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := EvaluateFlows(Project{Name: "empty"}, 0.08, finance.DefaultSolver()); !errors.Is(err, finance.ErrDomain) {
		t.Fatalf("expected ErrDomain, got %v", err)
	}
	if _, err := EvaluateFlows(Project{Name: "x", Flows: []float64{-1, 2}}, 0.08, finance.SolverParams{}); err == nil {
		t.Fatal("expected solver validation error")
	}
}

func TestRankByNPV(t *testing.T) {
	t.Parallel()

	projects := []Project{
		{Name: "small", Flows: []float64{-100, 60, 60}},
		{Name: "large", Flows: []float64{-1000, 600, 600}},
		{Name: "loser", Flows: []float64{-1000, 100, 100}},
	}
	ranked, err := RankByNPV(projects, 0.05, finance.DefaultSolver())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"large", "small", "loser"}
	for i, name := range want {
		if ranked[i].Name != name || ranked[i].Rank != i+1 {
			t.Fatalf("position %d = %s (rank %d), want %s", i, ranked[i].Name, ranked[i].Rank, name)
		}
	}
}

func TestRankTieBreaksOnIRR(t *testing.T) {
	t.Parallel()

	// At rate 0 both have NPV 20; the faster payer has the higher IRR.
	projects := []Project{
		{Name: "slow", Flows: []float64{-100, 0, 120}},
		{Name: "fast", Flows: []float64{-100, 120, 0}},
	}
	ranked, err := RankByNPV(projects, 0, finance.DefaultSolver())
	if err != nil {
		t.Fatal(err)
	}
	if ranked[0].Name != "fast" {
		t.Fatalf("ranked[0] = %s, want fast", ranked[0].Name)
	}
}
