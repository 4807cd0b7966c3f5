package finance

import (
	"errors"
	"math"
	"testing"
)

func mustSeries(t *testing.T, flows []float64, rate float64) *CashFlowSeries {
	t.Helper()
	s, err := NewCashFlowSeries(flows, rate)
	if err != nil {
		t.Fatalf("NewCashFlowSeries: %v", err)
	}
	return s
}

func TestNewCashFlowSeriesRequiresFlows(t *testing.T) {
	t.Parallel()

	if _, err := NewCashFlowSeries(nil, DefaultRate); !errors.Is(err, ErrDomain) {
		t.Fatalf("expected ErrDomain, got %v", err)
	}
}

func TestNewCashFlowSeriesCopiesInput(t *testing.T) {
	t.Parallel()

	in := []float64{-100, 60, 60}
	s := mustSeries(t, in, DefaultRate)
	in[0] = 0
	if v, _ := s.CashFlow(0); v != -100 {
		t.Fatalf("series aliases caller slice: flow[0] = %v", v)
	}
}

func TestEvenAnnuityScenario(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, []float64{-1000, 300, 300, 300, 300}, 0.08)

	npv := s.NetPresentValue()
	if !almostEqual(npv, -6.3619, 1e-3) {
		t.Fatalf("NPV = %.6f, want -6.3619", npv)
	}

	irr, err := s.InternalRateOfReturn()
	if err != nil {
		t.Fatalf("IRR: %v", err)
	}
	if !almostEqual(irr, 0.0771, 0.002) {
		t.Fatalf("IRR = %.6f, want ~0.0771", irr)
	}
	if v := s.NetPresentValueAt(irr); math.Abs(v) >= 1e-6 {
		t.Fatalf("NPV at IRR = %.9f, want ~0", v)
	}

	payback, err := s.Payback()
	if err != nil {
		t.Fatalf("Payback: %v", err)
	}
	if !almostEqual(payback, 3+100.0/300.0, 1e-9) {
		t.Fatalf("Payback = %.6f, want 3.3333", payback)
	}

	// 300 discounted at 8% for 1..4 periods never recovers 1000.
	if _, err := s.DiscountedPayback(); !errors.Is(err, ErrNoPayback) {
		t.Fatalf("DiscountedPayback: expected ErrNoPayback, got %v", err)
	}

	mirr, err := s.ModifiedInternalRateOfReturn()
	if err != nil {
		t.Fatalf("MIRR: %v", err)
	}
	fv := 300 * (math.Pow(1.08, 3) + math.Pow(1.08, 2) + 1.08 + 1)
	want := math.Pow(fv/1000, 0.25) - 1
	if !almostEqual(mirr, want, 1e-9) {
		t.Fatalf("MIRR = %.9f, want %.9f", mirr, want)
	}
}

func TestDiscountedPayback(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, []float64{-1000, 500, 500, 500}, 0.10)
	got, err := s.DiscountedPayback()
	if err != nil {
		t.Fatalf("DiscountedPayback: %v", err)
	}

	d1 := 500 / 1.10
	d2 := 500 / math.Pow(1.10, 2)
	d3 := 500 / math.Pow(1.10, 3)
	net := -1000 + d1 + d2
	want := 2 + -net/d3
	if !almostEqual(got, want, 1e-9) {
		t.Fatalf("DiscountedPayback = %.9f, want %.9f", got, want)
	}
	if got <= 2 || got >= 3 {
		t.Fatalf("DiscountedPayback = %.6f, want within (2, 3)", got)
	}

	plain, err := s.Payback()
	if err != nil {
		t.Fatal(err)
	}
	if plain != 2 {
		t.Fatalf("Payback = %v, want 2 (running net reaches exactly zero)", plain)
	}
}

func TestPaybackNoSignChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flows []float64
	}{
		{"all negative", []float64{-100, -50, -25}},
		{"never recovers", []float64{-1000, 100, 100, 100}},
		{"single flow", []float64{-500}},
		{"positive start stays positive", []float64{100, 50}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := mustSeries(t, tt.flows, DefaultRate)
			p, err := s.Payback()
			if !errors.Is(err, ErrNoPayback) || !errors.Is(err, ErrDomain) {
				t.Fatalf("expected ErrNoPayback, got %v (value %v)", err, p)
			}
		})
	}
}

func TestZeroIsPositive(t *testing.T) {
	t.Parallel()

	if sign(0) != 1 || sign(math.Copysign(0, -1)) != 1 || sign(3) != 1 {
		t.Fatal("zero and positive values must have sign +1")
	}
	if sign(-0.01) != -1 || sign(math.NaN()) != -1 {
		t.Fatal("negative values and NaN must have sign -1")
	}

	// A zero opening flow is "positive", so the walk looks for a negative net.
	s := mustSeries(t, []float64{0, 10, -30}, DefaultRate)
	p, err := s.Payback()
	if err != nil {
		t.Fatalf("Payback: %v", err)
	}
	if !almostEqual(p, 1+10.0/30.0, 1e-12) {
		t.Fatalf("Payback = %v, want 1.3333", p)
	}
}

func TestIRRDivergesWithoutSignChange(t *testing.T) {
	t.Parallel()

	for _, flows := range [][]float64{
		{100, 100, 100},
		{-100, -100},
		{-5, -1, -1, -1},
	} {
		s := mustSeries(t, flows, DefaultRate)
		irr, err := s.InternalRateOfReturn()
		if !errors.Is(err, ErrDivergent) || !errors.Is(err, ErrNonConvergence) {
			t.Fatalf("flows %v: expected ErrDivergent, got %v", flows, err)
		}
		if !math.IsInf(irr, 1) {
			t.Fatalf("flows %v: IRR = %v, want +Inf", flows, irr)
		}
	}
}

func TestIRRSingleFlowIsFlat(t *testing.T) {
	t.Parallel()

	// NPV does not depend on the rate, so the first secant step has no slope.
	for _, flows := range [][]float64{{100}, {-250}} {
		s := mustSeries(t, flows, DefaultRate)
		_, err := s.InternalRateOfReturn()
		if !errors.Is(err, ErrNonConvergence) || errors.Is(err, ErrDivergent) {
			t.Fatalf("flows %v: expected plain ErrNonConvergence, got %v", flows, err)
		}
	}
}

func TestIRRNPVIsZero(t *testing.T) {
	t.Parallel()

	for _, flows := range [][]float64{
		{-1000, 300, 300, 300, 300},
		{-500, 100, 200, 300},
		{-100, 0, 0, 150},
		{-2500, 700, 900, 1100, 400, 200},
		{1000, -300, -300, -300, -300},
	} {
		s := mustSeries(t, flows, DefaultRate)
		irr, err := s.InternalRateOfReturn()
		if err != nil {
			t.Fatalf("flows %v: IRR: %v", flows, err)
		}
		if v := s.NetPresentValueAt(irr); math.Abs(v) >= 1e-6 {
			t.Fatalf("flows %v: NPV at IRR %.6f = %g", flows, irr, v)
		}
	}
}

func TestIRRZeroRateSeedFallsBack(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, []float64{-1000, 300, 300, 300, 300}, 0)
	irr, err := s.InternalRateOfReturn()
	if err != nil {
		t.Fatalf("IRR: %v", err)
	}
	if !almostEqual(irr, 0.0771, 0.002) {
		t.Fatalf("IRR = %.6f, want ~0.0771", irr)
	}
}

func TestSecantFlatDenominator(t *testing.T) {
	t.Parallel()

	constant := func(float64) float64 { return 5 }
	_, _, err := secant(constant, 0, 0.08, DefaultSolver())
	if !errors.Is(err, ErrNonConvergence) || errors.Is(err, ErrDivergent) {
		t.Fatalf("expected plain ErrNonConvergence, got %v", err)
	}
}

func TestSecantIterationCap(t *testing.T) {
	t.Parallel()

	// Bounded away from zero, and the ceiling is out of reach.
	f := func(r float64) float64 { return math.Sin(r*1e3) + 2 }
	p := SolverParams{Tolerance: 1e-12, MaxIterations: 5, DivergenceCeiling: math.Inf(1)}
	_, iters, err := secant(f, 0, 0.1, p)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrNonConvergence) {
		t.Fatalf("expected ErrNonConvergence, got %v", err)
	}
	if iters > p.MaxIterations {
		t.Fatalf("iterations %d exceed cap %d", iters, p.MaxIterations)
	}
}

func TestCachedResultsInvalidateOnAppend(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, []float64{-1000, 300, 300, 300}, 0.08)

	if _, err := s.Payback(); !errors.Is(err, ErrNoPayback) {
		t.Fatalf("expected no payback before append, got %v", err)
	}
	if _, err := s.InternalRateOfReturn(); err != nil {
		t.Fatalf("IRR: %v", err)
	}
	npvBefore := s.NetPresentValue()
	if !s.cache.npv.computed || !s.cache.irr.computed || !s.cache.payback.computed {
		t.Fatal("results were not memoized")
	}

	s.AddCashFlow(300)

	if s.cache.npv.computed || s.cache.irr.computed || s.cache.payback.computed ||
		s.cache.discountedPayback.computed || s.cache.mirr.computed {
		t.Fatal("append did not clear the cache")
	}
	if s.Len() != 5 {
		t.Fatalf("Len = %d, want 5", s.Len())
	}
	if s.NetPresentValue() == npvBefore {
		t.Fatal("NPV unchanged after append")
	}
	if p, err := s.Payback(); err != nil || !almostEqual(p, 3+100.0/300.0, 1e-9) {
		t.Fatalf("Payback after append = %v, %v", p, err)
	}
}

func TestSetRateInvalidates(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, []float64{-100, 60, 60}, 0.05)
	a := s.NetPresentValue()
	s.SetRate(0.10)
	b := s.NetPresentValue()
	if !(b < a) {
		t.Fatalf("NPV at 10%% (%v) should be below NPV at 5%% (%v)", b, a)
	}
	if s.Rate() != 0.10 {
		t.Fatalf("Rate = %v", s.Rate())
	}
}

func TestSetSolverValidates(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, []float64{-100, 60, 60}, 0.05)
	if err := s.SetSolver(SolverParams{}); err == nil {
		t.Fatal("expected validation error for zero solver params")
	}
	if err := s.SetSolver(SolverParams{Tolerance: 1e-9, MaxIterations: 50, DivergenceCeiling: 10}); err != nil {
		t.Fatalf("SetSolver: %v", err)
	}
	irr, err := s.InternalRateOfReturn()
	if err != nil {
		t.Fatalf("IRR: %v", err)
	}
	if v := s.NetPresentValueAt(irr); math.Abs(v) >= 1e-9 {
		t.Fatalf("NPV at IRR = %g with tightened tolerance", v)
	}
}

func TestCashFlowIndexOutOfRange(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, []float64{-100, 60}, DefaultRate)
	for _, idx := range []int{-1, 2, 10} {
		if _, err := s.CashFlow(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("CashFlow(%d): expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	flows := s.Flows()
	flows[0] = 1
	if v, _ := s.CashFlow(0); v != -100 {
		t.Fatal("Flows must return a copy")
	}
}

func TestMIRRSingleFlow(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, []float64{-100}, DefaultRate)
	if _, err := s.ModifiedInternalRateOfReturn(); !errors.Is(err, ErrDomain) {
		t.Fatalf("expected ErrDomain, got %v", err)
	}
}

func TestMIRRNonFiniteTotals(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, []float64{-100, 60, -10, 60}, -1)
	if _, err := s.ModifiedInternalRateOfReturn(); !errors.Is(err, ErrDomain) {
		t.Fatalf("expected ErrDomain, got %v", err)
	}
}
