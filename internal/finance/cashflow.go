package finance

import (
	"fmt"
	"math"
)

// DefaultRate is the discount rate used when none is given.
const DefaultRate = 0.08

// CashFlowSeries is an ordered series of per-period cash flows (positive =
// inflow, index 0 = time zero) discounted at a single per-period rate.
//
// Derived results are computed on first access and kept until the series
// changes. A CashFlowSeries does no locking: concurrent readers are fine
// only while nothing mutates it.
type CashFlowSeries struct {
	flows  []float64
	rate   float64
	solver SolverParams

	cache analytics
}

// NewCashFlowSeries copies flows into a new series. At least one flow is
// required.
func NewCashFlowSeries(flows []float64, rate float64) (*CashFlowSeries, error) {
	if len(flows) == 0 {
		return nil, fmt.Errorf("NewCashFlowSeries: at least one cash flow is required: %w", ErrDomain)
	}
	cp := make([]float64, len(flows))
	copy(cp, flows)
	return &CashFlowSeries{
		flows:  cp,
		rate:   rate,
		solver: DefaultSolver(),
	}, nil
}

func (s *CashFlowSeries) invalidate() {
	s.cache = analytics{}
}

// AddCashFlow appends a flow to the end of the series.
func (s *CashFlowSeries) AddCashFlow(amount float64) {
	s.flows = append(s.flows, amount)
	s.invalidate()
}

// SetRate changes the discount rate.
func (s *CashFlowSeries) SetRate(rate float64) {
	s.rate = rate
	s.invalidate()
}

// SetSolver replaces the IRR solver bounds.
func (s *CashFlowSeries) SetSolver(p SolverParams) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("SetSolver: %w", err)
	}
	s.solver = p
	s.invalidate()
	return nil
}

func (s *CashFlowSeries) Rate() float64 { return s.rate }

func (s *CashFlowSeries) Len() int { return len(s.flows) }

// CashFlow returns the flow at index.
func (s *CashFlowSeries) CashFlow(index int) (float64, error) {
	if index < 0 || index >= len(s.flows) {
		return 0, fmt.Errorf("CashFlow: index %d of %d: %w", index, len(s.flows), ErrIndexOutOfRange)
	}
	return s.flows[index], nil
}

// Flows returns a copy of the series.
func (s *CashFlowSeries) Flows() []float64 {
	out := make([]float64, len(s.flows))
	copy(out, s.flows)
	return out
}

// sign is +1 for zero and positive values and -1 otherwise.
func sign(x float64) int {
	if x == math.Abs(x) {
		return 1
	}
	return -1
}

// discount returns the time-zero value of amount received after periods.
// PresentValue reports the offsetting amount, hence the negation.
func discount(rate float64, periods int, amount float64) float64 {
	return -PresentValue(rate, float64(periods), 0, amount, false)
}

// NetPresentValueAt discounts every flow k periods at rate and sums them.
func (s *CashFlowSeries) NetPresentValueAt(rate float64) float64 {
	npv := 0.0
	for k, flow := range s.flows {
		npv += discount(rate, k, flow)
	}
	return npv
}

// NetPresentValue is NetPresentValueAt the series rate.
func (s *CashFlowSeries) NetPresentValue() float64 {
	v, _ := s.cache.npv.get(func() (float64, error) {
		return s.NetPresentValueAt(s.rate), nil
	})
	return v
}

// Payback returns the number of periods until the running net of the
// flows changes sign from that of the first flow. The final period is
// interpolated linearly.
func (s *CashFlowSeries) Payback() (float64, error) {
	return s.cache.payback.get(func() (float64, error) {
		p, err := paybackWalk(s.flows, func(_ int, flow float64) float64 { return flow })
		if err != nil {
			return 0, fmt.Errorf("Payback: %w", err)
		}
		return p, nil
	})
}

// DiscountedPayback is Payback over flows discounted to time zero.
func (s *CashFlowSeries) DiscountedPayback() (float64, error) {
	return s.cache.discountedPayback.get(func() (float64, error) {
		p, err := paybackWalk(s.flows, func(k int, flow float64) float64 {
			return discount(s.rate, k, flow)
		})
		if err != nil {
			return 0, fmt.Errorf("DiscountedPayback: %w", err)
		}
		return p, nil
	})
}

// paybackWalk adds value(k, flow_k) for k >= 1 onto flow_0 until the
// running net flips sign.
func paybackWalk(flows []float64, value func(k int, flow float64) float64) (float64, error) {
	net := flows[0]
	want := sign(net)
	payback := 0.0

	for k := 1; k < len(flows); k++ {
		v := value(k, flows[k])
		if sign(net+v) == want {
			net += v
			payback++
			continue
		}
		return payback + -net/v, nil
	}
	return 0, ErrNoPayback
}

// InternalRateOfReturn returns the rate at which the net present value is
// zero, found by the secant method seeded at 0 and the series rate.
//
// When the iteration runs away the result is +Inf together with
// ErrDivergent; a series without a sign change always ends this way,
// except a single flow, whose NPV is flat in the rate and so fails with
// ErrNonConvergence before the first step.
func (s *CashFlowSeries) InternalRateOfReturn() (float64, error) {
	return s.cache.irr.get(func() (float64, error) {
		seed := s.rate
		if seed == 0 {
			seed = DefaultRate
		}
		r, _, err := secant(s.NetPresentValueAt, 0, seed, s.solver)
		if err != nil {
			return r, fmt.Errorf("InternalRateOfReturn: %w", err)
		}
		return r, nil
	})
}

// ModifiedInternalRateOfReturn discounts the flows that share the first
// flow's sign to time zero, compounds the rest to the last period, and
// solves for the single rate linking the two totals.
func (s *CashFlowSeries) ModifiedInternalRateOfReturn() (float64, error) {
	return s.cache.mirr.get(func() (float64, error) {
		want := sign(s.flows[0])
		periods := len(s.flows) - 1

		starting, ending := 0.0, 0.0
		for k, flow := range s.flows {
			if sign(flow) == want {
				starting += PresentValue(s.rate, float64(k), 0, flow, false)
			} else {
				ending += FutureValue(s.rate, float64(periods-k), flow, 0, false)
			}
		}

		if math.IsNaN(starting+ending) || math.IsInf(starting, 0) || math.IsInf(ending, 0) {
			return 0, fmt.Errorf("ModifiedInternalRateOfReturn: non-finite totals at rate %g: %w", s.rate, ErrDomain)
		}
		r, err := Rate(float64(periods), starting, 0, ending, false)
		if err != nil {
			return 0, fmt.Errorf("ModifiedInternalRateOfReturn: %w", err)
		}
		return r, nil
	})
}
