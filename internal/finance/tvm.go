package finance

import (
	"fmt"
	"math"
)

// Sign convention: money received is positive and money paid out is
// negative, so for a non-zero rate the five variables satisfy
//
//	pv*(1+r)^n + pmt*af*((1+r)^n - 1)/r + fv = 0
//
// where af is the annuity factor below. A loan of 1000 shows up as
// pv = +1000 with a negative payment.

// annuityFactor shifts payments one period earlier for an annuity-due.
func annuityFactor(rate float64, due bool) float64 {
	if due {
		return 1 + rate
	}
	return 1
}

// PresentValue returns the amount at time zero that balances the payment
// stream and future value over periods at rate.
//
// rate must be above -1 unless periods is whole: (1+rate)^periods of a
// negative base is NaN. At rate == -1 the result is infinite. Callers that
// accept arbitrary input check the result with math.IsNaN / math.IsInf.
func PresentValue(rate, periods, payment, futureValue float64, due bool) float64 {
	if rate == 0 {
		return -(payment*periods + futureValue)
	}
	af := annuityFactor(rate, due)
	return (payment*af/rate-futureValue)/math.Pow(1+rate, periods) - payment*af/rate
}

// FutureValue returns the amount after periods that balances presentValue
// and the payment stream. The rate precondition of PresentValue applies.
func FutureValue(rate, periods, presentValue, payment float64, due bool) float64 {
	if rate == 0 {
		return -(presentValue + payment*periods)
	}
	af := annuityFactor(rate, due)
	return payment*af/rate - math.Pow(1+rate, periods)*(presentValue+payment*af/rate)
}

// Payment returns the level payment per period.
func Payment(rate, periods, presentValue, futureValue float64, due bool) (float64, error) {
	if rate == 0 {
		if periods == 0 {
			return 0, fmt.Errorf("Payment: zero periods: %w", ErrDomain)
		}
		return -(presentValue + futureValue) / periods, nil
	}
	q := math.Pow(1+rate, periods)
	af := annuityFactor(rate, due)
	if q == 1 || af == 0 {
		return 0, fmt.Errorf("Payment: degenerate annuity (rate=%g, periods=%g): %w", rate, periods, ErrDomain)
	}
	return -rate * (futureValue + presentValue*q) / (af * (q - 1)), nil
}

// Periods returns the number of periods needed for the payment stream to
// move presentValue to futureValue. The result is fractional in general.
func Periods(rate, presentValue, payment, futureValue float64, due bool) (float64, error) {
	if rate == 0 {
		if payment == 0 {
			return 0, fmt.Errorf("Periods: zero payment at zero rate: %w", ErrDomain)
		}
		return -(presentValue + futureValue) / payment, nil
	}
	if 1+rate <= 0 {
		return 0, fmt.Errorf("Periods: rate %g at or below -100%%: %w", rate, ErrDomain)
	}
	af := annuityFactor(rate, due)
	ratio := (payment*af - futureValue*rate) / (payment*af + presentValue*rate)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return 0, fmt.Errorf("Periods: log of non-positive ratio %g: %w", ratio, ErrDomain)
	}
	return math.Log(ratio) / math.Log(1+rate), nil
}

const (
	// rateSeed is the second starting estimate handed to the IRR solver
	// when Rate has to iterate.
	rateSeed = 0.1

	// maxAnnuityPeriods bounds the series Rate builds for the solver
	// (100 years of daily payments fit well inside it).
	maxAnnuityPeriods = 100000
)

// Rate returns the per-period rate linking the other four variables.
//
// With no payment the equation has a closed form. Otherwise Rate is not
// closed-form: it builds the equivalent cash-flow series (pv at time zero,
// one payment per period, fv at the end) and solves it with the IRR secant
// solver in cashflow.go. This is the one place where the primitives depend
// on the series engine.
func Rate(periods, presentValue, payment, futureValue float64, due bool) (float64, error) {
	if payment == 0 {
		if periods <= 0 {
			return 0, fmt.Errorf("Rate: periods must be positive, got %g: %w", periods, ErrDomain)
		}
		if presentValue == 0 {
			return 0, fmt.Errorf("Rate: zero present value: %w", ErrDomain)
		}
		base := -futureValue / presentValue
		if base < 0 {
			return 0, fmt.Errorf("Rate: present and future value share a sign: %w", ErrDomain)
		}
		return math.Pow(base, 1/periods) - 1, nil
	}

	if periods < 1 || periods != math.Trunc(periods) {
		return 0, fmt.Errorf("Rate: periods must be a positive whole number with a payment, got %g: %w", periods, ErrDomain)
	}
	if periods > maxAnnuityPeriods {
		return 0, fmt.Errorf("Rate: %g periods exceeds the limit of %d with a payment: %w", periods, maxAnnuityPeriods, ErrDomain)
	}
	series, err := NewCashFlowSeries(annuityFlows(int(periods), presentValue, payment, futureValue, due), rateSeed)
	if err != nil {
		return 0, err
	}
	r, err := series.InternalRateOfReturn()
	if err != nil {
		return r, fmt.Errorf("Rate: %w", err)
	}
	return r, nil
}

// annuityFlows lays the TVM tuple out as periods+1 dated flows.
func annuityFlows(periods int, pv, pmt, fv float64, due bool) []float64 {
	flows := make([]float64, periods+1)
	flows[0] = pv
	if due {
		for k := 0; k < periods; k++ {
			flows[k] += pmt
		}
	} else {
		for k := 1; k <= periods; k++ {
			flows[k] += pmt
		}
	}
	flows[periods] += fv
	return flows
}
