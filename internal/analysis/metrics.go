package analysis

import (
	"fmt"
	"math"

	"tvm-engine/internal/finance"
)

// Metric names used as keys of ProjectMetrics.Errors.
const (
	MetricPayback           = "payback"
	MetricDiscountedPayback = "discounted_payback"
	MetricIRR               = "irr"
	MetricMIRR              = "mirr"
)

// Project is a named cash-flow series.
type Project struct {
	Name  string    `json:"name" yaml:"name"`
	Flows []float64 `json:"flows" yaml:"flows"`
}

// ProjectMetrics is a project-level summary you can use for ranking.
// Metrics that could not be computed are nil and their error is kept in
// Errors under the metric name.
type ProjectMetrics struct {
	Name string
	Rate float64

	Count        int
	TotalInflow  float64
	TotalOutflow float64
	NetCashFlow  float64

	NPV               float64
	IRR               *float64
	MIRR              *float64
	Payback           *float64
	DiscountedPayback *float64

	Errors map[string]error
}

// Evaluate computes every metric of s. The series caches its results, so
// repeated calls on an unchanged series are cheap.
func Evaluate(name string, s *finance.CashFlowSeries) ProjectMetrics {
	m := ProjectMetrics{
		Name:   name,
		Rate:   s.Rate(),
		Count:  s.Len(),
		Errors: map[string]error{},
	}

	for _, f := range s.Flows() {
		if f >= 0 {
			m.TotalInflow += f
		} else {
			m.TotalOutflow += f
		}
	}
	m.NetCashFlow = m.TotalInflow + m.TotalOutflow
	m.NPV = s.NetPresentValue()

	m.Payback = m.keep(MetricPayback, s.Payback)
	m.DiscountedPayback = m.keep(MetricDiscountedPayback, s.DiscountedPayback)
	m.IRR = m.keep(MetricIRR, s.InternalRateOfReturn)
	m.MIRR = m.keep(MetricMIRR, s.ModifiedInternalRateOfReturn)
	return m
}

// EvaluateFlows builds a series from p and evaluates it.
func EvaluateFlows(p Project, rate float64, solver finance.SolverParams) (ProjectMetrics, error) {
	s, err := finance.NewCashFlowSeries(p.Flows, rate)
	if err != nil {
		return ProjectMetrics{}, fmt.Errorf("project %q: %w", p.Name, err)
	}
	if err := s.SetSolver(solver); err != nil {
		return ProjectMetrics{}, fmt.Errorf("project %q: %w", p.Name, err)
	}
	return Evaluate(p.Name, s), nil
}

func (m *ProjectMetrics) keep(name string, compute func() (float64, error)) *float64 {
	v, err := compute()
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("%s is not finite: %w", name, finance.ErrDomain)
	}
	if err != nil {
		m.Errors[name] = err
		return nil
	}
	return &v
}
