package models

import "tvm-engine/internal/analysis"

// TVMRequest carries the TVM tuple. The field named by the route's
// :variable is the unknown and is ignored if present.
type TVMRequest struct {
	Rate         float64 `json:"rate"`
	Periods      float64 `json:"periods"`
	PresentValue float64 `json:"present_value"`
	Payment      float64 `json:"payment"`
	FutureValue  float64 `json:"future_value"`
	Due          bool    `json:"due"` // payments at the start of each period
}

// SolverOverride replaces individual IRR solver bounds for one request.
type SolverOverride struct {
	Tolerance         float64 `json:"tolerance,omitempty"`
	MaxIterations     int     `json:"max_iterations,omitempty"`
	DivergenceCeiling float64 `json:"divergence_ceiling,omitempty"`
}

// CashFlowRequest is a series to analyze or store.
type CashFlowRequest struct {
	Name   string          `json:"name,omitempty"`
	Flows  []float64       `json:"flows" binding:"required,min=1"`
	Rate   *float64        `json:"rate,omitempty"` // default: server discount rate
	Solver *SolverOverride `json:"solver,omitempty"`
}

// RankRequest ranks several projects at one rate.
type RankRequest struct {
	Rate     *float64           `json:"rate,omitempty"`
	Projects []analysis.Project `json:"projects" binding:"required,min=1"`
}

// AppendFlowRequest adds one flow to a stored series.
type AppendFlowRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// DepreciationRequest describes an asset and the method to apply.
type DepreciationRequest struct {
	Method          string   `json:"method" binding:"required"` // "double-declining", "macrs", "straight-line"
	StartingValue   float64  `json:"starting_value" binding:"required"`
	SalvageValue    float64  `json:"salvage_value,omitempty"`
	UsefulLifeYears int      `json:"useful_life_years" binding:"required"`
	StartMonth      int      `json:"start_month,omitempty"` // 0-based
	Factor          float64  `json:"factor,omitempty"`      // declining-balance only; default from config
	DiscountRate    *float64 `json:"discount_rate,omitempty"`
}

// ForecastRequest selects a smoothing model and its constants.
type ForecastRequest struct {
	Model        string    `json:"model,omitempty"` // "single" (default), "double", "triple"
	Series       []float64 `json:"series" binding:"required,min=1"`
	Periods      int       `json:"periods,omitempty"`
	SeasonLength int       `json:"season_length,omitempty"` // triple only; default 12
	Alpha        *float64  `json:"alpha,omitempty"`         // default 0.5
	Beta         *float64  `json:"beta,omitempty"`          // default 0.5
	Gamma        *float64  `json:"gamma,omitempty"`         // default 0.5
}

// BondRequest describes a bond. Price requests need Yield; yield requests
// need Price.
type BondRequest struct {
	SettlementDate  string   `json:"settlement_date" binding:"required"` // YYYY-MM-DD
	MaturityDate    string   `json:"maturity_date" binding:"required"`   // YYYY-MM-DD
	CouponRate      *float64 `json:"coupon_rate,omitempty"`              // percent; default 5
	CouponFrequency int      `json:"coupon_frequency,omitempty"`         // default 2
	ParValue        *float64 `json:"par_value,omitempty"`                // default 100
	Yield           *float64 `json:"yield,omitempty"`                    // annual, decimal
	Price           *float64 `json:"price,omitempty"`
}
