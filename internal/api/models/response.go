package models

import (
	"time"

	"tvm-engine/internal/depreciation"
)

// TVMResponse is the solved variable plus the inputs used.
type TVMResponse struct {
	Variable string     `json:"variable"`
	Value    float64    `json:"value"`
	Inputs   TVMRequest `json:"inputs"`
}

// MetricsResponse is the analysis of one series. Metrics that failed are
// null and explained in Errors.
type MetricsResponse struct {
	Name              string                 `json:"name,omitempty"`
	Rate              float64                `json:"rate"`
	Count             int                    `json:"count"`
	TotalInflow       *float64               `json:"total_inflow"`
	TotalOutflow      *float64               `json:"total_outflow"`
	NetCashFlow       *float64               `json:"net_cash_flow"`
	NPV               *float64               `json:"npv"`
	IRR               *float64               `json:"irr"`
	MIRR              *float64               `json:"mirr"`
	Payback           *float64               `json:"payback"`
	DiscountedPayback *float64               `json:"discounted_payback"`
	Errors            map[string]ErrorDetail `json:"errors,omitempty"`
}

// SessionResponse is a stored series and its current analysis.
type SessionResponse struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Flows     []float64       `json:"flows"`
	Metrics   MetricsResponse `json:"metrics"`
}

// FlowResponse is one flow of a stored series.
type FlowResponse struct {
	Index  int     `json:"index"`
	Amount float64 `json:"amount"`
}

// RankResponse represents the response from ranking projects
type RankResponse struct {
	Rate     float64   `json:"rate"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked project
type Ranking struct {
	Rank int `json:"rank"`
	MetricsResponse
}

// DepreciationResponse is a schedule with amounts rounded to cents.
type DepreciationResponse struct {
	Method       string                `json:"method"`
	Periods      []depreciation.Period `json:"periods"`
	Total        float64               `json:"total"`
	PresentValue *float64              `json:"present_value,omitempty"`
}

// MethodsResponse lists the depreciation methods.
type MethodsResponse struct {
	Methods []depreciation.MethodInfo `json:"methods"`
}

// ForecastResponse splits the model output into fits and forecasts.
type ForecastResponse struct {
	Model    string    `json:"model"`
	Fitted   []float64 `json:"fitted"`
	Forecast []float64 `json:"forecast"`
}

// BondResponse reports both sides of a price or yield solve.
type BondResponse struct {
	Periods int     `json:"periods"`
	Coupon  float64 `json:"coupon"`
	Price   float64 `json:"price"`
	Yield   float64 `json:"yield"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
