package depreciation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownMethod is returned by NewMethod for names it does not know.
var ErrUnknownMethod = errors.New("unknown depreciation method")

// Context is what a Method sees for one fiscal year.
type Context struct {
	Index int
	Asset Asset

	// BookValue is the carrying value at the start of the year.
	BookValue float64
	// Accumulated is the depreciation taken in earlier years.
	Accumulated float64
}

// Method computes one fiscal year's depreciation. The engine caps the
// result so that book value never drops below salvage.
type Method interface {
	Name() string
	Periods(a Asset) int
	Expense(ctx Context) float64
}

// Method names accepted by NewMethod.
const (
	MethodDoubleDeclining = "double-declining"
	MethodMacrs           = "macrs"
	MethodStraightLine    = "straight-line"
)

// MethodParams carries the optional knobs of NewMethod.
type MethodParams struct {
	// Factor is the declining-balance multiple (2 = 200%). Zero means 2.
	Factor float64
}

// MethodInfo describes a method for listings.
type MethodInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters,omitempty"`
	Lives       []int    `json:"lives,omitempty"`
}

// Methods lists the available methods.
func Methods() []MethodInfo {
	return []MethodInfo{
		{
			Name:        MethodDoubleDeclining,
			Description: "Declining balance at factor/life per year, first year prorated by start month",
			Parameters:  []string{"factor"},
		},
		{
			Name:        MethodMacrs,
			Description: "IRS Pub. 946 table A-1 percentages, half-year convention",
			Lives:       MacrsLives(),
		},
		{
			Name:        MethodStraightLine,
			Description: "Equal annual amounts, first and last years prorated by start month",
		},
	}
}

// NewMethod builds the named method for asset.
func NewMethod(name string, asset Asset, p MethodParams) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MethodDoubleDeclining, "ddb":
		return NewDoubleDeclining(p.Factor)
	case MethodMacrs:
		return NewMacrs(asset)
	case MethodStraightLine, "sl":
		return StraightLine{}, nil
	default:
		names := make([]string, 0, 3)
		for _, m := range Methods() {
			names = append(names, m.Name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownMethod, name, strings.Join(names, ", "))
	}
}
