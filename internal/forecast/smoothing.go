// Package forecast fits exponential smoothing models to a time series and
// projects them forward.
//
// Every function returns one fitted value per observation followed by
// the requested number of forecasts.
package forecast

import (
	"fmt"
	"math"

	"tvm-engine/internal/finance"
)

func validate(series []float64, periods int, constants map[string]float64) error {
	if len(series) == 0 {
		return fmt.Errorf("empty series: %w", finance.ErrDomain)
	}
	if periods < 0 {
		return fmt.Errorf("periods must be >= 0, got %d: %w", periods, finance.ErrDomain)
	}
	for name, v := range constants {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %g: %w", name, v, finance.ErrDomain)
		}
	}
	return nil
}

// ExponentialSmoothing is single exponential smoothing. Each fitted value
// blends the previous observation with the previous fit; forecasts are flat.
func ExponentialSmoothing(series []float64, periods int, alpha float64) ([]float64, error) {
	if err := validate(series, periods, map[string]float64{"alpha": alpha}); err != nil {
		return nil, fmt.Errorf("ExponentialSmoothing: %w", err)
	}

	n := len(series)
	out := make([]float64, 0, n+periods)
	out = append(out, series[0])
	for i := 1; i < n; i++ {
		out = append(out, alpha*series[i-1]+(1-alpha)*out[i-1])
	}

	next := alpha*series[n-1] + (1-alpha)*out[n-1]
	for h := 0; h < periods; h++ {
		out = append(out, next)
	}
	return out, nil
}

// DoubleExponentialSmoothing is Holt's linear trend method. The level
// starts at the first observation with zero trend.
func DoubleExponentialSmoothing(series []float64, periods int, alpha, beta float64) ([]float64, error) {
	if err := validate(series, periods, map[string]float64{"alpha": alpha, "beta": beta}); err != nil {
		return nil, fmt.Errorf("DoubleExponentialSmoothing: %w", err)
	}

	n := len(series)
	out := make([]float64, 0, n+periods)
	level, trend := series[0], 0.0
	out = append(out, level)

	for i := 1; i < n; i++ {
		prev := level
		level = alpha*series[i] + (1-alpha)*(level+trend)
		trend = beta*(level-prev) + (1-beta)*trend
		out = append(out, level)
	}

	for h := 1; h <= periods; h++ {
		out = append(out, level+float64(h)*trend)
	}
	return out, nil
}

// TripleExponentialSmoothing is the additive Holt-Winters method. The
// initial trend and seasonal components are estimated from the first
// seasons, so at least two full seasons of data are required.
func TripleExponentialSmoothing(series []float64, periods, seasonLength int, alpha, beta, gamma float64) ([]float64, error) {
	if err := validate(series, periods, map[string]float64{"alpha": alpha, "beta": beta, "gamma": gamma}); err != nil {
		return nil, fmt.Errorf("TripleExponentialSmoothing: %w", err)
	}
	if seasonLength < 1 {
		return nil, fmt.Errorf("TripleExponentialSmoothing: season length must be >= 1, got %d: %w", seasonLength, finance.ErrDomain)
	}
	n := len(series)
	if n < 2*seasonLength {
		return nil, fmt.Errorf("TripleExponentialSmoothing: %d observations, need two seasons of %d: %w", n, seasonLength, finance.ErrDomain)
	}

	seasonal := initialSeasonals(series, seasonLength)
	level, trend := series[0], initialTrend(series, seasonLength)

	out := make([]float64, 0, n+periods)
	out = append(out, series[0])

	for i := 1; i < n; i++ {
		s := i % seasonLength
		prev := level
		level = alpha*(series[i]-seasonal[s]) + (1-alpha)*(level+trend)
		trend = beta*(level-prev) + (1-beta)*trend
		seasonal[s] = gamma*(series[i]-level) + (1-gamma)*seasonal[s]
		out = append(out, level+trend+seasonal[s])
	}

	for h := 1; h <= periods; h++ {
		out = append(out, level+float64(h)*trend+seasonal[(n-1+h)%seasonLength])
	}
	return out, nil
}

// initialTrend averages the per-step change between the first two seasons.
func initialTrend(series []float64, season int) float64 {
	sum := 0.0
	for i := 0; i < season; i++ {
		sum += (series[i+season] - series[i]) / float64(season)
	}
	return sum / float64(season)
}

// initialSeasonals averages each position's deviation from its season mean
// over every complete season.
func initialSeasonals(series []float64, season int) []float64 {
	seasons := len(series) / season

	means := make([]float64, seasons)
	for j := 0; j < seasons; j++ {
		sum := 0.0
		for i := 0; i < season; i++ {
			sum += series[j*season+i]
		}
		means[j] = sum / float64(season)
	}

	out := make([]float64, season)
	for i := 0; i < season; i++ {
		sum := 0.0
		for j := 0; j < seasons; j++ {
			sum += series[j*season+i] - means[j]
		}
		out[i] = sum / float64(seasons)
	}
	return out
}
