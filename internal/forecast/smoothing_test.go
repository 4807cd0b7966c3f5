package forecast

import (
	"errors"
	"math"
	"testing"

	"tvm-engine/internal/finance"
)

func TestExponentialSmoothing(t *testing.T) {
	t.Parallel()

	got, err := ExponentialSmoothing([]float64{10, 20, 30}, 2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// 10, then .5*10+.5*10, then .5*20+.5*10, then flat at .5*30+.5*15.
	want := []float64{10, 10, 15, 22.5, 22.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDoubleExponentialSmoothingFollowsTrend(t *testing.T) {
	t.Parallel()

	// With alpha = beta = 1 the level tracks the data and the trend is the
	// last step, so a straight line is extended exactly.
	series := []float64{3, 5, 7, 9, 11}
	got, err := DoubleExponentialSmoothing(series, 3, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{3, 5, 7, 9, 11, 13, 15, 17}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestConstantSeriesStaysConstant(t *testing.T) {
	t.Parallel()

	series := []float64{4, 4, 4, 4, 4, 4, 4, 4}
	results := map[string]func() ([]float64, error){
		"single": func() ([]float64, error) { return ExponentialSmoothing(series, 4, 0.3) },
		"double": func() ([]float64, error) { return DoubleExponentialSmoothing(series, 4, 0.3, 0.2) },
		"triple": func() ([]float64, error) { return TripleExponentialSmoothing(series, 4, 4, 0.3, 0.2, 0.1) },
	}
	for name, fn := range results {
		got, err := fn()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(got) != len(series)+4 {
			t.Fatalf("%s: len = %d, want %d", name, len(got), len(series)+4)
		}
		for i, v := range got {
			if math.Abs(v-4) > 1e-12 {
				t.Fatalf("%s: value %d = %v, want 4", name, i, v)
			}
		}
	}
}

func TestTripleExponentialSmoothingSeasonality(t *testing.T) {
	t.Parallel()

	season := []float64{10, 20, 30, 20}
	var series []float64
	for i := 0; i < 4; i++ {
		series = append(series, season...)
	}
	got, err := TripleExponentialSmoothing(series, 4, 4, 0.5, 0.1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	forecasts := got[len(series):]
	// The peak of the cycle must still be the third position.
	if !(forecasts[2] > forecasts[0] && forecasts[2] > forecasts[1] && forecasts[2] > forecasts[3]) {
		t.Fatalf("forecasts lost the seasonal peak: %v", forecasts)
	}
}

func TestSmoothingDomainErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func() ([]float64, error)
	}{
		{"empty", func() ([]float64, error) { return ExponentialSmoothing(nil, 1, 0.5) }},
		{"alpha above one", func() ([]float64, error) { return ExponentialSmoothing([]float64{1}, 1, 1.5) }},
		{"negative beta", func() ([]float64, error) { return DoubleExponentialSmoothing([]float64{1, 2}, 1, 0.5, -0.1) }},
		{"negative periods", func() ([]float64, error) { return DoubleExponentialSmoothing([]float64{1, 2}, -1, 0.5, 0.5) }},
		{"one season", func() ([]float64, error) {
			return TripleExponentialSmoothing([]float64{1, 2, 3, 4}, 1, 4, 0.5, 0.5, 0.5)
		}},
		{"zero season", func() ([]float64, error) {
			return TripleExponentialSmoothing([]float64{1, 2, 3, 4}, 1, 0, 0.5, 0.5, 0.5)
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := tt.fn(); !errors.Is(err, finance.ErrDomain) {
				t.Fatalf("expected ErrDomain, got %v", err)
			}
		})
	}
}
