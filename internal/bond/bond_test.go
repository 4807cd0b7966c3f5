package bond

import (
	"errors"
	"math"
	"testing"
	"time"

	"tvm-engine/internal/finance"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		settle     time.Time
		maturity   time.Time
		freq, want int
	}{
		{"ten years semiannual", date(2020, 1, 15), date(2030, 1, 15), 2, 20},
		{"short a day", date(2020, 1, 15), date(2030, 1, 14), 2, 19},
		{"quarterly", date(2021, 3, 1), date(2023, 3, 1), 4, 8},
		{"annual partial", date(2001, 1, 1), date(2011, 12, 31), 1, 10},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := New(tt.settle, tt.maturity)
			b.CouponFrequency = tt.freq
			if got := b.Periods(); got != tt.want {
				t.Fatalf("Periods = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPriceAtCouponRateIsPar(t *testing.T) {
	t.Parallel()

	b := New(date(2020, 6, 1), date(2030, 6, 1))
	price, err := b.Price(0.05)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(price-100) > 1e-9 {
		t.Fatalf("Price = %v, want 100", price)
	}

	premium, _ := b.Price(0.04)
	discount, _ := b.Price(0.06)
	if !(premium > 100 && discount < 100) {
		t.Fatalf("premium %v / discount %v on the wrong side of par", premium, discount)
	}
}

func TestYieldRoundTrip(t *testing.T) {
	t.Parallel()

	b := New(date(2020, 6, 1), date(2035, 6, 1))
	for _, y := range []float64{0.02, 0.05, 0.075} {
		price, err := b.Price(y)
		if err != nil {
			t.Fatal(err)
		}
		got, err := b.YieldToMaturity(price)
		if err != nil {
			t.Fatalf("YieldToMaturity(%v): %v", price, err)
		}
		if math.Abs(got-y) > 1e-6 {
			t.Fatalf("YieldToMaturity(Price(%v)) = %v", y, got)
		}
	}
}

func TestZeroCouponYield(t *testing.T) {
	t.Parallel()

	b := New(date(2020, 1, 1), date(2025, 1, 1))
	b.CouponRate = 0
	got, err := b.YieldToMaturity(100 / math.Pow(1.03, 10))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.06) > 1e-9 {
		t.Fatalf("YieldToMaturity = %v, want 0.06", got)
	}
}

func TestBondDomainErrors(t *testing.T) {
	t.Parallel()

	inverted := New(date(2030, 1, 1), date(2020, 1, 1))
	if _, err := inverted.Price(0.05); !errors.Is(err, finance.ErrDomain) {
		t.Fatalf("expected ErrDomain for inverted dates, got %v", err)
	}

	odd := New(date(2020, 1, 1), date(2030, 1, 1))
	odd.CouponFrequency = 5
	if _, err := odd.Price(0.05); !errors.Is(err, finance.ErrDomain) {
		t.Fatalf("expected ErrDomain for frequency 5, got %v", err)
	}

	short := New(date(2020, 1, 1), date(2020, 3, 1))
	if _, err := short.YieldToMaturity(99); !errors.Is(err, finance.ErrDomain) {
		t.Fatalf("expected ErrDomain for sub-period bond, got %v", err)
	}

	ok := New(date(2020, 1, 1), date(2030, 1, 1))
	if _, err := ok.YieldToMaturity(0); !errors.Is(err, finance.ErrDomain) {
		t.Fatalf("expected ErrDomain for zero price, got %v", err)
	}
}
