// Package bond prices fixed-coupon bonds and solves their yield using the
// TVM primitives.
package bond

import (
	"fmt"
	"time"

	"tvm-engine/internal/finance"
)

const (
	DefaultCouponRate      = 5.0
	DefaultCouponFrequency = 2
	DefaultParValue        = 100.0
)

// Bond describes a plain fixed-coupon bond.
// Units:
// - CouponRate: annual percent of par (5 = 5%)
// - CouponFrequency: coupons per year; must divide 12
// - ParValue: currency repaid at maturity
type Bond struct {
	SettlementDate  time.Time
	MaturityDate    time.Time
	CouponRate      float64
	CouponFrequency int
	ParValue        float64
}

// New returns a bond with the default coupon terms.
func New(settlement, maturity time.Time) *Bond {
	return &Bond{
		SettlementDate:  settlement,
		MaturityDate:    maturity,
		CouponRate:      DefaultCouponRate,
		CouponFrequency: DefaultCouponFrequency,
		ParValue:        DefaultParValue,
	}
}

func (b *Bond) Validate() error {
	switch {
	case !b.MaturityDate.After(b.SettlementDate):
		return fmt.Errorf("maturity %s must be after settlement %s: %w",
			b.MaturityDate.Format("2006-01-02"), b.SettlementDate.Format("2006-01-02"), finance.ErrDomain)
	case b.CouponFrequency <= 0 || 12%b.CouponFrequency != 0:
		return fmt.Errorf("coupon frequency %d must divide 12: %w", b.CouponFrequency, finance.ErrDomain)
	case b.CouponRate < 0:
		return fmt.Errorf("coupon rate must be >= 0, got %g: %w", b.CouponRate, finance.ErrDomain)
	case b.ParValue <= 0:
		return fmt.Errorf("par value must be > 0, got %g: %w", b.ParValue, finance.ErrDomain)
	}
	return nil
}

// Periods counts the whole coupon periods between settlement and maturity.
func (b *Bond) Periods() int {
	months := (b.MaturityDate.Year()-b.SettlementDate.Year())*12 +
		int(b.MaturityDate.Month()) - int(b.SettlementDate.Month())
	if b.MaturityDate.Day() < b.SettlementDate.Day() {
		months--
	}
	return months / (12 / b.CouponFrequency)
}

// Coupon is the amount paid each period.
func (b *Bond) Coupon() float64 {
	return b.ParValue * b.CouponRate / 100 / float64(b.CouponFrequency)
}

func (b *Bond) periods() (int, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	n := b.Periods()
	if n <= 0 {
		return 0, fmt.Errorf("less than one coupon period to maturity: %w", finance.ErrDomain)
	}
	return n, nil
}

// Price is the clean price at an annual yield compounded at the coupon
// frequency.
func (b *Bond) Price(annualYield float64) (float64, error) {
	n, err := b.periods()
	if err != nil {
		return 0, fmt.Errorf("Price: %w", err)
	}
	y := annualYield / float64(b.CouponFrequency)
	if y <= -1 {
		return 0, fmt.Errorf("Price: yield %g per period: %w", y, finance.ErrDomain)
	}
	return -finance.PresentValue(y, float64(n), b.Coupon(), b.ParValue, false), nil
}

// YieldToMaturity solves for the annual yield at which the bond's cash
// flows are worth price.
func (b *Bond) YieldToMaturity(price float64) (float64, error) {
	n, err := b.periods()
	if err != nil {
		return 0, fmt.Errorf("YieldToMaturity: %w", err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("YieldToMaturity: price must be > 0, got %g: %w", price, finance.ErrDomain)
	}

	r, err := finance.Rate(float64(n), -price, b.Coupon(), b.ParValue, false)
	if err != nil {
		return 0, fmt.Errorf("YieldToMaturity: %w", err)
	}
	return r * float64(b.CouponFrequency), nil
}
