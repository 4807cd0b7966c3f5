package handlers

import (
	"fmt"
	"net/http"
	"time"

	"tvm-engine/internal/api/models"
	"tvm-engine/internal/bond"

	"github.com/gin-gonic/gin"
)

// BondHandler prices bonds and solves their yield.
type BondHandler struct{}

func NewBondHandler() *BondHandler {
	return &BondHandler{}
}

func buildBond(req models.BondRequest) (*bond.Bond, error) {
	settle, err := time.Parse("2006-01-02", req.SettlementDate)
	if err != nil {
		return nil, fmt.Errorf("settlement_date must be in YYYY-MM-DD format")
	}
	maturity, err := time.Parse("2006-01-02", req.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("maturity_date must be in YYYY-MM-DD format")
	}

	b := bond.New(settle, maturity)
	if req.CouponRate != nil {
		b.CouponRate = *req.CouponRate
	}
	if req.CouponFrequency != 0 {
		b.CouponFrequency = req.CouponFrequency
	}
	if req.ParValue != nil {
		b.ParValue = *req.ParValue
	}
	return b, nil
}

// Price handles POST /api/v1/bonds/price
func (h *BondHandler) Price(c *gin.Context) {
	var req models.BondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Yield == nil {
		badRequest(c, "yield is required")
		return
	}
	b, err := buildBond(req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	price, err := b.Price(*req.Yield)
	if err != nil {
		respondError(c, "BondHandler", err)
		return
	}
	c.JSON(http.StatusOK, models.BondResponse{
		Periods: b.Periods(),
		Coupon:  b.Coupon(),
		Price:   price,
		Yield:   *req.Yield,
	})
}

// Yield handles POST /api/v1/bonds/yield
func (h *BondHandler) Yield(c *gin.Context) {
	var req models.BondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Price == nil {
		badRequest(c, "price is required")
		return
	}
	b, err := buildBond(req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	y, err := b.YieldToMaturity(*req.Price)
	if err != nil {
		respondError(c, "BondHandler", err)
		return
	}
	c.JSON(http.StatusOK, models.BondResponse{
		Periods: b.Periods(),
		Coupon:  b.Coupon(),
		Price:   *req.Price,
		Yield:   y,
	})
}
