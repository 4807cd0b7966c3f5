package handlers

import (
	"net/http"

	"tvm-engine/internal/api/models"
	"tvm-engine/internal/depreciation"

	"github.com/gin-gonic/gin"
)

// DepreciationHandler builds depreciation schedules.
type DepreciationHandler struct {
	factor float64
}

// NewDepreciationHandler uses factor for declining-balance requests that
// do not name one.
func NewDepreciationHandler(factor float64) *DepreciationHandler {
	return &DepreciationHandler{factor: factor}
}

// ListMethods handles GET /api/v1/depreciation/methods
func (h *DepreciationHandler) ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, models.MethodsResponse{Methods: depreciation.Methods()})
}

// Build handles POST /api/v1/depreciation
func (h *DepreciationHandler) Build(c *gin.Context) {
	var req models.DepreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	asset := depreciation.Asset{
		StartingValue:   req.StartingValue,
		SalvageValue:    req.SalvageValue,
		UsefulLifeYears: req.UsefulLifeYears,
		StartMonth:      req.StartMonth,
	}
	if err := asset.Validate(); err != nil {
		respondError(c, "DepreciationHandler", err)
		return
	}

	factor := req.Factor
	if factor == 0 {
		factor = h.factor
	}
	method, err := depreciation.NewMethod(req.Method, asset, depreciation.MethodParams{Factor: factor})
	if err != nil {
		respondError(c, "DepreciationHandler", err)
		return
	}

	schedule, err := depreciation.New().Run(asset, method)
	if err != nil {
		respondError(c, "DepreciationHandler", err)
		return
	}

	resp := models.DepreciationResponse{
		Method:  schedule.Method,
		Periods: make([]depreciation.Period, 0, len(schedule.Periods)),
		Total:   depreciation.RoundCents(schedule.Total()),
	}
	for _, p := range schedule.Periods {
		resp.Periods = append(resp.Periods, depreciation.Period{
			Index:                   p.Index,
			DepreciationExpense:     depreciation.RoundCents(p.DepreciationExpense),
			AccumulatedDepreciation: depreciation.RoundCents(p.AccumulatedDepreciation),
			BookValue:               depreciation.RoundCents(p.BookValue),
		})
	}
	if req.DiscountRate != nil {
		if *req.DiscountRate <= -1 {
			badRequest(c, "discount_rate must be > -1")
			return
		}
		pv := depreciation.RoundCents(schedule.PresentValue(*req.DiscountRate))
		resp.PresentValue = &pv
	}
	c.JSON(http.StatusOK, resp)
}
