package handlers

import (
	"fmt"
	"math"
	"net/http"

	"tvm-engine/internal/api/models"
	"tvm-engine/internal/finance"

	"github.com/gin-gonic/gin"
)

// TVM variables accepted by POST /api/v1/tvm/:variable.
var tvmSolvers = map[string]func(r models.TVMRequest) (float64, error){
	"present-value": func(r models.TVMRequest) (float64, error) {
		return finance.PresentValue(r.Rate, r.Periods, r.Payment, r.FutureValue, r.Due), nil
	},
	"future-value": func(r models.TVMRequest) (float64, error) {
		return finance.FutureValue(r.Rate, r.Periods, r.PresentValue, r.Payment, r.Due), nil
	},
	"payment": func(r models.TVMRequest) (float64, error) {
		return finance.Payment(r.Rate, r.Periods, r.PresentValue, r.FutureValue, r.Due)
	},
	"periods": func(r models.TVMRequest) (float64, error) {
		return finance.Periods(r.Rate, r.PresentValue, r.Payment, r.FutureValue, r.Due)
	},
	"rate": func(r models.TVMRequest) (float64, error) {
		return finance.Rate(r.Periods, r.PresentValue, r.Payment, r.FutureValue, r.Due)
	},
}

// TVMHandler solves single TVM equations.
type TVMHandler struct{}

func NewTVMHandler() *TVMHandler {
	return &TVMHandler{}
}

// Solve handles POST /api/v1/tvm/:variable
func (h *TVMHandler) Solve(c *gin.Context) {
	variable := c.Param("variable")
	solve, ok := tvmSolvers[variable]
	if !ok {
		badRequest(c, fmt.Sprintf("unknown TVM variable %q (want present-value, future-value, payment, periods or rate)", variable))
		return
	}

	var req models.TVMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	v, err := solve(req)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("%s is not finite for these inputs: %w", variable, finance.ErrDomain)
	}
	if err != nil {
		respondError(c, "TVMHandler", err)
		return
	}

	c.JSON(http.StatusOK, models.TVMResponse{
		Variable: variable,
		Value:    v,
		Inputs:   req,
	})
}
