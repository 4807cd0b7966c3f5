package handlers

import (
	"errors"
	"log"
	"net/http"

	"tvm-engine/internal/api/models"
	"tvm-engine/internal/data"
	"tvm-engine/internal/depreciation"
	"tvm-engine/internal/finance"

	"github.com/gin-gonic/gin"
)

// errorDetail maps an engine error onto an HTTP status and error code.
// The more specific sentinels are checked first.
func errorDetail(err error) (int, models.ErrorDetail) {
	d := models.ErrorDetail{Message: err.Error()}
	status := http.StatusUnprocessableEntity

	switch {
	case errors.Is(err, finance.ErrDivergent):
		d.Code = "DIVERGENT"
	case errors.Is(err, finance.ErrNonConvergence):
		d.Code = "NON_CONVERGENCE"
	case errors.Is(err, finance.ErrNoPayback):
		d.Code = "DOMAIN_ERROR"
		d.Details = map[string]interface{}{"reason": "no_payback"}
	case errors.Is(err, depreciation.ErrUnsupportedLife):
		d.Code = "DOMAIN_ERROR"
		d.Details = map[string]interface{}{"supported_lives": depreciation.MacrsLives()}
	case errors.Is(err, finance.ErrDomain):
		d.Code = "DOMAIN_ERROR"
	case errors.Is(err, finance.ErrIndexOutOfRange):
		status, d.Code = http.StatusNotFound, "INDEX_OUT_OF_RANGE"
	case errors.Is(err, data.ErrSessionNotFound):
		status, d.Code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, depreciation.ErrUnknownMethod):
		status, d.Code = http.StatusBadRequest, "INVALID_REQUEST"
	default:
		status, d.Code = http.StatusInternalServerError, "INTERNAL_ERROR"
	}
	return status, d
}

// respondError writes err with the mapped status.
func respondError(c *gin.Context, handler string, err error) {
	status, d := errorDetail(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s: %v", handler, err)
	}
	c.JSON(status, models.ErrorResponse{Error: d})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: message,
		},
	})
}
