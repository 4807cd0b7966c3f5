package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"tvm-engine/internal/api/models"
	"tvm-engine/internal/forecast"

	"github.com/gin-gonic/gin"
)

const (
	defaultSmoothing    = 0.5
	defaultSeasonLength = 12
)

// ForecastHandler fits smoothing models.
type ForecastHandler struct{}

func NewForecastHandler() *ForecastHandler {
	return &ForecastHandler{}
}

func constantOr(v *float64) float64 {
	if v == nil {
		return defaultSmoothing
	}
	return *v
}

// Forecast handles POST /api/v1/forecast
func (h *ForecastHandler) Forecast(c *gin.Context) {
	var req models.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	model := strings.ToLower(strings.TrimSpace(req.Model))
	if model == "" {
		model = "single"
	}
	alpha, beta, gamma := constantOr(req.Alpha), constantOr(req.Beta), constantOr(req.Gamma)

	var (
		out []float64
		err error
	)
	switch model {
	case "single":
		out, err = forecast.ExponentialSmoothing(req.Series, req.Periods, alpha)
	case "double":
		out, err = forecast.DoubleExponentialSmoothing(req.Series, req.Periods, alpha, beta)
	case "triple":
		season := req.SeasonLength
		if season == 0 {
			season = defaultSeasonLength
		}
		out, err = forecast.TripleExponentialSmoothing(req.Series, req.Periods, season, alpha, beta, gamma)
	default:
		badRequest(c, fmt.Sprintf("unknown model %q (want single, double or triple)", req.Model))
		return
	}
	if err != nil {
		respondError(c, "ForecastHandler", err)
		return
	}

	n := len(req.Series)
	c.JSON(http.StatusOK, models.ForecastResponse{
		Model:    model,
		Fitted:   out[:n],
		Forecast: out[n:],
	})
}
