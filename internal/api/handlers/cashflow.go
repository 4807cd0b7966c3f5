package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

	"tvm-engine/internal/analysis"
	"tvm-engine/internal/api/models"
	"tvm-engine/internal/data"
	"tvm-engine/internal/finance"

	"github.com/gin-gonic/gin"
)

// CashFlowHandler serves stateless analysis, ranking and stored series.
type CashFlowHandler struct {
	sessions *data.SessionStore
	rate     float64
	solver   finance.SolverParams
}

// NewCashFlowHandler creates a handler that stores series in sessions and
// falls back to rate and solver when a request leaves them out.
func NewCashFlowHandler(sessions *data.SessionStore, rate float64, solver finance.SolverParams) *CashFlowHandler {
	return &CashFlowHandler{sessions: sessions, rate: rate, solver: solver}
}

func (h *CashFlowHandler) rateOr(r *float64) (float64, error) {
	if r == nil {
		return h.rate, nil
	}
	if math.IsNaN(*r) || *r <= -1 {
		return 0, fmt.Errorf("rate must be > -1, got %g", *r)
	}
	return *r, nil
}

func (h *CashFlowHandler) solverWith(o *models.SolverOverride) finance.SolverParams {
	p := h.solver
	if o == nil {
		return p
	}
	if o.Tolerance != 0 {
		p.Tolerance = o.Tolerance
	}
	if o.MaxIterations != 0 {
		p.MaxIterations = o.MaxIterations
	}
	if o.DivergenceCeiling != 0 {
		p.DivergenceCeiling = o.DivergenceCeiling
	}
	return p
}

// series validates a request and builds its series.
func (h *CashFlowHandler) series(req models.CashFlowRequest) (*finance.CashFlowSeries, error) {
	rate, err := h.rateOr(req.Rate)
	if err != nil {
		return nil, err
	}
	s, err := finance.NewCashFlowSeries(req.Flows, rate)
	if err != nil {
		return nil, err
	}
	if err := s.SetSolver(h.solverWith(req.Solver)); err != nil {
		return nil, err
	}
	return s, nil
}

// Analyze handles POST /api/v1/cashflows/analyze
func (h *CashFlowHandler) Analyze(c *gin.Context) {
	var req models.CashFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	s, err := h.series(req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, metricsResponse(analysis.Evaluate(req.Name, s)))
}

// Rank handles POST /api/v1/cashflows/rank
func (h *CashFlowHandler) Rank(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	rate, err := h.rateOr(req.Rate)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	ranked, err := analysis.RankByNPV(req.Projects, rate, h.solver)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	resp := models.RankResponse{Rate: rate, Rankings: make([]models.Ranking, 0, len(ranked))}
	for _, r := range ranked {
		resp.Rankings = append(resp.Rankings, models.Ranking{
			Rank:            r.Rank,
			MetricsResponse: metricsResponse(r.ProjectMetrics),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/v1/cashflows
func (h *CashFlowHandler) Create(c *gin.Context) {
	var req models.CashFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	s, err := h.series(req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	sess := h.sessions.Create(req.Name, s)
	log.Printf("CashFlowHandler: created session %s with %d flows", sess.ID, len(req.Flows))
	c.JSON(http.StatusCreated, h.snapshot(sess))
}

// Get handles GET /api/v1/cashflows/:id
func (h *CashFlowHandler) Get(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, "CashFlowHandler", err)
		return
	}
	c.JSON(http.StatusOK, h.snapshot(sess))
}

// AppendFlow handles POST /api/v1/cashflows/:id/flows
func (h *CashFlowHandler) AppendFlow(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, "CashFlowHandler", err)
		return
	}
	var req models.AppendFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	_ = sess.Do(func(s *finance.CashFlowSeries) error {
		s.AddCashFlow(*req.Amount)
		return nil
	})
	c.JSON(http.StatusOK, h.snapshot(sess))
}

// GetFlow handles GET /api/v1/cashflows/:id/flows/:index
func (h *CashFlowHandler) GetFlow(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, "CashFlowHandler", err)
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "index must be an integer")
		return
	}

	var amount float64
	err = sess.Do(func(s *finance.CashFlowSeries) error {
		var err error
		amount, err = s.CashFlow(index)
		return err
	})
	if err != nil {
		respondError(c, "CashFlowHandler", err)
		return
	}
	c.JSON(http.StatusOK, models.FlowResponse{Index: index, Amount: amount})
}

// Delete handles DELETE /api/v1/cashflows/:id
func (h *CashFlowHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		respondError(c, "CashFlowHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CashFlowHandler) snapshot(sess *data.Session) models.SessionResponse {
	resp := models.SessionResponse{ID: sess.ID, CreatedAt: sess.CreatedAt}
	_ = sess.Do(func(s *finance.CashFlowSeries) error {
		resp.Flows = s.Flows()
		resp.Metrics = metricsResponse(analysis.Evaluate(sess.Name, s))
		return nil
	})
	return resp
}

// metricsResponse converts metrics for JSON. Non-finite values never
// reach the encoder.
func metricsResponse(m analysis.ProjectMetrics) models.MetricsResponse {
	resp := models.MetricsResponse{
		Name:              m.Name,
		Rate:              m.Rate,
		Count:             m.Count,
		IRR:               m.IRR,
		MIRR:              m.MIRR,
		Payback:           m.Payback,
		DiscountedPayback: m.DiscountedPayback,
	}

	errs := make(map[string]error, len(m.Errors))
	for name, err := range m.Errors {
		errs[name] = err
	}
	resp.TotalInflow = finiteOrNil(errs, "total_inflow", m.TotalInflow)
	resp.TotalOutflow = finiteOrNil(errs, "total_outflow", m.TotalOutflow)
	resp.NetCashFlow = finiteOrNil(errs, "net_cash_flow", m.NetCashFlow)
	resp.NPV = finiteOrNil(errs, "npv", m.NPV)

	if len(errs) > 0 {
		resp.Errors = make(map[string]models.ErrorDetail, len(errs))
		for name, err := range errs {
			_, d := errorDetail(err)
			resp.Errors[name] = d
		}
	}
	return resp
}

// finiteOrNil returns &v, or records a domain error under name when v
// cannot be encoded as JSON.
func finiteOrNil(errs map[string]error, name string, v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		errs[name] = fmt.Errorf("%s is not finite: %w", name, finance.ErrDomain)
		return nil
	}
	return &v
}
