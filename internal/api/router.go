// Package api assembles the HTTP server.
package api

import (
	"net/http"

	"tvm-engine/internal/api/handlers"
	"tvm-engine/internal/api/middleware"
	"tvm-engine/internal/config"
	"tvm-engine/internal/data"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the middleware and routes for cfg. Sessions are kept in
// store.
func NewRouter(cfg *config.Config, store *data.SessionStore) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	tvmHandler := handlers.NewTVMHandler()
	cashFlowHandler := handlers.NewCashFlowHandler(store, cfg.Finance.DiscountRate, cfg.Finance.Solver.ToSolverParams())
	depreciationHandler := handlers.NewDepreciationHandler(cfg.Finance.DecliningFactor)
	forecastHandler := handlers.NewForecastHandler()
	bondHandler := handlers.NewBondHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": store.Len()})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/tvm/:variable", tvmHandler.Solve)

		api.POST("/cashflows/analyze", cashFlowHandler.Analyze)
		api.POST("/cashflows/rank", cashFlowHandler.Rank)
		api.POST("/cashflows", cashFlowHandler.Create)
		api.GET("/cashflows/:id", cashFlowHandler.Get)
		api.DELETE("/cashflows/:id", cashFlowHandler.Delete)
		api.POST("/cashflows/:id/flows", cashFlowHandler.AppendFlow)
		api.GET("/cashflows/:id/flows/:index", cashFlowHandler.GetFlow)

		api.GET("/depreciation/methods", depreciationHandler.ListMethods)
		api.POST("/depreciation", depreciationHandler.Build)

		api.POST("/forecast", forecastHandler.Forecast)

		api.POST("/bonds/price", bondHandler.Price)
		api.POST("/bonds/yield", bondHandler.Yield)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}
