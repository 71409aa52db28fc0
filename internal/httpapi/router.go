package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/ecobazaarx/carbon-engine/internal/metrics"
)

// NewRouter builds the gin engine with all carbon-footprint routes, the
// Prometheus endpoint and the metrics middleware.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.GinMiddleware())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/carbon-footprint")
	{
		api.POST("/calculate", h.Calculate)
		api.GET("/record/:recordId", h.Record)
		api.GET("/user/:userId/history", h.UserHistory)
		api.GET("/user/:userId/statistics", h.UserStatistics)
		api.POST("/compare", h.Compare)
		api.GET("/category/:category/benchmark", h.CategoryBenchmark)
		api.GET("/leaderboard", h.Leaderboard)
		api.GET("/categories", h.Categories)
		api.GET("/tips/:category", h.Tips)
		api.POST("/initialize-emission-factors", h.InitializeFactors)
		api.GET("/health", h.Health)
	}

	return router
}
