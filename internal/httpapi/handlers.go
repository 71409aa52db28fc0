// Package httpapi exposes the calculation engine over REST.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecobazaarx/carbon-engine/internal/carbon"
	"github.com/ecobazaarx/carbon-engine/internal/service"
	"github.com/ecobazaarx/carbon-engine/internal/stats"
	"github.com/ecobazaarx/carbon-engine/internal/storage"
)

// ServiceName and ServiceVersion identify the engine in health responses.
const (
	ServiceName    = "Carbon Footprint Calculation Service"
	ServiceVersion = "1.0.0"
)

const defaultLeaderboardLimit = 10

// Handler serves the carbon-footprint REST endpoints.
type Handler struct {
	svc    *service.Service
	stats  *stats.Aggregator
	logger zerolog.Logger
}

// NewHandler creates a Handler over the calculation service and aggregator.
func NewHandler(svc *service.Service, agg *stats.Aggregator, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		stats:  agg,
		logger: logger,
	}
}

// Calculate handles POST /calculate.
func (h *Handler) Calculate(c *gin.Context) {
	var req carbon.FootprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.svc.Calculate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productName is required"})
			return
		}
		h.logger.Error().Err(err).Str("product", req.ProductName).Msg("calculation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "calculation failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UserHistory handles GET /user/:userId/history.
func (h *Handler) UserHistory(c *gin.Context) {
	history, err := h.svc.UserHistory(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.logger.Error().Err(err).Msg("listing user history failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// UserStatistics handles GET /user/:userId/statistics.
func (h *Handler) UserStatistics(c *gin.Context) {
	userStats, err := h.stats.UserStatistics(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.logger.Error().Err(err).Msg("aggregating user statistics failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, userStats)
}

// Record handles GET /record/:recordId.
func (h *Handler) Record(c *gin.Context) {
	resp, err := h.svc.GetRecord(c.Request.Context(), c.Param("recordId"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		h.logger.Error().Err(err).Msg("loading record failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load record"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

type compareRequest struct {
	ProductIDs []string `json:"productIds"`
}

// Compare handles POST /compare.
func (h *Handler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ProductIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Product IDs are required",
		})
		return
	}

	comparison, err := h.stats.CompareProducts(c.Request.Context(), req.ProductIDs)
	if err != nil {
		h.logger.Error().Err(err).Msg("comparing products failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error comparing products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"comparison": comparison,
	})
}

// CategoryBenchmark handles GET /category/:category/benchmark.
func (h *Handler) CategoryBenchmark(c *gin.Context) {
	bench, err := h.stats.CategoryBenchmark(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.logger.Error().Err(err).Msg("computing category benchmark failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute benchmark"})
		return
	}
	c.JSON(http.StatusOK, bench)
}

// Leaderboard handles GET /leaderboard?limit=N.
func (h *Handler) Leaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	board, err := h.stats.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("computing leaderboard failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute leaderboard"})
		return
	}
	c.JSON(http.StatusOK, board)
}

// Categories handles GET /categories.
func (h *Handler) Categories(c *gin.Context) {
	overview, err := h.stats.CategoriesOverview(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("computing categories overview failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Tips handles GET /tips/:category.
func (h *Handler) Tips(c *gin.Context) {
	category := c.Param("category")
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"tips":     service.CategoryTips(category),
	})
}

// InitializeFactors handles POST /initialize-emission-factors.
func (h *Handler) InitializeFactors(c *gin.Context) {
	count, err := h.svc.SeedDefaultFactors(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("seeding emission factors failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to initialize emission factors",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Emission factors initialized successfully",
		"count":   count,
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     ServiceName,
		"version":     ServiceVersion,
		"methodology": service.CalculationMethod,
	})
}
