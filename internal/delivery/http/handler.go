package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/platecost/backend/internal/domain"
	"github.com/platecost/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	estimator *usecase.RecipeEstimator
}

// NewHandler creates a new HTTP handler
func NewHandler(estimator *usecase.RecipeEstimator) *Handler {
	return &Handler{estimator: estimator}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "platecost-backend",
		"version": "1.0.0",
	})
}

// estimateRequest is the wire shape of a cost estimation request
type estimateRequest struct {
	Ingredients []domain.Ingredient `json:"ingredients" binding:"required,min=1"`
	Servings    int                 `json:"servings"`
	Location    string              `json:"location"`
	TimeoutMs   int                 `json:"timeoutMs"`
}

// EstimateRecipeCost handles recipe cost estimation requests
func (h *Handler) EstimateRecipeCost(c *gin.Context) {
	if h.estimator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "estimation service unavailable",
		})
		return
	}

	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid request body",
			"detail": err.Error(),
		})
		return
	}

	result, err := h.estimator.EstimateRecipeCost(c.Request.Context(), usecase.EstimateRequest{
		Ingredients: req.Ingredients,
		Servings:    req.Servings,
		Location:    req.Location,
		Deadline:    time.Duration(req.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "estimation failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
