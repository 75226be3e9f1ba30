package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shelfmate/backend/internal/middleware"
	"shelfmate/backend/internal/model"
	"shelfmate/backend/internal/recommend"
)

// recommendTimeout caps one recommendation run end to end.
const recommendTimeout = 45 * time.Second

type recommendRequest struct {
	Mode    string             `json:"mode" binding:"required,oneof=collection taste"`
	Taste   string             `json:"taste"`
	Filters model.TasteFilters `json:"filters"`
}

// GetRecommendations runs the recommendation pipeline. The response is
// either a result (search_enabled marks it verified or fallback) or a single
// explanatory error; a malformed remote response never surfaces as one.
func (h *Handler) GetRecommendations(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: mode must be \"collection\" or \"taste\"",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	if req.Mode == model.ModeTaste && req.Taste == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Describe your taste to get taste-based recommendations",
			"code":  "TASTE_REQUIRED",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), recommendTimeout)
	defer cancel()

	result, err := h.recs.GetRecommendations(ctx, middleware.UserID(c), model.RecommendationRequest{
		Mode:    req.Mode,
		Taste:   req.Taste,
		Filters: req.Filters,
	})
	if errors.Is(err, recommend.ErrEmptyCollection) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Your collection is empty. Add some books before asking for recommendations.",
			"code":  "EMPTY_COLLECTION",
		})
		return
	}
	if errors.Is(err, context.Canceled) {
		// Client went away; nothing to apply the result to.
		c.Abort()
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error": "Recommendation request timed out. Please try again.",
			"code":  "TIMEOUT",
		})
		return
	}
	if err != nil {
		h.logger.Error("recommendation request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate recommendations. Please try again.",
			"code":  "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
