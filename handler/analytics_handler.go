package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"syntora/usecase"
)

// AnalyticsHandler serves the dashboard aggregation endpoint. Like the
// daily reset, its response shape is a client contract emitted verbatim.
type AnalyticsHandler struct {
	analytics *usecase.AnalyticsService
}

func NewAnalyticsHandler(analytics *usecase.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	period := c.DefaultQuery("period", usecase.PeriodWeekly)
	lookback, _ := strconv.Atoi(c.DefaultQuery("lookback", "12"))

	result, err := h.analytics.GetAnalytics(c.Request.Context(), userID, period, lookback)
	if err != nil {
		log.Printf("Error building analytics for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analytics":    result.Analytics,
		"achievements": result.Achievements,
		"currentStats": result.CurrentStats,
	})
}
