package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"syntora/repository"
	"syntora/usecase"
)

// DailyResetHandler exposes the day-boundary transition. The response
// shape is part of the client contract and is emitted verbatim rather
// than through the standard envelope.
type DailyResetHandler struct {
	stats *usecase.StatsService
}

func NewDailyResetHandler(stats *usecase.StatsService) *DailyResetHandler {
	return &DailyResetHandler{stats: stats}
}

func (h *DailyResetHandler) Reset(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := h.stats.ResetDaily(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrStatsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No gaming stats found"})
			return
		}
		log.Printf("Error resetting daily stats for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset daily stats"})
		return
	}

	if result.AlreadyReset {
		c.JSON(http.StatusOK, gin.H{
			"message": "Already reset today",
			"stats":   result.Stats,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Daily reset completed successfully",
		"stats":             result.Stats,
		"previousDayPoints": result.PreviousDayPoints,
	})
}
