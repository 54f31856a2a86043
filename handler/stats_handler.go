package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"syntora/usecase"
	"syntora/utils"
)

type StatsHandler struct {
	stats *usecase.StatsService
}

func NewStatsHandler(stats *usecase.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStats returns the user's gamification row, creating the default row
// on first access.
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.stats.GetOrInit(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching stats for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch stats")
		return
	}

	utils.Success(c, gin.H{"stats": stats})
}

// GetHistory returns archived days, most recent first. ?days= caps the
// window, defaulting to 30.
func (h *StatsHandler) GetHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	entries, err := h.stats.RecentHistory(c.Request.Context(), userID, days)
	if err != nil {
		log.Printf("Error fetching history for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch history")
		return
	}

	utils.Success(c, gin.H{"history": entries})
}
