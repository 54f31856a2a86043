package handler

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"syntora/model"
	"syntora/usecase"
	"syntora/utils"
)

// AchievementsHandler recomputes achievement state from live task data on
// every request; nothing is persisted.
type AchievementsHandler struct {
	tasks usecase.TaskStore
}

func NewAchievementsHandler(tasks usecase.TaskStore) *AchievementsHandler {
	return &AchievementsHandler{tasks: tasks}
}

func (h *AchievementsHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	tasks, err := h.tasks.GetUserTasks(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching tasks for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch achievements")
		return
	}

	achievements := usecase.EvaluateAchievements(model.AchievementDefinitions, tasks, time.Now())

	unlocked := 0
	for _, a := range achievements {
		if a.Unlocked {
			unlocked++
		}
	}

	utils.Success(c, gin.H{
		"achievements": achievements,
		"unlocked":     unlocked,
		"total":        len(achievements),
	})
}
