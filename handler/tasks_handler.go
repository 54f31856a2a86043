package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"syntora/dto"
	"syntora/repository"
	"syntora/usecase"
	"syntora/utils"
)

type TasksHandler struct {
	tasks *usecase.TasksService
}

func NewTasksHandler(tasks *usecase.TasksService) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

func (h *TasksHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error listing tasks for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch tasks")
		return
	}

	utils.Success(c, gin.H{"tasks": dto.ToTaskResponses(tasks)})
}

func (h *TasksHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if isValidationErr(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("Error creating task for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to create task")
		return
	}

	utils.Created(c, gin.H{"task": dto.ToTaskResponse(task)})
}

func (h *TasksHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	taskID := c.Param("id")

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), taskID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			utils.NotFound(c, "Task not found")
		case isValidationErr(err):
			utils.BadRequest(c, err.Error())
		default:
			log.Printf("Error updating task %s: %v", taskID, err)
			utils.InternalError(c, "Failed to update task")
		}
		return
	}

	utils.Success(c, gin.H{"task": dto.ToTaskResponse(task)})
}

func (h *TasksHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	taskID := c.Param("id")

	if err := h.tasks.Delete(c.Request.Context(), taskID, userID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		log.Printf("Error deleting task %s: %v", taskID, err)
		utils.InternalError(c, "Failed to delete task")
		return
	}

	utils.Success(c, gin.H{"message": "Task deleted"})
}

// Toggle flips a task's completion and returns the gamification outcome
// alongside the task.
func (h *TasksHandler) Toggle(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	taskID := c.Param("id")

	result, err := h.tasks.ToggleComplete(c.Request.Context(), taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			utils.NotFound(c, "Task not found")
		case errors.Is(err, usecase.ErrStatsWriteConflict):
			utils.Conflict(c, "Stats update conflicted, please retry")
		default:
			log.Printf("Error toggling task %s: %v", taskID, err)
			utils.InternalError(c, "Failed to toggle task")
		}
		return
	}

	response := gin.H{"task": dto.ToTaskResponse(result.Task)}
	if result.XPGain != nil {
		response["xp_gain"] = result.XPGain
	}
	if len(result.NewlyUnlocked) > 0 {
		response["newly_unlocked"] = result.NewlyUnlocked
	}

	utils.Success(c, response)
}

func isValidationErr(err error) bool {
	return errors.Is(err, usecase.ErrInvalidPriority) ||
		errors.Is(err, usecase.ErrTooManyTags) ||
		errors.Is(err, usecase.ErrTagTooLong)
}
