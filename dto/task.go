package dto

import (
	"time"

	"syntora/model"
)

type CreateTaskRequest struct {
	Title         string         `json:"title" binding:"required"`
	Description   string         `json:"description"`
	ShowGratitude bool           `json:"show_gratitude"`
	Priority      model.Priority `json:"priority"`
	Category      string         `json:"category"`
	Tags          []string       `json:"tags"`
	DueDate       time.Time      `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	ShowGratitude *bool          `json:"show_gratitude"`
	Priority      model.Priority `json:"priority"`
	Category      string         `json:"category"`
	Tags          []string       `json:"tags"`
	DueDate       *time.Time     `json:"due_date"`
}

type TaskResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Completed     bool           `json:"completed"`
	ShowGratitude bool           `json:"show_gratitude"`
	Priority      model.Priority `json:"priority,omitempty"`
	Category      string         `json:"category,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	DueDate       *time.Time     `json:"due_date,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func ToTaskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:            task.TaskID,
		Title:         task.Title,
		Description:   task.Description,
		Completed:     task.Completed,
		ShowGratitude: task.ShowGratitude,
		Priority:      task.Priority,
		Category:      task.Category,
		Tags:          task.Tags,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
	if !task.DueDate.IsZero() {
		resp.DueDate = &task.DueDate
	}
	if !task.CompletedAt.IsZero() {
		resp.CompletedAt = &task.CompletedAt
	}
	return resp
}

func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}
