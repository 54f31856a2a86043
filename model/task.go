package model

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Task struct {
	TaskID        string    `bson:"_id,omitempty" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Title         string    `bson:"title" json:"title" binding:"required"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	Completed     bool      `bson:"completed" json:"completed"`
	ShowGratitude bool      `bson:"show_gratitude" json:"show_gratitude"`
	Priority      Priority  `bson:"priority,omitempty" json:"priority,omitempty"`
	Category      string    `bson:"category,omitempty" json:"category,omitempty"`
	Tags          []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	DueDate       time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CompletedAt   time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// BasePoints returns the point value a completion of this task is worth.
// Gratitude tasks always outrank priority-based values.
func (t *Task) BasePoints() int {
	if t.ShowGratitude {
		return 25
	}
	switch t.Priority {
	case PriorityHigh:
		return 20
	case PriorityMedium:
		return 15
	default:
		return 10
	}
}
