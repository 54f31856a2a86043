package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"syntora/dto"
	"syntora/model"
)

var (
	ErrInvalidPriority = errors.New("invalid priority")
	ErrTooManyTags     = errors.New("maximum of 5 tags allowed")
	ErrTagTooLong      = errors.New("tags must be 20 characters or fewer")
)

// TaskStore is the persistence surface task workflows run against.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error)
	GetTask(ctx context.Context, taskID, userID string) (*model.Task, error)
	UpdateTask(ctx context.Context, taskID, userID string, updates bson.M) error
	DeleteTask(ctx context.Context, taskID, userID string) error
	SetCompleted(ctx context.Context, taskID, userID string, completed bool) error
}

// ToggleResult reports one completion flip plus whatever it earned.
type ToggleResult struct {
	Task          *model.Task         `json:"task"`
	XPGain        *XPGainEvent        `json:"xp_gain,omitempty"`
	NewlyUnlocked []model.Achievement `json:"newly_unlocked,omitempty"`
}

type TasksService struct {
	store TaskStore
	stats *StatsService

	now func() time.Time
}

func NewTasksService(store TaskStore, stats *StatsService) *TasksService {
	return &TasksService{
		store: store,
		stats: stats,
		now:   time.Now,
	}
}

func (svc *TasksService) Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*model.Task, error) {
	if err := validateTaskFields(req.Priority, req.Tags); err != nil {
		return nil, err
	}

	nowTime := svc.now()
	task := &model.Task{
		TaskID:        uuid.New().String(),
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		ShowGratitude: req.ShowGratitude,
		Priority:      req.Priority,
		Category:      req.Category,
		Tags:          req.Tags,
		DueDate:       req.DueDate,
		CreatedAt:     nowTime,
		UpdatedAt:     nowTime,
	}

	if err := svc.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the user's tasks ordered for display: open before done,
// higher priority first, then oldest due date.
func (svc *TasksService) List(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.store.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		wa, wb := priorityWeight(a.Priority), priorityWeight(b.Priority)
		if wa != wb {
			return wa > wb
		}
		if a.DueDate.IsZero() != b.DueDate.IsZero() {
			return !a.DueDate.IsZero()
		}
		return a.DueDate.Before(b.DueDate)
	})
	return tasks, nil
}

func (svc *TasksService) Get(ctx context.Context, taskID, userID string) (*model.Task, error) {
	return svc.store.GetTask(ctx, taskID, userID)
}

func (svc *TasksService) Update(ctx context.Context, taskID, userID string, req *dto.UpdateTaskRequest) (*model.Task, error) {
	if err := validateTaskFields(req.Priority, req.Tags); err != nil {
		return nil, err
	}

	updates := bson.M{"updated_at": svc.now()}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ShowGratitude != nil {
		updates["show_gratitude"] = *req.ShowGratitude
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}

	if err := svc.store.UpdateTask(ctx, taskID, userID, updates); err != nil {
		return nil, err
	}
	return svc.store.GetTask(ctx, taskID, userID)
}

func (svc *TasksService) Delete(ctx context.Context, taskID, userID string) error {
	return svc.store.DeleteTask(ctx, taskID, userID)
}

// ToggleComplete flips completion state and drives the gamification
// side effects: point accrual on completion, point claw-back on undo,
// the all-day-complete flag, and achievement unlock notifications.
func (svc *TasksService) ToggleComplete(ctx context.Context, taskID, userID string) (*ToggleResult, error) {
	task, err := svc.store.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	before, err := svc.store.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	prevAchievements := EvaluateAchievements(model.AchievementDefinitions, before, svc.now())

	completing := !task.Completed
	if err := svc.store.SetCompleted(ctx, taskID, userID, completing); err != nil {
		return nil, err
	}
	task.Completed = completing
	if completing {
		task.CompletedAt = svc.now()
	} else {
		task.CompletedAt = time.Time{}
	}

	result := &ToggleResult{Task: task}

	if completing {
		event, err := svc.stats.ApplyCompletion(ctx, userID, task)
		if err != nil {
			return nil, err
		}
		result.XPGain = event
	} else {
		if err := svc.stats.ApplyUncompletion(ctx, userID, task); err != nil {
			return nil, err
		}
	}

	after, err := svc.store.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	allDone := len(after) > 0
	for _, t := range after {
		if !t.Completed {
			allDone = false
			break
		}
	}
	if err := svc.stats.SetAllDayComplete(ctx, userID, allDone); err != nil {
		return nil, err
	}

	if completing {
		current := EvaluateAchievements(model.AchievementDefinitions, after, svc.now())
		result.NewlyUnlocked = NewlyUnlocked(prevAchievements, current)
	}

	return result, nil
}

func priorityWeight(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	case model.PriorityLow:
		return 1
	default:
		return 0
	}
}

func validateTaskFields(priority model.Priority, tags []string) error {
	switch priority {
	case "", model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
	default:
		return ErrInvalidPriority
	}
	if len(tags) > 5 {
		return ErrTooManyTags
	}
	for _, tag := range tags {
		if len(tag) > 20 {
			return ErrTagTooLong
		}
	}
	return nil
}
