package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"syntora/dto"
	"syntora/model"
)

func newTestTasksService(t *testing.T, now time.Time) (*TasksService, *memTaskStore, *StatsService) {
	t.Helper()
	taskStore := newMemTaskStore()
	statsSvc := newTestStatsService(newMemStatsStore(), &memHistoryStore{}, now)
	svc := NewTasksService(taskStore, statsSvc)
	svc.now = func() time.Time { return now }
	return svc, taskStore, statsSvc
}

func TestCreateTaskValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *dto.CreateTaskRequest
		wantErr error
	}{
		{
			"valid task",
			&dto.CreateTaskRequest{Title: "Water the plants", Priority: model.PriorityLow},
			nil,
		},
		{
			"bad priority",
			&dto.CreateTaskRequest{Title: "Task", Priority: "urgent"},
			ErrInvalidPriority,
		},
		{
			"too many tags",
			&dto.CreateTaskRequest{Title: "Task", Tags: []string{"a", "b", "c", "d", "e", "f"}},
			ErrTooManyTags,
		},
		{
			"tag too long",
			&dto.CreateTaskRequest{Title: "Task", Tags: []string{"this-tag-is-way-too-long-to-keep"}},
			ErrTagTooLong,
		},
	}

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestTasksService(t, now)

			task, err := svc.Create(context.Background(), "user-1", tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if task.TaskID == "" {
					t.Error("expected generated task id")
				}
				if task.UserID != "user-1" {
					t.Errorf("user_id = %s, want user-1", task.UserID)
				}
			}
		})
	}
}

func TestToggleCompleteAccruesPoints(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _, statsSvc := newTestTasksService(t, now)
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{
		Title:         "Gratitude journal",
		ShowGratitude: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := svc.ToggleComplete(ctx, task.TaskID, "user-1")
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}

	if !result.Task.Completed {
		t.Error("task should be completed")
	}
	if result.XPGain == nil {
		t.Fatal("expected an XP gain event")
	}
	if result.XPGain.Points != 25 {
		t.Errorf("points = %d, want 25", result.XPGain.Points)
	}

	stats, _ := statsSvc.GetOrInit(ctx, "user-1")
	if stats.TodayPoints != 25 {
		t.Errorf("today_points = %d, want 25", stats.TodayPoints)
	}
	if !stats.AllDayComplete {
		t.Error("single task completed means all_day_complete")
	}

	// The first completion unlocks the starter achievements.
	ids := make(map[string]bool)
	for _, a := range result.NewlyUnlocked {
		ids[a.ID] = true
	}
	if !ids["first_task"] || !ids["mindful_start"] {
		t.Errorf("expected starter unlocks, got %v", ids)
	}
}

func TestToggleCompleteUndo(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _, statsSvc := newTestTasksService(t, now)
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{
		Title:    "Review PRs",
		Priority: model.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.ToggleComplete(ctx, task.TaskID, "user-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	result, err := svc.ToggleComplete(ctx, task.TaskID, "user-1")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}

	if result.Task.Completed {
		t.Error("task should be open again")
	}
	if result.XPGain != nil {
		t.Error("undo must not emit an XP gain event")
	}
	if len(result.NewlyUnlocked) != 0 {
		t.Error("undo must not report unlocks")
	}

	stats, _ := statsSvc.GetOrInit(ctx, "user-1")
	if stats.TodayPoints != 0 {
		t.Errorf("today_points = %d, want 0 after undo", stats.TodayPoints)
	}
	if stats.Combo != 0 {
		t.Errorf("combo = %d, want 0 after undo", stats.Combo)
	}
	if stats.AllDayComplete {
		t.Error("all_day_complete should clear on undo")
	}
}

func TestToggleCompleteAllDayFlag(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _, statsSvc := newTestTasksService(t, now)
	ctx := context.Background()

	first, _ := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{Title: "One"})
	second, _ := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{Title: "Two"})

	if _, err := svc.ToggleComplete(ctx, first.TaskID, "user-1"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	stats, _ := statsSvc.GetOrInit(ctx, "user-1")
	if stats.AllDayComplete {
		t.Error("one of two done is not all-day-complete")
	}

	if _, err := svc.ToggleComplete(ctx, second.TaskID, "user-1"); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	stats, _ = statsSvc.GetOrInit(ctx, "user-1")
	if !stats.AllDayComplete {
		t.Error("both done should set all_day_complete")
	}
}

func TestListOrdersOpenTasksFirst(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, store, _ := newTestTasksService(t, now)
	ctx := context.Background()

	store.CreateTask(ctx, &model.Task{TaskID: "done", UserID: "user-1", Title: "Done", Completed: true, Priority: model.PriorityHigh})
	store.CreateTask(ctx, &model.Task{TaskID: "low", UserID: "user-1", Title: "Low", Priority: model.PriorityLow})
	store.CreateTask(ctx, &model.Task{TaskID: "high", UserID: "user-1", Title: "High", Priority: model.PriorityHigh})

	tasks, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].TaskID != "high" {
		t.Errorf("first = %s, want high-priority open task", tasks[0].TaskID)
	}
	if tasks[2].TaskID != "done" {
		t.Errorf("last = %s, want completed task", tasks[2].TaskID)
	}
}
