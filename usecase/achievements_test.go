package usecase

import (
	"reflect"
	"testing"
	"time"

	"syntora/model"
)

func completedTask(id string, mutate func(*model.Task)) *model.Task {
	t := &model.Task{TaskID: id, UserID: "user-1", Title: "Task " + id, Completed: true}
	if mutate != nil {
		mutate(t)
	}
	return t
}

func findAchievement(t *testing.T, achievements []model.Achievement, id string) model.Achievement {
	t.Helper()
	for _, a := range achievements {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %s not found", id)
	return model.Achievement{}
}

func TestEvaluateAchievementsCounters(t *testing.T) {
	tasks := []*model.Task{
		completedTask("1", func(task *model.Task) { task.ShowGratitude = true }),
		completedTask("2", func(task *model.Task) { task.Priority = model.PriorityHigh }),
		completedTask("3", nil),
		{TaskID: "4", UserID: "user-1", Title: "Open task", Category: "work"},
	}

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	achievements := EvaluateAchievements(model.AchievementDefinitions, tasks, now)

	if len(achievements) != len(model.AchievementDefinitions) {
		t.Fatalf("expected %d achievements, got %d", len(model.AchievementDefinitions), len(achievements))
	}

	tests := []struct {
		id           string
		wantProgress int
		wantUnlocked bool
	}{
		{"first_task", 1, true},
		{"task_master_10", 3, false},
		{"mindful_start", 1, true},
		{"gratitude_master", 1, false},
		{"high_priority_hero", 1, false},
		{"multitasker", 1, false},
	}
	for _, tt := range tests {
		a := findAchievement(t, achievements, tt.id)
		if a.Progress != tt.wantProgress {
			t.Errorf("%s: progress = %d, want %d", tt.id, a.Progress, tt.wantProgress)
		}
		if a.Unlocked != tt.wantUnlocked {
			t.Errorf("%s: unlocked = %v, want %v", tt.id, a.Unlocked, tt.wantUnlocked)
		}
	}
}

func TestEvaluateAchievementsDeterministic(t *testing.T) {
	tasks := []*model.Task{
		completedTask("1", func(task *model.Task) { task.ShowGratitude = true }),
		completedTask("2", nil),
	}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	first := EvaluateAchievements(model.AchievementDefinitions, tasks, now)
	second := EvaluateAchievements(model.AchievementDefinitions, tasks, now)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("same input must produce identical results")
	}
}

func TestEvaluateAchievementsProgressClamped(t *testing.T) {
	var tasks []*model.Task
	for i := 0; i < 15; i++ {
		tasks = append(tasks, completedTask(string(rune('a'+i)), nil))
	}

	achievements := EvaluateAchievements(model.AchievementDefinitions, tasks, time.Now())

	a := findAchievement(t, achievements, "task_master_10")
	if a.Progress != 10 {
		t.Errorf("progress = %d, want clamped to target 10", a.Progress)
	}
	if !a.Unlocked {
		t.Error("expected unlocked at 15 completions")
	}
	if a.UnlockedAt == "" {
		t.Error("unlocked achievement must carry unlocked_at")
	}
}

func TestEvaluateAchievementsZeroTarget(t *testing.T) {
	defs := []model.AchievementDefinition{
		{ID: "broken", Title: "Broken", Target: 0},
	}
	tasks := []*model.Task{completedTask("1", nil)}

	achievements := EvaluateAchievements(defs, tasks, time.Now())

	if achievements[0].Unlocked {
		t.Error("zero-target definition must never unlock")
	}
	if achievements[0].Progress != 0 {
		t.Errorf("progress = %d, want 0", achievements[0].Progress)
	}
}

func TestEvaluateAchievementsEmptyTasks(t *testing.T) {
	achievements := EvaluateAchievements(model.AchievementDefinitions, nil, time.Now())

	for _, a := range achievements {
		if a.Unlocked {
			t.Errorf("%s unlocked with no tasks", a.ID)
		}
		if a.Progress != 0 {
			t.Errorf("%s progress = %d with no tasks", a.ID, a.Progress)
		}
	}
}

func TestNewlyUnlocked(t *testing.T) {
	before := []*model.Task{}
	after := []*model.Task{completedTask("1", func(task *model.Task) { task.ShowGratitude = true })}

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	prev := EvaluateAchievements(model.AchievementDefinitions, before, now)
	curr := EvaluateAchievements(model.AchievementDefinitions, after, now)

	unlocked := NewlyUnlocked(prev, curr)

	ids := make(map[string]bool, len(unlocked))
	for _, a := range unlocked {
		ids[a.ID] = true
	}
	if !ids["first_task"] || !ids["mindful_start"] {
		t.Errorf("expected first_task and mindful_start, got %v", ids)
	}

	// Re-evaluating the same state unlocks nothing new.
	if again := NewlyUnlocked(curr, curr); len(again) != 0 {
		t.Errorf("expected no new unlocks, got %d", len(again))
	}
}
