package usecase

import (
	"time"

	"syntora/model"
)

// taskCounters holds the aggregate facts achievement progress is derived
// from. Deriving them once keeps evaluation linear in the task count.
type taskCounters struct {
	completed     int
	gratitude     int
	highPriority  int
	categoryCount int
}

func countTasks(tasks []*model.Task) taskCounters {
	var c taskCounters
	categories := make(map[string]struct{})
	for _, t := range tasks {
		if t.Category != "" {
			categories[t.Category] = struct{}{}
		}
		if !t.Completed {
			continue
		}
		c.completed++
		if t.ShowGratitude {
			c.gratitude++
		}
		if t.Priority == model.PriorityHigh {
			c.highPriority++
		}
	}
	c.categoryCount = len(categories)
	return c
}

// EvaluateAchievements computes unlock state and progress for every
// definition against the user's current task list. The function is pure:
// the same definitions, tasks and evaluation time always yield the same
// result, so callers may recompute freely instead of persisting unlocks.
func EvaluateAchievements(defs []model.AchievementDefinition, tasks []*model.Task, evaluatedAt time.Time) []model.Achievement {
	counters := countTasks(tasks)

	out := make([]model.Achievement, 0, len(defs))
	for _, def := range defs {
		raw := rawProgress(def, counters)

		a := model.Achievement{AchievementDefinition: def}
		if def.Target <= 0 {
			out = append(out, a)
			continue
		}

		a.Progress = min(raw, def.Target)
		if raw >= def.Target {
			a.Unlocked = true
			a.UnlockedAt = evaluatedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, a)
	}
	return out
}

// rawProgress maps one definition to the counter that drives it.
func rawProgress(def model.AchievementDefinition, c taskCounters) int {
	switch def.ID {
	case "first_task", "task_master_10", "task_warrior_50", "task_legend_100", "productivity_god":
		return c.completed
	case "mindful_start", "gratitude_master", "spiritual_warrior":
		return c.gratitude
	case "high_priority_hero":
		return c.highPriority
	case "multitasker":
		return c.categoryCount
	default:
		// Behavioral achievements without a dedicated counter advance
		// slowly with overall completions.
		return min(c.completed/3, def.Target)
	}
}

// NewlyUnlocked returns the achievements unlocked in after but not in
// before. It is how a single completion reports its unlock notifications.
func NewlyUnlocked(before, after []model.Achievement) []model.Achievement {
	prev := make(map[string]bool, len(before))
	for _, a := range before {
		prev[a.ID] = a.Unlocked
	}
	var unlocked []model.Achievement
	for _, a := range after {
		if a.Unlocked && !prev[a.ID] {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}
