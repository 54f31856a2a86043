package model

// AchievementDefinition is one entry of the static catalog. The catalog is
// read-only; unlocked/progress state is recomputed from live task data on
// every read and never persisted.
type AchievementDefinition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Target      int    `json:"target"`
	XPReward    int    `json:"xp_reward"`
	Hidden      bool   `json:"hidden,omitempty"`
}

// Achievement is the view model produced by the evaluator.
type Achievement struct {
	AchievementDefinition
	Unlocked   bool   `json:"unlocked"`
	Progress   int    `json:"progress"`
	UnlockedAt string `json:"unlocked_at,omitempty"`
}

const (
	CategoryProductivity = "productivity"
	CategoryConsistency  = "consistency"
	CategoryWellness     = "wellness"
	CategoryGoals        = "goals"
	CategorySpecial      = "special"
)

var AchievementDefinitions = []AchievementDefinition{
	{ID: "first_task", Title: "Getting Started", Description: "Complete your first task", Icon: "🎯", Category: CategoryProductivity, Difficulty: "bronze", Target: 1, XPReward: 10},
	{ID: "task_master_10", Title: "Task Master", Description: "Complete 10 tasks", Icon: "⚡", Category: CategoryProductivity, Difficulty: "bronze", Target: 10, XPReward: 50},
	{ID: "task_warrior_50", Title: "Task Warrior", Description: "Complete 50 tasks", Icon: "⚔️", Category: CategoryProductivity, Difficulty: "silver", Target: 50, XPReward: 150},
	{ID: "task_legend_100", Title: "Task Legend", Description: "Complete 100 tasks", Icon: "👑", Category: CategoryProductivity, Difficulty: "gold", Target: 100, XPReward: 300},
	{ID: "productivity_god", Title: "Productivity God", Description: "Complete 500 tasks", Icon: "🏆", Category: CategoryProductivity, Difficulty: "legendary", Target: 500, XPReward: 1000},

	{ID: "daily_grind_3", Title: "Daily Grind", Description: "Complete tasks for 3 consecutive days", Icon: "🔥", Category: CategoryConsistency, Difficulty: "bronze", Target: 3, XPReward: 30},
	{ID: "week_warrior", Title: "Week Warrior", Description: "Complete tasks for 7 consecutive days", Icon: "💪", Category: CategoryConsistency, Difficulty: "silver", Target: 7, XPReward: 100},
	{ID: "unstoppable_30", Title: "Unstoppable", Description: "Complete tasks for 30 consecutive days", Icon: "🚀", Category: CategoryConsistency, Difficulty: "gold", Target: 30, XPReward: 500},
	{ID: "consistency_legend", Title: "Consistency Legend", Description: "Complete tasks for 100 consecutive days", Icon: "💎", Category: CategoryConsistency, Difficulty: "platinum", Target: 100, XPReward: 1500},

	{ID: "mindful_start", Title: "Mindful Start", Description: "Complete your first spiritual/gratitude task", Icon: "🧘", Category: CategoryWellness, Difficulty: "bronze", Target: 1, XPReward: 25},
	{ID: "gratitude_master", Title: "Gratitude Master", Description: "Complete 25 spiritual/gratitude tasks", Icon: "🙏", Category: CategoryWellness, Difficulty: "silver", Target: 25, XPReward: 200},
	{ID: "spiritual_warrior", Title: "Spiritual Warrior", Description: "Complete 100 spiritual/gratitude tasks", Icon: "✨", Category: CategoryWellness, Difficulty: "gold", Target: 100, XPReward: 750},
	{ID: "zen_master", Title: "Zen Master", Description: "Achieve perfect work-life balance for a week", Icon: "☯️", Category: CategoryWellness, Difficulty: "platinum", Target: 7, XPReward: 400},

	{ID: "project_starter", Title: "Project Starter", Description: "Create your first project", Icon: "📋", Category: CategoryGoals, Difficulty: "bronze", Target: 1, XPReward: 20},
	{ID: "project_finisher", Title: "Project Finisher", Description: "Complete your first project", Icon: "🎯", Category: CategoryGoals, Difficulty: "silver", Target: 1, XPReward: 100},
	{ID: "deadline_destroyer", Title: "Deadline Destroyer", Description: "Complete 10 tasks before their due date", Icon: "⏰", Category: CategoryGoals, Difficulty: "silver", Target: 10, XPReward: 150},
	{ID: "high_priority_hero", Title: "High Priority Hero", Description: "Complete 20 high-priority tasks", Icon: "🦸", Category: CategoryGoals, Difficulty: "gold", Target: 20, XPReward: 250},

	{ID: "night_owl", Title: "Night Owl", Description: "Complete a task after 10 PM", Icon: "🦉", Category: CategorySpecial, Difficulty: "bronze", Target: 1, XPReward: 15, Hidden: true},
	{ID: "early_bird", Title: "Early Bird", Description: "Complete a task before 6 AM", Icon: "🌅", Category: CategorySpecial, Difficulty: "bronze", Target: 1, XPReward: 15, Hidden: true},
	{ID: "lightning_round", Title: "Lightning Round", Description: "Complete 10 tasks in one hour", Icon: "⚡", Category: CategorySpecial, Difficulty: "gold", Target: 10, XPReward: 300},
	{ID: "perfectionist", Title: "The Perfectionist", Description: "Rate 5 tasks as maximum difficulty and complete them", Icon: "💎", Category: CategorySpecial, Difficulty: "platinum", Target: 5, XPReward: 400},
	{ID: "comeback_king", Title: "Comeback King", Description: "Complete a task that was overdue by more than a week", Icon: "👑", Category: CategorySpecial, Difficulty: "silver", Target: 1, XPReward: 100, Hidden: true},
	{ID: "multitasker", Title: "Master Multitasker", Description: "Have tasks in 5 different categories", Icon: "🎭", Category: CategorySpecial, Difficulty: "silver", Target: 5, XPReward: 120},
	{ID: "habit_builder", Title: "Habit Builder", Description: "Maintain a daily habit for 21 consecutive days", Icon: "🏗️", Category: CategorySpecial, Difficulty: "gold", Target: 21, XPReward: 350},
}
