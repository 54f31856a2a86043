package model

import "time"

// DateLayout is the format used for last_active_date and history dates.
const DateLayout = "2006-01-02"

// GamingStats is the single mutable gamification row per user.
type GamingStats struct {
	StatsID         string    `bson:"_id,omitempty" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	Level           int       `bson:"level" json:"level"`
	XP              int       `bson:"xp" json:"xp"`
	XPToNext        int       `bson:"xp_to_next" json:"xp_to_next"`
	TodayPoints     int       `bson:"today_points" json:"today_points"`
	StreakCount     int       `bson:"streak_count" json:"streak_count"`
	BestStreak      int       `bson:"best_streak" json:"best_streak"`
	Combo           int       `bson:"combo" json:"combo"`
	AllDayComplete  bool      `bson:"all_day_complete" json:"all_day_complete"`
	TotalDaysActive int       `bson:"total_days_active" json:"total_days_active"`
	LastActiveDate  string    `bson:"last_active_date" json:"last_active_date"`
	Version         int64     `bson:"version" json:"-"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultGamingStats is the lazily created first row for a user.
func DefaultGamingStats(userID string, today string) *GamingStats {
	return &GamingStats{
		UserID:         userID,
		Level:          1,
		XP:             0,
		XPToNext:       100,
		LastActiveDate: today,
		UpdatedAt:      time.Now(),
	}
}

// DailyStatsHistory is the append-only archive row written at each daily
// reset boundary for a day that had activity.
type DailyStatsHistory struct {
	EntryID           string    `bson:"_id,omitempty" json:"id"`
	UserID            string    `bson:"user_id" json:"user_id"`
	Date              string    `bson:"date" json:"date"`
	PointsEarned      int       `bson:"points_earned" json:"points_earned"`
	TasksCompleted    int       `bson:"tasks_completed" json:"tasks_completed"`
	MaxCombo          int       `bson:"max_combo" json:"max_combo"`
	AllDayCompleted   bool      `bson:"all_day_completed" json:"all_day_completed"`
	XPGained          int       `bson:"xp_gained" json:"xp_gained"`
	ProductivityScore int       `bson:"productivity_score" json:"productivity_score"`
	EnergyLevel       int       `bson:"energy_level" json:"energy_level"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}
