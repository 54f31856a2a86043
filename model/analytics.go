package model

// WeeklyBucket aggregates history rows for one calendar week (Sunday start).
type WeeklyBucket struct {
	WeekStart           string  `json:"week_start"`
	TotalPoints         int     `json:"total_points"`
	TotalTasks          int     `json:"total_tasks"`
	AverageProductivity float64 `json:"average_productivity"`
	DaysActive          int     `json:"days_active"`
	WeekNumber          int     `json:"week_number"`
}

// MonthlyBucket aggregates history rows for one calendar month.
type MonthlyBucket struct {
	MonthStart          string  `json:"month_start"`
	TotalPoints         int     `json:"total_points"`
	TotalTasks          int     `json:"total_tasks"`
	AverageProductivity float64 `json:"average_productivity"`
	DaysActive          int     `json:"days_active"`
	BestDayPoints       int     `json:"best_day_points"`
}
