package usecase

import (
	"context"
	"time"

	"syntora/model"
)

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	defaultLookback = 12
	maxLookback     = 52
)

// AnalyticsResult bundles everything the analytics endpoint returns in a
// single round trip.
type AnalyticsResult struct {
	Analytics    any                 `json:"analytics"`
	Achievements []model.Achievement `json:"achievements"`
	CurrentStats *model.GamingStats  `json:"currentStats"`
}

type AnalyticsService struct {
	history HistoryStore
	stats   *StatsService
	tasks   TaskStore

	now func() time.Time
}

func NewAnalyticsService(history HistoryStore, stats *StatsService, tasks TaskStore) *AnalyticsService {
	return &AnalyticsService{
		history: history,
		stats:   stats,
		tasks:   tasks,
		now:     time.Now,
	}
}

// GetAnalytics aggregates archived history into weekly or monthly buckets
// and attaches the user's achievement state and live stats row.
func (svc *AnalyticsService) GetAnalytics(ctx context.Context, userID, period string, lookback int) (*AnalyticsResult, error) {
	if period != PeriodMonthly {
		period = PeriodWeekly
	}
	if lookback <= 0 {
		lookback = defaultLookback
	}
	if lookback > maxLookback {
		lookback = maxLookback
	}

	now := svc.now()

	var from time.Time
	if period == PeriodWeekly {
		from = now.AddDate(0, 0, -lookback*7)
	} else {
		from = now.AddDate(0, -lookback, 0)
	}

	entries, err := svc.history.GetRange(ctx, userID,
		from.Format(model.DateLayout), now.Format(model.DateLayout))
	if err != nil {
		return nil, err
	}

	var analytics any
	if period == PeriodWeekly {
		analytics = bucketWeekly(entries, lookback, now)
	} else {
		analytics = bucketMonthly(entries, lookback, now)
	}

	tasks, err := svc.tasks.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievements := EvaluateAchievements(model.AchievementDefinitions, tasks, now)

	stats, err := svc.stats.GetOrInit(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AnalyticsResult{
		Analytics:    analytics,
		Achievements: achievements,
		CurrentStats: stats,
	}, nil
}

// weekStart returns the Sunday beginning the week containing t.
func weekStart(t time.Time) time.Time {
	day := t.AddDate(0, 0, -int(t.Weekday()))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// bucketWeekly produces lookback buckets, oldest first, week_number 1 being
// the current week.
func bucketWeekly(entries []*model.DailyStatsHistory, lookback int, now time.Time) []model.WeeklyBucket {
	buckets := make([]model.WeeklyBucket, 0, lookback)

	for i := lookback - 1; i >= 0; i-- {
		start := weekStart(now.AddDate(0, 0, -i*7))
		end := start.AddDate(0, 0, 6)

		bucket := model.WeeklyBucket{
			WeekStart:  start.Format(model.DateLayout),
			WeekNumber: i + 1,
		}

		var productivitySum float64
		for _, e := range entries {
			day, err := time.Parse(model.DateLayout, e.Date)
			if err != nil || day.Before(start) || day.After(end) {
				continue
			}
			bucket.TotalPoints += e.PointsEarned
			bucket.TotalTasks += e.TasksCompleted
			bucket.DaysActive++
			productivitySum += float64(e.ProductivityScore)
		}
		if bucket.DaysActive > 0 {
			bucket.AverageProductivity = productivitySum / float64(bucket.DaysActive)
		}

		buckets = append(buckets, bucket)
	}
	return buckets
}

func bucketMonthly(entries []*model.DailyStatsHistory, lookback int, now time.Time) []model.MonthlyBucket {
	buckets := make([]model.MonthlyBucket, 0, lookback)

	for i := lookback - 1; i >= 0; i-- {
		month := now.AddDate(0, -i, 0)
		start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
		end := start.AddDate(0, 1, -1)

		bucket := model.MonthlyBucket{
			MonthStart: start.Format(model.DateLayout),
		}

		var productivitySum float64
		for _, e := range entries {
			day, err := time.Parse(model.DateLayout, e.Date)
			if err != nil || day.Before(start) || day.After(end) {
				continue
			}
			bucket.TotalPoints += e.PointsEarned
			bucket.TotalTasks += e.TasksCompleted
			bucket.DaysActive++
			productivitySum += float64(e.ProductivityScore)
			if e.PointsEarned > bucket.BestDayPoints {
				bucket.BestDayPoints = e.PointsEarned
			}
		}
		if bucket.DaysActive > 0 {
			bucket.AverageProductivity = productivitySum / float64(bucket.DaysActive)
		}

		buckets = append(buckets, bucket)
	}
	return buckets
}
