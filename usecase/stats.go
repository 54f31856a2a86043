package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"syntora/model"
	"syntora/repository"
	"syntora/utils"
)

// Stats mutations retry this many times on a lost compare-and-swap race
// before giving up.
const statsWriteRetries = 3

var ErrStatsWriteConflict = errors.New("stats write failed after retries")

// StatsStore is the persistence surface the gamification engine needs.
type StatsStore interface {
	GetByUser(ctx context.Context, userID string) (*model.GamingStats, error)
	Insert(ctx context.Context, stats *model.GamingStats) error
	Update(ctx context.Context, stats *model.GamingStats) error
	UpdateReset(ctx context.Context, stats *model.GamingStats, prevActiveDate string) error
}

type HistoryStore interface {
	InsertEntry(ctx context.Context, entry *model.DailyStatsHistory) error
	GetRange(ctx context.Context, userID, from, to string) ([]*model.DailyStatsHistory, error)
	GetRecent(ctx context.Context, userID string, limit int) ([]*model.DailyStatsHistory, error)
}

// StatsCache is the warm-row cache and reset-lock surface the engine talks
// to. Satisfied by services.StatsCache; a nil cache disables both.
type StatsCache interface {
	GetStats(ctx context.Context, userID string) (*model.GamingStats, error)
	SetStats(ctx context.Context, stats *model.GamingStats) error
	InvalidateStats(ctx context.Context, userID string) error
	AcquireResetLock(ctx context.Context, userID string) (bool, error)
	ReleaseResetLock(ctx context.Context, userID string) error
}

// XPGainEvent is emitted at most once per completion transition; the
// presentation layer uses it for XP toasts and level-up banners.
type XPGainEvent struct {
	Points    int  `json:"points"`
	XPGained  int  `json:"xp_gained"`
	Combo     int  `json:"combo"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveled_up"`
}

// ResetResult is what a daily reset trigger reports back.
type ResetResult struct {
	Stats             *model.GamingStats
	PreviousDayPoints int
	AlreadyReset      bool
}

type StatsService struct {
	store   StatsStore
	history HistoryStore
	cache   StatsCache

	// now is swappable in tests
	now func() time.Time
}

func NewStatsService(store StatsStore, history HistoryStore, cache StatsCache) *StatsService {
	return &StatsService{
		store:   store,
		history: history,
		cache:   cache,
		now:     time.Now,
	}
}

// GetOrInit returns the user's stats row, creating the default row on first
// access.
func (svc *StatsService) GetOrInit(ctx context.Context, userID string) (*model.GamingStats, error) {
	if svc.cache != nil {
		if cached, err := svc.cache.GetStats(ctx, userID); err == nil && cached != nil {
			return cached, nil
		}
	}

	stats, err := svc.store.GetByUser(ctx, userID)
	if errors.Is(err, repository.ErrStatsNotFound) {
		stats = model.DefaultGamingStats(userID, svc.today())
		if err := svc.store.Insert(ctx, stats); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	svc.fillCache(ctx, stats)
	return stats, nil
}

// ApplyCompletion accrues points, combo and XP for one task completion.
// The write is a version-guarded compare-and-swap: either the whole
// mutation lands or none of it does.
func (svc *StatsService) ApplyCompletion(ctx context.Context, userID string, task *model.Task) (*XPGainEvent, error) {
	var event *XPGainEvent

	err := svc.mutate(ctx, userID, func(stats *model.GamingStats) {
		points := task.BasePoints()

		stats.Combo++
		if stats.Combo >= 3 {
			points += 5
		}

		stats.TodayPoints += points

		xpGain := points * 3 / 2
		stats.XP += xpGain

		leveledUp := false
		for stats.XP >= stats.XPToNext {
			stats.XP -= stats.XPToNext
			stats.Level++
			stats.XPToNext = stats.XPToNext * 3 / 2
			leveledUp = true
		}

		event = &XPGainEvent{
			Points:    points,
			XPGained:  xpGain,
			Combo:     stats.Combo,
			Level:     stats.Level,
			LeveledUp: leveledUp,
		}
	})
	if err != nil {
		return nil, err
	}

	utils.TrackTaskCompletion(event.Points)
	if event.LeveledUp {
		utils.TrackLevelUp()
	}
	return event, nil
}

// ApplyUncompletion takes back the base point value of an undone completion
// and breaks the combo chain. XP is not clawed back.
func (svc *StatsService) ApplyUncompletion(ctx context.Context, userID string, task *model.Task) error {
	return svc.mutate(ctx, userID, func(stats *model.GamingStats) {
		stats.Combo = 0
		stats.TodayPoints -= task.BasePoints()
		if stats.TodayPoints < 0 {
			stats.TodayPoints = 0
		}
	})
}

// SetAllDayComplete records whether every planned task of the day is done.
func (svc *StatsService) SetAllDayComplete(ctx context.Context, userID string, complete bool) error {
	return svc.mutate(ctx, userID, func(stats *model.GamingStats) {
		stats.AllDayComplete = complete
	})
}

// ResetDaily closes out one user-day boundary. Calling it twice on the same
// day is a no-op; concurrent triggers resolve to at most one transition via
// the last_active_date guard on the write.
func (svc *StatsService) ResetDaily(ctx context.Context, userID string) (*ResetResult, error) {
	if svc.cache != nil {
		acquired, err := svc.cache.AcquireResetLock(ctx, userID)
		if err != nil {
			log.Printf("Reset lock unavailable for user %s: %v", userID, err)
		} else if !acquired {
			// Another trigger is mid-reset; report current state.
			stats, err := svc.store.GetByUser(ctx, userID)
			if err != nil {
				return nil, err
			}
			utils.TrackDailyReset("noop")
			return &ResetResult{Stats: stats, AlreadyReset: true}, nil
		} else {
			defer svc.cache.ReleaseResetLock(ctx, userID)
		}
	}

	stats, err := svc.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := svc.now()
	today := now.Format(model.DateLayout)

	if stats.LastActiveDate == today {
		utils.TrackDailyReset("noop")
		return &ResetResult{Stats: stats, AlreadyReset: true}, nil
	}

	previousDayPoints := stats.TodayPoints

	// Archive the finished day. History is best-effort: losing a row is
	// preferable to blocking the reset.
	if previousDayPoints > 0 {
		entry := &model.DailyStatsHistory{
			UserID:            userID,
			Date:              stats.LastActiveDate,
			PointsEarned:      previousDayPoints,
			TasksCompleted:    previousDayPoints / 15,
			MaxCombo:          stats.Combo,
			AllDayCompleted:   stats.AllDayComplete,
			XPGained:          previousDayPoints * 2,
			ProductivityScore: min(10, previousDayPoints/10),
			EnergyLevel:       5,
		}
		if err := svc.history.InsertEntry(ctx, entry); err != nil {
			utils.TrackError("database", "history_insert_failed")
			log.Printf("Error saving history for user %s: %v", userID, err)
		}
	}

	yesterday := now.AddDate(0, 0, -1).Format(model.DateLayout)
	if stats.LastActiveDate == yesterday && previousDayPoints > 0 {
		stats.StreakCount++
		if stats.StreakCount > stats.BestStreak {
			stats.BestStreak = stats.StreakCount
		}
	} else {
		// A gap, or a touched-but-pointless day: the streak breaks.
		stats.StreakCount = 0
	}

	prevActiveDate := stats.LastActiveDate
	stats.TodayPoints = 0
	stats.Combo = 0
	stats.AllDayComplete = false
	stats.LastActiveDate = today
	stats.TotalDaysActive++

	if err := svc.store.UpdateReset(ctx, stats, prevActiveDate); err != nil {
		if errors.Is(err, repository.ErrStatsConflict) {
			// Lost the race to a concurrent reset; surface its outcome.
			current, getErr := svc.store.GetByUser(ctx, userID)
			if getErr != nil {
				return nil, getErr
			}
			utils.TrackDailyReset("noop")
			return &ResetResult{Stats: current, AlreadyReset: true}, nil
		}
		utils.TrackDailyReset("failed")
		return nil, err
	}

	svc.invalidateCache(ctx, userID)
	utils.TrackDailyReset("completed")

	return &ResetResult{
		Stats:             stats,
		PreviousDayPoints: previousDayPoints,
	}, nil
}

// RecentHistory returns the newest archived days, most recent first.
func (svc *StatsService) RecentHistory(ctx context.Context, userID string, limit int) ([]*model.DailyStatsHistory, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	return svc.history.GetRecent(ctx, userID, limit)
}

// mutate runs a read-modify-write cycle against the stats row, retrying on
// compare-and-swap conflicts with concurrent writers.
func (svc *StatsService) mutate(ctx context.Context, userID string, apply func(*model.GamingStats)) error {
	for attempt := 0; attempt < statsWriteRetries; attempt++ {
		stats, err := svc.GetOrInit(ctx, userID)
		if err != nil {
			return err
		}

		apply(stats)

		err = svc.store.Update(ctx, stats)
		if err == nil {
			svc.invalidateCache(ctx, userID)
			svc.fillCache(ctx, stats)
			return nil
		}
		if !errors.Is(err, repository.ErrStatsConflict) {
			return err
		}
		svc.invalidateCache(ctx, userID)
	}
	return ErrStatsWriteConflict
}

func (svc *StatsService) today() string {
	return svc.now().Format(model.DateLayout)
}

func (svc *StatsService) fillCache(ctx context.Context, stats *model.GamingStats) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.SetStats(ctx, stats); err != nil {
		log.Printf("Failed to cache stats for user %s: %v", stats.UserID, err)
	}
}

func (svc *StatsService) invalidateCache(ctx context.Context, userID string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.InvalidateStats(ctx, userID); err != nil {
		log.Printf("Failed to invalidate stats cache for user %s: %v", userID, err)
	}
}
