package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"syntora/model"
	"syntora/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrStatsNotFound = errors.New("gaming stats not found")

	// ErrStatsConflict signals a lost compare-and-swap race; the caller
	// should re-read and retry the whole mutation.
	ErrStatsConflict = errors.New("gaming stats modified concurrently")
)

type StatsRepo struct {
	MongoCollection *mongo.Collection
}

func GetStatsRepo(client *mongo.Client) *StatsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("STATS_COLLECTION", "gaming_stats")
	return &StatsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *StatsRepo) GetByUser(ctx context.Context, userID string) (*model.GamingStats, error) {
	timer := utils.TrackDBOperation("find", "gaming_stats")
	defer timer.ObserveDuration()

	var stats model.GamingStats
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&stats)
	if err == mongo.ErrNoDocuments {
		return nil, ErrStatsNotFound
	}
	if err != nil {
		utils.TrackError("database", "stats_fetch_failed")
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepo) Insert(ctx context.Context, stats *model.GamingStats) error {
	timer := utils.TrackDBOperation("insert", "gaming_stats")
	defer timer.ObserveDuration()

	if stats.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	stats.Version = 1
	stats.UpdatedAt = time.Now()
	_, err := r.MongoCollection.InsertOne(ctx, stats)
	if err != nil {
		utils.TrackError("database", "stats_creation_failed")
		return err
	}
	return nil
}

// Update persists a full stats mutation guarded by the version the caller
// read. A stale version matches no document and returns ErrStatsConflict,
// so concurrent writers never interleave partial state.
func (r *StatsRepo) Update(ctx context.Context, stats *model.GamingStats) error {
	timer := utils.TrackDBOperation("update", "gaming_stats")
	defer timer.ObserveDuration()

	readVersion := stats.Version
	stats.Version = readVersion + 1
	stats.UpdatedAt = time.Now()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": stats.UserID, "version": readVersion},
		bson.M{"$set": bson.M{
			"level":             stats.Level,
			"xp":                stats.XP,
			"xp_to_next":        stats.XPToNext,
			"today_points":      stats.TodayPoints,
			"streak_count":      stats.StreakCount,
			"best_streak":       stats.BestStreak,
			"combo":             stats.Combo,
			"all_day_complete":  stats.AllDayComplete,
			"total_days_active": stats.TotalDaysActive,
			"last_active_date":  stats.LastActiveDate,
			"version":           stats.Version,
			"updated_at":        stats.UpdatedAt,
		}})
	if err != nil {
		utils.TrackError("database", "stats_update_failed")
		stats.Version = readVersion
		return err
	}
	if result.MatchedCount == 0 {
		stats.Version = readVersion
		utils.TrackError("database", "stats_version_conflict")
		return ErrStatsConflict
	}
	return nil
}

// UpdateReset applies the daily reset transition guarded by the pre-reset
// last_active_date. Two racing resets cannot both match, so at most one
// boundary crossing happens per user per day.
func (r *StatsRepo) UpdateReset(ctx context.Context, stats *model.GamingStats, prevActiveDate string) error {
	timer := utils.TrackDBOperation("update", "gaming_stats")
	defer timer.ObserveDuration()

	stats.UpdatedAt = time.Now()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": stats.UserID, "last_active_date": prevActiveDate},
		bson.M{
			"$set": bson.M{
				"today_points":      stats.TodayPoints,
				"combo":             stats.Combo,
				"all_day_complete":  stats.AllDayComplete,
				"streak_count":      stats.StreakCount,
				"best_streak":       stats.BestStreak,
				"total_days_active": stats.TotalDaysActive,
				"last_active_date":  stats.LastActiveDate,
				"updated_at":        stats.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		utils.TrackError("database", "stats_reset_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "stats_reset_conflict")
		return ErrStatsConflict
	}
	stats.Version++
	return nil
}
