package repository

import (
	"context"
	"os"
	"time"

	"syntora/model"
	"syntora/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HistoryRepo struct {
	MongoCollection *mongo.Collection
}

func GetHistoryRepo(client *mongo.Client) *HistoryRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("HISTORY_COLLECTION", "daily_stats_history")
	return &HistoryRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *HistoryRepo) InsertEntry(ctx context.Context, entry *model.DailyStatsHistory) error {
	timer := utils.TrackDBOperation("insert", "daily_stats_history")
	defer timer.ObserveDuration()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.MongoCollection.InsertOne(ctx, entry)
	if err != nil {
		utils.TrackError("database", "history_insert_failed")
		return err
	}
	return nil
}

// GetRange returns history rows for the user whose date lies in [from, to],
// ascending by date. Dates use the YYYY-MM-DD layout, which sorts
// lexicographically.
func (r *HistoryRepo) GetRange(ctx context.Context, userID, from, to string) ([]*model.DailyStatsHistory, error) {
	timer := utils.TrackDBOperation("find", "daily_stats_history")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": from, "$lte": to},
	}

	var entries []*model.DailyStatsHistory
	cursor, err := r.MongoCollection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		utils.TrackError("database", "history_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		utils.TrackError("database", "history_decode_failed")
		return nil, err
	}
	return entries, nil
}

func (r *HistoryRepo) GetRecent(ctx context.Context, userID string, limit int) ([]*model.DailyStatsHistory, error) {
	timer := utils.TrackDBOperation("find", "daily_stats_history")
	defer timer.ObserveDuration()

	var entries []*model.DailyStatsHistory
	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "date", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		utils.TrackError("database", "history_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		utils.TrackError("database", "history_decode_failed")
		return nil, err
	}
	return entries, nil
}
