package services

import (
	"encoding/json"
	"testing"
	"time"

	"syntora/model"
)

func TestStatsCacheEncodingKeepsVersion(t *testing.T) {
	stats := &model.GamingStats{
		UserID:         "user-1",
		Level:          3,
		XP:             42,
		XPToNext:       225,
		TodayPoints:    55,
		StreakCount:    6,
		BestStreak:     9,
		Combo:          2,
		LastActiveDate: "2026-03-10",
		Version:        7,
		UpdatedAt:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	data, err := encodeStats(stats)
	if err != nil {
		t.Fatalf("encodeStats: %v", err)
	}

	got, err := decodeStats(data)
	if err != nil {
		t.Fatalf("decodeStats: %v", err)
	}

	if got.Version != 7 {
		t.Fatalf("version = %d after cache round-trip, want 7", got.Version)
	}
	if got.UserID != stats.UserID || got.Level != stats.Level || got.XP != stats.XP {
		t.Errorf("row fields lost in round-trip: got %+v", got)
	}
	if got.TodayPoints != 55 || got.StreakCount != 6 || got.Combo != 2 {
		t.Errorf("day state lost in round-trip: got %+v", got)
	}
}

func TestStatsRowJSONStillHidesVersion(t *testing.T) {
	stats := &model.GamingStats{UserID: "user-1", Version: 7}

	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["version"]; ok {
		t.Error("version must not appear in API responses")
	}
}

func TestDecodeStatsRejectsGarbage(t *testing.T) {
	if _, err := decodeStats([]byte("{not json")); err == nil {
		t.Fatal("expected decode error for malformed payload")
	}
}
