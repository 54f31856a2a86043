package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"syntora/model"
	"syntora/repository"
	"syntora/usecase"
)

type fakeStatsStore struct {
	stats map[string]*model.GamingStats
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{stats: make(map[string]*model.GamingStats)}
}

func (f *fakeStatsStore) GetByUser(_ context.Context, userID string) (*model.GamingStats, error) {
	s, ok := f.stats[userID]
	if !ok {
		return nil, repository.ErrStatsNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStatsStore) Insert(_ context.Context, stats *model.GamingStats) error {
	cp := *stats
	f.stats[stats.UserID] = &cp
	return nil
}

func (f *fakeStatsStore) Update(_ context.Context, stats *model.GamingStats) error {
	cp := *stats
	f.stats[stats.UserID] = &cp
	return nil
}

func (f *fakeStatsStore) UpdateReset(_ context.Context, stats *model.GamingStats, prevActiveDate string) error {
	current, ok := f.stats[stats.UserID]
	if !ok || current.LastActiveDate != prevActiveDate {
		return repository.ErrStatsConflict
	}
	cp := *stats
	f.stats[stats.UserID] = &cp
	return nil
}

type fakeHistoryStore struct {
	entries []*model.DailyStatsHistory
}

func (f *fakeHistoryStore) InsertEntry(_ context.Context, entry *model.DailyStatsHistory) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryStore) GetRange(_ context.Context, userID, from, to string) ([]*model.DailyStatsHistory, error) {
	var out []*model.DailyStatsHistory
	for _, e := range f.entries {
		if e.UserID == userID && e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHistoryStore) GetRecent(_ context.Context, userID string, limit int) ([]*model.DailyStatsHistory, error) {
	var out []*model.DailyStatsHistory
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func mockAuth(c *gin.Context) {
	if userID := c.GetHeader("X-User-ID"); userID != "" {
		c.Set("user_id", userID)
	}
	c.Next()
}

func setupResetRouter(store *fakeStatsStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	statsService := usecase.NewStatsService(store, &fakeHistoryStore{}, nil)
	resetHandler := NewDailyResetHandler(statsService)

	router := gin.New()
	router.POST("/api/functions/daily-reset", mockAuth, resetHandler.Reset)
	return router
}

func postReset(t *testing.T, router *gin.Engine, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/functions/daily-reset", nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDailyResetHandlerNoStats(t *testing.T) {
	router := setupResetRouter(newFakeStatsStore())

	w := postReset(t, router, "ghost")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["error"] != "No gaming stats found" {
		t.Errorf("error = %q, want %q", body["error"], "No gaming stats found")
	}
}

func TestDailyResetHandlerAlreadyReset(t *testing.T) {
	store := newFakeStatsStore()
	store.stats["user-1"] = &model.GamingStats{
		UserID:         "user-1",
		Level:          1,
		XPToNext:       100,
		TodayPoints:    40,
		LastActiveDate: time.Now().Format(model.DateLayout),
	}
	router := setupResetRouter(store)

	w := postReset(t, router, "user-1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["message"] != "Already reset today" {
		t.Errorf("message = %q, want %q", body["message"], "Already reset today")
	}
	if _, exists := body["previousDayPoints"]; exists {
		t.Error("no-op response must not carry previousDayPoints")
	}
	if body["stats"] == nil {
		t.Error("response must include stats")
	}
}

func TestDailyResetHandlerPerformsReset(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format(model.DateLayout)
	store := newFakeStatsStore()
	store.stats["user-1"] = &model.GamingStats{
		UserID:         "user-1",
		Level:          1,
		XPToNext:       100,
		TodayPoints:    30,
		StreakCount:    2,
		LastActiveDate: yesterday,
	}
	router := setupResetRouter(store)

	w := postReset(t, router, "user-1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Message           string             `json:"message"`
		Stats             *model.GamingStats `json:"stats"`
		PreviousDayPoints *int               `json:"previousDayPoints"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Message != "Daily reset completed successfully" {
		t.Errorf("message = %q", body.Message)
	}
	if body.PreviousDayPoints == nil || *body.PreviousDayPoints != 30 {
		t.Errorf("previousDayPoints = %v, want 30", body.PreviousDayPoints)
	}
	if body.Stats == nil || body.Stats.TodayPoints != 0 {
		t.Error("returned stats should have today_points cleared")
	}
	if body.Stats.StreakCount != 3 {
		t.Errorf("streak = %d, want 3", body.Stats.StreakCount)
	}
}

func TestDailyResetHandlerUnauthenticated(t *testing.T) {
	router := setupResetRouter(newFakeStatsStore())

	w := postReset(t, router, "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
