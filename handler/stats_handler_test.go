package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"syntora/model"
	"syntora/usecase"
)

func setupStatsRouter(store *fakeStatsStore, history *fakeHistoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	statsService := usecase.NewStatsService(store, history, nil)
	statsHandler := NewStatsHandler(statsService)

	router := gin.New()
	router.GET("/api/stats", mockAuth, statsHandler.GetStats)
	router.GET("/api/stats/history", mockAuth, statsHandler.GetHistory)
	return router
}

func TestGetStatsCreatesDefaultRow(t *testing.T) {
	router := setupStatsRouter(newFakeStatsStore(), &fakeHistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Data struct {
			Stats *model.GamingStats `json:"stats"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	stats := body.Data.Stats
	if stats == nil {
		t.Fatal("expected stats in response")
	}
	if stats.Level != 1 || stats.XPToNext != 100 || stats.TodayPoints != 0 {
		t.Errorf("unexpected defaults: %+v", stats)
	}
	if stats.LastActiveDate != time.Now().Format(model.DateLayout) {
		t.Errorf("last_active_date = %s, want today", stats.LastActiveDate)
	}
}

func TestGetHistoryReturnsRecentEntries(t *testing.T) {
	history := &fakeHistoryStore{entries: []*model.DailyStatsHistory{
		{UserID: "user-1", Date: "2026-03-09", PointsEarned: 45},
		{UserID: "user-1", Date: "2026-03-10", PointsEarned: 60},
		{UserID: "someone-else", Date: "2026-03-10", PointsEarned: 99},
	}}
	router := setupStatsRouter(newFakeStatsStore(), history)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/history?days=7", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Data struct {
			History []*model.DailyStatsHistory `json:"history"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Data.History) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(body.Data.History))
	}
	if body.Data.History[0].Date != "2026-03-10" {
		t.Errorf("most recent entry first, got %s", body.Data.History[0].Date)
	}
}

func TestGetStatsUnauthenticated(t *testing.T) {
	router := setupStatsRouter(newFakeStatsStore(), &fakeHistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
