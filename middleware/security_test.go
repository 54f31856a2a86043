package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupLimitedRouter(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestSizeLimiter(maxBytes))
	router.POST("/echo", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequestSizeLimiter(t *testing.T) {
	tests := []struct {
		name       string
		maxBytes   int64
		body       string
		wantStatus int
	}{
		{"under limit", 64, "small payload", http.StatusOK},
		{"over limit", 16, strings.Repeat("x", 64), http.StatusRequestEntityTooLarge},
		{"disabled", 0, strings.Repeat("x", 1024), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupLimitedRouter(tt.maxBytes)

			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusRequestEntityTooLarge && !strings.Contains(w.Body.String(), "Request body too large") {
				t.Errorf("expected rejection body, got %s", w.Body.String())
			}
		})
	}
}
