package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func checkHealth(checker func() bool) (int, HealthResponse) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", NewHealthController(checker).Check)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	var body HealthResponse
	json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestHealthCheck(t *testing.T) {
	t.Run("reports ok with a reachable database", func(t *testing.T) {
		code, body := checkHealth(func() bool { return true })
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if body.Service != "reading-tracker-api" {
			t.Errorf("expected service reading-tracker-api, got %q", body.Service)
		}
		if body.Status != "ok" || body.Database != "connected" {
			t.Errorf("expected ok/connected, got %s/%s", body.Status, body.Database)
		}
		if body.Timestamp == "" {
			t.Error("expected a timestamp")
		}
	})

	t.Run("reports degraded when the database is down", func(t *testing.T) {
		code, body := checkHealth(func() bool { return false })
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if body.Status != "degraded" || body.Database != "disconnected" {
			t.Errorf("expected degraded/disconnected, got %s/%s", body.Status, body.Database)
		}
	})
}
