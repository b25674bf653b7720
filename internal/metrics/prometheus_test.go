package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNew(t *testing.T) {
	m := New()
	if m == nil {
		t.Fatal("expected non-nil metrics")
	}

	m.SessionsStarted.Inc()
	m.ActiveSessions.Inc()
	m.SegmentsForwarded.Add(3)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.SessionsStarted.Inc()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := m.Handler()(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "relay_sessions_started_total") {
		t.Error("expected relay_sessions_started_total in scrape output")
	}
}
