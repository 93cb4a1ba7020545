package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/goodtune/countup/internal/activity"
	"github.com/goodtune/countup/internal/storage"
	"github.com/goodtune/countup/internal/storage/memory"
	"github.com/goodtune/countup/internal/stopwatch"
	"github.com/rs/zerolog"
)

// idleScheduler never fires; elapsed time is banked on pause
type idleScheduler struct{}

func (idleScheduler) Every(interval time.Duration, fn func()) stopwatch.CancelFunc {
	return func() {}
}

// brokenHistory fails every operation
type brokenHistory struct{}

func (brokenHistory) Prepend(ctx context.Context, record storage.Record) error {
	return errors.New("connection refused")
}

func (brokenHistory) List(ctx context.Context) ([]storage.Record, error) {
	return nil, errors.New("connection refused")
}

func (brokenHistory) Clear(ctx context.Context) error { return nil }
func (brokenHistory) Close() error                    { return nil }

func setupTestRouter(t *testing.T, history storage.HistoryStore) (*gin.Engine, *clock.Mock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock := clock.NewMock()
	engine := stopwatch.NewEngine(stopwatch.Config{
		Clock:     mock,
		Scheduler: idleScheduler{},
	}, zerolog.Nop())
	t.Cleanup(engine.Close)

	host := activity.NewHost(engine, history, activity.Config{Clock: mock}, zerolog.Nop())

	router := gin.New()
	SetupRoutes(router, NewHandlers(host, zerolog.Nop()))
	return router, mock
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	router, _ := setupTestRouter(t, memory.New())

	w := doRequest(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestActivityLifecycle(t *testing.T) {
	router, mock := setupTestRouter(t, memory.New())

	w := doRequest(t, router, http.MethodPut, "/api/activity/title", `{"title":"Write report"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("set title status = %d: %s", w.Code, w.Body.String())
	}
	snap := decode[activity.Snapshot](t, w)
	if snap.Title != "Write report" || !snap.Controls.CanStart {
		t.Errorf("snapshot after title = %+v", snap)
	}

	w = doRequest(t, router, http.MethodPost, "/api/activity/start", "")
	if w.Code != http.StatusOK {
		t.Fatalf("start status = %d: %s", w.Code, w.Body.String())
	}

	mock.Add(10 * time.Second)
	w = doRequest(t, router, http.MethodPost, "/api/activity/pause", "")
	snap = decode[activity.Snapshot](t, w)
	if snap.Running || snap.Elapsed != "00:00:10" {
		t.Errorf("snapshot after pause = %+v", snap)
	}

	mock.Add(time.Minute)
	doRequest(t, router, http.MethodPost, "/api/activity/toggle", "")
	mock.Add(25 * time.Second)

	w = doRequest(t, router, http.MethodPost, "/api/activity/finish", "")
	if w.Code != http.StatusOK {
		t.Fatalf("finish status = %d: %s", w.Code, w.Body.String())
	}
	finished := decode[struct {
		Record   storage.Record    `json:"record"`
		Activity activity.Snapshot `json:"activity"`
	}](t, w)
	if finished.Record.Title != "Write report" || finished.Record.Seconds != 35 {
		t.Errorf("finished record = %+v", finished.Record)
	}
	if finished.Activity.Title != "" || finished.Activity.Seconds != 0 {
		t.Errorf("activity after finish = %+v", finished.Activity)
	}

	w = doRequest(t, router, http.MethodGet, "/api/history", "")
	summary := decode[activity.Summary](t, w)
	if summary.Count != 1 || summary.TotalSeconds != 35 || summary.Total != "00:00:35" {
		t.Errorf("history = %+v", summary)
	}

	w = doRequest(t, router, http.MethodGet, "/api/activity", "")
	if snap = decode[activity.Snapshot](t, w); snap.Running {
		t.Errorf("activity = %+v, want idle", snap)
	}
}

func TestActivityErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"start without title", http.MethodPost, "/api/activity/start", "", http.StatusConflict},
		{"pause when idle", http.MethodPost, "/api/activity/pause", "", http.StatusConflict},
		{"resume without title", http.MethodPost, "/api/activity/resume", "", http.StatusConflict},
		{"finish without title", http.MethodPost, "/api/activity/finish", "", http.StatusConflict},
		{"title missing", http.MethodPut, "/api/activity/title", `{}`, http.StatusBadRequest},
		{"title malformed", http.MethodPut, "/api/activity/title", `{"title":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter(t, memory.New())

			w := doRequest(t, router, tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestTitleLockedWhileRunning(t *testing.T) {
	router, _ := setupTestRouter(t, memory.New())

	doRequest(t, router, http.MethodPut, "/api/activity/title", `{"title":"Task"}`)
	doRequest(t, router, http.MethodPost, "/api/activity/start", "")

	w := doRequest(t, router, http.MethodPut, "/api/activity/title", `{"title":"Other"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestStorageFailure(t *testing.T) {
	router, mock := setupTestRouter(t, brokenHistory{})

	doRequest(t, router, http.MethodPut, "/api/activity/title", `{"title":"Task"}`)
	doRequest(t, router, http.MethodPost, "/api/activity/start", "")
	mock.Add(5 * time.Second)
	doRequest(t, router, http.MethodPost, "/api/activity/pause", "")

	w := doRequest(t, router, http.MethodPost, "/api/activity/finish", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("finish status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	w = doRequest(t, router, http.MethodGet, "/api/history", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("history status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
