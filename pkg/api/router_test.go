package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/testutils"
	"github.com/gin-gonic/gin"
)

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}

	reportChan := make(chan core.RenderedReport, 1)
	router := NewRouter(logger, reportChan)
	engine := router.Handler()

	serve := func(t *testing.T, path string) *httptest.ResponseRecorder {
		t.Helper()
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, path, nil)
		if err != nil {
			t.Fatalf("Couldn't create request, received: %s", err)
		}
		engine.ServeHTTP(w, req)
		return w
	}

	t.Run("health", func(t *testing.T) {
		w := serve(t, "/health")
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, received: %d", w.Code)
		}
	})

	t.Run("badge before first run", func(t *testing.T) {
		w := serve(t, "/badge")
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 before any run, received: %d", w.Code)
		}
	})

	t.Run("report before first run", func(t *testing.T) {
		w := serve(t, "/report")
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 before any run, received: %d", w.Code)
		}
	})

	reportChan <- core.RenderedReport{
		Table:   "TOTAL  71%\n",
		Summary: "coverage 71% (114/160), 0 file(s) regressed, policy passed",
		Badge:   core.BadgePayload{Message: "71%", Color: "brightgreen", Percent: 71.25, Passed: true},
	}
	// the consumer goroutine caches the report
	waitForCache(t, router)

	t.Run("badge after run", func(t *testing.T) {
		w := serve(t, "/badge")
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, received: %d", w.Code)
			return
		}
		var badge core.BadgePayload
		if err := json.Unmarshal(w.Body.Bytes(), &badge); err != nil {
			t.Errorf("Couldn't unmarshal badge payload, received: %s", err)
			return
		}
		if badge.Message != "71%" || badge.Color != "brightgreen" || !badge.Passed {
			t.Errorf("Unexpected badge payload, received: %+v", badge)
		}
	})

	t.Run("report after run", func(t *testing.T) {
		w := serve(t, "/report")
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, received: %d", w.Code)
			return
		}
		var report core.RenderedReport
		if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
			t.Errorf("Couldn't unmarshal report, received: %s", err)
			return
		}
		if report.Summary == "" || report.Table == "" {
			t.Errorf("Unexpected report, received: %+v", report)
		}
	})
}

func waitForCache(t *testing.T, router Router) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if router.cache.Get() != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("report was not cached within deadline")
}
