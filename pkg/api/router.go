package api

import (
	"sync"

	"github.com/covlens/covlens/pkg/api/badge"
	"github.com/covlens/covlens/pkg/api/health"
	"github.com/covlens/covlens/pkg/api/report"
	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// Router for covlens
type Router struct {
	logger     lumber.Logger
	reportChan chan core.RenderedReport
	cache      *reportCache
}

// reportCache stores the rendered report of the last completed run for the
// badge and report handlers.
type reportCache struct {
	mu     sync.RWMutex
	report *core.RenderedReport
}

func (c *reportCache) set(r core.RenderedReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = &r
}

// Get returns the last rendered report, or nil when no run completed yet.
func (c *reportCache) Get() *core.RenderedReport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report
}

// NewRouter returns instance of Router
func NewRouter(logger lumber.Logger, reportChan chan core.RenderedReport) Router {
	cache := &reportCache{}
	go func() {
		for r := range reportChan {
			cache.set(r)
		}
	}()
	return Router{
		logger:     logger,
		reportChan: reportChan,
		cache:      cache,
	}
}

// Handler function will perform all route operations
func (r Router) Handler() *gin.Engine {
	r.logger.Infof("Setting up routes")
	router := gin.Default()
	router.GET("/health", health.Handler)
	router.GET("/badge", badge.Handler(r.logger, r.cache))
	router.GET("/report", report.Handler(r.logger, r.cache))

	return router
}
