package report

import (
	"net/http"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// Source provides the rendered report of the last completed run.
type Source interface {
	Get() *core.RenderedReport
}

// Handler serves the rendered coverage report of the last completed run
func Handler(logger lumber.Logger, source Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := source.Get()
		if report == nil {
			logger.Debugf("report requested before any run completed")
			c.JSON(http.StatusNotFound, gin.H{"message": "no completed run"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
