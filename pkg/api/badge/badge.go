package badge

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

// Handler serves the machine-readable badge payload for a dynamic badge endpoint
func Handler(logger lumber.Logger, source Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := source.Get()
		if report == nil {
			logger.Debugf("badge requested before any run completed")
			c.JSON(http.StatusNotFound, gin.H{"message": "no completed run"})
			return
		}
		c.JSON(http.StatusOK, report.Badge)
	}
}
