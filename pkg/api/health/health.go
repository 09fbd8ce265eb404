package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler for health API
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": http.StatusText(http.StatusOK)})
}
