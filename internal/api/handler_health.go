package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles the GET /api/health liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
