package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats handles GET /api/dashboard-stats?month=&year=.
// Invalid filter values are treated as absent rather than rejected.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	month := intQuery(c, "month")
	if month < 1 || month > 12 {
		month = 0
	}
	year := intQuery(c, "year")
	if year < 0 {
		year = 0
	}

	stats, err := h.store.DashboardStats(c.Request.Context(), month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
