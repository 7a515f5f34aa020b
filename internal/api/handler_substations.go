package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"substation-inspection-backend/internal/geo"
)

// substationsResponse lists the catalog ranked by proximity when a
// device coordinate was supplied.
type substationsResponse struct {
	Substations []geo.RankedSubstation `json:"substations"`
	Detected    *geo.RankedSubstation  `json:"detected"`
	Nearby      []geo.RankedSubstation `json:"nearby"`
}

// GetSubstations handles GET /api/substations?lat=&lng=. Without valid
// coordinates the catalog comes back in its original order with no
// detection, so a denied geolocation permission still yields a usable
// selection list.
func (h *Handler) GetSubstations(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)

	if errLat != nil || errLng != nil {
		c.JSON(http.StatusOK, substationsResponse{
			Substations: geo.Unranked(h.stations),
			Nearby:      []geo.RankedSubstation{},
		})
		return
	}

	ranked := geo.Rank(h.stations, lat, lng)
	resp := substationsResponse{
		Substations: ranked,
		Nearby:      geo.Nearby(ranked),
	}
	if len(ranked) > 0 && ranked[0].Detected {
		detected := ranked[0]
		resp.Detected = &detected
	}
	c.JSON(http.StatusOK, resp)
}
