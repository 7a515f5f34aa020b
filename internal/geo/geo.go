package geo

import (
	"math"
	"sort"

	"substation-inspection-backend/internal/catalog"
)

const (
	earthRadiusKm = 6371.0

	// A station closer than this is considered the one the worker is
	// standing at.
	detectThresholdKm = 2.0

	// Stations within this radius are offered as "nearby".
	nearbyRadiusKm = 10.0

	// When nothing is within the nearby radius, offer the closest few
	// so the selection list is never empty.
	nearbyFallbackCount = 3
)

// RankedSubstation is a catalog entry annotated with the distance to
// the device coordinate.
type RankedSubstation struct {
	catalog.Substation
	DistanceKm float64 `json:"distance_km"`
	Detected   bool    `json:"detected"`
}

// Haversine returns the great-circle distance in kilometers between
// two coordinates.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// Rank computes the distance from (lat, lng) to every catalog entry and
// returns the catalog ordered ascending by distance. The nearest entry
// is flagged Detected when it is within the detection threshold.
func Rank(stations []catalog.Substation, lat, lng float64) []RankedSubstation {
	ranked := make([]RankedSubstation, len(stations))
	for i, s := range stations {
		ranked[i] = RankedSubstation{
			Substation: s,
			DistanceKm: Haversine(lat, lng, s.Lat, s.Lng),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	if len(ranked) > 0 && ranked[0].DistanceKm <= detectThresholdKm {
		ranked[0].Detected = true
	}
	return ranked
}

// Unranked returns the catalog in its original order with no distance
// or detection information, for the no-geolocation degraded path.
func Unranked(stations []catalog.Substation) []RankedSubstation {
	out := make([]RankedSubstation, len(stations))
	for i, s := range stations {
		out[i] = RankedSubstation{Substation: s, DistanceKm: -1}
	}
	return out
}

// Nearby returns the subset of ranked stations within the nearby
// radius, or the closest few as a fallback so the result is never
// empty.
func Nearby(ranked []RankedSubstation) []RankedSubstation {
	var near []RankedSubstation
	for _, r := range ranked {
		if r.DistanceKm >= 0 && r.DistanceKm <= nearbyRadiusKm {
			near = append(near, r)
		}
	}
	if len(near) > 0 {
		return near
	}
	n := nearbyFallbackCount
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
