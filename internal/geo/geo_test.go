package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"substation-inspection-backend/internal/catalog"
)

func testStations() []catalog.Substation {
	return []catalog.Substation{
		{ID: "A", Name: "สามชุก", Lat: 14.7518, Lng: 100.0930},
		{ID: "B", Name: "ศรีประจันต์", Lat: 14.6203, Lng: 100.1437},
		{ID: "C", Name: "ด่านช้าง", Lat: 14.8412, Lng: 99.6945},
		{ID: "D", Name: "สองพี่น้อง", Lat: 14.2218, Lng: 100.0333},
	}
}

func TestHaversineZeroAndSymmetry(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(14.75, 100.09, 14.75, 100.09))

	d1 := Haversine(14.7518, 100.0930, 14.6203, 100.1437)
	d2 := Haversine(14.6203, 100.1437, 14.7518, 100.0930)
	assert.InDelta(t, d1, d2, 1e-9)
	assert.Greater(t, d1, 0.0)
}

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of latitude is roughly 111 km.
	d := Haversine(14.0, 100.0, 15.0, 100.0)
	assert.InDelta(t, 111.2, d, 0.5)
}

func TestRankSortedAscending(t *testing.T) {
	ranked := Rank(testStations(), 14.7518, 100.0930)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].DistanceKm, ranked[i].DistanceKm)
	}
}

func TestRankDetectsNearestWithinThreshold(t *testing.T) {
	// Standing essentially at สามชุก.
	ranked := Rank(testStations(), 14.7520, 100.0932)
	assert.Equal(t, "สามชุก", ranked[0].Name)
	assert.True(t, ranked[0].Detected)

	// Far from every station: nothing detected.
	ranked = Rank(testStations(), 13.0, 101.5)
	for _, r := range ranked {
		assert.False(t, r.Detected)
	}
}

func TestNearbyWithinRadius(t *testing.T) {
	ranked := Rank(testStations(), 14.7518, 100.0930)
	near := Nearby(ranked)
	assert.NotEmpty(t, near)
	for _, r := range near {
		assert.LessOrEqual(t, r.DistanceKm, 10.0)
	}
}

func TestNearbyFallbackToClosestThree(t *testing.T) {
	// Bangkok-ish, far from the whole catalog.
	ranked := Rank(testStations(), 13.75, 100.50)
	near := Nearby(ranked)
	assert.Len(t, near, 3)
	assert.Equal(t, ranked[0].Name, near[0].Name)
}

func TestUnrankedPreservesCatalogOrder(t *testing.T) {
	stations := testStations()
	out := Unranked(stations)
	assert.Len(t, out, len(stations))
	for i, s := range stations {
		assert.Equal(t, s.Name, out[i].Name)
		assert.False(t, out[i].Detected)
		assert.Equal(t, -1.0, out[i].DistanceKm)
	}
}
