package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

const degreeKm = 111.19492664

func equatorRoute(t *testing.T) *Route {
	t.Helper()
	route, err := NewRoute([]shared.GeoPoint{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}})
	require.NoError(t, err)
	return route
}

func TestNewRoute_RequiresTwoPoints(t *testing.T) {
	_, err := NewRoute([]shared.GeoPoint{{Lat: 1, Lng: 1}})

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "route", ve.Field)
}

func TestNewRoute_CumulativeDistance(t *testing.T) {
	route := equatorRoute(t)
	points := route.Points()

	assert.InDelta(t, 2*degreeKm, route.TotalKm(), 1e-3)
	assert.Equal(t, 0.0, points[0].KmFromStart)
	assert.InDelta(t, degreeKm, points[1].KmFromStart, 1e-3)
	assert.InDelta(t, 2*degreeKm, points[2].KmFromStart, 1e-3)
}

func TestMatch_CorridorAndOrdering(t *testing.T) {
	// Arrange
	route := equatorRoute(t)
	stations := []*station.GasStation{
		{ID: "late", Location: shared.GeoPoint{Lat: 0.05, Lng: 1.5}},
		{ID: "far", Location: shared.GeoPoint{Lat: 1, Lng: 1}},
		{ID: "early", Location: shared.GeoPoint{Lat: -0.05, Lng: 0.2}},
	}

	// Act
	matched := NewRouteStationMatcher().Match(route, stations, DefaultSearchRadiusKm)

	// Assert
	require.Len(t, matched, 2)
	assert.Equal(t, "early", matched[0].ID)
	assert.Equal(t, "late", matched[1].ID)
	assert.InDelta(t, degreeKm/2, matched[0].KmAlongRoute, 1e-3)
	assert.InDelta(t, 1.5*degreeKm, matched[1].KmAlongRoute, 1e-3)
	assert.InDelta(t, 0.05*degreeKm, matched[1].DistanceFromRouteKm, 1e-3)
	assert.Equal(t, 0.0, stations[0].KmAlongRoute, "input stations must not be annotated")
}

func TestMatch_RadiusIsInclusiveOfNearbyOnly(t *testing.T) {
	route := equatorRoute(t)
	stations := []*station.GasStation{{ID: "s", Location: shared.GeoPoint{Lat: 0.1, Lng: 0.5}}}

	assert.Len(t, NewRouteStationMatcher().Match(route, stations, 12), 1)
	assert.Empty(t, NewRouteStationMatcher().Match(route, stations, 10))
}

func TestMatch_JointTieKeepsEarlierSegment(t *testing.T) {
	route := equatorRoute(t)
	stations := []*station.GasStation{{ID: "joint", Location: shared.GeoPoint{Lat: 0, Lng: 1}}}

	matched := NewRouteStationMatcher().Match(route, stations, 1)

	require.Len(t, matched, 1)
	assert.InDelta(t, degreeKm/2, matched[0].KmAlongRoute, 1e-3)
}

func TestMatch_ClampsBeyondSegmentEnds(t *testing.T) {
	route := equatorRoute(t)
	stations := []*station.GasStation{{ID: "behind", Location: shared.GeoPoint{Lat: 0, Lng: -0.1}}}

	matched := NewRouteStationMatcher().Match(route, stations, 20)

	require.Len(t, matched, 1)
	assert.InDelta(t, 0.1*degreeKm, matched[0].DistanceFromRouteKm, 1e-3)
}

func TestBounds_PadsRoute(t *testing.T) {
	box := equatorRoute(t).Bounds(20)

	assert.True(t, box.Contains(shared.GeoPoint{Lat: 0.17, Lng: 2.17}))
	assert.False(t, box.Contains(shared.GeoPoint{Lat: 0.5, Lng: 1}))
}
