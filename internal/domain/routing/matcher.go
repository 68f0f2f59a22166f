package routing

import (
	"math"
	"sort"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

// DefaultSearchRadiusKm is the corridor half-width used when none is given
const DefaultSearchRadiusKm = 20.0

// RouteStationMatcher selects stations inside a corridor around a route
type RouteStationMatcher struct{}

// NewRouteStationMatcher creates a new matcher
func NewRouteStationMatcher() *RouteStationMatcher {
	return &RouteStationMatcher{}
}

// Match returns copies of the stations within radiusKm of the route, sorted
// by along-route position. A station's position is the midpoint of its
// nearest segment; ties between segments keep the earlier one.
func (m *RouteStationMatcher) Match(route *Route, stations []*station.GasStation, radiusKm float64) []*station.GasStation {
	matched := make([]*station.GasStation, 0, len(stations))

	for _, s := range stations {
		minDist := math.Inf(1)
		alongKm := 0.0
		cumulative := 0.0

		for i := 0; i < route.SegmentCount(); i++ {
			a, b := route.points[i], route.points[i+1]
			d := distanceToSegment(s.Location, a.Geo(), b.Geo())
			if d < minDist {
				minDist = d
				alongKm = cumulative + route.SegmentKm(i)/2
			}
			cumulative += route.SegmentKm(i)
		}

		if minDist > radiusKm {
			continue
		}

		candidate := s.Clone()
		candidate.KmAlongRoute = alongKm
		candidate.DistanceFromRouteKm = minDist
		matched = append(matched, candidate)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].KmAlongRoute < matched[j].KmAlongRoute
	})
	return matched
}

// distanceToSegment projects p onto segment ab in plain lat/lng space,
// clamps to the segment, and measures the great-circle distance to that point.
func distanceToSegment(p, a, b shared.GeoPoint) float64 {
	abLat, abLng := b.Lat-a.Lat, b.Lng-a.Lng
	lenSq := abLat*abLat + abLng*abLng
	if lenSq == 0 {
		return p.DistanceTo(a)
	}

	t := ((p.Lat-a.Lat)*abLat + (p.Lng-a.Lng)*abLng) / lenSq
	t = math.Max(0, math.Min(1, t))

	closest := shared.GeoPoint{Lat: a.Lat + t*abLat, Lng: a.Lng + t*abLng}
	return p.DistanceTo(closest)
}
