package routing

import (
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
)

// RoutePoint is one vertex of a trip polyline
type RoutePoint struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	KmFromStart float64 `json:"km_from_start"`
}

// Geo returns the point as a coordinate
func (p RoutePoint) Geo() shared.GeoPoint {
	return shared.GeoPoint{Lat: p.Lat, Lng: p.Lng}
}

// Route is an ordered polyline of at least two points with precomputed
// great-circle segment lengths.
type Route struct {
	points    []RoutePoint
	segmentKm []float64
	totalKm   float64
}

// NewRoute builds a route and fills in KmFromStart for every point
func NewRoute(points []shared.GeoPoint) (*Route, error) {
	if len(points) < 2 {
		return nil, shared.NewValidationError("route", fmt.Sprintf("at least two points required, got %d", len(points)))
	}

	r := &Route{
		points:    make([]RoutePoint, len(points)),
		segmentKm: make([]float64, len(points)-1),
	}
	for i, p := range points {
		if i > 0 {
			r.segmentKm[i-1] = points[i-1].DistanceTo(p)
			r.totalKm += r.segmentKm[i-1]
		}
		r.points[i] = RoutePoint{Lat: p.Lat, Lng: p.Lng, KmFromStart: r.totalKm}
	}
	return r, nil
}

// Points returns a copy of the route vertices
func (r *Route) Points() []RoutePoint {
	out := make([]RoutePoint, len(r.points))
	copy(out, r.points)
	return out
}

// SegmentCount is the number of legs between consecutive points
func (r *Route) SegmentCount() int {
	return len(r.segmentKm)
}

// SegmentKm returns the length of leg i
func (r *Route) SegmentKm(i int) float64 {
	return r.segmentKm[i]
}

// TotalKm is the full trip distance
func (r *Route) TotalKm() float64 {
	return r.totalKm
}

// Bounds returns the box around the route padded by radiusKm
func (r *Route) Bounds(radiusKm float64) shared.BoundingBox {
	geo := make([]shared.GeoPoint, len(r.points))
	for i, p := range r.points {
		geo[i] = p.Geo()
	}
	return shared.BoundsOf(geo).Expand(radiusKm)
}

func (r *Route) String() string {
	return fmt.Sprintf("Route[%d points, %.1f km]", len(r.points), r.totalKm)
}
