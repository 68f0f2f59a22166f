package shared

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances
const EarthRadiusKm = 6371.0

// GeoPoint is an immutable WGS84 coordinate
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewGeoPoint creates a coordinate, rejecting out-of-range values
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < -90 || lat > 90 {
		return GeoPoint{}, NewValidationError("lat", fmt.Sprintf("must be within [-90, 90], got %v", lat))
	}
	if lng < -180 || lng > 180 {
		return GeoPoint{}, NewValidationError("lng", fmt.Sprintf("must be within [-180, 180], got %v", lng))
	}
	return GeoPoint{Lat: lat, Lng: lng}, nil
}

// DistanceTo returns the great-circle distance to another point in km
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	return HaversineKm(p.Lat, p.Lng, other.Lat, other.Lng)
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", p.Lat, p.Lng)
}

// HaversineKm calculates the great-circle distance between two coordinates in km
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BoundingBox is an axis-aligned lat/lng rectangle
type BoundingBox struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// BoundsOf returns the smallest box containing every point
func BoundsOf(points []GeoPoint) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	box := BoundingBox{MinLat: points[0].Lat, MinLng: points[0].Lng, MaxLat: points[0].Lat, MaxLng: points[0].Lng}
	for _, p := range points[1:] {
		box.MinLat = math.Min(box.MinLat, p.Lat)
		box.MinLng = math.Min(box.MinLng, p.Lng)
		box.MaxLat = math.Max(box.MaxLat, p.Lat)
		box.MaxLng = math.Max(box.MaxLng, p.Lng)
	}
	return box
}

// Expand grows the box by km on every side. Longitude padding uses the
// latitude farthest from the equator so the box never undershoots.
func (b BoundingBox) Expand(km float64) BoundingBox {
	dLat := km / kmPerDegree
	maxAbsLat := math.Max(math.Abs(b.MinLat), math.Abs(b.MaxLat))
	cos := math.Cos(maxAbsLat * math.Pi / 180)
	dLng := 180.0
	if cos > 1e-6 {
		dLng = math.Min(180, km/(kmPerDegree*cos))
	}
	return BoundingBox{
		MinLat: math.Max(-90, b.MinLat-dLat),
		MinLng: math.Max(-180, b.MinLng-dLng),
		MaxLat: math.Min(90, b.MaxLat+dLat),
		MaxLng: math.Min(180, b.MaxLng+dLng),
	}
}

// Contains reports whether the point lies inside the box (edges included)
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

const kmPerDegree = EarthRadiusKm * math.Pi / 180
