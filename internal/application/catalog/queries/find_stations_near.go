package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/application/validation"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

// FindStationsNearQuery lists stored stations around a point, cheapest first
type FindStationsNearQuery struct {
	Lat      float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng      float64 `json:"lng" validate:"gte=-180,lte=180"`
	RadiusKm float64 `json:"radius_km" validate:"gt=0"`
	Grade    string  `json:"fuel_grade" validate:"omitempty,oneof=regular premium diesel"`
}

// NearbyStation is a station with its distance from the query point
type NearbyStation struct {
	Station    *station.GasStation
	DistanceKm float64
	Price      float64
}

// FindStationsNearResponse carries the matches
type FindStationsNearResponse struct {
	Stations []NearbyStation
}

// FindStationsNearHandler handles the FindStationsNear query
type FindStationsNearHandler struct {
	stations station.Repository
}

// NewFindStationsNearHandler creates a new FindStationsNearHandler
func NewFindStationsNearHandler(stations station.Repository) *FindStationsNearHandler {
	return &FindStationsNearHandler{stations: stations}
}

// Handle executes the FindStationsNear query
func (h *FindStationsNearHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*FindStationsNearQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FindStationsNearQuery")
	}
	if err := validation.Struct(query); err != nil {
		return nil, err
	}
	grade, err := station.ParseFuelGrade(query.Grade)
	if err != nil {
		return nil, err
	}

	center := shared.GeoPoint{Lat: query.Lat, Lng: query.Lng}
	candidates, err := h.stations.FindNear(ctx, center)
	if err != nil {
		return nil, fmt.Errorf("failed to find stations: %w", err)
	}

	resp := &FindStationsNearResponse{Stations: []NearbyStation{}}
	for _, s := range candidates {
		d := center.DistanceTo(s.Location)
		if d > query.RadiusKm {
			continue
		}
		resp.Stations = append(resp.Stations, NearbyStation{Station: s, DistanceKm: d, Price: s.PriceFor(grade)})
	}
	sort.SliceStable(resp.Stations, func(i, j int) bool {
		a, b := resp.Stations[i], resp.Stations[j]
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return a.DistanceKm < b.DistanceKm
	})
	return resp, nil
}
