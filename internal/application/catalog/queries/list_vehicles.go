package queries

import (
	"context"
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

// ListVehiclesQuery lists every registered vehicle
type ListVehiclesQuery struct{}

// ListVehiclesResponse carries the stored profiles
type ListVehiclesResponse struct {
	Vehicles []*vehicle.Profile
}

// ListVehiclesHandler handles the ListVehicles query
type ListVehiclesHandler struct {
	vehicles vehicle.Repository
}

// NewListVehiclesHandler creates a new ListVehiclesHandler
func NewListVehiclesHandler(vehicles vehicle.Repository) *ListVehiclesHandler {
	return &ListVehiclesHandler{vehicles: vehicles}
}

// Handle executes the ListVehicles query
func (h *ListVehiclesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListVehiclesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListVehiclesQuery")
	}
	vehicles, err := h.vehicles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return &ListVehiclesResponse{Vehicles: vehicles}, nil
}
