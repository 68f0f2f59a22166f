package commands

import (
	"context"
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/application/validation"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

// RegisterVehicleCommand creates or updates a vehicle profile.
// A zero ID registers a new vehicle.
type RegisterVehicleCommand struct {
	ID                  int     `json:"id" validate:"gte=0"`
	Name                string  `json:"name" validate:"required"`
	TankLiters          float64 `json:"tank_size_liters" validate:"gt=0"`
	EfficiencyLPer100Km float64 `json:"efficiency_l_per_100km" validate:"gt=0"`
	ReserveFraction     float64 `json:"reserve_fraction" validate:"gte=0,lt=1"`
}

// RegisterVehicleResponse carries the stored profile with its ID
type RegisterVehicleResponse struct {
	Vehicle *vehicle.Profile
}

// RegisterVehicleHandler handles the RegisterVehicle command
type RegisterVehicleHandler struct {
	vehicles vehicle.Repository
}

// NewRegisterVehicleHandler creates a new RegisterVehicleHandler
func NewRegisterVehicleHandler(vehicles vehicle.Repository) *RegisterVehicleHandler {
	return &RegisterVehicleHandler{vehicles: vehicles}
}

// Handle executes the RegisterVehicle command
func (h *RegisterVehicleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RegisterVehicleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RegisterVehicleCommand")
	}
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	profile, err := vehicle.NewProfile(cmd.Name, cmd.TankLiters, cmd.EfficiencyLPer100Km, cmd.ReserveFraction)
	if err != nil {
		return nil, err
	}
	profile.ID = cmd.ID

	if err := h.vehicles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save vehicle: %w", err)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "vehicle registered", map[string]interface{}{
		"vehicle_id": profile.ID,
		"name":       profile.Name,
	})

	return &RegisterVehicleResponse{Vehicle: profile}, nil
}
