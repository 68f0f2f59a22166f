package commands

import (
	"context"
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

// StationRecord is one station as read from an import file
type StationRecord struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Brand   string             `json:"brand"`
	Address string             `json:"address"`
	Lat     float64            `json:"lat"`
	Lng     float64            `json:"lng"`
	Prices  map[string]float64 `json:"prices"`
}

// ImportStationsCommand upserts a batch of stations
type ImportStationsCommand struct {
	Stations []StationRecord `json:"stations"`
}

// ImportStationsResponse reports how many stations were stored and which were rejected
type ImportStationsResponse struct {
	Imported int
	Rejected map[string]string
}

// ImportStationsHandler handles the ImportStations command
type ImportStationsHandler struct {
	stations station.Repository
}

// NewImportStationsHandler creates a new ImportStationsHandler
func NewImportStationsHandler(stations station.Repository) *ImportStationsHandler {
	return &ImportStationsHandler{stations: stations}
}

// Handle executes the ImportStations command. Invalid records are skipped
// and reported; a storage failure aborts the batch.
func (h *ImportStationsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportStationsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportStationsCommand")
	}
	logger := logging.LoggerFromContext(ctx)

	resp := &ImportStationsResponse{Rejected: map[string]string{}}
	for i, rec := range cmd.Stations {
		s, err := rec.ToStation()
		if err != nil {
			key := rec.ID
			if key == "" {
				key = fmt.Sprintf("#%d", i)
			}
			resp.Rejected[key] = err.Error()
			logger.Log(logging.LevelWarn, "station rejected", map[string]interface{}{
				"station": key,
				"error":   err.Error(),
			})
			continue
		}
		if err := h.stations.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("failed to save station %s: %w", s.ID, err)
		}
		resp.Imported++
	}

	logger.Log(logging.LevelInfo, "stations imported", map[string]interface{}{
		"imported": resp.Imported,
		"rejected": len(resp.Rejected),
	})
	return resp, nil
}

// ToStation validates the record and converts it into a station
func (rec StationRecord) ToStation() (*station.GasStation, error) {
	location, err := shared.NewGeoPoint(rec.Lat, rec.Lng)
	if err != nil {
		return nil, err
	}
	prices := make(map[station.FuelGrade]float64, len(rec.Prices))
	for name, price := range rec.Prices {
		grade, err := station.ParseFuelGrade(name)
		if err != nil {
			return nil, err
		}
		prices[grade] = price
	}
	return station.NewGasStation(rec.ID, rec.Name, rec.Brand, rec.Address, location, prices)
}
