package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/adapters/cli"
	catalogCmd "github.com/parniayzdin/Fuelio/internal/application/catalog/commands"
	fuelCmd "github.com/parniayzdin/Fuelio/internal/application/fuel/commands"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	pricingCmd "github.com/parniayzdin/Fuelio/internal/application/pricing/commands"
	pricingQuery "github.com/parniayzdin/Fuelio/internal/application/pricing/queries"
	"github.com/parniayzdin/Fuelio/internal/domain/decision"
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/test/helpers"
)

// execute runs the CLI against med and returns stdout
func execute(t *testing.T, med *helpers.MockMediator, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCommandWith(func(string) (*cli.Runtime, error) {
		return &cli.Runtime{Mediator: med}, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--user-dir", t.TempDir()}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDecide_SendsFlagsAsCommand(t *testing.T) {
	// Arrange
	med := helpers.NewMockMediator()
	med.Respond(&fuelCmd.DecideRefuelCommand{}, &fuelCmd.DecideRefuelResponse{Result: &decision.Result{
		Verdict:     decision.VerdictFill,
		Severity:    decision.SeverityHigh,
		Confidence:  0.95,
		Explanation: "Fill up now.",
	}})

	// Act
	out, err := execute(t, med, "decide", "--vehicle-id", "3", "--fuel-percent", "22", "--trip-km", "180", "--region", "ontario")

	// Assert
	require.NoError(t, err)
	sent, ok := med.LastRequest().(*fuelCmd.DecideRefuelCommand)
	require.True(t, ok)
	assert.Equal(t, 3, sent.VehicleID)
	assert.Equal(t, "ontario", sent.Region)
	require.NotNil(t, sent.FuelPercent)
	assert.Equal(t, 22.0, *sent.FuelPercent)
	require.NotNil(t, sent.PlannedTripKm)
	assert.Equal(t, 180.0, *sent.PlannedTripKm)
	assert.Nil(t, sent.KmSinceFill)
	assert.Nil(t, sent.TodayPrice)
	assert.Contains(t, out, "FILL (high, confidence 0.95)")
	assert.Contains(t, out, "Fill up now.")
}

func TestDecide_WithoutVehicleFails(t *testing.T) {
	med := helpers.NewMockMediator()

	_, err := execute(t, med, "decide", "--fuel-percent", "40")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no vehicle specified")
	assert.Empty(t, med.Requests())
}

func TestDecide_UsesDefaultVehicleFromUserConfig(t *testing.T) {
	// Arrange
	userDir := t.TempDir()
	med := helpers.NewMockMediator()
	med.Respond(&fuelCmd.DecideRefuelCommand{}, &fuelCmd.DecideRefuelResponse{Result: &decision.Result{Verdict: decision.VerdictNoAction}})
	open := func(string) (*cli.Runtime, error) { return &cli.Runtime{Mediator: med}, nil }

	setVehicle := cli.NewRootCommandWith(open)
	setVehicle.SetOut(&bytes.Buffer{})
	setVehicle.SetArgs([]string{"--user-dir", userDir, "config", "set-vehicle", "7"})
	require.NoError(t, setVehicle.Execute())

	// Act
	decide := cli.NewRootCommandWith(open)
	decide.SetOut(&bytes.Buffer{})
	decide.SetArgs([]string{"--user-dir", userDir, "decide"})
	err := decide.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, med.LastRequest().(*fuelCmd.DecideRefuelCommand).VehicleID)
}

func TestOptimize_ParsesRoute(t *testing.T) {
	// Arrange
	med := helpers.NewMockMediator()
	med.Respond(&fuelCmd.OptimizeFuelStrategyCommand{}, &fuelCmd.OptimizeFuelStrategyResponse{Result: &strategy.OptimizationResult{
		PlanID: "plan-1",
		Status: strategy.StatusHeuristic,
	}})

	// Act
	out, err := execute(t, med, "--json", "optimize", "--vehicle-id", "1", "--fuel-percent", "30",
		"--route", "43.65,-79.38; 45.50,-73.57", "--days", "3", "--grade", "premium")

	// Assert
	require.NoError(t, err)
	sent := med.LastRequest().(*fuelCmd.OptimizeFuelStrategyCommand)
	require.Len(t, sent.Route, 2)
	assert.Equal(t, 45.50, sent.Route[1].Lat)
	assert.Equal(t, -73.57, sent.Route[1].Lng)
	assert.Equal(t, 30.0, sent.CurrentFuelPercent)
	assert.Equal(t, 3, sent.HorizonDays)
	assert.Equal(t, "premium", sent.Grade)
	assert.Contains(t, out, `"solver_status": "heuristic"`)
}

func TestOptimize_RejectsMalformedRoute(t *testing.T) {
	tests := []struct {
		name  string
		route string
	}{
		{"missing longitude", "43.65"},
		{"not a number", "north,-79.38;45.5,-73.57"},
		{"latitude out of range", "95,-79.38;45.5,-73.57"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			med := helpers.NewMockMediator()

			_, err := execute(t, med, "optimize", "--vehicle-id", "1", "--route", tt.route)

			require.Error(t, err)
			assert.Empty(t, med.Requests())
		})
	}
}

func TestOptimize_InputFileCarriesInlineVehicleAndStations(t *testing.T) {
	// Arrange
	input := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(input, []byte(`{
		"vehicle": {"name": "sedan", "tank_size_liters": 50, "efficiency_l_per_100km": 8, "reserve_fraction": 0.1},
		"route": [{"lat": 43.65, "lng": -79.38}, {"lat": 45.50, "lng": -73.57}],
		"current_fuel_percent": 25,
		"stations": [{"id": "a", "name": "Esso 401", "brand": "Esso", "lat": 44.0, "lng": -78.0, "prices": {"regular": 1.5}}],
		"cards": [{"provider": "Costco Visa", "gas_cashback_percent": 4}]
	}`), 0644))

	med := helpers.NewMockMediator()
	med.Respond(&fuelCmd.OptimizeFuelStrategyCommand{}, &fuelCmd.OptimizeFuelStrategyResponse{Result: &strategy.OptimizationResult{Status: strategy.StatusOptimal}})

	// Act
	_, err := execute(t, med, "optimize", "--input", input, "--fuel-percent", "40")

	// Assert
	require.NoError(t, err)
	sent := med.LastRequest().(*fuelCmd.OptimizeFuelStrategyCommand)
	assert.Zero(t, sent.VehicleID)
	require.NotNil(t, sent.Vehicle)
	assert.Equal(t, 50.0, sent.Vehicle.TankLiters)
	assert.Len(t, sent.Route, 2)
	assert.Equal(t, 40.0, sent.CurrentFuelPercent, "flag overrides file")
	require.Len(t, sent.Stations, 1)
	assert.Equal(t, 1.5, sent.Stations[0].PriceFor("regular"))
	require.Len(t, sent.Cards, 1)
	assert.Equal(t, "Costco Visa", sent.Cards[0].Provider)
}

func TestPricesRecord_ParsesDay(t *testing.T) {
	// Arrange
	med := helpers.NewMockMediator()
	med.SetSendFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		cmd := request.(*pricingCmd.RecordRegionalPriceCommand)
		return &pricingCmd.RecordRegionalPriceResponse{Price: forecast.DailyPrice{Region: cmd.Region, Day: *cmd.Day, Price: cmd.Price}}, nil
	})

	// Act
	out, err := execute(t, med, "prices", "record", "--region", "ontario", "--price", "1.529", "--day", "2026-10-14")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Recorded $1.529 for ontario on 2026-10-14\n", out)
}

func TestPricesRecord_RejectsBadDay(t *testing.T) {
	med := helpers.NewMockMediator()

	_, err := execute(t, med, "prices", "record", "--region", "ontario", "--price", "1.5", "--day", "14/10/2026")

	require.Error(t, err)
	assert.Empty(t, med.Requests())
}

func TestStationsImport_AcceptsBareArrayAndDocument(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array", `[{"id": "a", "name": "A", "lat": 43.7, "lng": -79.4, "prices": {"regular": 1.5}}]`},
		{"document", `{"stations": [{"id": "a", "name": "A", "lat": 43.7, "lng": -79.4, "prices": {"regular": 1.5}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			path := filepath.Join(t.TempDir(), "stations.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))
			med := helpers.NewMockMediator()
			med.Respond(&catalogCmd.ImportStationsCommand{}, &catalogCmd.ImportStationsResponse{
				Imported: 1,
				Rejected: map[string]string{"#1": "lat: must be within [-90, 90]"},
			})

			// Act
			out, err := execute(t, med, "stations", "import", path)

			// Assert
			require.NoError(t, err)
			sent := med.LastRequest().(*catalogCmd.ImportStationsCommand)
			require.Len(t, sent.Stations, 1)
			assert.Equal(t, "a", sent.Stations[0].ID)
			assert.Contains(t, out, "Imported 1 station(s)")
			assert.Contains(t, out, "#1: lat: must be within [-90, 90]")
		})
	}
}

func TestCommand_MediatorErrorIsReturned(t *testing.T) {
	med := helpers.NewMockMediator()
	med.SetSendFunc(func(context.Context, mediator.Request) (mediator.Response, error) {
		return nil, errors.New("database is locked")
	})

	_, err := execute(t, med, "vehicles", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list vehicles: database is locked")
}

func TestConfig_SetRegionIsUsedByForecast(t *testing.T) {
	// Arrange
	userDir := t.TempDir()
	open := func(string) (*cli.Runtime, error) { return nil, errors.New("no runtime needed") }
	root := cli.NewRootCommandWith(open)
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--user-dir", userDir, "config", "set-region", "quebec"})
	require.NoError(t, root.Execute())

	med := helpers.NewMockMediator()
	med.SetSendFunc(func(context.Context, mediator.Request) (mediator.Response, error) {
		return nil, errors.New("stop")
	})
	forecastCmd := cli.NewRootCommandWith(func(string) (*cli.Runtime, error) { return &cli.Runtime{Mediator: med}, nil })
	forecastCmd.SetOut(&bytes.Buffer{})
	forecastCmd.SetErr(&bytes.Buffer{})
	forecastCmd.SetArgs([]string{"--user-dir", userDir, "forecast"})

	// Act
	_ = forecastCmd.Execute()

	// Assert
	require.Len(t, med.Requests(), 1)
	query, ok := med.Requests()[0].(*pricingQuery.ForecastPricesQuery)
	require.True(t, ok)
	assert.Equal(t, "quebec", query.Region)
}
