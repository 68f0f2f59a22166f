package solver

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

// Wire field names shared by the remote client and the solver service
const (
	fieldHorizonDays    = "horizon_days"
	fieldTankLiters     = "tank_liters"
	fieldInitialLiters  = "initial_liters"
	fieldReserveLiters  = "reserve_liters"
	fieldTripKm         = "trip_km"
	fieldTripNeedLiters = "trip_need_liters"
	fieldMaxFills       = "max_fills"
	fieldPrices         = "prices"
	fieldStatus         = "status"
	fieldObjective      = "objective"
	fieldLiters         = "liters"
)

// EncodeModel converts the numeric part of a model into a protobuf Struct
func EncodeModel(m *strategy.FuelStopModel) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]interface{}{
		fieldHorizonDays:    m.HorizonDays,
		fieldTankLiters:     m.TankLiters,
		fieldInitialLiters:  m.InitialLiters,
		fieldReserveLiters:  m.ReserveLiters,
		fieldTripKm:         m.TripKm,
		fieldTripNeedLiters: m.TripNeedLiters,
		fieldMaxFills:       m.MaxFills,
		fieldPrices:         matrixToList(m.Prices),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}
	return s, nil
}

// DecodeModel rebuilds a solvable model from a protobuf Struct
func DecodeModel(s *structpb.Struct) (*strategy.FuelStopModel, error) {
	fields := s.GetFields()
	prices, err := listToMatrix(fields[fieldPrices])
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", fieldPrices, err)
	}

	m := &strategy.FuelStopModel{
		HorizonDays:    int(fields[fieldHorizonDays].GetNumberValue()),
		TankLiters:     fields[fieldTankLiters].GetNumberValue(),
		InitialLiters:  fields[fieldInitialLiters].GetNumberValue(),
		ReserveLiters:  fields[fieldReserveLiters].GetNumberValue(),
		TripKm:         fields[fieldTripKm].GetNumberValue(),
		TripNeedLiters: fields[fieldTripNeedLiters].GetNumberValue(),
		MaxFills:       int(fields[fieldMaxFills].GetNumberValue()),
		Prices:         prices,
	}

	if len(m.Prices) == 0 {
		return nil, fmt.Errorf("model has no stations")
	}
	if m.HorizonDays < 1 || m.TankLiters <= 0 || m.MaxFills < 1 {
		return nil, fmt.Errorf("model has invalid dimensions: horizon=%d tank=%.2f max_fills=%d", m.HorizonDays, m.TankLiters, m.MaxFills)
	}
	for i, row := range m.Prices {
		if len(row) != m.HorizonDays {
			return nil, fmt.Errorf("station %d has %d prices, horizon is %d", i, len(row), m.HorizonDays)
		}
	}
	return m, nil
}

// EncodeSolution converts a solution into a protobuf Struct
func EncodeSolution(sol *strategy.Solution) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]interface{}{
		fieldStatus:    string(sol.Status),
		fieldObjective: sol.Objective,
		fieldLiters:    matrixToList(sol.Liters),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode solution: %w", err)
	}
	return s, nil
}

// DecodeSolution reads a solution from a protobuf Struct
func DecodeSolution(s *structpb.Struct) (*strategy.Solution, error) {
	fields := s.GetFields()
	status := strategy.SolutionStatus(fields[fieldStatus].GetStringValue())
	switch status {
	case strategy.SolutionOptimal, strategy.SolutionFeasible, strategy.SolutionInfeasible,
		strategy.SolutionUnbounded, strategy.SolutionError:
	default:
		return nil, fmt.Errorf("unknown solution status %q", status)
	}

	liters, err := listToMatrix(fields[fieldLiters])
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", fieldLiters, err)
	}
	return &strategy.Solution{
		Status:    status,
		Liters:    liters,
		Objective: fields[fieldObjective].GetNumberValue(),
	}, nil
}

func matrixToList(rows [][]float64) []interface{} {
	out := make([]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}

func listToMatrix(v *structpb.Value) ([][]float64, error) {
	if v == nil {
		return nil, fmt.Errorf("missing field")
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("expected a list")
	}

	out := make([][]float64, len(list.GetValues()))
	for i, rowValue := range list.GetValues() {
		row := rowValue.GetListValue()
		if row == nil {
			return nil, fmt.Errorf("row %d is not a list", i)
		}
		out[i] = make([]float64, len(row.GetValues()))
		for j, cell := range row.GetValues() {
			if _, ok := cell.GetKind().(*structpb.Value_NumberValue); !ok {
				return nil, fmt.Errorf("cell [%d][%d] is not a number", i, j)
			}
			out[i][j] = cell.GetNumberValue()
		}
	}
	return out, nil
}
