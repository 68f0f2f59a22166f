package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	catalogCmd "github.com/parniayzdin/Fuelio/internal/application/catalog/commands"
	fuelCmd "github.com/parniayzdin/Fuelio/internal/application/fuel/commands"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

// optimizeInput is the request file accepted by 'fuelio optimize --input'
type optimizeInput struct {
	Vehicle            *vehicleInput              `json:"vehicle"`
	Route              []shared.GeoPoint          `json:"route"`
	CurrentFuelPercent *float64                   `json:"current_fuel_percent"`
	SearchRadiusKm     float64                    `json:"search_radius_km"`
	ForecastDays       int                        `json:"forecast_days"`
	FuelGrade          string                     `json:"fuel_grade"`
	Region             string                     `json:"region"`
	Stations           []catalogCmd.StationRecord `json:"stations"`
	Cards              []station.CardBenefit      `json:"cards"`
}

type vehicleInput struct {
	Name                string  `json:"name"`
	TankLiters          float64 `json:"tank_size_liters"`
	EfficiencyLPer100Km float64 `json:"efficiency_l_per_100km"`
	ReserveFraction     float64 `json:"reserve_fraction"`
}

// apply copies the file contents into command; fields already set from flags win
func (in *optimizeInput) apply(command *fuelCmd.OptimizeFuelStrategyCommand, fuelSet bool) error {
	if in.Vehicle != nil && command.VehicleID == 0 {
		profile, err := vehicle.NewProfile(in.Vehicle.Name, in.Vehicle.TankLiters, in.Vehicle.EfficiencyLPer100Km, in.Vehicle.ReserveFraction)
		if err != nil {
			return fmt.Errorf("input vehicle: %w", err)
		}
		command.Vehicle = profile
	}
	if len(command.Route) == 0 {
		command.Route = in.Route
	}
	if !fuelSet && in.CurrentFuelPercent != nil {
		command.CurrentFuelPercent = *in.CurrentFuelPercent
	}
	if command.SearchRadiusKm == 0 {
		command.SearchRadiusKm = in.SearchRadiusKm
	}
	if command.HorizonDays == 0 {
		command.HorizonDays = in.ForecastDays
	}
	if command.Grade == "" {
		command.Grade = in.FuelGrade
	}
	if command.Region == "" {
		command.Region = in.Region
	}
	for _, rec := range in.Stations {
		s, err := rec.ToStation()
		if err != nil {
			return fmt.Errorf("input station %q: %w", rec.ID, err)
		}
		command.Stations = append(command.Stations, s)
	}
	command.Cards = in.Cards
	return nil
}

// newOptimizeCommand creates the optimize command
func newOptimizeCommand(s *session) *cobra.Command {
	var (
		route       string
		inputPath   string
		fuelPercent float64
		radiusKm    float64
		days        int
		grade       string
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Plan the cheapest fill-ups along a route",
		Long: `Plan where and when to fill up along a route.

Stations within the search radius of the route are taken from the station
catalog, priced with the regional forecast and discounted by saved cards.
The configured solver finds the cheapest plan; when it is unavailable or
too slow a greedy planner is used and the result says so.

A request file (--input, "-" for stdin) can carry an inline vehicle,
route, stations and cards instead of stored ones. Flags override the file.

Examples:
  fuelio optimize --vehicle-id 1 --fuel-percent 30 --route "43.65,-79.38;45.50,-73.57"
  fuelio optimize --vehicle-id 1 --fuel-percent 30 --route "43.65,-79.38;45.50,-73.57" --days 3 --grade premium
  fuelio optimize --input trip.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &fuelCmd.OptimizeFuelStrategyCommand{
				CurrentFuelPercent: fuelPercent,
				SearchRadiusKm:     radiusKm,
				HorizonDays:        days,
				Grade:              grade,
				Region:             s.resolveRegion(),
			}

			if route != "" {
				points, err := parseRoute(route)
				if err != nil {
					return err
				}
				command.Route = points
			}

			var input *optimizeInput
			if inputPath != "" {
				input = &optimizeInput{}
				if err := readJSONFile(inputPath, cmd.InOrStdin(), input); err != nil {
					return err
				}
			}

			if input == nil || input.Vehicle == nil || s.vehicleID > 0 {
				vehicleID, err := s.resolveVehicleID()
				if err != nil {
					return err
				}
				command.VehicleID = vehicleID
			}
			if input != nil {
				if err := input.apply(command, cmd.Flags().Changed("fuel-percent")); err != nil {
					return err
				}
			}

			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				response, err := rt.Mediator.Send(ctx, command)
				if err != nil {
					return fmt.Errorf("failed to optimize: %w", err)
				}
				result := response.(*fuelCmd.OptimizeFuelStrategyResponse).Result

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, result)
				}
				printOptimization(out, result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&route, "route", "", `Route waypoints as "lat,lng;lat,lng;..."`)
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", `Request file in JSON ("-" for stdin)`)
	cmd.Flags().Float64Var(&fuelPercent, "fuel-percent", 0, "Current fuel level (0-100)")
	cmd.Flags().Float64Var(&radiusKm, "radius", 0, "Station search radius around the route in km (default: strategy.search_radius_km)")
	cmd.Flags().IntVar(&days, "days", 0, "Forecast horizon in days (default: strategy.forecast_days)")
	cmd.Flags().StringVar(&grade, "grade", "", "Fuel grade: regular, premium or diesel (default: strategy.fuel_grade)")

	return cmd
}

func printOptimization(w io.Writer, r *strategy.OptimizationResult) {
	fmt.Fprintf(w, "Plan %s: %s", r.PlanID, r.Status)
	if r.SolverName != "" {
		fmt.Fprintf(w, " (%s)", r.SolverName)
	}
	fmt.Fprintln(w)
	if r.FallbackReason != "" {
		fmt.Fprintf(w, "Fallback:  %s\n", r.FallbackReason)
	}
	fmt.Fprintf(w, "Trip:      %.1f km, %d stations analyzed\n", r.TripDistanceKm, r.StationsAnalyzed)

	if len(r.Stops) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "STATION\tKM\tDAY\tLITERS\tPRICE\tCARD\tSAVINGS")
		fmt.Fprintln(tw, "-------\t--\t---\t------\t-----\t----\t-------")
		for _, stop := range r.Stops {
			card := stop.Card
			if card == "" {
				card = "-"
			}
			fmt.Fprintf(tw, "%s\t%.1f\t%d\t%.1f\t%s\t%s\t$%.2f\n",
				stop.Station.Name,
				stop.KmAtStop,
				stop.DayOffset,
				stop.Liters,
				formatPrice(stop.EffectivePrice),
				card,
				stop.SavingsFromCard+stop.SavingsFromTiming,
			)
		}
		tw.Flush()
		fmt.Fprintf(w, "\nTotal:     %.1f L for $%.2f (saved $%.2f)\n", r.TotalLiters(), r.TotalCost, r.TotalSavings)
	}

	if len(r.Reasoning) > 0 {
		fmt.Fprintln(w)
		for _, line := range r.Reasoning {
			fmt.Fprintf(w, "- %s\n", line)
		}
	}
}
