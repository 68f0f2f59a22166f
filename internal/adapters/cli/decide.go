package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	fuelCmd "github.com/parniayzdin/Fuelio/internal/application/fuel/commands"
	"github.com/parniayzdin/Fuelio/internal/domain/decision"
)

// newDecideCommand creates the decide command
func newDecideCommand(s *session) *cobra.Command {
	var (
		fuelPercent float64
		kmSinceFill float64
		anchor      string
		tripKm      float64
		todayPrice  float64
	)

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Decide whether to refuel now",
		Long: `Decide whether the vehicle should refuel now.

The fuel level comes from a gauge reading (--fuel-percent) or from the km
driven since the last full tank (--km-since-fill). With neither, half a tank
is assumed. Regional price history, or --today-price, feeds the price trend.

Examples:
  fuelio decide --vehicle-id 1 --fuel-percent 22
  fuelio decide --vehicle-id 1 --km-since-fill 410 --trip-km 180
  fuelio decide --fuel-percent 40 --today-price 1.529 --region ontario --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := s.resolveVehicleID()
			if err != nil {
				return err
			}

			command := &fuelCmd.DecideRefuelCommand{
				VehicleID:  vehicleID,
				AnchorType: anchor,
				Region:     s.resolveRegion(),
			}
			flags := cmd.Flags()
			if flags.Changed("fuel-percent") {
				command.FuelPercent = &fuelPercent
			}
			if flags.Changed("km-since-fill") {
				command.KmSinceFill = &kmSinceFill
			}
			if flags.Changed("trip-km") {
				command.PlannedTripKm = &tripKm
			}
			if flags.Changed("today-price") {
				command.TodayPrice = &todayPrice
			}

			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				response, err := rt.Mediator.Send(ctx, command)
				if err != nil {
					return fmt.Errorf("failed to decide: %w", err)
				}
				result := response.(*fuelCmd.DecideRefuelResponse).Result

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, result)
				}
				printDecision(out, result)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&fuelPercent, "fuel-percent", 0, "Fuel gauge reading (0-100)")
	cmd.Flags().Float64Var(&kmSinceFill, "km-since-fill", 0, "Km driven since the last full tank")
	cmd.Flags().StringVar(&anchor, "anchor", "", "Fuel estimate to use: percent or last_full_fillup")
	cmd.Flags().Float64Var(&tripKm, "trip-km", 0, "Planned trip distance in km")
	cmd.Flags().Float64Var(&todayPrice, "today-price", 0, "Today's price, overriding the latest recorded regional price")

	return cmd
}

func printDecision(w io.Writer, r *decision.Result) {
	fmt.Fprintf(w, "Decision:     %s (%s, confidence %.2f)\n", r.Verdict, r.Severity, r.Confidence)
	fmt.Fprintf(w, "Fuel:         %.1f L remaining, %.0f km range\n", r.LitersRemaining, r.RangeKm)
	if r.PlannedTripKm != nil {
		fmt.Fprintf(w, "Trip:         %.0f km\n", *r.PlannedTripKm)
	}
	if r.TodayPrice != nil {
		fmt.Fprintf(w, "Price today:  %s\n", formatPrice(*r.TodayPrice))
	}
	if r.PredictedPrice != nil && r.PriceTrend != nil {
		fmt.Fprintf(w, "Tomorrow:     %s (%s)\n", formatPrice(*r.PredictedPrice), *r.PriceTrend)
	}
	fmt.Fprintf(w, "\n%s\n", r.Explanation)
}
