package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	catalogCmd "github.com/parniayzdin/Fuelio/internal/application/catalog/commands"
	catalogQuery "github.com/parniayzdin/Fuelio/internal/application/catalog/queries"
)

// newVehiclesCommand creates the vehicles command with subcommands
func newVehiclesCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "Manage vehicle profiles",
		Long: `Manage vehicle profiles: tank size, consumption and fuel reserve.

Examples:
  fuelio vehicles add --name "Family Sedan" --tank 50 --efficiency 8 --reserve 0.1
  fuelio vehicles list`,
	}

	cmd.AddCommand(newVehiclesAddCommand(s))
	cmd.AddCommand(newVehiclesListCommand(s))

	return cmd
}

func newVehiclesAddCommand(s *session) *cobra.Command {
	var (
		id         int
		name       string
		tank       float64
		efficiency float64
		reserve    float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register or update a vehicle",
		Long: `Register a vehicle. With --id an existing profile is replaced.

The reserve is the fraction of the tank never planned below (0.1 = 10%).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &catalogCmd.RegisterVehicleCommand{
				ID:                  id,
				Name:                name,
				TankLiters:          tank,
				EfficiencyLPer100Km: efficiency,
				ReserveFraction:     reserve,
			}

			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				response, err := rt.Mediator.Send(ctx, command)
				if err != nil {
					return fmt.Errorf("failed to register vehicle: %w", err)
				}
				v := response.(*catalogCmd.RegisterVehicleResponse).Vehicle

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, v)
				}
				fmt.Fprintf(out, "Vehicle %d saved: %s\n", v.ID, v.Name)
				fmt.Fprintf(out, "Set it as default with: fuelio config set-vehicle %d\n", v.ID)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Existing vehicle ID to update")
	cmd.Flags().StringVar(&name, "name", "", "Vehicle name")
	cmd.Flags().Float64Var(&tank, "tank", 0, "Tank size in liters")
	cmd.Flags().Float64Var(&efficiency, "efficiency", 0, "Consumption in L/100km")
	cmd.Flags().Float64Var(&reserve, "reserve", 0.1, "Reserve fraction of the tank")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("tank")
	_ = cmd.MarkFlagRequired("efficiency")

	return cmd
}

func newVehiclesListCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				response, err := rt.Mediator.Send(ctx, &catalogQuery.ListVehiclesQuery{})
				if err != nil {
					return fmt.Errorf("failed to list vehicles: %w", err)
				}
				vehicles := response.(*catalogQuery.ListVehiclesResponse).Vehicles

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, vehicles)
				}
				if len(vehicles) == 0 {
					fmt.Fprintln(out, "No vehicles found.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tTANK\tL/100KM\tRESERVE\tRANGE")
				fmt.Fprintln(w, "--\t----\t----\t-------\t-------\t-----")
				for _, v := range vehicles {
					fmt.Fprintf(w, "%d\t%s\t%.0f L\t%.1f\t%.0f%%\t%.0f km\n",
						v.ID, v.Name, v.TankLiters, v.EfficiencyLPer100Km, v.ReserveFraction*100,
						v.UsableRangeKm(v.TankLiters))
				}
				w.Flush()
				return nil
			})
		},
	}
}
