package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	catalogCmd "github.com/parniayzdin/Fuelio/internal/application/catalog/commands"
	catalogQuery "github.com/parniayzdin/Fuelio/internal/application/catalog/queries"
)

// newStationsCommand creates the stations command with subcommands
func newStationsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Manage the station catalog",
		Long: `Manage the station catalog searched when planning routes.

Import files are JSON, either an array of stations or {"stations": [...]}:

  [{"id": "esso-401", "name": "Esso 401", "brand": "Esso",
    "lat": 43.70, "lng": -79.40, "prices": {"regular": 1.529}}]

Examples:
  fuelio stations import stations.json
  fuelio stations near --lat 43.65 --lng -79.38 --radius 5`,
	}

	cmd.AddCommand(newStationsImportCommand(s))
	cmd.AddCommand(newStationsNearCommand(s))

	return cmd
}

func newStationsImportCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import stations from a JSON file",
		Long:  `Import stations from a JSON file ("-" for stdin). Invalid records are skipped and listed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readStationRecords(args[0], cmd)
			if err != nil {
				return err
			}

			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				response, err := rt.Mediator.Send(ctx, &catalogCmd.ImportStationsCommand{Stations: records})
				if err != nil {
					return fmt.Errorf("failed to import stations: %w", err)
				}
				result := response.(*catalogCmd.ImportStationsResponse)

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, result)
				}
				fmt.Fprintf(out, "Imported %d station(s)\n", result.Imported)
				if len(result.Rejected) > 0 {
					fmt.Fprintf(out, "Rejected %d:\n", len(result.Rejected))
					keys := make([]string, 0, len(result.Rejected))
					for k := range result.Rejected {
						keys = append(keys, k)
					}
					sort.Strings(keys)
					for _, k := range keys {
						fmt.Fprintf(out, "  %s: %s\n", k, result.Rejected[k])
					}
				}
				return nil
			})
		},
	}
}

// readStationRecords accepts a bare array or a {"stations": [...]} document
func readStationRecords(path string, cmd *cobra.Command) ([]catalogCmd.StationRecord, error) {
	var raw json.RawMessage
	if err := readJSONFile(path, cmd.InOrStdin(), &raw); err != nil {
		return nil, err
	}
	var records []catalogCmd.StationRecord
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}
	var doc catalogCmd.ImportStationsCommand
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: expected an array of stations or {\"stations\": [...]}", path)
	}
	return doc.Stations, nil
}

func newStationsNearCommand(s *session) *cobra.Command {
	var (
		lat, lng float64
		radiusKm float64
		grade    string
	)

	cmd := &cobra.Command{
		Use:   "near",
		Short: "List stations near a point, cheapest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := &catalogQuery.FindStationsNearQuery{
				Lat:      lat,
				Lng:      lng,
				RadiusKm: radiusKm,
				Grade:    grade,
			}

			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				response, err := rt.Mediator.Send(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to find stations: %w", err)
				}
				stations := response.(*catalogQuery.FindStationsNearResponse).Stations

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, stations)
				}
				if len(stations) == 0 {
					fmt.Fprintln(out, "No stations found.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tBRAND\tDISTANCE\tPRICE")
				fmt.Fprintln(w, "--\t----\t-----\t--------\t-----")
				for _, n := range stations {
					fmt.Fprintf(w, "%s\t%s\t%s\t%.1f km\t%s\n",
						n.Station.ID, n.Station.Name, n.Station.Brand, n.DistanceKm, formatPrice(n.Price))
				}
				w.Flush()
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.Flags().Float64Var(&radiusKm, "radius", 5, "Search radius in km")
	cmd.Flags().StringVar(&grade, "grade", "", "Fuel grade used for the price column")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}
