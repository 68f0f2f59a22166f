package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// session carries global flags shared by every subcommand
type session struct {
	configPath string
	jsonOutput bool
	vehicleID  int
	region     string
	userDir    string

	open Opener
}

// run opens a runtime, hands fn a context carrying its logger and closes it afterwards
func (s *session) run(cmd *cobra.Command, fn func(ctx context.Context, rt *Runtime) error) (err error) {
	rt, err := s.open(s.configPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rt.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(rt.Context(cmd.Context()), rt)
}

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(OpenRuntime)
}

// NewRootCommandWith creates the root command with a custom runtime opener
func NewRootCommandWith(open Opener) *cobra.Command {
	s := &session{open: open}

	rootCmd := &cobra.Command{
		Use:   "fuelio",
		Short: "Fuelio - decide when and where to refuel",
		Long: `Fuelio decides whether to refuel now and plans the cheapest fill-ups along a route.

Stations, cards, vehicles and regional price history are kept in the configured
database. Plans use the configured exact solver and fall back to a greedy
planner when it is unavailable.

Examples:
  fuelio vehicles add --name "Family Sedan" --tank 50 --efficiency 8 --reserve 0.1
  fuelio decide --vehicle-id 1 --fuel-percent 22 --trip-km 180
  fuelio optimize --vehicle-id 1 --fuel-percent 30 --route "43.65,-79.38;45.50,-73.57"
  fuelio prices record --region ontario --price 1.529
  fuelio forecast --region ontario --days 7
  fuelio stations import stations.json
  fuelio cards add --provider "Costco Visa" --cashback 4 --partner Costco`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&s.configPath, "config", "",
		"Path to config file (default: search ./, ./configs, /etc/fuelio)")
	rootCmd.PersistentFlags().BoolVar(&s.jsonOutput, "json", false,
		"Print results as JSON")
	rootCmd.PersistentFlags().IntVar(&s.vehicleID, "vehicle-id", 0,
		"Vehicle ID (defaults to the one set with 'fuelio config set-vehicle')")
	rootCmd.PersistentFlags().StringVar(&s.region, "region", "",
		"Price region (defaults to user config, then strategy.region)")
	rootCmd.PersistentFlags().StringVar(&s.userDir, "user-dir", "",
		"Directory holding user preferences (default: ~/.fuelio)")
	_ = rootCmd.PersistentFlags().MarkHidden("user-dir")

	rootCmd.AddCommand(newConfigCommand(s))
	rootCmd.AddCommand(newDecideCommand(s))
	rootCmd.AddCommand(newOptimizeCommand(s))
	rootCmd.AddCommand(newForecastCommand(s))
	rootCmd.AddCommand(newPricesCommand(s))
	rootCmd.AddCommand(newCardsCommand(s))
	rootCmd.AddCommand(newStationsCommand(s))
	rootCmd.AddCommand(newVehiclesCommand(s))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
