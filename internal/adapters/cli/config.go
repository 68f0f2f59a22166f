package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/parniayzdin/Fuelio/internal/infrastructure/config"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Fuelio configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (FUELIO_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default vehicle and region) are stored in ~/.fuelio/config.json

Examples:
  fuelio config show
  fuelio config set-vehicle 1
  fuelio config set-region ontario
  fuelio config clear`,
	}

	cmd.AddCommand(newConfigShowCommand(s))
	cmd.AddCommand(newConfigSetVehicleCommand(s))
	cmd.AddCommand(newConfigSetRegionCommand(s))
	cmd.AddCommand(newConfigClearCommand(s))

	return cmd
}

func newConfigShowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(s.configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			handler, err := s.userConfig()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := handler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			if s.jsonOutput {
				masked := *cfg
				masked.Database.URL = maskPassword(cfg.Database.URL)
				if masked.Database.Password != "" {
					masked.Database.Password = "****"
				}
				return printJSON(out, map[string]interface{}{"config": masked, "user": userCfg})
			}

			fmt.Fprintln(out, "Fuelio Configuration")
			fmt.Fprintln(out, "====================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", handler.GetConfigPath())
			if userCfg.DefaultVehicleID != nil {
				fmt.Fprintf(out, "  Default Vehicle:  %d\n", *userCfg.DefaultVehicleID)
			} else {
				fmt.Fprintln(out, "  Default Vehicle:  (not set)")
			}
			if userCfg.DefaultRegion != "" {
				fmt.Fprintf(out, "  Default Region:   %s\n", userCfg.DefaultRegion)
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
			}

			fmt.Fprintln(out, "\nSolver:")
			fmt.Fprintf(out, "  Backend:          %s\n", cfg.Solver.Backend)
			fmt.Fprintf(out, "  Timeout:          %s\n", cfg.Solver.Timeout)
			switch cfg.Solver.Backend {
			case config.SolverCBC:
				fmt.Fprintf(out, "  CBC binary:       %s\n", cfg.Solver.CBCPath)
			case config.SolverGRPC:
				fmt.Fprintf(out, "  Address:          %s\n", cfg.Solver.Address)
				fmt.Fprintf(out, "  Rate Limit:       %.1f req/s (burst: %d)\n", cfg.Solver.RateLimit, cfg.Solver.Burst)
			}

			fmt.Fprintln(out, "\nStrategy:")
			fmt.Fprintf(out, "  Search Radius:    %.1f km\n", cfg.Strategy.SearchRadiusKm)
			fmt.Fprintf(out, "  Forecast Days:    %d\n", cfg.Strategy.ForecastDays)
			fmt.Fprintf(out, "  Fuel Grade:       %s\n", cfg.Strategy.FuelGrade)
			fmt.Fprintf(out, "  Region:           %s\n", cfg.Strategy.Region)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

func newConfigSetVehicleCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set-vehicle <vehicle-id>",
		Short: "Set the default vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid vehicle id %q", args[0])
			}
			handler, err := s.userConfig()
			if err != nil {
				return err
			}
			if err := handler.SetDefaultVehicle(id); err != nil {
				return fmt.Errorf("failed to set default vehicle: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default vehicle set to %d\n", id)
			return nil
		},
	}
}

func newConfigSetRegionCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set-region <region>",
		Short: "Set the default price region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := s.userConfig()
			if err != nil {
				return err
			}
			if err := handler.SetDefaultRegion(args[0]); err != nil {
				return fmt.Errorf("failed to set default region: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default region set to %s\n", args[0])
			return nil
		},
	}
}

func newConfigClearCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear user preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := s.userConfig()
			if err != nil {
				return err
			}
			if err := handler.Clear(); err != nil {
				return fmt.Errorf("failed to clear user config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User preferences cleared")
			return nil
		},
	}
}

// maskPassword hides the password of a database URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
