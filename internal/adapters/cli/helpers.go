package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/infrastructure/config"
)

func (s *session) userConfig() (*config.UserConfigHandler, error) {
	if s.userDir != "" {
		return config.NewUserConfigHandlerAt(s.userDir)
	}
	return config.NewUserConfigHandler()
}

// resolveVehicleID resolves the vehicle from flags or defaults
// Priority: --vehicle-id > user config default
func (s *session) resolveVehicleID() (int, error) {
	if s.vehicleID > 0 {
		return s.vehicleID, nil
	}

	handler, err := s.userConfig()
	if err != nil {
		return 0, fmt.Errorf("no vehicle specified and failed to load user config: %w", err)
	}
	userCfg, err := handler.Load()
	if err != nil {
		return 0, fmt.Errorf("no vehicle specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultVehicleID != nil {
		return *userCfg.DefaultVehicleID, nil
	}

	return 0, fmt.Errorf("no vehicle specified: use --vehicle-id, or set a default with 'fuelio config set-vehicle'")
}

// resolveRegion returns --region, then the user default; empty leaves the
// choice to strategy.region
func (s *session) resolveRegion() string {
	if s.region != "" {
		return s.region
	}
	handler, err := s.userConfig()
	if err != nil {
		return ""
	}
	userCfg, err := handler.Load()
	if err != nil {
		return ""
	}
	return userCfg.DefaultRegion
}

// parseRoute reads "lat,lng;lat,lng;..." into points
func parseRoute(value string) ([]shared.GeoPoint, error) {
	var points []shared.GeoPoint
	for i, pair := range strings.Split(value, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("route point %d: expected lat,lng, got %q", i+1, pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("route point %d: invalid latitude: %w", i+1, err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("route point %d: invalid longitude: %w", i+1, err)
		}
		p, err := shared.NewGeoPoint(lat, lng)
		if err != nil {
			return nil, fmt.Errorf("route point %d: %w", i+1, err)
		}
		points = append(points, p)
	}
	return points, nil
}

// readJSONFile decodes a JSON file; "-" reads stdin
func readJSONFile(path string, stdin io.Reader, v interface{}) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.3f", p)
}

func optionalPrice(p *float64) string {
	if p == nil {
		return "(unknown)"
	}
	return formatPrice(*p)
}
