package cli

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	zaplog "github.com/parniayzdin/Fuelio/internal/adapters/logging"
	"github.com/parniayzdin/Fuelio/internal/adapters/metrics"
	"github.com/parniayzdin/Fuelio/internal/adapters/persistence"
	"github.com/parniayzdin/Fuelio/internal/adapters/solver"
	catalogCmd "github.com/parniayzdin/Fuelio/internal/application/catalog/commands"
	catalogQuery "github.com/parniayzdin/Fuelio/internal/application/catalog/queries"
	fuelCmd "github.com/parniayzdin/Fuelio/internal/application/fuel/commands"
	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	pricingCmd "github.com/parniayzdin/Fuelio/internal/application/pricing/commands"
	pricingQuery "github.com/parniayzdin/Fuelio/internal/application/pricing/queries"
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/internal/infrastructure/config"
	"github.com/parniayzdin/Fuelio/internal/infrastructure/database"
)

// Runtime holds everything a command needs to dispatch requests
type Runtime struct {
	Mediator mediator.Mediator
	Config   *config.Config
	Logger   logging.Logger
	closers  []func() error
}

// Close releases the solver connection, flushes logs and closes the database
func (r *Runtime) Close() error {
	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil
	return firstErr
}

// Context returns ctx carrying the runtime logger
func (r *Runtime) Context(ctx context.Context) context.Context {
	if r.Logger == nil {
		return ctx
	}
	return logging.WithLogger(ctx, r.Logger)
}

// Opener builds a Runtime for the given config file path
type Opener func(configPath string) (*Runtime, error)

// OpenRuntime loads configuration and wires the database, logger, solver
// and every request handler
func OpenRuntime(configPath string) (*Runtime, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Config: cfg}

	logger, err := zaplog.NewZapLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	rt.Logger = logger
	rt.closers = append(rt.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	db, err := database.Open(&cfg.Database)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	rt.closers = append(rt.closers, func() error { return database.Close(db) })

	backend, closer, err := solver.New(cfg.Solver)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.closers = append(rt.closers, closer.Close)

	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		if commandMetrics, err = enableMetrics(); err != nil {
			_ = rt.Close()
			return nil, err
		}
	}

	med := mediator.NewMediator()
	med.RegisterMiddleware(logging.RequestLoggingMiddleware(logger))
	med.RegisterMiddleware(metrics.PrometheusMiddleware(commandMetrics))
	if err := RegisterHandlers(med, NewDependencies(db, cfg, backend, nil)); err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Mediator = med

	return rt, nil
}

func enableMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()
	fuel := metrics.NewFuelMetricsCollector()
	if err := fuel.Register(); err != nil {
		return nil, fmt.Errorf("failed to register fuel metrics: %w", err)
	}
	metrics.SetGlobalFuelCollector(fuel)

	commands := metrics.NewCommandMetricsCollector()
	if err := commands.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commands, nil
}

// Dependencies are the ports behind every handler
type Dependencies struct {
	Vehicles     *persistence.GormVehicleRepository
	Stations     *persistence.GormStationRepository
	Cards        *persistence.GormCardRepository
	PriceHistory *persistence.GormPriceHistoryRepository
	Planner      *strategy.Planner
	Forecaster   *forecast.PriceForecaster
	Clock        shared.Clock
	Strategy     config.StrategyConfig
}

// NewDependencies builds repositories on db and a planner around backend.
// A nil backend always uses the greedy planner.
func NewDependencies(db *gorm.DB, cfg *config.Config, backend strategy.Solver, clock shared.Clock) *Dependencies {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if backend != nil {
		backend = metrics.NewInstrumentedSolver(backend, nil)
	}
	forecaster := forecast.NewPriceForecaster()

	return &Dependencies{
		Vehicles:     persistence.NewGormVehicleRepository(db),
		Stations:     persistence.NewGormStationRepository(db),
		Cards:        persistence.NewGormCardRepository(db),
		PriceHistory: persistence.NewGormPriceHistoryRepository(db),
		Planner:      strategy.NewPlanner(strategy.NewFuelStopOptimizer(backend, cfg.Solver.Timeout), forecaster, clock),
		Forecaster:   forecaster,
		Clock:        clock,
		Strategy:     cfg.Strategy,
	}
}

// RegisterHandlers registers every command and query handler
func RegisterHandlers(med mediator.Mediator, deps *Dependencies) error {
	s := deps.Strategy
	grade, err := station.ParseFuelGrade(s.FuelGrade)
	if err != nil {
		return err
	}

	register := []struct {
		name string
		fn   func() error
	}{
		{"DecideRefuel", func() error {
			return mediator.RegisterHandler[*fuelCmd.DecideRefuelCommand](med,
				fuelCmd.NewDecideRefuelHandler(deps.Vehicles, deps.PriceHistory, deps.Forecaster, s.Region, s.HistoryDays))
		}},
		{"OptimizeFuelStrategy", func() error {
			return mediator.RegisterHandler[*fuelCmd.OptimizeFuelStrategyCommand](med,
				fuelCmd.NewOptimizeFuelStrategyHandler(deps.Vehicles, deps.Stations, deps.Cards, deps.PriceHistory, deps.Planner,
					fuelCmd.OptimizeDefaults{
						SearchRadiusKm: s.SearchRadiusKm,
						HorizonDays:    s.ForecastDays,
						Grade:          grade,
						Region:         s.Region,
						HistoryDays:    s.HistoryDays,
					}))
		}},
		{"RecordRegionalPrice", func() error {
			return mediator.RegisterHandler[*pricingCmd.RecordRegionalPriceCommand](med,
				pricingCmd.NewRecordRegionalPriceHandler(deps.PriceHistory, deps.Clock))
		}},
		{"ForecastPrices", func() error {
			return mediator.RegisterHandler[*pricingQuery.ForecastPricesQuery](med,
				pricingQuery.NewForecastPricesHandler(deps.PriceHistory, deps.Forecaster, s.Region))
		}},
		{"RegisterVehicle", func() error {
			return mediator.RegisterHandler[*catalogCmd.RegisterVehicleCommand](med, catalogCmd.NewRegisterVehicleHandler(deps.Vehicles))
		}},
		{"ImportStations", func() error {
			return mediator.RegisterHandler[*catalogCmd.ImportStationsCommand](med, catalogCmd.NewImportStationsHandler(deps.Stations))
		}},
		{"SaveCard", func() error {
			return mediator.RegisterHandler[*catalogCmd.SaveCardCommand](med, catalogCmd.NewSaveCardHandler(deps.Cards))
		}},
		{"ListCardProviders", func() error {
			return mediator.RegisterHandler[*catalogQuery.ListCardProvidersQuery](med,
				catalogQuery.NewListCardProvidersHandler(station.NewProviderCatalog(deps.Cards)))
		}},
		{"ListVehicles", func() error {
			return mediator.RegisterHandler[*catalogQuery.ListVehiclesQuery](med, catalogQuery.NewListVehiclesHandler(deps.Vehicles))
		}},
		{"FindStationsNear", func() error {
			return mediator.RegisterHandler[*catalogQuery.FindStationsNearQuery](med, catalogQuery.NewFindStationsNearHandler(deps.Stations))
		}},
	}

	for _, r := range register {
		if err := r.fn(); err != nil {
			return fmt.Errorf("failed to register %s handler: %w", r.name, err)
		}
	}
	return nil
}

var _ io.Closer = (*Runtime)(nil)
