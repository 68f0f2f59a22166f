package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/parniayzdin/Fuelio/internal/adapters/grpc"
	zaplog "github.com/parniayzdin/Fuelio/internal/adapters/logging"
	"github.com/parniayzdin/Fuelio/internal/adapters/metrics"
	"github.com/parniayzdin/Fuelio/internal/adapters/solver"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/internal/infrastructure/config"
	"github.com/parniayzdin/Fuelio/internal/infrastructure/pidfile"
)

func main() {
	os.Exit(serve())
}

func serve() int {
	configPath := flag.String("config", "", "Path to config file")
	listen := flag.String("listen", ":50061", "gRPC listen address")
	backendName := flag.String("backend", "", "Local solver: enumerate or cbc (default: solver.backend when local, else enumerate)")
	pidPath := flag.String("pid-file", "", "PID file guarding against a second instance (disabled when empty)")
	flag.Parse()

	fmt.Println("Fuelio Solver Service")
	fmt.Println("=====================")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	if *pidPath != "" {
		pf := pidfile.New(*pidPath)
		if err := pf.Acquire(); err != nil {
			log.Printf("Failed to acquire PID file lock: %v", err)
			return 1
		}
		defer func() {
			if err := pf.Release(); err != nil {
				log.Printf("Warning: failed to release PID file: %v", err)
			}
		}()
	}

	if err := run(cfg, *listen, *backendName); err != nil {
		log.Printf("Fatal error: %v", err)
		return 1
	}
	return 0
}

func run(cfg *config.Config, listen, backendName string) error {
	logger, err := zaplog.NewZapLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	backend, err := localBackend(cfg.Solver, backendName)
	if err != nil {
		return err
	}
	fmt.Printf("Solver backend: %s\n", backend.Name())

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewFuelMetricsCollector()
		if err := collector.Register(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		metrics.SetGlobalFuelCollector(collector)
		fmt.Printf("Metrics enabled on %s%s\n", cfg.Metrics.Address(), cfg.Metrics.Path)
	}

	daemon, err := grpc.NewSolverDaemon(backend, listen, cfg.Metrics, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Listening on %s\n", daemon.Addr())

	return daemon.Start()
}

// localBackend picks an in-process solver; the service never forwards to another service
func localBackend(cfg config.SolverConfig, name string) (strategy.Solver, error) {
	if name == "" {
		name = cfg.Backend
	}
	switch name {
	case config.SolverCBC:
		return solver.NewCBCSolver(cfg.CBCPath), nil
	case config.SolverEnumerate, config.SolverGRPC, config.SolverNone, "":
		return solver.NewEnumerationSolver(), nil
	default:
		return nil, fmt.Errorf("unknown solver backend %q", name)
	}
}
