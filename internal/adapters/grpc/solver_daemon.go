package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/parniayzdin/Fuelio/internal/adapters/metrics"
	"github.com/parniayzdin/Fuelio/internal/adapters/solver"
	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/internal/infrastructure/config"
)

// SolverDaemon serves a local fuel stop solver over gRPC and, when metrics
// are enabled, exposes Prometheus metrics over HTTP
type SolverDaemon struct {
	logger      logging.Logger
	listener    net.Listener
	grpcServer  *grpc.Server
	metricsHTTP *http.Server

	// Shutdown coordination
	shutdownChan chan os.Signal
	done         chan struct{}
}

// NewSolverDaemon listens on address and registers backend behind the solver service
func NewSolverDaemon(backend strategy.Solver, address string, metricsCfg config.MetricsConfig, logger logging.Logger) (*SolverDaemon, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return NewSolverDaemonOn(listener, backend, metricsCfg, logger), nil
}

// NewSolverDaemonOn serves on an existing listener
func NewSolverDaemonOn(listener net.Listener, backend strategy.Solver, metricsCfg config.MetricsConfig, logger logging.Logger) *SolverDaemon {
	if logger == nil {
		logger = logging.LoggerFromContext(context.Background())
	}
	if metrics.IsEnabled() {
		backend = metrics.NewInstrumentedSolver(backend, nil)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(logger)))
	solver.RegisterSolverServer(grpcServer, solver.NewSolverService(backend))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(solver.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	d := &SolverDaemon{
		logger:       logger,
		listener:     listener,
		grpcServer:   grpcServer,
		shutdownChan: make(chan os.Signal, 1),
		done:         make(chan struct{}),
	}

	if metricsCfg.Enabled && metrics.IsEnabled() {
		mux := http.NewServeMux()
		mux.Handle(metricsCfg.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
		d.metricsHTTP = &http.Server{
			Addr:              metricsCfg.Address(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	signal.Notify(d.shutdownChan, os.Interrupt, syscall.SIGTERM)

	return d
}

// Addr returns the gRPC listen address
func (d *SolverDaemon) Addr() net.Addr {
	return d.listener.Addr()
}

// Start serves until a shutdown signal arrives, Shutdown is called or a server fails
func (d *SolverDaemon) Start() error {
	d.logger.Log(logging.LevelInfo, "solver service listening", map[string]interface{}{
		"address": d.listener.Addr().String(),
	})

	go d.handleShutdown()

	errChan := make(chan error, 2)
	go func() {
		if err := d.grpcServer.Serve(d.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	if d.metricsHTTP != nil {
		d.logger.Log(logging.LevelInfo, "metrics endpoint listening", map[string]interface{}{
			"address": d.metricsHTTP.Addr,
		})
		go func() {
			if err := d.metricsHTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	select {
	case err := <-errChan:
		d.stopServers()
		return err
	case <-d.done:
		d.stopServers()
		return nil
	}
}

// Shutdown requests a graceful stop, as if SIGTERM had been received
func (d *SolverDaemon) Shutdown() {
	select {
	case d.shutdownChan <- syscall.SIGTERM:
	default:
	}
}

func (d *SolverDaemon) handleShutdown() {
	sig := <-d.shutdownChan
	signal.Stop(d.shutdownChan)
	d.logger.Log(logging.LevelInfo, "shutdown signal received", map[string]interface{}{
		"signal": sig.String(),
	})
	close(d.done)
}

func (d *SolverDaemon) stopServers() {
	d.grpcServer.GracefulStop()
	if d.metricsHTTP != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = d.metricsHTTP.Shutdown(ctx)
	}
}

// loggingInterceptor logs every call with its duration and outcome
func loggingInterceptor(logger logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(logging.WithLogger(ctx, logger), req)

		fields := map[string]interface{}{
			"method":      info.FullMethod,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			fields["error"] = err.Error()
			logger.Log(logging.LevelWarn, "solve failed", fields)
		} else {
			logger.Log(logging.LevelDebug, "solve completed", fields)
		}
		return resp, err
	}
}
