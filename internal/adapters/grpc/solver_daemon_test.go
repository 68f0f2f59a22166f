package grpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	daemon "github.com/parniayzdin/Fuelio/internal/adapters/grpc"
	"github.com/parniayzdin/Fuelio/internal/adapters/solver"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/internal/infrastructure/config"
)

func startDaemon(t *testing.T) (*bufconn.Listener, chan error, *daemon.SolverDaemon) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	d := daemon.NewSolverDaemonOn(lis, solver.NewEnumerationSolver(), config.MetricsConfig{}, nil)

	stopped := make(chan error, 1)
	go func() { stopped <- d.Start() }()
	return lis, stopped, d
}

func dialer(lis *bufconn.Listener) grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

func TestSolverDaemon_ServesSolveAndHealth(t *testing.T) {
	// Arrange
	lis, stopped, d := startDaemon(t)
	defer func() {
		d.Shutdown()
		<-stopped
	}()

	client, err := solver.NewGRPCSolverClient("passthrough:///bufnet", nil, nil, dialer(lis))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Act
	sol, err := client.Solve(ctx, &strategy.FuelStopModel{
		HorizonDays:    1,
		TankLiters:     50,
		InitialLiters:  10,
		ReserveLiters:  5,
		TripNeedLiters: 30,
		MaxFills:       strategy.MaxFills,
		Prices:         [][]float64{{1.60}, {1.40}},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, strategy.SolutionOptimal, sol.Status)
	assert.InDelta(t, 25.0, sol.Liters[1][0], 1e-6)

	conn, err := grpc.NewClient("passthrough:///bufnet", dialer(lis), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	health, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: solver.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.Status)
}

func TestSolverDaemon_ShutdownStopsStart(t *testing.T) {
	_, stopped, d := startDaemon(t)

	d.Shutdown()

	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop")
	}
}
