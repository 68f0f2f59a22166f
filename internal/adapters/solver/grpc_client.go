package solver

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

// GRPCSolverClient implements strategy.Solver by calling the remote solver service
type GRPCSolverClient struct {
	conn    *grpc.ClientConn
	limiter *rate.Limiter
	breaker *CircuitBreaker
}

// NewGRPCSolverClient creates a client for the solver service at address.
// The connection is lazy; an unreachable service surfaces on the first Solve.
func NewGRPCSolverClient(address string, limiter *rate.Limiter, breaker *CircuitBreaker, opts ...grpc.DialOption) (*GRPCSolverClient, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create solver client for %s: %w", address, err)
	}

	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if breaker == nil {
		breaker = NewCircuitBreaker(5, 0, nil)
	}

	return &GRPCSolverClient{
		conn:    conn,
		limiter: limiter,
		breaker: breaker,
	}, nil
}

// Name returns the backend name
func (c *GRPCSolverClient) Name() string {
	return "grpc"
}

// Close closes the gRPC connection
func (c *GRPCSolverClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Solve sends the model to the solver service.
// Transport failures, an open breaker and an exhausted rate budget are all
// reported as strategy.ErrSolverUnavailable.
func (c *GRPCSolverClient) Solve(ctx context.Context, model *strategy.FuelStopModel) (*strategy.Solution, error) {
	req, err := EncodeModel(model)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %v: %w", err, strategy.ErrSolverUnavailable)
	}

	resp := new(structpb.Struct)
	err = c.breaker.Call(func() error {
		return c.conn.Invoke(ctx, SolveMethod, req, resp)
	})
	if err != nil {
		if err == ErrCircuitOpen {
			return nil, fmt.Errorf("gRPC Solve skipped: %v: %w", err, strategy.ErrSolverUnavailable)
		}
		switch status.Code(err) {
		case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
			return nil, fmt.Errorf("gRPC Solve failed: %v: %w", err, strategy.ErrSolverUnavailable)
		default:
			return nil, fmt.Errorf("gRPC Solve failed: %w", err)
		}
	}

	sol, err := DecodeSolution(resp)
	if err != nil {
		return nil, fmt.Errorf("invalid solver response: %w", err)
	}
	return sol, nil
}
