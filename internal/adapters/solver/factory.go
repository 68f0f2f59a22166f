package solver

import (
	"fmt"
	"io"

	"golang.org/x/time/rate"

	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/internal/infrastructure/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the backend selected by cfg. The "none" backend returns a nil
// Solver, which makes every plan use the greedy fallback. The returned
// Closer releases any connection the backend holds.
func New(cfg config.SolverConfig) (strategy.Solver, io.Closer, error) {
	switch cfg.Backend {
	case config.SolverEnumerate, "":
		return NewEnumerationSolver(), nopCloser{}, nil
	case config.SolverCBC:
		return NewCBCSolver(cfg.CBCPath), nopCloser{}, nil
	case config.SolverGRPC:
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
		breaker := NewCircuitBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Cooldown, nil)
		client, err := NewGRPCSolverClient(cfg.Address, limiter, breaker)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	case config.SolverNone:
		return nil, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown solver backend %q", cfg.Backend)
	}
}
