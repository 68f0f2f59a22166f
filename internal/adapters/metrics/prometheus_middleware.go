package metrics

import (
	"context"
	"time"

	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
)

// PrometheusMiddleware records the duration and outcome of every mediator request.
// A nil collector disables it.
// Requests are labelled by bare type name, e.g. "*commands.DecideRefuelCommand"
// becomes "DecideRefuelCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordRequest(logging.RequestName(request), time.Since(start).Seconds(), err)

		return response, err
	}
}
