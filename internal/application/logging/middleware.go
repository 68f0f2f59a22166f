package logging

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/parniayzdin/Fuelio/internal/application/mediator"
)

// RequestLoggingMiddleware logs every dispatched request with its duration.
// A base logger is injected into the context when the caller did not set one.
func RequestLoggingMiddleware(base Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, ok := ctx.Value(loggerKey).(Logger); !ok && base != nil {
			ctx = WithLogger(ctx, base)
		}
		logger := LoggerFromContext(ctx)
		name := RequestName(request)

		start := time.Now()
		resp, err := next(ctx, request)
		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}

		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(LevelError, "request failed", metadata)
			return resp, err
		}
		logger.Log(LevelDebug, "request handled", metadata)
		return resp, nil
	}
}

// RequestName returns the bare type name of a request, e.g. "DecideRefuelCommand"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
