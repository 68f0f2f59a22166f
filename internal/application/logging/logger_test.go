package logging_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
)

type entry struct {
	level    string
	message  string
	metadata map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{level, message, metadata})
}

type sampleQuery struct{}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())

	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Log(logging.LevelInfo, "ignored", nil) })
}

func TestLoggerFromContext_ReturnsInjectedLogger(t *testing.T) {
	rec := &recordingLogger{}
	ctx := logging.WithLogger(context.Background(), rec)

	logging.LoggerFromContext(ctx).Log(logging.LevelWarn, "hello", nil)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "hello", rec.entries[0].message)
}

func TestRequestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		handler   mediator.HandlerFunc
		wantLevel string
		wantMsg   string
	}{
		{
			name: "success logs at debug",
			handler: func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
				logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "inside", nil)
				return "ok", nil
			},
			wantLevel: logging.LevelDebug,
			wantMsg:   "request handled",
		},
		{
			name: "failure logs at error",
			handler: func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
				logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "inside", nil)
				return nil, errors.New("broken")
			},
			wantLevel: logging.LevelError,
			wantMsg:   "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			rec := &recordingLogger{}
			mw := logging.RequestLoggingMiddleware(rec)

			// Act
			_, _ = mw(context.Background(), &sampleQuery{}, tt.handler)

			// Assert: the handler saw the injected logger, then the middleware logged
			require.Len(t, rec.entries, 2)
			assert.Equal(t, "inside", rec.entries[0].message)
			last := rec.entries[1]
			assert.Equal(t, tt.wantLevel, last.level)
			assert.Equal(t, tt.wantMsg, last.message)
			assert.Equal(t, "sampleQuery", last.metadata["request"])
		})
	}
}
