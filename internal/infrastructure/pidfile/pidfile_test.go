package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_WritesCurrentPID(t *testing.T) {
	// Arrange
	p := New(filepath.Join(t.TempDir(), "solver.pid"))

	// Act
	err := p.Acquire()

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(p.Path())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))
}

func TestAcquire_RefusesLiveProcess(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "solver.pid")
	require.NoError(t, os.WriteFile(path, []byte("4242\n"), 0644))
	p := New(path)
	p.alive = func(pid int) bool { return pid == 4242 }

	// Act
	err := p.Acquire()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running (PID 4242")
}

func TestAcquire_ReplacesStaleOrGarbageFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"dead process", "4242\n"},
		{"garbage", "not-a-pid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "solver.pid")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			p := New(path)
			p.alive = func(int) bool { return false }

			require.NoError(t, p.Acquire())

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))
		})
	}
}

func TestRelease_MissingFileIsFine(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "solver.pid"))

	require.NoError(t, p.Acquire())
	require.NoError(t, p.Release())
	assert.NoError(t, p.Release())
}
