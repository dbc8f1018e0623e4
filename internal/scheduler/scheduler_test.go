package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-proxy/internal/weather"
)

type countingProber struct {
	calls atomic.Int32
	query atomic.Value
}

func (p *countingProber) Probe(_ context.Context, query string) weather.ProbeResult {
	p.calls.Add(1)
	p.query.Store(query)
	return weather.ProbeResult{OK: true}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStartRunsProbeImmediately(t *testing.T) {
	p := &countingProber{}
	s := New(p, "London", time.Hour, time.Second, quietLogger())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "London", p.query.Load())
}

func TestStartDisabled(t *testing.T) {
	p := &countingProber{}
	s := New(p, "London", 0, time.Second, quietLogger())

	require.NoError(t, s.Start())
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, p.calls.Load())
}
