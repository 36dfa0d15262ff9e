package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTick_ReportsAfterInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var buf bytes.Buffer
	p := NewProfiler(
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		WithClock(func() time.Time { return now }),
	)

	for range 29 {
		now = now.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	now = now.Add(600 * time.Millisecond)
	assert.True(t, p.Tick())

	assert.Greater(t, p.LastReport().FPS, 0.0)
	assert.Contains(t, buf.String(), "component=profiler")
	assert.Contains(t, buf.String(), "fps=")
}

func TestTick_ResetsFrameCount(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithInterval(time.Second), WithClock(func() time.Time { return now }), WithLogger(slog.New(slog.DiscardHandler)))

	for range 10 {
		now = now.Add(100 * time.Millisecond)
		p.Tick()
	}
	assert.InDelta(t, 10.0, p.LastReport().FPS, 0.01)

	now = now.Add(500 * time.Millisecond)
	assert.False(t, p.Tick())
}
