package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunTicksUntilQuit(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEngine(WithTickRate(500))
	var ticks atomic.Int32
	e.SetTickCallback(func(dt time.Duration) {
		assert.Positive(t, dt)
		if ticks.Add(1) == 3 {
			e.Quit()
		}
	})

	require.NoError(t, e.Run(context.Background()))
	assert.GreaterOrEqual(t, ticks.Load(), int32(3))
	assert.False(t, e.Running())

	select {
	case <-e.Done():
	default:
		t.Fatal("Done not closed after Run returned")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	e := NewEngine()
	e.SetTickCallback(func(time.Duration) { cancel() })

	assert.ErrorIs(t, e.Run(ctx), context.Canceled)
}

func TestRunOnlyOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEngine()
	e.Quit()
	e.Quit()
	require.NoError(t, e.Run(context.Background()))
	assert.ErrorIs(t, e.Run(context.Background()), ErrAlreadyRunning)
}

func TestRenderErrorsLoggedOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	core, logs := observer.New(zap.WarnLevel)
	e := NewEngine(WithLogger(zap.New(core)), WithRenderFrameLimit(1000))
	var frames atomic.Int32
	e.SetRenderCallback(func(time.Duration) error {
		if frames.Add(1) == 5 {
			e.Quit()
		}
		return errors.New("surface lost")
	})

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("render failed").Len())
}

func TestPanicInLoopQuits(t *testing.T) {
	defer goleak.VerifyNone(t)

	core, logs := observer.New(zap.ErrorLevel)
	e := NewEngine(WithLogger(zap.New(core)))
	e.SetRenderCallback(func(time.Duration) error {
		panic("device lost")
	})

	require.NoError(t, e.Run(context.Background()))
	entries := logs.FilterMessage("engine loop recovered from panic").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "render", entries[0].ContextMap()["loop"])
}

type pollerFunc func()

func (f pollerFunc) PollEvents() { f() }

func TestEventsPumpedOnRunGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	var e Engine
	var polls int
	e = NewEngine(WithEvents(pollerFunc(func() {
		polls++
		if polls == 3 {
			e.Quit()
		}
	})))

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 3, polls)
}

func TestProfilerTicksWhenEnabled(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEngine(WithProfiling(true))
	var frames atomic.Int32
	e.SetRenderCallback(func(time.Duration) error {
		if frames.Add(1) == 2 {
			e.DisableProfiler()
			e.Quit()
		}
		return nil
	})
	require.NoError(t, e.Run(context.Background()))
	assert.NotNil(t, e.Profiler())
}

func TestTickRate(t *testing.T) {
	tests := []struct {
		name string
		fps  float64
		want time.Duration
	}{
		{"default", 0, time.Second / 60},
		{"negative", -5, time.Second / 60},
		{"120hz", 120, time.Second / 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			e.SetTickRate(tt.fps)
			assert.Equal(t, tt.want, e.TickRate())
		})
	}
}

func TestSetTickRateWhileRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEngine(WithTickRate(200))
	var ticks atomic.Int32
	e.SetTickCallback(func(time.Duration) {
		switch ticks.Add(1) {
		case 1:
			e.SetTickRate(1000)
			e.SetTickRate(500)
		case 4:
			e.Quit()
		}
	})
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, time.Second/500, e.TickRate())
}
