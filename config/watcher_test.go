package config

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)
	t.Setenv(EnvAnimationSpeed, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, DefaultSettings().Save(path))

	core, logs := observer.New(zap.InfoLevel)
	st := NewStore(DefaultSettings())
	var reloads atomic.Int32
	w, err := NewWatcher(path, st,
		WithDebounce(20*time.Millisecond),
		WithWatcherLogger(zap.New(core)),
		WithOnReload(func(*Settings, bool) { reloads.Add(1) }),
	)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	assert.ErrorIs(t, w.Start(context.Background()), ErrWatcherStarted)

	next := DefaultSettings()
	next.Graphics.SetResolution(1920, 1080)
	require.NoError(t, next.Save(path))

	require.Eventually(t, func() bool {
		return st.Snapshot().Graphics.Resolution == Resolution{Width: 1920, Height: 1080}
	}, 5*time.Second, 10*time.Millisecond)
	assert.True(t, st.Snapshot().Graphics.HasChanged())
	assert.GreaterOrEqual(t, reloads.Load(), int32(1))

	writeFile(t, path, "graphics: [")
	require.Eventually(t, func() bool {
		return logs.FilterMessage("settings reload failed, keeping current settings").Len() > 0
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1920, st.Snapshot().Graphics.Resolution.Width)

	w.Stop()
	w.Stop()
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	st := NewStore(DefaultSettings())
	var reloads atomic.Int32
	w, err := NewWatcher(path, st,
		WithDebounce(10*time.Millisecond),
		WithOnReload(func(*Settings, bool) { reloads.Add(1) }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeFile(t, filepath.Join(dir, "other.yaml"), "x: 1\n")
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, reloads.Load())

	cancel()
	require.NoError(t, <-done)
	w.Stop()
}

func TestWatcherStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "settings.yaml"), NewStore(nil))
	require.NoError(t, err)
	w.Stop()
}
