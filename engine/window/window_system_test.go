package window

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeNative struct {
	shouldClose bool
	destroyed   int
	title       string
	fbW, fbH    int
}

func (f *fakeNative) ShouldClose() bool                          { return f.shouldClose }
func (f *fakeNative) SetShouldClose(v bool)                      { f.shouldClose = v }
func (f *fakeNative) FramebufferSize() (int, int)                { return f.fbW, f.fbH }
func (f *fakeNative) CursorPos() (float64, float64)              { return 1, 2 }
func (f *fakeNative) SetTitle(title string)                      { f.title = title }
func (f *fakeNative) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (f *fakeNative) Destroy()                                   { f.destroyed++ }

type fakeBackend struct {
	initErr    error
	createErr  error
	inits      int
	polls      int
	terminated int
	windows    map[Handle]*fakeNative
	sinks      map[Handle]EventSink
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{windows: map[Handle]*fakeNative{}, sinks: map[Handle]EventSink{}}
}

func (b *fakeBackend) Init() error {
	b.inits++
	return b.initErr
}

func (b *fakeBackend) CreateWindow(h Handle, cfg Config, sink EventSink) (NativeWindow, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	n := &fakeNative{title: cfg.Title, fbW: cfg.Width * 2, fbH: cfg.Height * 2}
	b.windows[h] = n
	b.sinks[h] = sink
	return n, nil
}

func (b *fakeBackend) PollEvents() { b.polls++ }
func (b *fakeBackend) Terminate()  { b.terminated++ }

func TestNewWindowDefaults(t *testing.T) {
	backend := newFakeBackend()
	sys := NewWindowSystem(WithBackend(backend))

	w, err := sys.NewWindow()
	require.NoError(t, err)
	assert.Equal(t, "No title", w.Title())
	assert.Equal(t, "undefined", w.Purpose())
	assert.Equal(t, 800, w.Config().Width)
	assert.Equal(t, 600, w.Config().Height)
	// Framebuffer size wins over the requested size.
	assert.Equal(t, 1600, w.Width())
	assert.Equal(t, 1200, w.Height())
	assert.False(t, w.Config().DebugOverlay)
	assert.Equal(t, 1, backend.inits)

	// Creator plus registry.
	assert.Equal(t, 2, w.RefCount())
	found, ok := sys.ByPurpose("undefined")
	require.True(t, ok)
	assert.Equal(t, w.Handle(), found.Handle())
	require.NoError(t, sys.Close())
	assert.Equal(t, 1, backend.terminated)
}

func TestNewWindowOptionsAndDuplicatePurpose(t *testing.T) {
	backend := newFakeBackend()
	sys := NewWindowSystem(WithBackend(backend))
	t.Cleanup(func() { _ = sys.Close() })

	w, err := sys.NewWindow(WithPurpose("main"), WithTitle("Rubik's Cube"), WithSize(1024, 768), WithDebugOverlay(true))
	require.NoError(t, err)
	assert.Equal(t, "Rubik's Cube", w.Title())
	assert.True(t, w.Config().DebugOverlay)

	_, err = sys.NewWindow(WithPurpose("main"))
	assert.ErrorIs(t, err, ErrDuplicatePurpose)

	w.SetTitle("renamed")
	assert.Equal(t, "renamed", backend.windows[w.Handle()].title)
	assert.Len(t, sys.Windows(), 1)
}

func TestBackendFailures(t *testing.T) {
	backend := newFakeBackend()
	backend.initErr = ErrWindowingInitFailed
	sys := NewWindowSystem(WithBackend(backend))
	_, err := sys.NewWindow()
	assert.ErrorIs(t, err, ErrWindowingInitFailed)

	backend = newFakeBackend()
	backend.createErr = errors.Join(ErrWindowCreateFailed, errors.New("no display"))
	sys = NewWindowSystem(WithBackend(backend))
	_, err = sys.NewWindow()
	assert.ErrorIs(t, err, ErrWindowCreateFailed)
	assert.Empty(t, sys.Windows())
}

func TestReferenceCounting(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	backend := newFakeBackend()
	sys := NewWindowSystem(WithBackend(backend), WithLogger(zap.New(core)))

	w, err := sys.NewWindow(WithPurpose("main"))
	require.NoError(t, err)
	native := backend.windows[w.Handle()]

	copyRef := w.Retain()
	assert.Equal(t, 3, w.RefCount())
	require.NoError(t, copyRef.Release())
	require.NoError(t, w.Release())
	assert.Zero(t, native.destroyed)
	assert.True(t, w.IsRunning())

	// The registry holds the last reference.
	require.NoError(t, sys.Unregister(w))
	assert.Equal(t, 1, native.destroyed)
	assert.False(t, w.IsRunning())
	_, ok := sys.Find(w.Handle())
	assert.False(t, ok)

	assert.ErrorIs(t, w.Release(), ErrAlreadyReleased)
	assert.Equal(t, 0, w.RefCount())
	assert.Equal(t, 1, native.destroyed)
	assert.Equal(t, 1, logs.FilterMessage("window released below zero references").Len())

	assert.ErrorIs(t, sys.Unregister(w), ErrNotRegistered)
}

func TestReleaseToZeroForgetsRegistration(t *testing.T) {
	backend := newFakeBackend()
	sys := NewWindowSystem(WithBackend(backend))
	w, err := sys.NewWindow(WithPurpose("main"))
	require.NoError(t, err)

	require.NoError(t, w.Release())
	require.NoError(t, w.Release())
	_, ok := sys.ByPurpose("main")
	assert.False(t, ok)

	// The purpose is free again.
	_, err = sys.NewWindow(WithPurpose("main"))
	assert.NoError(t, err)
}

func TestPurge(t *testing.T) {
	backend := newFakeBackend()
	sys := NewWindowSystem(WithBackend(backend))
	w, err := sys.NewWindow(WithPurpose("main"))
	require.NoError(t, err)
	w.Retain()
	w.Retain()

	require.NoError(t, sys.Purge(w.Handle()))
	assert.Equal(t, 1, backend.windows[w.Handle()].destroyed)
	assert.Zero(t, w.RefCount())
	assert.ErrorIs(t, sys.Purge(w.Handle()), ErrNotRegistered)
}

func TestEventDispatch(t *testing.T) {
	backend := newFakeBackend()
	sys := NewWindowSystem(WithBackend(backend))
	t.Cleanup(func() { _ = sys.Close() })

	w, err := sys.NewWindow(WithPurpose("main"))
	require.NoError(t, err)
	sink := backend.sinks[w.Handle()]

	type keyEvent struct {
		key   common.KeyCode
		state common.KeyState
	}
	var perWindow, global []keyEvent
	w.SetKeyCallback(func(k common.KeyCode, s common.KeyState) { perWindow = append(perWindow, keyEvent{k, s}) })
	sys.OnKey(func(src Window, k common.KeyCode, s common.KeyState) {
		assert.Equal(t, w.Handle(), src.Handle())
		global = append(global, keyEvent{k, s})
	})

	require.NoError(t, sink.HandleKey(w.Handle(), common.KeyR, common.KeyPressed))
	require.NoError(t, sink.HandleKey(w.Handle(), common.KeyR, common.KeyRepeat))
	require.NoError(t, sink.HandleKey(w.Handle(), common.KeyR, common.KeyReleased))
	want := []keyEvent{{common.KeyR, common.KeyPressed}, {common.KeyR, common.KeyReleased}}
	assert.Equal(t, want, perWindow)
	assert.Equal(t, want, global)

	var resized [2]int
	var redirected int
	w.SetResizeCallback(func(width, height int) { resized = [2]int{width, height} })
	sys.OnResize(func(Window, int, int) { redirected++ })
	require.NoError(t, sink.HandleResize(w.Handle(), 640, 480))
	assert.Equal(t, [2]int{640, 480}, resized)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 1, redirected)

	var scrolled float32
	w.SetScrollCallback(func(d float32) { scrolled = d })
	require.NoError(t, sink.HandleScroll(w.Handle(), -1.5))
	assert.Equal(t, float32(-1.5), scrolled)

	var clicked common.MouseButton = -1
	var moved [2]float64
	w.SetMouseButtonCallback(func(b common.MouseButton, _ common.KeyState, _, _ float64) { clicked = b })
	w.SetMouseMoveCallback(func(x, y float64) { moved = [2]float64{x, y} })
	require.NoError(t, sink.HandleMouseButton(w.Handle(), common.MouseButtonLeft, common.KeyPressed, 3, 4))
	require.NoError(t, sink.HandleCursor(w.Handle(), 5, 6))
	assert.Equal(t, common.MouseButtonLeft, clicked)
	assert.Equal(t, [2]float64{5, 6}, moved)

	assert.ErrorIs(t, sink.HandleKey(999, common.KeyR, common.KeyPressed), ErrEventOnUnregisteredWindow)
	assert.ErrorIs(t, sink.HandleResize(999, 1, 1), ErrEventOnUnregisteredWindow)
	assert.ErrorIs(t, sink.HandleScroll(999, 1), ErrEventOnUnregisteredWindow)
}

func TestPollAndClose(t *testing.T) {
	backend := newFakeBackend()
	sys := NewWindowSystem(WithBackend(backend))
	sys.PollEvents()
	assert.Zero(t, backend.polls, "backend is not polled before it is initialized")

	w, err := sys.NewWindow()
	require.NoError(t, err)
	sys.PollEvents()
	assert.Equal(t, 1, backend.polls)

	w.RequestClose()
	assert.False(t, w.IsRunning())

	require.NoError(t, sys.Close())
	assert.Equal(t, 1, backend.windows[w.Handle()].destroyed)
	_, err = sys.NewWindow()
	assert.ErrorIs(t, err, ErrSystemClosed)
	require.NoError(t, sys.Close())
	assert.Equal(t, 1, backend.terminated)
}
