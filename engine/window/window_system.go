package window

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"go.uber.org/zap"
)

// KeyListener receives every press or release dispatched by the window system.
type KeyListener func(w Window, key common.KeyCode, state common.KeyState)

// ResizeListener receives every framebuffer resize dispatched by the window system.
type ResizeListener func(w Window, width, height int)

// WindowSystem owns the windowing backend and the registry of live windows.
// Windows are registered by purpose and by handle; events arriving for a handle that is not
// registered are rejected with ErrEventOnUnregisteredWindow.
type WindowSystem interface {
	EventSink

	// NewWindow creates a native window and registers it under its purpose.
	// The caller owns the returned reference and must Release it.
	//
	// Parameters:
	//   - options: functional options to configure the window
	//
	// Returns:
	//   - Window: the created window
	//   - error: a backend error or ErrDuplicatePurpose
	NewWindow(options ...WindowBuilderOption) (Window, error)

	// Register adds a window to the registry and retains it.
	//
	// Parameters:
	//   - w: the window to register
	//
	// Returns:
	//   - error: ErrDuplicatePurpose if another window holds the purpose
	Register(w Window) error

	// Unregister removes a window from the registry and releases the registry's reference.
	//
	// Parameters:
	//   - w: the window to unregister
	//
	// Returns:
	//   - error: ErrNotRegistered if the window is not in the registry
	Unregister(w Window) error

	// Purge unregisters a window and releases every outstanding reference, destroying it.
	//
	// Parameters:
	//   - h: the handle of the window to purge
	//
	// Returns:
	//   - error: ErrNotRegistered if the handle is unknown
	Purge(h Handle) error

	// Find looks up a registered window by handle.
	//
	// Parameters:
	//   - h: the handle
	//
	// Returns:
	//   - Window: the window
	//   - bool: false if no window is registered under h
	Find(h Handle) (Window, bool)

	// ByPurpose looks up a registered window by purpose.
	//
	// Parameters:
	//   - purpose: the purpose
	//
	// Returns:
	//   - Window: the window
	//   - bool: false if no window is registered under purpose
	ByPurpose(purpose string) (Window, bool)

	// Windows returns the registered windows.
	//
	// Returns:
	//   - []Window: a snapshot of the registry
	Windows() []Window

	// PollEvents processes pending backend events without blocking.
	PollEvents()

	// OnKey adds a listener for dispatched key events.
	//
	// Parameters:
	//   - fn: the listener
	OnKey(fn KeyListener)

	// OnResize adds a listener for dispatched resize events.
	//
	// Parameters:
	//   - fn: the listener
	OnResize(fn ResizeListener)

	// Close purges every window and terminates the backend.
	//
	// Returns:
	//   - error: the first purge error, if any
	Close() error
}

// windowSystem is the implementation of the WindowSystem interface.
type windowSystem struct {
	mu *sync.Mutex

	backend     Backend
	initialized bool
	closed      bool
	nextHandle  Handle
	byHandle    map[Handle]*systemWindow
	byPurpose   map[string]*systemWindow

	keyListeners    []KeyListener
	resizeListeners []ResizeListener
	logger          *zap.Logger
}

var _ WindowSystem = &windowSystem{}

// NewWindowSystem creates a window system. The backend is initialized lazily on the first window.
//
// Parameters:
//   - options: functional options to configure the system
//
// Returns:
//   - WindowSystem: the created system
func NewWindowSystem(options ...WindowSystemBuilderOption) WindowSystem {
	s := &windowSystem{
		mu:        &sync.Mutex{},
		backend:   NewGLFWBackend(),
		byHandle:  make(map[Handle]*systemWindow),
		byPurpose: make(map[string]*systemWindow),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *windowSystem) NewWindow(options ...WindowBuilderOption) (Window, error) {
	cfg := DefaultConfig()
	for _, opt := range options {
		opt(&cfg)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSystemClosed
	}
	if _, taken := s.byPurpose[cfg.Purpose]; taken {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrDuplicatePurpose, cfg.Purpose)
	}
	if !s.initialized {
		if err := s.backend.Init(); err != nil {
			s.mu.Unlock()
			return nil, err
		}
		s.initialized = true
	}
	s.nextHandle++
	h := s.nextHandle
	s.mu.Unlock()

	native, err := s.backend.CreateWindow(h, cfg, s)
	if err != nil {
		return nil, err
	}
	w := newSystemWindow(h, cfg, native, s.logger, s.forget)
	if err := s.Register(w); err != nil {
		_ = w.Release()
		return nil, err
	}
	s.logger.Info("window created",
		zap.Uint64("handle", uint64(h)),
		zap.String("purpose", cfg.Purpose),
		zap.Int("width", w.Width()),
		zap.Int("height", w.Height()),
	)
	return w, nil
}

func (s *windowSystem) Register(w Window) error {
	sw, ok := w.(*systemWindow)
	if !ok {
		return fmt.Errorf("%w: foreign window implementation", ErrNotRegistered)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byPurpose[sw.config.Purpose]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicatePurpose, sw.config.Purpose)
	}
	s.byPurpose[sw.config.Purpose] = sw
	s.byHandle[sw.handle] = sw
	sw.Retain()
	return nil
}

func (s *windowSystem) Unregister(w Window) error {
	s.mu.Lock()
	sw, ok := s.byHandle[w.Handle()]
	if !ok {
		s.mu.Unlock()
		return ErrNotRegistered
	}
	s.remove(sw)
	s.mu.Unlock()
	return sw.Release()
}

// remove drops sw from both indexes. Callers hold s.mu.
func (s *windowSystem) remove(sw *systemWindow) {
	delete(s.byHandle, sw.handle)
	if s.byPurpose[sw.config.Purpose] == sw {
		delete(s.byPurpose, sw.config.Purpose)
	}
}

// forget runs after a window is destroyed so a window released to zero without Unregister leaves no stale entry.
func (s *windowSystem) forget(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sw, ok := s.byHandle[h]; ok {
		s.remove(sw)
	}
}

func (s *windowSystem) Purge(h Handle) error {
	s.mu.Lock()
	sw, ok := s.byHandle[h]
	if !ok {
		s.mu.Unlock()
		return ErrNotRegistered
	}
	s.remove(sw)
	s.mu.Unlock()

	for sw.RefCount() > 0 {
		if err := sw.Release(); err != nil {
			return err
		}
	}
	return nil
}

func (s *windowSystem) Find(h Handle) (Window, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sw, ok := s.byHandle[h]
	if !ok {
		return nil, false
	}
	return sw, true
}

func (s *windowSystem) ByPurpose(purpose string) (Window, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sw, ok := s.byPurpose[purpose]
	if !ok {
		return nil, false
	}
	return sw, true
}

func (s *windowSystem) Windows() []Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Window, 0, len(s.byHandle))
	for _, sw := range s.byHandle {
		out = append(out, sw)
	}
	return out
}

func (s *windowSystem) PollEvents() {
	s.mu.Lock()
	ready := s.initialized && !s.closed
	s.mu.Unlock()
	if ready {
		s.backend.PollEvents()
	}
}

func (s *windowSystem) OnKey(fn KeyListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyListeners = append(s.keyListeners, fn)
}

func (s *windowSystem) OnResize(fn ResizeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resizeListeners = append(s.resizeListeners, fn)
}

func (s *windowSystem) lookup(h Handle) (*systemWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sw, ok := s.byHandle[h]
	if !ok {
		s.logger.Warn("event on unregistered window", zap.Uint64("handle", uint64(h)))
		return nil, fmt.Errorf("%w: handle %d", ErrEventOnUnregisteredWindow, h)
	}
	return sw, nil
}

func (s *windowSystem) HandleKey(h Handle, key common.KeyCode, state common.KeyState) error {
	sw, err := s.lookup(h)
	if err != nil {
		return err
	}
	if state != common.KeyPressed && state != common.KeyReleased {
		return nil
	}
	if cb := sw.keyCallback(); cb != nil {
		cb(key, state)
	}
	s.mu.Lock()
	listeners := append([]KeyListener(nil), s.keyListeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(sw, key, state)
	}
	return nil
}

func (s *windowSystem) HandleResize(h Handle, width, height int) error {
	sw, err := s.lookup(h)
	if err != nil {
		return err
	}
	if cb := sw.resized(width, height); cb != nil {
		cb(width, height)
	}
	s.mu.Lock()
	listeners := append([]ResizeListener(nil), s.resizeListeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(sw, width, height)
	}
	return nil
}

func (s *windowSystem) HandleScroll(h Handle, delta float32) error {
	sw, err := s.lookup(h)
	if err != nil {
		return err
	}
	if cb := sw.scrollCallback(); cb != nil {
		cb(delta)
	}
	return nil
}

func (s *windowSystem) HandleMouseButton(h Handle, button common.MouseButton, state common.KeyState, x, y float64) error {
	sw, err := s.lookup(h)
	if err != nil {
		return err
	}
	if cb := sw.mouseButtonCallback(); cb != nil {
		cb(button, state, x, y)
	}
	return nil
}

func (s *windowSystem) HandleCursor(h Handle, x, y float64) error {
	sw, err := s.lookup(h)
	if err != nil {
		return err
	}
	if cb := sw.mouseMoveCallback(); cb != nil {
		cb(x, y)
	}
	return nil
}

func (s *windowSystem) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	handles := make([]Handle, 0, len(s.byHandle))
	for h := range s.byHandle {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	var firstErr error
	for _, h := range handles {
		if err := s.Purge(h); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.mu.Lock()
	s.closed = true
	initialized := s.initialized
	s.mu.Unlock()
	if initialized {
		s.backend.Terminate()
	}
	return firstErr
}
