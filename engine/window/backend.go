package window

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Sentinel errors for the window package.
var (
	ErrWindowingInitFailed       = errors.New("window: windowing library failed to initialize")
	ErrWindowCreateFailed        = errors.New("window: failed to create system window")
	ErrEventOnUnregisteredWindow = errors.New("window: event on unregistered window")
	ErrDuplicatePurpose          = errors.New("window: a window with this purpose is already registered")
	ErrNotRegistered             = errors.New("window: window is not registered")
	ErrAlreadyReleased           = errors.New("window: handle released more times than retained")
	ErrSystemClosed              = errors.New("window: window system is closed")
)

// Handle identifies a native window for the lifetime of the window system.
type Handle uint64

// NativeWindow is a platform window created by a Backend.
type NativeWindow interface {
	ShouldClose() bool
	SetShouldClose(value bool)
	FramebufferSize() (width, height int)
	CursorPos() (x, y float64)
	SetTitle(title string)

	// SurfaceDescriptor returns the descriptor used to create a WebGPU surface, or nil when the
	// platform cannot present (headless backends).
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	Destroy()
}

// EventSink receives input and window events from a Backend. WindowSystem implements it.
type EventSink interface {
	HandleKey(h Handle, key common.KeyCode, state common.KeyState) error
	HandleResize(h Handle, width, height int) error
	HandleScroll(h Handle, delta float32) error
	HandleMouseButton(h Handle, button common.MouseButton, state common.KeyState, x, y float64) error
	HandleCursor(h Handle, x, y float64) error
}

// Backend is the platform layer under the window system.
type Backend interface {
	// Init initializes the windowing library. Called once before the first window is created.
	//
	// Returns:
	//   - error: ErrWindowingInitFailed wrapping the platform error
	Init() error

	// CreateWindow opens a native window and routes its events to sink tagged with h.
	//
	// Parameters:
	//   - h: the handle assigned by the window system
	//   - cfg: the window configuration
	//   - sink: the receiver of the window's events
	//
	// Returns:
	//   - NativeWindow: the created window
	//   - error: ErrWindowCreateFailed wrapping the platform error
	CreateWindow(h Handle, cfg Config, sink EventSink) (NativeWindow, error)

	// PollEvents processes pending events without blocking.
	PollEvents()

	// Terminate releases the windowing library.
	Terminate()
}
