package window

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// Window is a reference counted handle to a native window owned by a WindowSystem.
// The creator holds the first reference. The native window is destroyed when the last
// reference is released.
type Window interface {
	// Handle returns the window's registry handle.
	//
	// Returns:
	//   - Handle: the handle
	Handle() Handle

	// Purpose returns the registry key of the window.
	//
	// Returns:
	//   - string: the purpose
	Purpose() string

	// Config returns the configuration the window was created with.
	//
	// Returns:
	//   - Config: the creation config
	Config() Config

	// Title returns the current title.
	//
	// Returns:
	//   - string: the title
	Title() string

	// SetTitle changes the title bar text.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// CursorPos returns the cursor position in window coordinates.
	//
	// Returns:
	//   - float64, float64: the cursor x and y
	CursorPos() (float64, float64)

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyCallback sets the callback for key press and release events.
	//
	// Parameters:
	//   - callback: function receiving the key and its new state
	SetKeyCallback(callback func(key common.KeyCode, state common.KeyState))

	// SetMouseButtonCallback sets the callback for mouse button events.
	//
	// Parameters:
	//   - callback: function receiving the button, its state and the cursor position
	SetMouseButtonCallback(callback func(button common.MouseButton, state common.KeyState, x, y float64))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetMouseMoveCallback(callback func(x, y float64))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if unavailable
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true while the window is alive and no close was requested.
	//
	// Returns:
	//   - bool: true if window is running
	IsRunning() bool

	// RequestClose flags the window to close. The native window stays alive until released.
	RequestClose()

	// Retain adds a reference to the window.
	//
	// Returns:
	//   - Window: the same window, for chaining
	Retain() Window

	// Release drops a reference and destroys the native window when none remain.
	// Releasing a destroyed window logs a warning and returns ErrAlreadyReleased.
	//
	// Returns:
	//   - error: ErrAlreadyReleased when the count would drop below zero
	Release() error

	// RefCount returns the number of live references.
	//
	// Returns:
	//   - int: the reference count
	RefCount() int
}

// systemWindow is the implementation of the Window interface.
type systemWindow struct {
	mu *sync.Mutex

	handle Handle
	config Config
	title  string
	width  int
	height int

	native NativeWindow
	refs   int

	// onDestroy runs once after the native window is destroyed.
	onDestroy func(h Handle)
	logger    *zap.Logger

	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKey         func(key common.KeyCode, state common.KeyState)
	onMouseButton func(button common.MouseButton, state common.KeyState, x, y float64)
	onMouseMove   func(x, y float64)
}

var _ Window = &systemWindow{}

func newSystemWindow(h Handle, cfg Config, native NativeWindow, logger *zap.Logger, onDestroy func(Handle)) *systemWindow {
	w := &systemWindow{
		mu:        &sync.Mutex{},
		handle:    h,
		config:    cfg,
		title:     cfg.Title,
		width:     cfg.Width,
		height:    cfg.Height,
		native:    native,
		refs:      1,
		onDestroy: onDestroy,
		logger:    logger,
	}
	// The framebuffer may differ from the requested size on high-DPI displays.
	if fw, fh := native.FramebufferSize(); fw > 0 && fh > 0 {
		w.width, w.height = fw, fh
	}
	return w
}

func (w *systemWindow) Handle() Handle { return w.handle }

func (w *systemWindow) Purpose() string { return w.config.Purpose }

func (w *systemWindow) Config() Config { return w.config }

func (w *systemWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *systemWindow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = title
	if w.native != nil {
		w.native.SetTitle(title)
	}
}

func (w *systemWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *systemWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *systemWindow) CursorPos() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.native == nil {
		return 0, 0
	}
	return w.native.CursorPos()
}

func (w *systemWindow) SetResizeCallback(callback func(width, height int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onResize = callback
}

func (w *systemWindow) SetScrollCallback(callback func(delta float32)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onScroll = callback
}

func (w *systemWindow) SetKeyCallback(callback func(key common.KeyCode, state common.KeyState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onKey = callback
}

func (w *systemWindow) SetMouseButtonCallback(callback func(button common.MouseButton, state common.KeyState, x, y float64)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onMouseButton = callback
}

func (w *systemWindow) SetMouseMoveCallback(callback func(x, y float64)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onMouseMove = callback
}

func (w *systemWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.native == nil {
		return nil
	}
	return w.native.SurfaceDescriptor()
}

func (w *systemWindow) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.native != nil && !w.native.ShouldClose()
}

func (w *systemWindow) RequestClose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.native != nil {
		w.native.SetShouldClose(true)
	}
}

func (w *systemWindow) Retain() Window {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.native != nil {
		w.refs++
	}
	return w
}

func (w *systemWindow) Release() error {
	w.mu.Lock()
	if w.refs <= 0 {
		w.mu.Unlock()
		w.logger.Warn("window released below zero references", zap.Uint64("handle", uint64(w.handle)))
		return ErrAlreadyReleased
	}
	w.refs--
	if w.refs > 0 {
		w.mu.Unlock()
		return nil
	}
	native := w.native
	w.native = nil
	onDestroy := w.onDestroy
	w.mu.Unlock()

	native.Destroy()
	w.logger.Debug("window destroyed", zap.Uint64("handle", uint64(w.handle)), zap.String("purpose", w.config.Purpose))
	if onDestroy != nil {
		onDestroy(w.handle)
	}
	return nil
}

func (w *systemWindow) RefCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.refs
}

// resized stores the new framebuffer size and returns the callback to notify.
func (w *systemWindow) resized(width, height int) func(int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = width, height
	return w.onResize
}

func (w *systemWindow) keyCallback() func(common.KeyCode, common.KeyState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onKey
}

func (w *systemWindow) scrollCallback() func(float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onScroll
}

func (w *systemWindow) mouseButtonCallback() func(common.MouseButton, common.KeyState, float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onMouseButton
}

func (w *systemWindow) mouseMoveCallback() func(float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onMouseMove
}
