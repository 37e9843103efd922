package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwBackend is the production Backend built on GLFW.
// GLFW must be driven from the main OS thread, so Init locks the calling goroutine to its thread.
type glfwBackend struct{}

// NewGLFWBackend returns the GLFW windowing backend.
func NewGLFWBackend() Backend {
	return &glfwBackend{}
}

// Init initializes GLFW.
//
// GLFW reference: https://www.glfw.org/docs/latest/intro_guide.html#intro_init
func (b *glfwBackend) Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrWindowingInitFailed, err)
	}
	return nil
}

// CreateWindow creates the GLFW window with input callbacks routed to sink.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func (b *glfwBackend) CreateWindow(h Handle, cfg Config, sink EventSink) (NativeWindow, error) {
	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWindowCreateFailed, err)
	}
	win.SetSizeLimits(
		glfwLimit(cfg.MinWidth), glfwLimit(cfg.MinHeight),
		glfwLimit(cfg.MaxWidth), glfwLimit(cfg.MaxHeight),
	)

	// Callback errors are already logged by the window system.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		_ = sink.HandleKey(h, common.KeyCode(key), keyState(action))
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		_ = sink.HandleScroll(h, float32(yoff))
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := w.GetCursorPos()
		_ = sink.HandleMouseButton(h, common.MouseButton(button), keyState(action), x, y)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		_ = sink.HandleCursor(h, x, y)
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		_ = sink.HandleResize(h, width, height)
	})

	return &glfwNativeWindow{window: win}, nil
}

// PollEvents polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (b *glfwBackend) PollEvents() {
	glfw.PollEvents()
}

func (b *glfwBackend) Terminate() {
	glfw.Terminate()
}

func glfwLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

func keyState(action glfw.Action) common.KeyState {
	switch action {
	case glfw.Press:
		return common.KeyPressed
	case glfw.Repeat:
		return common.KeyRepeat
	default:
		return common.KeyReleased
	}
}

// glfwNativeWindow adapts *glfw.Window to NativeWindow.
type glfwNativeWindow struct {
	window *glfw.Window
}

func (g *glfwNativeWindow) ShouldClose() bool { return g.window.ShouldClose() }

func (g *glfwNativeWindow) SetShouldClose(value bool) { g.window.SetShouldClose(value) }

func (g *glfwNativeWindow) FramebufferSize() (int, int) { return g.window.GetFramebufferSize() }

func (g *glfwNativeWindow) CursorPos() (float64, float64) { return g.window.GetCursorPos() }

func (g *glfwNativeWindow) SetTitle(title string) { g.window.SetTitle(title) }

// SurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func (g *glfwNativeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.window)
}

func (g *glfwNativeWindow) Destroy() { g.window.Destroy() }
