package window

// Config holds the settings a window is created with.
type Config struct {
	// Title is the window title displayed in the title bar.
	Title string

	// Purpose names the role of the window in the registry, e.g. "main".
	Purpose string

	// Width and Height are the requested client area size in screen coordinates.
	Width  int
	Height int

	// MinWidth, MinHeight, MaxWidth and MaxHeight bound interactive resizing. Zero leaves a side unbounded.
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int

	Resizable bool

	// DebugOverlay requests the debug overlay for this window.
	DebugOverlay bool
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Title:     "No title",
		Purpose:   "undefined",
		Width:     800,
		Height:    600,
		MinWidth:  200,
		MinHeight: 150,
		Resizable: true,
	}
}

// WindowBuilderOption is a functional option for configuring a window before it is created.
// Use the With* functions to create options.
type WindowBuilderOption func(c *Config)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(c *Config) {
		c.Title = title
	}
}

// WithPurpose sets the registry key of the window.
//
// Parameters:
//   - purpose: the window's role, e.g. "main"
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithPurpose(purpose string) WindowBuilderOption {
	return func(c *Config) {
		c.Purpose = purpose
	}
}

// WithSize sets the initial window size.
//
// Parameters:
//   - width: initial width
//   - height: initial height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithMinSize sets the minimum size allowed during resize.
func WithMinSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.MinWidth = width
		c.MinHeight = height
	}
}

// WithMaxSize sets the maximum size allowed during resize.
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.MaxWidth = width
		c.MaxHeight = height
	}
}

// WithResizable toggles interactive resizing.
func WithResizable(resizable bool) WindowBuilderOption {
	return func(c *Config) {
		c.Resizable = resizable
	}
}

// WithDebugOverlay requests the debug overlay for the window.
func WithDebugOverlay(enabled bool) WindowBuilderOption {
	return func(c *Config) {
		c.DebugOverlay = enabled
	}
}
