package config

// Resolution is a window size in pixels.
type Resolution struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GraphicalSettings holds the settings applied to the window and renderer. They are kept apart
// from the graphics subsystem so any part of the game can change them; the game applies them on
// its next update and acknowledges the change.
//
// GraphicalSettings is a plain value and is not safe for concurrent use. Share it through a Store.
type GraphicalSettings struct {
	Resolution Resolution `yaml:"resolution"`
	VSync      bool       `yaml:"vsync"`
	MSAA       int        `yaml:"msaa"`
	// ShaderDir holds cube.vert.wgsl and cube.frag.wgsl overrides. Empty uses the built-in shader.
	ShaderDir string `yaml:"shader_dir,omitempty"`

	changed bool
}

// DefaultGraphicalSettings returns an 800x600 vsynced window with 4x MSAA.
func DefaultGraphicalSettings() GraphicalSettings {
	return GraphicalSettings{
		Resolution: Resolution{Width: 800, Height: 600},
		VSync:      true,
		MSAA:       4,
	}
}

// SetResolution changes the resolution and marks the settings changed when it differs.
func (g *GraphicalSettings) SetResolution(width, height int) {
	r := Resolution{Width: width, Height: height}
	if r == g.Resolution {
		return
	}
	g.Resolution = r
	g.changed = true
}

// SetVSync changes the present mode and marks the settings changed when it differs.
func (g *GraphicalSettings) SetVSync(enabled bool) {
	if enabled == g.VSync {
		return
	}
	g.VSync = enabled
	g.changed = true
}

// MarkChanged flags the settings as changed.
func (g *GraphicalSettings) MarkChanged() {
	g.changed = true
}

// HasChanged reports whether the settings changed since the last AcknowledgeChange.
func (g GraphicalSettings) HasChanged() bool {
	return g.changed
}

// AcknowledgeChange clears the changed flag once the settings have been applied.
func (g *GraphicalSettings) AcknowledgeChange() {
	g.changed = false
}

// Equal compares the configured values, ignoring the changed flag.
func (g GraphicalSettings) Equal(o GraphicalSettings) bool {
	return g.Resolution == o.Resolution && g.VSync == o.VSync && g.MSAA == o.MSAA && g.ShaderDir == o.ShaderDir
}
