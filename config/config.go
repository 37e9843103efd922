package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-rubiks/engine/input"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvAnimationSpeed = "RUBIKS_ANIMATION_SPEED"
	EnvLogLevel       = "RUBIKS_LOG_LEVEL"
)

const appDir = "oxy-rubiks"

// ErrInvalidSettings is returned when loaded settings fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the persisted game configuration.
type Settings struct {
	Graphics GraphicalSettings `yaml:"graphics"`

	// AnimationSpeed multiplies the turn animation rate. 0 applies turns instantly.
	AnimationSpeed float32 `yaml:"animation_speed"`
	// Easing is one of smoothstep, linear or out-cubic.
	Easing string `yaml:"easing"`
	// TickRate is the game update rate in Hz.
	TickRate float64 `yaml:"tick_rate"`
	// ScrambleLength is the number of random moves applied by the scramble action.
	ScrambleLength int `yaml:"scramble_length"`

	// Keymap replaces the default bindings when non-empty.
	Keymap []input.Binding `yaml:"keymap,omitempty"`

	SaveDir  string `yaml:"save_dir"`
	LogLevel string `yaml:"log_level"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Graphics:       DefaultGraphicalSettings(),
		AnimationSpeed: 1.0,
		Easing:         "smoothstep",
		TickRate:       60,
		ScrambleLength: 25,
		SaveDir:        DefaultSaveDir(),
		LogLevel:       "info",
	}
}

// DefaultPath returns the settings file under the user config directory, or a file in the
// working directory when the platform has none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "rubiks.yaml"
	}
	return filepath.Join(dir, appDir, "settings.yaml")
}

// DefaultSaveDir returns the directory holding the save database.
func DefaultSaveDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "saves"
	}
	return filepath.Join(dir, appDir, "saves")
}

// Load reads settings from a YAML file, falling back to defaults when the file does not exist.
// Fields missing from the file keep their defaults. Environment overrides are applied last.
//
// Parameters:
//   - path: the settings file
//
// Returns:
//   - *Settings: the loaded settings
//   - error: a read, parse or ErrInvalidSettings error
func Load(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read settings: %w", err)
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse settings: %w", err)
		}
	}

	if err := s.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the settings as YAML, creating the directory if needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

func (s *Settings) applyEnvOverrides() error {
	if v := os.Getenv(EnvAnimationSpeed); v != "" {
		speed, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidSettings, EnvAnimationSpeed, v, err)
		}
		s.AnimationSpeed = float32(speed)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = strings.TrimSpace(v)
	}
	return nil
}

// Validate checks value ranges and that the keymap and log level parse.
func (s *Settings) Validate() error {
	var errs []error
	if r := s.Graphics.Resolution; r.Width <= 0 || r.Height <= 0 {
		errs = append(errs, fmt.Errorf("resolution %dx%d must be positive", r.Width, r.Height))
	}
	if !slices.Contains([]int{0, 1, 4, 8, 16}, s.Graphics.MSAA) {
		errs = append(errs, fmt.Errorf("msaa %d must be one of 0, 1, 4, 8, 16", s.Graphics.MSAA))
	}
	if s.AnimationSpeed < 0 {
		errs = append(errs, fmt.Errorf("animation_speed %v must not be negative", s.AnimationSpeed))
	}
	if s.TickRate < 0 {
		errs = append(errs, fmt.Errorf("tick_rate %v must not be negative", s.TickRate))
	}
	if s.ScrambleLength < 0 {
		errs = append(errs, fmt.Errorf("scramble_length %d must not be negative", s.ScrambleLength))
	}
	if _, err := s.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(s.Keymap) > 0 {
		if err := input.NewKeymap().Load(s.Keymap); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (s *Settings) Level() (zapcore.Level, error) {
	if s.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(s.LogLevel)
}

// BuildKeymap returns the configured keymap, or the default one when none is configured.
func (s *Settings) BuildKeymap() (input.Keymap, error) {
	if len(s.Keymap) == 0 {
		return input.DefaultKeymap(), nil
	}
	km := input.NewKeymap()
	if err := km.Load(s.Keymap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return km, nil
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Keymap = slices.Clone(s.Keymap)
	return &c
}
