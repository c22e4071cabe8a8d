// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/user/xcandb/pkg/adapters/dmenuprompt"
	"github.com/user/xcandb/pkg/adapters/xgbdisplay"
	"github.com/user/xcandb/pkg/canvas"
)

// ErrInvalidColor is returned by ParseColor.
var ErrInvalidColor = errors.New("config: invalid color")

// Config represents the full configuration for xcandb.
type Config struct {
	// Window
	Display    string `yaml:"display"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Background string `yaml:"background"`

	// Canvas
	NoShm             bool `yaml:"no_shm"`
	MaxLocalBufferMiB int  `yaml:"max_local_buffer_mib"`
	BlurStrength      int  `yaml:"blur_strength"`
	BlurWorkers       int  `yaml:"blur_workers"`

	// Save prompt and notifications
	PromptCommand   []string `yaml:"prompt_command"`
	Notify          bool     `yaml:"notify"`
	NotifyTimeoutMs int      `yaml:"notify_timeout_ms"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Width:      800,
		Height:     600,
		Background: "#1e1e1e",

		MaxLocalBufferMiB: 16,
		BlurStrength:      canvas.DefaultBlurStrength,
		BlurWorkers:       0,

		PromptCommand:   append([]string(nil), dmenuprompt.DefaultCommand...),
		Notify:          true,
		NotifyTimeoutMs: 3000,

		LogLevel: "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/xcandb/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "xcandb", "config.yaml"), nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// LoadDefault loads the file at DefaultPath. A missing file yields the
// defaults.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Defaults(), nil
	}
	cfg, err := LoadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	if len(c.PromptCommand) == 0 {
		return errors.New("config: prompt_command is empty")
	}
	return nil
}

// ParseColor parses "#rrggbb" or "rrggbb" to a packed 0x00RRGGBB value.
func ParseColor(hex string) (uint32, error) {
	s := hex
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	var v uint32
	for i := 0; i < len(s); i++ {
		d, ok := hexValue(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
		}
		v = v<<4 | uint32(d)
	}
	return v, nil
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// ToCanvasOptions converts Config to canvas.Options.
func (c Config) ToCanvasOptions() canvas.Options {
	return canvas.NewOptionsBuilder().
		WithForceLocal(c.NoShm).
		WithMaxLocalBufferMiB(c.MaxLocalBufferMiB).
		WithBlurStrength(c.BlurStrength).
		WithBlurWorkers(c.BlurWorkers).
		Build()
}

// ToWindowConfig converts Config to xgbdisplay.Config.
// The background must already have passed Validate.
func (c Config) ToWindowConfig() xgbdisplay.Config {
	wc := xgbdisplay.DefaultConfig()
	wc.DisplayName = c.Display
	wc.Width = c.Width
	wc.Height = c.Height
	wc.Fullscreen = c.Fullscreen
	if bg, err := ParseColor(c.Background); err == nil {
		wc.Background = bg
	}
	return wc
}
