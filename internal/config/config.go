// Package config provides YAML-based configuration for the render loop,
// the pixel window, the terminal renderer and the SSH server.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the top-level configuration.
type Config struct {
	MaxFPS     int            `yaml:"max_fps"`
	DefaultSim string         `yaml:"default_sim"`
	Pixel      PixelConfig    `yaml:"pixel"`
	Terminal   TerminalConfig `yaml:"terminal"`
	SSH        SSHConfig      `yaml:"ssh"`
	Log        LogConfig      `yaml:"log"`
}

// PixelConfig configures the graphical window.
type PixelConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	Font     string `yaml:"font"`      // TTF path; empty uses the built-in font
	FontSize int    `yaml:"font_size"` // Pixel height of overlay text
}

// TerminalConfig configures the terminal renderer.
type TerminalConfig struct {
	MaxFPS int `yaml:"max_fps"` // 0 inherits the top-level max_fps
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Log destination while a terminal session owns the screen
}

// TerminalFPS returns the frame rate cap for terminal sessions.
func (c Config) TerminalFPS() int {
	if c.Terminal.MaxFPS > 0 {
		return c.Terminal.MaxFPS
	}
	return c.MaxFPS
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.Log.Level)
}

// Validate checks that every setting is in range.
func (c Config) Validate() error {
	var errs []error
	if c.MaxFPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_fps must be positive, got %d", ErrInvalid, c.MaxFPS))
	}
	if c.Terminal.MaxFPS < 0 {
		errs = append(errs, fmt.Errorf("%w: terminal.max_fps must not be negative, got %d", ErrInvalid, c.Terminal.MaxFPS))
	}
	if c.Pixel.Width <= 0 || c.Pixel.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: pixel size must be positive, got %dx%d", ErrInvalid, c.Pixel.Width, c.Pixel.Height))
	}
	if c.Pixel.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: pixel.font_size must be positive, got %d", ErrInvalid, c.Pixel.FontSize))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: ssh.idle_timeout must not be negative", ErrInvalid))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %v", ErrInvalid, err))
	}
	return errors.Join(errs...)
}
