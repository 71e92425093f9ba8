package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/lys.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxFPS:     60,
		DefaultSim: "plasma",
		Pixel: PixelConfig{
			Width:    250,
			Height:   250,
			Title:    "lys",
			FontSize: 20,
		},
		SSH: SSHConfig{
			Address:     ":2222",
			HostKey:     ".ssh/lys_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
