package tilekit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string `json:"title"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	ShowFPS       bool   `json:"showFPS"`
	ScreenshotDir string `json:"screenshotDir"`
}

// AssetConfig names the directories the Registry bulk-loads.
type AssetConfig struct {
	ImageDir     string  `json:"imageDir"`
	FontDir      string  `json:"fontDir"`
	SoundDir     string  `json:"soundDir"`
	FontBaseSize float64 `json:"fontBaseSize"`
}

// Config is the top-level application configuration.
type Config struct {
	Window   RunConfig   `json:"window"`
	Assets   AssetConfig `json:"assets"`
	LogLevel string      `json:"logLevel"`
	Debug    bool        `json:"debug"`
}

// DefaultConfig returns the configuration used for any field a config file
// leaves out.
func DefaultConfig() Config {
	return Config{
		Window: RunConfig{
			Title:         "tilekit",
			Width:         640,
			Height:        480,
			ScreenshotDir: "screenshots",
		},
		Assets: AssetConfig{
			ImageDir:     "assets/images",
			FontDir:      "assets/fonts",
			SoundDir:     "assets/sounds",
			FontBaseSize: DefaultFontBaseSize,
		},
		LogLevel: "info",
	}
}

// LoadConfig parses JSON over DefaultConfig. Unknown fields are rejected.
func LoadConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks window size, font size and log level.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Assets.FontBaseSize <= 0 {
		return fmt.Errorf("config: fontBaseSize must be positive, got %v", c.Assets.FontBaseSize)
	}
	if _, err := ResolveLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
