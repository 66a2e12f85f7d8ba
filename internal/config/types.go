package config

import (
	"time"

	"github.com/rileyhilliard/pbar/internal/indicator"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .pbar.yaml configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Indicator IndicatorConfig `yaml:"indicator" mapstructure:"indicator"`
	Display   DisplayConfig   `yaml:"display" mapstructure:"display"`
	Metrics   MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
}

// IndicatorConfig tunes the indicator engine.
type IndicatorConfig struct {
	// Speed is how long the indeterminate curve takes to reach 50%.
	// Accepts "500ms", "1s" or a bare number of milliseconds.
	Speed string `yaml:"speed" mapstructure:"speed"`

	// FrameInterval is the animation frame period.
	FrameInterval time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"`
}

// SpeedDuration returns the parsed speed, or indicator.DefaultSpeed when it
// is unset or invalid.
func (c IndicatorConfig) SpeedDuration() time.Duration {
	if d, ok := indicator.ParseSpeed(c.Speed); ok {
		return d
	}
	return indicator.DefaultSpeed
}

// DisplayConfig controls how the indicator is drawn.
type DisplayConfig struct {
	// Width of the bar in cells.
	Width int `yaml:"width" mapstructure:"width"`

	// Gradient fills the bar with a color gradient instead of a solid color.
	Gradient bool `yaml:"gradient" mapstructure:"gradient"`

	// Fade is how long the indicator takes to fade out after completion.
	Fade time.Duration `yaml:"fade" mapstructure:"fade"`

	// Transition is the assumed length of every transition when the
	// renderer draws final states immediately (plain output).
	Transition time.Duration `yaml:"transition" mapstructure:"transition"`

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// MetricsConfig controls the metrics dump.
type MetricsConfig struct {
	// Enabled prints Prometheus metrics to stderr on exit.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Indicator: IndicatorConfig{
			Speed:         indicator.DefaultSpeed.String(),
			FrameInterval: indicator.DefaultFrameInterval,
		},
		Display: DisplayConfig{
			Width:      40,
			Gradient:   true,
			Fade:       indicator.DefaultTransitionDuration,
			Transition: indicator.DefaultTransitionDuration,
			Color:      "auto",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}
