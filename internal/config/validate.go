package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/pbar/internal/errors"
	"github.com/rileyhilliard/pbar/internal/indicator"
)

// Limits accepted by Validate.
const (
	MinWidth         = 10
	MaxWidth         = 200
	MaxFrameInterval = time.Second
	MaxTransition    = 10 * time.Second
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but pbar only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest pbar release.")
	}

	if err := validateIndicator(cfg.Indicator); err != nil {
		return errors.New(errors.ErrConfig, err.Error(), "Check the 'indicator' section in your .pbar.yaml.")
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return errors.New(errors.ErrConfig, err.Error(), "Check the 'display' section in your .pbar.yaml.")
	}

	return nil
}

// validateIndicator checks engine tuning.
func validateIndicator(ind IndicatorConfig) error {
	if ind.Speed != "" {
		if _, ok := indicator.ParseSpeed(ind.Speed); !ok {
			return fmt.Errorf("indicator.speed '%s' isn't valid - try something like '500ms', '1s' or '750'", ind.Speed)
		}
	}
	if ind.FrameInterval < 0 {
		return fmt.Errorf("indicator.frame_interval can't be negative - that doesn't make sense")
	}
	if ind.FrameInterval > MaxFrameInterval {
		return fmt.Errorf("indicator.frame_interval (%v) is longer than %v - the bar would barely move", ind.FrameInterval, MaxFrameInterval)
	}
	return nil
}

// validateDisplay checks display configuration.
func validateDisplay(d DisplayConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[d.Color] {
		return fmt.Errorf("display.color '%s' isn't valid - use 'auto', 'always', or 'never'", d.Color)
	}

	if d.Width != 0 && (d.Width < MinWidth || d.Width > MaxWidth) {
		return fmt.Errorf("display.width %d is out of range - pick something between %d and %d", d.Width, MinWidth, MaxWidth)
	}

	for name, v := range map[string]time.Duration{"display.fade": d.Fade, "display.transition": d.Transition} {
		if v < 0 {
			return fmt.Errorf("%s can't be negative - that doesn't make sense", name)
		}
		if v > MaxTransition {
			return fmt.Errorf("%s (%v) is longer than %v - nobody wants to wait that long", name, v, MaxTransition)
		}
	}

	return nil
}
