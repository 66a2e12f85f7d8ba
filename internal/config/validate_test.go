package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pbar/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty speed uses default", func(c *Config) { c.Indicator.Speed = "" }, ""},
		{"numeric speed", func(c *Config) { c.Indicator.Speed = "750" }, ""},
		{"bad speed", func(c *Config) { c.Indicator.Speed = "fast" }, "indicator.speed 'fast' isn't valid"},
		{"zero speed", func(c *Config) { c.Indicator.Speed = "0s" }, "indicator.speed"},
		{"negative frame interval", func(c *Config) { c.Indicator.FrameInterval = -time.Millisecond }, "frame_interval can't be negative"},
		{"slow frame interval", func(c *Config) { c.Indicator.FrameInterval = 2 * time.Second }, "frame_interval"},
		{"future version", func(c *Config) { c.Version = CurrentConfigVersion + 1 }, "from the future"},
		{"bad color", func(c *Config) { c.Display.Color = "rainbow" }, "display.color 'rainbow' isn't valid"},
		{"empty color", func(c *Config) { c.Display.Color = "" }, ""},
		{"narrow", func(c *Config) { c.Display.Width = 5 }, "display.width 5 is out of range"},
		{"wide", func(c *Config) { c.Display.Width = 500 }, "display.width 500 is out of range"},
		{"unset width", func(c *Config) { c.Display.Width = 0 }, ""},
		{"negative fade", func(c *Config) { c.Display.Fade = -time.Second }, "display.fade can't be negative"},
		{"long transition", func(c *Config) { c.Display.Transition = time.Minute }, "display.transition"},
		{"no fade", func(c *Config) { c.Display.Fade = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}
