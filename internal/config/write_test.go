package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.Indicator.Speed = "1s"
	cfg.Display.Fade = 300 * time.Millisecond

	require.NoError(t, Write(path, cfg, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# pbar configuration"))
	assert.Contains(t, content, "frame_interval: 16ms")
	assert.Contains(t, content, "fade: 300ms")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0644))

	err := Write(path, DefaultConfig(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Write(path, DefaultConfig(), true))
	data, _ := os.ReadFile(path)
	assert.NotContains(t, string(data), "# mine")
}

func TestSetValue(t *testing.T) {
	tests := []struct {
		name         string
		initialYAML  string
		key          string
		value        string
		wantContains []string
		wantErr      string
	}{
		{
			name: "replace existing value keeps comments",
			initialYAML: `version: 1
# tuning for slow CI boxes
indicator:
  speed: 500ms # default
`,
			key:          "indicator.speed",
			value:        "2s",
			wantContains: []string{"# tuning for slow CI boxes", "speed: 2s"},
		},
		{
			name:         "add missing key to section",
			initialYAML:  "version: 1\ndisplay:\n  width: 40\n",
			key:          "display.color",
			value:        "never",
			wantContains: []string{"width: 40", "color: never"},
		},
		{
			name:         "create missing section",
			initialYAML:  "version: 1\n",
			key:          "metrics.enabled",
			value:        "true",
			wantContains: []string{"metrics:", "enabled: true"},
		},
		{
			name:         "empty file",
			initialYAML:  "",
			key:          "display.width",
			value:        "60",
			wantContains: []string{"display:", "width: 60"},
		},
		{
			name:        "invalid value rejected",
			initialYAML: "version: 1\n",
			key:         "display.color",
			value:       "rainbow",
			wantErr:     "display.color 'rainbow' isn't valid",
		},
		{
			name:        "wrong type rejected",
			initialYAML: "version: 1\n",
			key:         "display.width",
			value:       "wide",
			wantErr:     "Invalid config format",
		},
		{
			name:        "scalar is not a section",
			initialYAML: "version: 1\n",
			key:         "version.major",
			value:       "2",
			wantErr:     "'version' is not a section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.initialYAML), 0644))

			err := SetValue(path, tt.key, tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				data, _ := os.ReadFile(path)
				assert.Equal(t, tt.initialYAML, string(data), "file is untouched on error")
				return
			}
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, string(data), want)
			}

			_, err = Load(path)
			assert.NoError(t, err)
		})
	}
}

func TestSetValue_MissingFile(t *testing.T) {
	err := SetValue(filepath.Join(t.TempDir(), "nope.yaml"), "display.width", "50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
