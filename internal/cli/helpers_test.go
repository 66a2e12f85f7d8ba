package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const fastConfig = `version: 1
indicator:
  speed: 100ms
  frame_interval: 5ms
display:
  width: 20
  fade: 10ms
  transition: 10ms
  color: never
`

// useConfig points --config at a fresh file holding fastConfig plus extra,
// and restores the global flags afterwards.
func useConfig(t *testing.T, extra string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".pbar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fastConfig+extra), 0644))

	saved := struct {
		cfgFile, speed              string
		plain, noColor, verbose, mx bool
		step                        time.Duration
	}{cfgFile, speedFlag, plainFlag, noColorFlag, verboseFlag, metricsFlag, demoStep}

	t.Cleanup(func() {
		cfgFile, speedFlag = saved.cfgFile, saved.speed
		plainFlag, noColorFlag, verboseFlag, metricsFlag = saved.plain, saved.noColor, saved.verbose, saved.mx
		demoStep = saved.step
	})

	cfgFile = path
	speedFlag = ""
	demoStep = 5 * time.Millisecond
	return path
}
