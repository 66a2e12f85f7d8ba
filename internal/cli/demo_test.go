package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pbar/internal/errors"
)

func TestDemo_Scenarios(t *testing.T) {
	for _, name := range DemoScenarioNames() {
		t.Run(name, func(t *testing.T) {
			useConfig(t, "")
			var display bytes.Buffer

			require.NoError(t, Demo(context.Background(), name, &display))
			assert.Contains(t, display.String(), "✓ demo: "+name)
		})
	}
}

func TestDemo_Metrics(t *testing.T) {
	useConfig(t, "")
	metricsFlag = true
	var display bytes.Buffer

	require.NoError(t, Demo(context.Background(), "manual", &display))
	assert.Contains(t, display.String(), `pbar_finishing_total{mode="indeterminate"} 1`)
}

func TestLookupDemoScenario(t *testing.T) {
	sc, err := LookupDemoScenario("stream")
	require.NoError(t, err)
	assert.Equal(t, "stream", sc.Name)

	_, err = LookupDemoScenario("strem")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "Did you mean: stream?")

	_, err = LookupDemoScenario("fut")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Did you mean: future?", "prefixes match too")

	_, err = LookupDemoScenario("xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available scenarios: future, manual, stream")
}

func TestDemoScenarioNames(t *testing.T) {
	assert.Equal(t, []string{"future", "manual", "stream"}, DemoScenarioNames())
}
