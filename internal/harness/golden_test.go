package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioDir holds the shared scenarios at the project root.
const scenarioDir = "../../testdata/scenarios"

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join(scenarioDir, "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		sc, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(sc.Name, func(t *testing.T) {
			result, err := Run(t.Context(), sc)
			require.NoError(t, err)
			assert.True(t, result.Pass, "assertion failures:\n%v", result.Errors)
		})
	}
}

func TestGoldenOutputs(t *testing.T) {
	for _, name := range []string{"basic", "dynamic", "dynamic_js"} {
		t.Run(name, func(t *testing.T) {
			sc, err := LoadScenario(filepath.Join(scenarioDir, name+".yaml"))
			require.NoError(t, err)

			result, err := RunWithGolden(t, sc)
			require.NoError(t, err)
			assert.True(t, result.Pass, result.Errors)
		})
	}
}

func TestAssertGolden_FromResult(t *testing.T) {
	sc, err := LoadScenario(filepath.Join(scenarioDir, "basic.yaml"))
	require.NoError(t, err)

	result, err := Run(t.Context(), sc)
	require.NoError(t, err)
	AssertGolden(t, "basic", result)
}
