package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/openfga/nodekit/cmd"
	"github.com/openfga/nodekit/cmd/util"
	"github.com/openfga/nodekit/internal/scenario"
)

const scenarios = `
scenarios:
  - name: fifo
    structure: queue
    steps:
      - {op: enqueue, value: a}
      - {op: enqueue, value: b}
      - {op: dequeue}
  - name: ends
    structure: deque
    steps:
      - {op: pushRight, value: x}
      - {op: popLeft}
      - {op: popRight}
`

func writeScenarios(t *testing.T, doc string) string {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	util.PrepareTempConfigDir(t)
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	root := cmd.NewRootCommand()
	root.AddCommand(NewReplayCommand())
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"replay", "--log-level", "none"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestReplayText(t *testing.T) {
	out, err := execute(t, writeScenarios(t, scenarios))
	require.NoError(t, err)
	require.Equal(t, `== fifo (queue)
enqueue -> a
enqueue -> b
dequeue -> a
final: b

== ends (deque)
pushRight -> x
popLeft -> x
popRight -> empty
final: (empty)
`, out)
}

func TestReplayYAML(t *testing.T) {
	out, err := execute(t, "--output", "yaml", writeScenarios(t, scenarios))
	require.NoError(t, err)

	var reports []scenario.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	require.Equal(t, "fifo", reports[0].Name)
	require.Equal(t, []string{"b"}, reports[0].Final)
	require.False(t, reports[1].Results[2].OK)
}

func TestReplayOutputFromEnv(t *testing.T) {
	t.Setenv("NODEKIT_REPLAY_OUTPUT", "yaml")
	out, err := execute(t, writeScenarios(t, scenarios))
	require.NoError(t, err)
	require.Contains(t, out, "structure: queue")
}

func TestReplayErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := execute(t, filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid_scenario", func(t *testing.T) {
		_, err := execute(t, writeScenarios(t, "scenarios: [{structure: heap, steps: []}]"))
		require.ErrorIs(t, err, scenario.ErrUnknownStructure)
	})

	t.Run("invalid_output", func(t *testing.T) {
		_, err := execute(t, "--output", "xml", writeScenarios(t, scenarios))
		require.ErrorContains(t, err, "replay.output")
	})

	t.Run("no_args", func(t *testing.T) {
		_, err := execute(t)
		require.Error(t, err)
	})
}
