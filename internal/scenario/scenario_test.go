package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openfga/nodekit/pkg/logger"
)

const document = `
scenarios:
  - name: lifo
    structure: stack
    steps:
      - {op: push, value: First}
      - {op: push, value: Second}
      - {op: pop}
      - {op: pop}
      - {op: pop}
  - name: levels
    structure: tree
    steps:
      - {op: insert, value: 1}
      - {op: insert, value: 2}
      - {op: insert, value: 3}
      - {op: insert, value: 4}
      - {op: print}
`

func TestParse(t *testing.T) {
	t.Run("valid_document", func(t *testing.T) {
		scenarios, err := Parse([]byte(document))
		require.NoError(t, err)
		require.Len(t, scenarios, 2)
		require.Equal(t, Stack, scenarios[0].Structure)
		require.Len(t, scenarios[0].Steps, 5)
		require.Equal(t, Payload("First"), *scenarios[0].Steps[0].Value)
		require.Nil(t, scenarios[0].Steps[2].Value)

		// numeric payloads keep their textual form
		require.Equal(t, Payload("4"), *scenarios[1].Steps[3].Value)
	})

	cases := map[string]struct {
		doc         string
		expectedErr error
	}{
		"no_scenarios": {
			doc:         "scenarios: []",
			expectedErr: ErrNoScenarios,
		},
		"unknown_structure": {
			doc:         "scenarios: [{structure: heap, steps: []}]",
			expectedErr: ErrUnknownStructure,
		},
		"unknown_operation": {
			doc:         "scenarios: [{structure: queue, steps: [{op: push, value: a}]}]",
			expectedErr: ErrUnknownOperation,
		},
		"missing_value": {
			doc:         "scenarios: [{structure: deque, steps: [{op: pushLeft}]}]",
			expectedErr: ErrMissingValue,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.ErrorIs(t, err, tc.expectedErr)
		})
	}

	t.Run("unknown_field_rejected", func(t *testing.T) {
		_, err := Parse([]byte("scenarios: [{structure: stack, steps: [], extra: 1}]"))
		require.Error(t, err)
	})

	t.Run("non_scalar_payload_rejected", func(t *testing.T) {
		_, err := Parse([]byte("scenarios: [{structure: stack, steps: [{op: push, value: [1, 2]}]}]"))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	scenarios, err := Load(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalRoundTrip(t *testing.T) {
	scenarios, err := Parse([]byte(document))
	require.NoError(t, err)

	data, err := Marshal(scenarios)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, scenarios, again)
}

func TestRun(t *testing.T) {
	scenarios, err := Parse([]byte(document))
	require.NoError(t, err)

	log, logs := logger.NewObserverLogger("info")
	runner := NewRunner(log)

	t.Run("stack", func(t *testing.T) {
		report, err := runner.Run(scenarios[0])
		require.NoError(t, err)
		require.Equal(t, []Result{
			{Op: "push", Value: "First", OK: true},
			{Op: "push", Value: "Second", OK: true},
			{Op: "pop", Value: "Second", OK: true},
			{Op: "pop", Value: "First", OK: true},
			{Op: "pop", OK: false},
		}, report.Results)
		require.Empty(t, report.Final)
		require.Equal(t, "pop -> empty", report.Results[4].String())
	})

	t.Run("tree", func(t *testing.T) {
		report, err := runner.Run(scenarios[1])
		require.NoError(t, err)
		require.Equal(t, []string{"1", "2", "3", "4"}, report.Final)
		require.Equal(t, "root: 1\n  L: 2\n    L: 4\n  R: 3\n", report.Results[4].Output)
	})

	require.Equal(t, 2, logs.FilterMessage("scenario complete").Len())
}

func TestRunEveryStructure(t *testing.T) {
	v := func(s string) *Payload {
		p := Payload(s)
		return &p
	}

	cases := map[string]struct {
		scenario Scenario
		results  []string
		final    []string
	}{
		"queue": {
			scenario: Scenario{Structure: Queue, Steps: []Step{
				{Op: "enqueue", Value: v("a")},
				{Op: "enqueue", Value: v("b")},
				{Op: "peek"},
				{Op: "dequeue"},
			}},
			results: []string{"enqueue -> a", "enqueue -> b", "peek -> a", "dequeue -> a"},
			final:   []string{"b"},
		},
		"ring": {
			scenario: Scenario{Structure: Ring, Steps: []Step{
				{Op: "push", Value: v("b")},
				{Op: "push", Value: v("a")},
				{Op: "print", Count: 3},
				{Op: "print"},
				{Op: "pop"},
			}},
			results: []string{"push -> b", "push -> a", "print: a -> b -> a", "print: a -> b", "pop -> a"},
			final:   []string{"b"},
		},
		"deque": {
			scenario: Scenario{Structure: Deque, Steps: []Step{
				{Op: "pushLeft", Value: v("First")},
				{Op: "pushLeft", Value: v("Third")},
				{Op: "pushRight", Value: v("Fourth")},
				{Op: "pushRight", Value: v("Second")},
				{Op: "print"},
				{Op: "popLeft"},
				{Op: "popRight"},
				{Op: "peekLeft"},
				{Op: "peekRight"},
			}},
			results: []string{
				"pushLeft -> First", "pushLeft -> Third", "pushRight -> Fourth", "pushRight -> Second",
				"print: Third -> First -> Fourth -> Second",
				"popLeft -> Third", "popRight -> Second", "peekLeft -> First", "peekRight -> Fourth",
			},
			final: []string{"First", "Fourth"},
		},
	}

	runner := NewRunner(nil)
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			report, err := runner.Run(tc.scenario)
			require.NoError(t, err)

			got := make([]string, 0, len(report.Results))
			for _, r := range report.Results {
				got = append(got, r.String())
			}
			require.Equal(t, tc.results, got)
			require.Equal(t, tc.final, report.Final)
		})
	}

	t.Run("invalid_scenario", func(t *testing.T) {
		_, err := runner.Run(Scenario{Structure: Tree, Steps: []Step{{Op: "pop"}}})
		require.ErrorIs(t, err, ErrUnknownOperation)
	})
}

func TestOperations(t *testing.T) {
	require.Equal(t, []string{"insert", "print"}, Operations(Tree))
	require.Empty(t, Operations("heap"))
	for _, s := range Structures {
		require.NotEmpty(t, Operations(s), s)
	}
}
