// Package demo contains the command that walks through each structure with
// a fixed set of operations.
package demo

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openfga/nodekit/cmd/util"
	"github.com/openfga/nodekit/internal/scenario"
)

//go:embed scenarios.yaml
var scenarios []byte

func NewDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Show every structure in action",
		Long:  "Build each structure from a fixed set of values, print it and drain it.",
		RunE:  runDemo,
		Args:  cobra.NoArgs,
	}

	return cmd
}

func runDemo(cmd *cobra.Command, _ []string) error {
	_, log, err := util.ReadConfigAndLogger()
	if err != nil {
		return err
	}

	parsed, err := scenario.Parse(scenarios)
	if err != nil {
		return fmt.Errorf("failed to parse demo scenarios: %w", err)
	}

	runner := scenario.NewRunner(log)
	reports := make([]*scenario.Report, 0, len(parsed))
	for _, s := range parsed {
		report, err := runner.Run(s)
		if err != nil {
			return fmt.Errorf("demo %q: %w", s.Name, err)
		}
		reports = append(reports, report)
	}

	return scenario.WriteText(cmd.OutOrStdout(), reports...)
}
