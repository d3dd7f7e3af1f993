// Package replay contains the command that runs scenario files.
package replay

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openfga/nodekit/cmd/util"
	"github.com/openfga/nodekit/internal/config"
	"github.com/openfga/nodekit/internal/scenario"
)

const outputFlag = "output"

func NewReplayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Run the scenarios in a YAML file",
		Long: `Run the scenarios in a YAML file and print the result of every step.

A scenario file looks like:

  scenarios:
    - name: lifo
      structure: stack
      steps:
        - {op: push, value: a}
        - {op: pop}

Scenario files written by 'nodekit verify --dump-dir' can be replayed as is.`,
		RunE: runReplay,
		Args: cobra.ExactArgs(1),
	}

	defaultConfig := config.DefaultConfig()
	flags := cmd.Flags()
	flags.StringP(outputFlag, "o", defaultConfig.Replay.Output, "the report format ('text' or 'yaml')")

	cmd.PreRun = bindReplayFlagsFunc(flags)

	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, log, err := util.ReadConfigAndLogger()
	if err != nil {
		return err
	}

	scenarios, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	log.Debug("loaded scenarios", zap.String("file", args[0]), zap.Int("count", len(scenarios)))

	runner := scenario.NewRunner(log)
	reports := make([]*scenario.Report, 0, len(scenarios))
	for _, s := range scenarios {
		report, err := runner.Run(s)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	if cfg.Replay.Output == "yaml" {
		return scenario.WriteYAML(cmd.OutOrStdout(), reports...)
	}
	return scenario.WriteText(cmd.OutOrStdout(), reports...)
}
