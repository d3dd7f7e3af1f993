// Package verify contains the command that checks every structure against a
// reference container.
package verify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openfga/nodekit/cmd/util"
	"github.com/openfga/nodekit/internal/config"
	"github.com/openfga/nodekit/internal/conformance"
	"github.com/openfga/nodekit/internal/scenario"
	"github.com/openfga/nodekit/pkg/logger"
)

const (
	seedFlag        = "seed"
	opsFlag         = "ops"
	concurrencyFlag = "concurrency"
	structuresFlag  = "structures"
	dumpDirFlag     = "dump-dir"
)

func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every structure against a reference container",
		Long: `Apply a seeded random operation log to every structure and to a reference
container, comparing results and contents after each step. The same seed always
produces the same operation logs.`,
		RunE: runVerify,
		Args: cobra.NoArgs,
	}

	defaultConfig := config.DefaultConfig()
	flags := cmd.Flags()

	flags.Uint64(seedFlag, defaultConfig.Conformance.Seed, "the seed the operation logs are derived from")
	flags.Int(opsFlag, defaultConfig.Conformance.Ops, "the number of operations applied to each structure")
	flags.Int(concurrencyFlag, defaultConfig.Conformance.Concurrency, "the number of structures checked at once")
	flags.StringSlice(structuresFlag, defaultConfig.Conformance.Structures, fmt.Sprintf("the structures to check, any of %q (default all)", scenario.Structures))
	flags.String(dumpDirFlag, defaultConfig.Conformance.DumpDir, "a directory that receives a replayable scenario file for every mismatch")

	// NOTE: if you add a new flag here, update the function in flags.go, too

	if err := cmd.RegisterFlagCompletionFunc(structuresFlag, structureNames); err != nil {
		panic("failed to register completion: " + err.Error())
	}

	cmd.PreRun = bindVerifyFlagsFunc(flags)

	return cmd
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg, log, err := util.ReadConfigAndLogger()
	if err != nil {
		return err
	}

	checker := conformance.NewChecker(
		conformance.WithLogger(log),
		conformance.WithOps(cfg.Conformance.Ops),
		conformance.WithConcurrency(cfg.Conformance.Concurrency),
		conformance.WithStructures(cfg.Conformance.Structures...),
	)

	summary, runErr := checker.Run(cmd.Context(), cfg.Conformance.Seed)
	if summary == nil {
		return runErr
	}

	counts, err := checker.OperationCounts()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s (seed %d)\n", summary.RunID, summary.Seed)
	for _, res := range summary.Results {
		status := "ok"
		if res.Err != nil {
			status = "FAIL: " + res.Err.Error()
		}
		fmt.Fprintf(out, "%-6s %6.0f ops  max len %4d  %s\n", res.Structure, counts[res.Structure], res.MaxLen, status)
	}

	if cfg.Conformance.DumpDir != "" {
		if err := dumpMismatches(log, cfg.Conformance.DumpDir, summary); err != nil {
			return errors.Join(runErr, err)
		}
	}

	return runErr
}

// dumpMismatches writes the operation log of every mismatch to dir, one
// scenario file per structure, named after the run id.
func dumpMismatches(log logger.Logger, dir string, summary *conformance.Summary) error {
	for _, res := range summary.Failed() {
		var mismatch *conformance.MismatchError
		if !errors.As(res.Err, &mismatch) {
			continue
		}

		data, err := scenario.Marshal([]scenario.Scenario{mismatch.Scenario()})
		if err != nil {
			return err
		}

		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create dump dir: %w", err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", summary.RunID, res.Structure))
		if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
			return fmt.Errorf("failed to write scenario: %w", err)
		}
		log.Info("wrote mismatch scenario", zap.String("structure", res.Structure), zap.String("path", path))
	}
	return nil
}

// structureNames completes the --structures flag.
func structureNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return slices.Clone(scenario.Structures), cobra.ShellCompDirectiveNoFileComp
}
