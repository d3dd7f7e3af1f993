// Package config contains all knobs and defaults used to configure the
// nodekit commands.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/openfga/nodekit/internal/scenario"
)

const (
	DefaultLogFormat = "text"
	DefaultLogLevel  = "info"

	DefaultConformanceSeed        = 1
	DefaultConformanceOps         = 1000
	DefaultConformanceConcurrency = 5

	DefaultReplayOutput = "text"
)

var (
	logFormats    = []string{"text", "json"}
	logLevels     = []string{"none", "debug", "info", "warn", "error", "panic", "fatal"}
	replayOutputs = []string{"text", "yaml"}
)

type LogConfig struct {
	// Format is the log format to use in the log output (e.g. 'text' or 'json')
	Format string

	// Level is the log level to use in the log output (e.g. 'none', 'debug', or 'info')
	Level string
}

// ConformanceConfig configures the random operation logs run by the
// verify command.
type ConformanceConfig struct {
	// Seed derives every operation log. Runs with the same seed apply the
	// same operations.
	Seed uint64

	// Ops is the number of operations applied to each structure.
	Ops int

	// Concurrency is the number of structures checked at once.
	Concurrency int

	// Structures restricts the run to the named structures. Empty means all.
	Structures []string

	// DumpDir, when set, receives a scenario file for every structure that
	// diverged from its reference.
	DumpDir string
}

type ReplayConfig struct {
	// Output is the report format, 'text' or 'yaml'.
	Output string
}

type Config struct {
	Log         LogConfig
	Conformance ConformanceConfig
	Replay      ReplayConfig
}

func (cfg *Config) Verify() error {
	if !slices.Contains(logFormats, cfg.Log.Format) {
		return fmt.Errorf("config 'log.format' must be one of %q", logFormats)
	}

	if !slices.Contains(logLevels, cfg.Log.Level) {
		return fmt.Errorf("config 'log.level' must be one of %q", logLevels)
	}

	if cfg.Conformance.Ops <= 0 {
		return errors.New("config 'conformance.ops' must be positive")
	}

	if cfg.Conformance.Concurrency <= 0 {
		return errors.New("config 'conformance.concurrency' must be positive")
	}

	for _, s := range cfg.Conformance.Structures {
		if !slices.Contains(scenario.Structures, s) {
			return fmt.Errorf("config 'conformance.structures': %w: %q", scenario.ErrUnknownStructure, s)
		}
	}

	if !slices.Contains(replayOutputs, cfg.Replay.Output) {
		return fmt.Errorf("config 'replay.output' must be one of %q", replayOutputs)
	}

	return nil
}

// DefaultConfig returns the nodekit default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Format: DefaultLogFormat,
			Level:  DefaultLogLevel,
		},
		Conformance: ConformanceConfig{
			Seed:        DefaultConformanceSeed,
			Ops:         DefaultConformanceOps,
			Concurrency: DefaultConformanceConcurrency,
			Structures:  []string{},
		},
		Replay: ReplayConfig{
			Output: DefaultReplayOutput,
		},
	}
}
