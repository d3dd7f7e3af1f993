// Package conformance replays seeded random operation logs against the
// nodekit structures and a reference container for each, and reports the
// first step at which they diverge.
package conformance

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/openfga/nodekit/internal/scenario"
	"github.com/openfga/nodekit/pkg/id"
	"github.com/openfga/nodekit/pkg/logger"
)

const (
	defaultOps         = 1000
	defaultConcurrency = 5

	// cancellation is checked every this many steps
	ctxCheckInterval = 64
)

var ErrMismatch = errors.New("structure diverged from reference")

// MismatchError describes the first step at which a structure and its
// reference disagreed. Log holds every step up to and including that one,
// so the failure can be replayed as a scenario.
type MismatchError struct {
	Structure string
	Step      int
	Op        string
	Detail    string
	Log       []scenario.Step
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: step %d (%s): %s", e.Structure, e.Step, e.Op, e.Detail)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// Scenario returns the operation log that led to the mismatch.
func (e *MismatchError) Scenario() scenario.Scenario {
	return scenario.Scenario{
		Name:      fmt.Sprintf("%s-mismatch-step-%d", e.Structure, e.Step),
		Structure: e.Structure,
		Steps:     e.Log,
	}
}

// Result summarises one structure's run.
type Result struct {
	Structure string
	Ops       int
	MaxLen    int
	Err       error
}

// Summary is the outcome of Checker.Run.
type Summary struct {
	RunID   string
	Seed    uint64
	Results []Result
}

// Failed returns the results that ended in an error.
func (s *Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

type Checker struct {
	logger      logger.Logger
	ops         int
	concurrency int
	structures  []string

	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	mismatches *prometheus.CounterVec
}

type CheckerOption func(*Checker)

func WithLogger(l logger.Logger) CheckerOption {
	return func(c *Checker) {
		c.logger = l
	}
}

// WithOps sets how many operations are applied to each structure.
func WithOps(n int) CheckerOption {
	return func(c *Checker) {
		if n > 0 {
			c.ops = n
		}
	}
}

// WithConcurrency sets how many structures are checked at once. Each
// structure instance is only ever used by the goroutine checking it.
func WithConcurrency(n int) CheckerOption {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithStructures restricts the run to the named structures.
func WithStructures(names ...string) CheckerOption {
	return func(c *Checker) {
		if len(names) > 0 {
			c.structures = names
		}
	}
}

func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		logger:      logger.NewNoopLogger(),
		ops:         defaultOps,
		concurrency: defaultConcurrency,
		structures:  scenario.Structures,
		registry:    prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(c)
	}

	factory := promauto.With(c.registry)
	c.operations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nodekit",
		Subsystem: "conformance",
		Name:      "operations_total",
		Help:      "The total number of operations applied to a structure and its reference.",
	}, []string{"structure", "op"})
	c.mismatches = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nodekit",
		Subsystem: "conformance",
		Name:      "mismatches_total",
		Help:      "The total number of runs in which a structure diverged from its reference.",
	}, []string{"structure"})

	return c
}

// Registry exposes the checker's metrics.
func (c *Checker) Registry() *prometheus.Registry {
	return c.registry
}

// Run checks every configured structure with operation logs derived from
// seed. The same seed always produces the same logs. The returned error
// joins the errors of every failed structure.
func (c *Checker) Run(ctx context.Context, seed uint64) (*Summary, error) {
	runID, err := id.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create run id: %w", err)
	}

	log := c.logger.With(zap.String("run_id", runID), zap.Uint64("seed", seed))
	log.Info("starting conformance run", zap.Strings("structures", c.structures), zap.Int("ops", c.ops))

	summary := &Summary{
		RunID:   runID,
		Seed:    seed,
		Results: make([]Result, len(c.structures)),
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(c.concurrency)
	for i, structure := range c.structures {
		p.Go(func(ctx context.Context) error {
			res := c.check(ctx, structure, seed+uint64(i))
			summary.Results[i] = res
			if res.Err != nil {
				log.Warn("conformance check failed", zap.String("structure", structure), zap.Error(res.Err))
				return res.Err
			}
			log.Debug("conformance check passed", zap.String("structure", structure), zap.Int("max_len", res.MaxLen))
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return summary, err
	}

	log.Info("conformance run complete")
	return summary, nil
}

func (c *Checker) check(ctx context.Context, structure string, seed uint64) Result {
	res := Result{Structure: structure}

	subj, err := newSubject(structure)
	if err != nil {
		res.Err = err
		return res
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var steps []scenario.Step
	mismatch := func(step int, op, detail string) Result {
		c.mismatches.WithLabelValues(structure).Inc()
		res.Err = &MismatchError{
			Structure: structure,
			Step:      step,
			Op:        op,
			Detail:    detail,
			Log:       steps,
		}
		return res
	}

	for i := 0; i < c.ops; i++ {
		if i%ctxCheckInterval == 0 && ctx.Err() != nil {
			res.Err = ctx.Err()
			return res
		}

		op := subj.ops[rng.IntN(len(subj.ops))]
		value := strconv.Itoa(i)

		step := scenario.Step{Op: op}
		if scenario.NeedsValue(structure, op) {
			p := scenario.Payload(value)
			step.Value = &p
		}
		steps = append(steps, step)

		got, want := subj.apply(op, value)
		c.operations.WithLabelValues(structure, op).Inc()
		res.Ops++

		if got != want {
			return mismatch(i, op, fmt.Sprintf("returned (%q, %t), reference returned (%q, %t)", got.value, got.ok, want.value, want.ok))
		}

		gotValues, wantValues := subj.readout()
		if !slices.Equal(gotValues, wantValues) {
			return mismatch(i, op, fmt.Sprintf("holds %v, reference holds %v", gotValues, wantValues))
		}
		res.MaxLen = max(res.MaxLen, len(gotValues))

		if subj.verify != nil {
			if err := subj.verify(); err != nil {
				return mismatch(i, op, err.Error())
			}
		}
	}

	return res
}

// OperationCounts gathers the operation counter and returns the number of
// operations applied per structure since the checker was created.
func (c *Checker) OperationCounts() (map[string]float64, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	counts := make(map[string]float64)
	for _, family := range families {
		if family.GetName() != "nodekit_conformance_operations_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "structure" {
					counts[label.GetValue()] += metric.GetCounter().GetValue()
				}
			}
		}
	}
	return counts, nil
}
