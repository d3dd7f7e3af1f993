package scenario

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/openfga/nodekit/pkg/deque"
	"github.com/openfga/nodekit/pkg/logger"
	"github.com/openfga/nodekit/pkg/queue"
	"github.com/openfga/nodekit/pkg/ring"
	"github.com/openfga/nodekit/pkg/stack"
	"github.com/openfga/nodekit/pkg/tree"
)

// operations maps each structure to its operation names, and each
// operation to whether it requires a value.
var operations = map[string]map[string]bool{
	Stack: {"push": true, "pop": false, "peek": false, "print": false},
	Queue: {"enqueue": true, "dequeue": false, "peek": false, "print": false},
	Ring:  {"push": true, "pop": false, "peek": false, "print": false},
	Deque: {
		"pushLeft": true, "pushRight": true,
		"popLeft": false, "popRight": false,
		"peekLeft": false, "peekRight": false,
		"print": false,
	},
	Tree: {"insert": true, "print": false},
}

// NeedsValue reports whether op on structure requires a value.
func NeedsValue(structure, op string) bool {
	return operations[structure][op]
}

// Operations returns the sorted operation names a structure accepts.
func Operations(structure string) []string {
	ops := make([]string, 0, len(operations[structure]))
	for op := range operations[structure] {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// Result is the outcome of one step. Value and OK are set by operations
// that read a value. Output is set by print.
type Result struct {
	Op     string `json:"op"`
	Value  string `json:"value,omitempty"`
	OK     bool   `json:"ok"`
	Output string `json:"output,omitempty"`
}

func (r Result) String() string {
	switch {
	case r.Output != "":
		return fmt.Sprintf("%s: %s", r.Op, strings.TrimSuffix(r.Output, "\n"))
	case r.OK:
		return fmt.Sprintf("%s -> %s", r.Op, r.Value)
	default:
		return fmt.Sprintf("%s -> empty", r.Op)
	}
}

// Report is the outcome of a whole scenario. Final holds the values left
// in the structure, in the order the structure's All traversal yields them.
type Report struct {
	Name      string   `json:"name,omitempty"`
	Structure string   `json:"structure"`
	Results   []Result `json:"results"`
	Final     []string `json:"final"`
}

// target adapts one structure instance to the step interface.
type target interface {
	apply(step Step) (Result, error)
	values() []string
}

type Runner struct {
	logger logger.Logger
}

func NewRunner(l logger.Logger) *Runner {
	if l == nil {
		l = logger.NewNoopLogger()
	}
	return &Runner{logger: l}
}

// Run executes s against a fresh instance of its structure.
func (r *Runner) Run(s Scenario) (*Report, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	tgt, err := newTarget(s.Structure)
	if err != nil {
		return nil, err
	}

	log := r.logger.With(zap.String("scenario", s.Name), zap.String("structure", s.Structure))
	report := &Report{Name: s.Name, Structure: s.Structure}
	for i, step := range s.Steps {
		res, err := tgt.apply(step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		log.Debug("applied step", zap.Int("step", i), zap.String("op", step.Op), zap.Bool("ok", res.OK))
		report.Results = append(report.Results, res)
	}
	report.Final = tgt.values()

	log.Info("scenario complete", zap.Int("steps", len(s.Steps)), zap.Int("remaining", len(report.Final)))
	return report, nil
}

func newTarget(structure string) (target, error) {
	switch structure {
	case Stack:
		return &stackTarget{s: stack.New[string]()}, nil
	case Queue:
		return &queueTarget{q: queue.New[string]()}, nil
	case Ring:
		return &ringTarget{r: ring.New[string]()}, nil
	case Deque:
		return &dequeTarget{d: deque.New[string]()}, nil
	case Tree:
		return &treeTarget{t: tree.New[string]()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStructure, structure)
	}
}

func read(op string, value string, ok bool) Result {
	return Result{Op: op, Value: value, OK: ok}
}

func printed(op string, write func(*bytes.Buffer) error) (Result, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return Result{}, err
	}
	return Result{Op: op, OK: true, Output: buf.String()}, nil
}

func unknown(structure string, step Step) error {
	return fmt.Errorf("%w: %q on %s", ErrUnknownOperation, step.Op, structure)
}

type stackTarget struct{ s *stack.Stack[string] }

func (t *stackTarget) apply(step Step) (Result, error) {
	switch step.Op {
	case "push":
		t.s.Push(string(*step.Value))
		return Result{Op: step.Op, Value: string(*step.Value), OK: true}, nil
	case "pop":
		v, ok := t.s.Pop()
		return read(step.Op, v, ok), nil
	case "peek":
		v, ok := t.s.Peek()
		return read(step.Op, v, ok), nil
	case "print":
		return printed(step.Op, func(b *bytes.Buffer) error { return t.s.PrintAll(b) })
	}
	return Result{}, unknown(Stack, step)
}

func (t *stackTarget) values() []string { return slices.Collect(t.s.All()) }

type queueTarget struct{ q *queue.Queue[string] }

func (t *queueTarget) apply(step Step) (Result, error) {
	switch step.Op {
	case "enqueue":
		t.q.Enqueue(string(*step.Value))
		return Result{Op: step.Op, Value: string(*step.Value), OK: true}, nil
	case "dequeue":
		v, ok := t.q.Dequeue()
		return read(step.Op, v, ok), nil
	case "peek":
		v, ok := t.q.Peek()
		return read(step.Op, v, ok), nil
	case "print":
		return printed(step.Op, func(b *bytes.Buffer) error { return t.q.PrintAll(b) })
	}
	return Result{}, unknown(Queue, step)
}

func (t *queueTarget) values() []string { return slices.Collect(t.q.All()) }

type ringTarget struct{ r *ring.Ring[string] }

func (t *ringTarget) apply(step Step) (Result, error) {
	switch step.Op {
	case "push":
		t.r.Push(string(*step.Value))
		return Result{Op: step.Op, Value: string(*step.Value), OK: true}, nil
	case "pop":
		v, ok := t.r.Pop()
		return read(step.Op, v, ok), nil
	case "peek":
		v, ok := t.r.Peek()
		return read(step.Op, v, ok), nil
	case "print":
		if step.Count > 0 {
			return printed(step.Op, func(b *bytes.Buffer) error { return t.r.PrintN(b, step.Count) })
		}
		return printed(step.Op, func(b *bytes.Buffer) error { return t.r.PrintAll(b) })
	}
	return Result{}, unknown(Ring, step)
}

func (t *ringTarget) values() []string { return slices.Collect(t.r.All()) }

type dequeTarget struct{ d *deque.Deque[string] }

func (t *dequeTarget) apply(step Step) (Result, error) {
	switch step.Op {
	case "pushLeft":
		t.d.PushLeft(string(*step.Value))
		return Result{Op: step.Op, Value: string(*step.Value), OK: true}, nil
	case "pushRight":
		t.d.PushRight(string(*step.Value))
		return Result{Op: step.Op, Value: string(*step.Value), OK: true}, nil
	case "popLeft":
		v, ok := t.d.PopLeft()
		return read(step.Op, v, ok), nil
	case "popRight":
		v, ok := t.d.PopRight()
		return read(step.Op, v, ok), nil
	case "peekLeft":
		v, ok := t.d.PeekLeft()
		return read(step.Op, v, ok), nil
	case "peekRight":
		v, ok := t.d.PeekRight()
		return read(step.Op, v, ok), nil
	case "print":
		return printed(step.Op, func(b *bytes.Buffer) error { return t.d.PrintAll(b) })
	}
	return Result{}, unknown(Deque, step)
}

func (t *dequeTarget) values() []string { return slices.Collect(t.d.All()) }

type treeTarget struct{ t *tree.LevelOrder[string] }

func (t *treeTarget) apply(step Step) (Result, error) {
	switch step.Op {
	case "insert":
		t.t.Insert(string(*step.Value))
		return Result{Op: step.Op, Value: string(*step.Value), OK: true}, nil
	case "print":
		return printed(step.Op, func(b *bytes.Buffer) error { return t.t.PrintAll(b) })
	}
	return Result{}, unknown(Tree, step)
}

// values reads the tree back breadth-first.
func (t *treeTarget) values() []string { return slices.Collect(t.t.BreadthFirst()) }
