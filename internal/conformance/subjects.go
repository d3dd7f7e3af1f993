package conformance

import (
	"fmt"
	"io"
	"slices"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/stacks/linkedliststack"

	"github.com/openfga/nodekit/internal/scenario"
	"github.com/openfga/nodekit/pkg/deque"
	"github.com/openfga/nodekit/pkg/queue"
	"github.com/openfga/nodekit/pkg/ring"
	"github.com/openfga/nodekit/pkg/stack"
	"github.com/openfga/nodekit/pkg/tree"
)

// outcome is what a single operation returned.
type outcome struct {
	value string
	ok    bool
}

// subject pairs a nodekit structure with a gods reference container that
// receives the same operations.
type subject struct {
	structure string

	// ops are drawn uniformly, so an operation listed twice is drawn twice
	// as often. Growing operations are weighted up to keep structures
	// non-empty for most of a run.
	ops []string

	// apply runs op on both sides and returns what each returned.
	apply func(op, value string) (got, want outcome)

	// readout returns the values each side holds, in traversal order.
	readout func() (got, want []string)

	// verify checks structure-specific properties after every step. It may
	// be nil.
	verify func() error
}

func newSubject(structure string) (*subject, error) {
	switch structure {
	case scenario.Stack:
		return stackSubject(), nil
	case scenario.Queue:
		return queueSubject(), nil
	case scenario.Ring:
		return ringSubject(), nil
	case scenario.Deque:
		return dequeSubject(), nil
	case scenario.Tree:
		return treeSubject(), nil
	default:
		return nil, fmt.Errorf("%w: %q", scenario.ErrUnknownStructure, structure)
	}
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.(string))
	}
	return out
}

func fromRef(v interface{}, ok bool) outcome {
	if !ok {
		return outcome{}
	}
	return outcome{value: v.(string), ok: true}
}

func printTwice(printAll func(io.Writer) error) error {
	if err := printAll(io.Discard); err != nil {
		return err
	}
	return printAll(io.Discard)
}

func stackSubject() *subject {
	s := stack.New[string]()
	ref := linkedliststack.New()

	return &subject{
		structure: scenario.Stack,
		ops:       []string{"push", "push", "pop", "peek", "print"},
		apply: func(op, value string) (outcome, outcome) {
			switch op {
			case "push":
				s.Push(value)
				ref.Push(value)
				return outcome{value, true}, outcome{value, true}
			case "pop":
				v, ok := s.Pop()
				return outcome{v, ok}, fromRef(ref.Pop())
			case "peek":
				v, ok := s.Peek()
				return outcome{v, ok}, fromRef(ref.Peek())
			}
			err := printTwice(s.PrintAll)
			return outcome{ok: err == nil}, outcome{ok: true}
		},
		readout: func() ([]string, []string) {
			return slices.Collect(s.All()), toStrings(ref.Values())
		},
		verify: func() error {
			if s.Len() != ref.Size() || s.IsEmpty() != ref.Empty() {
				return fmt.Errorf("size %d, reference size %d", s.Len(), ref.Size())
			}
			return nil
		},
	}
}

func queueSubject() *subject {
	q := queue.New[string]()
	ref := linkedlistqueue.New()

	return &subject{
		structure: scenario.Queue,
		ops:       []string{"enqueue", "enqueue", "dequeue", "peek", "print"},
		apply: func(op, value string) (outcome, outcome) {
			switch op {
			case "enqueue":
				q.Enqueue(value)
				ref.Enqueue(value)
				return outcome{value, true}, outcome{value, true}
			case "dequeue":
				v, ok := q.Dequeue()
				return outcome{v, ok}, fromRef(ref.Dequeue())
			case "peek":
				v, ok := q.Peek()
				return outcome{v, ok}, fromRef(ref.Peek())
			}
			err := printTwice(q.PrintAll)
			return outcome{ok: err == nil}, outcome{ok: true}
		},
		readout: func() ([]string, []string) {
			return slices.Collect(q.All()), toStrings(ref.Values())
		},
		verify: func() error {
			if q.Len() != ref.Size() || q.IsEmpty() != ref.Empty() {
				return fmt.Errorf("size %d, reference size %d", q.Len(), ref.Size())
			}
			return nil
		},
	}
}

// ringSubject models the ring as a list whose front is the ring's head.
func ringSubject() *subject {
	r := ring.New[string]()
	ref := doublylinkedlist.New()

	return &subject{
		structure: scenario.Ring,
		ops:       []string{"push", "push", "pop", "peek", "print"},
		apply: func(op, value string) (outcome, outcome) {
			switch op {
			case "push":
				r.Push(value)
				ref.Prepend(value)
				return outcome{value, true}, outcome{value, true}
			case "pop":
				v, ok := r.Pop()
				want := fromRef(ref.Get(0))
				if want.ok {
					ref.Remove(0)
				}
				return outcome{v, ok}, want
			case "peek":
				v, ok := r.Peek()
				return outcome{v, ok}, fromRef(ref.Get(0))
			}
			err := printTwice(r.PrintAll)
			return outcome{ok: err == nil}, outcome{ok: true}
		},
		readout: func() ([]string, []string) {
			return slices.Collect(r.All()), toStrings(ref.Values())
		},
		verify: func() error {
			n := r.Len()
			if n != ref.Size() {
				return fmt.Errorf("size %d, reference size %d", n, ref.Size())
			}
			if n == 0 {
				return nil
			}

			// two laps must repeat the first lap exactly, which only
			// holds when the last node links back to the head
			laps := slices.Collect(r.Walk(2 * n))
			if len(laps) != 2*n || !slices.Equal(laps[:n], laps[n:]) {
				return fmt.Errorf("ring is not closed: %v", laps)
			}
			return nil
		},
	}
}

func dequeSubject() *subject {
	d := deque.New[string]()
	ref := doublylinkedlist.New()

	return &subject{
		structure: scenario.Deque,
		ops:       []string{"pushLeft", "pushRight", "popLeft", "popRight", "peekLeft", "peekRight", "print"},
		apply: func(op, value string) (outcome, outcome) {
			last := ref.Size() - 1
			switch op {
			case "pushLeft":
				d.PushLeft(value)
				ref.Prepend(value)
				return outcome{value, true}, outcome{value, true}
			case "pushRight":
				d.PushRight(value)
				ref.Add(value)
				return outcome{value, true}, outcome{value, true}
			case "popLeft":
				v, ok := d.PopLeft()
				want := fromRef(ref.Get(0))
				if want.ok {
					ref.Remove(0)
				}
				return outcome{v, ok}, want
			case "popRight":
				v, ok := d.PopRight()
				want := fromRef(ref.Get(last))
				if want.ok {
					ref.Remove(last)
				}
				return outcome{v, ok}, want
			case "peekLeft":
				v, ok := d.PeekLeft()
				return outcome{v, ok}, fromRef(ref.Get(0))
			case "peekRight":
				v, ok := d.PeekRight()
				return outcome{v, ok}, fromRef(ref.Get(last))
			}
			err := printTwice(d.PrintAll)
			return outcome{ok: err == nil}, outcome{ok: true}
		},
		readout: func() ([]string, []string) {
			return slices.Collect(d.All()), toStrings(ref.Values())
		},
		verify: func() error {
			if d.Len() != ref.Size() || d.IsEmpty() != ref.Empty() {
				return fmt.Errorf("size %d, reference size %d", d.Len(), ref.Size())
			}
			return nil
		},
	}
}

// treeSubject checks that the breadth-first read-back of the tree is the
// insertion order, kept in an array list.
func treeSubject() *subject {
	t := tree.New[string]()
	ref := arraylist.New()

	return &subject{
		structure: scenario.Tree,
		ops:       []string{"insert", "insert", "insert", "print"},
		apply: func(op, value string) (outcome, outcome) {
			if op == "insert" {
				t.Insert(value)
				ref.Add(value)
				return outcome{value, true}, outcome{value, true}
			}
			err := printTwice(t.PrintAll)
			return outcome{ok: err == nil}, outcome{ok: true}
		},
		readout: func() ([]string, []string) {
			return slices.Collect(t.BreadthFirst()), toStrings(ref.Values())
		},
		verify: func() error {
			n := t.Len()
			if n != ref.Size() {
				return fmt.Errorf("size %d, reference size %d", n, ref.Size())
			}
			height := 0
			for size := n; size > 0; size >>= 1 {
				height++
			}
			if t.Height() != height {
				return fmt.Errorf("height %d for %d values, want %d", t.Height(), n, height)
			}
			return nil
		},
	}
}
