// Package ring provides a circular singly-linked list.
package ring

import (
	"io"
	"iter"

	"github.com/openfga/nodekit/internal/node"
	"github.com/openfga/nodekit/internal/render"
)

// Ring is a singly-linked list whose last node links back to the first.
// Values are pushed and popped at the head. A zero value Ring is empty and
// ready to use. Ring is not safe for concurrent use.
type Ring[T any] struct {
	// head and tail are both nil or both set. When set, tail.Next == head.
	// That closing edge is a back-reference only: every node is owned by the
	// head field or by its predecessor's Next.
	head *node.Node[T]
	tail *node.Node[T]
	size int
}

// New returns an empty Ring.
func New[T any]() *Ring[T] {
	return &Ring[T]{}
}

// Push makes value the new head of the ring.
func (r *Ring[T]) Push(value T) {
	n := node.New(value)
	if r.head == nil {
		n.Next = n
		r.head = n
		r.tail = n
		r.size = 1
		return
	}

	n.Next = r.head
	r.head = n
	r.tail.Next = r.head
	r.size++
}

// Pop removes the head value and returns it. The boolean is false, and the
// ring is left unchanged, when the ring is empty.
func (r *Ring[T]) Pop() (T, bool) {
	if r.head == nil {
		var zero T
		return zero, false
	}

	popped := r.head
	if popped == r.tail {
		r.head = nil
		r.tail = nil
		r.size = 0
		return popped.Detach(), true
	}

	r.head = popped.Next
	r.tail.Next = r.head
	r.size--
	return popped.Detach(), true
}

// Peek returns the head value without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	if r.head == nil {
		var zero T
		return zero, false
	}
	return r.head.Value, true
}

func (r *Ring[T]) IsEmpty() bool {
	return r.head == nil
}

func (r *Ring[T]) Len() int {
	return r.size
}

// All yields every value exactly once, starting at the head and stopping
// when the traversal arrives back at the head.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		first := true
		for current := r.head; current != nil; current = current.Next {
			if !first && current == r.head {
				return
			}
			first = false
			if !yield(current.Value) {
				return
			}
		}
	}
}

// Walk yields exactly n values starting at the head, wrapping around the
// ring as many times as needed. It yields nothing for an empty ring.
func (r *Ring[T]) Walk(n int) iter.Seq[T] {
	return node.WalkN(r.head, n)
}

// PrintAll writes one full lap of the ring on a single line.
func (r *Ring[T]) PrintAll(w io.Writer) error {
	return render.Line(w, r.All())
}

// PrintN writes exactly n steps of the ring starting at the head. It is
// useful for showing the wrap-around, or a partial view when payloads
// repeat.
func (r *Ring[T]) PrintN(w io.Writer, n int) error {
	return render.Line(w, r.Walk(n))
}
