// Package deque provides a double-ended queue built on a singly-linked
// chain with head and tail references.
package deque

import (
	"io"
	"iter"

	"github.com/openfga/nodekit/internal/node"
	"github.com/openfga/nodekit/internal/render"
)

// Deque is a double-ended queue of T. The left end is the head of the
// chain and the right end is the tail.
//
// Nodes only link forward, so PopRight has to walk from the head to find
// the node before the tail and costs O(n). Every other operation is O(1).
//
// A zero value Deque is empty and ready to use. Deque is not safe for
// concurrent use.
type Deque[T any] struct {
	// head and tail are both nil or both set, and tail.Next is always nil.
	head *node.Node[T]
	tail *node.Node[T]
	size int
}

// New returns an empty Deque.
func New[T any]() *Deque[T] {
	return &Deque[T]{}
}

// PushLeft adds value at the left end.
func (d *Deque[T]) PushLeft(value T) {
	n := node.New(value)
	n.Next = d.head
	d.head = n
	if d.tail == nil {
		d.tail = n
	}
	d.size++
}

// PushRight adds value at the right end.
func (d *Deque[T]) PushRight(value T) {
	n := node.New(value)
	if d.tail == nil {
		d.head = n
		d.tail = n
	} else {
		d.tail.Next = n
		d.tail = n
	}
	d.size++
}

// PopLeft removes the leftmost value and returns it. The boolean is false,
// and the deque is left unchanged, when the deque is empty.
func (d *Deque[T]) PopLeft() (T, bool) {
	if d.head == nil {
		var zero T
		return zero, false
	}

	popped := d.head
	if popped == d.tail {
		d.head = nil
		d.tail = nil
	} else {
		d.head = popped.Next
	}
	d.size--
	return popped.Detach(), true
}

// PopRight removes the rightmost value and returns it. The boolean is
// false, and the deque is left unchanged, when the deque is empty.
func (d *Deque[T]) PopRight() (T, bool) {
	if d.tail == nil {
		var zero T
		return zero, false
	}

	popped := d.tail
	if popped == d.head {
		d.head = nil
		d.tail = nil
		d.size--
		return popped.Detach(), true
	}

	prev := d.head
	for prev.Next != d.tail {
		prev = prev.Next
	}
	prev.Next = nil
	d.tail = prev
	d.size--
	return popped.Detach(), true
}

// PeekLeft returns the leftmost value without removing it.
func (d *Deque[T]) PeekLeft() (T, bool) {
	if d.head == nil {
		var zero T
		return zero, false
	}
	return d.head.Value, true
}

// PeekRight returns the rightmost value without removing it.
func (d *Deque[T]) PeekRight() (T, bool) {
	if d.tail == nil {
		var zero T
		return zero, false
	}
	return d.tail.Value, true
}

func (d *Deque[T]) IsEmpty() bool {
	return d.head == nil
}

func (d *Deque[T]) Len() int {
	return d.size
}

// All yields the values from left to right.
func (d *Deque[T]) All() iter.Seq[T] {
	return node.Walk(d.head)
}

// PrintAll writes the values from left to right on a single line.
func (d *Deque[T]) PrintAll(w io.Writer) error {
	return render.Line(w, d.All())
}
