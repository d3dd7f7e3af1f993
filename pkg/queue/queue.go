// Package queue provides a FIFO queue built on a singly-linked chain with
// head and tail references.
package queue

import (
	"io"
	"iter"

	"github.com/openfga/nodekit/internal/node"
	"github.com/openfga/nodekit/internal/render"
)

// Queue is a first-in first-out collection of T. Enqueue and Dequeue are
// both O(1). A zero value Queue is empty and ready to use. Queue is not
// safe for concurrent use.
type Queue[T any] struct {
	// head is the oldest value and tail the newest. Either both are nil or
	// neither is.
	head *node.Node[T]
	tail *node.Node[T]
	size int
}

// New returns an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Enqueue appends value at the back of the queue.
func (q *Queue[T]) Enqueue(value T) {
	n := node.New(value)
	if q.tail == nil {
		q.head = n
		q.tail = n
	} else {
		q.tail.Next = n
		q.tail = n
	}
	q.size++
}

// Dequeue removes the front value and returns it. The boolean is false, and
// the queue is left unchanged, when the queue is empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	if q.head == nil {
		var zero T
		return zero, false
	}

	front := q.head
	q.head = front.Next
	if q.head == nil {
		q.tail = nil
	}
	q.size--
	return front.Detach(), true
}

// Peek returns the front value without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.head == nil {
		var zero T
		return zero, false
	}
	return q.head.Value, true
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head == nil
}

func (q *Queue[T]) Len() int {
	return q.size
}

// All yields the values from front to back.
func (q *Queue[T]) All() iter.Seq[T] {
	return node.Walk(q.head)
}

// PrintAll writes the values from front to back on a single line.
func (q *Queue[T]) PrintAll(w io.Writer) error {
	return render.Line(w, q.All())
}
