// Package stack provides a LIFO stack built on a singly-linked chain.
package stack

import (
	"io"
	"iter"

	"github.com/openfga/nodekit/internal/node"
	"github.com/openfga/nodekit/internal/render"
)

// Stack is a last-in first-out collection of T. A zero value Stack is empty
// and ready to use. Stack is not safe for concurrent use.
type Stack[T any] struct {
	head *node.Node[T]
	size int
}

// New returns an empty Stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push places value on top of the stack.
func (s *Stack[T]) Push(value T) {
	n := node.New(value)
	n.Next = s.head
	s.head = n
	s.size++
}

// Pop removes the top value and returns it. The boolean is false, and the
// stack is left unchanged, when the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	if s.head == nil {
		var zero T
		return zero, false
	}

	top := s.head
	s.head = top.Next
	s.size--
	return top.Detach(), true
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if s.head == nil {
		var zero T
		return zero, false
	}
	return s.head.Value, true
}

func (s *Stack[T]) IsEmpty() bool {
	return s.head == nil
}

func (s *Stack[T]) Len() int {
	return s.size
}

// All yields the values from top to bottom.
func (s *Stack[T]) All() iter.Seq[T] {
	return node.Walk(s.head)
}

// PrintAll writes the values from top to bottom on a single line.
func (s *Stack[T]) PrintAll(w io.Writer) error {
	return render.Line(w, s.All())
}
