// Package node provides the linked units that every nodekit structure is
// built from.
package node

import "iter"

// Node is a singly-linked unit. A live Node is owned by exactly one slot:
// a structure's head or tail field, or another Node's Next field.
type Node[T any] struct {
	Value T
	Next  *Node[T]
}

// New allocates a detached Node holding value.
func New[T any](value T) *Node[T] {
	return &Node[T]{Value: value}
}

// Detach clears n's successor and returns its payload. Structures call it
// on removal so the removed node keeps no reference into the chain.
func (n *Node[T]) Detach() T {
	n.Next = nil
	return n.Value
}

// TreeNode is a binary tree unit with a left and a right child slot.
type TreeNode[T any] struct {
	Value T
	Left  *TreeNode[T]
	Right *TreeNode[T]
}

// NewTree allocates a TreeNode with both child slots empty.
func NewTree[T any](value T) *TreeNode[T] {
	return &TreeNode[T]{Value: value}
}

// Full reports whether both child slots are occupied.
func (n *TreeNode[T]) Full() bool {
	return n.Left != nil && n.Right != nil
}

// Walk yields the payloads of the acyclic chain starting at head, stopping
// when a successor is nil.
func Walk[T any](head *Node[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for current := head; current != nil; current = current.Next {
			if !yield(current.Value) {
				return
			}
		}
	}
}

// WalkN yields at most n payloads starting at head. It is safe on cyclic
// chains since it never takes more than n steps.
func WalkN[T any](head *Node[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		current := head
		for i := 0; i < n && current != nil; i++ {
			if !yield(current.Value) {
				return
			}
			current = current.Next
		}
	}
}
