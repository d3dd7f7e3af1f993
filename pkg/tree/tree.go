// Package tree provides a complete binary tree that is filled level by
// level.
package tree

import (
	"io"
	"iter"

	"github.com/openfga/nodekit/internal/node"
	"github.com/openfga/nodekit/internal/render"
	"github.com/openfga/nodekit/pkg/queue"
)

// LevelOrder is a binary tree that stays complete: values are attached
// breadth-first, left slot before right slot, to the oldest node that still
// has room for a child.
//
// The open nodes are tracked in a FIFO frontier. Completeness depends on
// attaching strictly in frontier order; LevelOrder offers no other
// insertion policy.
//
// A zero value LevelOrder is empty and ready to use. LevelOrder is not safe
// for concurrent use.
type LevelOrder[T any] struct {
	root     *node.TreeNode[T]
	frontier queue.Queue[*node.TreeNode[T]]
	size     int
}

// New returns an empty LevelOrder tree.
func New[T any]() *LevelOrder[T] {
	return &LevelOrder[T]{}
}

// Insert attaches value at the next free slot in level order.
func (t *LevelOrder[T]) Insert(value T) {
	n := node.NewTree(value)
	t.size++

	if t.root == nil {
		t.root = n
		t.frontier.Enqueue(n)
		return
	}

	// the frontier is never empty once the root exists: every insert
	// enqueues one node and dequeues at most one
	parent, _ := t.frontier.Peek()
	if parent.Left == nil {
		parent.Left = n
	} else {
		parent.Right = n
		t.frontier.Dequeue()
	}
	t.frontier.Enqueue(n)
}

func (t *LevelOrder[T]) IsEmpty() bool {
	return t.root == nil
}

func (t *LevelOrder[T]) Len() int {
	return t.size
}

// Height returns the number of levels in the tree.
func (t *LevelOrder[T]) Height() int {
	height := 0
	for n := t.root; n != nil; n = n.Left {
		height++
	}
	return height
}

// Root returns the value at the root of the tree.
func (t *LevelOrder[T]) Root() (T, bool) {
	if t.root == nil {
		var zero T
		return zero, false
	}
	return t.root.Value, true
}

// BreadthFirst yields the values level by level. For a tree built only through
// Insert this is exactly the insertion order.
func (t *LevelOrder[T]) BreadthFirst() iter.Seq[T] {
	return func(yield func(T) bool) {
		if t.root == nil {
			return
		}

		var pending queue.Queue[*node.TreeNode[T]]
		pending.Enqueue(t.root)
		for {
			n, ok := pending.Dequeue()
			if !ok {
				return
			}
			if !yield(n.Value) {
				return
			}
			if n.Left != nil {
				pending.Enqueue(n.Left)
			}
			if n.Right != nil {
				pending.Enqueue(n.Right)
			}
		}
	}
}

// PreOrder yields each node before its left subtree, and the left subtree
// before the right one.
func (t *LevelOrder[T]) PreOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		preOrder(t.root, yield)
	}
}

func preOrder[T any](n *node.TreeNode[T], yield func(T) bool) bool {
	if n == nil {
		return true
	}
	return yield(n.Value) && preOrder(n.Left, yield) && preOrder(n.Right, yield)
}

// PrintAll writes the tree in pre-order, one node per line, indented by
// depth and labelled with the child slot each node occupies.
func (t *LevelOrder[T]) PrintAll(w io.Writer) error {
	return render.Tree(w, t.root)
}
