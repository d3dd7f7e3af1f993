package tree

import (
	"bytes"
	"math/bits"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openfga/nodekit/internal/node"
)

// levels groups the tree's values by depth.
func levels[T any](tr *LevelOrder[T]) [][]T {
	var out [][]T
	current := []*node.TreeNode[T]{}
	if tr.root != nil {
		current = append(current, tr.root)
	}
	for len(current) > 0 {
		var values []T
		var next []*node.TreeNode[T]
		for _, n := range current {
			values = append(values, n.Value)
			if n.Left != nil {
				next = append(next, n.Left)
			}
			if n.Right != nil {
				next = append(next, n.Right)
			}
		}
		out = append(out, values)
		current = next
	}
	return out
}

// checkComplete asserts that the node at breadth-first position i has its
// children at positions 2i+1 and 2i+2, which holds only for complete trees.
func checkComplete[T any](t *testing.T, tr *LevelOrder[T]) {
	t.Helper()

	var positions []*node.TreeNode[T]
	if tr.root != nil {
		positions = append(positions, tr.root)
	}
	for i := 0; i < len(positions); i++ {
		if l := positions[i].Left; l != nil {
			positions = append(positions, l)
		}
		if r := positions[i].Right; r != nil {
			positions = append(positions, r)
		}
	}
	require.Len(t, positions, tr.size)

	for i, n := range positions {
		left, right := 2*i+1, 2*i+2
		if left < len(positions) {
			require.Same(t, positions[left], n.Left, "node %d left child", i)
		} else {
			require.Nil(t, n.Left, "node %d left child", i)
		}
		if right < len(positions) {
			require.Same(t, positions[right], n.Right, "node %d right child", i)
		} else {
			require.Nil(t, n.Right, "node %d right child", i)
		}
	}

	// every node still in the frontier has at least one open slot
	for n := range tr.frontier.All() {
		require.False(t, n.Full())
	}
}

func TestInsert(t *testing.T) {
	t.Run("fifteen_values_fill_four_levels", func(t *testing.T) {
		tr := New[int]()
		for i := 1; i <= 15; i++ {
			tr.Insert(i)
			checkComplete(t, tr)
		}

		require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, slices.Collect(tr.BreadthFirst()))
		require.Equal(t, [][]int{
			{1},
			{2, 3},
			{4, 5, 6, 7},
			{8, 9, 10, 11, 12, 13, 14, 15},
		}, levels(tr))
		require.Equal(t, 4, tr.Height())

		root, ok := tr.Root()
		require.True(t, ok)
		require.Equal(t, 1, root)
	})

	t.Run("empty_tree", func(t *testing.T) {
		var tr LevelOrder[string]
		require.True(t, tr.IsEmpty())
		require.Equal(t, 0, tr.Height())
		require.Empty(t, slices.Collect(tr.BreadthFirst()))
		_, ok := tr.Root()
		require.False(t, ok)
	})

	t.Run("single_value_is_root_and_frontier", func(t *testing.T) {
		tr := New[string]()
		tr.Insert("root")
		require.Equal(t, 1, tr.frontier.Len())
		front, ok := tr.frontier.Peek()
		require.True(t, ok)
		require.Same(t, tr.root, front)
	})

	t.Run("left_filled_before_right_and_full_nodes_retire", func(t *testing.T) {
		tr := New[int]()
		tr.Insert(1)
		tr.Insert(2)
		require.NotNil(t, tr.root.Left)
		require.Nil(t, tr.root.Right)
		front, _ := tr.frontier.Peek()
		require.Same(t, tr.root, front)

		tr.Insert(3)
		require.True(t, tr.root.Full())
		front, _ = tr.frontier.Peek()
		require.Same(t, tr.root.Left, front)
	})
}

func TestCompletenessForAnySize(t *testing.T) {
	for size := 1; size <= 64; size++ {
		tr := New[int]()
		for i := range size {
			tr.Insert(i)
		}
		checkComplete(t, tr)

		expected := make([]int, size)
		for i := range expected {
			expected[i] = i
		}
		require.Equal(t, expected, slices.Collect(tr.BreadthFirst()))

		// every level above floor(log2 N) is full
		full := bits.Len(uint(size)) - 1
		for depth, values := range levels(tr) {
			if depth < full {
				require.Len(t, values, 1<<depth, "size %d depth %d", size, depth)
			}
		}
		require.Equal(t, bits.Len(uint(size)), tr.Height())
	}
}

func TestPreOrder(t *testing.T) {
	tr := New[int]()
	for i := 1; i <= 7; i++ {
		tr.Insert(i)
	}
	require.Equal(t, []int{1, 2, 4, 5, 3, 6, 7}, slices.Collect(tr.PreOrder()))

	var got []int
	for v := range tr.PreOrder() {
		got = append(got, v)
		if v == 4 {
			break
		}
	}
	require.Equal(t, []int{1, 2, 4}, got)
}

func TestPrintAll(t *testing.T) {
	tr := New[int]()
	var buf bytes.Buffer
	require.NoError(t, tr.PrintAll(&buf))
	require.Equal(t, "(empty)\n", buf.String())

	for i := 1; i <= 5; i++ {
		tr.Insert(i)
	}

	expected := "root: 1\n" +
		"  L: 2\n" +
		"    L: 4\n" +
		"    R: 5\n" +
		"  R: 3\n"

	buf.Reset()
	require.NoError(t, tr.PrintAll(&buf))
	require.Equal(t, expected, buf.String())

	// printing does not disturb the frontier
	buf.Reset()
	require.NoError(t, tr.PrintAll(&buf))
	require.Equal(t, expected, buf.String())
	tr.Insert(6)
	require.Equal(t, 6, tr.root.Right.Left.Value)
	checkComplete(t, tr)
}
