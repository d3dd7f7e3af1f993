// Package render holds the printers shared by the nodekit structures.
// Printers only read; they never modify the structure being rendered.
package render

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/openfga/nodekit/internal/node"
)

const (
	// Separator is written between consecutive chain values.
	Separator = " -> "

	// Empty is written in place of a chain or tree that holds no values.
	Empty = "(empty)"

	indent = "  "
)

// Line writes values on a single line joined by Separator and terminated by
// a newline.
func Line[T any](w io.Writer, values iter.Seq[T]) error {
	var sb strings.Builder
	first := true
	for v := range values {
		if !first {
			sb.WriteString(Separator)
		}
		first = false
		fmt.Fprint(&sb, v)
	}
	if first {
		sb.WriteString(Empty)
	}
	sb.WriteByte('\n')

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("render line: %w", err)
	}
	return nil
}

// Tree writes root and its descendants in pre-order, one node per line.
// Each line is indented by depth and labelled with the slot the node
// occupies in its parent.
func Tree[T any](w io.Writer, root *node.TreeNode[T]) error {
	var sb strings.Builder
	if root == nil {
		sb.WriteString(Empty)
		sb.WriteByte('\n')
	} else {
		writeSubtree(&sb, root, "root", 0)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("render tree: %w", err)
	}
	return nil
}

func writeSubtree[T any](sb *strings.Builder, n *node.TreeNode[T], label string, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(sb, "%s: %v\n", label, n.Value)
	writeSubtree(sb, n.Left, "L", depth+1)
	writeSubtree(sb, n.Right, "R", depth+1)
}
