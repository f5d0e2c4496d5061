package output

import (
	"strings"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	Label    string
	Mark     string // optional suffix such as "✗"
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth  int  // 0 = unlimited
	ShowMarks bool // Whether to append node marks
}

// RenderTree renders a tree starting from a single root node. The root's
// label is the first line.
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := []string{root.Label + mark(root, opts)}
	lines = append(lines, RenderTreeLines(root.Children, opts)...)
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders sibling nodes as connector-prefixed lines, one
// per node. RenderTree uses it for the children under its root label.
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func mark(node TreeNode, opts TreeRenderOptions) string {
	if !opts.ShowMarks || node.Mark == "" {
		return ""
	}
	return " " + node.Mark
}

// renderTreeNodes recursively renders tree nodes
func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		lines = append(lines, prefix+connector+node.Label+mark(node, opts))

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}
		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}

	return lines
}
