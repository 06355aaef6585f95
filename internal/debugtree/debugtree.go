// Package debugtree prints a tree of components with one node per line,
// indented by depth.
package debugtree

import (
	"fmt"
	"log"
	"strings"
)

const indentUnit = "......"

// Node is anything that can describe itself and list its children
type Node interface {
	String() string
	Children() []Node
}

// Print logs root and every descendant through the standard logger,
// each line prefixed with tag
func Print(tag string, root Node) {
	Fprint(log.Default(), tag, root)
}

// Fprint writes the tree to l
func Fprint(l *log.Logger, tag string, root Node) {
	walk(root, 0, func(depth int, n Node) {
		l.Printf("%s: %s%s", tag, indent(depth), n)
	})
}

// Lines returns the tree rendered without a tag, one entry per node
func Lines(root Node) []string {
	var lines []string
	walk(root, 0, func(depth int, n Node) {
		lines = append(lines, indent(depth)+n.String())
	})
	return lines
}

func walk(n Node, depth int, visit func(int, Node)) {
	if n == nil {
		return
	}
	visit(depth, n)
	for _, child := range n.Children() {
		walk(child, depth+1, visit)
	}
}

func indent(depth int) string {
	return strings.Repeat(indentUnit, depth)
}

// Branch is a simple Node with a label and fixed children
type Branch struct {
	Label string
	Kids  []Node
}

// NewBranch creates a node labelled with a formatted string
func NewBranch(format string, args ...any) *Branch {
	return &Branch{Label: fmt.Sprintf(format, args...)}
}

// Add appends children and returns b for chaining
func (b *Branch) Add(children ...Node) *Branch {
	b.Kids = append(b.Kids, children...)
	return b
}

func (b *Branch) String() string {
	if b == nil {
		return "<nil>"
	}
	return b.Label
}

func (b *Branch) Children() []Node {
	if b == nil {
		return nil
	}
	return b.Kids
}
