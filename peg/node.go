package peg

import (
	"fmt"
	"strings"
)

// Node is a node of a concrete parse tree.
//
// Rule is the name of the grammar rule which produced the node, or empty for
// nodes produced by sequences, options and repetitions. Start and End are byte
// offsets into the parsed text.
type Node struct {
	Rule     string
	Start    int
	End      int
	Children []*Node
	source   string
}

// Text returns the portion of the input matched by n.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.source[n.Start:n.End]
}

// Source returns the complete input text n is part of.
func (n *Node) Source() string {
	return n.source
}

// Named returns the nearest named descendants of n, in input order.
// Anonymous children are looked through; named children are returned
// without looking into them.
func (n *Node) Named() []*Node {
	var named []*Node
	return n.collectNamed(named)
}

func (n *Node) collectNamed(named []*Node) []*Node {
	for _, ch := range n.Children {
		if ch.Rule != "" {
			named = append(named, ch)
		} else {
			named = ch.collectNamed(named)
		}
	}
	return named
}

// String returns a short representation of n for debugging.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	rule := n.Rule
	if rule == "" {
		rule = "_"
	}
	return fmt.Sprintf("%s[%d:%d]%q", rule, n.Start, n.End, n.Text())
}

// Dump returns an indented representation of the tree below n, listing
// named nodes only.
func (n *Node) Dump() string {
	var b strings.Builder
	var dump func(*Node, int)
	dump = func(node *Node, indent int) {
		b.WriteString(strings.Repeat("  ", indent))
		b.WriteString(node.String())
		b.WriteByte('\n')
		for _, ch := range node.Named() {
			dump(ch, indent+1)
		}
	}
	dump(n, 0)
	return b.String()
}
