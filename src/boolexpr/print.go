package boolexpr

import (
	"strconv"
	"strings"
)

// String returns the formula in infix form with every operation wrapped in
// parentheses. The result parses back to a formula with the same truth
// table.
func (f *Formula) String() string {
	var sb strings.Builder
	f.tree.writeInfix(&sb, f.root)
	return sb.String()
}

// Structure returns the shape of the tree in prefix form, for instance
// "+(a,.(b,c))" for a+bc. Parenthesised groups are not marked.
func (f *Formula) Structure() string {
	var sb strings.Builder
	f.tree.writePrefix(&sb, f.root)
	return sb.String()
}

func (t *tree) writeInfix(sb *strings.Builder, id nodeID) {
	n := &t.nodes[id]
	switch n.kind {
	case constantNode:
		sb.WriteString(strconv.FormatUint(n.value, 10))
		return
	case variableNode:
		sb.WriteString(n.variable.Name())
		return
	}

	sb.WriteByte('(')
	if n.operator == NOT {
		t.writeInfix(sb, n.children[0])
		sb.WriteString(")'")
		return
	}
	for i, child := range n.children {
		if i > 0 {
			sb.WriteString(n.operator.Symbol())
		}
		t.writeInfix(sb, child)
	}
	sb.WriteByte(')')
}

func (t *tree) writePrefix(sb *strings.Builder, id nodeID) {
	n := &t.nodes[id]
	switch n.kind {
	case constantNode:
		sb.WriteString(strconv.FormatUint(n.value, 10))
		return
	case variableNode:
		sb.WriteString(n.variable.Name())
		return
	}

	sb.WriteString(n.operator.Symbol())
	sb.WriteByte('(')
	for i, child := range n.children {
		if i > 0 {
			sb.WriteByte(',')
		}
		t.writePrefix(sb, child)
	}
	sb.WriteByte(')')
}
