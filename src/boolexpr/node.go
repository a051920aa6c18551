package boolexpr

import (
	"fmt"
	"slices"
)

type nodeKind int

const (
	constantNode nodeKind = iota
	variableNode
	operationNode
)

// Operator values double as precedence ranks, lower binds tighter.
type Operator int

const (
	NOT Operator = iota + 1
	AND
	XOR
	OR
)

func (o Operator) Symbol() string {
	switch o {
	case NOT:
		return "'"
	case AND:
		return "."
	case XOR:
		return "^"
	case OR:
		return "+"
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

type nodeID int

const noNode nodeID = -1

type node struct {
	kind     nodeKind
	operator Operator
	value    Value
	variable Variable

	// offset of the token that created the node
	offset int

	// parenthesised operations report precedence 0 so the surrounding
	// expression treats them as leaves
	parenthesised bool

	parent   nodeID
	children []nodeID
}

// tree is an arena of nodes. Parent and child links are indices into nodes,
// so reparenting never copies a subtree.
type tree struct {
	nodes []node
}

func (t *tree) add(n node) nodeID {
	n.parent = noNode
	t.nodes = append(t.nodes, n)
	return nodeID(len(t.nodes) - 1)
}

func (t *tree) newConstant(v Value) nodeID {
	return t.add(node{kind: constantNode, value: v})
}

func (t *tree) newVariable(v Variable) nodeID {
	return t.add(node{kind: variableNode, variable: v})
}

func (t *tree) newOperation(op Operator, offset int) nodeID {
	return t.add(node{kind: operationNode, operator: op, offset: offset})
}

// emptyOperation returns the first operation without operands, or noNode.
func (t *tree) emptyOperation() nodeID {
	for i := range t.nodes {
		if t.nodes[i].kind == operationNode && len(t.nodes[i].children) == 0 {
			return nodeID(i)
		}
	}
	return noNode
}

func (t *tree) precedence(id nodeID) int {
	n := &t.nodes[id]
	if n.kind != operationNode || n.parenthesised {
		return 0
	}
	return int(n.operator)
}

func (t *tree) parent(id nodeID) nodeID {
	return t.nodes[id].parent
}

func (t *tree) parenthesise(id nodeID) {
	t.nodes[id].parenthesised = true
}

// attach appends child to parent's operands.
func (t *tree) attach(parent, child nodeID) {
	p := &t.nodes[parent]
	if p.kind != operationNode {
		panic(fmt.Sprintf("cannot attach operand to non-operation node %d", parent))
	}
	if p.operator == NOT && len(p.children) == 1 {
		panic(fmt.Sprintf("complement node %d already has an operand", parent))
	}
	p.children = append(p.children, child)
	t.nodes[child].parent = parent
}

// replaceChild puts replacement in the operand slot old occupies under
// parent. old is left without a parent.
func (t *tree) replaceChild(parent, old, replacement nodeID) {
	p := &t.nodes[parent]
	i := slices.Index(p.children, old)
	if i < 0 {
		panic(fmt.Sprintf("node %d is not an operand of node %d", old, parent))
	}
	p.children[i] = replacement
	t.nodes[replacement].parent = parent
	t.nodes[old].parent = noNode
}
