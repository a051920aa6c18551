package boolexpr

import (
	"fmt"
)

// eval computes the value of the subtree rooted at id from the current cell
// values. mask is the all-ones value of the registry width.
func (t *tree) eval(id nodeID, mask Value) Value {
	n := &t.nodes[id]
	switch n.kind {
	case constantNode:
		return n.value
	case variableNode:
		return n.variable.Value()
	}

	switch n.operator {
	case NOT:
		if len(n.children) != 1 {
			panic(fmt.Sprintf("complement node %d has %d operands", id, len(n.children)))
		}
		return ^t.eval(n.children[0], mask) & mask
	case AND:
		result := mask
		for _, child := range n.children {
			result &= t.eval(child, mask)
		}
		return result
	case OR:
		var result Value
		for _, child := range n.children {
			result |= t.eval(child, mask)
		}
		return result
	case XOR:
		var result Value
		for _, child := range n.children {
			result ^= t.eval(child, mask)
		}
		return result
	}
	panic(fmt.Sprintf("unknown operator: %v", n.operator))
}

// Eval applies bindings to the formula's variables and evaluates it. Every
// name is checked before any cell is written, so an unknown name leaves the
// registry untouched.
func (f *Formula) Eval(bindings map[string]Value) (Value, error) {
	vars := make([]Variable, 0, len(bindings))
	vals := make([]Value, 0, len(bindings))
	for name, val := range bindings {
		v, err := f.GetVariable(name)
		if err != nil {
			return 0, fmt.Errorf("failed to bind %s: %w", name, err)
		}
		vars = append(vars, v)
		vals = append(vals, val)
	}
	for i, v := range vars {
		v.Set(vals[i])
	}

	return f.tree.eval(f.root, f.registry.mask), nil
}

// Solve is Eval for a Boolean formula with Boolean bindings.
// Example usage:
//
//	f, _ := boolexpr.New("a.b + c")
//	result, _ := f.Solve(map[string]bool{"a": true, "b": false, "c": true})
//	fmt.Println(result) // Output: true
func (f *Formula) Solve(context map[string]bool) (bool, error) {
	bindings := make(map[string]Value, len(context))
	for name, b := range context {
		if b {
			bindings[name] = 1
		} else {
			bindings[name] = 0
		}
	}

	result, err := f.Eval(bindings)
	if err != nil {
		return false, err
	}
	return result != 0, nil
}
