package boolexpr

// Fold walks the formula bottom-up, combining the results of each
// operation's operands with operation. It lets other packages translate a
// formula without access to the tree.
func Fold[T any](f *Formula, constant func(Value) T, variable func(Variable) T, operation func(Operator, []T) T) T {
	var walk func(id nodeID) T
	walk = func(id nodeID) T {
		n := &f.tree.nodes[id]
		switch n.kind {
		case constantNode:
			return constant(n.value)
		case variableNode:
			return variable(n.variable)
		}

		operands := make([]T, len(n.children))
		for i, child := range n.children {
			operands[i] = walk(child)
		}
		return operation(n.operator, operands)
	}
	return walk(f.root)
}
