package boolexpr

import (
	"fmt"
)

// Formula is a parsed expression together with the variables it references.
type Formula struct {
	text     string
	registry *Registry
	tree     *tree
	root     nodeID

	variables []Variable
	byName    map[string]Variable
}

// New parses expression against a fresh Boolean registry.
// Example usage:
//
//	formula, err := boolexpr.New("a.b + c'")
//	if err != nil {
//		log.Fatalf("failed to parse formula: %v", err)
//	}
//	fmt.Println(formula.Eval(map[string]boolexpr.Value{"a": 1, "b": 1})) // Output: 1 <nil>
func New(expression string) (*Formula, error) {
	return NewWithRegistry(expression, NewRegistry())
}

// NewWithRegistry parses expression against registry, so that variables with
// the same name in other formulas of the registry share their cells with this
// one. A failed parse leaves the registry as it was.
func NewWithRegistry(expression string, registry *Registry) (*Formula, error) {
	registered := registry.Len()

	p := newParser(expression, registry)
	root, err := p.parse()
	if err != nil {
		registry.truncate(registered)
		return nil, fmt.Errorf("failed to parse formula '%s': %w", expression, err)
	}

	byName := make(map[string]Variable, len(p.variables))
	for _, v := range p.variables {
		byName[v.Name()] = v
	}
	return &Formula{
		text:      expression,
		registry:  registry,
		tree:      p.tree,
		root:      root,
		variables: p.variables,
		byName:    byName,
	}, nil
}

// Variables returns the formula's variables in the order they first appear
// in its text.
func (f *Formula) Variables() []Variable {
	vars := make([]Variable, len(f.variables))
	copy(vars, f.variables)
	return vars
}

func (f *Formula) Registry() *Registry {
	return f.registry
}

// Text returns the expression the formula was parsed from.
func (f *Formula) Text() string {
	return f.text
}

func (f *Formula) HasVariable(name string) bool {
	_, ok := f.byName[name]
	return ok
}

func (f *Formula) GetVariable(name string) (Variable, error) {
	v, ok := f.byName[name]
	if !ok {
		return Variable{}, NewUnknownVariableError(name)
	}
	return v, nil
}

// ZeroAll resets every variable of the formula to 0.
func (f *Formula) ZeroAll() {
	for _, v := range f.variables {
		v.Set(0)
	}
}

// Increment steps the formula's variables to the next assignment, see
// Increment.
func (f *Formula) Increment() bool {
	return Increment(f.variables)
}

// Increment advances vars, read as a binary number whose last element is the
// least significant bit, to the next assignment. It returns false on
// overflow, at which point every variable is back at 0.
func Increment(vars []Variable) bool {
	for i := len(vars) - 1; i >= 0; i-- {
		if vars[i].Value() == 0 {
			vars[i].Set(1)
			return true
		}
		vars[i].Set(0)
	}
	return false
}
