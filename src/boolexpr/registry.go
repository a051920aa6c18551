package boolexpr

import (
	"fmt"
)

// Value is the integral type every cell, constant and result is held in.
type Value = uint64

// MaxWidth is the widest value a registry can hold.
const MaxWidth = 64

// Registry owns the storage cells of named variables. Every reference to the
// same name, in one formula or in several formulas parsed against the same
// registry, resolves to the same cell.
type Registry struct {
	width int
	mask  Value

	names []string
	index map[string]int
	cells []Value
}

type RegistryOption func(*Registry)

// WithWidth sets the number of bits a cell holds. The default width of 1 is
// the Boolean instantiation.
func WithWidth(bits int) RegistryOption {
	return func(r *Registry) {
		r.width = bits
	}
}

// NewRegistry creates an empty registry.
// Usage:
//
//	reg := boolexpr.NewRegistry()
//	sum, _ := boolexpr.NewWithRegistry("a+b", reg)
//	product, _ := boolexpr.NewWithRegistry("a.b", reg) // shares a with sum
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		width: 1,
		index: make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.width < 1 || r.width > MaxWidth {
		panic(fmt.Sprintf("registry width must be between 1 and %d, got %d", MaxWidth, r.width))
	}
	if r.width == MaxWidth {
		r.mask = ^Value(0)
	} else {
		r.mask = Value(1)<<r.width - 1
	}
	return r
}

// Intern returns the variable called name, creating a zeroed cell for it if
// this is the first time the name is seen.
func (r *Registry) Intern(name string) Variable {
	if i, ok := r.index[name]; ok {
		return Variable{registry: r, id: i}
	}

	i := len(r.cells)
	r.names = append(r.names, name)
	r.cells = append(r.cells, 0)
	r.index[name] = i
	return Variable{registry: r, id: i}
}

func (r *Registry) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Get returns the variable called name or an UnknownVariableError.
func (r *Registry) Get(name string) (Variable, error) {
	i, ok := r.index[name]
	if !ok {
		return Variable{}, NewUnknownVariableError(name)
	}
	return Variable{registry: r, id: i}, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

func (r *Registry) Len() int {
	return len(r.cells)
}

func (r *Registry) Width() int {
	return r.width
}

// normalize brings v into the registry's value space. A one bit registry
// treats any non-zero value as 1, wider registries truncate to their width.
func (r *Registry) normalize(v Value) Value {
	if r.width == 1 {
		if v != 0 {
			return 1
		}
		return 0
	}
	return v & r.mask
}

// Variable is a lightweight handle on a registry cell. Copies of a Variable
// alias the same cell.
type Variable struct {
	registry *Registry
	id       int
}

func (v Variable) Name() string {
	return v.registry.names[v.id]
}

func (v Variable) Value() Value {
	return v.registry.cells[v.id]
}

// Set stores val, normalised to the registry width, in the variable's cell.
func (v Variable) Set(val Value) {
	v.registry.cells[v.id] = v.registry.normalize(val)
}

// Registry returns the registry owning the variable's cell.
func (v Variable) Registry() *Registry {
	return v.registry
}

func (v Variable) String() string {
	return fmt.Sprintf("%s=%d", v.Name(), v.Value())
}

// truncate drops every variable registered after the first n.
func (r *Registry) truncate(n int) {
	for _, name := range r.names[n:] {
		delete(r.index, name)
	}
	r.names = r.names[:n]
	r.cells = r.cells[:n]
}
