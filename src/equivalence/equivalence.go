// Package equivalence compares Boolean formulas symbolically with binary
// decision diagrams instead of enumerating their truth tables.
package equivalence

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/dalzilio/rudd"
	"github.com/eriklarko/truth-table/src/boolexpr"
	"github.com/samber/lo"
)

// ErrNotBoolean is returned for formulas parsed against a registry wider
// than one bit.
var ErrNotBoolean = errors.New("formula is not Boolean")

// kernel is the part of the rudd API the compiler uses.
type kernel interface {
	Error() string
	From(v bool) rudd.Node
	False() rudd.Node
	Ithvar(i int) rudd.Node
	Not(n rudd.Node) rudd.Node
	And(n ...rudd.Node) rudd.Node
	Or(n ...rudd.Node) rudd.Node
	Apply(left rudd.Node, right rudd.Node, op rudd.Operator) rudd.Node
	Equal(low, high rudd.Node) bool
	Satcount(n rudd.Node) *big.Int
}

// diagram holds a BDD whose variable levels are assigned to names.
type diagram struct {
	bdd    kernel
	levels map[string]int
}

func newDiagram(formulas ...*boolexpr.Formula) (*diagram, error) {
	for _, f := range formulas {
		if f.Registry().Width() != 1 {
			return nil, fmt.Errorf("%w: '%s' uses %d bit values", ErrNotBoolean, f.Text(), f.Registry().Width())
		}
	}

	names := lo.Uniq(lo.FlatMap(formulas, func(f *boolexpr.Formula, _ int) []string {
		return lo.Map(f.Variables(), func(v boolexpr.Variable, _ int) string {
			return v.Name()
		})
	}))
	sort.Strings(names)

	bdd, err := rudd.New(max(len(names), 1))
	if err != nil {
		return nil, fmt.Errorf("failed to create BDD for %d variables: %w", len(names), err)
	}
	levels := make(map[string]int, len(names))
	for i, name := range names {
		levels[name] = i
	}
	return &diagram{bdd: bdd, levels: levels}, nil
}

func (d *diagram) compile(f *boolexpr.Formula) (rudd.Node, error) {
	n := boolexpr.Fold(f,
		func(v boolexpr.Value) rudd.Node {
			return d.bdd.From(v != 0)
		},
		func(v boolexpr.Variable) rudd.Node {
			return d.bdd.Ithvar(d.levels[v.Name()])
		},
		func(op boolexpr.Operator, operands []rudd.Node) rudd.Node {
			switch op {
			case boolexpr.NOT:
				return d.bdd.Not(operands[0])
			case boolexpr.AND:
				return d.bdd.And(operands...)
			case boolexpr.OR:
				return d.bdd.Or(operands...)
			}
			result := d.bdd.False()
			for _, operand := range operands {
				result = d.bdd.Apply(result, operand, rudd.OPxor)
			}
			return result
		},
	)
	if msg := d.bdd.Error(); msg != "" {
		return nil, fmt.Errorf("failed to build BDD for '%s': %s", f.Text(), msg)
	}
	return n, nil
}

// Equivalent reports whether a and b have the same value under every
// assignment of the union of their variables.
func Equivalent(a, b *boolexpr.Formula) (bool, error) {
	d, err := newDiagram(a, b)
	if err != nil {
		return false, err
	}

	na, err := d.compile(a)
	if err != nil {
		return false, err
	}
	nb, err := d.compile(b)
	if err != nil {
		return false, err
	}
	return d.bdd.Equal(na, nb), nil
}

// SatCount returns the number of assignments of f's variables that make f
// true.
func SatCount(f *boolexpr.Formula) (*big.Int, error) {
	d, err := newDiagram(f)
	if err != nil {
		return nil, err
	}

	n, err := d.compile(f)
	if err != nil {
		return nil, err
	}
	count := d.bdd.Satcount(n)
	if len(f.Variables()) == 0 {
		// the diagram always has at least one level, which the formula
		// doesn't depend on
		count.Rsh(count, 1)
	}
	return count, nil
}
