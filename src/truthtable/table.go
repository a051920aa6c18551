package truthtable

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/eriklarko/truth-table/src/boolexpr"
	"github.com/samber/lo"
)

// DefaultMaxVariables matches the largest table the row index can address on
// every platform.
const DefaultMaxVariables = 30

var (
	ErrTooManyVariables = errors.New("too many variables")
	ErrNoFormulas       = errors.New("no formulas to tabulate")
)

// Row is one assignment of the table's columns and the value of every
// formula at that assignment.
type Row struct {
	Index      int
	Assignment []boolexpr.Value
	Results    []boolexpr.Value
}

// Table enumerates every assignment of the variables of one or more formulas.
type Table struct {
	formulas []*boolexpr.Formula
	columns  []boolexpr.Variable

	// bindingColumns[i] lists, for formula i, the column index of each of
	// the formula's variables
	bindingColumns [][]int

	maxVariables int
	next         int
}

type Option func(*Table)

// WithMaxVariables overrides DefaultMaxVariables. Values above 62 are capped.
func WithMaxVariables(n int) Option {
	return func(t *Table) {
		t.maxVariables = min(n, 62)
	}
}

// New creates a table for formulas.
//
// With a single formula the columns are its variables in the order they
// first appear in its text. With several formulas the columns are the union
// of their variable names in lexicographic order.
func New(formulas []*boolexpr.Formula, opts ...Option) (*Table, error) {
	if len(formulas) == 0 {
		return nil, ErrNoFormulas
	}

	t := &Table{
		formulas:     formulas,
		maxVariables: DefaultMaxVariables,
	}
	for _, opt := range opts {
		opt(t)
	}

	if len(formulas) == 1 {
		t.columns = formulas[0].Variables()
	} else {
		columns, err := unionColumns(formulas)
		if err != nil {
			return nil, err
		}
		t.columns = columns
	}

	if len(t.columns) > t.maxVariables {
		return nil, fmt.Errorf("%w: %d variables, at most %d are supported", ErrTooManyVariables, len(t.columns), t.maxVariables)
	}

	columnIndex := make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		columnIndex[c.Name()] = i
	}
	t.bindingColumns = lo.Map(formulas, func(f *boolexpr.Formula, _ int) []int {
		return lo.Map(f.Variables(), func(v boolexpr.Variable, _ int) int {
			return columnIndex[v.Name()]
		})
	})

	t.Reset()
	return t, nil
}

// unionColumns returns cells for the sorted union of the formulas' variable
// names. The cells are the shared registry's own when every formula was
// parsed against the same registry, otherwise a private registry holds them.
func unionColumns(formulas []*boolexpr.Formula) ([]boolexpr.Variable, error) {
	names := lo.Uniq(lo.FlatMap(formulas, func(f *boolexpr.Formula, _ int) []string {
		return lo.Map(f.Variables(), func(v boolexpr.Variable, _ int) string {
			return v.Name()
		})
	}))
	sort.Strings(names)

	registry := formulas[0].Registry()
	shared := lo.EveryBy(formulas, func(f *boolexpr.Formula) bool {
		return f.Registry() == registry
	})
	if !shared {
		registry = boolexpr.NewRegistry(boolexpr.WithWidth(maxWidth(formulas)))
	}

	columns := make([]boolexpr.Variable, 0, len(names))
	for _, name := range names {
		if !shared {
			registry.Intern(name)
		}
		v, err := registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up column %s: %w", name, err)
		}
		columns = append(columns, v)
	}
	return columns, nil
}

func maxWidth(formulas []*boolexpr.Formula) int {
	return lo.Max(lo.Map(formulas, func(f *boolexpr.Formula, _ int) int {
		return f.Registry().Width()
	}))
}

// Width returns the widest registry width among the formulas, which bounds
// every value in the table.
func (t *Table) Width() int {
	return maxWidth(t.formulas)
}

// Columns returns the variables of the table in column order.
func (t *Table) Columns() []boolexpr.Variable {
	columns := make([]boolexpr.Variable, len(t.columns))
	copy(columns, t.columns)
	return columns
}

func (t *Table) ColumnNames() []string {
	return lo.Map(t.columns, func(v boolexpr.Variable, _ int) string {
		return v.Name()
	})
}

func (t *Table) Formulas() []*boolexpr.Formula {
	return t.formulas
}

// Len returns the number of rows, 2^len(Columns()).
func (t *Table) Len() int {
	return 1 << len(t.columns)
}

// Reset zeros every column so the next call to Next returns row 0.
func (t *Table) Reset() {
	for _, c := range t.columns {
		c.Set(0)
	}
	t.next = 0
}

// Next evaluates the row at the current assignment and advances the columns
// to the following one. It returns false once every row has been produced.
func (t *Table) Next() (Row, bool) {
	if t.next >= t.Len() {
		return Row{}, false
	}

	row := Row{
		Index: t.next,
		Assignment: lo.Map(t.columns, func(c boolexpr.Variable, _ int) boolexpr.Value {
			return c.Value()
		}),
		Results: make([]boolexpr.Value, len(t.formulas)),
	}
	for i, f := range t.formulas {
		row.Results[i] = t.evalFormula(i, f, row.Assignment)
	}

	t.next++
	boolexpr.Increment(t.columns)
	return row, true
}

func (t *Table) evalFormula(i int, f *boolexpr.Formula, assignment []boolexpr.Value) boolexpr.Value {
	vars := f.Variables()
	bindings := make(map[string]boolexpr.Value, len(vars))
	for j, column := range t.bindingColumns[i] {
		bindings[vars[j].Name()] = assignment[column]
	}

	result, err := f.Eval(bindings)
	if err != nil {
		// bindings are built from the formula's own variables
		panic(fmt.Sprintf("failed to evaluate formula '%s': %v", f.Text(), err))
	}
	return result
}

// Rows returns every row of the table, starting over from the all zero
// assignment each time the sequence is iterated.
func (t *Table) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		t.Reset()
		for {
			row, ok := t.Next()
			if !ok || !yield(row) {
				return
			}
		}
	}
}

// Collect returns all rows of the table.
func (t *Table) Collect() []Row {
	rows := make([]Row, 0, t.Len())
	for row := range t.Rows() {
		rows = append(rows, row)
	}
	return rows
}

// Snapshot returns the row's assignment keyed by column name.
func (t *Table) Snapshot(row Row) map[string]boolexpr.Value {
	return lo.SliceToMap(lo.Range(len(t.columns)), func(i int) (string, boolexpr.Value) {
		return t.columns[i].Name(), row.Assignment[i]
	})
}
