package truthtable_test

import (
	"testing"

	"github.com/eriklarko/truth-table/src/boolexpr"
	"github.com/eriklarko/truth-table/src/truthtable"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type v = boolexpr.Value

func parseAll(t *testing.T, registry *boolexpr.Registry, expressions ...string) []*boolexpr.Formula {
	t.Helper()

	return lo.Map(expressions, func(expression string, _ int) *boolexpr.Formula {
		f, err := boolexpr.NewWithRegistry(expression, registry)
		require.NoError(t, err)
		return f
	})
}

func TestSingleFormulaRows(t *testing.T) {
	formulas := parseAll(t, boolexpr.NewRegistry(), "a.b+a'")
	table, err := truthtable.New(formulas)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, table.ColumnNames())
	assert.Equal(t, 4, table.Len())

	rows := table.Collect()
	assert.Equal(t, []truthtable.Row{
		{Index: 0, Assignment: []v{0, 0}, Results: []v{1}},
		{Index: 1, Assignment: []v{0, 1}, Results: []v{1}},
		{Index: 2, Assignment: []v{1, 0}, Results: []v{0}},
		{Index: 3, Assignment: []v{1, 1}, Results: []v{1}},
	}, rows)
}

func TestRowsMatchDirectEvaluation(t *testing.T) {
	expressions := []string{
		"a.b+c",
		"(a+b).c",
		"a^b^c^d",
		"x1'x2 + x3(x1+x2')",
	}

	for _, expression := range expressions {
		t.Run(expression, func(t *testing.T) {
			formula, err := boolexpr.New(expression)
			require.NoError(t, err)
			table, err := truthtable.New([]*boolexpr.Formula{formula})
			require.NoError(t, err)

			direct, err := boolexpr.New(expression)
			require.NoError(t, err)

			count := 0
			for row := range table.Rows() {
				expected, err := direct.Eval(table.Snapshot(row))
				require.NoError(t, err)
				assert.Equal(t, expected, row.Results[0], "row %d", row.Index)
				count++
			}
			assert.Equal(t, 1<<len(formula.Variables()), count)
		})
	}
}

func TestColumnOrder(t *testing.T) {
	t.Run("single formula keeps discovery order", func(t *testing.T) {
		table, err := truthtable.New(parseAll(t, boolexpr.NewRegistry(), "c+b.a"))
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, table.ColumnNames())
	})

	t.Run("several formulas are sorted by name", func(t *testing.T) {
		table, err := truthtable.New(parseAll(t, boolexpr.NewRegistry(), "c+b", "b.a", "d"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, table.ColumnNames())
	})
}

func TestSharedVariables(t *testing.T) {
	reg := boolexpr.NewRegistry()
	formulas := parseAll(t, reg, "a+b", "a.b", "b'")
	table, err := truthtable.New(formulas)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, table.ColumnNames())

	rows := table.Collect()
	require.Len(t, rows, 4)
	assert.Equal(t, [][]v{{0, 0, 1}, {1, 0, 0}, {1, 0, 1}, {1, 1, 0}}, lo.Map(rows, func(row truthtable.Row, _ int) []v {
		return row.Results
	}))

	// columns alias the shared registry's cells
	a, err := reg.Get("a")
	require.NoError(t, err)
	table.Reset()
	table.Next()
	table.Next()
	row, ok := table.Next()
	require.True(t, ok)
	assert.Equal(t, []v{1, 0}, row.Assignment)
	assert.Equal(t, v(1), a.Value(), "row 3 is the current assignment")
}

func TestSeparateRegistries(t *testing.T) {
	sum, err := boolexpr.New("a+b")
	require.NoError(t, err)
	product, err := boolexpr.New("b.c")
	require.NoError(t, err)

	table, err := truthtable.New([]*boolexpr.Formula{sum, product})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, table.ColumnNames())

	rows := table.Collect()
	require.Len(t, rows, 8)
	for _, row := range rows {
		a, b, c := row.Assignment[0], row.Assignment[1], row.Assignment[2]
		assert.Equal(t, a|b, row.Results[0], "row %d", row.Index)
		assert.Equal(t, b&c, row.Results[1], "row %d", row.Index)
	}
}

func TestSeparateRegistriesWithMixedWidths(t *testing.T) {
	bit, err := boolexpr.New("a.b")
	require.NoError(t, err)
	octet, err := boolexpr.NewWithRegistry("b'", boolexpr.NewRegistry(boolexpr.WithWidth(8)))
	require.NoError(t, err)

	table, err := truthtable.New([]*boolexpr.Formula{bit, octet})
	require.NoError(t, err)
	assert.Equal(t, 8, table.Width())
	assert.Equal(t, 8, table.Columns()[0].Registry().Width())

	assert.Equal(t, []truthtable.Row{
		{Index: 0, Assignment: []v{0, 0}, Results: []v{0, 255}},
		{Index: 1, Assignment: []v{0, 1}, Results: []v{0, 254}},
		{Index: 2, Assignment: []v{1, 0}, Results: []v{0, 255}},
		{Index: 3, Assignment: []v{1, 1}, Results: []v{1, 254}},
	}, table.Collect())
}

func TestRowsIsRestartable(t *testing.T) {
	table, err := truthtable.New(parseAll(t, boolexpr.NewRegistry(), "a^b"))
	require.NoError(t, err)

	first := table.Collect()

	// stop part way through, then iterate again from the start
	for row := range table.Rows() {
		if row.Index == 1 {
			break
		}
	}
	assert.Equal(t, first, table.Collect())

	_, ok := table.Next()
	assert.False(t, ok, "Collect leaves the table exhausted")
}

func TestConstantFormula(t *testing.T) {
	table, err := truthtable.New(parseAll(t, boolexpr.NewRegistry(), "1+0"))
	require.NoError(t, err)

	assert.Empty(t, table.ColumnNames())
	assert.Equal(t, []truthtable.Row{{Index: 0, Assignment: []v{}, Results: []v{1}}}, table.Collect())
}

func TestTooManyVariables(t *testing.T) {
	table, err := truthtable.New(parseAll(t, boolexpr.NewRegistry(), "a+b+c"), truthtable.WithMaxVariables(2))
	assert.Nil(t, table)
	assert.ErrorIs(t, err, truthtable.ErrTooManyVariables)

	_, err = truthtable.New(parseAll(t, boolexpr.NewRegistry(), "a+b", "c"), truthtable.WithMaxVariables(2))
	assert.ErrorIs(t, err, truthtable.ErrTooManyVariables)

	_, err = truthtable.New(parseAll(t, boolexpr.NewRegistry(), "a+b+c"), truthtable.WithMaxVariables(3))
	assert.NoError(t, err)
}

func TestNoFormulas(t *testing.T) {
	_, err := truthtable.New(nil)
	assert.ErrorIs(t, err, truthtable.ErrNoFormulas)
}

func TestSummarize(t *testing.T) {
	table, err := truthtable.New(parseAll(t, boolexpr.NewRegistry(), "a.b", "a+b", "a.a'"))
	require.NoError(t, err)

	summaries, err := truthtable.Summarize(table)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "a.b", summaries[0].Formula)
	assert.Equal(t, []int{3}, summaries[0].Minterms)
	assert.Equal(t, 1, summaries[0].TrueRows)
	assert.InDelta(t, 0.25, summaries[0].Density, 1e-9)

	assert.Equal(t, []int{1, 2, 3}, summaries[1].Minterms)
	assert.InDelta(t, 0.75, summaries[1].Density, 1e-9)

	assert.Empty(t, summaries[2].Minterms)
	assert.Equal(t, 0, summaries[2].TrueRows)
	assert.InDelta(t, 0, summaries[2].Density, 1e-9)
}
