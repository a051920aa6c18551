package boolexpr_test

import (
	"testing"

	"github.com/eriklarko/truth-table/src/boolexpr"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evalCase struct {
	bindings map[string]boolexpr.Value
	expected boolexpr.Value
}

func TestEval(t *testing.T) {
	tests := map[string][]evalCase{
		"a.b+c": {
			{map[string]boolexpr.Value{"a": 1, "b": 0, "c": 1}, 1},
			{map[string]boolexpr.Value{"a": 1, "b": 1, "c": 0}, 1},
			{map[string]boolexpr.Value{"a": 0, "b": 1, "c": 0}, 0},
		},
		"(a+b).c": {
			{map[string]boolexpr.Value{"a": 0, "b": 1, "c": 1}, 1},
			{map[string]boolexpr.Value{"a": 0, "b": 0, "c": 1}, 0},
			{map[string]boolexpr.Value{"a": 1, "b": 0, "c": 0}, 0},
		},
		"a+b.c": {
			{map[string]boolexpr.Value{"a": 1, "b": 0, "c": 0}, 1},
		},
		"a'": {
			{map[string]boolexpr.Value{"a": 0}, 1},
			{map[string]boolexpr.Value{"a": 1}, 0},
		},
		"a''": {
			{map[string]boolexpr.Value{"a": 0}, 0},
			{map[string]boolexpr.Value{"a": 1}, 1},
		},
		"a^b": {
			{map[string]boolexpr.Value{"a": 0, "b": 0}, 0},
			{map[string]boolexpr.Value{"a": 0, "b": 1}, 1},
			{map[string]boolexpr.Value{"a": 1, "b": 0}, 1},
			{map[string]boolexpr.Value{"a": 1, "b": 1}, 0},
		},
		"a^b^c": {
			{map[string]boolexpr.Value{"a": 1, "b": 1, "c": 1}, 1},
			{map[string]boolexpr.Value{"a": 1, "b": 1, "c": 0}, 0},
		},
		"ab'": {
			{map[string]boolexpr.Value{"a": 1, "b": 0}, 1},
			{map[string]boolexpr.Value{"a": 1, "b": 1}, 0},
		},
		"a.a'": {
			{map[string]boolexpr.Value{"a": 0}, 0},
			{map[string]boolexpr.Value{"a": 1}, 0},
		},
	}

	for expression, cases := range tests {
		t.Run(expression, func(t *testing.T) {
			formula, err := boolexpr.New(expression)
			require.NoError(t, err)

			for _, c := range cases {
				result, err := formula.Eval(c.bindings)
				require.NoError(t, err)
				assert.Equal(t, c.expected, result, "bindings %v", c.bindings)
			}
		})
	}
}

func TestConstants(t *testing.T) {
	tests := map[string]boolexpr.Value{
		"1":     1,
		"0":     0,
		"1'":    0,
		"0'":    1,
		"2":     1, // non-zero is true in a Boolean registry
		"1.0":   0,
		"0+1":   1,
		"1^1":   0,
		"(0)'1": 1,
	}

	for expression, expected := range tests {
		t.Run(expression, func(t *testing.T) {
			formula, err := boolexpr.New(expression)
			require.NoError(t, err)
			assert.Empty(t, formula.Variables())

			result, err := formula.Eval(nil)
			require.NoError(t, err)
			assert.Equal(t, expected, result)
		})
	}
}

func TestWideRegistry(t *testing.T) {
	reg := boolexpr.NewRegistry(boolexpr.WithWidth(8))

	tests := map[string]evalCase{
		"a'":  {map[string]boolexpr.Value{"a": 1}, 0xfe},
		"a.b": {map[string]boolexpr.Value{"a": 0xf0, "b": 0x3c}, 0x30},
		"a+b": {map[string]boolexpr.Value{"a": 0xf0, "b": 0x0f}, 0xff},
		"a^b": {map[string]boolexpr.Value{"a": 0xff, "b": 0x0f}, 0xf0},
		"300": {nil, 300 & 0xff},
		"a":   {map[string]boolexpr.Value{"a": 0x1ff}, 0xff},
	}

	for expression, c := range tests {
		t.Run(expression, func(t *testing.T) {
			formula, err := boolexpr.NewWithRegistry(expression, reg)
			require.NoError(t, err)

			result, err := formula.Eval(c.bindings)
			require.NoError(t, err)
			assert.Equal(t, c.expected, result)
		})
	}
}

func TestSolve(t *testing.T) {
	formula, err := boolexpr.New("A.B + C'")
	require.NoError(t, err)

	result, err := formula.Solve(map[string]bool{"A": true, "B": true, "C": true})
	require.NoError(t, err)
	assert.True(t, result)

	result, err = formula.Solve(map[string]bool{"A": true, "B": false, "C": true})
	require.NoError(t, err)
	assert.False(t, result)
}

func TestUnknownVariable(t *testing.T) {
	formula, err := boolexpr.New("a+b")
	require.NoError(t, err)

	_, err = formula.Eval(map[string]boolexpr.Value{"a": 1, "z": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, boolexpr.ErrNotFound)
	assert.Contains(t, err.Error(), "unknown variable")
	assert.Contains(t, err.Error(), "z")

	var errUnknownVar *boolexpr.UnknownVariableError
	require.ErrorAs(t, err, &errUnknownVar)
	assert.Equal(t, "z", errUnknownVar.VariableName)

	// nothing was bound
	a, err := formula.GetVariable("a")
	require.NoError(t, err)
	assert.Equal(t, boolexpr.Value(0), a.Value())

	_, err = formula.GetVariable("z")
	assert.ErrorIs(t, err, boolexpr.ErrNotFound)
	assert.False(t, formula.HasVariable("z"))
	assert.True(t, formula.HasVariable("b"))
}

func TestVariableOrder(t *testing.T) {
	formula, err := boolexpr.New("c + a.b + a + b1")
	require.NoError(t, err)

	names := lo.Map(formula.Variables(), func(v boolexpr.Variable, _ int) string {
		return v.Name()
	})
	assert.Equal(t, []string{"c", "a", "b", "b1"}, names)
}

func TestRepeatedVariableSharesCell(t *testing.T) {
	formula, err := boolexpr.New("a+a")
	require.NoError(t, err)
	require.Len(t, formula.Variables(), 1)

	a, err := formula.GetVariable("a")
	require.NoError(t, err)
	a.Set(1)

	result, err := formula.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, boolexpr.Value(1), result)

	// a.a' is only satisfiable if the two occurrences were separate cells
	contradiction, err := boolexpr.New("a.a'")
	require.NoError(t, err)
	for _, v := range []boolexpr.Value{0, 1} {
		result, err := contradiction.Eval(map[string]boolexpr.Value{"a": v})
		require.NoError(t, err)
		assert.Equal(t, boolexpr.Value(0), result)
	}
}

func TestSharedRegistry(t *testing.T) {
	reg := boolexpr.NewRegistry()
	sum, err := boolexpr.NewWithRegistry("a+b", reg)
	require.NoError(t, err)
	product, err := boolexpr.NewWithRegistry("a.b", reg)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, reg.Names())

	_, err = sum.Eval(map[string]boolexpr.Value{"a": 1, "b": 1})
	require.NoError(t, err)

	// product sees the cells sum just wrote
	result, err := product.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, boolexpr.Value(1), result)

	product.ZeroAll()
	result, err = sum.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, boolexpr.Value(0), result)
}

func TestIncrement(t *testing.T) {
	formula, err := boolexpr.New("a.b")
	require.NoError(t, err)
	formula.ZeroAll()

	var seen []string
	for {
		vars := formula.Variables()
		seen = append(seen, lo.Reduce(vars, func(acc string, v boolexpr.Variable, _ int) string {
			return acc + v.String() + ";"
		}, ""))
		if !formula.Increment() {
			break
		}
	}

	assert.Equal(t, []string{"a=0;b=0;", "a=0;b=1;", "a=1;b=0;", "a=1;b=1;"}, seen)
	// overflow wraps back to all zeros
	assert.Equal(t, "a=0;b=0;", lo.Reduce(formula.Variables(), func(acc string, v boolexpr.Variable, _ int) string {
		return acc + v.String() + ";"
	}, ""))
}

func TestStringRoundTrip(t *testing.T) {
	expressions := []string{
		"a.b+c",
		"(a+b).c",
		"a^b+c.d^e",
		"ab'+a'b",
		"a''",
		"(a+b)'c",
		"x1 x2 + 1 ^ x3'",
		"a+b+c",
	}

	for _, expression := range expressions {
		t.Run(expression, func(t *testing.T) {
			original, err := boolexpr.New(expression)
			require.NoError(t, err)

			printed := original.String()
			reparsed, err := boolexpr.New(printed)
			require.NoError(t, err, "printed form %q", printed)

			original.ZeroAll()
			for {
				bindings := lo.SliceToMap(original.Variables(), func(v boolexpr.Variable) (string, boolexpr.Value) {
					return v.Name(), v.Value()
				})
				expected, err := original.Eval(nil)
				require.NoError(t, err)
				actual, err := reparsed.Eval(bindings)
				require.NoError(t, err)
				assert.Equal(t, expected, actual, "printed %q at %v", printed, bindings)

				if !original.Increment() {
					break
				}
			}
		})
	}
}

func TestString(t *testing.T) {
	formula, err := boolexpr.New("a.b + c'")
	require.NoError(t, err)
	assert.Equal(t, "((a.b)+(c)')", formula.String())
	assert.Equal(t, "a.b + c'", formula.Text())
}
