package vartypes_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/random"
	"github.com/katalvlaran/moriarty/status"
	"github.com/katalvlaran/moriarty/vartypes"
)

// newGenUniverse wires the pieces a Generate call needs: a seeded source,
// empty mutable values and the given variables (bound to the universe).
func newGenUniverse(t *testing.T, vs *core.VariableSet, seed ...int64) *core.Universe {
	t.Helper()
	if vs == nil {
		vs = core.NewVariableSet()
	}
	return core.NewUniverse().
		WithRandomSource(random.NewSource(random.Seed{Ints: seed, Version: "test"})).
		WithMutableValueSet(core.NewValueSet()).
		WithMutableVariableSet(vs)
}

// newCheckUniverse wires a const value set for validation paths.
func newCheckUniverse(t *testing.T, vals *core.ValueSet) *core.Universe {
	t.Helper()
	return core.NewUniverse().WithConstValueSet(vals)
}

// TestMInteger_GenerateWithinRange draws repeatedly from a numeric range and
// checks every value lands inside it, deterministically per seed.
func TestMInteger_GenerateWithinRange(t *testing.T) {
	m := vartypes.NewInteger().Between(10, 20)
	m.SetName("X")
	u := newGenUniverse(t, nil, 7)

	var first []int64
	for i := 0; i < 200; i++ {
		v, err := m.Generate(u)
		require.NoError(t, err)
		iv, ok := v.(int64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, iv, int64(10))
		assert.LessOrEqual(t, iv, int64(20))
		first = append(first, iv)
	}

	// Same seed, same sequence.
	u2 := newGenUniverse(t, nil, 7)
	for i := 0; i < 200; i++ {
		v, err := m.Generate(u2)
		require.NoError(t, err)
		assert.Equal(t, first[i], v)
	}
}

// TestMInteger_SymbolicBounds resolves A in [N, 3*N] by generating N on
// demand through the universe, and checks the dependency list.
func TestMInteger_SymbolicBounds(t *testing.T) {
	n := vartypes.NewInteger().Between(50, 100)
	a := vartypes.NewInteger().AtLeastExpr("N").AtMostExpr("3 * N")

	deps, err := a.GetDependencies()
	require.NoError(t, err)
	assert.Equal(t, []string{"N"}, deps)

	vs := core.NewVariableSet()
	require.NoError(t, vs.AddVariable("N", n))
	require.NoError(t, vs.AddVariable("A", a))
	u := newGenUniverse(t, vs, 1, 2, 3)

	av, err := u.GetValue("A")
	require.NoError(t, err)
	nv, err := u.Int64Value("N")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, nv, int64(50))
	assert.LessOrEqual(t, nv, int64(100))
	assert.GreaterOrEqual(t, av.(int64), nv)
	assert.LessOrEqual(t, av.(int64), 3*nv)
}

// TestMInteger_MergeIntersects merges two ranges and checks the pinned case
// reports a unique value.
func TestMInteger_MergeIntersects(t *testing.T) {
	m := vartypes.NewInteger().AtLeast(5)
	require.NoError(t, m.MergeFrom(vartypes.NewInteger().AtMost(5)))

	v, ok := m.GetUniqueValue()
	require.True(t, ok)
	assert.Equal(t, int64(5), v)

	err := m.MergeFrom(vartypes.NewString())
	assert.ErrorIs(t, err, core.ErrTypenameMismatch)
}

// TestMInteger_Validate accepts an in-range stored value and rejects an
// out-of-range one with an unsatisfied-constraint kind.
func TestMInteger_Validate(t *testing.T) {
	m := vartypes.NewInteger().Between(1, 10)
	m.SetName("X")

	vals := core.NewValueSet()
	core.SetValue[int64](vals, "X", 10)
	require.NoError(t, m.ValueSatisfiesConstraints(newCheckUniverse(t, vals)))

	core.SetValue[int64](vals, "X", 11)
	err := m.ValueSatisfiesConstraints(newCheckUniverse(t, vals))
	assert.ErrorIs(t, err, status.ErrUnsatisfiedConstraint)

	err = m.ValueSatisfiesConstraints(newCheckUniverse(t, core.NewValueSet()))
	assert.ErrorIs(t, err, status.ErrValueNotFound)
}

// TestMInteger_DifficultInstances pins the boundary clones to the range
// extremes.
func TestMInteger_DifficultInstances(t *testing.T) {
	m := vartypes.NewInteger().Between(5, 9)
	hard := m.GetDifficultInstances()
	require.Len(t, hard, 2)

	u := newGenUniverse(t, nil, 11)
	lo, err := hard[0].Generate(u)
	require.NoError(t, err)
	hi, err := hard[1].Generate(u)
	require.NoError(t, err)
	assert.Equal(t, int64(5), lo)
	assert.Equal(t, int64(9), hi)
}

// TestMInteger_SizeProperty drives the size scenario categories through
// WithProperty and checks min/max tiers pin the extremes.
func TestMInteger_SizeProperty(t *testing.T) {
	u := newGenUniverse(t, nil, 3)

	small := vartypes.NewInteger().Between(100, 200)
	require.NoError(t, small.WithProperty(core.Property{Category: core.SizeCategory, Descriptor: core.SizeMin}))
	v, err := small.Generate(u)
	require.NoError(t, err)
	assert.Equal(t, int64(100), v)

	big := vartypes.NewInteger().Between(100, 200)
	require.NoError(t, big.WithProperty(core.Property{Category: core.SizeCategory, Descriptor: core.SizeMax}))
	v, err = big.Generate(u)
	require.NoError(t, err)
	assert.Equal(t, int64(200), v)

	err = big.WithProperty(core.Property{Category: "color", Descriptor: "red"})
	assert.ErrorIs(t, err, core.ErrUnsupportedProperty)
}

// TestMString_GeneratePlain draws strings in the default lowercase alphabet
// and checks the length window.
func TestMString_GeneratePlain(t *testing.T) {
	m := vartypes.NewString().OfLength(3, 8)
	m.SetName("S")
	u := newGenUniverse(t, nil, 42)

	for i := 0; i < 100; i++ {
		v, err := m.Generate(u)
		require.NoError(t, err)
		s, ok := v.(string)
		require.True(t, ok)
		assert.GreaterOrEqual(t, len(s), 3)
		assert.LessOrEqual(t, len(s), 8)
		for j := 0; j < len(s); j++ {
			assert.True(t, s[j] >= 'a' && s[j] <= 'z', "character %q", s[j])
		}
	}
}

// TestMString_Pattern generates through a pattern and cross-checks with the
// variable's own validation.
func TestMString_Pattern(t *testing.T) {
	m := vartypes.NewString().MatchesPattern("[ab]{2, 4}").OfLength(2, 4)
	m.SetName("S")
	u := newGenUniverse(t, nil, 5)

	for i := 0; i < 50; i++ {
		v, err := m.Generate(u)
		require.NoError(t, err)
		s := v.(string)

		vals := core.NewValueSet()
		core.SetValue[string](vals, "S", s)
		assert.NoError(t, m.ValueSatisfiesConstraints(newCheckUniverse(t, vals)))
	}
}

// TestMString_PatternRetryExhausted drains the retry budget when the
// pattern and the length window cannot agree, yielding a retryable error.
func TestMString_PatternRetryExhausted(t *testing.T) {
	m := vartypes.NewString().MatchesPattern("a{5}").OfLength(1, 2)
	m.SetName("S")
	u := newGenUniverse(t, nil, 5).WithGenConfig(core.GenConfig{RetryBudget: 3})

	_, err := m.Generate(u)
	assert.True(t, status.IsRetryable(err))
}

// TestMString_ValidateAlphabet rejects characters outside an explicit
// alphabet and accepts strings inside it.
func TestMString_ValidateAlphabet(t *testing.T) {
	m := vartypes.NewString().WithAlphabet("ab").OfLength(0, 10)
	m.SetName("S")

	vals := core.NewValueSet()
	core.SetValue[string](vals, "S", "abba")
	require.NoError(t, m.ValueSatisfiesConstraints(newCheckUniverse(t, vals)))

	core.SetValue[string](vals, "S", "abc")
	err := m.ValueSatisfiesConstraints(newCheckUniverse(t, vals))
	assert.ErrorIs(t, err, status.ErrUnsatisfiedConstraint)
}

// TestMString_Is pins the value exactly.
func TestMString_Is(t *testing.T) {
	m := vartypes.NewString().Is("hello")
	m.SetName("S")

	v, ok := m.GetUniqueValue()
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	u := newGenUniverse(t, nil, 9)
	g, err := m.Generate(u)
	require.NoError(t, err)
	assert.Equal(t, "hello", g)

	vals := core.NewValueSet()
	core.SetValue[string](vals, "S", "other")
	assert.ErrorIs(t, m.ValueSatisfiesConstraints(newCheckUniverse(t, vals)), status.ErrUnsatisfiedConstraint)
}

// TestMString_SoftLimitClampsLength lowers the length ceiling to the
// remaining size budget, never below the lower bound.
func TestMString_SoftLimitClampsLength(t *testing.T) {
	m := vartypes.NewString().OfLength(50, 100)
	m.SetName("S")
	u := newGenUniverse(t, nil, 13).WithGenConfig(core.GenConfig{SoftSizeLimit: 60})

	for i := 0; i < 30; i++ {
		v, err := m.Generate(u)
		require.NoError(t, err)
		s := v.(string)
		assert.GreaterOrEqual(t, len(s), 50)
		assert.LessOrEqual(t, len(s), 60)
	}

	// A budget below the lower bound leaves the lower bound intact.
	uTight := newGenUniverse(t, nil, 13).WithGenConfig(core.GenConfig{SoftSizeLimit: 10})
	v, err := m.Generate(uTight)
	require.NoError(t, err)
	assert.Equal(t, 50, len(v.(string)))
}

// TestMString_BadPatternSurfaces keeps a parse failure sticky until use.
func TestMString_BadPatternSurfaces(t *testing.T) {
	m := vartypes.NewString().MatchesPattern("a{3,1}")
	_, err := m.Generate(newGenUniverse(t, nil, 1))
	assert.Error(t, err)
	_, err = m.GetDependencies()
	assert.Error(t, err)
}

// TestMArray_Generate draws arrays whose length and elements obey their
// ranges.
func TestMArray_Generate(t *testing.T) {
	m := vartypes.NewArray(vartypes.NewInteger().Between(1, 5)).OfLength(2, 4)
	m.SetName("A")
	u := newGenUniverse(t, nil, 21)

	for i := 0; i < 50; i++ {
		v, err := m.Generate(u)
		require.NoError(t, err)
		elems, ok := v.([]core.Value)
		require.True(t, ok)
		assert.GreaterOrEqual(t, len(elems), 2)
		assert.LessOrEqual(t, len(elems), 4)
		for _, e := range elems {
			iv := e.(int64)
			assert.GreaterOrEqual(t, iv, int64(1))
			assert.LessOrEqual(t, iv, int64(5))
		}
	}
}

// TestMArray_Distinct draws pairwise-distinct integers and validates them
// through the variable's own check.
func TestMArray_Distinct(t *testing.T) {
	m := vartypes.NewArray(vartypes.NewInteger().Between(1, 10)).OfLength(5, 5).Distinct()
	m.SetName("A")
	u := newGenUniverse(t, nil, 17)

	v, err := m.Generate(u)
	require.NoError(t, err)
	elems := v.([]core.Value)
	require.Len(t, elems, 5)
	seen := map[int64]bool{}
	for _, e := range elems {
		iv := e.(int64)
		assert.False(t, seen[iv], "value %d repeated", iv)
		seen[iv] = true
	}

	vals := core.NewValueSet()
	vals.SetUntyped("A", v)
	assert.NoError(t, m.ValueSatisfiesConstraints(newCheckUniverse(t, vals)))
}

// TestMArray_DistinctNestedElements validates distinctness of slice-valued
// elements, which only a deep comparison can decide.
func TestMArray_DistinctNestedElements(t *testing.T) {
	m := vartypes.NewArray(
		vartypes.NewArray(vartypes.NewInteger().Between(1, 5)).OfLength(1, 3),
	).OfLength(2, 2).Distinct()
	m.SetName("A")

	vals := core.NewValueSet()
	vals.SetUntyped("A", []core.Value{
		[]core.Value{int64(1), int64(2)},
		[]core.Value{int64(1), int64(3)},
	})
	assert.NoError(t, m.ValueSatisfiesConstraints(newCheckUniverse(t, vals)))

	vals.SetUntyped("A", []core.Value{
		[]core.Value{int64(1), int64(2)},
		[]core.Value{int64(1), int64(2)},
	})
	err := m.ValueSatisfiesConstraints(newCheckUniverse(t, vals))
	require.ErrorIs(t, err, status.ErrUnsatisfiedConstraint)
	assert.Contains(t, err.Error(), "repeats")
}

// TestMArray_DistinctInfeasible reports an unsatisfied constraint when the
// element range cannot hold enough distinct values.
func TestMArray_DistinctInfeasible(t *testing.T) {
	m := vartypes.NewArray(vartypes.NewInteger().Between(1, 3)).OfLength(5, 5).Distinct()
	m.SetName("A")

	_, err := m.Generate(newGenUniverse(t, nil, 17))
	assert.ErrorIs(t, err, status.ErrUnsatisfiedConstraint)
}

// TestMArray_ValidateElement surfaces the failing element's index.
func TestMArray_ValidateElement(t *testing.T) {
	m := vartypes.NewArray(vartypes.NewInteger().Between(1, 5)).OfLength(1, 10)
	m.SetName("A")

	vals := core.NewValueSet()
	vals.SetUntyped("A", []core.Value{int64(2), int64(9)})
	err := m.ValueSatisfiesConstraints(newCheckUniverse(t, vals))
	require.ErrorIs(t, err, status.ErrUnsatisfiedConstraint)
	assert.Contains(t, err.Error(), "element 1")
}

// TestMArray_SubValueLength exposes the element count as a sub-value.
func TestMArray_SubValueLength(t *testing.T) {
	m := vartypes.NewArray(vartypes.NewInteger())
	v, err := m.SubValue([]core.Value{int64(1), int64(2), int64(3)}, core.SubValueLength)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = m.SubValue([]core.Value{}, "width")
	assert.ErrorIs(t, err, core.ErrKindMismatch)
}

// TestMArray_SymbolicLength ties the array length to another variable and
// merges the element prototype's dependencies in.
func TestMArray_SymbolicLength(t *testing.T) {
	n := vartypes.NewInteger().Between(3, 6)
	a := vartypes.NewArray(vartypes.NewInteger().AtLeast(0).AtMostExpr("N")).
		OfLengthAtLeastExpr("N").OfLengthAtMostExpr("N")

	deps, err := a.GetDependencies()
	require.NoError(t, err)
	assert.Equal(t, []string{"N"}, deps)

	vs := core.NewVariableSet()
	require.NoError(t, vs.AddVariable("N", n))
	require.NoError(t, vs.AddVariable("A", a))
	u := newGenUniverse(t, vs, 4)

	av, err := u.GetValue("A")
	require.NoError(t, err)
	nv, err := u.Int64Value("N")
	require.NoError(t, err)
	assert.Equal(t, int(nv), len(av.([]core.Value)))
}

// TestMArray_NilPrototype rejects construction misuse at first use.
func TestMArray_NilPrototype(t *testing.T) {
	m := vartypes.NewArray(nil)
	_, err := m.Generate(newGenUniverse(t, nil, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrMisconfigured))

	// Element-bound properties need a prototype to land on.
	err = m.WithProperty(core.Property{Category: "parity", Descriptor: "even"})
	assert.ErrorIs(t, err, status.ErrMisconfigured)
}

// TestTestCase_SetValuePinsVariable checks the exact-value shorthand: the
// pinned variable merges with existing constraints of the same type, and
// kinds without an exact builder are rejected.
func TestTestCase_SetValuePinsVariable(t *testing.T) {
	tc := core.NewTestCase()
	require.NoError(t, tc.ConstrainVariable("N", vartypes.NewInteger().Between(1, 10)))
	require.NoError(t, tc.SetValue("N", int64(7)))

	v, err := tc.Variables().GetVariable("N")
	require.NoError(t, err)
	uv, ok := v.GetUniqueValue()
	require.True(t, ok)
	assert.Equal(t, int64(7), uv)

	require.NoError(t, tc.SetValue("S", "abc"))
	s, err := tc.Variables().GetVariable("S")
	require.NoError(t, err)
	sv, ok := s.GetUniqueValue()
	require.True(t, ok)
	assert.Equal(t, "abc", sv)

	err = tc.SetValue("B", []byte{1})
	assert.ErrorIs(t, err, core.ErrKindMismatch)

	err = tc.SetValue("1bad", int64(1))
	assert.ErrorIs(t, err, core.ErrInvalidName)
}
