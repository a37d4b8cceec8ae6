package core_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/status"
)

// fakeVar is a minimal Variable for exercising the data model: it "generates"
// a fixed int64 and records every property it received.
type fakeVar struct {
	typename string
	name     string
	u        *core.Universe
	value    int64
	props    []core.Property
	merged   int
}

func newFake(typename string, value int64) *fakeVar {
	return &fakeVar{typename: typename, value: value}
}

func (f *fakeVar) Typename() string            { return f.typename }
func (f *fakeVar) Name() string                { return f.name }
func (f *fakeVar) SetName(n string)            { f.name = n }
func (f *fakeVar) SetUniverse(u *core.Universe) { f.u = u }

func (f *fakeVar) Clone() core.Variable {
	c := *f
	c.u = nil
	c.props = append([]core.Property(nil), f.props...)
	return &c
}

func (f *fakeVar) MergeFrom(other core.Variable) error {
	if other.Typename() != f.typename {
		return core.ErrTypenameMismatch
	}
	f.merged++
	return nil
}

func (f *fakeVar) Generate(_ *core.Universe) (core.Value, error) { return f.value, nil }

func (f *fakeVar) ReadValue(_ *core.Universe) (core.Value, error) { return f.value, nil }
func (f *fakeVar) PrintValue(_ *core.Universe) error              { return nil }

func (f *fakeVar) ValueSatisfiesConstraints(u *core.Universe) error {
	vals, err := u.ConstValues()
	if err != nil {
		return err
	}
	v, ok := vals.UnsafeGet(f.name)
	if !ok {
		return status.ValueNotFound(f.name)
	}
	if v.(int64) != f.value {
		return status.UnsatisfiedConstraint(fmt.Sprintf("%v != %v", v, f.value))
	}
	return nil
}

func (f *fakeVar) GetUniqueValue() (core.Value, bool)    { return f.value, true }
func (f *fakeVar) GetDifficultInstances() []core.Variable { return nil }
func (f *fakeVar) GetDependencies() ([]string, error)     { return nil, nil }

func (f *fakeVar) SubValue(core.Value, string) (core.Value, error) {
	return nil, core.ErrKindMismatch
}

func (f *fakeVar) WithProperty(p core.Property) error {
	if p.Category != core.SizeCategory {
		return core.ErrUnsupportedProperty
	}
	f.props = append(f.props, p)
	return nil
}

// --- ValueSet ---------------------------------------------------------------

// TestValueSet_SetGetRoundTrip covers the typed round-trip and the error
// taxonomy for absence and kind mismatch.
func TestValueSet_SetGetRoundTrip(t *testing.T) {
	vs := core.NewValueSet()
	core.SetValue(vs, "n", int64(42))
	core.SetValue(vs, "s", "hello")

	n, err := core.GetValue[int64](vs, "n")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	s, err := core.GetValue[string](vs, "s")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = core.GetValue[int64](vs, "missing")
	assert.ErrorIs(t, err, status.ErrValueNotFound)
	name, ok := status.UnknownVariableName(err)
	assert.True(t, ok)
	assert.Equal(t, "missing", name)

	_, err = core.GetValue[string](vs, "n")
	assert.ErrorIs(t, err, core.ErrKindMismatch)
}

// TestValueSet_ReplaceKeepsSingleValue checks invariant 3: one value per name.
func TestValueSet_ReplaceKeepsSingleValue(t *testing.T) {
	vs := core.NewValueSet()
	core.SetValue(vs, "n", int64(1))
	core.SetValue(vs, "n", int64(2))

	assert.Equal(t, 1, vs.Len())
	n, err := core.GetValue[int64](vs, "n")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

// TestValueSet_ApproxSizeMonotonicity asserts directional behavior only:
// the metric over-counts by design, so no exact values are pinned.
func TestValueSet_ApproxSizeMonotonicity(t *testing.T) {
	vs := core.NewValueSet()
	assert.Zero(t, vs.ApproxSize())

	core.SetValue(vs, "n", int64(7))
	afterInt := vs.ApproxSize()
	assert.GreaterOrEqual(t, afterInt, int64(1))

	core.SetValue(vs, "s", "0123456789")
	afterStr := vs.ApproxSize()
	assert.GreaterOrEqual(t, afterStr, afterInt+10)

	core.SetValue(vs, "a", []int64{1, 2, 3})
	assert.GreaterOrEqual(t, vs.ApproxSize(), afterStr+3)

	before := vs.ApproxSize()
	vs.Erase("s")
	assert.False(t, vs.Has("s"))
	assert.Less(t, vs.ApproxSize(), before)
	assert.GreaterOrEqual(t, vs.ApproxSize(), int64(0))
}

// --- VariableSet ------------------------------------------------------------

// TestVariableSet_AddRejectsDuplicatesAndBadNames covers insertion rules.
func TestVariableSet_AddRejectsDuplicatesAndBadNames(t *testing.T) {
	vs := core.NewVariableSet()
	require.NoError(t, vs.AddVariable("N", newFake("MTestType", 1)))

	err := vs.AddVariable("N", newFake("MTestType", 2))
	assert.ErrorIs(t, err, core.ErrDuplicateVariable)

	for _, bad := range []string{"", "1abc", "a-b", "a b", "_x"} {
		err = vs.AddVariable(bad, newFake("MTestType", 1))
		assert.ErrorIs(t, err, core.ErrInvalidName, "name %q", bad)
	}
}

// TestVariableSet_AddOrMerge merges same-typed variables, rejects cross-type.
func TestVariableSet_AddOrMerge(t *testing.T) {
	vs := core.NewVariableSet()
	a := newFake("MTestType", 1)
	require.NoError(t, vs.AddOrMergeVariable("N", a))
	require.NoError(t, vs.AddOrMergeVariable("N", newFake("MTestType", 2)))
	assert.Equal(t, 1, a.merged)

	err := vs.AddOrMergeVariable("N", newFake("MTestType2", 1))
	assert.ErrorIs(t, err, core.ErrTypenameMismatch)
}

// TestVariableSet_LookupAndTypedAccess covers GetVariable and GetVariableT.
func TestVariableSet_LookupAndTypedAccess(t *testing.T) {
	vs := core.NewVariableSet()
	require.NoError(t, vs.AddVariable("N", newFake("MTestType", 1)))

	v, err := vs.GetVariable("N")
	require.NoError(t, err)
	assert.Equal(t, "N", v.Name())

	_, err = vs.GetVariable("Q")
	assert.ErrorIs(t, err, status.ErrVariableNotFound)

	f, err := core.GetVariableT[*fakeVar](vs, "N")
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.value)
}

// TestVariableSet_NamesSorted pins deterministic iteration order.
func TestVariableSet_NamesSorted(t *testing.T) {
	vs := core.NewVariableSet()
	for _, n := range []string{"zeta", "Alpha", "m1", "Beta"} {
		require.NoError(t, vs.AddVariable(n, newFake("MTestType", 1)))
	}
	// ASCII order: uppercase before lowercase.
	assert.Equal(t, []string{"Alpha", "Beta", "m1", "zeta"}, vs.Names())
}

// TestScenario_DispatchByTypename is scenario E4: general properties reach
// every variable; type-specific ones only the matching type.
func TestScenario_DispatchByTypename(t *testing.T) {
	build := func() (*core.VariableSet, *fakeVar, *fakeVar, *fakeVar) {
		vs := core.NewVariableSet()
		a := newFake("MTestType", 1)
		b := newFake("MTestType", 2)
		c := newFake("MTestType2", 3)
		require.NoError(t, vs.AddVariable("A", a))
		require.NoError(t, vs.AddVariable("B", b))
		require.NoError(t, vs.AddVariable("C", c))
		return vs, a, b, c
	}
	small := core.Property{Category: core.SizeCategory, Descriptor: core.SizeSmall}

	// General: all three variables receive the property.
	vs, a, b, c := build()
	require.NoError(t, vs.WithScenario(core.NewScenario().WithGeneralProperty(small)))
	assert.Len(t, a.props, 1)
	assert.Len(t, b.props, 1)
	assert.Len(t, c.props, 1)

	// Type-specific: only the MTestType variables change.
	vs, a, b, c = build()
	require.NoError(t, vs.WithScenario(
		core.NewScenario().WithTypeSpecificProperty("MTestType", small)))
	assert.Len(t, a.props, 1)
	assert.Len(t, b.props, 1)
	assert.Empty(t, c.props)
}

// TestScenario_UnsupportedMandatoryCategory propagates the variable's error.
func TestScenario_UnsupportedMandatoryCategory(t *testing.T) {
	vs := core.NewVariableSet()
	require.NoError(t, vs.AddVariable("A", newFake("MTestType", 1)))

	err := vs.WithScenario(core.NewScenario().
		WithGeneralProperty(core.Property{Category: "parity", Descriptor: "odd"}))
	assert.ErrorIs(t, err, core.ErrUnsupportedProperty)
}

// TestAllVariablesSatisfyConstraints covers bulk validation, including the
// rule that unvalued variables fail rather than pass vacuously.
func TestAllVariablesSatisfyConstraints(t *testing.T) {
	vs := core.NewVariableSet()
	require.NoError(t, vs.AddVariable("A", newFake("MTestType", 1)))
	require.NoError(t, vs.AddVariable("B", newFake("MTestType", 2)))

	vals := core.NewValueSet()
	core.SetValue(vals, "A", int64(1))
	core.SetValue(vals, "B", int64(2))
	core.SetValue(vals, "extra", int64(99)) // extra values are not an error
	u := core.NewUniverse().WithConstValueSet(vals).WithConstVariableSet(vs)

	assert.NoError(t, vs.AllVariablesSatisfyConstraints(u))

	// A wrong value fails with UnsatisfiedConstraint.
	core.SetValue(vals, "B", int64(5))
	err := vs.AllVariablesSatisfyConstraints(u)
	assert.ErrorIs(t, err, status.ErrUnsatisfiedConstraint)

	// A missing value fails with ValueNotFound.
	vals.Erase("B")
	err = vs.AllVariablesSatisfyConstraints(u)
	assert.ErrorIs(t, err, status.ErrValueNotFound)
}

// --- Universe ---------------------------------------------------------------

// TestUniverse_MisconfiguredAccessors names missing collaborators.
func TestUniverse_MisconfiguredAccessors(t *testing.T) {
	u := core.NewUniverse()

	_, err := u.RandomSource()
	assert.ErrorIs(t, err, status.ErrMisconfigured)
	_, err = u.IO()
	assert.ErrorIs(t, err, status.ErrMisconfigured)
	_, err = u.MutableValues()
	assert.ErrorIs(t, err, status.ErrMisconfigured)
	_, err = u.ConstValues()
	assert.ErrorIs(t, err, status.ErrMisconfigured)
	_, err = u.Variables()
	assert.ErrorIs(t, err, status.ErrMisconfigured)
}

// TestUniverse_GetValue_ServesStoredThenGenerates pins the injection path:
// stored values win; unknown names generate through the variable set and
// land in the mutable value set.
func TestUniverse_GetValue_ServesStoredThenGenerates(t *testing.T) {
	vars := core.NewVariableSet()
	require.NoError(t, vars.AddVariable("N", newFake("MTestType", 53)))

	vals := core.NewValueSet()
	core.SetValue(vals, "K", int64(7))

	u := core.NewUniverse().
		WithMutableValueSet(vals).
		WithMutableVariableSet(vars)

	// Stored value served as-is.
	k, err := u.Int64Value("K")
	require.NoError(t, err)
	assert.Equal(t, int64(7), k)

	// Unknown value generated, stored, then served from the set.
	n, err := u.Int64Value("N")
	require.NoError(t, err)
	assert.Equal(t, int64(53), n)
	assert.True(t, vals.Has("N"))

	// Unknown variable reported as VariableNotFound.
	_, err = u.GetValue("Q")
	assert.ErrorIs(t, err, status.ErrVariableNotFound)
}

// TestUniverse_Env builds the expression environment in one call.
func TestUniverse_Env(t *testing.T) {
	vars := core.NewVariableSet()
	require.NoError(t, vars.AddVariable("N", newFake("MTestType", 10)))
	vals := core.NewValueSet()
	core.SetValue(vals, "M", int64(20))

	u := core.NewUniverse().WithMutableValueSet(vals).WithMutableVariableSet(vars)

	env, err := u.Env([]string{"M", "N"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"M": 20, "N": 10}, env)
}

// --- helpers ----------------------------------------------------------------

// TestValidateName locks the documented naming rule.
func TestValidateName(t *testing.T) {
	for _, good := range []string{"N", "abc", "A1_b2", "z_"} {
		assert.NoError(t, core.ValidateName(good), good)
	}
	for _, bad := range []string{"", "1N", "_a", "a-b", "a.b", "a b"} {
		assert.ErrorIs(t, core.ValidateName(bad), core.ErrInvalidName, bad)
	}
}

// TestTierSlice covers the size-tier arithmetic at the edges.
func TestTierSlice(t *testing.T) {
	lo, hi := core.TierSlice(0, 1000, 0)
	assert.Equal(t, int64(0), lo)
	assert.Equal(t, int64(0), hi)

	lo, hi = core.TierSlice(0, 1000, core.SizeTierCount-1)
	assert.Equal(t, int64(1000), lo)
	assert.Equal(t, int64(1000), hi)

	// Interior tiers cover the interval without gaps or inversions.
	prevHi := int64(0)
	for tier := 1; tier < core.SizeTierCount-1; tier++ {
		lo, hi = core.TierSlice(0, 1000, tier)
		assert.LessOrEqual(t, lo, hi, "tier %d", tier)
		assert.GreaterOrEqual(t, lo, prevHi, "tier %d", tier)
		prevHi = hi
	}
	assert.Equal(t, int64(1000), prevHi)

	// Degenerate interval: every tier is the point itself.
	lo, hi = core.TierSlice(5, 5, 3)
	assert.Equal(t, int64(5), lo)
	assert.Equal(t, int64(5), hi)
}
