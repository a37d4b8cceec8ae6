package moriarty_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moriarty"
	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/covering"
	"github.com/katalvlaran/moriarty/random"
	"github.com/katalvlaran/moriarty/simpleio"
	"github.com/katalvlaran/moriarty/status"
	"github.com/katalvlaran/moriarty/vartypes"
)

func newDriver(t *testing.T, opts ...moriarty.Option) *moriarty.Moriarty {
	t.Helper()
	opts = append([]moriarty.Option{moriarty.WithSeed(random.Seed{Ints: []int64{1, 2, 3}})}, opts...)
	m := moriarty.New(opts...)
	require.NoError(t, m.AddVariable("N", vartypes.NewInteger().Between(50, 100)))
	require.NoError(t, m.AddVariable("A", vartypes.NewInteger().AtLeastExpr("N").AtMostExpr("3 * N")))
	return m
}

// batchValues flattens a batch into plain maps for comparison.
func batchValues(batch []*moriarty.GeneratedCase) []map[string]core.Value {
	out := make([]map[string]core.Value, len(batch))
	for i, c := range batch {
		vals := map[string]core.Value{}
		for _, name := range c.Values.Names() {
			v, _ := c.Values.UnsafeGet(name)
			vals[name] = v
		}
		out[i] = vals
	}
	return out
}

// TestGenerateTestCases_Default produces one case without any generator
// and numbers it 1.
func TestGenerateTestCases_Default(t *testing.T) {
	batch, err := newDriver(t).GenerateTestCases()
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, 1, batch[0].Metadata.SequenceNumber)
	assert.Nil(t, batch[0].Metadata.Origin)

	n, err := core.GetValue[int64](batch[0].Values, "N")
	require.NoError(t, err)
	a, err := core.GetValue[int64](batch[0].Values, "A")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, a, n)
	assert.LessOrEqual(t, a, 3*n)
}

// TestGenerateTestCases_Deterministic repeats a run and compares the
// batches value for value.
func TestGenerateTestCases_Deterministic(t *testing.T) {
	first, err := newDriver(t).GenerateTestCases()
	require.NoError(t, err)
	second, err := newDriver(t).GenerateTestCases()
	require.NoError(t, err)

	if diff := cmp.Diff(batchValues(first), batchValues(second)); diff != "" {
		t.Errorf("batches diverge (-first +second):\n%s", diff)
	}
}

// TestGenerateTestCases_CoveringGenerator numbers corner cases 1-based and
// stamps the generator origin.
func TestGenerateTestCases_CoveringGenerator(t *testing.T) {
	m := newDriver(t)
	m.AddGenerator(covering.NewCasesGenerator("corner", 2))

	batch, err := m.GenerateTestCases()
	require.NoError(t, err)
	require.NotEmpty(t, batch)
	for i, c := range batch {
		assert.Equal(t, i+1, c.Metadata.SequenceNumber)
		require.NotNil(t, c.Metadata.Origin)
		assert.Equal(t, "corner", c.Metadata.Origin.GeneratorName)
	}
}

// TestSetValue_ShortCircuitsGeneration pins N and checks A respects it.
func TestSetValue_ShortCircuitsGeneration(t *testing.T) {
	m := newDriver(t)
	require.NoError(t, m.SetValue("N", 53))

	batch, err := m.GenerateTestCases()
	require.NoError(t, err)
	require.Len(t, batch, 1)

	n, err := core.GetValue[int64](batch[0].Values, "N")
	require.NoError(t, err)
	assert.Equal(t, int64(53), n)
	a, err := core.GetValue[int64](batch[0].Values, "A")
	require.NoError(t, err)
	assert.LessOrEqual(t, a, int64(159))
}

// TestSetValue_Kinds accepts the supported raw kinds and rejects others.
func TestSetValue_Kinds(t *testing.T) {
	m := moriarty.New()
	require.NoError(t, m.SetValue("I", 7))
	require.NoError(t, m.SetValue("S", "text"))
	require.NoError(t, m.SetValue("A", []int64{1, 2}))

	err := m.SetValue("F", 1.5)
	assert.ErrorIs(t, err, core.ErrKindMismatch)
	err = m.SetValue("", 1)
	assert.ErrorIs(t, err, core.ErrInvalidName)
}

// TestScenario_SizeMin pins every variable to its minimum through a global
// scenario overlay.
func TestScenario_SizeMin(t *testing.T) {
	m := newDriver(t)
	m.WithScenario(core.NewScenario().
		WithGeneralProperty(core.Property{Category: core.SizeCategory, Descriptor: core.SizeMin}))

	batch, err := m.GenerateTestCases()
	require.NoError(t, err)
	require.Len(t, batch, 1)

	n, err := core.GetValue[int64](batch[0].Values, "N")
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)
	a, err := core.GetValue[int64](batch[0].Values, "A")
	require.NoError(t, err)
	assert.Equal(t, n, a)
}

// TestExportImport_EndToEnd generates a batch, exports it, imports it back
// and validates it.
func TestExportImport_EndToEnd(t *testing.T) {
	format := simpleio.NewFormat().
		WithCaseCountHeader().
		WithCaseLine(simpleio.Var("N"), simpleio.Var("A"))
	m := newDriver(t)
	m.AddGenerator(covering.NewCasesGenerator("corner", 2)).
		SetExporter(format).
		SetImporter(format)

	batch, err := m.GenerateTestCases()
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, m.ExportTestCases(&buf, batch))

	res, err := m.ImportTestCases(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, len(batch), res.NumTestCasesInHeader)
	require.Len(t, res.Cases, len(batch))
	for i, c := range res.Cases {
		for _, name := range []string{"N", "A"} {
			want, err := core.GetValue[int64](batch[i].Values, name)
			require.NoError(t, err)
			got, err := core.GetValue[int64](c, name)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

// TestImportTestCases_RejectsInvalid refuses imported values that violate
// the constraints.
func TestImportTestCases_RejectsInvalid(t *testing.T) {
	format := simpleio.NewFormat().
		WithCaseCountHeader().
		WithCaseLine(simpleio.Var("N"), simpleio.Var("A"))
	m := newDriver(t)
	m.SetImporter(format)

	// N = 10 is below the [50, 100] range.
	_, err := m.ImportTestCases(strings.NewReader("1\n10 20\n"))
	assert.ErrorIs(t, err, status.ErrUnsatisfiedConstraint)
}

// TestExportTestCases_RequiresExporter reports the missing collaborator.
func TestExportTestCases_RequiresExporter(t *testing.T) {
	err := newDriver(t).ExportTestCases(&strings.Builder{}, nil)
	assert.ErrorIs(t, err, status.ErrMisconfigured)
}

// TestSoftSizeLimit_DropsOptionalCases stops emitting corner cases once
// the budget is spent but keeps the batch valid.
func TestSoftSizeLimit_DropsOptionalCases(t *testing.T) {
	m := moriarty.New(
		moriarty.WithSeed(random.Seed{Ints: []int64{5}}),
		moriarty.WithSoftSizeLimit(120))
	require.NoError(t, m.AddVariable("S", vartypes.NewString().OfLength(50, 100)))
	m.AddGenerator(covering.NewCasesGenerator("corner", 1))

	unlimited := moriarty.New(moriarty.WithSeed(random.Seed{Ints: []int64{5}}))
	require.NoError(t, unlimited.AddVariable("S", vartypes.NewString().OfLength(50, 100)))
	unlimited.AddGenerator(covering.NewCasesGenerator("corner", 1))

	limitedBatch, err := m.GenerateTestCases()
	require.NoError(t, err)
	fullBatch, err := unlimited.GenerateTestCases()
	require.NoError(t, err)

	assert.LessOrEqual(t, len(limitedBatch), len(fullBatch))
	var total int64
	for _, c := range limitedBatch {
		total += c.Values.ApproxSize()
	}
	// Advisory limit: one case may straddle the boundary, but the batch
	// never grows once the limit is crossed.
	assert.LessOrEqual(t, total, int64(120+100))
}

// TestMustGenerateTestCases_PanicsOnFailure checks the crash-on-failure
// form names its status form.
func TestMustGenerateTestCases_PanicsOnFailure(t *testing.T) {
	m := moriarty.New()
	require.NoError(t, m.AddVariable("X", vartypes.NewInteger().AtLeast(10).AtMost(5)))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Contains(t, r.(string), "MustGenerateTestCases")
		assert.Contains(t, r.(string), "GenerateTestCases")
	}()
	m.MustGenerateTestCases()
}
