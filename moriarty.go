// Package: moriarty
//
// moriarty.go — the driver façade: variables, generators, I/O, batches.
package moriarty

import (
	"fmt"
	"io"

	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/gen"
	"github.com/katalvlaran/moriarty/random"
	"github.com/katalvlaran/moriarty/simpleio"
	"github.com/katalvlaran/moriarty/status"
)

// Generator produces a batch of test cases over the driver's variables.
// covering.CasesGenerator is the built-in implementation.
type Generator interface {
	// Name identifies the generator in case metadata.
	Name() string

	// Cases returns the batch. Returned cases may carry extra per-case
	// constraints and scenarios; the driver merges them over the global
	// variables before generating values.
	Cases(vs *core.VariableSet, src *random.Source) ([]*core.TestCase, error)
}

// Exporter renders a batch of value sets to a stream. simpleio.Format is
// the built-in implementation.
type Exporter interface {
	Export(w io.Writer, vs *core.VariableSet, global *core.ValueSet, cases []*core.ValueSet) error
}

// Importer parses a stream back into value sets. simpleio.Format is the
// built-in implementation.
type Importer interface {
	Import(r io.Reader, vs *core.VariableSet) (*simpleio.ImportResult, error)
}

// Option configures a Moriarty driver.
type Option func(*Moriarty)

// WithSeed sets the seed every generation run derives from.
func WithSeed(seed random.Seed) Option {
	return func(m *Moriarty) { m.seed = seed }
}

// WithSoftSizeLimit caps the cumulative approximate size of a generated
// batch. Once the limit is crossed, remaining optional cases are dropped;
// required cases are always generated.
func WithSoftSizeLimit(limit int64) Option {
	return func(m *Moriarty) { m.softSizeLimit = limit }
}

// WithRetryBudget sets the per-variable retry budget for transient
// generation failures.
func WithRetryBudget(n int) Option {
	return func(m *Moriarty) {
		if n > 0 {
			m.retryBudget = n
		}
	}
}

// Moriarty wires variables, known values, scenarios, generators and I/O
// into one driver. Zero value is not usable; construct with New.
type Moriarty struct {
	vars       *core.VariableSet
	known      *core.ValueSet
	scenarios  []*core.Scenario
	generators []Generator
	exporter   Exporter
	importer   Importer

	seed          random.Seed
	softSizeLimit int64
	retryBudget   int
}

// New returns an empty driver.
func New(opts ...Option) *Moriarty {
	m := &Moriarty{
		vars:        core.NewVariableSet(),
		known:       core.NewValueSet(),
		retryBudget: core.DefaultRetryBudget,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddVariable registers a named variable, merging constraints if the name
// already exists.
func (m *Moriarty) AddVariable(name string, v core.Variable) error {
	return m.vars.AddOrMergeVariable(name, v)
}

// SetValue pins a variable to a known raw value. Supported value kinds:
// integers (stored as int64), strings, and slices of int64 or string
// (stored as []core.Value). Generation skips pinned variables but still
// validates them.
func (m *Moriarty) SetValue(name string, value any) error {
	if err := core.ValidateName(name); err != nil {
		return err
	}
	switch v := value.(type) {
	case int:
		m.known.SetUntyped(name, int64(v))
	case int64:
		m.known.SetUntyped(name, v)
	case string:
		m.known.SetUntyped(name, v)
	case []int64:
		elems := make([]core.Value, len(v))
		for i, e := range v {
			elems[i] = e
		}
		m.known.SetUntyped(name, elems)
	case []string:
		elems := make([]core.Value, len(v))
		for i, e := range v {
			elems[i] = e
		}
		m.known.SetUntyped(name, elems)
	case []core.Value:
		m.known.SetUntyped(name, v)
	default:
		return fmt.Errorf("%w: SetValue(%q) got %T", core.ErrKindMismatch, name, value)
	}
	return nil
}

// WithScenario attaches a global scenario applied to every generated case.
func (m *Moriarty) WithScenario(s *core.Scenario) *Moriarty {
	m.scenarios = append(m.scenarios, s)
	return m
}

// AddGenerator registers a test-case generator. Generators run in
// registration order.
func (m *Moriarty) AddGenerator(g Generator) *Moriarty {
	m.generators = append(m.generators, g)
	return m
}

// SetExporter installs the export format.
func (m *Moriarty) SetExporter(e Exporter) *Moriarty {
	m.exporter = e
	return m
}

// SetImporter installs the import format.
func (m *Moriarty) SetImporter(i Importer) *Moriarty {
	m.importer = i
	return m
}

// GeneratedCase is one generated test case: its values plus the metadata
// recording where it came from.
type GeneratedCase struct {
	Metadata core.TestCaseMetadata
	Values   *core.ValueSet
}

// GenerateTestCases runs every registered generator (or one default case
// when none are registered), generates values for each case in batch
// order, and numbers the results 1-based. Optional cases are dropped when
// generation fails retryably or the soft size limit has been reached;
// failures on required cases propagate.
func (m *Moriarty) GenerateTestCases() ([]*GeneratedCase, error) {
	cases, err := m.collectCases()
	if err != nil {
		return nil, err
	}

	var (
		out       []*GeneratedCase
		totalSize int64
	)
	for _, tc := range cases {
		seq := len(out) + 1
		overBudget := m.softSizeLimit > 0 && totalSize >= m.softSizeLimit
		if overBudget && !tc.Required() {
			continue
		}

		remaining := int64(0)
		if m.softSizeLimit > 0 {
			remaining = m.softSizeLimit - totalSize
			if remaining < 1 {
				remaining = 1 // required case past the budget: keep it minimal
			}
		}
		vals, err := m.generateCase(tc, seq, remaining)
		if err != nil {
			// Optional cases absorb failures at any step; required cases
			// propagate them.
			if !tc.Required() {
				continue
			}
			return nil, fmt.Errorf("moriarty: %s: %w", tc.Metadata(), err)
		}

		meta := tc.Metadata()
		meta.SequenceNumber = seq
		out = append(out, &GeneratedCase{Metadata: meta, Values: vals})
		totalSize += vals.ApproxSize()
	}

	return out, nil
}

// collectCases gathers the batch: every generator's cases in registration
// order, or one unconstrained required case when no generator is set.
func (m *Moriarty) collectCases() ([]*core.TestCase, error) {
	if len(m.generators) == 0 {
		return []*core.TestCase{core.NewTestCase()}, nil
	}
	src := random.NewSource(m.deriveSeed(0))
	var cases []*core.TestCase
	for _, g := range m.generators {
		batch, err := g.Cases(m.vars, src)
		if err != nil {
			return nil, fmt.Errorf("moriarty: generator %q: %w", g.Name(), err)
		}
		cases = append(cases, batch...)
	}
	return cases, nil
}

// generateCase merges the case over the global variables, applies the
// scenarios, and drives gen.GenerateAll with a per-case seed. remaining is
// the size budget left for this case; 0 disables the limit.
func (m *Moriarty) generateCase(tc *core.TestCase, seq int, remaining int64) (*core.ValueSet, error) {
	vars := m.vars.Clone()
	for _, name := range tc.Variables().Names() {
		v, err := tc.Variables().GetVariable(name)
		if err != nil {
			return nil, err
		}
		if err := vars.AddOrMergeVariable(name, v.Clone()); err != nil {
			return nil, err
		}
	}
	for _, s := range m.scenarios {
		if err := vars.WithScenario(s); err != nil {
			return nil, err
		}
	}
	for _, s := range tc.Scenarios() {
		if err := vars.WithScenario(s); err != nil {
			return nil, err
		}
	}

	return gen.GenerateAll(vars, m.known,
		gen.WithSeed(m.deriveSeed(int64(seq))),
		gen.WithSoftSizeLimit(remaining),
		gen.WithRetryBudget(m.retryBudget))
}

// deriveSeed extends the driver seed with a stream tag, so each case draws
// an independent but reproducible stream.
func (m *Moriarty) deriveSeed(tag int64) random.Seed {
	ints := append(append([]int64(nil), m.seed.Ints...), tag)
	return random.Seed{Ints: ints, Version: m.seed.Version}
}

// ValidateTestCases checks every imported value set against the driver's
// variables. The first violation is returned with the 1-based case index.
func (m *Moriarty) ValidateTestCases(cases []*core.ValueSet) error {
	for i, vals := range cases {
		vars := m.vars.Clone()
		u := core.NewUniverse().
			WithConstValueSet(vals).
			WithMutableVariableSet(vars)
		if err := vars.AllVariablesSatisfyConstraints(u); err != nil {
			return fmt.Errorf("moriarty: case %d: %w", i+1, err)
		}
	}
	return nil
}

// ExportTestCases writes a generated batch through the installed exporter.
func (m *Moriarty) ExportTestCases(w io.Writer, batch []*GeneratedCase) error {
	if m.exporter == nil {
		return status.Misconfigured("Moriarty", "ExportTestCases", "exporter")
	}
	cases := make([]*core.ValueSet, len(batch))
	for i, c := range batch {
		cases[i] = c.Values
	}
	return m.exporter.Export(w, m.vars, m.known, cases)
}

// ImportTestCases reads a batch through the installed importer and
// validates every case against the driver's variables.
func (m *Moriarty) ImportTestCases(r io.Reader) (*simpleio.ImportResult, error) {
	if m.importer == nil {
		return nil, status.Misconfigured("Moriarty", "ImportTestCases", "importer")
	}
	res, err := m.importer.Import(r, m.vars)
	if err != nil {
		return nil, err
	}
	if err := m.ValidateTestCases(res.Cases); err != nil {
		return nil, err
	}
	return res, nil
}

// MustGenerateTestCases is GenerateTestCases aborting on failure.
func (m *Moriarty) MustGenerateTestCases() []*GeneratedCase {
	batch, err := m.GenerateTestCases()
	if err != nil {
		panic(fmt.Sprintf("moriarty: MustGenerateTestCases: GenerateTestCases: %v", err))
	}
	return batch
}

// MustExportTestCases is ExportTestCases aborting on failure.
func (m *Moriarty) MustExportTestCases(w io.Writer, batch []*GeneratedCase) {
	if err := m.ExportTestCases(w, batch); err != nil {
		panic(fmt.Sprintf("moriarty: MustExportTestCases: ExportTestCases: %v", err))
	}
}

// MustImportTestCases is ImportTestCases aborting on failure.
func (m *Moriarty) MustImportTestCases(r io.Reader) *simpleio.ImportResult {
	res, err := m.ImportTestCases(r)
	if err != nil {
		panic(fmt.Sprintf("moriarty: MustImportTestCases: ImportTestCases: %v", err))
	}
	return res
}
