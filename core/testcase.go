// Package: moriarty/core
//
// testcase.go — the TestCase record and its metadata.
package core

import (
	"fmt"

	"github.com/katalvlaran/moriarty/status"
)

// TestCase is one case to generate or validate: a variable set (the global
// variables merged with case-local constraints) plus the scenarios to apply
// before generation. Optional cases may be dropped when generation hits the
// soft size limit or a retryable failure; required cases propagate failures.
type TestCase struct {
	vars      *VariableSet
	scenarios []*Scenario
	required  bool
	metadata  TestCaseMetadata
}

// NewTestCase returns an empty, required test case.
func NewTestCase() *TestCase {
	return &TestCase{vars: NewVariableSet(), required: true}
}

// ConstrainVariable inserts-or-merges v under name.
func (tc *TestCase) ConstrainVariable(name string, v Variable) error {
	return tc.vars.AddOrMergeVariable(name, v)
}

// PinVariableFunc builds a variable constrained to exactly v. The concrete
// variable package registers one at init, which keeps SetValue free of a
// dependency on it.
type PinVariableFunc func(v Value) (Variable, error)

var pinVariable PinVariableFunc

// RegisterPinVariable installs the factory TestCase.SetValue dispatches to.
func RegisterPinVariable(f PinVariableFunc) { pinVariable = f }

// SetValue constrains name to exactly v: ConstrainVariable with a variable
// of v's kind pinned to v, so it merges with constraints already present.
func (tc *TestCase) SetValue(name string, v Value) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if pinVariable == nil {
		return status.Misconfigured("TestCase", "SetValue", "pinned-variable factory")
	}
	pinned, err := pinVariable(v)
	if err != nil {
		return fmt.Errorf("TestCase.SetValue(%q): %w", name, err)
	}

	return tc.vars.AddOrMergeVariable(name, pinned)
}

// WithScenario attaches a scenario; scenarios apply in attachment order.
func (tc *TestCase) WithScenario(s *Scenario) *TestCase {
	tc.scenarios = append(tc.scenarios, s)
	return tc
}

// Scenarios returns the attached scenarios in attachment order.
func (tc *TestCase) Scenarios() []*Scenario {
	return append([]*Scenario(nil), tc.scenarios...)
}

// Variables exposes the case's variable set.
func (tc *TestCase) Variables() *VariableSet {
	return tc.vars
}

// SetRequired marks whether a generation failure drops the case (optional)
// or propagates (required).
func (tc *TestCase) SetRequired(required bool) *TestCase {
	tc.required = required
	return tc
}

// Required reports whether the case must be generated.
func (tc *TestCase) Required() bool {
	return tc.required
}

// Metadata returns the case metadata record.
func (tc *TestCase) Metadata() TestCaseMetadata {
	return tc.metadata
}

// SetMetadata records the case metadata.
func (tc *TestCase) SetMetadata(m TestCaseMetadata) {
	tc.metadata = m
}

// Clone deep-copies the case (variables, scenarios, metadata).
func (tc *TestCase) Clone() *TestCase {
	c := &TestCase{
		vars:     tc.vars.Clone(),
		required: tc.required,
		metadata: tc.metadata,
	}
	for _, s := range tc.scenarios {
		c.scenarios = append(c.scenarios, s.Clone())
	}
	return c
}

// GeneratedBy records which generator produced a case.
type GeneratedBy struct {
	// GeneratorName identifies the generator.
	GeneratorName string

	// Iteration counts the generator's invocations, 1-based.
	Iteration int

	// CaseOrdinal is the case's position within that invocation, 1-based.
	CaseOrdinal int
}

// TestCaseMetadata carries the 1-based sequence number of a case and,
// optionally, the record of the generator that produced it.
type TestCaseMetadata struct {
	// SequenceNumber is 1-based across the whole batch; 0 means unassigned.
	SequenceNumber int

	// Origin is nil for hand-written cases.
	Origin *GeneratedBy
}

// String renders the metadata for diagnostics.
func (m TestCaseMetadata) String() string {
	if m.Origin == nil {
		return fmt.Sprintf("case #%d", m.SequenceNumber)
	}
	return fmt.Sprintf("case #%d (generator %q, iteration %d, ordinal %d)",
		m.SequenceNumber, m.Origin.GeneratorName, m.Origin.Iteration, m.Origin.CaseOrdinal)
}
