// Package: moriarty/covering
//
// generator.go — covering rows lifted into corner-case test cases.
package covering

import (
	"fmt"

	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/random"
)

// CasesGenerator produces combinatorial corner-case test cases: each
// variable's difficult instances form one dimension, and each row of a
// strength-t covering array over those dimensions becomes one optional
// test case.
type CasesGenerator struct {
	name       string
	strength   int
	iterations int
}

// NewCasesGenerator returns a generator named name building arrays of the
// given strength. The strength is clipped to the variable count at run
// time, so strength 2 over a single variable degrades to strength 1.
func NewCasesGenerator(name string, strength int) *CasesGenerator {
	return &CasesGenerator{name: name, strength: strength}
}

// Name identifies the generator in case metadata.
func (g *CasesGenerator) Name() string { return g.name }

// Cases builds one batch of test cases over the variables in vs. Every
// returned case is optional: a corner case the soft size limit may drop.
func (g *CasesGenerator) Cases(vs *core.VariableSet, src *random.Source) ([]*core.TestCase, error) {
	g.iterations++
	names := vs.Names()
	if len(names) == 0 {
		return nil, nil
	}

	// One dimension per variable: its difficult instances, or the variable
	// itself when it reports none.
	instances := make([][]core.Variable, len(names))
	dims := make([]int, len(names))
	for i, name := range names {
		v, err := vs.GetVariable(name)
		if err != nil {
			return nil, err
		}
		hard := v.GetDifficultInstances()
		if len(hard) == 0 {
			hard = []core.Variable{v.Clone()}
		}
		instances[i] = hard
		dims[i] = len(hard)
	}

	strength := g.strength
	if strength > len(names) {
		strength = len(names)
	}
	rows, err := Build(dims, strength, src)
	if err != nil {
		return nil, fmt.Errorf("covering: generator %q: %w", g.name, err)
	}

	cases := make([]*core.TestCase, 0, len(rows))
	for ordinal, row := range rows {
		tc := core.NewTestCase().SetRequired(false)
		for i, name := range names {
			if err := tc.ConstrainVariable(name, instances[i][row[i]].Clone()); err != nil {
				return nil, fmt.Errorf("covering: generator %q, case %d: %w", g.name, ordinal+1, err)
			}
		}
		tc.SetMetadata(core.TestCaseMetadata{
			Origin: &core.GeneratedBy{
				GeneratorName: g.name,
				Iteration:     g.iterations,
				CaseOrdinal:   ordinal + 1,
			},
		})
		cases = append(cases, tc)
	}

	return cases, nil
}
