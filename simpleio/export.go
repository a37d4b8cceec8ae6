// Package: moriarty/simpleio
//
// export.go — render value sets through a Format.
package simpleio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/moriarty/core"
)

// Export writes the case value sets to w in the Format's layout. Header and
// footer variable references resolve against global; per-case references
// resolve against the case's values layered over global.
func (f *Format) Export(w io.Writer, vs *core.VariableSet, global *core.ValueSet, cases []*core.ValueSet) error {
	bw := bufio.NewWriter(w)
	out := NewWriter(bw)

	if f.caseCountHeader {
		if err := out.PrintToken(strconv.Itoa(len(cases))); err != nil {
			return err
		}
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	if err := f.writeLines(out, f.header, vs, global); err != nil {
		return err
	}
	for i, c := range cases {
		if err := f.writeLines(out, f.perCase, vs, layer(global, c)); err != nil {
			return fmt.Errorf("simpleio: case %d: %w", i+1, err)
		}
	}
	if err := f.writeLines(out, f.footer, vs, global); err != nil {
		return err
	}

	return bw.Flush()
}

func (f *Format) writeLines(out *Writer, lines []Line, vs *core.VariableSet, vals *core.ValueSet) error {
	u := core.NewUniverse().WithConstValueSet(vals).WithIOAdapter(out)
	for _, line := range lines {
		for _, tok := range line {
			if tok.variable == "" {
				if err := out.PrintToken(tok.literal); err != nil {
					return err
				}
				continue
			}
			v, err := vs.GetVariable(tok.variable)
			if err != nil {
				return err
			}
			if err := v.PrintValue(u); err != nil {
				return fmt.Errorf("simpleio: printing %q: %w", tok.variable, err)
			}
		}
		if err := out.EndLine(); err != nil {
			return err
		}
	}

	return nil
}

// layer copies base and overlays top on it.
func layer(base, top *core.ValueSet) *core.ValueSet {
	out := core.NewValueSet()
	for _, set := range []*core.ValueSet{base, top} {
		if set == nil {
			continue
		}
		for _, name := range set.Names() {
			v, _ := set.UnsafeGet(name)
			out.SetUntyped(name, v)
		}
	}

	return out
}
