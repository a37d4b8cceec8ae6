// Package: moriarty/simpleio
//
// import.go — parse token streams back into value sets.
package simpleio

import (
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/moriarty/core"
)

// ImportResult carries everything one Import call recovered.
type ImportResult struct {
	// Header holds the values read by header-line variable references.
	Header *core.ValueSet

	// Cases holds one value set per imported test case.
	Cases []*core.ValueSet

	// Footer holds the values read by footer-line variable references.
	Footer *core.ValueSet

	// NumTestCasesInHeader is the count read from the case-count line;
	// meaningful only when HasCaseCountHeader is set.
	NumTestCasesInHeader int

	// HasCaseCountHeader reports whether the format carried a count line.
	HasCaseCountHeader bool
}

// Import parses r according to the Format. With a case-count header the
// count line bounds the case loop; without one, cases are read until the
// input is exhausted (under IgnoreWhitespace this requires an empty
// footer, since nothing else separates the last case from it).
func (f *Format) Import(r io.Reader, vs *core.VariableSet) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("simpleio: import: %w", err)
	}
	var s tokenStream
	if f.policy == Exact {
		es, err := newExactStream(string(data))
		if err != nil {
			return nil, err
		}
		s = es
	} else {
		s = newLooseStream(string(data))
	}

	res := &ImportResult{Header: core.NewValueSet(), Footer: core.NewValueSet()}
	count := -1
	if f.caseCountHeader {
		if err := s.startLine(); err != nil {
			return nil, err
		}
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadCaseCount, tok)
		}
		if err := s.endLine(); err != nil {
			return nil, err
		}
		res.HasCaseCountHeader = true
		res.NumTestCasesInHeader = n
		count = n
	}

	if err := f.readLines(s, f.header, vs, res.Header); err != nil {
		return nil, fmt.Errorf("simpleio: header: %w", err)
	}

	if count >= 0 {
		for i := 0; i < count; i++ {
			c, err := f.readCase(s, vs)
			if err != nil {
				return nil, fmt.Errorf("simpleio: case %d: %w", i+1, err)
			}
			res.Cases = append(res.Cases, c)
		}
	} else {
		if f.policy == IgnoreWhitespace && len(f.footer) > 0 {
			return nil, fmt.Errorf("%w: a footer without a case-count header needs the Exact policy",
				ErrBadCaseCount)
		}
		for !f.casesDone(s) {
			c, err := f.readCase(s, vs)
			if err != nil {
				return nil, fmt.Errorf("simpleio: case %d: %w", len(res.Cases)+1, err)
			}
			res.Cases = append(res.Cases, c)
		}
	}

	if err := f.readLines(s, f.footer, vs, res.Footer); err != nil {
		return nil, fmt.Errorf("simpleio: footer: %w", err)
	}
	if !s.exhausted() {
		return nil, fmt.Errorf("%w: trailing content after the format", ErrLineStructure)
	}

	return res, nil
}

// casesDone reports whether only the footer remains. Under Exact the line
// counter answers this precisely; under IgnoreWhitespace the footer is
// known to be empty, so plain exhaustion is the stop condition.
func (f *Format) casesDone(s tokenStream) bool {
	if es, ok := s.(*exactStream); ok {
		return len(es.lines)-es.lineIdx <= len(f.footer)
	}
	return s.exhausted()
}

func (f *Format) readCase(s tokenStream, vs *core.VariableSet) (*core.ValueSet, error) {
	vals := core.NewValueSet()
	if err := f.readLines(s, f.perCase, vs, vals); err != nil {
		return nil, err
	}
	return vals, nil
}

func (f *Format) readLines(s tokenStream, lines []Line, vs *core.VariableSet, vals *core.ValueSet) error {
	u := core.NewUniverse().
		WithConstValueSet(vals).
		WithIOAdapter(&streamAdapter{s: s})
	for _, line := range lines {
		if err := s.startLine(); err != nil {
			return err
		}
		for _, tok := range line {
			if tok.variable == "" {
				got, err := s.next()
				if err != nil {
					return err
				}
				if got != tok.literal {
					return fmt.Errorf("%w: want %q, got %q", ErrTokenMismatch, tok.literal, got)
				}
				continue
			}
			v, err := vs.GetVariable(tok.variable)
			if err != nil {
				return err
			}
			val, err := v.ReadValue(u)
			if err != nil {
				return fmt.Errorf("reading %q: %w", tok.variable, err)
			}
			vals.SetUntyped(tok.variable, val)
		}
		if err := s.endLine(); err != nil {
			return err
		}
	}

	return nil
}
