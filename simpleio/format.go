// Package: moriarty/simpleio
//
// format.go — the Format description: lines, tokens, policies.
package simpleio

import "errors"

// WhitespacePolicy controls how strictly imports treat layout.
type WhitespacePolicy int

const (
	// Exact requires the canonical layout byte for byte: single spaces
	// between tokens, one input line per Line.
	Exact WhitespacePolicy = iota

	// IgnoreWhitespace treats any whitespace run as one token separator.
	IgnoreWhitespace
)

var (
	// ErrTokenMismatch indicates a literal token did not appear verbatim.
	ErrTokenMismatch = errors.New("simpleio: literal token mismatch")

	// ErrLineStructure indicates the input's line layout diverged from the
	// Format under the Exact policy.
	ErrLineStructure = errors.New("simpleio: line structure mismatch")

	// ErrUnexpectedEOF indicates the stream ended mid-format.
	ErrUnexpectedEOF = errors.New("simpleio: unexpected end of input")

	// ErrBadCaseCount indicates an unparsable or negative case-count line.
	ErrBadCaseCount = errors.New("simpleio: bad test-case count")

	// ErrReadFromWriter indicates ReadToken on a write-side adapter.
	ErrReadFromWriter = errors.New("simpleio: adapter is write-only")

	// ErrWriteToReader indicates PrintToken on a read-side adapter.
	ErrWriteToReader = errors.New("simpleio: adapter is read-only")
)

// Token is one element of a Line: a variable reference or a literal.
type Token struct {
	variable string
	literal  string
}

// Var references a variable by name; it prints and parses through the
// variable's own format.
func Var(name string) Token { return Token{variable: name} }

// Lit is a literal token that must appear verbatim.
func Lit(s string) Token { return Token{literal: s} }

// Line is one line of tokens.
type Line []Token

// Format is the file-shape description.
type Format struct {
	header          []Line
	perCase         []Line
	footer          []Line
	caseCountHeader bool
	policy          WhitespacePolicy
}

// NewFormat returns an empty Exact-policy format.
func NewFormat() *Format {
	return &Format{policy: Exact}
}

// WithCaseCountHeader prefixes the stream with a line holding the number
// of test cases.
func (f *Format) WithCaseCountHeader() *Format {
	f.caseCountHeader = true
	return f
}

// WithHeaderLine appends one header line.
func (f *Format) WithHeaderLine(tokens ...Token) *Format {
	f.header = append(f.header, Line(tokens))
	return f
}

// WithCaseLine appends one per-test-case line.
func (f *Format) WithCaseLine(tokens ...Token) *Format {
	f.perCase = append(f.perCase, Line(tokens))
	return f
}

// WithFooterLine appends one footer line.
func (f *Format) WithFooterLine(tokens ...Token) *Format {
	f.footer = append(f.footer, Line(tokens))
	return f
}

// WithPolicy sets the whitespace policy.
func (f *Format) WithPolicy(p WhitespacePolicy) *Format {
	f.policy = p
	return f
}
