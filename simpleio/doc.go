// Package simpleio moves test-case values through line-oriented token
// streams.
//
// A Format describes the file shape with three line lists: header lines
// (once), per-case lines (repeated per test case) and footer lines (once),
// optionally preceded by a line carrying the number of test cases. Each
// line is a sequence of tokens: either a variable reference, which prints
// and parses through the variable's own format, or a literal, which must
// appear verbatim.
//
// Two whitespace policies are supported. Exact demands the canonical
// layout: tokens separated by single spaces, one line per Line, every
// newline in place; the export/import pair round-trips token for token.
// IgnoreWhitespace treats any run of spaces, tabs and newlines as one
// separator on import.
//
// The package also provides Reader and Writer, plain token adapters over
// io.Reader/io.Writer that satisfy the engine's I/O contract for callers
// who do not need a Format.
package simpleio
