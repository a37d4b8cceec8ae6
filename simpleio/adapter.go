// Package: moriarty/simpleio
//
// adapter.go — token adapters over io.Reader/io.Writer and the internal
// streams Export/Import run on.
package simpleio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Reader is a read-side token adapter: whitespace-separated tokens from an
// io.Reader.
type Reader struct {
	s *bufio.Scanner
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &Reader{s: s}
}

// ReadToken returns the next whitespace-separated token.
func (r *Reader) ReadToken() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", fmt.Errorf("simpleio: read token: %w", err)
		}
		return "", ErrUnexpectedEOF
	}
	return r.s.Text(), nil
}

// PrintToken always fails: Reader is read-only.
func (r *Reader) PrintToken(string) error { return ErrWriteToReader }

// Writer is a write-side token adapter: tokens separated by single spaces.
// EndLine terminates the current line.
type Writer struct {
	w       io.Writer
	midLine bool
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// PrintToken writes one token, space-separated from the previous one.
func (w *Writer) PrintToken(tok string) error {
	sep := ""
	if w.midLine {
		sep = " "
	}
	if _, err := fmt.Fprintf(w.w, "%s%s", sep, tok); err != nil {
		return fmt.Errorf("simpleio: print token: %w", err)
	}
	w.midLine = true
	return nil
}

// EndLine writes the newline terminating the current line.
func (w *Writer) EndLine() error {
	if _, err := io.WriteString(w.w, "\n"); err != nil {
		return fmt.Errorf("simpleio: end line: %w", err)
	}
	w.midLine = false
	return nil
}

// ReadToken always fails: Writer is write-only.
func (w *Writer) ReadToken() (string, error) { return "", ErrReadFromWriter }

// tokenStream is the import-side cursor. The Exact implementation enforces
// line boundaries; the loose one flattens the whole input.
type tokenStream interface {
	next() (string, error)
	startLine() error
	endLine() error
	exhausted() bool
}

// exactStream holds the input split into lines, each split on single
// spaces, and refuses any deviation from that layout.
type exactStream struct {
	lines   [][]string
	lineIdx int
	tokIdx  int
	inLine  bool
}

func newExactStream(input string) (*exactStream, error) {
	if input == "" {
		return &exactStream{}, nil
	}
	if !strings.HasSuffix(input, "\n") {
		return nil, fmt.Errorf("%w: missing trailing newline", ErrLineStructure)
	}
	raw := strings.Split(strings.TrimSuffix(input, "\n"), "\n")
	lines := make([][]string, len(raw))
	for i, line := range raw {
		fields := strings.Split(line, " ")
		for _, f := range fields {
			if f == "" {
				return nil, fmt.Errorf("%w: extra whitespace on line %d", ErrLineStructure, i+1)
			}
		}
		lines[i] = fields
	}
	return &exactStream{lines: lines}, nil
}

func (s *exactStream) startLine() error {
	if s.inLine {
		return fmt.Errorf("%w: line %d not finished", ErrLineStructure, s.lineIdx+1)
	}
	if s.lineIdx >= len(s.lines) {
		return ErrUnexpectedEOF
	}
	s.inLine = true
	s.tokIdx = 0
	return nil
}

func (s *exactStream) next() (string, error) {
	if !s.inLine || s.tokIdx >= len(s.lines[s.lineIdx]) {
		return "", fmt.Errorf("%w: line %d has too few tokens", ErrLineStructure, s.lineIdx+1)
	}
	tok := s.lines[s.lineIdx][s.tokIdx]
	s.tokIdx++
	return tok, nil
}

func (s *exactStream) endLine() error {
	if !s.inLine {
		return fmt.Errorf("%w: no line open", ErrLineStructure)
	}
	if s.tokIdx != len(s.lines[s.lineIdx]) {
		return fmt.Errorf("%w: line %d has %d extra token(s)",
			ErrLineStructure, s.lineIdx+1, len(s.lines[s.lineIdx])-s.tokIdx)
	}
	s.inLine = false
	s.lineIdx++
	return nil
}

func (s *exactStream) exhausted() bool {
	return !s.inLine && s.lineIdx >= len(s.lines)
}

// looseStream flattens the input into one token sequence; line calls are
// no-ops.
type looseStream struct {
	toks []string
	idx  int
}

func newLooseStream(input string) *looseStream {
	return &looseStream{toks: strings.Fields(input)}
}

func (s *looseStream) startLine() error { return nil }
func (s *looseStream) endLine() error   { return nil }

func (s *looseStream) next() (string, error) {
	if s.idx >= len(s.toks) {
		return "", ErrUnexpectedEOF
	}
	tok := s.toks[s.idx]
	s.idx++
	return tok, nil
}

func (s *looseStream) exhausted() bool { return s.idx >= len(s.toks) }

// streamAdapter satisfies the engine's I/O contract over a tokenStream, so
// variables parse their own values during Import.
type streamAdapter struct {
	s tokenStream
}

func (a *streamAdapter) ReadToken() (string, error) { return a.s.next() }
func (a *streamAdapter) PrintToken(string) error    { return ErrWriteToReader }
