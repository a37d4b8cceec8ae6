// Package: moriarty/expr
//
// token.go — the hand-written tokenizer feeding the shunting-yard parser.
//
// Tokens: integer literal (greedy digit run, overflow-checked), identifier
// (letter, then letters/digits/underscores; becomes a function-start token
// when immediately followed by '('), operator, parenthesis, comma, end.
// Whitespace between tokens is skipped.
package expr

import (
	"fmt"
	"math"
)

// tokenKind classifies lexer output.
type tokenKind int

const (
	tokEnd tokenKind = iota
	tokInt
	tokIdent
	tokFunc // identifier immediately followed by '('
	tokOp   // one of + - * / % ^
	tokLParen
	tokRParen
	tokComma
)

// token is a single lexeme. val is set for tokInt, name for tokIdent/tokFunc,
// op for tokOp.
type token struct {
	kind tokenKind
	val  int64
	name string
	op   byte
	pos  int // byte offset in the input, for error messages
}

// isLetter reports whether c may start an identifier.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdentRune reports whether c may continue an identifier.
func isIdentRune(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// tokenize splits s into tokens, appending a final tokEnd.
// Integer literals that do not fit int64 fail here, not at evaluation.
func tokenize(s string) ([]token, error) {
	toks := make([]token, 0, len(s)/2+1)
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c):
			start := i
			var v int64
			for i < len(s) && isDigit(s[i]) {
				d := int64(s[i] - '0')
				if v > (math.MaxInt64-d)/10 {
					return nil, fmt.Errorf("%w: integer literal at %d exceeds 64 bits", ErrParse, start)
				}
				v = v*10 + d
				i++
			}
			// A literal immediately followed by a letter is a malformed name,
			// not two tokens (e.g. "2x").
			if i < len(s) && isLetter(s[i]) {
				return nil, fmt.Errorf("%w: unexpected identifier character after literal at %d", ErrParse, i)
			}
			toks = append(toks, token{kind: tokInt, val: v, pos: start})
		case isLetter(c):
			start := i
			for i < len(s) && isIdentRune(s[i]) {
				i++
			}
			name := s[start:i]
			// Lookahead past whitespace is NOT performed: a function start
			// requires '(' immediately after the name.
			if i < len(s) && s[i] == '(' {
				toks = append(toks, token{kind: tokFunc, name: name, pos: start})
				i++ // consume the '(' as part of the function-start token
			} else {
				toks = append(toks, token{kind: tokIdent, name: name, pos: start})
			}
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '%' || c == '^':
			toks = append(toks, token{kind: tokOp, op: c, pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at %d", ErrParse, c, i)
		}
	}
	toks = append(toks, token{kind: tokEnd, pos: len(s)})

	return toks, nil
}
