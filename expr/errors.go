// Package: moriarty/expr
//
// errors.go — sentinel errors for the expression engine.
//
// Error policy (matching the rest of moriarty):
//   - Only package-level sentinels are exported.
//   - Callers branch with errors.Is; implementations attach context via %w.
//   - No panics at runtime.
package expr

import "errors"

// ErrParse indicates the input string is not a well-formed expression.
// The wrapped message names the offending token or position.
var ErrParse = errors.New("expr: parse failure")

// ErrOverflow indicates an intermediate 64-bit computation overflowed,
// including negation of the smallest representable integer and 0^0 /
// negative exponents in pow.
var ErrOverflow = errors.New("expr: arithmetic overflow")

// ErrDivisionByZero indicates division or modulo by zero.
var ErrDivisionByZero = errors.New("expr: division by zero")

// ErrNeedsVariable indicates evaluation referenced a name absent from the
// environment. The wrapped message carries the missing name.
var ErrNeedsVariable = errors.New("expr: needs variable")

// ErrUnknownFunction indicates a call to a function other than min/max/abs.
var ErrUnknownFunction = errors.New("expr: unknown function")
