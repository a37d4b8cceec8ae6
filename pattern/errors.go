// Package: moriarty/pattern
//
// errors.go — sentinel errors for SimplePattern.
package pattern

import "errors"

// ErrParse indicates the pattern text is not well-formed. The wrapped
// message names the offending construct and position.
var ErrParse = errors.New("pattern: parse failure")

// ErrUnboundedRepeat indicates generation was requested for a pattern
// containing '*' or '+' (or '{n,}') without an explicit upper bound.
var ErrUnboundedRepeat = errors.New("pattern: unbounded repetition cannot generate")

// ErrEmptyAlphabet indicates a mandatory character-set leaf was left with no
// permitted characters (typically after alphabet restriction) and the
// pattern has no empty-string alternative to fall back to.
var ErrEmptyAlphabet = errors.New("pattern: empty effective alphabet")
