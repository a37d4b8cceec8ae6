// Package: moriarty/interval
//
// range.go — the Range type: numeric + symbolic bounds, intersection,
// effective-extreme computation, needed variables, rendering.
package interval

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/moriarty/expr"
)

// Extremes is the effective closed interval of a Range under an environment.
type Extremes struct {
	Lo int64
	Hi int64
}

// Range is a closed integer interval with optional symbolic bounds.
// The zero value is NOT the full range; use NewRange.
//
// Ranges are immutable from the caller's perspective: every AtLeast/AtMost/
// Intersect returns a derived Range and leaves the receiver untouched, so a
// Range may be shared between a variable and its clones safely.
type Range struct {
	lo, hi   int64
	exprLo   []*expr.Expression
	exprHi   []*expr.Expression
	paramErr error // sticky: first AtLeastExpr/AtMostExpr parse failure
}

// NewRange returns the unconstrained range [MinInt64, MaxInt64].
func NewRange() *Range {
	return &Range{lo: math.MinInt64, hi: math.MaxInt64}
}

// Between returns the numeric range [lo, hi]. lo > hi is representable and
// simply reports empty from Extremes.
func Between(lo, hi int64) *Range {
	return &Range{lo: lo, hi: hi}
}

// Clone returns a deep copy of r, including symbolic bound lists.
func (r *Range) Clone() *Range {
	c := &Range{lo: r.lo, hi: r.hi, paramErr: r.paramErr}
	for _, e := range r.exprLo {
		c.exprLo = append(c.exprLo, e.Clone())
	}
	for _, e := range r.exprHi {
		c.exprHi = append(c.exprHi, e.Clone())
	}
	return c
}

// AtLeast returns r additionally bounded below by v.
func (r *Range) AtLeast(v int64) *Range {
	c := r.Clone()
	if v > c.lo {
		c.lo = v
	}
	return c
}

// AtMost returns r additionally bounded above by v.
func (r *Range) AtMost(v int64) *Range {
	c := r.Clone()
	if v < c.hi {
		c.hi = v
	}
	return c
}

// AtLeastExpr returns r additionally bounded below by the expression s.
// A parse failure is remembered and surfaced by Extremes/NeededVariables.
func (r *Range) AtLeastExpr(s string) *Range {
	c := r.Clone()
	e, err := expr.Parse(s)
	if err != nil {
		if c.paramErr == nil {
			c.paramErr = fmt.Errorf("interval: AtLeastExpr(%q): %w", s, err)
		}
		return c
	}
	c.exprLo = append(c.exprLo, e)
	return c
}

// AtMostExpr returns r additionally bounded above by the expression s.
// A parse failure is remembered and surfaced by Extremes/NeededVariables.
func (r *Range) AtMostExpr(s string) *Range {
	c := r.Clone()
	e, err := expr.Parse(s)
	if err != nil {
		if c.paramErr == nil {
			c.paramErr = fmt.Errorf("interval: AtMostExpr(%q): %w", s, err)
		}
		return c
	}
	c.exprHi = append(c.exprHi, e)
	return c
}

// Intersect returns the intersection of r and other: lower bounds take the
// maximum, upper bounds take the minimum, symbolic lists concatenate. The
// first sticky parameter error of either operand is kept.
func (r *Range) Intersect(other *Range) *Range {
	c := r.Clone()
	if other == nil {
		return c
	}
	if other.lo > c.lo {
		c.lo = other.lo
	}
	if other.hi < c.hi {
		c.hi = other.hi
	}
	for _, e := range other.exprLo {
		c.exprLo = append(c.exprLo, e.Clone())
	}
	for _, e := range other.exprHi {
		c.exprHi = append(c.exprHi, e.Clone())
	}
	if c.paramErr == nil {
		c.paramErr = other.paramErr
	}
	return c
}

// Extremes computes the effective bounds under env. ok is false when the
// range is empty; err is non-nil for sticky parameter errors and for
// expression evaluation failures (overflow, missing variables).
func (r *Range) Extremes(env map[string]int64) (Extremes, bool, error) {
	if r.paramErr != nil {
		return Extremes{}, false, r.paramErr
	}
	lo, hi := r.lo, r.hi
	for _, e := range r.exprLo {
		v, err := e.Eval(env)
		if err != nil {
			return Extremes{}, false, fmt.Errorf("interval: lower bound %s: %w", e, err)
		}
		if v > lo {
			lo = v
		}
	}
	for _, e := range r.exprHi {
		v, err := e.Eval(env)
		if err != nil {
			return Extremes{}, false, fmt.Errorf("interval: upper bound %s: %w", e, err)
		}
		if v < hi {
			hi = v
		}
	}
	if lo > hi {
		return Extremes{}, false, nil
	}

	return Extremes{Lo: lo, Hi: hi}, true, nil
}

// NeededVariables returns the sorted union of variable names referenced by
// the symbolic bounds, or the sticky parameter error.
func (r *Range) NeededVariables() ([]string, error) {
	if r.paramErr != nil {
		return nil, r.paramErr
	}
	seen := make(map[string]struct{})
	for _, e := range r.exprLo {
		for _, n := range e.NeededVariables() {
			seen[n] = struct{}{}
		}
	}
	for _, e := range r.exprHi {
		for _, n := range e.NeededVariables() {
			seen[n] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)

	return names, nil
}

// String renders "[lo, hi]". When several bounds compete on a side, the side
// is wrapped in max(…) (lower) or min(…) (upper). Unbounded sides render as
// -inf / inf.
func (r *Range) String() string {
	return "[" + r.renderSide(true) + ", " + r.renderSide(false) + "]"
}

// renderSide assembles the candidate list for one side of the interval.
func (r *Range) renderSide(lower bool) string {
	var cands []string
	if lower {
		if r.lo != math.MinInt64 {
			cands = append(cands, strconv.FormatInt(r.lo, 10))
		}
		for _, e := range r.exprLo {
			cands = append(cands, e.String())
		}
		if len(cands) == 0 {
			return "-inf"
		}
		if len(cands) == 1 {
			return cands[0]
		}
		return "max(" + strings.Join(cands, ", ") + ")"
	}
	if r.hi != math.MaxInt64 {
		cands = append(cands, strconv.FormatInt(r.hi, 10))
	}
	for _, e := range r.exprHi {
		cands = append(cands, e.String())
	}
	if len(cands) == 0 {
		return "inf"
	}
	if len(cands) == 1 {
		return cands[0]
	}
	return "min(" + strings.Join(cands, ", ") + ")"
}
