// Package: moriarty/vartypes
//
// minteger.go — the 64-bit integer variable.
package vartypes

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/interval"
	"github.com/katalvlaran/moriarty/status"
)

// TypenameInteger is MInteger's stable type-name.
const TypenameInteger = "MInteger"

// MInteger is an integer variable constrained by a Range. Values are int64.
type MInteger struct {
	base
	rng *interval.Range
}

// NewInteger returns an unconstrained integer variable.
func NewInteger() *MInteger {
	return &MInteger{base: newBase(), rng: interval.NewRange()}
}

// Between constrains the value to [lo, hi].
func (m *MInteger) Between(lo, hi int64) *MInteger {
	m.rng = m.rng.AtLeast(lo).AtMost(hi)
	return m
}

// AtLeast constrains the value to be ≥ v.
func (m *MInteger) AtLeast(v int64) *MInteger {
	m.rng = m.rng.AtLeast(v)
	return m
}

// AtMost constrains the value to be ≤ v.
func (m *MInteger) AtMost(v int64) *MInteger {
	m.rng = m.rng.AtMost(v)
	return m
}

// AtLeastExpr constrains the value to be ≥ the expression over other
// variables, e.g. AtLeastExpr("N").
func (m *MInteger) AtLeastExpr(s string) *MInteger {
	m.rng = m.rng.AtLeastExpr(s)
	return m
}

// AtMostExpr constrains the value to be ≤ the expression, e.g. "3 * N".
func (m *MInteger) AtMostExpr(s string) *MInteger {
	m.rng = m.rng.AtMostExpr(s)
	return m
}

// Is pins the value exactly.
func (m *MInteger) Is(v int64) *MInteger {
	return m.Between(v, v)
}

// Typename returns "MInteger".
func (m *MInteger) Typename() string { return TypenameInteger }

// Clone deep-copies the variable without its Universe binding.
func (m *MInteger) Clone() core.Variable {
	c := &MInteger{base: m.base, rng: m.rng.Clone()}
	c.u = nil
	return c
}

// MergeFrom intersects another MInteger's range into the receiver.
func (m *MInteger) MergeFrom(other core.Variable) error {
	o, ok := other.(*MInteger)
	if !ok {
		return fmt.Errorf("%w: %s into %s", core.ErrTypenameMismatch, other.Typename(), TypenameInteger)
	}
	m.rng = m.rng.Intersect(o.rng)
	m.mergeTier(o.base)

	return nil
}

// Generate draws a uniform value from the effective (tier-sliced) range.
func (m *MInteger) Generate(u *core.Universe) (core.Value, error) {
	lo, hi, err := rangeExtremes(u, m.rng, m.tier, "value")
	if err != nil {
		return nil, fmt.Errorf("MInteger.Generate(%q): %w", m.name, err)
	}
	src, err := u.RandomSource()
	if err != nil {
		return nil, err
	}
	v, err := src.RandIntRange(lo, hi)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// ReadValue reads one base-10 integer token.
func (m *MInteger) ReadValue(u *core.Universe) (core.Value, error) {
	io, err := u.IO()
	if err != nil {
		return nil, err
	}
	tok, err := io.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("MInteger.ReadValue(%q): %w", m.name, err)
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("MInteger.ReadValue(%q): token %q: %w", m.name, tok, core.ErrKindMismatch)
	}

	return v, nil
}

// PrintValue writes the variable's stored value as one token.
func (m *MInteger) PrintValue(u *core.Universe) error {
	io, err := u.IO()
	if err != nil {
		return err
	}
	vals, err := u.ConstValues()
	if err != nil {
		return err
	}
	v, err := core.GetValue[int64](vals, m.name)
	if err != nil {
		return err
	}

	return io.PrintToken(strconv.FormatInt(v, 10))
}

// ValueSatisfiesConstraints checks the stored value against the effective
// range computed from the const value set.
func (m *MInteger) ValueSatisfiesConstraints(u *core.Universe) error {
	vals, err := u.ConstValues()
	if err != nil {
		return err
	}
	raw, ok := vals.UnsafeGet(m.name)
	if !ok {
		return status.ValueNotFound(m.name)
	}
	v, ok := raw.(int64)
	if !ok {
		return status.UnsatisfiedConstraint(fmt.Sprintf("%q holds %T, want int64", m.name, raw))
	}

	return m.checkInt(v, u)
}

// checkValue implements the element-validation hook for MArray.
func (m *MInteger) checkValue(v core.Value, u *core.Universe) error {
	iv, ok := v.(int64)
	if !ok {
		return status.UnsatisfiedConstraint(fmt.Sprintf("element holds %T, want int64", v))
	}
	return m.checkInt(iv, u)
}

func (m *MInteger) checkInt(v int64, u *core.Universe) error {
	lo, hi, err := constExtremes(u, m.rng, "value")
	if err != nil {
		return err
	}
	if v < lo || v > hi {
		return status.UnsatisfiedConstraint(
			fmt.Sprintf("value %d outside [%d, %d]", v, lo, hi))
	}

	return nil
}

// GetUniqueValue reports the pinned value when the range (with no symbolic
// bounds) has collapsed to a point.
func (m *MInteger) GetUniqueValue() (core.Value, bool) {
	needed, err := m.rng.NeededVariables()
	if err != nil || len(needed) > 0 {
		return nil, false
	}
	ext, ok, err := m.rng.Extremes(nil)
	if err != nil || !ok || ext.Lo != ext.Hi {
		return nil, false
	}

	return ext.Lo, true
}

// GetDifficultInstances returns the boundary variants: the range minimum
// and the range maximum, expressed as tier pins so symbolic bounds work too.
func (m *MInteger) GetDifficultInstances() []core.Variable {
	lo := m.Clone().(*MInteger)
	lo.tier = 0
	hi := m.Clone().(*MInteger)
	hi.tier = core.SizeTierCount - 1

	return []core.Variable{lo, hi}
}

// GetDependencies lists the variables referenced by the symbolic bounds.
func (m *MInteger) GetDependencies() ([]string, error) {
	return m.rng.NeededVariables()
}

// SubValue: integers expose no sub-values.
func (m *MInteger) SubValue(_ core.Value, field string) (core.Value, error) {
	return nil, fmt.Errorf("%w: MInteger has no sub-value %q", core.ErrKindMismatch, field)
}

// WithProperty recognizes the size category.
func (m *MInteger) WithProperty(p core.Property) error {
	return m.applySize(p)
}
