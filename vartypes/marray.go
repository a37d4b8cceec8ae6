// Package: moriarty/vartypes
//
// marray.go — the array variable: a length range over an element prototype.
package vartypes

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/interval"
	"github.com/katalvlaran/moriarty/random"
	"github.com/katalvlaran/moriarty/status"
)

// TypenameArray is MArray's stable type-name.
const TypenameArray = "MArray"

// MArray is an array variable. Its length is constrained by a Range and
// every element is generated and validated by a shared element prototype.
// Values are []core.Value.
type MArray struct {
	base
	length   *interval.Range
	elem     core.Variable
	distinct bool
	paramErr error
}

// NewArray returns an array variable whose elements follow the prototype.
func NewArray(elem core.Variable) *MArray {
	m := &MArray{base: newBase(), length: interval.NewRange().AtLeast(0), elem: elem}
	if elem == nil {
		m.paramErr = status.Misconfigured("MArray", "NewArray", "element prototype")
	}

	return m
}

// OfLength constrains the element count to [lo, hi].
func (m *MArray) OfLength(lo, hi int64) *MArray {
	m.length = m.length.AtLeast(lo).AtMost(hi)
	return m
}

// OfLengthAtLeastExpr constrains the element count from below by an expression.
func (m *MArray) OfLengthAtLeastExpr(s string) *MArray {
	m.length = m.length.AtLeastExpr(s)
	return m
}

// OfLengthAtMostExpr constrains the element count from above by an expression.
func (m *MArray) OfLengthAtMostExpr(s string) *MArray {
	m.length = m.length.AtMostExpr(s)
	return m
}

// Distinct requires pairwise-distinct elements. Only integer prototypes
// support distinct generation; other prototypes still get the uniqueness
// check during validation.
func (m *MArray) Distinct() *MArray {
	m.distinct = true
	return m
}

// Typename returns "MArray".
func (m *MArray) Typename() string { return TypenameArray }

// SetUniverse binds the per-call context for the array and its prototype.
func (m *MArray) SetUniverse(u *core.Universe) {
	m.base.SetUniverse(u)
	if m.elem != nil {
		m.elem.SetUniverse(u)
	}
}

// Clone deep-copies the variable without its Universe binding.
func (m *MArray) Clone() core.Variable {
	c := &MArray{
		base:     m.base,
		length:   m.length.Clone(),
		distinct: m.distinct,
		paramErr: m.paramErr,
	}
	c.u = nil
	if m.elem != nil {
		c.elem = m.elem.Clone()
	}

	return c
}

// MergeFrom intersects another MArray's constraints into the receiver,
// merging the element prototypes recursively.
func (m *MArray) MergeFrom(other core.Variable) error {
	o, ok := other.(*MArray)
	if !ok {
		return fmt.Errorf("%w: %s into %s", core.ErrTypenameMismatch, other.Typename(), TypenameArray)
	}
	if m.paramErr == nil {
		m.paramErr = o.paramErr
	}
	m.length = m.length.Intersect(o.length)
	m.distinct = m.distinct || o.distinct
	if m.elem != nil && o.elem != nil {
		if err := m.elem.MergeFrom(o.elem); err != nil {
			return fmt.Errorf("MArray element: %w", err)
		}
	}
	m.mergeTier(o.base)

	return nil
}

// Generate draws the element count from the (tier-sliced, budget-clamped)
// length range, then generates each element with the prototype.
func (m *MArray) Generate(u *core.Universe) (core.Value, error) {
	if m.paramErr != nil {
		return nil, m.paramErr
	}
	lo, hi, err := lengthExtremes(u, m.length, m.tier, "length")
	if err != nil {
		return nil, fmt.Errorf("MArray.Generate(%q): %w", m.name, err)
	}
	hi = clampToBudget(u, lo, hi)
	src, err := u.RandomSource()
	if err != nil {
		return nil, err
	}
	n, err := src.RandIntRange(lo, hi)
	if err != nil {
		return nil, err
	}
	if m.distinct {
		return m.generateDistinct(u, n)
	}
	out := make([]core.Value, n)
	for i := range out {
		v, err := m.elem.Generate(u)
		if err != nil {
			return nil, fmt.Errorf("MArray.Generate(%q)[%d]: %w", m.name, i, err)
		}
		out[i] = v
	}

	return out, nil
}

// generateDistinct draws n distinct integers from the element range and
// shuffles them so the order stays uniform.
func (m *MArray) generateDistinct(u *core.Universe, n int64) (core.Value, error) {
	p, ok := m.elem.(*MInteger)
	if !ok {
		return nil, status.NonRetryableGeneration(
			fmt.Sprintf("MArray %q: distinct generation needs an MInteger prototype, got %s",
				m.name, m.elem.Typename()))
	}
	elo, ehi, err := rangeExtremes(u, p.rng, p.tier, "element")
	if err != nil {
		return nil, fmt.Errorf("MArray.Generate(%q): %w", m.name, err)
	}
	span := ehi - elo + 1
	if span < n {
		return nil, status.UnsatisfiedConstraint(
			fmt.Sprintf("MArray %q: %d distinct values do not fit in [%d, %d]", m.name, n, elo, ehi))
	}
	src, err := u.RandomSource()
	if err != nil {
		return nil, err
	}
	picked, err := src.DistinctIntegers(span, n, elo)
	if err != nil {
		return nil, err
	}
	out := make([]core.Value, len(picked))
	for i, v := range picked {
		out[i] = v
	}
	random.Shuffle(src, out)

	return out, nil
}

// ReadValue reads a leading count token followed by that many elements.
func (m *MArray) ReadValue(u *core.Universe) (core.Value, error) {
	if m.paramErr != nil {
		return nil, m.paramErr
	}
	io, err := u.IO()
	if err != nil {
		return nil, err
	}
	tok, err := io.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("MArray.ReadValue(%q): %w", m.name, err)
	}
	n, err := parseCount(tok)
	if err != nil {
		return nil, fmt.Errorf("MArray.ReadValue(%q): %w", m.name, err)
	}
	out := make([]core.Value, n)
	for i := range out {
		v, err := m.elem.ReadValue(u)
		if err != nil {
			return nil, fmt.Errorf("MArray.ReadValue(%q)[%d]: %w", m.name, i, err)
		}
		out[i] = v
	}

	return out, nil
}

// PrintValue writes the count token followed by the elements.
func (m *MArray) PrintValue(u *core.Universe) error {
	io, err := u.IO()
	if err != nil {
		return err
	}
	vals, err := u.ConstValues()
	if err != nil {
		return err
	}
	raw, ok := vals.UnsafeGet(m.name)
	if !ok {
		return status.ValueNotFound(m.name)
	}
	elems, ok := raw.([]core.Value)
	if !ok {
		return fmt.Errorf("%w: %q holds %T, want []core.Value", core.ErrKindMismatch, m.name, raw)
	}
	if err := io.PrintToken(fmt.Sprintf("%d", len(elems))); err != nil {
		return err
	}
	for _, e := range elems {
		if err := printElement(io, e); err != nil {
			return fmt.Errorf("MArray.PrintValue(%q): %w", m.name, err)
		}
	}

	return nil
}

// ValueSatisfiesConstraints checks the stored value's length and every
// element against the prototype.
func (m *MArray) ValueSatisfiesConstraints(u *core.Universe) error {
	vals, err := u.ConstValues()
	if err != nil {
		return err
	}
	raw, ok := vals.UnsafeGet(m.name)
	if !ok {
		return status.ValueNotFound(m.name)
	}

	return m.checkValue(raw, u)
}

// checkValue implements the element-validation hook, so arrays nest.
func (m *MArray) checkValue(v core.Value, u *core.Universe) error {
	if m.paramErr != nil {
		return m.paramErr
	}
	elems, ok := v.([]core.Value)
	if !ok {
		return status.UnsatisfiedConstraint(fmt.Sprintf("%q holds %T, want []core.Value", m.name, v))
	}
	lo, hi, err := constExtremes(u, m.length, "length")
	if err != nil {
		return err
	}
	if n := int64(len(elems)); n < lo || n > hi {
		return status.UnsatisfiedConstraint(
			fmt.Sprintf("length %d outside [%d, %d]", n, lo, hi))
	}
	checker, ok := m.elem.(valueChecker)
	if !ok {
		return status.Misconfigured("MArray", "checkValue", "element prototype with value checking")
	}
	for i, e := range elems {
		if err := checker.checkValue(e, u); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	if m.distinct {
		// Element values may be slices, so pairwise deep comparison is the
		// only safe uniqueness check.
		for i := 1; i < len(elems); i++ {
			for j := 0; j < i; j++ {
				if reflect.DeepEqual(elems[i], elems[j]) {
					return status.UnsatisfiedConstraint(
						fmt.Sprintf("element %d repeats value %v", i, elems[i]))
				}
			}
		}
	}

	return nil
}

// GetUniqueValue: arrays are never forced to a single value here. Even a
// pinned zero length still yields the empty array, which callers can get
// cheaper by generation.
func (m *MArray) GetUniqueValue() (core.Value, bool) { return nil, false }

// GetDifficultInstances returns the length-boundary variants, crossed with
// the prototype's own difficult instances.
func (m *MArray) GetDifficultInstances() []core.Variable {
	short := m.Clone().(*MArray)
	short.tier = 0
	long := m.Clone().(*MArray)
	long.tier = core.SizeTierCount - 1
	out := []core.Variable{short, long}
	if m.elem == nil {
		return out
	}
	for _, hard := range m.elem.GetDifficultInstances() {
		c := long.Clone().(*MArray)
		c.elem = hard
		out = append(out, c)
	}

	return out
}

// GetDependencies merges the length bounds' references with the
// prototype's, deduplicated and sorted.
func (m *MArray) GetDependencies() ([]string, error) {
	if m.paramErr != nil {
		return nil, m.paramErr
	}
	own, err := m.length.NeededVariables()
	if err != nil {
		return nil, err
	}
	sub, err := m.elem.GetDependencies()
	if err != nil {
		return nil, err
	}

	return mergeNames(own, sub), nil
}

// SubValue exposes "length" on array values.
func (m *MArray) SubValue(v core.Value, field string) (core.Value, error) {
	elems, ok := v.([]core.Value)
	if !ok {
		return nil, fmt.Errorf("%w: sub-value of %T, want []core.Value", core.ErrKindMismatch, v)
	}
	if field != core.SubValueLength {
		return nil, fmt.Errorf("%w: MArray has no sub-value %q", core.ErrKindMismatch, field)
	}

	return int64(len(elems)), nil
}

// WithProperty recognizes the size category on the array itself and
// forwards everything else to the element prototype.
func (m *MArray) WithProperty(p core.Property) error {
	if p.Category == core.SizeCategory {
		return m.applySize(p)
	}
	if m.elem == nil {
		return status.Misconfigured("MArray", "WithProperty", "element prototype")
	}

	return m.elem.WithProperty(p)
}

func parseCount(tok string) (int64, error) {
	var n int64
	if _, err := fmt.Sscanf(strings.TrimSpace(tok), "%d", &n); err != nil || n < 0 {
		return 0, fmt.Errorf("%w: count token %q", core.ErrKindMismatch, tok)
	}

	return n, nil
}
