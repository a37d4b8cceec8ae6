// Package: moriarty/vartypes
//
// mstring.go — the string variable: length range, alphabet, patterns.
package vartypes

import (
	"fmt"

	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/interval"
	"github.com/katalvlaran/moriarty/pattern"
	"github.com/katalvlaran/moriarty/random"
	"github.com/katalvlaran/moriarty/status"
)

// TypenameString is MString's stable type-name.
const TypenameString = "MString"

// defaultAlphabet is used for generation when no alphabet was configured.
const defaultAlphabet = "abcdefghijklmnopqrstuvwxyz"

// MString is a string variable. Its length is constrained by a Range, its
// characters by an optional alphabet, and its shape by optional patterns.
type MString struct {
	base
	length   *interval.Range
	alphabet string
	alphaSet bool
	patterns []*pattern.Pattern
	exact    *string
	paramErr error
}

// NewString returns an unconstrained string variable.
func NewString() *MString {
	return &MString{base: newBase(), length: interval.NewRange().AtLeast(0)}
}

// OfLength constrains the length to [lo, hi].
func (m *MString) OfLength(lo, hi int64) *MString {
	m.length = m.length.AtLeast(lo).AtMost(hi)
	return m
}

// OfLengthAtLeastExpr constrains the length from below by an expression.
func (m *MString) OfLengthAtLeastExpr(s string) *MString {
	m.length = m.length.AtLeastExpr(s)
	return m
}

// OfLengthAtMostExpr constrains the length from above by an expression.
func (m *MString) OfLengthAtMostExpr(s string) *MString {
	m.length = m.length.AtMostExpr(s)
	return m
}

// WithAlphabet restricts the characters to the given set. The set is also
// enforced during validation; without it only generation defaults to
// lowercase letters.
func (m *MString) WithAlphabet(alphabet string) *MString {
	if len(alphabet) == 0 && m.paramErr == nil {
		m.paramErr = status.Misconfigured("MString", "WithAlphabet", "non-empty alphabet")
	}
	m.alphabet = alphabet
	m.alphaSet = true

	return m
}

// MatchesPattern adds a pattern the value must match. Multiple calls
// accumulate; the value must match every one of them.
func (m *MString) MatchesPattern(src string) *MString {
	p, err := pattern.Parse(src)
	if err != nil {
		if m.paramErr == nil {
			m.paramErr = err
		}
		return m
	}
	m.patterns = append(m.patterns, p)

	return m
}

// Is pins the value exactly.
func (m *MString) Is(v string) *MString {
	m.exact = &v
	return m.OfLength(int64(len(v)), int64(len(v)))
}

// Typename returns "MString".
func (m *MString) Typename() string { return TypenameString }

// Clone deep-copies the variable without its Universe binding.
func (m *MString) Clone() core.Variable {
	c := &MString{
		base:     m.base,
		length:   m.length.Clone(),
		alphabet: m.alphabet,
		alphaSet: m.alphaSet,
		patterns: append([]*pattern.Pattern(nil), m.patterns...),
		exact:    m.exact,
		paramErr: m.paramErr,
	}
	c.u = nil

	return c
}

// MergeFrom intersects another MString's constraints into the receiver.
func (m *MString) MergeFrom(other core.Variable) error {
	o, ok := other.(*MString)
	if !ok {
		return fmt.Errorf("%w: %s into %s", core.ErrTypenameMismatch, other.Typename(), TypenameString)
	}
	if m.paramErr == nil {
		m.paramErr = o.paramErr
	}
	m.length = m.length.Intersect(o.length)
	m.patterns = append(m.patterns, o.patterns...)
	if o.alphaSet {
		if m.alphaSet {
			m.alphabet = intersectAlphabets(m.alphabet, o.alphabet)
		} else {
			m.alphabet, m.alphaSet = o.alphabet, true
		}
	}
	if o.exact != nil {
		if m.exact != nil && *m.exact != *o.exact {
			return status.UnsatisfiedConstraint(
				fmt.Sprintf("exact values %q and %q conflict", *m.exact, *o.exact))
		}
		m.exact = o.exact
	}
	m.mergeTier(o.base)

	return nil
}

func intersectAlphabets(a, b string) string {
	var in [256]bool
	for i := 0; i < len(b); i++ {
		in[b[i]] = true
	}
	out := make([]byte, 0, len(a))
	for i := 0; i < len(a); i++ {
		if in[a[i]] {
			out = append(out, a[i])
			in[a[i]] = false
		}
	}

	return string(out)
}

// Generate draws a string satisfying length, alphabet and pattern
// constraints. Pattern-constrained generation samples from the first
// pattern and retries until all constraints hold, up to the retry budget.
func (m *MString) Generate(u *core.Universe) (core.Value, error) {
	if m.paramErr != nil {
		return nil, m.paramErr
	}
	if m.exact != nil {
		return *m.exact, nil
	}
	lo, hi, err := lengthExtremes(u, m.length, m.tier, "length")
	if err != nil {
		return nil, fmt.Errorf("MString.Generate(%q): %w", m.name, err)
	}
	hi = clampToBudget(u, lo, hi)
	src, err := u.RandomSource()
	if err != nil {
		return nil, err
	}
	if len(m.patterns) == 0 {
		return m.generatePlain(src, lo, hi)
	}

	return m.generatePatterned(u, src, lo, hi)
}

func (m *MString) generatePlain(src *random.Source, lo, hi int64) (core.Value, error) {
	n, err := src.RandIntRange(lo, hi)
	if err != nil {
		return nil, err
	}
	alphabet := m.alphabet
	if !m.alphaSet {
		alphabet = defaultAlphabet
	}
	buf := make([]byte, n)
	for i := range buf {
		j, err := src.RandInt(int64(len(alphabet)))
		if err != nil {
			return nil, err
		}
		buf[i] = alphabet[j]
	}

	return string(buf), nil
}

func (m *MString) generatePatterned(u *core.Universe, src *random.Source, lo, hi int64) (core.Value, error) {
	var gen func() (string, error)
	if m.alphaSet {
		gen = func() (string, error) { return m.patterns[0].GenerateRestricted(m.alphabet, src) }
	} else {
		gen = func() (string, error) { return m.patterns[0].Generate(src) }
	}
	budget := u.GenConfig().RetryBudget
	if budget <= 0 {
		budget = core.DefaultRetryBudget
	}
	for attempt := 0; attempt < budget; attempt++ {
		s, err := gen()
		if err != nil {
			return nil, fmt.Errorf("MString.Generate(%q): %w", m.name, err)
		}
		if int64(len(s)) < lo || int64(len(s)) > hi {
			continue
		}
		if !m.matchesAll(s) {
			continue
		}

		return s, nil
	}

	return nil, status.RetryableGeneration(
		fmt.Sprintf("MString %q: no pattern sample satisfied all constraints in %d attempts", m.name, budget))
}

func (m *MString) matchesAll(s string) bool {
	for _, p := range m.patterns {
		if !p.Match(s) {
			return false
		}
	}

	return true
}

// ReadValue reads one string token.
func (m *MString) ReadValue(u *core.Universe) (core.Value, error) {
	io, err := u.IO()
	if err != nil {
		return nil, err
	}
	tok, err := io.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("MString.ReadValue(%q): %w", m.name, err)
	}

	return tok, nil
}

// PrintValue writes the variable's stored value as one token.
func (m *MString) PrintValue(u *core.Universe) error {
	io, err := u.IO()
	if err != nil {
		return err
	}
	vals, err := u.ConstValues()
	if err != nil {
		return err
	}
	v, err := core.GetValue[string](vals, m.name)
	if err != nil {
		return err
	}

	return io.PrintToken(v)
}

// ValueSatisfiesConstraints checks the stored value against length,
// alphabet (when configured) and every pattern.
func (m *MString) ValueSatisfiesConstraints(u *core.Universe) error {
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

// checkValue implements the element-validation hook for MArray.
func (m *MString) checkValue(v core.Value, u *core.Universe) error {
	if m.paramErr != nil {
		return m.paramErr
	}
	s, ok := v.(string)
	if !ok {
		return status.UnsatisfiedConstraint(fmt.Sprintf("%q holds %T, want string", m.name, v))
	}
	if m.exact != nil && s != *m.exact {
		return status.UnsatisfiedConstraint(fmt.Sprintf("%q must equal %q", m.name, *m.exact))
	}
	lo, hi, err := constExtremes(u, m.length, "length")
	if err != nil {
		return err
	}
	if n := int64(len(s)); n < lo || n > hi {
		return status.UnsatisfiedConstraint(
			fmt.Sprintf("length %d outside [%d, %d]", n, lo, hi))
	}
	if m.alphaSet {
		var in [256]bool
		for i := 0; i < len(m.alphabet); i++ {
			in[m.alphabet[i]] = true
		}
		for i := 0; i < len(s); i++ {
			if !in[s[i]] {
				return status.UnsatisfiedConstraint(
					fmt.Sprintf("character %q not in alphabet %q", s[i], m.alphabet))
			}
		}
	}
	for _, p := range m.patterns {
		if !p.Match(s) {
			return status.UnsatisfiedConstraint(
				fmt.Sprintf("%q does not match pattern %s", s, p))
		}
	}

	return nil
}

// GetUniqueValue reports the pinned value when one was set via Is.
func (m *MString) GetUniqueValue() (core.Value, bool) {
	if m.exact != nil {
		return *m.exact, true
	}
	return nil, false
}

// GetDifficultInstances returns the length-boundary variants.
func (m *MString) GetDifficultInstances() []core.Variable {
	lo := m.Clone().(*MString)
	lo.tier = 0
	hi := m.Clone().(*MString)
	hi.tier = core.SizeTierCount - 1

	return []core.Variable{lo, hi}
}

// GetDependencies lists the variables referenced by the length bounds.
func (m *MString) GetDependencies() ([]string, error) {
	if m.paramErr != nil {
		return nil, m.paramErr
	}
	return m.length.NeededVariables()
}

// SubValue exposes "length" on string values.
func (m *MString) SubValue(v core.Value, field string) (core.Value, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: sub-value of %T, want string", core.ErrKindMismatch, v)
	}
	if field != core.SubValueLength {
		return nil, fmt.Errorf("%w: MString has no sub-value %q", core.ErrKindMismatch, field)
	}

	return int64(len(s)), nil
}

// WithProperty recognizes the size category.
func (m *MString) WithProperty(p core.Property) error {
	return m.applySize(p)
}
