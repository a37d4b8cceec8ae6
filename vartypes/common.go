// Package: moriarty/vartypes
//
// common.go — plumbing shared by the built-in variable types.
package vartypes

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/interval"
	"github.com/katalvlaran/moriarty/status"
)

// noTier marks a variable without a size-tier request.
const noTier = -1

// base carries the name/universe/tier plumbing common to all built-ins.
type base struct {
	name string
	u    *core.Universe
	tier int
}

func newBase() base { return base{tier: noTier} }

// Name returns the variable's name within its set.
func (b *base) Name() string { return b.name }

// SetName records the owning set's name for this variable.
func (b *base) SetName(name string) { b.name = name }

// SetUniverse binds the per-call context.
func (b *base) SetUniverse(u *core.Universe) { b.u = u }

// applySize interprets a size property, keeping the most recent request.
func (b *base) applySize(p core.Property) error {
	if p.Category != core.SizeCategory {
		return fmt.Errorf("%w: %q", core.ErrUnsupportedProperty, p.Category)
	}
	tier, err := core.SizeTier(p.Descriptor)
	if err != nil {
		return err
	}
	b.tier = tier

	return nil
}

// mergeTier adopts the other variable's tier when the receiver has none.
func (b *base) mergeTier(other base) {
	if b.tier == noTier {
		b.tier = other.tier
	}
}

// valueChecker is the per-element validation hook MArray requires of its
// element prototypes. All built-ins implement it.
type valueChecker interface {
	checkValue(v core.Value, u *core.Universe) error
}

// rangeExtremes resolves a Range against the universe, generating
// dependency values on demand, and applies the optional size tier.
// An empty effective range is an UnsatisfiedConstraint.
func rangeExtremes(u *core.Universe, r *interval.Range, tier int, what string) (int64, int64, error) {
	needed, err := r.NeededVariables()
	if err != nil {
		return 0, 0, err
	}
	env, err := u.Env(needed)
	if err != nil {
		return 0, 0, err
	}
	ext, ok, err := r.Extremes(env)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, status.UnsatisfiedConstraint(
			fmt.Sprintf("empty %s range %s", what, r))
	}
	lo, hi := ext.Lo, ext.Hi
	if tier != noTier {
		lo, hi = core.TierSlice(lo, hi, tier)
	}

	return lo, hi, nil
}

// constExtremes resolves a Range against the const value set only (no
// generation), for validation paths.
func constExtremes(u *core.Universe, r *interval.Range, what string) (int64, int64, error) {
	needed, err := r.NeededVariables()
	if err != nil {
		return 0, 0, err
	}
	vals, err := u.ConstValues()
	if err != nil {
		return 0, 0, err
	}
	env := make(map[string]int64, len(needed))
	for _, n := range needed {
		v, err := core.GetValue[int64](vals, n)
		if err != nil {
			return 0, 0, err
		}
		env[n] = v
	}
	ext, ok, err := r.Extremes(env)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, status.UnsatisfiedConstraint(
			fmt.Sprintf("empty %s range %s", what, r))
	}

	return ext.Lo, ext.Hi, nil
}

// printElement writes one erased value as tokens: integers and strings as
// one token each, nested arrays as a count token plus their elements.
func printElement(io core.IOAdapter, v core.Value) error {
	switch e := v.(type) {
	case int64:
		return io.PrintToken(strconv.FormatInt(e, 10))
	case string:
		return io.PrintToken(e)
	case []core.Value:
		if err := io.PrintToken(strconv.Itoa(len(e))); err != nil {
			return err
		}
		for _, sub := range e {
			if err := printElement(io, sub); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: cannot print %T", core.ErrKindMismatch, v)
	}
}

// mergeNames unions two name lists, deduplicated and sorted.
func mergeNames(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, n := range a {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	for _, n := range b {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	sort.Strings(out)

	return out
}

// maxGenerateLength caps the length window used for generation when the
// declared upper bound is effectively unbounded. Validation is not capped.
const maxGenerateLength = 1 << 20

// lengthExtremes is rangeExtremes for length ranges: the window is capped
// at maxGenerateLength elements above its lower bound before tier slicing,
// so even an unconstrained length stays generable.
func lengthExtremes(u *core.Universe, r *interval.Range, tier int, what string) (int64, int64, error) {
	lo, hi, err := rangeExtremes(u, r, noTier, what)
	if err != nil {
		return 0, 0, err
	}
	if hi-lo > maxGenerateLength {
		hi = lo + maxGenerateLength
	}
	if tier != noTier {
		lo, hi = core.TierSlice(lo, hi, tier)
	}

	return lo, hi, nil
}

// clampToBudget lowers hi toward the remaining soft-size budget without
// ever dropping below lo. The limit is advisory: the lower bound wins.
func clampToBudget(u *core.Universe, lo, hi int64) int64 {
	rem, ok := u.RemainingBudget()
	if !ok || hi <= rem {
		return hi
	}
	if rem < lo {
		return lo
	}

	return rem
}
