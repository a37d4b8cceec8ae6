// Package: moriarty/core
//
// variable.go — the Variable capability interface, Property, size tiers,
// and name validation.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core data model.
var (
	// ErrInvalidName indicates a variable name outside [A-Za-z][A-Za-z0-9_]*.
	ErrInvalidName = errors.New("core: invalid variable name")

	// ErrDuplicateVariable indicates AddVariable hit an existing name.
	ErrDuplicateVariable = errors.New("core: variable already exists")

	// ErrKindMismatch indicates a typed accessor did not match the stored kind.
	ErrKindMismatch = errors.New("core: kind mismatch")

	// ErrTypenameMismatch indicates a merge between different variable types.
	ErrTypenameMismatch = errors.New("core: typename mismatch in merge")

	// ErrUnsupportedProperty indicates a mandatory property category the
	// variable does not recognize.
	ErrUnsupportedProperty = errors.New("core: unsupported mandatory property category")
)

// Value is a type-erased generated value. The concrete type is chosen by
// the variable that produced it.
type Value any

// Property is one cross-cutting {category, descriptor} request, e.g.
// {size, small}. Variables decide how to interpret recognized categories
// and must reject unknown mandatory ones with ErrUnsupportedProperty.
type Property struct {
	Category   string
	Descriptor string
}

// SizeCategory is the one category every moriarty variable recognizes.
const SizeCategory = "size"

// Size tier descriptors, smallest to largest.
const (
	SizeMin    = "min"
	SizeTiny   = "tiny"
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeHuge   = "huge"
	SizeMax    = "max"
)

// sizeTiers orders the descriptors; index = tier, 0 is smallest.
var sizeTiers = []string{SizeMin, SizeTiny, SizeSmall, SizeMedium, SizeLarge, SizeHuge, SizeMax}

// SizeTier maps a size descriptor to its tier index in [0, SizeTierCount).
func SizeTier(descriptor string) (int, error) {
	for i, d := range sizeTiers {
		if d == descriptor {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: size descriptor %q", ErrUnsupportedProperty, descriptor)
}

// SizeTierCount is the number of recognized size tiers.
const SizeTierCount = 7

// TierSlice cuts the closed interval [lo, hi] into SizeTierCount tiers and
// returns the closed sub-interval for the given tier. Tier 0 pins the
// minimum, the last tier pins the maximum, interior tiers split the middle
// evenly. Every tier is non-empty whenever lo ≤ hi.
func TierSlice(lo, hi int64, tier int) (int64, int64) {
	if lo >= hi {
		return lo, hi
	}
	switch tier {
	case 0:
		return lo, lo
	case SizeTierCount - 1:
		return hi, hi
	}
	// Interior tiers share [lo, hi] in SizeTierCount-2 chunks; integer
	// arithmetic is careful not to overflow on huge spans.
	span := uint64(hi) - uint64(lo)
	chunks := uint64(SizeTierCount - 2)
	idx := uint64(tier - 1)
	tLo := lo + int64(span/chunks*idx)
	tHi := lo + int64(span/chunks*(idx+1))
	if tier == SizeTierCount-2 {
		tHi = hi
	}
	return tLo, tHi
}

// Variable is the polymorphic "constrainable value" every moriarty type
// implements. Concrete variables are builder-style: constraint methods
// record and return the receiver; constraints are held unmerged and merged
// on demand.
type Variable interface {
	// Typename returns the stable type-name string. It never changes over
	// the variable's lifetime.
	Typename() string

	// Name returns the variable's own name within its set (empty until
	// adopted by a VariableSet).
	Name() string

	// SetName records the variable's name. Called by the owning set.
	SetName(name string)

	// SetUniverse binds the per-call context. Clones carry no binding.
	SetUniverse(u *Universe)

	// Clone returns a deep copy carrying no Universe binding.
	Clone() Variable

	// MergeFrom intersects other's constraints into the receiver. The
	// typenames must match (ErrTypenameMismatch otherwise).
	MergeFrom(other Variable) error

	// Generate produces a new value satisfying the constraints, drawing
	// randomness and dependency values through u.
	Generate(u *Universe) (Value, error)

	// ReadValue reads one value in this variable's format from u's I/O
	// adapter.
	ReadValue(u *Universe) (Value, error)

	// PrintValue writes this variable's stored value to u's I/O adapter.
	PrintValue(u *Universe) error

	// ValueSatisfiesConstraints looks up the variable's own value in u and
	// checks every constraint; the first failure wins. A missing value is
	// a ValueNotFound error.
	ValueSatisfiesConstraints(u *Universe) error

	// GetUniqueValue returns the single value the constraints force, if
	// they force exactly one.
	GetUniqueValue() (Value, bool)

	// GetDifficultInstances returns a small list of corner-case variants:
	// clones further constrained to boundaries (min/max, empty, etc.).
	GetDifficultInstances() []Variable

	// GetDependencies returns the names of other variables this variable's
	// expressions reference.
	GetDependencies() ([]string, error)

	// SubValue extracts a named sub-value (e.g. SubValueLength) from an
	// already generated value of this variable.
	SubValue(v Value, field string) (Value, error)

	// WithProperty applies one scenario property. Recognized categories
	// adjust constraints; unknown mandatory categories return
	// ErrUnsupportedProperty.
	WithProperty(p Property) error
}

// SubValueLength is the sub-value field exposing the length of string and
// array values.
const SubValueLength = "length"

// ValidateName enforces the documented naming rule: first character a
// letter, remainder letters, digits, or underscores, non-empty.
func ValidateName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	c := name[0]
	if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return fmt.Errorf("%w: %q must start with a letter", ErrInvalidName, name)
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, string(rune(c)))
		}
	}

	return nil
}
