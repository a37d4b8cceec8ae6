// Package: moriarty/pattern
//
// generate.go — random string generation, plain and under a restricted
// alphabet.
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/moriarty/random"
)

// Generate produces a uniformly drawn string matching p. Leaves pick a
// repetition count inside their window and each character uniformly from
// their alphabet; alternations pick a branch uniformly. Patterns containing
// '*', '+' or '{n,}' reject generation with ErrUnboundedRepeat.
func (p *Pattern) Generate(src *random.Source) (string, error) {
	var b strings.Builder
	if err := p.root.generate(&b, src, nil); err != nil {
		return "", err
	}

	return b.String(), nil
}

// GenerateRestricted is Generate with the leaf alphabets intersected with
// the permitted characters. If a mandatory leaf is left with no characters,
// the empty string is returned when p matches it; otherwise the restriction
// is unsatisfiable and ErrEmptyAlphabet surfaces.
func (p *Pattern) GenerateRestricted(alphabet string, src *random.Source) (string, error) {
	var allow [256]bool
	for i := 0; i < len(alphabet); i++ {
		allow[alphabet[i]] = true
	}

	var b strings.Builder
	err := p.root.generate(&b, src, &allow)
	if err == nil {
		return b.String(), nil
	}
	// The whole-pattern fallback: a pattern that can match "" still has a
	// valid output when the restriction emptied every alphabet. Other
	// failures (notably unbounded repetition) propagate unchanged.
	if errors.Is(err, ErrEmptyAlphabet) && p.Match("") {
		return "", nil
	}

	return "", err
}

// generate appends one realization of n to b. allow narrows leaf alphabets
// when non-nil.
func (n *node) generate(b *strings.Builder, src *random.Source, allow *[256]bool) error {
	switch n.kind {
	case kLeaf:
		if n.maxRep == unbounded {
			return fmt.Errorf("%w: add an explicit upper bound", ErrUnboundedRepeat)
		}
		alpha := n.set.alphabet(allow)
		if len(alpha) == 0 {
			if n.minRep == 0 {
				return nil // zero repetitions need no characters
			}
			return fmt.Errorf("%w: leaf requires at least %d characters", ErrEmptyAlphabet, n.minRep)
		}
		count, err := src.RandIntRange(int64(n.minRep), int64(n.maxRep))
		if err != nil {
			return err
		}
		for i := int64(0); i < count; i++ {
			idx, err := src.RandInt(int64(len(alpha)))
			if err != nil {
				return err
			}
			b.WriteByte(alpha[idx])
		}
		return nil

	case kAllOf:
		for _, kid := range n.kids {
			if err := kid.generate(b, src, allow); err != nil {
				return err
			}
		}
		return nil

	default: // kAnyOf
		idx, err := src.RandInt(int64(len(n.kids)))
		if err != nil {
			return err
		}
		return n.kids[idx].generate(b, src, allow)
	}
}
