// Package proptest provides shared property-based testing parameters and
// generators for the moriarty test suites.
package proptest

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// Parameters returns the standard parameters for property tests: a fixed
// seed for reproducible runs and enough iterations to shake out boundary
// cases without slowing the suite down.
func Parameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 500
	params.Rng.Seed(1727)
	return params
}

// Int64Range generates int64 values in [min, max].
func Int64Range(min, max int64) gopter.Gen {
	return gen.Int64Range(min, max)
}

// SmallInt generates integers safe for three-deep arithmetic without
// overflowing 64 bits.
func SmallInt() gopter.Gen {
	return gen.Int64Range(-1_000_000, 1_000_000)
}

// VariableName generates valid moriarty variable names: a letter followed
// by letters, digits, or underscores.
func VariableName() gopter.Gen {
	return gen.Identifier()
}

// BinaryOp generates one of the additive/multiplicative operator strings.
func BinaryOp() gopter.Gen {
	return gen.OneConstOf("+", "-", "*", "/", "%")
}

// Seed generates seed slices for the random source.
func Seed() gopter.Gen {
	return gen.SliceOfN(3, gen.Int64())
}
