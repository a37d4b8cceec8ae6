// Package covering builds strength-t covering arrays and turns them into
// combinatorial corner-case test batches.
//
// Given k dimensions of sizes d₁…dₖ, a strength-t covering array is a set
// of k-tuples such that every projection onto t columns realizes every
// combination of values in those columns at least once. Build produces one
// greedily: it tracks the uncovered projections per t-subset of columns,
// repeatedly fixes the subset with the most uncovered projections to one of
// them, extends to compatible subsets, and fills the remaining columns from
// the random source. Tracked subsets are encoded in a 64-bit mask, capping
// the column count at 62 (ErrTooManyDimensions beyond that).
//
// CasesGenerator lifts the array into test cases: each variable contributes
// its difficult instances as one dimension, and each covering row becomes a
// TestCase constraining every variable to the chosen instance. The row
// count is O(t · max(dᵢ)ᵗ · log k), far below the dᵢ product a full cross
// would need.
package covering
