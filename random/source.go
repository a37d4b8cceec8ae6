// Package: moriarty/random
//
// source.go — the seeded Source and its named helpers.
package random

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Sentinel errors for invalid helper arguments.
var (
	// ErrInvalidBound indicates a non-positive n for RandInt or lo > hi for RandIntRange.
	ErrInvalidBound = errors.New("random: invalid bound")

	// ErrInvalidCount indicates a negative or oversized k for a selection helper.
	ErrInvalidCount = errors.New("random: invalid count")

	// ErrEmptySequence indicates an element was requested from an empty sequence.
	ErrEmptySequence = errors.New("random: empty sequence")

	// ErrInfeasibleComposition indicates n cannot be split into k buckets of
	// at least minBucket each.
	ErrInfeasibleComposition = errors.New("random: infeasible composition")
)

// Seed identifies a random stream: a sequence of 64-bit integers plus a
// version tag. Changing either produces an unrelated stream.
type Seed struct {
	Ints    []int64
	Version string
}

// Source is a deterministic pseudo-random integer generator. The zero value
// is unusable; construct with NewSource.
type Source struct {
	rng *rand.Rand
}

// splitmix64 applies the canonical SplitMix64 finalizer for strong bit
// diffusion when folding seed material.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// fold mixes every seed integer and every version byte into one 64-bit
// state. Small input changes produce large, well-distributed output changes.
func fold(seed Seed) int64 {
	var acc uint64 = 0x6d6f726961727479 // "moriarty"
	for _, v := range seed.Ints {
		acc = splitmix64(acc ^ uint64(v))
	}
	for _, b := range []byte(seed.Version) {
		acc = splitmix64(acc ^ uint64(b))
	}
	return int64(acc)
}

// NewSource builds a Source from seed. Equal seeds yield identical streams.
func NewSource(seed Seed) *Source {
	return &Source{rng: rand.New(rand.NewSource(fold(seed)))}
}

// RandInt returns a uniform integer in [0, n). n must be positive.
func (s *Source) RandInt(n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: RandInt(%d)", ErrInvalidBound, n)
	}
	return s.rng.Int63n(n), nil
}

// RandIntRange returns a uniform integer in the closed interval [lo, hi].
func (s *Source) RandIntRange(lo, hi int64) (int64, error) {
	if lo > hi {
		return 0, fmt.Errorf("%w: RandIntRange(%d, %d)", ErrInvalidBound, lo, hi)
	}
	span := uint64(hi) - uint64(lo) + 1
	if span == 0 {
		// Full 64-bit range: every value is valid.
		return int64(s.rng.Uint64()), nil
	}
	if span <= uint64(1)<<62 {
		// Int63n rejection-samples internally, so the draw stays uniform.
		return lo + s.rng.Int63n(int64(span)), nil
	}
	// Spans wider than 2^62 exceed Int63n territory once doubled; reject
	// raw 64-bit draws instead. More than a quarter of them land in range.
	for {
		u := s.rng.Uint64()
		if u < span {
			return lo + int64(u), nil
		}
	}
}

// RandomPermutation returns a uniform permutation of {0, …, n-1}.
func (s *Source) RandomPermutation(n int) ([]int, error) {
	return s.RandomPermutationBase(n, 0)
}

// RandomPermutationBase returns a uniform permutation of {base, …, base+n-1}.
func (s *Source) RandomPermutationBase(n, base int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: RandomPermutationBase(n=%d)", ErrInvalidCount, n)
	}
	p := make([]int, n)
	for i := range p {
		p[i] = base + i
	}
	// Fisher–Yates, high index down, one draw per slot.
	for i := n - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	return p, nil
}

// DistinctIntegers returns k distinct integers drawn uniformly from
// {base, …, base+n-1}, sorted ascending. The sparse partial Fisher–Yates
// keeps memory at O(k) even for huge n.
func (s *Source) DistinctIntegers(n, k int64, base int64) ([]int64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: DistinctIntegers(n=%d)", ErrInvalidBound, n)
	}
	if k < 0 || k > n {
		return nil, fmt.Errorf("%w: DistinctIntegers(n=%d, k=%d)", ErrInvalidCount, n, k)
	}
	displaced := make(map[int64]int64, k) // index -> value moved there
	out := make([]int64, 0, k)
	for i := int64(0); i < k; i++ {
		j := i + s.rng.Int63n(n-i)
		vj, ok := displaced[j]
		if !ok {
			vj = j
		}
		vi, ok := displaced[i]
		if !ok {
			vi = i
		}
		displaced[j] = vi
		out = append(out, base+vj)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })

	return out, nil
}

// RandomComposition splits n into k ordered buckets, each at least minBucket,
// uniformly over all such compositions (stars and bars over the slack).
func (s *Source) RandomComposition(n, k, minBucket int64) ([]int64, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: RandomComposition(k=%d)", ErrInvalidCount, k)
	}
	slack := n - k*minBucket
	if slack < 0 {
		return nil, fmt.Errorf("%w: n=%d, k=%d, minBucket=%d", ErrInfeasibleComposition, n, k, minBucket)
	}
	// Choose k-1 cut points among slack+k-1 slots; gaps are the bucket slacks.
	cuts, err := s.DistinctIntegers(slack+k-1, k-1, 0)
	if err != nil {
		return nil, err
	}
	out := make([]int64, k)
	prev := int64(-1)
	for i, c := range cuts {
		out[i] = (c - prev - 1) + minBucket
		prev = c
	}
	out[k-1] = (slack + k - 1 - prev - 1) + minBucket

	return out, nil
}

// Shuffle permutes seq in place, uniformly.
func Shuffle[T any](s *Source, seq []T) {
	for i := len(seq) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// Element returns one uniformly chosen element of seq.
func Element[T any](s *Source, seq []T) (T, error) {
	var zero T
	if len(seq) == 0 {
		return zero, fmt.Errorf("%w: Element", ErrEmptySequence)
	}
	return seq[s.rng.Intn(len(seq))], nil
}

// ElementsWithReplacement returns k elements of seq, each drawn independently.
func ElementsWithReplacement[T any](s *Source, seq []T, k int) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: ElementsWithReplacement(k=%d)", ErrInvalidCount, k)
	}
	if len(seq) == 0 && k > 0 {
		return nil, fmt.Errorf("%w: ElementsWithReplacement", ErrEmptySequence)
	}
	out := make([]T, k)
	for i := range out {
		out[i] = seq[s.rng.Intn(len(seq))]
	}

	return out, nil
}

// ElementsWithoutReplacement returns k distinct positions' elements of seq,
// in random order.
func ElementsWithoutReplacement[T any](s *Source, seq []T, k int) ([]T, error) {
	if k < 0 || k > len(seq) {
		return nil, fmt.Errorf("%w: ElementsWithoutReplacement(k=%d, len=%d)", ErrInvalidCount, k, len(seq))
	}
	idx, err := s.RandomPermutation(len(seq))
	if err != nil {
		return nil, err
	}
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = seq[idx[i]]
	}

	return out, nil
}
