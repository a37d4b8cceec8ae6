package random_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moriarty/random"
)

func seed(ints ...int64) random.Seed {
	return random.Seed{Ints: ints, Version: "v1"}
}

// TestDeterminism_SameSeedSameStream pins the core reproducibility contract:
// equal seeds produce identical call-for-call output.
func TestDeterminism_SameSeedSameStream(t *testing.T) {
	a := random.NewSource(seed(1, 2, 3))
	b := random.NewSource(seed(1, 2, 3))

	for i := 0; i < 100; i++ {
		va, err := a.RandInt(1_000_000)
		require.NoError(t, err)
		vb, err := b.RandInt(1_000_000)
		require.NoError(t, err)
		assert.Equal(t, va, vb, "draw %d", i)
	}
}

// TestDeterminism_DifferentSeedsDiverge requires divergence within the first
// few draws for different seeds (ints or version tag).
func TestDeterminism_DifferentSeedsDiverge(t *testing.T) {
	draws := func(s *random.Source) []int64 {
		out := make([]int64, 5)
		for i := range out {
			v, err := s.RandInt(1 << 40)
			require.NoError(t, err)
			out[i] = v
		}
		return out
	}

	base := draws(random.NewSource(seed(1, 2, 3)))
	otherInts := draws(random.NewSource(seed(1, 2, 4)))
	otherVersion := draws(random.NewSource(random.Seed{Ints: []int64{1, 2, 3}, Version: "v2"}))

	assert.NotEqual(t, base, otherInts)
	assert.NotEqual(t, base, otherVersion)
}

// TestRandInt_Bounds validates range and argument checking.
func TestRandInt_Bounds(t *testing.T) {
	s := random.NewSource(seed(7))

	for i := 0; i < 200; i++ {
		v, err := s.RandInt(10)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, int64(0))
		assert.Less(t, v, int64(10))
	}

	_, err := s.RandInt(0)
	assert.ErrorIs(t, err, random.ErrInvalidBound)
	_, err = s.RandInt(-3)
	assert.ErrorIs(t, err, random.ErrInvalidBound)
}

// TestRandIntRange_Inclusive covers the closed-interval helper.
func TestRandIntRange_Inclusive(t *testing.T) {
	s := random.NewSource(seed(11))

	seen := map[int64]bool{}
	for i := 0; i < 300; i++ {
		v, err := s.RandIntRange(-2, 2)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, int64(-2))
		assert.LessOrEqual(t, v, int64(2))
		seen[v] = true
	}
	// All five values should appear in 300 draws.
	assert.Len(t, seen, 5)

	v, err := s.RandIntRange(42, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = s.RandIntRange(5, 4)
	assert.ErrorIs(t, err, random.ErrInvalidBound)
}

// TestRandIntRange_WideSpans exercises the rejection-sampled paths: spans
// beyond Int63n territory and the full 64-bit interval stay in bounds and
// reproduce per seed.
func TestRandIntRange_WideSpans(t *testing.T) {
	s := random.NewSource(seed(13))

	var first []int64
	for i := 0; i < 100; i++ {
		v, err := s.RandIntRange(math.MinInt64+1, math.MaxInt64-1)
		require.NoError(t, err)
		assert.Greater(t, v, int64(math.MinInt64))
		assert.Less(t, v, int64(math.MaxInt64))
		first = append(first, v)
	}

	s2 := random.NewSource(seed(13))
	for i := 0; i < 100; i++ {
		v, err := s2.RandIntRange(math.MinInt64+1, math.MaxInt64-1)
		require.NoError(t, err)
		assert.Equal(t, first[i], v, "draw %d", i)
	}

	// The full interval accepts every 64-bit value.
	_, err := s.RandIntRange(math.MinInt64, math.MaxInt64)
	require.NoError(t, err)
}

// TestRandomPermutation_IsPermutation checks content and base offsets.
func TestRandomPermutation_IsPermutation(t *testing.T) {
	s := random.NewSource(seed(2))

	p, err := s.RandomPermutation(20)
	require.NoError(t, err)
	sorted := append([]int(nil), p...)
	sort.Ints(sorted)
	for i, v := range sorted {
		assert.Equal(t, i, v)
	}

	p, err = s.RandomPermutationBase(5, 100)
	require.NoError(t, err)
	sorted = append([]int(nil), p...)
	sort.Ints(sorted)
	assert.Equal(t, []int{100, 101, 102, 103, 104}, sorted)

	_, err = s.RandomPermutationBase(-1, 0)
	assert.ErrorIs(t, err, random.ErrInvalidCount)
}

// TestDistinctIntegers_DistinctSortedInRange checks the selection helper.
func TestDistinctIntegers_DistinctSortedInRange(t *testing.T) {
	s := random.NewSource(seed(3))

	out, err := s.DistinctIntegers(1_000_000_000, 10, 50)
	require.NoError(t, err)
	require.Len(t, out, 10)
	for i, v := range out {
		assert.GreaterOrEqual(t, v, int64(50))
		assert.Less(t, v, int64(50+1_000_000_000))
		if i > 0 {
			assert.Greater(t, v, out[i-1], "must be strictly ascending")
		}
	}

	_, err = s.DistinctIntegers(5, 6, 0)
	assert.ErrorIs(t, err, random.ErrInvalidCount)

	out, err = s.DistinctIntegers(4, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3}, out)
}

// TestRandomComposition_SumsAndMinimums checks feasibility and the invariants.
func TestRandomComposition_SumsAndMinimums(t *testing.T) {
	s := random.NewSource(seed(4))

	for i := 0; i < 50; i++ {
		buckets, err := s.RandomComposition(100, 7, 3)
		require.NoError(t, err)
		require.Len(t, buckets, 7)
		var sum int64
		for _, b := range buckets {
			assert.GreaterOrEqual(t, b, int64(3))
			sum += b
		}
		assert.Equal(t, int64(100), sum)
	}

	_, err := s.RandomComposition(5, 3, 2)
	assert.ErrorIs(t, err, random.ErrInfeasibleComposition)
	_, err = s.RandomComposition(5, 0, 0)
	assert.ErrorIs(t, err, random.ErrInvalidCount)
}

// TestShuffleAndElements covers the generic helpers.
func TestShuffleAndElements(t *testing.T) {
	s := random.NewSource(seed(5))

	seq := []string{"a", "b", "c", "d", "e"}
	shuffled := append([]string(nil), seq...)
	random.Shuffle(s, shuffled)
	assert.ElementsMatch(t, seq, shuffled)

	e, err := random.Element(s, seq)
	require.NoError(t, err)
	assert.Contains(t, seq, e)

	_, err = random.Element(s, []string{})
	assert.ErrorIs(t, err, random.ErrEmptySequence)

	with, err := random.ElementsWithReplacement(s, seq, 12)
	require.NoError(t, err)
	assert.Len(t, with, 12)
	for _, v := range with {
		assert.Contains(t, seq, v)
	}

	without, err := random.ElementsWithoutReplacement(s, seq, 3)
	require.NoError(t, err)
	assert.Len(t, without, 3)
	uniq := map[string]bool{}
	for _, v := range without {
		uniq[v] = true
	}
	assert.Len(t, uniq, 3)

	_, err = random.ElementsWithoutReplacement(s, seq, 6)
	assert.ErrorIs(t, err, random.ErrInvalidCount)
}
