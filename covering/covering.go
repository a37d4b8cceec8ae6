// Package: moriarty/covering
//
// covering.go — greedy strength-t covering array construction.
package covering

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/moriarty/random"
)

// MaxDimensions is the largest supported column count. Column subsets are
// encoded in one uint64 bitmask, which leaves 62 usable columns.
const MaxDimensions = 62

var (
	// ErrTooManyDimensions indicates more than MaxDimensions columns.
	ErrTooManyDimensions = errors.New("covering: too many dimensions")

	// ErrBadStrength indicates a strength outside [1, len(dims)].
	ErrBadStrength = errors.New("covering: strength out of range")

	// ErrBadDimension indicates a dimension of size < 1.
	ErrBadDimension = errors.New("covering: dimension size must be positive")

	// ErrNilSource indicates a missing random source.
	ErrNilSource = errors.New("covering: random source is nil")
)

// subset tracks one t-subset of columns and its not-yet-realized
// projections, each encoded in mixed radix over the subset's dimensions.
type subset struct {
	mask      uint64
	cols      []int
	radix     []int
	uncovered map[int64]struct{}
}

// encode folds the row's values on s.cols into one mixed-radix key.
func (s *subset) encode(row []int) int64 {
	var key int64
	for i := len(s.cols) - 1; i >= 0; i-- {
		key = key*int64(s.radix[i]) + int64(row[s.cols[i]])
	}
	return key
}

// decode expands a key back into values, lowest column first.
func (s *subset) decode(key int64) []int {
	vals := make([]int, len(s.cols))
	for i := range s.cols {
		vals[i] = int(key % int64(s.radix[i]))
		key /= int64(s.radix[i])
	}
	return vals
}

// minCompatible returns the smallest uncovered key whose values agree with
// the row's already-fixed columns (row[i] < 0 means free). The smallest key
// keeps the construction deterministic for a given seed.
func (s *subset) minCompatible(row []int) (int64, bool) {
	best := int64(-1)
	for key := range s.uncovered {
		if best >= 0 && key >= best {
			continue
		}
		vals := s.decode(key)
		ok := true
		for i, c := range s.cols {
			if row[c] >= 0 && row[c] != vals[i] {
				ok = false
				break
			}
		}
		if ok {
			best = key
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// Build returns a strength-t covering array over the given dimension sizes.
// Every value of rows[r][c] lies in [0, dims[c]). The greedy construction:
// fix the subset with the most uncovered projections to one of them, extend
// through the other subsets by compatible uncovered projections, fill the
// still-free columns from src.
func Build(dims []int, strength int, src *random.Source) ([][]int, error) {
	k := len(dims)
	if k > MaxDimensions {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyDimensions, k, MaxDimensions)
	}
	if strength < 1 || strength > k {
		return nil, fmt.Errorf("%w: %d with %d dimensions", ErrBadStrength, strength, k)
	}
	for i, d := range dims {
		if d < 1 {
			return nil, fmt.Errorf("%w: dims[%d] = %d", ErrBadDimension, i, d)
		}
	}
	if src == nil {
		return nil, ErrNilSource
	}

	subsets := enumerateSubsets(dims, strength)
	remaining := 0
	for _, s := range subsets {
		remaining += len(s.uncovered)
	}

	var rows [][]int
	for remaining > 0 {
		// The subset with the most uncovered projections seeds the row;
		// index order breaks ties.
		bestIdx := 0
		for i, s := range subsets {
			if len(s.uncovered) > len(subsets[bestIdx].uncovered) {
				bestIdx = i
			}
		}
		seed := subsets[bestIdx]
		seedKey, ok := seed.minCompatible(makeFreeRow(k))
		if !ok {
			break // unreachable while remaining > 0
		}

		row := makeFreeRow(k)
		seedVals := seed.decode(seedKey)
		for i, c := range seed.cols {
			row[c] = seedVals[i]
		}

		// Extend through the other subsets, most-uncovered first.
		order := make([]int, 0, len(subsets))
		for i := range subsets {
			if i != bestIdx {
				order = append(order, i)
			}
		}
		sort.Slice(order, func(a, b int) bool {
			ua, ub := len(subsets[order[a]].uncovered), len(subsets[order[b]].uncovered)
			if ua != ub {
				return ua > ub
			}
			return order[a] < order[b]
		})
		for _, i := range order {
			s := subsets[i]
			key, ok := s.minCompatible(row)
			if !ok {
				continue
			}
			vals := s.decode(key)
			for j, c := range s.cols {
				row[c] = vals[j]
			}
		}

		// Free columns get random values.
		for c, d := range dims {
			if row[c] < 0 {
				v, err := src.RandInt(int64(d))
				if err != nil {
					return nil, err
				}
				row[c] = int(v)
			}
		}

		// Account the row against every subset it covers.
		for _, s := range subsets {
			key := s.encode(row)
			if _, hit := s.uncovered[key]; hit {
				delete(s.uncovered, key)
				remaining--
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func makeFreeRow(k int) []int {
	row := make([]int, k)
	for i := range row {
		row[i] = -1
	}
	return row
}

// enumerateSubsets builds every t-subset of the k columns with its full
// uncovered projection set.
func enumerateSubsets(dims []int, strength int) []*subset {
	var out []*subset
	cols := make([]int, 0, strength)
	var rec func(start int)
	rec = func(start int) {
		if len(cols) == strength {
			s := &subset{
				cols:  append([]int(nil), cols...),
				radix: make([]int, strength),
			}
			total := int64(1)
			for i, c := range cols {
				s.mask |= 1 << uint(c)
				s.radix[i] = dims[c]
				total *= int64(dims[c])
			}
			s.uncovered = make(map[int64]struct{}, total)
			for key := int64(0); key < total; key++ {
				s.uncovered[key] = struct{}{}
			}
			out = append(out, s)
			return
		}
		for c := start; c < len(dims); c++ {
			cols = append(cols, c)
			rec(c + 1)
			cols = cols[:len(cols)-1]
		}
	}
	rec(0)

	return out
}
