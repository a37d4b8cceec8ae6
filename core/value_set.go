// Package: moriarty/core
//
// value_set.go — the name→value store with approximate-size accounting.
//
// The size metric is deliberately cheap and over-approximate: primitives
// count 1, strings their length, slices the sum of their elements. Erase
// subtracts a constant and a duplicate Set accumulates again, so the
// counter only ever over-counts. It feeds the soft generation limit, which
// is advisory; nothing may depend on its exactness.
package core

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/katalvlaran/moriarty/status"
)

// eraseSizeCredit is the constant subtracted by Erase. Erasing a large
// value therefore leaves the counter too high, which is the safe direction
// for a cut-off metric.
const eraseSizeCredit = 1

// ValueSet maps variable names to the values their variables produced.
// Insertion order is irrelevant; at most one value per name.
type ValueSet struct {
	vals       map[string]Value
	approxSize int64
}

// NewValueSet returns an empty ValueSet.
func NewValueSet() *ValueSet {
	return &ValueSet{vals: make(map[string]Value)}
}

// approxSizeOf estimates a value's contribution to the cumulative size.
func approxSizeOf(v Value) int64 {
	switch t := v.(type) {
	case string:
		return int64(len(t))
	case nil:
		return 0
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		var sum int64
		for i := 0; i < rv.Len(); i++ {
			sum += approxSizeOf(rv.Index(i).Interface())
		}
		return sum
	}

	return 1
}

// SetUntyped stores v under name, replacing any previous value. The
// approximate size accumulates even on replacement (documented over-count).
func (vs *ValueSet) SetUntyped(name string, v Value) {
	vs.vals[name] = v
	vs.approxSize += approxSizeOf(v)
}

// SetValue stores a typed value under name. See SetUntyped for the size
// accounting rules.
func SetValue[T any](vs *ValueSet, name string, v T) {
	vs.SetUntyped(name, v)
}

// GetValue retrieves the value stored under name as type T. Absence yields
// a ValueNotFound status; a stored value of a different concrete type
// yields ErrKindMismatch.
func GetValue[T any](vs *ValueSet, name string) (T, error) {
	var zero T
	v, ok := vs.vals[name]
	if !ok {
		return zero, status.ValueNotFound(name)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T", ErrKindMismatch, name, v)
	}

	return typed, nil
}

// UnsafeGet is the type-erased accessor for cross-cutting code (printing,
// size accounting). ok is false when no value is stored.
func (vs *ValueSet) UnsafeGet(name string) (Value, bool) {
	v, ok := vs.vals[name]
	return v, ok
}

// Has reports whether a value is stored under name.
func (vs *ValueSet) Has(name string) bool {
	_, ok := vs.vals[name]
	return ok
}

// Erase removes name's value if present. The approximate size is reduced
// by a constant, not the value's true contribution.
func (vs *ValueSet) Erase(name string) {
	if _, ok := vs.vals[name]; !ok {
		return
	}
	delete(vs.vals, name)
	if vs.approxSize >= eraseSizeCredit {
		vs.approxSize -= eraseSizeCredit
	}
}

// ApproxSize returns the cumulative approximate size. Over-counts after
// replacement or erase are documented behavior; never assert exact values.
func (vs *ValueSet) ApproxSize() int64 {
	return vs.approxSize
}

// Len returns the number of stored values.
func (vs *ValueSet) Len() int {
	return len(vs.vals)
}

// Names returns the stored names sorted ascending.
func (vs *ValueSet) Names() []string {
	names := make([]string, 0, len(vs.vals))
	for n := range vs.vals {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}
