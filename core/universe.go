// Package: moriarty/core
//
// universe.go — the per-call context bundling collaborators.
//
// A Universe is transient and held by reference only: variables reach the
// random source, the I/O adapter, and each other through it during a single
// generation or validation call, and must not retain it afterwards.
package core

import (
	"fmt"

	"github.com/katalvlaran/moriarty/random"
	"github.com/katalvlaran/moriarty/status"
)

// IOAdapter is the token-level I/O contract variables print to and read
// from. Concrete stream layouts (headers, per-case lines, whitespace
// policies) live in moriarty/simpleio.
type IOAdapter interface {
	// ReadToken returns the next whitespace-delimited token.
	ReadToken() (string, error)

	// PrintToken emits one token.
	PrintToken(tok string) error
}

// GenConfig carries the generation knobs a Universe exposes to variables
// and to the driver.
type GenConfig struct {
	// SoftSizeLimit is the advisory cumulative-size threshold; 0 disables
	// it. Variables clamp their own size upper bounds to the remaining
	// budget (never below their lower bounds), and the driver stops
	// starting optional work once the limit is met.
	SoftSizeLimit int64

	// RetryBudget bounds per-variable regeneration attempts after a
	// transient (retryable) failure.
	RetryBudget int
}

// DefaultRetryBudget is the small fixed budget used when none is configured.
const DefaultRetryBudget = 5

// Universe bundles the optional collaborators of one generation or
// validation call. Operations needing a missing collaborator return a
// Misconfigured status naming it.
type Universe struct {
	constValues *ValueSet
	mutValues   *ValueSet
	constVars   *VariableSet
	mutVars     *VariableSet
	rnd         *random.Source
	io          IOAdapter
	config      GenConfig

	// inFlight guards the on-demand generation path against dependency
	// cycles that slipped past analysis (e.g. ad-hoc GetValue calls).
	inFlight map[string]bool
}

// NewUniverse returns an empty Universe; attach collaborators with the
// WithX chain.
func NewUniverse() *Universe {
	return &Universe{inFlight: make(map[string]bool)}
}

// WithConstValueSet attaches the read-only value set (validation reads).
func (u *Universe) WithConstValueSet(vs *ValueSet) *Universe {
	u.constValues = vs
	return u
}

// WithMutableValueSet attaches the writable value set (generation writes).
func (u *Universe) WithMutableValueSet(vs *ValueSet) *Universe {
	u.mutValues = vs
	return u
}

// WithConstVariableSet attaches a read-only variable set.
func (u *Universe) WithConstVariableSet(vs *VariableSet) *Universe {
	u.constVars = vs
	return u
}

// WithMutableVariableSet attaches the variable set driving generation and
// binds its variables to u.
func (u *Universe) WithMutableVariableSet(vs *VariableSet) *Universe {
	u.mutVars = vs
	vs.SetUniverse(u)
	return u
}

// WithRandomSource attaches the deterministic random source.
func (u *Universe) WithRandomSource(src *random.Source) *Universe {
	u.rnd = src
	return u
}

// WithIOAdapter attaches the token I/O adapter.
func (u *Universe) WithIOAdapter(io IOAdapter) *Universe {
	u.io = io
	return u
}

// WithGenConfig sets the generation knobs.
func (u *Universe) WithGenConfig(cfg GenConfig) *Universe {
	u.config = cfg
	return u
}

// GenConfig returns the generation knobs (zero value when unset).
func (u *Universe) GenConfig() GenConfig {
	return u.config
}

// RandomSource returns the attached source or a Misconfigured status.
func (u *Universe) RandomSource() (*random.Source, error) {
	if u.rnd == nil {
		return nil, status.Misconfigured("Universe", "RandomSource", "RandomSource")
	}
	return u.rnd, nil
}

// IO returns the attached I/O adapter or a Misconfigured status.
func (u *Universe) IO() (IOAdapter, error) {
	if u.io == nil {
		return nil, status.Misconfigured("Universe", "IO", "IOAdapter")
	}
	return u.io, nil
}

// MutableValues returns the writable value set or a Misconfigured status.
func (u *Universe) MutableValues() (*ValueSet, error) {
	if u.mutValues == nil {
		return nil, status.Misconfigured("Universe", "MutableValues", "MutableValueSet")
	}
	return u.mutValues, nil
}

// ConstValues returns the value set validation reads from: the const set
// when attached, else the mutable one.
func (u *Universe) ConstValues() (*ValueSet, error) {
	if u.constValues != nil {
		return u.constValues, nil
	}
	if u.mutValues != nil {
		return u.mutValues, nil
	}
	return nil, status.Misconfigured("Universe", "ConstValues", "ValueSet")
}

// Variables returns the variable set lookups go through: the mutable set
// when attached, else the const one.
func (u *Universe) Variables() (*VariableSet, error) {
	if u.mutVars != nil {
		return u.mutVars, nil
	}
	if u.constVars != nil {
		return u.constVars, nil
	}
	return nil, status.Misconfigured("Universe", "Variables", "VariableSet")
}

// RemainingBudget reports how much approximate size the soft limit still
// allows. ok is false when no limit is configured or no mutable value set
// is attached.
func (u *Universe) RemainingBudget() (int64, bool) {
	if u.config.SoftSizeLimit <= 0 || u.mutValues == nil {
		return 0, false
	}
	rem := u.config.SoftSizeLimit - u.mutValues.ApproxSize()
	if rem < 0 {
		rem = 0
	}
	return rem, true
}

// GetValue is the injection path of the data model: serve name from the
// value sets, else generate it through the variable set, store the result
// in the mutable value set, and return it.
func (u *Universe) GetValue(name string) (Value, error) {
	if u.constValues != nil {
		if v, ok := u.constValues.UnsafeGet(name); ok {
			return v, nil
		}
	}
	if u.mutValues != nil {
		if v, ok := u.mutValues.UnsafeGet(name); ok {
			return v, nil
		}
	}
	vars, err := u.Variables()
	if err != nil {
		return nil, err
	}
	v, err := vars.GetVariable(name)
	if err != nil {
		return nil, err
	}
	if u.inFlight[name] {
		return nil, status.NonRetryableGeneration(
			fmt.Sprintf("cyclic on-demand generation of %q", name))
	}
	mut, err := u.MutableValues()
	if err != nil {
		return nil, err
	}
	u.inFlight[name] = true
	val, err := v.Generate(u)
	delete(u.inFlight, name)
	if err != nil {
		return nil, fmt.Errorf("Universe.GetValue(%q): %w", name, err)
	}
	mut.SetUntyped(name, val)

	return val, nil
}

// Int64Value fetches name through GetValue and requires an int64.
func (u *Universe) Int64Value(name string) (int64, error) {
	v, err := u.GetValue(name)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: %q holds %T, need int64", ErrKindMismatch, name, v)
	}

	return i, nil
}

// Env builds a name→int64 environment for expression evaluation, fetching
// (and generating if needed) every listed name.
func (u *Universe) Env(names []string) (map[string]int64, error) {
	env := make(map[string]int64, len(names))
	for _, n := range names {
		v, err := u.Int64Value(n)
		if err != nil {
			return nil, err
		}
		env[n] = v
	}

	return env, nil
}
