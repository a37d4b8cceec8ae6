// Package: moriarty/core
//
// variable_set.go — the ordered-by-name collection owning every variable.
package core

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/moriarty/status"
)

// VariableSet owns variables by unique name. Lookup is O(1); every
// externally observable iteration is sorted by name so reports stay stable.
type VariableSet struct {
	vars map[string]Variable
}

// NewVariableSet returns an empty VariableSet.
func NewVariableSet() *VariableSet {
	return &VariableSet{vars: make(map[string]Variable)}
}

// AddVariable adopts v under name. The name must validate and must not
// already exist (ErrDuplicateVariable).
func (vs *VariableSet) AddVariable(name string, v Variable) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, ok := vs.vars[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}
	v.SetName(name)
	vs.vars[name] = v

	return nil
}

// AddOrMergeVariable adopts v under name, or intersects v's constraints
// into the existing variable of the same type-name.
func (vs *VariableSet) AddOrMergeVariable(name string, v Variable) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	existing, ok := vs.vars[name]
	if !ok {
		v.SetName(name)
		vs.vars[name] = v
		return nil
	}
	if err := existing.MergeFrom(v); err != nil {
		return fmt.Errorf("AddOrMergeVariable(%q): %w", name, err)
	}

	return nil
}

// GetVariable returns the variable owned under name, or a VariableNotFound
// status.
func (vs *VariableSet) GetVariable(name string) (Variable, error) {
	v, ok := vs.vars[name]
	if !ok {
		return nil, status.VariableNotFound(name)
	}
	return v, nil
}

// GetVariableT returns the variable under name converted to the concrete
// type T. A stored variable of another type yields ErrKindMismatch.
func GetVariableT[T Variable](vs *VariableSet, name string) (T, error) {
	var zero T
	v, err := vs.GetVariable(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: variable %q is %s", ErrKindMismatch, name, v.Typename())
	}

	return typed, nil
}

// Has reports whether name is owned by the set.
func (vs *VariableSet) Has(name string) bool {
	_, ok := vs.vars[name]
	return ok
}

// Len returns the number of owned variables.
func (vs *VariableSet) Len() int {
	return len(vs.vars)
}

// Names returns the owned names sorted ascending (ASCII).
func (vs *VariableSet) Names() []string {
	names := make([]string, 0, len(vs.vars))
	for n := range vs.vars {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// SetUniverse binds every owned variable to u.
func (vs *VariableSet) SetUniverse(u *Universe) {
	for _, name := range vs.Names() {
		vs.vars[name].SetUniverse(u)
	}
}

// Clone deep-copies the set; clones carry no Universe binding.
func (vs *VariableSet) Clone() *VariableSet {
	c := NewVariableSet()
	for name, v := range vs.vars {
		cl := v.Clone()
		cl.SetName(name)
		c.vars[name] = cl
	}
	return c
}

// WithScenario applies s to every variable: general properties first, then
// the type-specific ones matching each variable's Typename, in insertion
// order. The first failure aborts with context.
func (vs *VariableSet) WithScenario(s *Scenario) error {
	for _, name := range vs.Names() {
		v := vs.vars[name]
		for _, p := range s.GetGeneralProperties() {
			if err := v.WithProperty(p); err != nil {
				return fmt.Errorf("WithScenario: variable %q: %w", name, err)
			}
		}
		for _, p := range s.GetTypeSpecificProperties(v.Typename()) {
			if err := v.WithProperty(p); err != nil {
				return fmt.Errorf("WithScenario: variable %q: %w", name, err)
			}
		}
	}

	return nil
}

// AllVariablesSatisfyConstraints asks every variable to self-check against
// the universe's value set, in name order; the first failure is surfaced.
// Any unvalued variable is an error; extra values are not.
func (vs *VariableSet) AllVariablesSatisfyConstraints(u *Universe) error {
	for _, name := range vs.Names() {
		if err := vs.vars[name].ValueSatisfiesConstraints(u); err != nil {
			return fmt.Errorf("AllVariablesSatisfyConstraints: variable %q: %w", name, err)
		}
	}

	return nil
}
