// Package: moriarty/gen
//
// graph.go — the dependency graph over variable names.
package gen

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/moriarty/core"
)

var (
	// ErrNilVariableSet indicates a nil variable set was passed in.
	ErrNilVariableSet = errors.New("gen: variable set is nil")

	// ErrUnknownDependency indicates a constraint references a name that is
	// neither a variable nor a known value.
	ErrUnknownDependency = errors.New("gen: unknown dependency")

	// ErrCycleDetected indicates the dependency graph contains a cycle.
	ErrCycleDetected = errors.New("gen: dependency cycle detected")
)

// DepGraph is the dependency adjacency over variable names. An edge
// name → dep means dep must receive a value before name.
type DepGraph struct {
	names []string            // all vertex names, sorted
	deps  map[string][]string // per-vertex dependencies, sorted
}

// Names returns every vertex name in sorted order.
func (g *DepGraph) Names() []string { return g.names }

// Dependencies returns the sorted dependency list of one vertex.
func (g *DepGraph) Dependencies(name string) []string { return g.deps[name] }

// BuildDependencyGraph collects each variable's referenced names into an
// adjacency. References already satisfied by a known value are dropped
// (they constrain nothing to order). A reference that is neither a variable
// nor a known value is an ErrUnknownDependency.
func BuildDependencyGraph(vs *core.VariableSet, known *core.ValueSet) (*DepGraph, error) {
	if vs == nil {
		return nil, ErrNilVariableSet
	}
	names := vs.Names() // sorted
	g := &DepGraph{names: names, deps: make(map[string][]string, len(names))}
	for _, name := range names {
		v, err := vs.GetVariable(name)
		if err != nil {
			return nil, err
		}
		refs, err := v.GetDependencies()
		if err != nil {
			return nil, fmt.Errorf("gen: dependencies of %q: %w", name, err)
		}
		kept := make([]string, 0, len(refs))
		for _, ref := range refs {
			if known != nil && known.Has(ref) {
				continue
			}
			if !vs.Has(ref) {
				return nil, fmt.Errorf("%w: %q referenced by %q", ErrUnknownDependency, ref, name)
			}
			kept = append(kept, ref)
		}
		sort.Strings(kept)
		g.deps[name] = kept
	}

	return g, nil
}
