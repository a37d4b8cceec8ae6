// Package: moriarty/gen
//
// topological.go — deterministic dependency ordering.
package gen

import "fmt"

// Visitation states for the DFS.
const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // fully explored
)

// topoSorter encapsulates state for one ordering traversal.
type topoSorter struct {
	graph *DepGraph
	state map[string]int
	order []string // post-order; dependencies land before dependents
}

// TopologicalOrder returns the graph's names so that every name appears
// after all of its dependencies. The result is a function of the graph
// alone: roots and children are visited in sorted name order, so two graphs
// with the same edges order identically. A cycle yields ErrCycleDetected.
func TopologicalOrder(g *DepGraph) ([]string, error) {
	if g == nil {
		return nil, ErrNilVariableSet
	}
	s := &topoSorter{
		graph: g,
		state: make(map[string]int, len(g.names)),
		order: make([]string, 0, len(g.names)),
	}
	for _, name := range g.names {
		if s.state[name] == white {
			if err := s.visit(name); err != nil {
				return nil, err
			}
		}
	}
	// Dependencies point "upstream", so the post-order already runs
	// dependencies-first. No reversal.
	return s.order, nil
}

// visit performs a DFS from name, marking states and detecting cycles.
func (s *topoSorter) visit(name string) error {
	// A gray vertex on the path again is a back-edge.
	if s.state[name] == gray {
		return fmt.Errorf("%w: through %q", ErrCycleDetected, name)
	}
	if s.state[name] == black {
		return nil
	}
	s.state[name] = gray
	for _, dep := range s.graph.deps[name] {
		if err := s.visit(dep); err != nil {
			return err
		}
	}
	s.state[name] = black
	s.order = append(s.order, name)

	return nil
}
