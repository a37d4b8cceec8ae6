// Package gen orders and drives test-data generation.
//
// A VariableSet is a bag of named, mutually referencing constraints. Before
// any value can be drawn, the references must be ordered: a variable whose
// bounds mention N can only be generated after N has a value. This package
// builds that dependency graph, topologically sorts it (deterministically,
// children visited in name order), and walks the order generating values
// into a ValueSet.
//
// Determinism: given the same variables, known values and seed, GenerateAll
// produces the same ValueSet regardless of insertion order.
//
//   - BuildDependencyGraph: names → dependency adjacency, with known values
//     removed and unknown references rejected.
//   - TopologicalOrder: DFS with cycle detection, ErrCycleDetected on a
//     back-edge.
//   - GenerateAll: the driver. Functional options set the seed, the soft
//     size limit and the retry budget. Known values short-circuit their
//     variable's generation but are still validated against its constraints.
//
// Complexity: graph build O(V + E) plus a sort per vertex; ordering
// O(V log V + E); generation is whatever the variables cost.
package gen
