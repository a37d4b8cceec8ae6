// Package core defines the central moriarty data model: the Variable
// capability interface, the name-keyed VariableSet and ValueSet, the
// per-call Universe context, Scenario/Property overlays, and the TestCase
// record.
//
// The shape of a generation run:
//
//	VariableSet ──topological order──▶ each Variable.Generate(Universe)
//	     │                                        │
//	     └── constraints reference other ─────────┘
//	         variables by name; the Universe
//	         serves their values (or generates
//	         them on demand) from the ValueSet
//
// Determinism rules enforced here:
//   - Every externally observable iteration over name-keyed maps is sorted
//     by name (ASCII), so error reports and generation orders are stable.
//   - A variable's type-name never changes over its lifetime; merges are
//     accepted only between equal type-names.
//   - A ValueSet holds at most one value per name; Set replaces.
//
// Concurrency: none. The model is single-threaded and synchronous; no two
// goroutines may share a Universe, VariableSet, ValueSet, or random Source
// without external exclusion.
package core
