// Package moriarty declaratively describes algorithmic-problem test inputs
// and turns the descriptions into generated, validated, importable and
// exportable test cases.
//
// 🚀 What is moriarty?
//
//	A deterministic, seed-driven test-data library that brings together:
//		• Constraint variables: integers, strings and arrays with builder-style bounds
//		• An expression language: bounds may reference other variables ("3 * N")
//		• Dependency-ordered generation with soft size limits and retry budgets
//		• Scenario overlays: cross-cutting properties such as size=small
//		• Combinatorial corner cases via strength-t covering arrays
//		• Pluggable token-stream I/O for importing and exporting cases
//
// ✨ Why choose moriarty?
//
//   - Reproducible – every value flows from one explicit seed
//   - Rock-solid guarantees – deterministic ordering, checked 64-bit arithmetic
//   - Declarative – describe the input's shape once, generate and validate with it
//   - Extensible – implement the Variable interface for custom value kinds
//
// Under the hood, everything is organized under focused subpackages:
//
//	expr/     — arithmetic expression parser and evaluator
//	interval/ — integer ranges with symbolic (expression) bounds
//	pattern/  — regex-like string patterns: parse, match, generate
//	random/   — the seeded random source and sampling helpers
//	status/   — the structured error taxonomy
//	core/     — Variable, VariableSet, ValueSet, Universe, Scenario, TestCase
//	vartypes/ — the built-in MInteger, MString and MArray variables
//	gen/      — dependency analysis and the generation driver
//	covering/ — strength-t covering arrays and the corner-case generator
//	simpleio/ — line-oriented token-stream import/export
//
// The root package is the driver façade: wire variables, generators and an
// I/O format into a Moriarty value, then generate, validate, import or
// export batches of test cases.
//
// Quick start:
//
//	m := moriarty.New(moriarty.WithSeed(random.Seed{Ints: []int64{1, 2, 3}}))
//	_ = m.AddVariable("N", vartypes.NewInteger().Between(50, 100))
//	_ = m.AddVariable("A", vartypes.NewInteger().AtLeastExpr("N").AtMostExpr("3 * N"))
//	batch, err := m.GenerateTestCases()
//
// All operations return errors; the Must* variants abort on failure for
// quick scripts and generators.
//
//	go get github.com/katalvlaran/moriarty
package moriarty
