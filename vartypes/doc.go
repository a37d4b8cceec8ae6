// Package vartypes provides the built-in moriarty variable types:
//
//	MInteger — a 64-bit integer constrained by a Range (numeric and
//	           symbolic bounds over other variables).
//	MString  — a string constrained by a length Range, an alphabet, and
//	           any number of SimplePatterns (all must match).
//	MArray   — a homogeneous sequence of another variable type with a
//	           length Range.
//
// Every type is builder-style: constraint methods record and return the
// receiver, so declarations chain:
//
//	n := vartypes.NewInteger().Between(50, 100)
//	a := vartypes.NewInteger().AtLeastExpr("N").AtMostExpr("3 * N")
//	s := vartypes.NewString().WithAlphabet("abc").OfLength(50, 10000)
//
// Constraints are held unmerged; MergeFrom intersects two same-typed
// variables' constraint bags (ranges intersect, alphabets intersect,
// pattern lists concatenate under both-must-match semantics).
//
// Size properties: every type recognizes the "size" category and interprets
// a tier by slicing its feasible range (value range for MInteger, length
// range for MString/MArray) with core.TierSlice. Unknown categories are
// mandatory and rejected.
package vartypes
