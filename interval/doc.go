// Package interval implements the closed integer Range constraint used by
// moriarty variables.
//
// A Range combines a numeric lower bound, a numeric upper bound, and any
// number of symbolic bounds written in the expression language of
// moriarty/expr. Given a name→integer environment, the effective bounds are
//
//	lo = max(numeric lower, every lower expression evaluated)
//	hi = min(numeric upper, every upper expression evaluated)
//
// and the range is empty when lo > hi. Intersection is bound-wise: lower
// bounds take the maximum, upper bounds take the minimum, symbolic lists
// concatenate.
//
// AtLeastExpr/AtMostExpr parse eagerly but report failures lazily: a parse
// error is remembered and surfaced by Extremes and NeededVariables, so
// builder chains stay fluent.
package interval
