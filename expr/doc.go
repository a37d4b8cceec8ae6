// Package expr implements the integer expression language used by moriarty
// constraints to reference other variables.
//
// Grammar (user-facing):
//
//	expr     := term (('+'|'-') term)*
//	term     := factor (('*'|'/'|'%') factor)*
//	factor   := unary ('^' factor)?          // right-associative
//	unary    := ('+'|'-')? atom
//	atom     := INT | NAME | NAME '(' args ')' | '(' expr ')'
//	args     := expr (',' expr)*
//	NAME     := [A-Za-z][A-Za-z0-9_]*
//	INT      := [0-9]+                       // must fit signed 64-bit
//
// Recognized functions: min, max (one or more arguments), abs (exactly one).
// Empty argument lists and empty groups are rejected. Double unary signs
// (`--x`, `-+x`) are rejected.
//
// Evaluation is in signed 64-bit arithmetic and every intermediate step is
// overflow-checked: no silent wrap, ever. Division and modulo by zero, 0^0,
// and negative exponents are arithmetic errors (ErrDivisionByZero /
// ErrOverflow). Evaluating against an environment missing a referenced name
// fails with ErrNeedsVariable; NeededVariables reports the full set of names
// an environment must bind.
//
// Determinism: parsing, evaluation, String and NeededVariables are pure
// functions of their inputs.
package expr
