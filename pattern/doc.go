// Package pattern implements SimplePattern, the regex-like string constraint
// moriarty variables use to describe, match, and generate text values.
//
// Grammar:
//
//	pattern     := alternation
//	alternation := concat ('|' concat)*
//	concat      := piece+
//	piece       := atom quantifier?
//	atom        := CHAR | '[' setbody ']' | '(' alternation ')'
//	quantifier  := '?' | '*' | '+' | '{' N '}' | '{' N ',' '}' | '{' ',' M '}' | '{' N ',' M '}'
//	setbody     := '^'? setitem+
//	setitem     := CHAR | CHAR '-' CHAR
//
// '\' is the only escape; exactly these escapes are accepted:
// \\ \( \) \[ \] \{ \} \| \? \+ \* \^ \- \<space> \. — anything else is a
// parse error. Whitespace outside escapes is silently ignored, so patterns
// may be spaced out for readability. Groups are structural only: a
// quantifier directly after ')' is a parse error, as are empty groups,
// empty sets, unmatched brackets, and inverted ranges like [z-a] or {3,2}.
//
// Matching backtracks over the parsed tree: concatenation consumes children
// left to right, alternation tries each branch, and a repeated character set
// consumes greedily then backs off within its {min,max} window.
//
// Generation draws a repetition count uniformly inside each leaf's window
// and each character uniformly from the leaf's alphabet; '*' and '+' are
// fine for matching but reject generation (ErrUnboundedRepeat) because no
// upper bound exists to draw from. Negated sets generate over the printable
// ASCII universe ('!' through '~').
package pattern
