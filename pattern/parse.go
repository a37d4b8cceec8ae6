// Package: moriarty/pattern
//
// parse.go — recursive-descent parser over a whitespace-stripped,
// escape-decoded item stream.
package pattern

import (
	"fmt"
	"math"
)

// escapable is the exact whitelist of characters that may follow '\'.
const escapable = `\(){}[]|?+*^- .`

// item is one decoded pattern character. lit marks characters produced by an
// escape: they always mean themselves and never act as syntax.
type item struct {
	ch  byte
	lit bool
	pos int // position in the original text, for error messages
}

// lex strips unescaped whitespace and decodes escapes. Dangling or
// unrecognized escapes fail here.
func lex(s string) ([]item, error) {
	items := make([]item, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			// ignored outside escapes
		case c == '\\':
			if i+1 >= len(s) {
				return nil, fmt.Errorf("%w: dangling escape at %d", ErrParse, i)
			}
			e := s[i+1]
			ok := false
			for j := 0; j < len(escapable); j++ {
				if escapable[j] == e {
					ok = true
					break
				}
			}
			if !ok {
				return nil, fmt.Errorf("%w: unsupported escape %q at %d", ErrParse, string(rune(e)), i)
			}
			items = append(items, item{ch: e, lit: true, pos: i})
			i++
		default:
			items = append(items, item{ch: c, pos: i})
		}
	}

	return items, nil
}

// parser walks the item stream.
type parser struct {
	items []item
	pos   int
}

// Parse parses a SimplePattern. The returned Pattern is immutable.
func Parse(s string) (*Pattern, error) {
	items, err := lex(s)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrParse)
	}
	p := &parser{items: items}
	root, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.items) {
		return nil, fmt.Errorf("%w: unmatched %q at %d", ErrParse, string(rune(p.items[p.pos].ch)), p.items[p.pos].pos)
	}

	return &Pattern{root: root, src: s}, nil
}

// peekSyntax reports whether the next item is the unescaped syntax byte c.
func (p *parser) peekSyntax(c byte) bool {
	return p.pos < len(p.items) && !p.items[p.pos].lit && p.items[p.pos].ch == c
}

// alternation := concat ('|' concat)*
func (p *parser) alternation() (*node, error) {
	first, err := p.concat()
	if err != nil {
		return nil, err
	}
	kids := []*node{first}
	for p.peekSyntax('|') {
		p.pos++
		next, err := p.concat()
		if err != nil {
			return nil, err
		}
		kids = append(kids, next)
	}
	if len(kids) == 1 {
		return kids[0], nil
	}

	return &node{kind: kAnyOf, kids: kids}, nil
}

// concat := piece+
func (p *parser) concat() (*node, error) {
	var kids []*node
	for p.pos < len(p.items) && !p.peekSyntax('|') && !p.peekSyntax(')') {
		piece, err := p.piece()
		if err != nil {
			return nil, err
		}
		kids = append(kids, piece)
	}
	if len(kids) == 0 {
		return nil, fmt.Errorf("%w: empty alternative or group at %d", ErrParse, p.errPos())
	}
	if len(kids) == 1 {
		return kids[0], nil
	}

	return &node{kind: kAllOf, kids: kids}, nil
}

// piece := atom quantifier?
func (p *parser) piece() (*node, error) {
	atom, group, err := p.atom()
	if err != nil {
		return nil, err
	}
	min, max, quantified, err := p.quantifier()
	if err != nil {
		return nil, err
	}
	if !quantified {
		return atom, nil
	}
	if group {
		return nil, fmt.Errorf("%w: quantifier applied to a group at %d", ErrParse, p.errPos())
	}
	atom.minRep, atom.maxRep = min, max

	return atom, nil
}

// atom := CHAR | '[' setbody ']' | '(' alternation ')'
// The boolean result marks groups, which refuse quantifiers.
func (p *parser) atom() (*node, bool, error) {
	it := p.items[p.pos]
	if !it.lit {
		switch it.ch {
		case '(':
			p.pos++
			inner, err := p.alternation()
			if err != nil {
				return nil, false, err
			}
			if !p.peekSyntax(')') {
				return nil, false, fmt.Errorf("%w: unclosed '(' at %d", ErrParse, it.pos)
			}
			p.pos++
			return inner, true, nil
		case '[':
			p.pos++
			leaf, err := p.setBody(it.pos)
			return leaf, false, err
		case '?', '*', '+', '{':
			return nil, false, fmt.Errorf("%w: quantifier without an atom at %d", ErrParse, it.pos)
		case ')', '|', ']', '}', '^', '-':
			return nil, false, fmt.Errorf("%w: unexpected %q at %d", ErrParse, string(rune(it.ch)), it.pos)
		}
	}
	// Plain or escaped literal character: a single-member set repeated once.
	p.pos++
	leaf := &node{kind: kLeaf, minRep: 1, maxRep: 1}
	leaf.set.add(it.ch)

	return leaf, false, nil
}

// setBody parses the interior of '[' … ']'. Inside a set, only an unescaped
// ']' (close), a leading unescaped '^' (negation), an interior unescaped '-'
// (range), and '\' (handled by lex) keep their meta-role.
func (p *parser) setBody(openPos int) (*node, error) {
	leaf := &node{kind: kLeaf, minRep: 1, maxRep: 1}
	if p.peekSyntax('^') {
		leaf.set.negated = true
		p.pos++
	}
	for {
		if p.pos >= len(p.items) {
			return nil, fmt.Errorf("%w: unclosed '[' at %d", ErrParse, openPos)
		}
		if p.peekSyntax(']') {
			p.pos++
			break
		}
		lo := p.items[p.pos]
		p.pos++
		// Range form: CHAR '-' CHAR, where '-' is unescaped and the right
		// side is not the closing bracket.
		if p.peekSyntax('-') && p.pos+1 < len(p.items) &&
			!(p.items[p.pos+1].ch == ']' && !p.items[p.pos+1].lit) {
			hi := p.items[p.pos+1]
			p.pos += 2
			if lo.ch > hi.ch {
				return nil, fmt.Errorf("%w: inverted range %q-%q at %d",
					ErrParse, string(rune(lo.ch)), string(rune(hi.ch)), lo.pos)
			}
			for b := lo.ch; ; b++ {
				leaf.set.add(b)
				if b == hi.ch {
					break
				}
			}
			continue
		}
		leaf.set.add(lo.ch)
	}
	if len(leaf.set.members) == 0 {
		return nil, fmt.Errorf("%w: empty character set at %d", ErrParse, openPos)
	}

	return leaf, nil
}

// quantifier parses an optional '?', '*', '+', or '{…}' window.
func (p *parser) quantifier() (min, max int, present bool, err error) {
	if p.pos >= len(p.items) || p.items[p.pos].lit {
		return 0, 0, false, nil
	}
	switch p.items[p.pos].ch {
	case '?':
		p.pos++
		return 0, 1, true, nil
	case '*':
		p.pos++
		return 0, unbounded, true, nil
	case '+':
		p.pos++
		return 1, unbounded, true, nil
	case '{':
		openPos := p.items[p.pos].pos
		p.pos++
		min, max, err = p.braceWindow(openPos)
		return min, max, true, err
	default:
		return 0, 0, false, nil
	}
}

// braceWindow parses {n}, {n,}, {,m}, {n,m} after the '{'.
func (p *parser) braceWindow(openPos int) (int, int, error) {
	n, hasN, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	if p.peekSyntax('}') {
		p.pos++
		if !hasN {
			return 0, 0, fmt.Errorf("%w: empty repetition braces at %d", ErrParse, openPos)
		}
		return n, n, nil
	}
	if !p.peekSyntax(',') {
		return 0, 0, fmt.Errorf("%w: malformed repetition at %d", ErrParse, openPos)
	}
	p.pos++
	m, hasM, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	if !p.peekSyntax('}') {
		return 0, 0, fmt.Errorf("%w: unclosed '{' at %d", ErrParse, openPos)
	}
	p.pos++
	switch {
	case hasN && hasM:
		if n > m {
			return 0, 0, fmt.Errorf("%w: inverted repetition {%d,%d} at %d", ErrParse, n, m, openPos)
		}
		return n, m, nil
	case hasN:
		return n, unbounded, nil
	case hasM:
		return 0, m, nil
	default:
		return 0, 0, fmt.Errorf("%w: empty repetition braces at %d", ErrParse, openPos)
	}
}

// number reads an optional digit run from the item stream.
func (p *parser) number() (int, bool, error) {
	start := p.pos
	v := 0
	for p.pos < len(p.items) && !p.items[p.pos].lit &&
		p.items[p.pos].ch >= '0' && p.items[p.pos].ch <= '9' {
		d := int(p.items[p.pos].ch - '0')
		if v > (math.MaxInt32-d)/10 {
			return 0, false, fmt.Errorf("%w: repetition count too large at %d", ErrParse, p.items[start].pos)
		}
		v = v*10 + d
		p.pos++
	}

	return v, p.pos > start, nil
}

// errPos gives a best-effort position for end-of-input errors.
func (p *parser) errPos() int {
	if p.pos < len(p.items) {
		return p.items[p.pos].pos
	}
	if len(p.items) > 0 {
		return p.items[len(p.items)-1].pos + 1
	}
	return 0
}
