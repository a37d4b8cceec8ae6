// Package: moriarty/pattern
//
// pattern.go — the scope-node tree, character sets, and backtracking match.
package pattern

// Printable ASCII universe used when a negated set must enumerate its
// members (generation): '!' (33) through '~' (126). Space is excluded so
// generated values survive whitespace-separated token streams.
const (
	universeLo = '!'
	universeHi = '~'
)

// unbounded marks a repetition window with no upper limit ('*', '+', '{n,}').
const unbounded = -1

// scopeKind classifies tree nodes.
type scopeKind int

const (
	kLeaf  scopeKind = iota // repeated character set
	kAllOf                  // children must all match, in order
	kAnyOf                  // one child must match
)

// charset is the atomic alphabet of a leaf. members holds the explicitly
// listed bytes in first-mention order (the deterministic generation order);
// has mirrors them for O(1) membership; negated flips the match sense.
type charset struct {
	members []byte
	has     [256]bool
	negated bool
}

// add appends b once, preserving first-mention order.
func (c *charset) add(b byte) {
	if !c.has[b] {
		c.has[b] = true
		c.members = append(c.members, b)
	}
}

// contains reports whether b is matched by the set.
func (c *charset) contains(b byte) bool {
	return c.has[b] != c.negated
}

// alphabet materializes the generation alphabet, optionally intersected with
// an allow filter. Negated sets enumerate the printable ASCII universe.
func (c *charset) alphabet(allow *[256]bool) []byte {
	var out []byte
	if c.negated {
		for b := byte(universeLo); ; b++ {
			if !c.has[b] && (allow == nil || allow[b]) {
				out = append(out, b)
			}
			if b == universeHi {
				break
			}
		}
		return out
	}
	for _, b := range c.members {
		if allow == nil || allow[b] {
			out = append(out, b)
		}
	}
	return out
}

// node is one scope node: a leaf carries a charset and a repetition window;
// interior nodes carry ordered children.
type node struct {
	kind   scopeKind
	set    charset
	minRep int
	maxRep int // unbounded (-1) means no upper limit
	kids   []*node
}

// Pattern is a parsed SimplePattern. Immutable after Parse; safe to share.
type Pattern struct {
	root *node
	src  string
}

// String returns the original pattern text.
func (p *Pattern) String() string { return p.src }

// Match reports whether s is fully matched by the pattern.
func (p *Pattern) Match(s string) bool {
	return p.root.match(s, 0, func(pos int) bool { return pos == len(s) })
}

// match tries to consume s starting at pos and calls cont with every
// candidate end position until one succeeds.
func (n *node) match(s string, pos int, cont func(int) bool) bool {
	switch n.kind {
	case kLeaf:
		// Greedy run, then back off within [minRep, run].
		limit := len(s) - pos
		if n.maxRep != unbounded && n.maxRep < limit {
			limit = n.maxRep
		}
		run := 0
		for run < limit && n.set.contains(s[pos+run]) {
			run++
		}
		for k := run; k >= n.minRep; k-- {
			if cont(pos + k) {
				return true
			}
		}
		return false

	case kAllOf:
		var step func(idx, p int) bool
		step = func(idx, p int) bool {
			if idx == len(n.kids) {
				return cont(p)
			}
			return n.kids[idx].match(s, p, func(np int) bool { return step(idx+1, np) })
		}
		return step(0, pos)

	default: // kAnyOf
		for _, kid := range n.kids {
			if kid.match(s, pos, cont) {
				return true
			}
		}
		return false
	}
}
