// Package: moriarty/expr
//
// expression.go — the Expression tree: node kinds, checked evaluation,
// needed-variable extraction, deterministic String rendering, deep Clone.
package expr

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// nodeKind enumerates the tree node kinds.
type nodeKind int

const (
	nodeLiteral nodeKind = iota
	nodeVariable
	nodeUnary
	nodeBinary
	nodeCall
)

// Operator precedence levels. Unary binds tighter than '^', which binds
// tighter than multiplicative, which binds tighter than additive.
const (
	precAdditive       = 1
	precMultiplicative = 2
	precPower          = 3
	precUnary          = 4
)

// node is one vertex of the expression tree. Children are uniquely owned;
// Clone copies deeply.
type node struct {
	kind nodeKind
	val  int64   // nodeLiteral
	name string  // nodeVariable, nodeCall
	op   byte    // nodeUnary ('+'/'-'), nodeBinary
	kids []*node // nodeUnary (1), nodeBinary (2), nodeCall (≥1)
}

// Expression is a parsed arithmetic expression over named integer variables.
// The zero value is unusable; obtain instances through Parse.
type Expression struct {
	root *node
	src  string // original text, kept for diagnostics only
}

// Clone returns a deep copy of e. The copy shares no nodes with e.
func (e *Expression) Clone() *Expression {
	if e == nil {
		return nil
	}
	return &Expression{root: e.root.clone(), src: e.src}
}

func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	c := &node{kind: n.kind, val: n.val, name: n.name, op: n.op}
	if len(n.kids) > 0 {
		c.kids = make([]*node, len(n.kids))
		for i, k := range n.kids {
			c.kids[i] = k.clone()
		}
	}
	return c
}

// NeededVariables returns the sorted, deduplicated set of variable names the
// environment must bind for Eval to succeed.
func (e *Expression) NeededVariables() []string {
	seen := make(map[string]struct{})
	e.root.collectNames(seen)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

func (n *node) collectNames(into map[string]struct{}) {
	if n == nil {
		return
	}
	if n.kind == nodeVariable {
		into[n.name] = struct{}{}
	}
	for _, k := range n.kids {
		k.collectNames(into)
	}
}

// Eval evaluates e against env in checked signed 64-bit arithmetic.
// Missing names yield ErrNeedsVariable; arithmetic faults yield ErrOverflow
// or ErrDivisionByZero.
func (e *Expression) Eval(env map[string]int64) (int64, error) {
	return e.root.eval(env)
}

func (n *node) eval(env map[string]int64) (int64, error) {
	switch n.kind {
	case nodeLiteral:
		return n.val, nil

	case nodeVariable:
		v, ok := env[n.name]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrNeedsVariable, n.name)
		}
		return v, nil

	case nodeUnary:
		v, err := n.kids[0].eval(env)
		if err != nil {
			return 0, err
		}
		if n.op == '+' {
			return v, nil
		}
		return checkedNeg(v)

	case nodeBinary:
		lhs, err := n.kids[0].eval(env)
		if err != nil {
			return 0, err
		}
		rhs, err := n.kids[1].eval(env)
		if err != nil {
			return 0, err
		}
		switch n.op {
		case '+':
			return checkedAdd(lhs, rhs)
		case '-':
			return checkedSub(lhs, rhs)
		case '*':
			return checkedMul(lhs, rhs)
		case '/':
			return checkedDiv(lhs, rhs)
		case '%':
			return checkedMod(lhs, rhs)
		case '^':
			return checkedPow(lhs, rhs)
		default:
			return 0, fmt.Errorf("%w: operator %q", ErrParse, n.op)
		}

	case nodeCall:
		args := make([]int64, len(n.kids))
		for i, k := range n.kids {
			v, err := k.eval(env)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		switch n.name {
		case "min":
			best := args[0]
			for _, a := range args[1:] {
				if a < best {
					best = a
				}
			}
			return best, nil
		case "max":
			best := args[0]
			for _, a := range args[1:] {
				if a > best {
					best = a
				}
			}
			return best, nil
		case "abs":
			if args[0] == math.MinInt64 {
				return 0, fmt.Errorf("%w: abs(%d)", ErrOverflow, args[0])
			}
			if args[0] < 0 {
				return -args[0], nil
			}
			return args[0], nil
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, n.name)
		}

	default:
		return 0, fmt.Errorf("%w: corrupt expression tree", ErrParse)
	}
}

// String renders e with the minimal parentheses needed to re-parse into an
// identical tree. Parse(e.String()) evaluates identically to e.
func (e *Expression) String() string {
	var b strings.Builder
	e.root.render(&b, 0, false)

	return b.String()
}

// prec returns a node's binding strength for rendering.
func (n *node) prec() int {
	switch n.kind {
	case nodeBinary:
		switch n.op {
		case '+', '-':
			return precAdditive
		case '*', '/', '%':
			return precMultiplicative
		default: // '^'
			return precPower
		}
	case nodeUnary:
		return precUnary
	default:
		return precUnary + 1 // atoms never need parens
	}
}

// render writes n into b. parentPrec is the precedence of the enclosing
// operator; rightSide tells whether n is the right operand of a
// left-associative operator (or the left operand of '^'), which forces
// parentheses at equal precedence.
func (n *node) render(b *strings.Builder, parentPrec int, rightSide bool) {
	p := n.prec()
	wrap := p < parentPrec || (p == parentPrec && rightSide)
	if wrap {
		b.WriteByte('(')
	}
	switch n.kind {
	case nodeLiteral:
		b.WriteString(strconv.FormatInt(n.val, 10))
	case nodeVariable:
		b.WriteString(n.name)
	case nodeUnary:
		b.WriteByte(n.op)
		n.kids[0].render(b, precUnary, false)
	case nodeBinary:
		if n.op == '^' {
			// Right-associative: the LEFT child needs parens at equal precedence.
			n.kids[0].render(b, precPower, true)
			b.WriteString(" ^ ")
			n.kids[1].render(b, precPower, false)
		} else {
			n.kids[0].render(b, p, false)
			b.WriteByte(' ')
			b.WriteByte(n.op)
			b.WriteByte(' ')
			n.kids[1].render(b, p, true)
		}
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, k := range n.kids {
			if i > 0 {
				b.WriteString(", ")
			}
			k.render(b, 0, false)
		}
		b.WriteByte(')')
	}
	if wrap {
		b.WriteByte(')')
	}
}
