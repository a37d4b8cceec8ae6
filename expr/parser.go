// Package: moriarty/expr
//
// parser.go — shunting-yard parser over the hand tokenizer.
//
// The operator stack holds both pending operators and scope markers
// (start-of-string, open parenthesis, function start). Unary +/- is
// disambiguated from binary by the preceding token: unary iff the previous
// token was an operator, an open parenthesis, a function start, a comma, or
// the start of the string. A unary sign directly after another unary sign
// (`--x`, `-+x`) is rejected.
package expr

import "fmt"

// stackKind classifies operator-stack entries.
type stackKind int

const (
	stkScopeStart stackKind = iota // bottom-of-stack marker
	stkScopeParen                  // '(' group
	stkScopeFunc                   // NAME '(' call
	stkUnary                       // pending unary +/-
	stkBinary                      // pending binary operator
)

// stackEntry is one operator-stack slot.
type stackEntry struct {
	kind stackKind
	op   byte
	name string // stkScopeFunc: function name
	args int    // stkScopeFunc: commas consumed so far
	pos  int
}

// parser carries the shunting-yard state for a single Parse call.
type parser struct {
	out []*node
	ops []stackEntry
}

// Parse parses s into an Expression. The returned tree owns all its nodes.
func Parse(s string) (*Expression, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}

	p := &parser{
		out: make([]*node, 0, 8),
		ops: []stackEntry{{kind: stkScopeStart}},
	}

	expectOperand := true // true when the next token must begin an operand
	prevUnary := false    // true right after a unary sign was pushed

	for _, t := range toks {
		switch t.kind {
		case tokInt:
			if !expectOperand {
				return nil, fmt.Errorf("%w: unexpected literal at %d", ErrParse, t.pos)
			}
			p.out = append(p.out, &node{kind: nodeLiteral, val: t.val})
			expectOperand, prevUnary = false, false

		case tokIdent:
			if !expectOperand {
				return nil, fmt.Errorf("%w: unexpected identifier %q at %d", ErrParse, t.name, t.pos)
			}
			p.out = append(p.out, &node{kind: nodeVariable, name: t.name})
			expectOperand, prevUnary = false, false

		case tokFunc:
			if !expectOperand {
				return nil, fmt.Errorf("%w: unexpected function %q at %d", ErrParse, t.name, t.pos)
			}
			p.ops = append(p.ops, stackEntry{kind: stkScopeFunc, name: t.name, pos: t.pos})
			expectOperand, prevUnary = true, false

		case tokLParen:
			if !expectOperand {
				return nil, fmt.Errorf("%w: unexpected '(' at %d", ErrParse, t.pos)
			}
			p.ops = append(p.ops, stackEntry{kind: stkScopeParen, pos: t.pos})
			expectOperand, prevUnary = true, false

		case tokComma:
			if expectOperand {
				return nil, fmt.Errorf("%w: missing argument before ',' at %d", ErrParse, t.pos)
			}
			if err = p.applyToScope(); err != nil {
				return nil, err
			}
			top := &p.ops[len(p.ops)-1]
			if top.kind != stkScopeFunc {
				return nil, fmt.Errorf("%w: ',' outside a function call at %d", ErrParse, t.pos)
			}
			top.args++
			expectOperand, prevUnary = true, false

		case tokOp:
			if expectOperand {
				// Unary position.
				if t.op != '+' && t.op != '-' {
					return nil, fmt.Errorf("%w: unexpected operator %q at %d", ErrParse, t.op, t.pos)
				}
				if prevUnary {
					return nil, fmt.Errorf("%w: doubled unary sign at %d", ErrParse, t.pos)
				}
				p.ops = append(p.ops, stackEntry{kind: stkUnary, op: t.op, pos: t.pos})
				prevUnary = true
				continue
			}
			prec := binaryPrec(t.op)
			leftAssoc := t.op != '^'
			for {
				top := p.ops[len(p.ops)-1]
				if top.kind != stkUnary && top.kind != stkBinary {
					break
				}
				topPrec := precUnary
				if top.kind == stkBinary {
					topPrec = binaryPrec(top.op)
				}
				if topPrec > prec || (topPrec == prec && leftAssoc) {
					if err = p.applyTop(); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
			p.ops = append(p.ops, stackEntry{kind: stkBinary, op: t.op, pos: t.pos})
			expectOperand, prevUnary = true, false

		case tokRParen:
			if expectOperand {
				// Covers '()', 'f()' and '(a +)'.
				return nil, fmt.Errorf("%w: missing operand before ')' at %d", ErrParse, t.pos)
			}
			if err = p.applyToScope(); err != nil {
				return nil, err
			}
			top := p.ops[len(p.ops)-1]
			p.ops = p.ops[:len(p.ops)-1]
			switch top.kind {
			case stkScopeParen:
				// Group closed; the operand already sits on the output stack.
			case stkScopeFunc:
				argc := top.args + 1
				if top.name == "abs" && argc != 1 {
					return nil, fmt.Errorf("%w: abs takes exactly 1 argument, got %d", ErrParse, argc)
				}
				kids := make([]*node, argc)
				copy(kids, p.out[len(p.out)-argc:])
				p.out = p.out[:len(p.out)-argc]
				p.out = append(p.out, &node{kind: nodeCall, name: top.name, kids: kids})
			default:
				return nil, fmt.Errorf("%w: unmatched ')' at %d", ErrParse, t.pos)
			}
			expectOperand, prevUnary = false, false

		case tokEnd:
			if expectOperand {
				return nil, fmt.Errorf("%w: unexpected end of expression", ErrParse)
			}
			if err = p.applyToScope(); err != nil {
				return nil, err
			}
			top := p.ops[len(p.ops)-1]
			if top.kind != stkScopeStart {
				return nil, fmt.Errorf("%w: unclosed '(' at %d", ErrParse, top.pos)
			}
			if len(p.out) != 1 {
				return nil, fmt.Errorf("%w: malformed expression", ErrParse)
			}
			return &Expression{root: p.out[0], src: s}, nil
		}
	}

	return nil, fmt.Errorf("%w: missing end token", ErrParse)
}

// binaryPrec maps a binary operator byte to its precedence level.
func binaryPrec(op byte) int {
	switch op {
	case '+', '-':
		return precAdditive
	case '*', '/', '%':
		return precMultiplicative
	default: // '^'
		return precPower
	}
}

// applyTop pops the topmost pending operator and folds output operands into
// a new tree node.
func (p *parser) applyTop() error {
	top := p.ops[len(p.ops)-1]
	p.ops = p.ops[:len(p.ops)-1]
	switch top.kind {
	case stkUnary:
		if len(p.out) < 1 {
			return fmt.Errorf("%w: missing operand for unary %q", ErrParse, top.op)
		}
		kid := p.out[len(p.out)-1]
		p.out[len(p.out)-1] = &node{kind: nodeUnary, op: top.op, kids: []*node{kid}}
	case stkBinary:
		if len(p.out) < 2 {
			return fmt.Errorf("%w: missing operand for %q", ErrParse, top.op)
		}
		rhs := p.out[len(p.out)-1]
		lhs := p.out[len(p.out)-2]
		p.out = p.out[:len(p.out)-2]
		p.out = append(p.out, &node{kind: nodeBinary, op: top.op, kids: []*node{lhs, rhs}})
	default:
		return fmt.Errorf("%w: internal operator stack corruption", ErrParse)
	}

	return nil
}

// applyToScope folds pending operators until a scope marker is on top.
func (p *parser) applyToScope() error {
	for {
		top := p.ops[len(p.ops)-1]
		if top.kind != stkUnary && top.kind != stkBinary {
			return nil
		}
		if err := p.applyTop(); err != nil {
			return err
		}
	}
}
