package boolexpr

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// parser builds the expression tree in a single left-to-right scan. Each
// parenthesised group is parsed by a nested call to parseLevel sharing the
// same input position, arena and registry.
type parser struct {
	input    string
	pos      int
	registry *Registry
	tree     *tree

	// variables in the order this formula first references them
	variables []Variable
	seen      map[string]bool
}

// level is the state of one nesting level of the scan.
type level struct {
	root   nodeID
	cursor nodeID

	// set after an operand, a closing group or a complement; an operand
	// arriving while it is set is joined by an implicit AND
	implicitAnd bool
}

func newParser(input string, registry *Registry) *parser {
	return &parser{
		input:    input,
		registry: registry,
		tree:     &tree{},
		seen:     make(map[string]bool),
	}
}

// parse runs the top level of the scan. A ')' at the top level ends the
// expression, anything after it is ignored.
func (p *parser) parse() (nodeID, error) {
	root, err := p.parseLevel(-1)
	if err != nil {
		return noNode, err
	}
	if id := p.tree.emptyOperation(); id != noNode {
		n := p.tree.nodes[id]
		return noNode, newSyntaxError(n.offset, rune(n.operator.Symbol()[0]), fmt.Errorf("operator without operands: %w", ErrMissingOperand))
	}
	return root, nil
}

// parseLevel consumes input up to the ')' closing the group opened at
// offset open, or up to the end of the input (or a stray ')') when open is
// negative.
func (p *parser) parseLevel(open int) (nodeID, error) {
	l := level{root: noNode, cursor: noNode}
	nested := open >= 0

	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			if nested {
				return noNode, newSyntaxError(open, '(', ErrUnterminatedGroup)
			}
			break
		}
		if p.input[p.pos] == ')' {
			if nested {
				p.pos++
			}
			break
		}
		if err := p.consume(&l); err != nil {
			return noNode, err
		}
	}

	if l.root == noNode {
		if nested {
			return noNode, newSyntaxError(open, '(', fmt.Errorf("empty group: %w", ErrMissingOperand))
		}
		return noNode, newSyntaxError(p.pos, 0, fmt.Errorf("empty expression: %w", ErrMissingOperand))
	}
	return l.root, nil
}

func (p *parser) consume(l *level) error {
	c := p.input[p.pos]

	switch {
	case isLetter(c):
		p.implicitAnd(l)
		p.consumeVariable(l)
		l.implicitAnd = true
	case isDigit(c):
		p.implicitAnd(l)
		if err := p.consumeConstant(l); err != nil {
			return err
		}
		l.implicitAnd = true
	case c == '\'':
		if !l.implicitAnd {
			return newSyntaxError(p.pos, '\'', fmt.Errorf("nothing to complement: %w", ErrMissingOperand))
		}
		p.complement(l)
		p.pos++
		l.implicitAnd = true
	case c == '+':
		p.consumeOperator(l, OR)
		p.pos++
		l.implicitAnd = false
	case c == '.':
		p.consumeOperator(l, AND)
		p.pos++
		l.implicitAnd = false
	case c == '^':
		p.consumeOperator(l, XOR)
		p.pos++
		l.implicitAnd = false
	case c == '(':
		p.implicitAnd(l)
		open := p.pos
		p.pos++
		group, err := p.parseLevel(open)
		if err != nil {
			return err
		}
		p.tree.parenthesise(group)
		p.consumeOperand(l, group)
		l.implicitAnd = true
	default:
		r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
		return newSyntaxError(p.pos, r, ErrUnexpectedCharacter)
	}
	return nil
}

func (p *parser) implicitAnd(l *level) {
	if l.implicitAnd {
		p.consumeOperator(l, AND)
	}
}

func (p *parser) consumeVariable(l *level) {
	start := p.pos
	p.pos++
	// digits directly after the letter are a subscript
	for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
		p.pos++
	}
	name := p.input[start:p.pos]

	v := p.registry.Intern(name)
	if !p.seen[name] {
		p.seen[name] = true
		p.variables = append(p.variables, v)
	}
	p.consumeOperand(l, p.tree.newVariable(v))
}

func (p *parser) consumeConstant(l *level) error {
	start := p.pos
	for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
		p.pos++
	}

	v, err := strconv.ParseUint(p.input[start:p.pos], 10, 64)
	if err != nil {
		return newSyntaxError(start, rune(p.input[start]), fmt.Errorf("%w: %w", ErrMalformedConstant, err))
	}
	p.consumeOperand(l, p.tree.newConstant(p.registry.normalize(v)))
	return nil
}

// consumeOperand attaches a completed operand under the cursor and makes it
// the new cursor.
func (p *parser) consumeOperand(l *level, id nodeID) {
	if l.cursor == noNode {
		l.root, l.cursor = id, id
		return
	}
	if p.tree.precedence(l.cursor) == 0 {
		panic(fmt.Sprintf("operand at offset %d follows another operand without an operator", p.pos))
	}
	p.tree.attach(l.cursor, id)
	l.cursor = id
}

// consumeOperator places a binary operator relative to the cursor:
// the same precedence reuses the cursor's node, tighter binding nests below
// it, looser binding climbs to the first ancestor binding even looser and
// splices a new node in below that ancestor.
func (p *parser) consumeOperator(l *level, op Operator) {
	prec := int(op)
	if l.cursor == noNode {
		id := p.tree.newOperation(op, p.pos)
		l.root, l.cursor = id, id
		return
	}

	current := p.tree.precedence(l.cursor)
	switch {
	case prec == current:
	case prec < current:
		id := p.tree.newOperation(op, p.pos)
		p.tree.attach(l.cursor, id)
		l.cursor = id
	default:
		n := l.cursor
		for parent := p.tree.parent(n); parent != noNode && p.tree.precedence(parent) <= prec; parent = p.tree.parent(n) {
			n = parent
		}
		l.cursor = n
		if p.tree.precedence(n) == prec {
			return
		}
		p.splice(l, n, p.tree.newOperation(op, p.pos))
	}
}

// complement wraps the term just completed, which is always the cursor, in a
// NOT node.
func (p *parser) complement(l *level) {
	// complements never merge, two in a row nest
	p.splice(l, l.cursor, p.tree.newOperation(NOT, p.pos))
}

// splice inserts op between target and target's parent, or above target
// when it is the root, and moves the cursor to op.
func (p *parser) splice(l *level, target, op nodeID) {
	if parent := p.tree.parent(target); parent != noNode {
		p.tree.replaceChild(parent, target, op)
	} else {
		l.root = op
	}
	p.tree.attach(op, target)
	l.cursor = op
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
