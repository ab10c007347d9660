package exprparse

import "fmt"

// Parse builds the AST for a single formula, per the grammar named in the
// core specification's external-interfaces section: identifiers, `@N`
// node-id references, `TRUE`/`FALSE`, parentheses, `ite(f, g, h)`, the
// unary/binary operator vocabulary, and prefix quantifiers over a
// comma-separated variable list terminated by `.`.
//
// Precedence, loosest to tightest, mirrors the original parser's table
// (dd/_parser.py: DOT < BIMP < IMP < MINUS < XOR < OR < AND < NOT):
// equivalence, implication, set difference, xor, or, and, unary not.
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("exprparse: unexpected trailing input at offset %d", p.peek().pos)
	}
	return n, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) advance() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.peek().kind != kind {
		return token{}, fmt.Errorf("exprparse: expected %s at offset %d, found %q", what, p.peek().pos, p.peek().text)
	}
	return p.advance(), nil
}

func (p *parser) parseExpr() (Node, error) { return p.parseBimp() }

func (p *parser) parseBimp() (Node, error) {
	left, err := p.parseImp()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokBimp {
		p.advance()
		right, err := p.parseImp()
		if err != nil {
			return nil, err
		}
		left = Bin{Op: "biimp", X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseImp() (Node, error) {
	left, err := p.parseDiff()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokImp {
		p.advance()
		right, err := p.parseDiff()
		if err != nil {
			return nil, err
		}
		left = Bin{Op: "imp", X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseDiff() (Node, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokDiff {
		p.advance()
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = Bin{Op: "diff", X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseXor() (Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokXor {
		p.advance()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = Bin{Op: "xor", X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Bin{Op: "or", X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = Bin{Op: "and", X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.peek().kind == tokNot {
		p.advance()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.peek()
	switch t.kind {
	case tokTrue:
		p.advance()
		return Const(true), nil
	case tokFalse:
		p.advance()
		return Const(false), nil
	case tokIdent:
		p.advance()
		return Ident(t.text), nil
	case tokNodeRef:
		p.advance()
		var v int32
		_, err := fmt.Sscanf(t.text, "%d", &v)
		if err != nil {
			return nil, fmt.Errorf("exprparse: malformed node reference %q", t.text)
		}
		return NodeRef(v), nil
	case tokLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokIte:
		p.advance()
		if _, err := p.expect(tokLParen, "'(' after ite"); err != nil {
			return nil, err
		}
		f, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokComma, "','"); err != nil {
			return nil, err
		}
		g, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokComma, "','"); err != nil {
			return nil, err
		}
		h, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return Ite{If: f, Then: g, Else: h}, nil
	case tokForall, tokExists:
		forall := t.kind == tokForall
		p.advance()
		vars, err := p.parseVarList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokDot, "'.'"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return Quant{Forall: forall, Vars: vars, Body: body}, nil
	}
	return nil, fmt.Errorf("exprparse: unexpected token %q at offset %d", t.text, t.pos)
}

func (p *parser) parseVarList() ([]string, error) {
	first, err := p.expect(tokIdent, "a variable name")
	if err != nil {
		return nil, err
	}
	vars := []string{first.text}
	for p.peek().kind == tokComma {
		p.advance()
		t, err := p.expect(tokIdent, "a variable name")
		if err != nil {
			return nil, err
		}
		vars = append(vars, t.text)
	}
	return vars, nil
}
