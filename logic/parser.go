package logic

import (
	"io"
	"text/scanner"

	"github.com/pkg/errors"
)

// isIdentRune is true iff ch may appear in an atom name.
func isIdentRune(ch rune) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

type parser struct {
	s     scanner.Scanner
	eof   bool   // Have we reached eof yet?
	token string // Last token read
}

// Parse parses a formula from the given input Reader and returns the
// corresponding Formula.
// Formulas are written using the following operators, from lowest to
// highest priority:
//
//   - for an equivalence, the "<->" operator (non-associative),
//   - for an implication, the "->" operator (right-associative),
//   - for a disjunction ("or"), the "|" operator,
//   - for a conjunction ("and"), the "&" operator,
//   - for a negation, the "~" unary operator.
//
// Atoms are identifiers made of ASCII letters and underscores.
// Parentheses can be used to group subformulas.
func Parse(r io.Reader) (Formula, error) {
	var s scanner.Scanner
	s.Init(r)
	s.Mode = scanner.ScanIdents
	s.IsIdentRune = func(ch rune, i int) bool {
		return isIdentRune(ch)
	}
	s.Error = func(s *scanner.Scanner, msg string) {} // Errors surface as invalid tokens
	p := parser{s: s}
	p.scan()
	f, err := p.parseEquiv()
	if err != nil {
		return nil, err
	}
	if !p.eof {
		return nil, errors.Errorf("unexpected token %q at %s", p.token, p.s.Pos())
	}
	return f, nil
}

func isOperator(token string) bool {
	return token == "&" || token == "|" || token == "-" || token == "<"
}

func (p *parser) scan() {
	if p.eof {
		return
	}
	p.eof = p.s.Scan() == scanner.EOF
	p.token = p.s.TokenText()
}

// expect consumes the next token and fails unless it is tok.
func (p *parser) expect(tok string) error {
	p.scan()
	if p.eof {
		return errors.Errorf("expected %q, found EOF at %s", tok, p.s.Pos())
	}
	if p.token != tok {
		return errors.Errorf("expected %q, found %q at %s", tok, p.token, p.s.Pos())
	}
	return nil
}

func (p *parser) parseEquiv() (f Formula, err error) {
	f, err = p.parseImplies()
	if err != nil {
		return nil, err
	}
	if p.eof || p.token != "<" {
		return f, nil
	}
	if err = p.expect("-"); err != nil {
		return nil, err
	}
	if err = p.expect(">"); err != nil {
		return nil, err
	}
	p.scan()
	f2, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	if !p.eof && p.token == "<" {
		// "<->" does not chain: "a <-> b <-> c" is a syntax error.
		return nil, errors.Errorf("unexpected %q at %s: \"<->\" is not associative", "<->", p.s.Pos())
	}
	return Equiv(f, f2), nil
}

func (p *parser) parseImplies() (f Formula, err error) {
	f, err = p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.eof || p.token != "-" {
		return f, nil
	}
	if err = p.expect(">"); err != nil {
		return nil, err
	}
	p.scan()
	f2, err := p.parseImplies() // Right-associative
	if err != nil {
		return nil, err
	}
	return Implies(f, f2), nil
}

func (p *parser) parseOr() (f Formula, err error) {
	f, err = p.parseAnd()
	if err != nil {
		return nil, err
	}
	for !p.eof && p.token == "|" {
		p.scan()
		f2, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		f = Or(f, f2)
	}
	return f, nil
}

func (p *parser) parseAnd() (f Formula, err error) {
	f, err = p.parseNot()
	if err != nil {
		return nil, err
	}
	for !p.eof && p.token == "&" {
		p.scan()
		f2, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		f = And(f, f2)
	}
	return f, nil
}

func (p *parser) parseNot() (f Formula, err error) {
	if p.eof {
		return nil, errors.Errorf("expected expression, found EOF at %s", p.s.Pos())
	}
	if p.token == "~" {
		p.scan()
		f, err = p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not(f), nil
	}
	return p.parseBasic()
}

func (p *parser) parseBasic() (f Formula, err error) {
	if p.eof {
		return nil, errors.Errorf("expected expression, found EOF at %s", p.s.Pos())
	}
	if p.token == "(" {
		p.scan()
		f, err = p.parseEquiv()
		if err != nil {
			return nil, err
		}
		if p.eof {
			return nil, errors.Errorf("expected closing parenthesis, found EOF at %s", p.s.Pos())
		}
		if p.token != ")" {
			return nil, errors.Errorf("expected closing parenthesis, found %q at %s", p.token, p.s.Pos())
		}
		p.scan()
		return f, nil
	}
	if isOperator(p.token) || p.token == ")" || p.token == "~" {
		return nil, errors.Errorf("unexpected token %q at %s", p.token, p.s.Pos())
	}
	for _, ch := range p.token {
		if !isIdentRune(ch) {
			return nil, errors.Errorf("invalid token %q at %s", p.token, p.s.Pos())
		}
	}
	name := p.token
	p.scan()
	return Atom(name), nil
}
