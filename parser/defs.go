package parser

import (
	"github.com/dhamidi/cae/ast"
	"github.com/dhamidi/cae/lexer"
)

// parseDef dispatches on the token after the leading name. A second name
// can only start the parameter of a function bound without '=':
//
//	GenericDef := Name '$' GenericArg (',' GenericArg)* ';'
//	ValueDef   := Name '=' Expr ';' | Name FuncDef ';'
//	TypeDef    := Name '|' Field (',' Field)* ';'
func (p *Parser) parseDef() (ast.Def, bool) {
	if !p.check(lexer.TokenName) {
		p.fail(lexer.TokenName)
		return nil, false
	}
	switch p.peekN(1).Kind {
	case lexer.TokenDollar:
		if def, ok := p.parseGenericDef(); ok {
			return def, true
		}
	case lexer.TokenEqual:
		if def, ok := p.parseValueDef(); ok {
			return def, true
		}
	case lexer.TokenName:
		if def, ok := p.parseValueDef(); ok {
			return def, true
		}
	case lexer.TokenPipe:
		if def, ok := p.parseTypeDef(); ok {
			return def, true
		}
	default:
		p.advance()
		p.fail(lexer.TokenDollar, lexer.TokenEqual, lexer.TokenPipe, lexer.TokenName)
	}
	return nil, false
}

func (p *Parser) parseGenericDef() (*ast.GenericDef, bool) {
	p.push("generic definition")
	defer p.pop()

	start := p.pos
	name, _ := p.parseName()
	p.advance() // '$'

	var args []ast.GenericArg
	ok := p.parseList(lexer.TokenComma, []lexer.TokenKind{lexer.TokenSemicolon}, func() bool {
		arg, ok := p.parseGenericArg()
		if ok {
			args = append(args, arg)
		}
		return ok
	})
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.TokenSemicolon); !ok {
		return nil, false
	}
	return &ast.GenericDef{Name: name, Args: args, Loc: p.spanFrom(start)}, true
}

// GenericArg := Name (TypeRef ('&' TypeRef)*)?
func (p *Parser) parseGenericArg() (ast.GenericArg, bool) {
	p.push("generic type argument")
	defer p.pop()

	name, ok := p.parseName()
	if !ok {
		return ast.GenericArg{}, false
	}
	arg := ast.GenericArg{Name: name}
	if !p.check(lexer.TokenColon) {
		p.fail(lexer.TokenColon)
		return arg, true
	}
	ok = p.parseList(lexer.TokenAmpersand, []lexer.TokenKind{lexer.TokenComma, lexer.TokenSemicolon}, func() bool {
		t, ok := p.parseTypeRef()
		if ok {
			arg.Bounds = append(arg.Bounds, t)
		}
		return ok
	})
	return arg, ok
}

// parseValueDef parses Name '=' Expr ';'. It is used both at the top level
// and for the bindings of a let expression. A function may be bound without
// the '=': "id a :A -> a;" is "id = a :A -> a;", so a name after the bound
// name always starts a FuncDef.
func (p *Parser) parseValueDef() (*ast.ValueDef, bool) {
	p.push("value definition")
	defer p.pop()

	start := p.pos
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	var body ast.Expr
	if p.check(lexer.TokenName) {
		body, ok = p.parseFuncDef()
	} else {
		p.fail(lexer.TokenName)
		if _, ok := p.expect(lexer.TokenEqual); !ok {
			return nil, false
		}
		body, ok = p.parseExpr()
	}
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.TokenSemicolon); !ok {
		return nil, false
	}
	return &ast.ValueDef{Name: name, Body: body, Loc: p.spanFrom(start)}, true
}

func (p *Parser) parseTypeDef() (*ast.TypeDef, bool) {
	p.push("type definition")
	defer p.pop()

	start := p.pos
	name, _ := p.parseName()
	p.advance() // '|'

	var fields []ast.Field
	ok := p.parseList(lexer.TokenComma, []lexer.TokenKind{lexer.TokenSemicolon}, func() bool {
		field, ok := p.parseField()
		if ok {
			fields = append(fields, field)
		}
		return ok
	})
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.TokenSemicolon); !ok {
		return nil, false
	}
	return &ast.TypeDef{Name: name, Fields: fields, Loc: p.spanFrom(start)}, true
}

// Field := Name TypeRef
func (p *Parser) parseField() (ast.Field, bool) {
	p.push("field definition")
	defer p.pop()

	name, ok := p.parseName()
	if !ok {
		return ast.Field{}, false
	}
	t, ok := p.parseTypeRef()
	if !ok {
		return ast.Field{}, false
	}
	return ast.Field{Name: name, Type: t}, true
}

// parseList parses elem (sep elem)*. A failing element is reported and
// skipped up to the next separator or stop token, and the remaining
// elements are still parsed. It reports false only if parsing was halted.
func (p *Parser) parseList(sep lexer.TokenKind, stops []lexer.TokenKind, elem func() bool) bool {
	for {
		if !elem() {
			if p.halted {
				return false
			}
			p.report()
			p.skipUntil(append([]lexer.TokenKind{sep}, stops...)...)
		}
		if !p.check(sep) {
			p.fail(sep)
			return true
		}
		p.advance()
	}
}

func (p *Parser) parseName() (ast.Name, bool) {
	tok, ok := p.expect(lexer.TokenName)
	if !ok {
		return ast.Name{}, false
	}
	return ast.Name{Loc: tok.Span}, true
}
