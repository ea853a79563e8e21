package parser

import (
	"github.com/dhamidi/cae/ast"
	"github.com/dhamidi/cae/lexer"
)

// TypeRef := ':' ( Name | '(' InnerTypeRef ')' )
func (p *Parser) parseTypeRef() (ast.TypeRef, bool) {
	p.push("type reference")
	defer p.pop()

	if _, ok := p.expect(lexer.TokenColon); !ok {
		return nil, false
	}
	switch p.peek().Kind {
	case lexer.TokenName:
		name, _ := p.parseName()
		return &ast.NamedType{Name: name, Loc: name.Loc}, true
	case lexer.TokenLParen:
		p.advance()
		t, ok := p.parseInnerTypeRef()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(lexer.TokenRParen); !ok {
			return nil, false
		}
		return t, true
	}
	p.fail(lexer.TokenName, lexer.TokenLParen)
	return nil, false
}

// InnerTypeRef := NonFnTypeRef ('->' InnerTypeRef)?
//
// The arrow is right-associative: a -> b -> c is a -> (b -> c). The chain
// is collected iteratively and folded from the right.
func (p *Parser) parseInnerTypeRef() (ast.TypeRef, bool) {
	var parts []ast.TypeRef
	var starts []int
	for {
		start := p.pos
		t, ok := p.parseNonFnTypeRef()
		if !ok {
			return nil, false
		}
		parts = append(parts, t)
		starts = append(starts, start)
		if !p.check(lexer.TokenArrow) {
			p.fail(lexer.TokenArrow)
			break
		}
		p.advance()
	}

	result := parts[len(parts)-1]
	for i := len(parts) - 2; i >= 0; i-- {
		result = &ast.FunctionType{
			Arg: parts[i],
			Ret: result,
			Loc: p.spanFrom(starts[i]),
		}
	}
	return result, true
}

// NonFnTypeRef := Name NonFnTypeRef* | '(' InnerTypeRef ')'
func (p *Parser) parseNonFnTypeRef() (ast.TypeRef, bool) {
	if !p.nest() {
		return nil, false
	}
	defer p.unnest()

	switch p.peek().Kind {
	case lexer.TokenName:
		start := p.pos
		name, _ := p.parseName()
		var args []ast.TypeRef
		for p.check(lexer.TokenName) || p.check(lexer.TokenLParen) {
			arg, ok := p.parseNonFnTypeRef()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
		}
		p.fail(lexer.TokenName, lexer.TokenLParen)
		return &ast.NamedType{Name: name, Args: args, Loc: p.spanFrom(start)}, true

	case lexer.TokenLParen:
		p.advance()
		t, ok := p.parseInnerTypeRef()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(lexer.TokenRParen); !ok {
			return nil, false
		}
		return t, true
	}
	p.fail(lexer.TokenName, lexer.TokenLParen)
	return nil, false
}
