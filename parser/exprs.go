package parser

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/cae/ast"
	"github.com/dhamidi/cae/lexer"
)

// nonCallStarts are the tokens that can begin a NonCallExpr.
var nonCallStarts = []lexer.TokenKind{
	lexer.TokenPipeFrom,
	lexer.TokenLParen,
	lexer.TokenName,
	lexer.TokenFloat,
	lexer.TokenInt,
}

func (p *Parser) startsNonCall() bool {
	switch p.peek().Kind {
	case lexer.TokenPipeFrom, lexer.TokenLParen, lexer.TokenName, lexer.TokenFloat, lexer.TokenInt:
		return true
	}
	return false
}

// Expr := IfThenElse | LetIn | AppOrPipeExpr
func (p *Parser) parseExpr() (ast.Expr, bool) {
	if !p.nest() {
		return nil, false
	}
	defer p.unnest()
	p.push("expression")
	defer p.pop()

	switch p.peek().Kind {
	case lexer.TokenIf:
		return p.parseIfThenElse()
	case lexer.TokenLet:
		return p.parseLetIn()
	}
	if !p.startsNonCall() {
		p.fail(append([]lexer.TokenKind{lexer.TokenIf, lexer.TokenLet}, nonCallStarts...)...)
		return nil, false
	}
	return p.parsePipe()
}

// parsePipe parses the loose level of AppOrPipeExpr: application chains
// joined by the left-associative '|>'. The left operand becomes the
// argument and the right operand the function, so a |> f is f a.
func (p *Parser) parsePipe() (ast.Expr, bool) {
	start := p.pos
	left, ok := p.parseApplication()
	if !ok {
		return nil, false
	}
	for p.check(lexer.TokenPipeInto) {
		p.advance()
		fn, ok := p.parseApplication()
		if !ok {
			return nil, false
		}
		left = &ast.Call{Func: fn, Arg: left, Loc: p.spanFrom(start)}
	}
	p.fail(lexer.TokenPipeInto)
	return left, true
}

// parseApplication parses the tight level: one or more adjacent
// NonCallExprs, applied left to right, so f a b is (f a) b.
func (p *Parser) parseApplication() (ast.Expr, bool) {
	start := p.pos
	fn, ok := p.parseNonCall()
	if !ok {
		return nil, false
	}
	for p.startsNonCall() {
		arg, ok := p.parseNonCall()
		if !ok {
			return nil, false
		}
		fn = &ast.Call{Func: fn, Arg: arg, Loc: p.spanFrom(start)}
	}
	p.fail(nonCallStarts...)
	return fn, true
}

// NonCallExpr := FuncDef | SymbolRef | NumberLiteral | '<|' Expr | '(' Expr ')'
func (p *Parser) parseNonCall() (ast.Expr, bool) {
	switch p.peek().Kind {
	case lexer.TokenName:
		if p.peekN(1).Kind == lexer.TokenColon {
			return p.parseFuncDef()
		}
		tok := p.advance()
		return &ast.SymbolRef{Name: ast.Name{Loc: tok.Span}}, true

	case lexer.TokenFloat:
		tok := p.advance()
		// Digits-only literals only fail on overflow, which yields ±Inf.
		v, _ := strconv.ParseFloat(tok.Text(), 64)
		return &ast.Float{Value: v, Loc: tok.Span}, true

	case lexer.TokenInt:
		tok := p.advance()
		v, err := strconv.ParseInt(tok.Text(), 10, 64)
		if err != nil {
			panic(fmt.Sprintf("parser: int token %q was not produced by the lexer: %v", tok.Text(), err))
		}
		return &ast.Int{Value: v, Loc: tok.Span}, true

	case lexer.TokenPipeFrom:
		p.advance()
		return p.parseExpr()

	case lexer.TokenLParen:
		p.advance()
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(lexer.TokenRParen); !ok {
			return nil, false
		}
		return expr, true
	}
	p.fail(nonCallStarts...)
	return nil, false
}

// FuncDef := Name TypeRef '->' TypeRef? Expr
//
// The body extends as far to the right as an expression can.
func (p *Parser) parseFuncDef() (ast.Expr, bool) {
	p.push("function definition")
	defer p.pop()

	start := p.pos
	argName, _ := p.parseName()
	argType, ok := p.parseTypeRef()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.TokenArrow); !ok {
		return nil, false
	}
	var retType ast.TypeRef
	if p.check(lexer.TokenColon) {
		if retType, ok = p.parseTypeRef(); !ok {
			return nil, false
		}
	} else {
		p.fail(lexer.TokenColon)
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.Func{
		ArgName: argName,
		ArgType: argType,
		RetType: retType,
		Body:    body,
		Loc:     p.spanFrom(start),
	}, true
}

// IfThenElse := 'if' Expr 'then' Expr 'else' Expr
func (p *Parser) parseIfThenElse() (ast.Expr, bool) {
	p.push("branching expression")
	defer p.pop()

	start := p.pos
	p.advance() // 'if'
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.TokenThen); !ok {
		return nil, false
	}
	then, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.TokenElse); !ok {
		return nil, false
	}
	els, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.IfThenElse{Cond: cond, Then: then, Else: els, Loc: p.spanFrom(start)}, true
}

// LetIn := 'let' ValueDef* 'in' Expr
//
// A failing binding is reported and skipped to its ';' so the remaining
// bindings and the body are still parsed.
func (p *Parser) parseLetIn() (ast.Expr, bool) {
	p.push("let expression")
	defer p.pop()

	start := p.pos
	p.advance() // 'let'

	var defs []*ast.ValueDef
	for p.check(lexer.TokenName) {
		def, ok := p.parseValueDef()
		if ok {
			defs = append(defs, def)
			continue
		}
		if p.halted {
			return nil, false
		}
		p.report()
		p.skipUntil(lexer.TokenSemicolon, lexer.TokenIn)
		if p.check(lexer.TokenSemicolon) {
			p.advance()
		}
	}
	p.fail(lexer.TokenName)
	if _, ok := p.expect(lexer.TokenIn); !ok {
		return nil, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.LetIn{Defs: defs, Body: body, Loc: p.spanFrom(start)}, true
}
