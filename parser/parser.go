// Package parser builds the syntax tree from the lexer's token stream.
//
// The parser is a hand-written recursive-descent parser: one method per
// grammar production, calling each other directly where the grammar is
// mutually recursive. It never gives up on the first problem. A failing
// top-level definition, let binding, or list element is reported and
// skipped, and parsing resumes at the next independent construct, so a
// single run reports every syntax error in the file.
//
// Errors follow a furthest-progress policy: every unmet expectation is
// recorded against the token index where it occurred, and the error
// reported for a failed construct is the one at the greatest index, with
// the expected sets of all expectations at that index merged.
//
// A Parser is not safe for concurrent use.
package parser

import (
	"fmt"

	"github.com/dhamidi/cae/ast"
	"github.com/dhamidi/cae/lexer"
	"github.com/dhamidi/cae/source"
)

// DefaultMaxDepth bounds the nesting of expressions and type references.
const DefaultMaxDepth = 256

type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth. Deeper input fails with a
// KindNestingTooDeep error instead of growing the stack without bound.
// A value below one keeps DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithBuffer names the buffer the tokens come from. End-of-input positions
// are taken from it, which matters when tokens is empty.
func WithBuffer(buf *source.Buffer) Option {
	return func(p *Parser) {
		p.buf = buf
	}
}

// WithMaxTokens rejects token streams longer than n. Zero means no limit.
func WithMaxTokens(n int) Option {
	return func(p *Parser) {
		p.maxTokens = n
	}
}

type label struct {
	name  string
	start int
}

// failure is the furthest unmet expectation of the construct being parsed.
type failure struct {
	pos      int
	expected kindSet
	context  []Label
}

type Parser struct {
	tokens    []lexer.Token
	buf       *source.Buffer
	eof       lexer.Token
	pos       int
	maxDepth  int
	maxTokens int
	depth     int
	labels    []label
	failure   *failure
	errors    []*Error
	halted    bool
	// drained is set once recovery has skipped to the end of input. The
	// enclosing constructs then fail there without a second error.
	drained bool
}

func New(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
		eof:      lexer.Token{Kind: lexer.TokenEOF},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.buf == nil && len(tokens) > 0 {
		p.buf = tokens[0].Span.Buffer()
	}
	if p.buf != nil {
		p.eof.Span = p.buf.Span(p.buf.Len(), p.buf.Len())
	}
	return p
}

// Parse parses a whole program. The definitions are returned even when
// errors were reported, in which case they may be incomplete; they are nil
// only if parsing was aborted by a resource limit.
func Parse(tokens []lexer.Token, opts ...Option) ([]ast.Def, []*Error) {
	p := New(tokens, opts...)
	defs := p.ParseProgram()
	return defs, p.Errors()
}

// ParseRoot is Parse wrapped into a Root node.
func ParseRoot(buf *source.Buffer, tokens []lexer.Token, opts ...Option) (*ast.Root, []*Error) {
	defs, errs := Parse(tokens, append([]Option{WithBuffer(buf)}, opts...)...)
	if defs == nil {
		return nil, errs
	}
	return ast.NewRoot(buf, defs), errs
}

// ParseExpression parses tokens of buf as a single expression followed by
// the end of input.
func ParseExpression(buf *source.Buffer, tokens []lexer.Token, opts ...Option) (ast.Expr, []*Error) {
	p := New(tokens, append([]Option{WithBuffer(buf)}, opts...)...)
	if !p.checkLimits() {
		return nil, p.errors
	}
	expr, ok := p.parseExpr()
	if ok && !p.check(lexer.TokenEOF) {
		p.fail(lexer.TokenEOF)
		ok = false
	}
	if !ok {
		if !p.halted {
			p.report()
		}
		return nil, p.errors
	}
	return expr, nil
}

func (p *Parser) Errors() []*Error {
	return p.errors
}

// ParseProgram parses Def* up to the end of input.
func (p *Parser) ParseProgram() []ast.Def {
	if !p.checkLimits() {
		return nil
	}
	defs := []ast.Def{}
	for !p.check(lexer.TokenEOF) {
		p.failure = nil
		def, ok := p.parseDef()
		if ok {
			defs = append(defs, def)
			continue
		}
		if p.halted {
			return nil
		}
		p.report()
		p.skipUntil(lexer.TokenSemicolon)
		if p.check(lexer.TokenSemicolon) {
			p.advance()
		}
	}
	return defs
}

func (p *Parser) checkLimits() bool {
	if p.maxTokens > 0 && len(p.tokens) > p.maxTokens {
		tok := p.tokens[p.maxTokens]
		p.errors = append(p.errors, &Error{
			Kind:  KindTooManyTokens,
			Span:  tok.Span,
			Found: &tok,
		})
		p.halted = true
		return false
	}
	return true
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.eof
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.eof
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() lexer.Token {
	if p.pos >= len(p.tokens) {
		panic("parser: advance past end of input")
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

// expect consumes a token of the given kind, or records the expectation
// and reports false.
func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.fail(kind)
	return lexer.Token{}, false
}

// fail records that one of kinds was expected at the current position. It
// is also used for optional continuations that were not taken, so that a
// later failure at the same position lists them too.
func (p *Parser) fail(kinds ...lexer.TokenKind) {
	if p.halted {
		return
	}
	f := p.failure
	switch {
	case f == nil || p.pos > f.pos:
		p.failure = &failure{pos: p.pos, context: p.context()}
	case p.pos == f.pos:
		f.context = p.context()
	default:
		return
	}
	for _, k := range kinds {
		p.failure.expected = p.failure.expected.add(k)
	}
}

// report turns the current furthest failure into an error.
func (p *Parser) report() {
	f := p.failure
	if f == nil {
		panic("parser: construct failed without recording an expectation")
	}
	if p.drained && f.pos >= len(p.tokens) {
		p.failure = nil
		return
	}
	tok := p.eof
	if f.pos < len(p.tokens) {
		tok = p.tokens[f.pos]
	}
	err := &Error{
		Kind:     KindUnexpected,
		Span:     tok.Span,
		Expected: f.expected.kinds(),
		Context:  f.context,
	}
	if tok.Kind != lexer.TokenEOF {
		err.Found = &tok
	}
	p.errors = append(p.errors, err)
	p.failure = nil
}

// skipUntil advances to the next token of one of kinds, or the end of input.
func (p *Parser) skipUntil(kinds ...lexer.TokenKind) {
	for !p.check(lexer.TokenEOF) {
		for _, k := range kinds {
			if p.check(k) {
				return
			}
		}
		p.advance()
	}
	p.drained = true
}

func (p *Parser) push(name string) {
	p.labels = append(p.labels, label{name: name, start: p.pos})
}

func (p *Parser) pop() {
	if len(p.labels) == 0 {
		panic("parser: label stack underflow")
	}
	p.labels = p.labels[:len(p.labels)-1]
}

// context snapshots the label stack, outermost first.
func (p *Parser) context() []Label {
	if len(p.labels) == 0 {
		return nil
	}
	out := make([]Label, len(p.labels))
	for i, l := range p.labels {
		out[i] = Label{Name: l.name, Span: p.spanBetween(l.start, p.pos)}
	}
	return out
}

// nest enters one level of recursion, halting the parse when the maximum
// depth would be exceeded.
func (p *Parser) nest() bool {
	if p.depth >= p.maxDepth {
		if !p.halted {
			tok := p.peek()
			err := &Error{
				Kind:    KindNestingTooDeep,
				Span:    tok.Span,
				Context: p.context(),
			}
			if tok.Kind != lexer.TokenEOF {
				err.Found = &tok
			}
			p.errors = append(p.errors, err)
			p.halted = true
		}
		return false
	}
	p.depth++
	return true
}

func (p *Parser) unnest() {
	p.depth--
}

// spanFrom covers the tokens consumed since index start.
func (p *Parser) spanFrom(start int) source.Span {
	if start >= p.pos {
		panic(fmt.Sprintf("parser: empty span from token %d at %d", start, p.pos))
	}
	return p.tokens[start].Span.Union(p.tokens[p.pos-1].Span)
}

// spanBetween is like spanFrom but yields an empty span at the start token
// when nothing was consumed.
func (p *Parser) spanBetween(start, end int) source.Span {
	if end > start {
		return p.tokens[start].Span.Union(p.tokens[end-1].Span)
	}
	tok := p.eof
	if start < len(p.tokens) {
		tok = p.tokens[start]
	}
	if buf := tok.Span.Buffer(); buf != nil {
		return buf.Span(tok.Span.Start, tok.Span.Start)
	}
	return tok.Span
}
