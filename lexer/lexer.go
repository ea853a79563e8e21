// Package lexer turns a source buffer into the token stream consumed by the
// parser. Whitespace and '#' line comments are discarded; every token keeps
// the exact span it was scanned from.
package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/dhamidi/cae/source"
)

type Lexer struct {
	buf    *source.Buffer
	input  string
	pos    int
	errors []*Error
}

func NewLexer(buf *source.Buffer) *Lexer {
	return &Lexer{
		buf:   buf,
		input: buf.Text(),
	}
}

// Tokenize scans the whole buffer. The token slice is nil whenever at least
// one lexical error was found; all errors are reported either way.
func Tokenize(buf *source.Buffer) ([]Token, []*Error) {
	l := NewLexer(buf)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			break
		}
		tokens = append(tokens, tok)
	}
	if len(l.errors) > 0 {
		return nil, l.errors
	}
	if tokens == nil {
		tokens = []Token{}
	}
	return tokens, nil
}

func (l *Lexer) Errors() []*Error {
	return l.errors
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch ch := l.peek(); {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.pos++
		case ch == '#':
			for !l.atEnd() && l.peek() != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// NextToken returns the next significant token, or a TokenEOF token at the
// end of input. Unrecognized characters are recorded as errors and skipped.
func (l *Lexer) NextToken() Token {
	for {
		l.skipTrivia()
		start := l.pos
		if l.atEnd() {
			return Token{Kind: TokenEOF, Span: l.buf.Span(start, start)}
		}

		ch := l.peek()
		switch {
		case isLetter(ch):
			return l.scanNameOrKeyword(start)
		case isDigit(ch):
			if tok, ok := l.scanNumber(start); ok {
				return tok
			}
			continue
		}

		if tok, ok := l.scanOperator(start); ok {
			return tok
		}
	}
}

func (l *Lexer) scanNameOrKeyword(start int) Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.pos++
	}
	return l.token(LookupKeyword(l.input[start:l.pos]), start)
}

func (l *Lexer) scanNumber(start int) (Token, bool) {
	for isDigit(l.peek()) {
		l.pos++
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.pos++
		for isDigit(l.peek()) {
			l.pos++
		}
		return l.token(TokenFloat, start), true
	}
	if _, err := strconv.ParseInt(l.input[start:l.pos], 10, 64); err != nil {
		l.errors = append(l.errors, &Error{
			Kind:  ErrMalformedLiteral,
			Span:  l.buf.Span(start, l.pos),
			Found: rune(l.input[start]),
		})
		return Token{}, false
	}
	return l.token(TokenInt, start), true
}

func (l *Lexer) scanOperator(start int) (Token, bool) {
	ch := l.peek()

	switch ch {
	case '$':
		return l.single(TokenDollar, start), true
	case '&':
		return l.single(TokenAmpersand, start), true
	case '=':
		return l.single(TokenEqual, start), true
	case ':':
		return l.single(TokenColon, start), true
	case ';':
		return l.single(TokenSemicolon, start), true
	case '.':
		return l.single(TokenPeriod, start), true
	case ',':
		return l.single(TokenComma, start), true
	case '(':
		return l.single(TokenLParen, start), true
	case ')':
		return l.single(TokenRParen, start), true

	case '|':
		if l.peekN(1) == '>' {
			l.pos += 2
			return l.token(TokenPipeInto, start), true
		}
		return l.single(TokenPipe, start), true

	case '-':
		if l.peekN(1) == '>' {
			l.pos += 2
			return l.token(TokenArrow, start), true
		}
		l.unexpected(start, []string{TokenArrow.String()})
		return Token{}, false

	case '<':
		if l.peekN(1) == '|' {
			l.pos += 2
			return l.token(TokenPipeFrom, start), true
		}
		l.unexpected(start, []string{TokenPipeFrom.String()})
		return Token{}, false
	}

	l.unexpected(start, acceptedAnywhere)
	return Token{}, false
}

// unexpected records an error for the character at start and skips it.
func (l *Lexer) unexpected(start int, expected []string) {
	r, size := utf8.DecodeRuneInString(l.input[start:])
	l.pos = start + size
	l.errors = append(l.errors, &Error{
		Kind:     ErrUnexpectedChar,
		Span:     l.buf.Span(start, l.pos),
		Found:    r,
		Expected: expected,
	})
}

func (l *Lexer) single(kind TokenKind, start int) Token {
	l.pos++
	return l.token(kind, start)
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind: kind,
		Span: l.buf.Span(start, l.pos),
	}
}

// acceptedAnywhere lists what may start a token or trivia.
var acceptedAnywhere = func() []string {
	var names []string
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return append(names, "comment", "whitespace")
}()

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
