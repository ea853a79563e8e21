package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/cae/lexer"
	"github.com/dhamidi/cae/source"
)

type ErrorKind int

const (
	// KindUnexpected is an unexpected token or a premature end of input.
	KindUnexpected ErrorKind = iota
	// KindNestingTooDeep means the input nests deeper than the configured maximum.
	KindNestingTooDeep
	// KindTooManyTokens means the token stream exceeds the configured budget.
	KindTooManyTokens
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnexpected:
		return "unexpected input"
	case KindNestingTooDeep:
		return "nesting too deep"
	case KindTooManyTokens:
		return "too many tokens"
	}
	return "unknown"
}

// Label names a grammar production that was being parsed when an error
// occurred, with the span it covered up to that point.
type Label struct {
	Name string
	Span source.Span
}

// Error is a syntax error.
type Error struct {
	Kind ErrorKind
	Span source.Span
	// Found is nil when the error is at the end of input.
	Found    *lexer.Token
	Expected []lexer.TokenKind
	// Context lists the enclosing productions, outermost first.
	Context []Label
}

func (e *Error) ExpectedNames() []string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	return names
}

func (e *Error) FoundDescription() string {
	if e.Found == nil {
		return "end of input"
	}
	switch e.Found.Kind {
	case lexer.TokenName, lexer.TokenFloat, lexer.TokenInt:
		return fmt.Sprintf("%s '%s'", e.Found.Kind, e.Found.Text())
	}
	return "'" + e.Found.Kind.String() + "'"
}

func (e *Error) Message() string {
	switch e.Kind {
	case KindNestingTooDeep:
		return "expression nests too deeply at " + e.FoundDescription()
	case KindTooManyTokens:
		return "input exceeds the token limit at " + e.FoundDescription()
	}
	msg := "found " + e.FoundDescription()
	if len(e.Expected) > 0 {
		msg += ", expected " + joinExpected(e.ExpectedNames())
	}
	return msg
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message())
}

func joinExpected(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return "one of " + strings.Join(quoted, ", ")
}

// kindSet is a set of token kinds iterated in declaration order.
type kindSet uint64

func (s kindSet) add(k lexer.TokenKind) kindSet {
	return s | 1<<uint(k)
}

func (s kindSet) has(k lexer.TokenKind) bool {
	return s&(1<<uint(k)) != 0
}

func (s kindSet) kinds() []lexer.TokenKind {
	var out []lexer.TokenKind
	for k := lexer.TokenEOF; k <= lexer.TokenInt; k++ {
		if s.has(k) {
			out = append(out, k)
		}
	}
	return out
}
