package lexer

import "github.com/dhamidi/cae/source"

type TokenKind int

const (
	TokenEOF TokenKind = iota

	// Keywords
	TokenLet
	TokenIn
	TokenIf
	TokenThen
	TokenElse

	// Operators and punctuation
	TokenArrow
	TokenPipeInto
	TokenPipeFrom
	TokenDollar
	TokenAmpersand
	TokenPipe
	TokenEqual
	TokenColon
	TokenSemicolon
	TokenPeriod
	TokenComma
	TokenLParen
	TokenRParen

	// Identifiers and literals
	TokenName
	TokenFloat
	TokenInt
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:       "end of input",
	TokenLet:       "let",
	TokenIn:        "in",
	TokenIf:        "if",
	TokenThen:      "then",
	TokenElse:      "else",
	TokenArrow:     "->",
	TokenPipeInto:  "|>",
	TokenPipeFrom:  "<|",
	TokenDollar:    "$",
	TokenAmpersand: "&",
	TokenPipe:      "|",
	TokenEqual:     "=",
	TokenColon:     ":",
	TokenSemicolon: ";",
	TokenPeriod:    ".",
	TokenComma:     ",",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenName:      "name",
	TokenFloat:     "float",
	TokenInt:       "int",
}

// String renders the kind the way it is written in source for keywords and
// punctuation, and as a category name for names and literals.
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenLet && k <= TokenElse
}

// IsPunct reports whether k is an operator or punctuation mark.
func (k TokenKind) IsPunct() bool {
	return k >= TokenArrow && k <= TokenRParen
}

// Kinds returns every token kind the lexer can produce, in declaration order.
func Kinds() []TokenKind {
	kinds := make([]TokenKind, 0, int(TokenInt))
	for k := TokenLet; k <= TokenInt; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

type Token struct {
	Kind TokenKind
	Span source.Span
}

func (t Token) Text() string {
	return t.Span.Text()
}

// Describe returns a short human-readable description of t for diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenName, TokenFloat, TokenInt:
		return t.Kind.String() + " " + t.Text()
	}
	return t.Kind.String()
}

var keywords = map[string]TokenKind{
	"let":  TokenLet,
	"in":   TokenIn,
	"if":   TokenIf,
	"then": TokenThen,
	"else": TokenElse,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenName
}
