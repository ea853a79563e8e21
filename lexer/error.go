package lexer

import (
	"fmt"
	"strings"

	"github.com/dhamidi/cae/source"
)

type ErrorKind int

const (
	ErrUnexpectedChar ErrorKind = iota
	ErrMalformedLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedChar:
		return "unexpected character"
	case ErrMalformedLiteral:
		return "malformed literal"
	}
	return "unknown"
}

// Error is a lexical error: a character that cannot start any token, or a
// literal that cannot be represented.
type Error struct {
	Kind     ErrorKind
	Span     source.Span
	Found    rune
	Expected []string
}

// FoundDescription renders what was found at the error position.
func (e *Error) FoundDescription() string {
	if e.Span.IsEmpty() {
		return "end of input"
	}
	if e.Kind == ErrMalformedLiteral {
		return fmt.Sprintf("%q", e.Span.Text())
	}
	return fmt.Sprintf("%q", e.Found)
}

func (e *Error) Message() string {
	switch e.Kind {
	case ErrMalformedLiteral:
		return fmt.Sprintf("integer literal %s out of range", e.FoundDescription())
	}
	msg := "found " + e.FoundDescription()
	if len(e.Expected) > 0 {
		msg += ", expected " + joinExpected(e.Expected)
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
