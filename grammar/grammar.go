// Package grammar holds the EBNF grammar of the language in the notation of
// golang.org/x/exp/ebnf. The parser is written by hand; the grammar is its
// reference and is checked for consistency by Verify.
package grammar

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Start is the production a source file is derived from.
const Start = "Program"

//go:embed cae.ebnf
var source string

const filename = "cae.ebnf"

// Source returns the grammar text.
func Source() string {
	return source
}

func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production is defined and reachable from Start.
func Verify() error {
	g, err := Load()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Productions returns the production names in sorted order.
func Productions(g ebnf.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLexical reports whether the named production describes a token rather
// than a syntactic construct.
func IsLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

// Terminals returns the quoted terminals used by the syntactic productions,
// sorted. These are the keywords and punctuation of the language.
func Terminals(g ebnf.Grammar) []string {
	seen := map[string]bool{}
	var walk func(ebnf.Expression)
	walk = func(x ebnf.Expression) {
		switch x := x.(type) {
		case ebnf.Alternative:
			for _, e := range x {
				walk(e)
			}
		case ebnf.Sequence:
			for _, e := range x {
				walk(e)
			}
		case *ebnf.Group:
			walk(x.Body)
		case *ebnf.Option:
			walk(x.Body)
		case *ebnf.Repetition:
			walk(x.Body)
		case *ebnf.Token:
			seen[x.String] = true
		}
	}
	for name, p := range g {
		if !IsLexical(name) {
			walk(p.Expr)
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
