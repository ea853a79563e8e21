package grammar

import (
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Token is a token found by a Scanner. Kind is the name of a lexical
// production such as "name", the terminal itself for keywords and
// punctuation, or "ERROR" for a byte nothing matches.
type Token struct {
	Kind   string
	Text   string
	Offset int
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Scanner splits input into tokens using nothing but the grammar: the
// lexical productions used by the syntactic ones, and the quoted terminals.
// Blanks and '#' comments are skipped between tokens. At each position the
// longest match wins; on a tie a terminal beats a production, so "let" is a
// keyword and "letter" a name.
//
// The scanner backtracks freely and exists to cross-check the hand-written
// lexer against the grammar.
type Scanner struct {
	grammar   ebnf.Grammar
	tokens    []string
	terminals []string
	input     string
	pos       int
	memo      map[memoKey]int // match length by production and offset, -1 for no match
	visiting  map[memoKey]bool
}

func NewScanner(g ebnf.Grammar, input string) *Scanner {
	return &Scanner{
		grammar:   g,
		tokens:    TokenProductions(g),
		terminals: Terminals(g),
		input:     input,
	}
}

// Scan returns all tokens of input.
func Scan(g ebnf.Grammar, input string) []Token {
	s := NewScanner(g, input)
	var out []Token
	for {
		tok, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// TokenProductions returns the lexical productions that syntactic
// productions refer to by name, sorted.
func TokenProductions(g ebnf.Grammar) []string {
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
		case *ebnf.Name:
			if IsLexical(x.String) {
				seen[x.String] = true
			}
		}
	}
	for name, p := range g {
		if !IsLexical(name) {
			walk(p.Expr)
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Next returns the next token, or false at the end of the input.
func (s *Scanner) Next() (Token, bool) {
	s.skipTrivia()
	if s.pos >= len(s.input) {
		return Token{}, false
	}

	start := s.pos
	// Clear memoization cache for each new token (positions change)
	s.memo = make(map[memoKey]int)

	bestKind, bestLen := "", 0
	for _, t := range s.terminals {
		if strings.HasPrefix(s.input[start:], t) && len(t) > bestLen {
			bestKind, bestLen = t, len(t)
		}
	}
	for _, name := range s.tokens {
		s.visiting = make(map[memoKey]bool)
		if n := s.matchName(name, start); n > bestLen {
			bestKind, bestLen = name, n
		}
	}

	if bestLen == 0 {
		s.pos++
		return Token{Kind: "ERROR", Text: s.input[start:s.pos], Offset: start}, true
	}
	s.pos += bestLen
	return Token{Kind: bestKind, Text: s.input[start:s.pos], Offset: start}, true
}

func (s *Scanner) skipTrivia() {
	for s.pos < len(s.input) {
		switch s.input[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		case '#':
			for s.pos < len(s.input) && s.input[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

// match returns the length of the longest match of expr at offset, or -1
// if there is none. Options and repetitions may match the empty string.
func (s *Scanner) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		if strings.HasPrefix(s.input[offset:], e.String) {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		if offset >= len(s.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return -1
		}
		if ch := s.input[offset]; ch >= e.Begin.String[0] && ch <= e.End.String[0] {
			return 1
		}
		return -1

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := s.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := s.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := s.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := s.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return s.match(e.Body, offset)

	case *ebnf.Name:
		return s.matchName(e.String, offset)
	}
	return -1
}

// matchName matches a named production with memoization and cycle detection.
func (s *Scanner) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if result, ok := s.memo[key]; ok {
		return result
	}
	if s.visiting[key] {
		return -1
	}
	prod, ok := s.grammar[name]
	if !ok || prod.Expr == nil {
		s.memo[key] = -1
		return -1
	}

	s.visiting[key] = true
	result := s.match(prod.Expr, offset)
	delete(s.visiting, key)

	s.memo[key] = result
	return result
}
