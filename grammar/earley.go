package grammar

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/cae/lexer"
)

// A symbol on the right-hand side of a rule is either a nonterminal, named
// by rule, or a terminal matched against the kind of a token.
type symbol struct {
	rule     string
	terminal string
}

func (s symbol) isTerminal() bool { return s.rule == "" }

// Recognizer decides whether a token sequence is derived from a start
// production. The syntactic productions are rewritten into plain rules,
// one fresh rule per group, option and repetition, and run through an
// Earley chart. Lexical productions are terminals matched by token kind.
type Recognizer struct {
	start    string
	rules    map[string][][]symbol
	nullable map[string]bool
	fresh    int
}

func NewRecognizer(g ebnf.Grammar, start string) (*Recognizer, error) {
	if p, ok := g[start]; !ok || p == nil {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	r := &Recognizer{
		start: start,
		rules: make(map[string][][]symbol),
	}
	for _, name := range Productions(g) {
		if IsLexical(name) {
			continue
		}
		r.rules[name] = r.alternatives(name, g[name].Expr)
	}
	r.computeNullable()
	return r, nil
}

func (r *Recognizer) alternatives(parent string, x ebnf.Expression) [][]symbol {
	if alt, ok := x.(ebnf.Alternative); ok {
		out := make([][]symbol, 0, len(alt))
		for _, e := range alt {
			out = append(out, r.sequence(parent, e))
		}
		return out
	}
	return [][]symbol{r.sequence(parent, x)}
}

func (r *Recognizer) sequence(parent string, x ebnf.Expression) []symbol {
	switch x := x.(type) {
	case nil:
		return nil
	case ebnf.Sequence:
		var out []symbol
		for _, e := range x {
			out = append(out, r.sequence(parent, e)...)
		}
		return out
	case *ebnf.Name:
		if IsLexical(x.String) {
			return []symbol{{terminal: x.String}}
		}
		return []symbol{{rule: x.String}}
	case *ebnf.Token:
		return []symbol{{terminal: x.String}}
	case *ebnf.Group:
		return []symbol{r.define(parent, r.alternatives(parent, x.Body))}
	case *ebnf.Option:
		return []symbol{r.define(parent, append(r.alternatives(parent, x.Body), nil))}
	case ebnf.Alternative:
		return []symbol{r.define(parent, r.alternatives(parent, x))}
	case *ebnf.Repetition:
		name := r.freshName(parent)
		self := symbol{rule: name}
		alts := [][]symbol{nil}
		for _, alt := range r.alternatives(parent, x.Body) {
			alts = append(alts, append(alt, self))
		}
		r.rules[name] = alts
		return []symbol{self}
	}
	panic(fmt.Sprintf("grammar: unexpected expression %T in syntactic production %s", x, parent))
}

func (r *Recognizer) define(parent string, alts [][]symbol) symbol {
	name := r.freshName(parent)
	r.rules[name] = alts
	return symbol{rule: name}
}

// Fresh rule names contain a '#', which no production name can.
func (r *Recognizer) freshName(parent string) string {
	r.fresh++
	return fmt.Sprintf("%s#%d", parent, r.fresh)
}

func (r *Recognizer) computeNullable() {
	r.nullable = make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for name, alts := range r.rules {
			if r.nullable[name] {
				continue
			}
			for _, alt := range alts {
				if r.allNullable(alt) {
					r.nullable[name] = true
					changed = true
					break
				}
			}
		}
	}
}

func (r *Recognizer) allNullable(syms []symbol) bool {
	for _, s := range syms {
		if s.isTerminal() || !r.nullable[s.rule] {
			return false
		}
	}
	return true
}

type item struct {
	rule   string
	alt    int
	dot    int
	origin int
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen == nil {
		s.seen = make(map[item]bool)
	}
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// RecognizeError reports the first token no derivation can continue with.
type RecognizeError struct {
	// Found is nil at the end of the input.
	Found    *lexer.Token
	Expected []string
}

func (e *RecognizeError) Error() string {
	var sb strings.Builder
	if e.Found == nil {
		sb.WriteString("unexpected end of input")
	} else {
		fmt.Fprintf(&sb, "%s: unexpected %q", e.Found.Span, e.Found.Text())
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&sb, ", expected one of %s", strings.Join(e.Expected, " "))
	}
	return sb.String()
}

// Recognize returns nil when tokens form a sentence of the start production
// and a *RecognizeError otherwise. tokens must not include the end of input
// token.
func (r *Recognizer) Recognize(tokens []lexer.Token) error {
	n := len(tokens)
	chart := make([]itemSet, n+1)
	for alt := range r.rules[r.start] {
		chart[0].add(item{rule: r.start, alt: alt})
	}

	for i := 0; i <= n; i++ {
		for j := 0; j < len(chart[i].items); j++ {
			it := chart[i].items[j]
			rhs := r.rules[it.rule][it.alt]
			if it.dot == len(rhs) {
				r.complete(chart, i, it)
				continue
			}
			next := rhs[it.dot]
			advanced := it
			advanced.dot++
			if next.isTerminal() {
				if i < n && tokens[i].Kind.String() == next.terminal {
					chart[i+1].add(advanced)
				}
				continue
			}
			for alt := range r.rules[next.rule] {
				chart[i].add(item{rule: next.rule, alt: alt, origin: i})
			}
			if r.nullable[next.rule] {
				chart[i].add(advanced)
			}
		}
	}

	for _, it := range chart[n].items {
		if it.rule == r.start && it.origin == 0 && it.dot == len(r.rules[it.rule][it.alt]) {
			return nil
		}
	}

	furthest := n
	for len(chart[furthest].items) == 0 {
		furthest--
	}
	err := &RecognizeError{Expected: r.expected(chart[furthest])}
	if furthest < n {
		err.Found = &tokens[furthest]
	}
	return err
}

func (r *Recognizer) complete(chart []itemSet, i int, done item) {
	origin := &chart[done.origin]
	for k := 0; k < len(origin.items); k++ {
		waiting := origin.items[k]
		rhs := r.rules[waiting.rule][waiting.alt]
		if waiting.dot < len(rhs) && rhs[waiting.dot].rule == done.rule {
			waiting.dot++
			chart[i].add(waiting)
		}
	}
}

func (r *Recognizer) expected(set itemSet) []string {
	seen := map[string]bool{}
	for _, it := range set.items {
		rhs := r.rules[it.rule][it.alt]
		if it.dot < len(rhs) && rhs[it.dot].isTerminal() {
			seen[rhs[it.dot].terminal] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
