// Package diag turns lexer and parser errors into one kind of value that
// tools can sort, render for a terminal, or hand to an editor.
package diag

import (
	"fmt"
	"sort"

	"github.com/dhamidi/cae/lexer"
	"github.com/dhamidi/cae/parser"
	"github.com/dhamidi/cae/source"
)

// Stage identifies which phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// ContextLabel is an enclosing grammar production of a syntax error.
type ContextLabel struct {
	Name string
	Span source.Span
}

// Diagnostic is an error surfaced to end users.
type Diagnostic struct {
	Stage    Stage
	Span     source.Span
	Message  string
	Found    string
	Expected []string
	// Context is outermost first. Lexer diagnostics have none.
	Context []ContextLabel
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

func FromLexErrors(errs []*lexer.Error) []Diagnostic {
	out := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		out = append(out, Diagnostic{
			Stage:    StageLexer,
			Span:     e.Span,
			Message:  e.Message(),
			Found:    e.FoundDescription(),
			Expected: append([]string(nil), e.Expected...),
		})
	}
	return out
}

func FromSyntaxErrors(errs []*parser.Error) []Diagnostic {
	out := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		d := Diagnostic{
			Stage:   StageParser,
			Span:    e.Span,
			Message: e.Message(),
			Found:   e.FoundDescription(),
		}
		if len(e.Expected) > 0 {
			d.Expected = e.ExpectedNames()
		}
		for _, l := range e.Context {
			d.Context = append(d.Context, ContextLabel{Name: l.Name, Span: l.Span})
		}
		out = append(out, d)
	}
	return out
}

// Sort orders diagnostics by position. Diagnostics at the same offset keep
// their relative order.
func Sort(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Span.Start < ds[j].Span.Start
	})
}
