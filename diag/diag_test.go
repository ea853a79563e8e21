package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/cae/lexer"
	"github.com/dhamidi/cae/parser"
	"github.com/dhamidi/cae/source"
)

func diagnose(t *testing.T, name, input string) []Diagnostic {
	t.Helper()
	buf := source.NewBuffer(name, input)
	tokens, lexErrs := lexer.Tokenize(buf)
	if len(lexErrs) > 0 {
		return FromLexErrors(lexErrs)
	}
	_, errs := parser.Parse(tokens)
	return FromSyntaxErrors(errs)
}

func render(t *testing.T, ds []Diagnostic, opts ...RendererOption) string {
	t.Helper()
	var out bytes.Buffer
	if err := NewRenderer(&out, opts...).RenderAll(ds); err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.String()
}

func TestFromSyntaxErrors(t *testing.T) {
	ds := diagnose(t, "main.cae", "x = ;")
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(ds))
	}
	d := ds[0]
	if d.Stage != StageParser {
		t.Errorf("Stage = %s, want %s", d.Stage, StageParser)
	}
	if d.Found != "';'" {
		t.Errorf("Found = %s", d.Found)
	}
	if diff := cmp.Diff([]string{"let", "if", "<|", "(", "name", "float", "int"}, d.Expected); diff != "" {
		t.Errorf("Expected (-want +got):\n%s", diff)
	}
	var names []string
	for _, c := range d.Context {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"value definition", "expression"}, names); diff != "" {
		t.Errorf("Context (-want +got):\n%s", diff)
	}
	want := "main.cae:1:5: found ';', expected one of 'let', 'if', '<|', '(', 'name', 'float', 'int'"
	if d.String() != want {
		t.Errorf("String() = %q\nwant %q", d.String(), want)
	}
}

func TestFromLexErrors(t *testing.T) {
	ds := diagnose(t, "main.cae", "x = 1 < 2;\ny = 99999999999999999999;")
	if len(ds) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(ds), ds)
	}
	if ds[0].Stage != StageLexer || ds[0].Found != "'<'" {
		t.Errorf("first = %+v", ds[0])
	}
	if diff := cmp.Diff([]string{"<|"}, ds[0].Expected); diff != "" {
		t.Errorf("Expected (-want +got):\n%s", diff)
	}
	if ds[0].Context != nil {
		t.Errorf("lexer diagnostic has context %v", ds[0].Context)
	}
	if got := ds[1].Span.StartPos().Line; got != 2 {
		t.Errorf("second on line %d, want 2", got)
	}
}

func TestRender(t *testing.T) {
	got := render(t, diagnose(t, "main.cae", "x = ;"))
	want := strings.Join([]string{
		"error[parser]: found ';', expected one of 'let', 'if', '<|', '(', 'name', 'float', 'int'",
		" --> main.cae:1:5",
		"  |",
		"1 | x = ;",
		"  |     ^",
		"  = while parsing this value definition at main.cae:1:1",
		"  = while parsing this expression at main.cae:1:5",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLexError(t *testing.T) {
	got := render(t, diagnose(t, "main.cae", "\n\n\n\n\n\n\n\n\nx = 1 < 2;"))
	want := strings.Join([]string{
		"error[lexer]: found '<', expected '<|'",
		"  --> main.cae:10:7",
		"   |",
		"10 | x = 1 < 2;",
		"   |       ^",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEndOfInput(t *testing.T) {
	got := render(t, diagnose(t, "main.cae", "x = f"))
	lines := strings.Split(got, "\n")
	if len(lines) < 5 {
		t.Fatalf("short output:\n%s", got)
	}
	if lines[0] != "error[parser]: found end of input, expected one of '|>', '<|', ';', '(', 'name', 'float', 'int'" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[4] != "  |      ^" {
		t.Errorf("underline = %q, want a caret past the last character", lines[4])
	}
}

func TestRenderMultiCharSpanAndTabs(t *testing.T) {
	got := render(t, diagnose(t, "main.cae", "\tx = f a\n\tfoo = 1;"))
	lines := strings.Split(got, "\n")
	if lines[3] != "2 | \tfoo = 1;" {
		t.Errorf("source line = %q", lines[3])
	}
	if lines[4] != "  | \t    ^" {
		t.Errorf("underline = %q", lines[4])
	}
}

func TestRenderAllSeparatesDiagnostics(t *testing.T) {
	got := render(t, diagnose(t, "main.cae", "x = ;\ny = );"))
	if n := strings.Count(got, "error[parser]"); n != 2 {
		t.Errorf("got %d headers, want 2:\n%s", n, got)
	}
	if !strings.Contains(got, "  = while parsing this expression at main.cae:1:5\n\nerror[parser]") {
		t.Errorf("diagnostics not separated by a blank line:\n%s", got)
	}
}

func TestRenderColor(t *testing.T) {
	ds := diagnose(t, "main.cae", "x = ;")
	if got := render(t, ds); strings.Contains(got, "\x1b[") {
		t.Errorf("uncolored output contains escape codes: %q", got)
	}
	if got := render(t, ds, WithColor(true)); !strings.Contains(got, "\x1b[") {
		t.Errorf("colored output has no escape codes: %q", got)
	}
}

func TestRenderWithoutBuffer(t *testing.T) {
	got := render(t, []Diagnostic{{Stage: StageParser, Message: "found end of input"}})
	if got != "error[parser]: found end of input\n" {
		t.Errorf("got %q", got)
	}
}

func TestSort(t *testing.T) {
	buf := source.NewBuffer("main.cae", "abcdef")
	ds := []Diagnostic{
		{Stage: StageParser, Span: buf.Span(4, 5), Message: "c"},
		{Stage: StageLexer, Span: buf.Span(1, 2), Message: "a"},
		{Stage: StageParser, Span: buf.Span(1, 2), Message: "b"},
	}
	Sort(ds)
	var got []string
	for _, d := range ds {
		got = append(got, d.Message)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}
