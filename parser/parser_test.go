package parser

import (
	"strings"
	"testing"

	"github.com/dhamidi/cae/ast"
	"github.com/dhamidi/cae/format"
	"github.com/dhamidi/cae/lexer"
	"github.com/dhamidi/cae/source"
	"github.com/google/go-cmp/cmp"
)

func lex(t *testing.T, input string) []lexer.Token {
	t.Helper()
	tokens, errs := lexer.Tokenize(source.NewBuffer("test.cae", input))
	if len(errs) > 0 {
		t.Fatalf("lex %q: %v", input, errs)
	}
	return tokens
}

func parseOK(t *testing.T, input string) []ast.Def {
	t.Helper()
	defs, errs := Parse(lex(t, input))
	if len(errs) > 0 {
		t.Fatalf("parse %q: %v", input, errs)
	}
	return defs
}

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"int value",
			"x = 5;",
			"ValueDef(x, Int(5))",
		},
		{
			"function shorthand",
			"id a :A -> :A a;",
			"ValueDef(id, Func(a, Named(A), Named(A), SymbolRef(a)))",
		},
		{
			"type definition",
			"Point | x :Int64, y :Int64;",
			"TypeDef(Point, [x: Named(Int64), y: Named(Int64)])",
		},
		{
			"let bindings",
			"f = let a = 1; b = 2; in a;",
			"ValueDef(f, LetIn([ValueDef(a, Int(1)), ValueDef(b, Int(2))], SymbolRef(a)))",
		},
		{
			"empty let",
			"x = let in 1;",
			"ValueDef(x, LetIn([], Int(1)))",
		},
		{
			"float",
			"pi = 3.14159;",
			"ValueDef(pi, Float(3.14159))",
		},
		{
			"function without return type",
			"f = a :Int -> a;",
			"ValueDef(f, Func(a, Named(Int), _, SymbolRef(a)))",
		},
		{
			"branching",
			"x = if c then 1 else 2.5;",
			"ValueDef(x, IfThenElse(SymbolRef(c), Int(1), Float(2.5)))",
		},
		{
			"generic without bounds",
			"List $ T;",
			"GenericDef(List, [T])",
		},
		{
			"generic with bounds",
			"F $ T :Int & :Float, U;",
			"GenericDef(F, [T: Named(Int) & Named(Float), U])",
		},
		{
			"generic with function bound",
			"F $ T :(A -> B);",
			"GenericDef(F, [T: Function(Named(A), Named(B))])",
		},
		{
			"several definitions",
			"Point | x :Int64; p = 1; G $ T;",
			"TypeDef(Point, [x: Named(Int64)])\nValueDef(p, Int(1))\nGenericDef(G, [T])",
		},
		{
			"comments and whitespace",
			"# header\nx =\n\t5 # five\n;",
			"ValueDef(x, Int(5))",
		},
		{
			"duplicate names are legal",
			"x = 1; x = 2;",
			"ValueDef(x, Int(1))\nValueDef(x, Int(2))",
		},
		{
			"empty program",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.TrimSuffix(format.TreeDefs(parseOK(t, tt.input)), "\n")
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"f a b |> g", "Call(SymbolRef(g), Call(Call(SymbolRef(f), SymbolRef(a)), SymbolRef(b)))"},
		{"f a b c", "Call(Call(Call(SymbolRef(f), SymbolRef(a)), SymbolRef(b)), SymbolRef(c))"},
		{"a |> f |> g", "Call(SymbolRef(g), Call(SymbolRef(f), SymbolRef(a)))"},
		{"a |> f b", "Call(Call(SymbolRef(f), SymbolRef(b)), SymbolRef(a))"},
		{"f a |> g b", "Call(Call(SymbolRef(g), SymbolRef(b)), Call(SymbolRef(f), SymbolRef(a)))"},
		{"f <| g a", "Call(SymbolRef(f), Call(SymbolRef(g), SymbolRef(a)))"},
		{"<| a", "SymbolRef(a)"},
		{"f <| g a |> h", "Call(SymbolRef(f), Call(SymbolRef(h), Call(SymbolRef(g), SymbolRef(a))))"},
		{"f (g a) b", "Call(Call(SymbolRef(f), Call(SymbolRef(g), SymbolRef(a))), SymbolRef(b))"},
		{"(f)", "SymbolRef(f)"},
		{"((1))", "Int(1)"},
		{"f 1 2.5", "Call(Call(SymbolRef(f), Int(1)), Float(2.5))"},
		{"a :Int -> a |> f", "Func(a, Named(Int), _, Call(SymbolRef(f), SymbolRef(a)))"},
		{"f a :Int -> a b", "Call(SymbolRef(f), Func(a, Named(Int), _, Call(SymbolRef(a), SymbolRef(b))))"},
		{"a :Int -> :Int b :Int -> a", "Func(a, Named(Int), Named(Int), Func(b, Named(Int), _, SymbolRef(a)))"},
		{"if a then b else c |> f", "IfThenElse(SymbolRef(a), SymbolRef(b), Call(SymbolRef(f), SymbolRef(c)))"},
		{"if if a then b else c then 1 else 2", "IfThenElse(IfThenElse(SymbolRef(a), SymbolRef(b), SymbolRef(c)), Int(1), Int(2))"},
		{"f (let a = 1; in a)", "Call(SymbolRef(f), LetIn([ValueDef(a, Int(1))], SymbolRef(a)))"},
		{"f <| if a then b else c", "Call(SymbolRef(f), IfThenElse(SymbolRef(a), SymbolRef(b), SymbolRef(c)))"},
		{"let f = a :Int -> a; in f 1", "LetIn([ValueDef(f, Func(a, Named(Int), _, SymbolRef(a)))], Call(SymbolRef(f), Int(1)))"},
		{"let id a :A -> a; in id", "LetIn([ValueDef(id, Func(a, Named(A), _, SymbolRef(a)))], SymbolRef(id))"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			defs := parseOK(t, "x = "+tt.body+";")
			if len(defs) != 1 {
				t.Fatalf("got %d defs, want 1", len(defs))
			}
			vd, ok := defs[0].(*ast.ValueDef)
			if !ok {
				t.Fatalf("got %T, want *ast.ValueDef", defs[0])
			}
			if got := format.Tree(vd.Body); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestParseTypeRefs(t *testing.T) {
	tests := []struct {
		typ  string
		want string
	}{
		{"A", "Named(A)"},
		{"(A)", "Named(A)"},
		{"(a -> b)", "Function(Named(a), Named(b))"},
		{"(a -> b -> c)", "Function(Named(a), Function(Named(b), Named(c)))"},
		{"((a -> b) -> c)", "Function(Function(Named(a), Named(b)), Named(c))"},
		{"(List a)", "Named(List, [Named(a)])"},
		{"(List (a -> b))", "Named(List, [Function(Named(a), Named(b))])"},
		{"(Map k v)", "Named(Map, [Named(k, [Named(v)])])"},
		{"(Map (k) v)", "Named(Map, [Named(k), Named(v)])"},
		{"(List a -> Int)", "Function(Named(List, [Named(a)]), Named(Int))"},
		{"(((A)))", "Named(A)"},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			defs := parseOK(t, "f x :"+tt.typ+" -> x;")
			fn := defs[0].(*ast.ValueDef).Body.(*ast.Func)
			if got := format.Tree(fn.ArgType); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func lexBuffer(t *testing.T, input string) (*source.Buffer, []lexer.Token) {
	t.Helper()
	buf := source.NewBuffer("test.cae", input)
	tokens, errs := lexer.Tokenize(buf)
	if len(errs) > 0 {
		t.Fatalf("lex %q: %v", input, errs)
	}
	return buf, tokens
}

func TestParseExpression(t *testing.T) {
	expr, errs := ParseExpression(lexBuffer(t, "f a b |> g"))
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := "Call(SymbolRef(g), Call(Call(SymbolRef(f), SymbolRef(a)), SymbolRef(b)))"
	if got := format.Tree(expr); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}

	expr, errs = ParseExpression(lexBuffer(t, "f a; b"))
	if expr != nil {
		t.Errorf("expected no expression, got %s", format.Tree(expr))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Found == nil || errs[0].Found.Kind != lexer.TokenSemicolon {
		t.Errorf("Found = %v, want ';'", errs[0].Found)
	}
	if !containsKind(errs[0].Expected, lexer.TokenEOF) {
		t.Errorf("Expected = %v, want end of input among them", errs[0].ExpectedNames())
	}
}

func TestParseExpressionEmptyInput(t *testing.T) {
	expr, errs := ParseExpression(lexBuffer(t, "  # nothing\n"))
	if expr != nil {
		t.Errorf("expected no expression, got %s", format.Tree(expr))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	want := "test.cae:2:1: found end of input, expected one of 'let', 'if', '<|', '(', 'name', 'float', 'int'"
	if got := errs[0].Error(); got != want {
		t.Errorf("Error() = %q\nwant %q", got, want)
	}
}

func TestParseRoot(t *testing.T) {
	buf := source.NewBuffer("test.cae", "  x = 1;\ny = 2;  ")
	tokens, _ := lexer.Tokenize(buf)
	root, errs := ParseRoot(buf, tokens)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(root.Defs) != 2 {
		t.Fatalf("got %d defs, want 2", len(root.Defs))
	}
	if root.Span().Text() != "x = 1;\ny = 2;" {
		t.Errorf("root span = %q", root.Span().Text())
	}

	empty := source.NewBuffer("empty.cae", "# nothing\n")
	tokens, _ = lexer.Tokenize(empty)
	root, errs = ParseRoot(empty, tokens)
	if len(errs) > 0 || root == nil || len(root.Defs) != 0 {
		t.Fatalf("empty file: root=%v errs=%v", root, errs)
	}
	if !root.Span().IsEmpty() {
		t.Errorf("empty root span = %q", root.Span().Text())
	}
}

func TestParseDeterministic(t *testing.T) {
	input := "x = f a b |> g; y = ; Point | x :Int, 5; z = let a = 1; in a;"
	tokens := lex(t, input)
	defs1, errs1 := Parse(tokens)
	defs2, errs2 := Parse(tokens)
	if diff := cmp.Diff(format.TreeDefs(defs1), format.TreeDefs(defs2)); diff != "" {
		t.Errorf("trees differ:\n%s", diff)
	}
	if diff := cmp.Diff(errorStrings(errs1), errorStrings(errs2)); diff != "" {
		t.Errorf("errors differ:\n%s", diff)
	}
}

func errorStrings(errs []*Error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func containsKind(kinds []lexer.TokenKind, k lexer.TokenKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
