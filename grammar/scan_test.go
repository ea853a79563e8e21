package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/cae/lexer"
	caesource "github.com/dhamidi/cae/source"
)

func TestTokenProductions(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"float", "int", "name"}, TokenProductions(g)); diff != "" {
		t.Errorf("token productions (-want +got):\n%s", diff)
	}
}

func TestScan(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	got := Scan(g, "let letter = 1.5 |> f; # done\nx<|y ?")
	want := []Token{
		{Kind: "let", Text: "let", Offset: 0},
		{Kind: "name", Text: "letter", Offset: 4},
		{Kind: "=", Text: "=", Offset: 11},
		{Kind: "float", Text: "1.5", Offset: 13},
		{Kind: "|>", Text: "|>", Offset: 17},
		{Kind: "name", Text: "f", Offset: 20},
		{Kind: ";", Text: ";", Offset: 21},
		{Kind: "name", Text: "x", Offset: 30},
		{Kind: "<|", Text: "<|", Offset: 31},
		{Kind: "name", Text: "y", Offset: 33},
		{Kind: "ERROR", Text: "?", Offset: 35},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}
}

// The hand-written lexer and the grammar agree on how to split valid input.
func TestLexerAgreesWithGrammar(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	inputs := []string{
		"x = 5;",
		"id a :A -> :A a;",
		"Point | x :Int64, y :Int64;",
		"f = let a = 1; b = 2; in a;",
		"F $ T :(a -> b) & :Functor, U;",
		"main = read input |> lines |> map parse;",
		"apply = f <| g x;",
		"x = if iffy then thenable else elsewhere;",
		"letin = let_ in in1;",
		"pi = 3.14159; big = 007;",
		"#only a comment",
		"a\tb\r\nc # trailing\n",
		"|>|<|->||",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens, errs := lexer.Tokenize(caesource.NewBuffer("t.cae", input))
			if len(errs) > 0 {
				t.Fatalf("lex errors: %v", errs)
			}
			var want []Token
			for _, tok := range tokens {
				want = append(want, Token{Kind: tok.Kind.String(), Text: tok.Text(), Offset: tok.Span.Start})
			}
			if diff := cmp.Diff(want, Scan(g, input)); diff != "" {
				t.Errorf("lexer (-) and grammar (+) disagree:\n%s", diff)
			}
		})
	}
}
