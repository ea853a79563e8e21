// Package frontend runs the lexer and the parser over a source buffer and
// applies the error policy: a tree is only handed on when the whole input
// was free of errors.
package frontend

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/cae/ast"
	"github.com/dhamidi/cae/diag"
	"github.com/dhamidi/cae/lexer"
	"github.com/dhamidi/cae/parser"
	"github.com/dhamidi/cae/source"
)

var log = commonlog.GetLogger("cae.frontend")

// Result holds everything produced for one buffer.
type Result struct {
	Buffer *source.Buffer
	// Tokens is nil when lexing failed.
	Tokens []lexer.Token
	// Defs may be incomplete when there are syntax errors. It is nil when
	// lexing failed or the parser stopped at a resource limit.
	Defs         []ast.Def
	LexErrors    []*lexer.Error
	SyntaxErrors []*parser.Error
}

// Process lexes buf and, if that succeeded, parses the tokens.
func Process(buf *source.Buffer, opts ...parser.Option) *Result {
	r := &Result{Buffer: buf}
	r.Tokens, r.LexErrors = lexer.Tokenize(buf)
	if len(r.LexErrors) > 0 {
		log.Debugf("%s: %d lex errors, not parsing", buf.Name(), len(r.LexErrors))
		return r
	}
	log.Debugf("%s: %d tokens", buf.Name(), len(r.Tokens))

	r.Defs, r.SyntaxErrors = parser.Parse(r.Tokens, append([]parser.Option{parser.WithBuffer(buf)}, opts...)...)
	log.Debugf("%s: %d definitions, %d syntax errors", buf.Name(), len(r.Defs), len(r.SyntaxErrors))
	return r
}

// ProcessFile reads the file at path and processes it.
func ProcessFile(path string, opts ...parser.Option) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Process(source.NewBuffer(path, string(data)), opts...), nil
}

func (r *Result) ErrorCount() int {
	return len(r.LexErrors) + len(r.SyntaxErrors)
}

func (r *Result) Failed() bool {
	return r.ErrorCount() > 0
}

// Diagnostics returns all errors in source order.
func (r *Result) Diagnostics() []diag.Diagnostic {
	ds := append(diag.FromLexErrors(r.LexErrors), diag.FromSyntaxErrors(r.SyntaxErrors)...)
	diag.Sort(ds)
	return ds
}

// Root returns the syntax tree, or nil if there was any error.
func (r *Result) Root() *ast.Root {
	if r.Failed() || r.Defs == nil {
		return nil
	}
	return ast.NewRoot(r.Buffer, r.Defs)
}

// Partial returns whatever definitions were parsed, even if there were
// errors. Tools that work on incomplete code, such as an editor, use this;
// it is nil when there is nothing to show.
func (r *Result) Partial() *ast.Root {
	if r.Defs == nil {
		return nil
	}
	return ast.NewRoot(r.Buffer, r.Defs)
}
