package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dhamidi/cae/frontend"
	"github.com/dhamidi/cae/lexer"
	"github.com/dhamidi/cae/source"
)

func newTokensCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a source file as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := frontend.ProcessFile(args[0], opts.cfg.ParserOptions()...)
			if err != nil {
				return err
			}
			if len(result.LexErrors) > 0 {
				// Syntax errors do not matter for a token listing.
				result.SyntaxErrors = nil
				return opts.reportErrors(cmd.ErrOrStderr(), result)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Kind", "Text", "Position"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			for i, tok := range result.Tokens {
				table.Append(tokenRow(i, tok))
			}
			table.Render()
			return nil
		},
	}
}

func tokenRow(i int, tok lexer.Token) []string {
	kind := "punct"
	switch {
	case tok.Kind.IsKeyword():
		kind = "keyword"
	case !tok.Kind.IsPunct():
		kind = tok.Kind.String()
	}
	return []string{strconv.Itoa(i), kind, tok.Text(), position(tok.Span)}
}

func position(s source.Span) string {
	p := s.StartPos()
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
