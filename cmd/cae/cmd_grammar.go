package main

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/cae/frontend"
	"github.com/dhamidi/cae/grammar"
)

func newGrammarCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect and verify the language grammar",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarTokensCmd())
	cmd.AddCommand(newGrammarRecognizeCmd(opts))

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify the built-in grammar, or an EBNF file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := grammar.Verify(); err != nil {
					printErrors(cmd.ErrOrStderr(), innermost(err))
					return err
				}
				g, _ := grammar.Load()
				fmt.Fprintf(cmd.OutOrStdout(), "%d productions ok\n", len(g))
				return nil
			}

			filename := args[0]
			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			g, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			if startProduction == "" {
				return nil
			}
			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification of a file (if empty, only checks syntax)")

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), grammar.Source())
			return err
		},
	}
}

func newGrammarTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Split a source file into tokens using only the grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			bad := 0
			for _, tok := range grammar.Scan(g, string(data)) {
				if tok.Kind == "ERROR" {
					bad++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%q\n", tok.Offset, tok.Kind, tok.Text)
			}
			if bad > 0 {
				return fmt.Errorf("%d bytes match no token", bad)
			}
			return nil
		},
	}
}

func newGrammarRecognizeCmd(opts *rootOptions) *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "recognize <file>",
		Short: "Check a source file against the grammar instead of the parser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := frontend.ProcessFile(args[0], opts.cfg.ParserOptions()...)
			if err != nil {
				return err
			}
			if len(result.LexErrors) > 0 {
				result.SyntaxErrors = nil
				return opts.reportErrors(cmd.ErrOrStderr(), result)
			}
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			r, err := grammar.NewRecognizer(g, startProduction)
			if err != nil {
				return err
			}
			name := result.Buffer.Name()
			if err := r.Recognize(result.Tokens); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s is not a %s", name, startProduction)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tokens ok\n", name, len(result.Tokens))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "production the file must derive from")

	return cmd
}

// innermost unwraps err down to the list of errors reported by the ebnf
// package.
func innermost(err error) error {
	for {
		next, ok := err.(interface{ Unwrap() error })
		if !ok || next.Unwrap() == nil {
			return err
		}
		err = next.Unwrap()
	}
}

// printErrors prints each error of an error list on its own line.
func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
