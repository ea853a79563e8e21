package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cae/ast"
	"github.com/dhamidi/cae/format"
	"github.com/dhamidi/cae/frontend"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var outputFormat string
	var partial bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				outputFormat = opts.cfg.Output.Format
			}

			result, err := frontend.ProcessFile(args[0], opts.cfg.ParserOptions()...)
			if err != nil {
				return err
			}

			root := result.Root()
			if partial {
				root = result.Partial()
			}
			if root != nil {
				if err := writeTree(cmd, outputFormat, root); err != nil {
					return err
				}
			}
			return opts.reportErrors(cmd.ErrOrStderr(), result)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, yaml, lines)")
	cmd.Flags().BoolVar(&partial, "partial", false, "print the definitions that parsed even if there are errors")

	return cmd
}

func writeTree(cmd *cobra.Command, outputFormat string, root *ast.Root) error {
	if outputFormat == "tree" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), format.TreeDefs(root.Defs))
		return err
	}
	encoder, ok := format.NewEncoder(outputFormat, cmd.OutOrStdout())
	if !ok {
		return fmt.Errorf("unknown format: %s", outputFormat)
	}
	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("encode %s: %w", outputFormat, err)
	}
	return nil
}
