package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cae/frontend"
	"github.com/dhamidi/cae/watch"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var watchDir string

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report lexical and syntax errors in source files",
		Args: func(cmd *cobra.Command, args []string) error {
			if watchDir != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchDir != "" {
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()
				h := &checkHandler{opts: opts, stdout: cmd.OutOrStdout(), stderr: cmd.ErrOrStderr()}
				return watch.New(watchDir, h).Run(ctx)
			}

			var results []*frontend.Result
			for _, path := range args {
				result, err := frontend.ProcessFile(path, opts.cfg.ParserOptions()...)
				if err != nil {
					return err
				}
				results = append(results, result)
			}
			if err := opts.reportErrors(cmd.ErrOrStderr(), results...); err != nil {
				return err
			}
			if len(results) == 1 {
				fmt.Fprintln(cmd.OutOrStdout(), "1 file ok")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%d files ok\n", len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&watchDir, "watch", "w", "", "check every .cae file under this directory again whenever it changes")

	return cmd
}

// checkHandler checks each file the watcher reports.
type checkHandler struct {
	opts   *rootOptions
	stdout io.Writer
	stderr io.Writer
}

func (h *checkHandler) Changed(path string) {
	result, err := frontend.ProcessFile(path, h.opts.cfg.ParserOptions()...)
	if err != nil {
		fmt.Fprintln(h.stderr, err)
		return
	}
	if err := h.opts.reportErrors(h.stderr, result); err != nil {
		fmt.Fprintf(h.stderr, "%s: %v\n", path, err)
		return
	}
	fmt.Fprintf(h.stdout, "%s: ok\n", path)
}

func (h *checkHandler) Removed(path string) {
	fmt.Fprintf(h.stdout, "%s: removed\n", path)
}
