package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/cae/config"
	"github.com/dhamidi/cae/diag"
	"github.com/dhamidi/cae/frontend"
)

const version = "0.1.0"

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	verbose    int
	logPath    string
	cfg        *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "cae",
		Short:   "Front end tools for the cae language",
		Version: version,

		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var logPath *string
			if opts.logPath != "" {
				logPath = &opts.logPath
			}
			commonlog.Configure(opts.verbose, logPath)

			// A file named on the command line must exist; a located one may not.
			load := config.Load
			path := opts.configPath
			if path == "" {
				path = config.Locate()
				load = config.LoadOrDefault
			}
			if path == "" {
				opts.cfg = config.Default()
				return nil
			}
			cfg, err := load(path)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file (default $CAE_CONFIG or ./cae.toml)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&opts.logPath, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newTokensCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newGrammarCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))

	return rootCmd
}

// newRenderer returns a diagnostic renderer for w, colored as configured.
func (o *rootOptions) newRenderer(w io.Writer) *diag.Renderer {
	return diag.NewRenderer(w, diag.WithColor(o.cfg.Output.Color.Enabled(isTerminal(w))))
}

// reportErrors renders the diagnostics of r and returns an error if there
// were any, so that the command exits with status 1.
func (o *rootOptions) reportErrors(w io.Writer, results ...*frontend.Result) error {
	var ds []diag.Diagnostic
	for _, r := range results {
		ds = append(ds, r.Diagnostics()...)
	}
	if len(ds) == 0 {
		return nil
	}
	if err := o.newRenderer(w).RenderAll(ds); err != nil {
		return fmt.Errorf("render diagnostics: %w", err)
	}
	return errorCount(len(ds))
}

func errorCount(n int) error {
	if n == 1 {
		return fmt.Errorf("1 error")
	}
	return fmt.Errorf("%d errors", n)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
