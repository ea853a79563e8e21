package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/cae/source"
)

// Renderer prints diagnostics with the offending source line and a caret
// underline:
//
//	error[parser]: found ';', expected one of 'let', 'if', ...
//	 --> main.cae:1:5
//	  |
//	1 | x = ;
//	  |     ^
//	  = while parsing this value definition at main.cae:1:1
type Renderer struct {
	w     io.Writer
	color bool
}

type RendererOption func(*Renderer)

// WithColor turns ANSI colors on or off. Colors are off by default.
func WithColor(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.color = enabled
	}
}

func NewRenderer(w io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{w: w}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderAll renders ds in order, separated by blank lines.
func (r *Renderer) RenderAll(ds []Diagnostic) error {
	for i, d := range ds {
		if i > 0 {
			if _, err := fmt.Fprintln(r.w); err != nil {
				return err
			}
		}
		if err := r.Render(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) Render(d Diagnostic) error {
	var sb strings.Builder
	sb.WriteString(r.paint(fmt.Sprintf("error[%s]", d.Stage), color.FgRed, color.Bold))
	sb.WriteString(r.paint(": "+d.Message, color.Bold))
	sb.WriteByte('\n')

	buf := d.Span.Buffer()
	if buf == nil {
		_, err := io.WriteString(r.w, sb.String())
		return err
	}

	pos := d.Span.StartPos()
	gutter := len(fmt.Sprint(pos.Line))
	pad := strings.Repeat(" ", gutter)
	bar := r.paint("|", color.FgBlue, color.Bold)

	fmt.Fprintf(&sb, "%s%s %s\n", pad, r.paint("-->", color.FgBlue, color.Bold), pos)
	fmt.Fprintf(&sb, "%s %s\n", pad, bar)
	line := buf.Line(pos.Line)
	fmt.Fprintf(&sb, "%s %s %s\n", r.paint(fmt.Sprint(pos.Line), color.FgBlue, color.Bold), bar, line)
	fmt.Fprintf(&sb, "%s %s %s\n", pad, bar, r.paint(underline(line, pos.Column, d.Span), color.FgRed, color.Bold))

	for _, c := range d.Context {
		fmt.Fprintf(&sb, "%s %s while parsing this %s at %s\n", pad, r.paint("=", color.FgBlue, color.Bold), c.Name, c.Span)
	}

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// underline places carets under the part of line covered by span, which
// starts at the 1-based byte column col. Tabs before the span are kept so the
// carets line up in a terminal. An empty span gets a single caret.
func underline(line string, col int, span source.Span) string {
	start := col - 1
	if start > len(line) {
		start = len(line)
	}
	var sb strings.Builder
	for _, c := range line[:start] {
		if c == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	n := span.Len()
	if rest := len(line) - start; n > rest {
		n = rest
	}
	if n < 1 {
		n = 1
	}
	sb.WriteString(strings.Repeat("^", n))
	return sb.String()
}

func (r *Renderer) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if r.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}
