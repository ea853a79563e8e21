package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/cae/diag"
	"github.com/dhamidi/cae/source"
)

func toProtocolDiagnostic(uri protocol.DocumentUri, d diag.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	src := lsName + " " + string(d.Stage)
	pd := protocol.Diagnostic{
		Range:    toRange(d.Span),
		Severity: &severity,
		Source:   &src,
		Message:  d.Message,
	}
	for _, c := range d.Context {
		pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{URI: uri, Range: toRange(c.Span)},
			Message:  "while parsing this " + c.Name,
		})
	}
	return pd
}

func toRange(span source.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(span, span.Start),
		End:   toPosition(span, span.End),
	}
}

// toPosition converts a byte offset to a zero-based line and a column in
// UTF-16 code units, as the protocol counts them.
func toPosition(span source.Span, offset int) protocol.Position {
	buf := span.Buffer()
	if buf == nil {
		return protocol.Position{}
	}
	pos := buf.Position(offset)
	line := buf.Line(pos.Line)
	col := pos.Column - 1
	if col > len(line) {
		col = len(line)
	}
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(utf16Len(line[:col])),
	}
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		n += utf16.RuneLen(r)
	}
	return n
}
