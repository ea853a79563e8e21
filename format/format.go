package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/cae/ast"
)

// Encoder writes a syntax tree in some serialization.
type Encoder interface {
	encoding.TextMarshaler
	Encode(root *ast.Root) error
}

// NewEncoder returns the encoder for the named format: "json", "yaml" or
// "lines".
// The tree format has no encoder; use Tree.
func NewEncoder(name string, w io.Writer) (Encoder, bool) {
	switch name {
	case "json":
		return NewASTJSONEncoder(w), true
	case "yaml":
		return NewASTYAMLEncoder(w), true
	case "lines":
		return NewLineEncoder(w), true
	}
	return nil, false
}
