package format

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/cae/ast"
)

// ASTYAMLEncoder writes the same document as ASTJSONEncoder as YAML.
type ASTYAMLEncoder struct {
	w    io.Writer
	root *ast.Root
}

func NewASTYAMLEncoder(w io.Writer) *ASTYAMLEncoder {
	return &ASTYAMLEncoder{w: w}
}

func (e *ASTYAMLEncoder) Encode(root *ast.Root) error {
	e.root = root
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(e.document()); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func (e *ASTYAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(e.document())
}

func (e *ASTYAMLEncoder) document() *DocumentNode {
	if e.root == nil {
		return nil
	}
	return Document(e.root)
}
