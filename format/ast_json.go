package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dhamidi/cae/ast"
	"github.com/dhamidi/cae/source"
)

type ASTJSONEncoder struct {
	w    io.Writer
	root *ast.Root
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(root *ast.Root) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	if e.root == nil {
		return []byte("null"), nil
	}
	return json.MarshalIndent(Document(e.root), "", "  ")
}

// DocumentNode is the serialized form of a syntax tree node shared by the
// JSON and YAML encoders.
type DocumentNode struct {
	Kind     string          `json:"kind" yaml:"kind"`
	Role     string          `json:"role,omitempty" yaml:"role,omitempty"`
	Span     *DocumentSpan   `json:"span,omitempty" yaml:"span,omitempty"`
	Text     string          `json:"text,omitempty" yaml:"text,omitempty"`
	Children []*DocumentNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type DocumentSpan struct {
	Start DocumentPosition `json:"start" yaml:"start"`
	End   DocumentPosition `json:"end" yaml:"end"`
}

type DocumentPosition struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Document converts n and its descendants to DocumentNodes. Children are
// listed in source order; Role tells apart children that can be absent or
// that appear out of field order, such as the operands of a pipe.
func Document(n ast.Node) *DocumentNode {
	d := &DocumentNode{Kind: kindOf(n), Span: documentSpan(n.Span())}
	add := func(role string, child ast.Node) {
		c := Document(child)
		c.Role = role
		d.Children = append(d.Children, c)
	}

	switch n := n.(type) {
	case *ast.Root:
		for _, def := range n.Defs {
			add("", def)
		}
	case *ast.GenericDef:
		add("name", n.Name)
		for _, arg := range n.Args {
			d.Children = append(d.Children, genericArgDocument(arg))
		}
	case *ast.ValueDef:
		add("name", n.Name)
		add("body", n.Body)
	case *ast.TypeDef:
		add("name", n.Name)
		for _, f := range n.Fields {
			field := &DocumentNode{
				Kind: "Field",
				Role: "field",
				Span: documentSpan(f.Name.Span().Union(f.Type.Span())),
			}
			field.Children = []*DocumentNode{withRole(Document(f.Name), "name"), withRole(Document(f.Type), "type")}
			d.Children = append(d.Children, field)
		}
	case *ast.NamedType:
		add("name", n.Name)
		for _, a := range n.Args {
			add("arg", a)
		}
	case *ast.FunctionType:
		add("arg", n.Arg)
		add("ret", n.Ret)
	case *ast.SymbolRef:
		d.Text = n.Name.String()
	case *ast.Func:
		add("arg_name", n.ArgName)
		add("arg_type", n.ArgType)
		if n.RetType != nil {
			add("ret_type", n.RetType)
		}
		add("body", n.Body)
	case *ast.Call:
		for _, child := range ast.Children(n) {
			role := "arg"
			if child == n.Func {
				role = "func"
			}
			add(role, child)
		}
	case *ast.IfThenElse:
		add("cond", n.Cond)
		add("then", n.Then)
		add("else", n.Else)
	case *ast.LetIn:
		for _, def := range n.Defs {
			add("def", def)
		}
		add("body", n.Body)
	case *ast.Float:
		d.Text = strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *ast.Int:
		d.Text = strconv.FormatInt(n.Value, 10)
	case ast.Name:
		d.Text = n.String()
	default:
		panic(fmt.Sprintf("format: unexpected node type %T", n))
	}
	return d
}

func genericArgDocument(arg ast.GenericArg) *DocumentNode {
	loc := arg.Name.Span()
	if len(arg.Bounds) > 0 {
		loc = loc.Union(arg.Bounds[len(arg.Bounds)-1].Span())
	}
	d := &DocumentNode{Kind: "GenericArg", Role: "arg", Span: documentSpan(loc)}
	d.Children = append(d.Children, withRole(Document(arg.Name), "name"))
	for _, b := range arg.Bounds {
		d.Children = append(d.Children, withRole(Document(b), "bound"))
	}
	return d
}

func withRole(d *DocumentNode, role string) *DocumentNode {
	d.Role = role
	return d
}

func documentSpan(s source.Span) *DocumentSpan {
	if s.Buffer() == nil {
		return nil
	}
	start, end := s.StartPos(), s.EndPos()
	return &DocumentSpan{
		Start: DocumentPosition{Offset: start.Offset, Line: start.Line, Column: start.Column},
		End:   DocumentPosition{Offset: end.Offset, Line: end.Line, Column: end.Column},
	}
}

func kindOf(n ast.Node) string {
	switch n.(type) {
	case *ast.Root:
		return "Root"
	case *ast.GenericDef:
		return "GenericDef"
	case *ast.ValueDef:
		return "ValueDef"
	case *ast.TypeDef:
		return "TypeDef"
	case *ast.NamedType:
		return "NamedType"
	case *ast.FunctionType:
		return "FunctionType"
	case *ast.SymbolRef:
		return "SymbolRef"
	case *ast.Func:
		return "Func"
	case *ast.Call:
		return "Call"
	case *ast.IfThenElse:
		return "IfThenElse"
	case *ast.LetIn:
		return "LetIn"
	case *ast.Float:
		return "Float"
	case *ast.Int:
		return "Int"
	case ast.Name:
		return "Name"
	}
	panic(fmt.Sprintf("format: unexpected node type %T", n))
}
