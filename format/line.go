package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cae/ast"
)

// LineEncoder writes an outline of the definitions, one tab-separated line
// each: kind, name, detail and position. The fields of a type definition
// follow it on lines of their own.
//
//	value	x	-	main.cae:1:1
//	value	id	a :A -> :A	main.cae:2:1
//	type	Point	-	main.cae:3:1
//	field	x	:Int64	main.cae:3:9
//	field	y	:Int64	main.cae:3:18
type LineEncoder struct {
	w    io.Writer
	root *ast.Root
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(root *ast.Root) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.root == nil {
		return nil, nil
	}

	for _, def := range e.root.Defs {
		switch d := def.(type) {
		case *ast.GenericDef:
			fmt.Fprintf(&sb, "generic\t%s\t%s\t%s\n", d.Name, genericArgsStr(d.Args), d.Loc)
		case *ast.ValueDef:
			fmt.Fprintf(&sb, "value\t%s\t%s\t%s\n", d.Name, signatureStr(d.Body), d.Loc)
		case *ast.TypeDef:
			fmt.Fprintf(&sb, "type\t%s\t-\t%s\n", d.Name, d.Loc)
			for _, f := range d.Fields {
				fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n", f.Name, TypeRefString(f.Type), f.Name.Loc)
			}
		}
	}

	return []byte(sb.String()), nil
}

func genericArgsStr(args []ast.GenericArg) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		s := arg.Name.String()
		for j, b := range arg.Bounds {
			if j == 0 {
				s += " " + TypeRefString(b)
			} else {
				s += " & " + TypeRefString(b)
			}
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

// signatureStr describes the parameter of a function value, or "-".
func signatureStr(body ast.Expr) string {
	fn, ok := body.(*ast.Func)
	if !ok {
		return "-"
	}
	s := fn.ArgName.String() + " " + TypeRefString(fn.ArgType) + " ->"
	if fn.RetType != nil {
		s += " " + TypeRefString(fn.RetType)
	}
	return s
}

// TypeRefString renders a type reference in source syntax, with the leading
// colon: ":Int", ":(List a -> b)".
func TypeRefString(t ast.TypeRef) string {
	if n, ok := t.(*ast.NamedType); ok && len(n.Args) == 0 {
		return ":" + n.Name.String()
	}
	return ":(" + innerTypeString(t) + ")"
}

func innerTypeString(t ast.TypeRef) string {
	switch t := t.(type) {
	case *ast.NamedType:
		s := t.Name.String()
		for i, a := range t.Args {
			s += " " + operandTypeString(a, i == len(t.Args)-1)
		}
		return s
	case *ast.FunctionType:
		arg := innerTypeString(t.Arg)
		if _, ok := t.Arg.(*ast.FunctionType); ok {
			arg = "(" + arg + ")"
		}
		return arg + " -> " + innerTypeString(t.Ret)
	}
	panic(fmt.Sprintf("format: unexpected type reference %T", t))
}

// operandTypeString renders a type argument. A bare name is left
// unparenthesized only in last position, since a name takes every
// argument that follows it.
func operandTypeString(t ast.TypeRef, last bool) string {
	if n, ok := t.(*ast.NamedType); ok && len(n.Args) == 0 && last {
		return n.Name.String()
	}
	return "(" + innerTypeString(t) + ")"
}
