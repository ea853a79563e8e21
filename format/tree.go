package format

import (
	"strconv"
	"strings"

	"github.com/dhamidi/cae/ast"
)

// Tree renders a node as a compact, deterministic S-expression such as
// Call(SymbolRef(g), Call(SymbolRef(f), SymbolRef(a))).
func Tree(n ast.Node) string {
	var sb strings.Builder
	writeTree(&sb, n)
	return sb.String()
}

// TreeDefs renders each definition on its own line.
func TreeDefs(defs []ast.Def) string {
	var sb strings.Builder
	for _, d := range defs {
		writeTree(&sb, d)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeTree(sb *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Root:
		sb.WriteString("Root([")
		for i, d := range n.Defs {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeTree(sb, d)
		}
		sb.WriteString("])")

	case *ast.GenericDef:
		sb.WriteString("GenericDef(")
		sb.WriteString(n.Name.String())
		sb.WriteString(", [")
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.Name.String())
			for j, b := range arg.Bounds {
				if j == 0 {
					sb.WriteString(": ")
				} else {
					sb.WriteString(" & ")
				}
				writeTree(sb, b)
			}
		}
		sb.WriteString("])")

	case *ast.ValueDef:
		sb.WriteString("ValueDef(")
		sb.WriteString(n.Name.String())
		sb.WriteString(", ")
		writeTree(sb, n.Body)
		sb.WriteString(")")

	case *ast.TypeDef:
		sb.WriteString("TypeDef(")
		sb.WriteString(n.Name.String())
		sb.WriteString(", [")
		for i, f := range n.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name.String())
			sb.WriteString(": ")
			writeTree(sb, f.Type)
		}
		sb.WriteString("])")

	case *ast.NamedType:
		sb.WriteString("Named(")
		sb.WriteString(n.Name.String())
		if len(n.Args) > 0 {
			sb.WriteString(", [")
			for i, a := range n.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				writeTree(sb, a)
			}
			sb.WriteString("]")
		}
		sb.WriteString(")")

	case *ast.FunctionType:
		sb.WriteString("Function(")
		writeTree(sb, n.Arg)
		sb.WriteString(", ")
		writeTree(sb, n.Ret)
		sb.WriteString(")")

	case *ast.SymbolRef:
		sb.WriteString("SymbolRef(")
		sb.WriteString(n.Name.String())
		sb.WriteString(")")

	case *ast.Func:
		sb.WriteString("Func(")
		sb.WriteString(n.ArgName.String())
		sb.WriteString(", ")
		writeTree(sb, n.ArgType)
		sb.WriteString(", ")
		if n.RetType != nil {
			writeTree(sb, n.RetType)
		} else {
			sb.WriteString("_")
		}
		sb.WriteString(", ")
		writeTree(sb, n.Body)
		sb.WriteString(")")

	case *ast.Call:
		sb.WriteString("Call(")
		writeTree(sb, n.Func)
		sb.WriteString(", ")
		writeTree(sb, n.Arg)
		sb.WriteString(")")

	case *ast.IfThenElse:
		sb.WriteString("IfThenElse(")
		writeTree(sb, n.Cond)
		sb.WriteString(", ")
		writeTree(sb, n.Then)
		sb.WriteString(", ")
		writeTree(sb, n.Else)
		sb.WriteString(")")

	case *ast.LetIn:
		sb.WriteString("LetIn([")
		for i, d := range n.Defs {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeTree(sb, d)
		}
		sb.WriteString("], ")
		writeTree(sb, n.Body)
		sb.WriteString(")")

	case *ast.Float:
		sb.WriteString("Float(")
		sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
		sb.WriteString(")")

	case *ast.Int:
		sb.WriteString("Int(")
		sb.WriteString(strconv.FormatInt(n.Value, 10))
		sb.WriteString(")")

	case ast.Name:
		sb.WriteString(n.String())

	default:
		panic("format: unexpected node type")
	}
}
