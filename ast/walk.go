package ast

import "fmt"

// Children returns the direct children of n in source order. Names are
// included as children of the node that declares or references them.
func Children(n Node) []Node {
	var out []Node
	switch n := n.(type) {
	case *Root:
		for _, d := range n.Defs {
			out = append(out, d)
		}
	case *GenericDef:
		out = append(out, n.Name)
		for _, arg := range n.Args {
			out = append(out, arg.Name)
			for _, b := range arg.Bounds {
				out = append(out, b)
			}
		}
	case *ValueDef:
		out = append(out, n.Name, n.Body)
	case *TypeDef:
		out = append(out, n.Name)
		for _, f := range n.Fields {
			out = append(out, f.Name, f.Type)
		}
	case *NamedType:
		out = append(out, n.Name)
		for _, a := range n.Args {
			out = append(out, a)
		}
	case *FunctionType:
		out = append(out, n.Arg, n.Ret)
	case *SymbolRef:
		out = append(out, n.Name)
	case *Func:
		out = append(out, n.ArgName, n.ArgType)
		if n.RetType != nil {
			out = append(out, n.RetType)
		}
		out = append(out, n.Body)
	case *Call:
		// a |> f stores f before a although a comes first in the source.
		if n.Arg.Span().Start < n.Func.Span().Start {
			out = append(out, n.Arg, n.Func)
		} else {
			out = append(out, n.Func, n.Arg)
		}
	case *IfThenElse:
		out = append(out, n.Cond, n.Then, n.Else)
	case *LetIn:
		for _, d := range n.Defs {
			out = append(out, d)
		}
		out = append(out, n.Body)
	case Name, *Float, *Int:
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", n))
	}
	return out
}

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node depth-first in source order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect calls f for every node of the tree; returning false skips the
// children of that node. As with Walk, f(nil) follows the children of every
// node for which f returned true.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
