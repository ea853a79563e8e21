// Package ast defines the syntax tree produced by the parser.
//
// Each syntactic category (Def, TypeRef, Expr) is a closed set of node
// types: the category interfaces carry an unexported marker method, so only
// this package can add variants and a type switch over them is exhaustive.
// Every node records the exact source span it was parsed from.
package ast

import "github.com/dhamidi/cae/source"

type Node interface {
	Span() source.Span
}

type Def interface {
	Node
	defNode()
}

type TypeRef interface {
	Node
	typeRefNode()
}

type Expr interface {
	Node
	exprNode()
}

// Root is a whole compilation unit.
type Root struct {
	Defs []Def
	Loc  source.Span
}

func (r *Root) Span() source.Span { return r.Loc }

// NewRoot wraps defs, spanning from the first definition to the last.
func NewRoot(buf *source.Buffer, defs []Def) *Root {
	r := &Root{Defs: defs}
	if len(defs) > 0 {
		r.Loc = defs[0].Span().Union(defs[len(defs)-1].Span())
	} else if buf != nil {
		r.Loc = buf.Span(0, 0)
	}
	return r
}

// Name is one occurrence of an identifier. Two names are equal when their
// text is equal, wherever they occur.
type Name struct {
	Loc source.Span
}

func (n Name) Span() source.Span { return n.Loc }

func (n Name) String() string { return n.Loc.Text() }

func (n Name) Equal(other Name) bool { return n.String() == other.String() }

// Definitions

type GenericArg struct {
	Name   Name
	Bounds []TypeRef
}

type GenericDef struct {
	Name Name
	Args []GenericArg
	Loc  source.Span
}

type ValueDef struct {
	Name Name
	Body Expr
	Loc  source.Span
}

type Field struct {
	Name Name
	Type TypeRef
}

type TypeDef struct {
	Name   Name
	Fields []Field
	Loc    source.Span
}

func (d *GenericDef) Span() source.Span { return d.Loc }
func (d *ValueDef) Span() source.Span   { return d.Loc }
func (d *TypeDef) Span() source.Span    { return d.Loc }

func (*GenericDef) defNode() {}
func (*ValueDef) defNode()   {}
func (*TypeDef) defNode()    {}

// Type references

// NamedType is a type name applied to zero or more type arguments.
type NamedType struct {
	Name Name
	Args []TypeRef
	Loc  source.Span
}

// FunctionType is Arg -> Ret.
type FunctionType struct {
	Arg TypeRef
	Ret TypeRef
	Loc source.Span
}

func (t *NamedType) Span() source.Span    { return t.Loc }
func (t *FunctionType) Span() source.Span { return t.Loc }

func (*NamedType) typeRefNode()    {}
func (*FunctionType) typeRefNode() {}

// Expressions

type SymbolRef struct {
	Name Name
}

// Func is a single-argument function literal. RetType is nil when the
// return type is not written.
type Func struct {
	ArgName Name
	ArgType TypeRef
	RetType TypeRef
	Body    Expr
	Loc     source.Span
}

type Call struct {
	Func Expr
	Arg  Expr
	Loc  source.Span
}

type IfThenElse struct {
	Cond Expr
	Then Expr
	Else Expr
	Loc  source.Span
}

type LetIn struct {
	Defs []*ValueDef
	Body Expr
	Loc  source.Span
}

type Float struct {
	Value float64
	Loc   source.Span
}

type Int struct {
	Value int64
	Loc   source.Span
}

func (e *SymbolRef) Span() source.Span  { return e.Name.Loc }
func (e *Func) Span() source.Span       { return e.Loc }
func (e *Call) Span() source.Span       { return e.Loc }
func (e *IfThenElse) Span() source.Span { return e.Loc }
func (e *LetIn) Span() source.Span      { return e.Loc }
func (e *Float) Span() source.Span      { return e.Loc }
func (e *Int) Span() source.Span        { return e.Loc }

func (*SymbolRef) exprNode()  {}
func (*Func) exprNode()       {}
func (*Call) exprNode()       {}
func (*IfThenElse) exprNode() {}
func (*LetIn) exprNode()      {}
func (*Float) exprNode()      {}
func (*Int) exprNode()        {}

// DefName returns the declared name of any definition.
func DefName(d Def) Name {
	switch d := d.(type) {
	case *GenericDef:
		return d.Name
	case *ValueDef:
		return d.Name
	case *TypeDef:
		return d.Name
	}
	panic("ast: unknown definition type")
}
