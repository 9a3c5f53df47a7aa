package lasm

import "github.com/waveform-lang/icfl"

// Iden is a surface-level identifier, as written in source.
type Iden string

// Binding is one entry of a let block: "rec? name params* = value".
// A zero-parameter binding is a plain value; one or more parameters
// make it a function definition. Rec permits name to occur free in
// value (and, transitively, in params' bodies) as a recursive call.
type Binding struct {
	Rec    bool
	Name   Iden
	Params []Iden
	Value  *Node
}

// NodeKind tags the variant stored in a Node.
type NodeKind uint8

const (
	NodeLiteral NodeKind = iota
	NodeLet
	NodeVariable
	NodeApply
	NodeUnaryOp
	NodeBinaryOp
	NodeIf
)

// Node is the surface AST produced by Parse. Unlike icfl.Node it
// carries names rather than resolved identifiers; Compile performs
// name resolution and Y-combinator lowering in one pass.
type Node struct {
	Kind NodeKind

	// NodeLiteral
	Value icfl.Value

	// NodeLet
	Bindings []Binding
	Body     *Node

	// NodeVariable
	Name Iden

	// NodeApply
	Fn  *Node
	Arg *Node

	// NodeUnaryOp
	UOp  icfl.UnaryOp
	Operand *Node

	// NodeBinaryOp
	BOp   icfl.BinaryOp
	Left  *Node
	Right *Node

	// NodeIf
	Cond *Node
	Then *Node
	Else *Node
}

// Literal builds a NodeLiteral wrapping v.
func Literal(v icfl.Value) *Node { return &Node{Kind: NodeLiteral, Value: v} }

// Let builds a NodeLet over bindings and body.
func Let(bindings []Binding, body *Node) *Node {
	return &Node{Kind: NodeLet, Bindings: bindings, Body: body}
}

// Variable builds a NodeVariable referencing name.
func Variable(name Iden) *Node { return &Node{Kind: NodeVariable, Name: name} }

// Apply builds a NodeApply of fn to arg.
func Apply(fn, arg *Node) *Node { return &Node{Kind: NodeApply, Fn: fn, Arg: arg} }

// Unary builds a NodeUnaryOp.
func Unary(op icfl.UnaryOp, operand *Node) *Node {
	return &Node{Kind: NodeUnaryOp, UOp: op, Operand: operand}
}

// Binary builds a NodeBinaryOp.
func Binary(op icfl.BinaryOp, left, right *Node) *Node {
	return &Node{Kind: NodeBinaryOp, BOp: op, Left: left, Right: right}
}

// If builds a NodeIf.
func If(cond, then, els *Node) *Node {
	return &Node{Kind: NodeIf, Cond: cond, Then: then, Else: els}
}
