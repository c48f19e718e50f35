//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package liketree implements the LikeC typed AST: a tagged-sum
// tree of expressions and statements, owned exclusively by one Tree, whose node types each carry
// their own computed C type and print precedence.
package liketree

import "github.com/likec-project/decompiler/liketype"

// ExpressionKind discriminates the variants of Expression.
type ExpressionKind int

// Expression kinds.
const (
	IntegerConstantExpr ExpressionKind = iota
	VariableIdentifierExpr
	UnaryOperatorExpr
	BinaryOperatorExpr
	TypecastExpr
	MemberAccessExpr
	CallExpr
	UndeclaredIdentifierExpr
)

// UnaryOperatorKind discriminates the variants of UnaryOperator.
type UnaryOperatorKind int

// Unary operator kinds.
const (
	Reference UnaryOperatorKind = iota
	Dereference
	BitwiseNot
	LogicalNot
	Negation
	PrefixIncrement
	PrefixDecrement
)

// BinaryOperatorKind discriminates the variants of BinaryOperator, including comma and array
// subscript, which are modeled as binary operators rather than separate node kinds.
type BinaryOperatorKind int

// Binary operator kinds; their precedences are given by binaryPrecedence in precedence.go.
const (
	Assign BinaryOperatorKind = iota
	Add
	Sub
	Mul
	Div
	Rem
	BitwiseAnd
	LogicalAnd
	BitwiseOr
	LogicalOr
	BitwiseXor
	Shl
	Shr
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq
	Comma
	ArraySubscript
)

// Expression is any LikeC expression node. Every concrete variant embeds exprCommon, so shared
// bookkeeping (parent pointer) is uniform across the sum type.
type Expression interface {
	Kind() ExpressionKind
	Type() *liketype.Type
	// Precedence is a signed-int encoding: |value| is the precedence level, and the sign
	// carries associativity (negative means right-associative), consumed by the printer to
	// decide whether a child needs parentheses.
	Precedence() int

	Parent() TreeNode
	setParent(TreeNode)
}

// TreeNode is the common supertype of every node the printer and range tree need a parent pointer
// for: expressions and statements alike.
type TreeNode interface {
	setParent(TreeNode)
}

type exprCommon struct {
	parent TreeNode
}

func (c *exprCommon) Parent() TreeNode     { return c.parent }
func (c *exprCommon) setParent(p TreeNode) { c.parent = p }

// IntegerConstant is a literal integer value of a known type.
type IntegerConstant struct {
	exprCommon
	value uint64
	typ   *liketype.Type
}

// NewIntegerConstant builds an integer literal of the given type.
func NewIntegerConstant(value uint64, typ *liketype.Type) *IntegerConstant {
	return &IntegerConstant{value: value, typ: typ}
}

func (n *IntegerConstant) Kind() ExpressionKind  { return IntegerConstantExpr }
func (n *IntegerConstant) Type() *liketype.Type  { return n.typ }
func (n *IntegerConstant) Precedence() int       { return 1 }
func (n *IntegerConstant) Value() uint64         { return n.value }
func (n *IntegerConstant) SetValue(value uint64) { n.value = value }

// VariableIdentifier refers to a declared local variable or parameter.
type VariableIdentifier struct {
	exprCommon
	Name string
	typ  *liketype.Type
}

// NewVariableIdentifier builds a reference to a variable of the given type.
func NewVariableIdentifier(name string, typ *liketype.Type) *VariableIdentifier {
	return &VariableIdentifier{Name: name, typ: typ}
}

func (n *VariableIdentifier) Kind() ExpressionKind { return VariableIdentifierExpr }
func (n *VariableIdentifier) Type() *liketype.Type { return n.typ }
func (n *VariableIdentifier) Precedence() int      { return 1 }

// UndeclaredIdentifier is a raw machine-level name (a register, say) the tree builder emits when
// no higher-level variable has been recovered for it yet.
type UndeclaredIdentifier struct {
	exprCommon
	Name string
	typ  *liketype.Type
}

// NewUndeclaredIdentifier builds a raw-name reference of the given type.
func NewUndeclaredIdentifier(name string, typ *liketype.Type) *UndeclaredIdentifier {
	return &UndeclaredIdentifier{Name: name, typ: typ}
}

func (n *UndeclaredIdentifier) Kind() ExpressionKind { return UndeclaredIdentifierExpr }
func (n *UndeclaredIdentifier) Type() *liketype.Type { return n.typ }
func (n *UndeclaredIdentifier) Precedence() int      { return 1 }

// UnaryOperator applies a prefix unary operator to its operand.
type UnaryOperator struct {
	exprCommon
	OperatorKind UnaryOperatorKind
	Operand      Expression
	tree         *Tree
}

func (t *Tree) NewUnaryOperator(kind UnaryOperatorKind, operand Expression) *UnaryOperator {
	n := &UnaryOperator{OperatorKind: kind, Operand: operand, tree: t}
	operand.setParent(n)
	return n
}

func (n *UnaryOperator) Kind() ExpressionKind { return UnaryOperatorExpr }

func (n *UnaryOperator) Type() *liketype.Type {
	return n.tree.unaryOperatorType(n.OperatorKind, n.Operand.Type())
}

// Precedence returns -3 for every unary operator kind: all of C's prefix unary operators share
// precedence level 3 and are right-associative, encoded as a negative sign (see precedence.go).
func (n *UnaryOperator) Precedence() int {
	switch n.OperatorKind {
	case PrefixIncrement, PrefixDecrement, Reference, Dereference, BitwiseNot, LogicalNot, Negation:
		return -3
	default:
		return -3
	}
}

// SetOperand replaces n's operand, the way the simplifier relinks a rewritten subtree back into
// its parent without reconstructing the whole UnaryOperator.
func (n *UnaryOperator) SetOperand(e Expression) {
	n.Operand = e
	e.setParent(n)
}

// BinaryOperator applies an infix binary operator to its two operands.
type BinaryOperator struct {
	exprCommon
	OperatorKind BinaryOperatorKind
	Left, Right  Expression
	tree         *Tree
}

func (t *Tree) NewBinaryOperator(kind BinaryOperatorKind, left, right Expression) *BinaryOperator {
	n := &BinaryOperator{OperatorKind: kind, Left: left, Right: right, tree: t}
	left.setParent(n)
	right.setParent(n)
	return n
}

func (n *BinaryOperator) Kind() ExpressionKind { return BinaryOperatorExpr }

func (n *BinaryOperator) Type() *liketype.Type {
	return n.tree.binaryOperatorType(n.OperatorKind, n.Left.Type(), n.Right.Type())
}

func (n *BinaryOperator) Precedence() int { return binaryPrecedence(n.OperatorKind) }

// SetLeft and SetRight replace one operand, the way the simplifier relinks a rewritten subtree
// back into its parent without reconstructing the whole BinaryOperator.
func (n *BinaryOperator) SetLeft(e Expression)  { n.Left = e; e.setParent(n) }
func (n *BinaryOperator) SetRight(e Expression) { n.Right = e; e.setParent(n) }

// CastStyle discriminates how a Typecast renders: C-style by default, or explicitly as
// static_cast/reinterpret_cast when the tree builder wants that distinction visible.
type CastStyle int

// Cast styles.
const (
	CStyleCast CastStyle = iota
	StaticCast
	ReinterpretCast
)

// Typecast makes an explicit conversion to Type visible in the printed output.
type Typecast struct {
	exprCommon
	ToType  *liketype.Type
	Operand Expression
	Style   CastStyle
}

// NewTypecast builds a C-style typecast. Use NewTypecastStyle for static_cast/reinterpret_cast.
func NewTypecast(toType *liketype.Type, operand Expression) *Typecast {
	return NewTypecastStyle(toType, operand, CStyleCast)
}

// NewTypecastStyle builds a typecast rendered in the given style.
func NewTypecastStyle(toType *liketype.Type, operand Expression, style CastStyle) *Typecast {
	n := &Typecast{ToType: toType, Operand: operand, Style: style}
	operand.setParent(n)
	return n
}

func (n *Typecast) Kind() ExpressionKind { return TypecastExpr }
func (n *Typecast) Type() *liketype.Type { return n.ToType }
func (n *Typecast) Precedence() int      { return 3 }
// SetOperand replaces n's operand, the way the simplifier relinks a rewritten subtree back into
// its parent without reconstructing the whole Typecast.
func (n *Typecast) SetOperand(e Expression) {
	n.Operand = e
	e.setParent(n)
}

// MemberAccessOperator is a struct member access, always through an arrow in LikeC's rendering
// convention.
type MemberAccessOperator struct {
	exprCommon
	Struct Expression
	Member *liketype.MemberDeclaration
}

func NewMemberAccessOperator(structExpr Expression, member *liketype.MemberDeclaration) *MemberAccessOperator {
	n := &MemberAccessOperator{Struct: structExpr, Member: member}
	structExpr.setParent(n)
	return n
}

func (n *MemberAccessOperator) Kind() ExpressionKind { return MemberAccessExpr }
func (n *MemberAccessOperator) Type() *liketype.Type { return n.Member.Type }
func (n *MemberAccessOperator) Precedence() int      { return 2 }

// SetStruct replaces the expression n accesses a member through.
func (n *MemberAccessOperator) SetStruct(e Expression) {
	n.Struct = e
	e.setParent(n)
}

// CallOperator calls a function pointer with a list of argument expressions.
type CallOperator struct {
	exprCommon
	Callee Expression
	Args   []Expression
}

func NewCallOperator(callee Expression, args []Expression) *CallOperator {
	n := &CallOperator{Callee: callee, Args: args}
	callee.setParent(n)
	for _, a := range args {
		a.setParent(n)
	}
	return n
}

func (n *CallOperator) Kind() ExpressionKind { return CallExpr }

func (n *CallOperator) Type() *liketype.Type {
	if n.Callee.Type() == nil || n.Callee.Type().Kind() != liketype.FunctionPointer {
		return nil
	}
	return n.Callee.Type().ReturnType()
}

func (n *CallOperator) Precedence() int { return 2 }

// SetCallee replaces the expression n calls through.
func (n *CallOperator) SetCallee(e Expression) {
	n.Callee = e
	e.setParent(n)
}

// SetArg replaces the argument at index i.
func (n *CallOperator) SetArg(i int, e Expression) {
	n.Args[i] = e
	e.setParent(n)
}

// Symbol returns the C source text for a binary operator, used by the printer and never by
// typecalc.go.
func (k BinaryOperatorKind) Symbol() string {
	switch k {
	case Assign:
		return "="
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Rem:
		return "%"
	case BitwiseAnd:
		return "&"
	case LogicalAnd:
		return "&&"
	case BitwiseOr:
		return "|"
	case LogicalOr:
		return "||"
	case BitwiseXor:
		return "^"
	case Shl:
		return "<<"
	case Shr:
		return ">>"
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Leq:
		return "<="
	case Gt:
		return ">"
	case Geq:
		return ">="
	case Comma:
		return ","
	default:
		return "?"
	}
}

// Symbol returns the C source text for a unary operator's prefix. LikeC always prints increment
// and decrement prefix, never postfix.
func (k UnaryOperatorKind) Symbol() string {
	switch k {
	case Reference:
		return "&"
	case Dereference:
		return "*"
	case BitwiseNot:
		return "~"
	case LogicalNot:
		return "!"
	case Negation:
		return "-"
	case PrefixIncrement:
		return "++"
	case PrefixDecrement:
		return "--"
	default:
		return "?"
	}
}
