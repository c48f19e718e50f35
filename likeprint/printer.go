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

package likeprint

import (
	"fmt"
	"strings"

	"github.com/likec-project/decompiler/liketree"
)

// printer walks a liketree.Tree, appending its C-like rendering to an internal buffer and
// recording, via rangeBuilder, the printed byte range of every node it visits. Printing and
// range-tree construction happen in the same pass rather than as two separate walks.
type printer struct {
	buf        strings.Builder
	indent     int
	indentSize int
	rb         rangeBuilder
}

// Print renders fn as C-like source text and returns it together with a RangeTree mapping every
// printed AST node to the byte range of text it produced. The RangeTree's root carries nil Data
// and spans the whole text, signature included, so every node's range is a position in the
// returned text.
func Print(fn *liketree.FunctionDefinition) (string, *RangeTree) {
	p := &printer{indentSize: 4}
	p.rb.onStart(nil, p.pos())
	p.printFunction(fn)
	p.rb.onEnd(nil, p.pos())
	return p.buf.String(), p.rb.finish()
}

func (p *printer) pos() int { return p.buf.Len() }

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) writeIndent() {
	p.buf.WriteString(strings.Repeat(" ", p.indent))
}

func (p *printer) indentMore() { p.indent += p.indentSize }
func (p *printer) indentLess() { p.indent -= p.indentSize }

// enter/leave bracket every node's printed text with a RangeTree push/pop, mirroring
// RangeTreeBuilder::onStart/onEnd.
func (p *printer) enter(data liketree.TreeNode) { p.rb.onStart(data, p.pos()) }
func (p *printer) leave(data liketree.TreeNode) { p.rb.onEnd(data, p.pos()) }

func (p *printer) printFunction(fn *liketree.FunctionDefinition) {
	p.write(typeName(fn.ReturnType))
	p.write(" ")
	p.write(fn.Name)
	p.write("(")
	for i, param := range fn.Params {
		if i > 0 {
			p.write(", ")
		}
		p.write(typeName(param.Type))
		p.write(" ")
		p.write(param.Name)
	}
	p.write(")\n")
	for _, local := range fn.Locals {
		p.writeIndent()
		p.write(typeName(local.Type))
		p.write(" ")
		p.write(local.Name)
		p.write(";\n")
	}
	if fn.Body != nil {
		p.printStatement(fn.Body)
	}
}

func (p *printer) printStatement(s liketree.Statement) {
	p.enter(s)
	defer p.leave(s)

	switch n := s.(type) {
	case *liketree.Block:
		p.writeIndent()
		p.write("{\n")
		p.indentMore()
		for _, child := range n.Statements {
			p.printStatement(child)
		}
		p.indentLess()
		p.writeIndent()
		p.write("}\n")

	case *liketree.ExpressionStatement:
		p.writeIndent()
		p.printExpression(n.Expr, 17, false)
		p.write(";\n")

	case *liketree.If:
		p.writeIndent()
		p.write("if (")
		p.printExpression(n.Condition, 17, false)
		p.write(")\n")
		p.printStatement(n.Then)
		if n.Else != nil {
			p.writeIndent()
			p.write("else\n")
			p.printStatement(n.Else)
		}

	case *liketree.While:
		p.writeIndent()
		p.write("while (")
		p.printExpression(n.Condition, 17, false)
		p.write(")\n")
		p.printStatement(n.Body)

	case *liketree.DoWhile:
		p.writeIndent()
		p.write("do\n")
		p.printStatement(n.Body)
		p.writeIndent()
		p.write("while (")
		p.printExpression(n.Condition, 17, false)
		p.write(");\n")

	case *liketree.Switch:
		p.writeIndent()
		p.write("switch (")
		p.printExpression(n.Expr, 17, false)
		p.write(") {\n")
		p.indentMore()
		for _, c := range n.Cases {
			p.writeIndent()
			if c.Value == nil {
				p.write("default:\n")
			} else {
				p.write(fmt.Sprintf("case %d:\n", *c.Value))
			}
			p.indentMore()
			p.printStatement(c.Body)
			p.indentLess()
		}
		p.indentLess()
		p.writeIndent()
		p.write("}\n")

	case *liketree.Return:
		p.writeIndent()
		p.write("return")
		if n.Value != nil {
			p.write(" ")
			p.printExpression(n.Value, 17, false)
		}
		p.write(";\n")

	case *liketree.Goto:
		p.writeIndent()
		p.write("goto ")
		p.write(n.Label)
		p.write(";\n")

	case *liketree.LabelStatement:
		p.write(n.Label)
		p.write(":\n")

	case *liketree.CommentStatement:
		p.writeIndent()
		p.write("/* ")
		p.write(n.Text)
		p.write(" */\n")
	}
}

// printExpression prints e, wrapping it in parentheses when parentPrecedence/isRightOperand (the
// enclosing operator's own precedence and which side e occupies) demand it.
func (p *printer) printExpression(e liketree.Expression, parentPrecedence int, isRightOperand bool) {
	p.enter(e)
	defer p.leave(e)

	parens := liketree.NeedsParensAt(parentPrecedence, e, isRightOperand)
	if parens {
		p.write("(")
	}

	switch n := e.(type) {
	case *liketree.IntegerConstant:
		p.write(formatIntegerConstant(n))

	case *liketree.VariableIdentifier:
		p.write(n.Name)

	case *liketree.UndeclaredIdentifier:
		p.write(n.Name)

	case *liketree.UnaryOperator:
		p.write(n.OperatorKind.Symbol())
		p.printExpression(n.Operand, n.Precedence(), false)

	case *liketree.BinaryOperator:
		if n.OperatorKind == liketree.ArraySubscript {
			p.printExpression(n.Left, n.Precedence(), false)
			p.write("[")
			p.printExpression(n.Right, 17, false)
			p.write("]")
		} else {
			p.printExpression(n.Left, n.Precedence(), false)
			p.write(" ")
			p.write(n.OperatorKind.Symbol())
			p.write(" ")
			p.printExpression(n.Right, n.Precedence(), true)
		}

	case *liketree.Typecast:
		switch n.Style {
		case liketree.StaticCast:
			p.write("static_cast<")
			p.write(typeName(n.ToType))
			p.write(">(")
			p.printExpression(n.Operand, 17, false)
			p.write(")")
		case liketree.ReinterpretCast:
			p.write("reinterpret_cast<")
			p.write(typeName(n.ToType))
			p.write(">(")
			p.printExpression(n.Operand, 17, false)
			p.write(")")
		default:
			p.write("(")
			p.write(typeName(n.ToType))
			p.write(")")
			p.printExpression(n.Operand, n.Precedence(), false)
		}

	case *liketree.MemberAccessOperator:
		p.printExpression(n.Struct, n.Precedence(), false)
		p.write("->")
		p.write(n.Member.Name)

	case *liketree.CallOperator:
		p.printExpression(n.Callee, n.Precedence(), false)
		p.write("(")
		for i, arg := range n.Args {
			if i > 0 {
				p.write(", ")
			}
			p.printExpression(arg, 17, false)
		}
		p.write(")")
	}

	if parens {
		p.write(")")
	}
}
