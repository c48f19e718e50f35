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

package liketree

import "github.com/likec-project/decompiler/liketype"

// binaryOperatorType computes a BinaryOperator's result type from its (already-typed) operands,
// following the C rules for each operator kind.
func (t *Tree) binaryOperatorType(kind BinaryOperatorKind, left, right *liketype.Type) *liketype.Type {
	tb := t.types
	if left == nil || right == nil || left.Kind() == liketype.Erroneous || right.Kind() == liketype.Erroneous {
		return tb.Erroneous()
	}

	switch kind {
	case Assign:
		return left

	case Add:
		switch {
		case left.IsPointer() && right.IsInteger():
			return left
		case right.IsPointer() && left.IsInteger():
			return right
		case left.IsArithmetic() && right.IsArithmetic():
			return tb.UsualArithmeticConversion(left, right)
		default:
			return tb.Erroneous()
		}

	case Sub:
		switch {
		case left.IsPointer() && right.IsPointer():
			return tb.Integer(t.ptrdiffSize, false)
		case left.IsPointer() && right.IsInteger():
			return left
		case left.IsArithmetic() && right.IsArithmetic():
			return tb.UsualArithmeticConversion(left, right)
		default:
			return tb.Erroneous()
		}

	case Mul, Div:
		if left.IsArithmetic() && right.IsArithmetic() {
			return tb.UsualArithmeticConversion(left, right)
		}
		return tb.Erroneous()

	case Rem, BitwiseAnd, BitwiseOr, BitwiseXor:
		if left.IsInteger() && right.IsInteger() {
			return tb.UsualArithmeticConversion(left, right)
		}
		return tb.Erroneous()

	case LogicalAnd, LogicalOr:
		if left.IsScalar() && right.IsScalar() {
			return t.IntType()
		}
		return tb.Erroneous()

	case Shl, Shr:
		if left.IsInteger() && right.IsInteger() {
			return tb.PromoteInteger(left, t.intSize)
		}
		return tb.Erroneous()

	case Eq, Neq, Lt, Leq, Gt, Geq:
		if left.IsScalar() && right.IsScalar() {
			return t.IntType()
		}
		return tb.Erroneous()

	case Comma:
		return right

	case ArraySubscript:
		base := t.binaryOperatorType(Add, left, right)
		if base.Kind() == liketype.Erroneous {
			return base
		}
		if pointee := base.Pointee(); pointee != nil {
			return pointee
		}
		return tb.Erroneous()

	default:
		return tb.Erroneous()
	}
}

// unaryOperatorType computes a UnaryOperator's result type from its operand's type.
func (t *Tree) unaryOperatorType(kind UnaryOperatorKind, operand *liketype.Type) *liketype.Type {
	tb := t.types
	if operand == nil || operand.Kind() == liketype.Erroneous {
		return tb.Erroneous()
	}

	switch kind {
	case Reference:
		return tb.Pointer(t.pointerSize, operand)
	case Dereference:
		if pointee := operand.Pointee(); operand.IsPointer() && pointee != nil {
			return pointee
		}
		return tb.Erroneous()
	case BitwiseNot:
		if operand.IsInteger() {
			return tb.PromoteInteger(operand, t.intSize)
		}
		return tb.Erroneous()
	case LogicalNot:
		if operand.IsScalar() {
			return t.IntType()
		}
		return tb.Erroneous()
	case Negation:
		if operand.IsArithmetic() {
			if operand.IsInteger() {
				return tb.PromoteInteger(operand, t.intSize)
			}
			return operand
		}
		return tb.Erroneous()
	case PrefixIncrement, PrefixDecrement:
		if operand.IsScalar() {
			return operand
		}
		return tb.Erroneous()
	default:
		return tb.Erroneous()
	}
}
