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

// binaryPrecedence returns the operator's C precedence level, encoded with a signed convention:
// a negative value marks a right-associative operator.
func binaryPrecedence(kind BinaryOperatorKind) int {
	switch kind {
	case ArraySubscript:
		return 2
	case Mul, Div, Rem:
		return 5
	case Add, Sub:
		return 6
	case Shl, Shr:
		return 7
	case Lt, Leq, Gt, Geq:
		return 8
	case Eq, Neq:
		return 9
	case BitwiseAnd:
		return 10
	case BitwiseXor:
		return 11
	case BitwiseOr:
		return 12
	case LogicalAnd:
		return 13
	case LogicalOr:
		return 14
	case Assign:
		return -16
	case Comma:
		return 17
	default:
		return 17
	}
}

// absPrecedence strips the associativity sign, yielding the bare level used for
// higher-binds-tighter comparisons.
func absPrecedence(p int) int {
	if p < 0 {
		return -p
	}
	return p
}

// NeedsParens reports whether child, printed as parent's left or right operand, needs wrapping in
// parentheses to preserve its grouping. It is the
// printer's only hook into the precedence table; BinaryOperator (for Assign) and UnaryOperator
// are the Expressions whose Precedence carries associativity information (a negative value), but any Expression kind may
// appear as parent or child here, e.g. a Typecast operand that is itself a BinaryOperator.
func NeedsParens(parent Expression, child Expression, isRightOperand bool) bool {
	return needsParens(parent.Precedence(), child.Precedence(), isRightOperand)
}

// NeedsParensAt is NeedsParens for call sites that only have the enclosing operator's bare
// precedence number on hand (a statement printing its top-level expression, say, which has no
// enclosing operator at all and so passes COMMA's precedence, the loosest in the table).
func NeedsParensAt(parentPrecedence int, child Expression, isRightOperand bool) bool {
	return needsParens(parentPrecedence, child.Precedence(), isRightOperand)
}

// needsParens decides whether a child expression printed at the given side of a parent operator of
// precedence parentPrec needs parenthesizing, transcribed from BinaryOperator::doPrint's
// leftInBraces/rightInBraces logic: a child binds looser (needs parens) when its absolute
// precedence number is numerically greater than the parent's, and ties are broken by the side and
// by the parent's own associativity when both sides share precedence (as chained comparisons and
// same-precedence left-associative chains do).
func needsParens(parentPrec int, childPrec int, isRightOperand bool) bool {
	parentAbs, childAbs := absPrecedence(parentPrec), absPrecedence(childPrec)
	if childAbs != parentAbs {
		return childAbs > parentAbs
	}
	// Equal precedence: a right-associative parent (negative precedence) needs parens around its
	// left operand; a left-associative parent needs parens around its right operand, which is
	// exactly the rule that keeps "a = b = c" and "a - b - c" printing without redundant parens.
	if parentPrec < 0 {
		return !isRightOperand
	}
	return isRightOperand
}
