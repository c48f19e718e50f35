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

import "testing"

func TestBinaryPrecedenceOrdering(t *testing.T) {
	if absPrecedence(binaryPrecedence(Mul)) >= absPrecedence(binaryPrecedence(Add)) {
		t.Fatalf("Mul should bind tighter than Add")
	}
	if absPrecedence(binaryPrecedence(Add)) >= absPrecedence(binaryPrecedence(Shl)) {
		t.Fatalf("Add should bind tighter than Shl")
	}
	if absPrecedence(binaryPrecedence(LogicalAnd)) >= absPrecedence(binaryPrecedence(LogicalOr)) {
		t.Fatalf("LogicalAnd should bind tighter than LogicalOr")
	}
	if binaryPrecedence(Assign) >= 0 {
		t.Fatalf("Assign must be encoded as right-associative (negative)")
	}
}

func TestNeedsParensSameLevelLeftAssociative(t *testing.T) {
	// a - b - c, parsed as (a-b)-c: the right operand of the outer Sub needs parens if it
	// itself were a Sub, since Sub is left-associative.
	subPrec := binaryPrecedence(Sub)
	if !needsParens(subPrec, subPrec, true) {
		t.Fatalf("right operand of same-precedence left-associative operator should need parens")
	}
	if needsParens(subPrec, subPrec, false) {
		t.Fatalf("left operand of same-precedence left-associative operator should not need parens")
	}
}

func TestNeedsParensAssignRightAssociative(t *testing.T) {
	assignPrec := binaryPrecedence(Assign)
	if needsParens(assignPrec, assignPrec, true) {
		t.Fatalf("right operand of same-precedence right-associative operator should not need parens")
	}
	if !needsParens(assignPrec, assignPrec, false) {
		t.Fatalf("left operand of same-precedence right-associative operator should need parens")
	}
}

func TestNeedsParensLooserChildAlwaysWraps(t *testing.T) {
	addPrec := binaryPrecedence(Add)
	mulPrec := binaryPrecedence(Mul)
	if needsParens(mulPrec, addPrec, true) == false {
		t.Fatalf("an Add child inside a Mul parent must be parenthesized")
	}
	if needsParens(addPrec, mulPrec, true) {
		t.Fatalf("a Mul child inside an Add parent never needs parens")
	}
}

// TestUnaryOperatorPrecedenceIsRightAssociative regresses a bug where UnaryOperator.Precedence
// returned +3 instead of -3: since prefix unary operators are right-associative, nesting two of
// the same kind (e.g. -(-a)) must parenthesize the inner one, or it prints as "--a" and is
// misread as a decrement.
func TestUnaryOperatorPrecedenceIsRightAssociative(t *testing.T) {
	tree := NewTree(32, 64, 64)
	i32 := tree.Types().Integer(32, false)
	inner := tree.NewUnaryOperator(Negation, NewIntegerConstant(1, i32))
	outer := tree.NewUnaryOperator(Negation, inner)

	if outer.Precedence() >= 0 {
		t.Fatalf("unary operator precedence must be encoded as right-associative (negative), got %d", outer.Precedence())
	}
	if !NeedsParens(outer, inner, false) {
		t.Fatalf("a same-precedence unary operand nested inside another prefix unary operator must be parenthesized")
	}
}
