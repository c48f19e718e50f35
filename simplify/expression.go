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

package simplify

import "github.com/likec-project/decompiler/liketree"

// simplifyExpression dispatches on e's concrete kind, recursively simplifies its children first,
// then applies that kind's rewrite rules, returning the (possibly entirely different) replacement
// expression. Leaf kinds with no children are returned unchanged.
func simplifyExpression(tree *liketree.Tree, e liketree.Expression) liketree.Expression {
	switch n := e.(type) {
	case nil:
		return nil
	case *liketree.UnaryOperator:
		return simplifyUnary(tree, n)
	case *liketree.BinaryOperator:
		return simplifyBinary(tree, n)
	case *liketree.Typecast:
		return simplifyTypecast(tree, n)
	case *liketree.MemberAccessOperator:
		n.SetStruct(simplifyExpression(tree, n.Struct))
		return n
	case *liketree.CallOperator:
		n.SetCallee(simplifyExpression(tree, n.Callee))
		for i, a := range n.Args {
			n.SetArg(i, simplifyExpression(tree, a))
		}
		return n
	default:
		// IntegerConstant, VariableIdentifier, UndeclaredIdentifier: no children to simplify.
		return e
	}
}

// arithmeticOperator reports whether kind is one of the operators the redundant-cast-drop rule
// applies to.
func arithmeticOperator(kind liketree.BinaryOperatorKind) bool {
	switch kind {
	case liketree.Add, liketree.Sub, liketree.Mul, liketree.Div, liketree.Rem:
		return true
	default:
		return false
	}
}

func simplifyBinary(tree *liketree.Tree, n *liketree.BinaryOperator) liketree.Expression {
	n.SetLeft(simplifyExpression(tree, n.Left))
	n.SetRight(simplifyExpression(tree, n.Right))

	if n.OperatorKind == liketree.LogicalAnd || n.OperatorKind == liketree.LogicalOr {
		n.SetLeft(simplifyBooleanContext(tree, n.Left))
		n.SetRight(simplifyBooleanContext(tree, n.Right))
	}

	if arithmeticOperator(n.OperatorKind) {
		dropRedundantCasts(n)
	}

	if n.OperatorKind == liketree.Add || n.OperatorKind == liketree.Sub {
		if result, ok := tryPointerRewrite(tree, n.OperatorKind, n.Left, n.Right); ok {
			return result
		}
	}

	if result, ok := identitySimplify(tree, n); ok {
		return result
	}
	if result, ok := negativeLiteralRewrite(tree, n); ok {
		return result
	}
	if result, ok := incrementDecrement(tree, n); ok {
		return result
	}

	return n
}

// negateComparisonKind returns the comparison operator that negates kind (Eq <-> Neq, Lt <->
// Geq, Leq <-> Gt), and whether kind was a comparison at all.
func negateComparisonKind(kind liketree.BinaryOperatorKind) (liketree.BinaryOperatorKind, bool) {
	switch kind {
	case liketree.Eq:
		return liketree.Neq, true
	case liketree.Neq:
		return liketree.Eq, true
	case liketree.Lt:
		return liketree.Geq, true
	case liketree.Geq:
		return liketree.Lt, true
	case liketree.Leq:
		return liketree.Gt, true
	case liketree.Gt:
		return liketree.Leq, true
	default:
		return 0, false
	}
}

func simplifyUnary(tree *liketree.Tree, n *liketree.UnaryOperator) liketree.Expression {
	n.SetOperand(simplifyExpression(tree, n.Operand))

	switch n.OperatorKind {
	case liketree.BitwiseNot:
		// ~x on a 1-bit (boolean) operand is really logical negation.
		if n.Operand.Type().BitWidth() == 1 {
			n.OperatorKind = liketree.LogicalNot
			return n
		}

	case liketree.Dereference:
		// *(&x) -> x.
		if ref, ok := n.Operand.(*liketree.UnaryOperator); ok && ref.OperatorKind == liketree.Reference {
			return ref.Operand
		}
		// *(ptr + k) -> ptr[k], for whichever side is the pointer.
		if add, ok := n.Operand.(*liketree.BinaryOperator); ok && add.OperatorKind == liketree.Add {
			if add.Left.Type().IsPointer() {
				return tree.NewBinaryOperator(liketree.ArraySubscript, add.Left, add.Right)
			}
			if add.Right.Type().IsPointer() {
				return tree.NewBinaryOperator(liketree.ArraySubscript, add.Right, add.Left)
			}
		}

	case liketree.LogicalNot:
		// ! strips across a scalar-to-scalar typecast: it doesn't change truthiness.
		operand := n.Operand
		for {
			tc, ok := operand.(*liketree.Typecast)
			if !ok || !tc.Operand.Type().IsScalar() || !tc.ToType.IsScalar() {
				break
			}
			operand = tc.Operand
		}
		if operand != n.Operand {
			n.SetOperand(operand)
		}

		// !(a <cmp> b) -> a <negated-cmp> b.
		if cmp, ok := n.Operand.(*liketree.BinaryOperator); ok {
			if negated, ok := negateComparisonKind(cmp.OperatorKind); ok {
				return tree.NewBinaryOperator(negated, cmp.Left, cmp.Right)
			}
		}
		// !!x -> x, when x is already boolean-typed.
		if inner, ok := n.Operand.(*liketree.UnaryOperator); ok && inner.OperatorKind == liketree.LogicalNot {
			if inner.Operand.Type().BitWidth() == 1 {
				return inner.Operand
			}
		}
	}

	return n
}

// structFirstMember rewrites a Typecast whose operand is a struct pointer and whose target is a
// non-struct pointer into a cast of the address of the struct's first member, since a struct's
// first member always starts at the same address as the struct itself.
func structFirstMember(tree *liketree.Tree, n *liketree.Typecast) bool {
	if !n.Operand.Type().IsStructPointer() || !n.ToType.IsPointer() || n.ToType.IsStructPointer() {
		return false
	}
	members := n.Operand.Type().Pointee().Declaration().Members()
	if len(members) == 0 {
		return false
	}
	access := liketree.NewMemberAccessOperator(n.Operand, members[0])
	n.SetOperand(tree.NewUnaryOperator(liketree.Reference, access))
	return true
}

func simplifyTypecast(tree *liketree.Tree, n *liketree.Typecast) liketree.Expression {
	n.SetOperand(simplifyExpression(tree, n.Operand))

	structFirstMember(tree, n)

	// (PtrT*)(IntT)ptr -> (PtrT*)ptr, when both casts are scalar and the same width.
	if n.ToType.IsPointer() {
		if inner, ok := n.Operand.(*liketree.Typecast); ok &&
			inner.ToType.IsScalar() && inner.ToType.BitWidth() == n.ToType.BitWidth() {
			n.SetOperand(inner.Operand)
		}
	}

	// Identity cast collapse is last: the rewrites above can change what the operand's type is.
	if n.Operand.Type() == n.ToType {
		return n.Operand
	}
	return n
}
