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

// divideBy divides expr by divisor and returns the result, or false if expr isn't evenly
// divisible by it. An IntegerConstant divides directly; a Mul divides either factor, recursing
// so a product of products still reduces.
func divideBy(tree *liketree.Tree, expr liketree.Expression, divisor uint64) (liketree.Expression, bool) {
	if divisor == 0 {
		return nil, false
	}
	switch n := expr.(type) {
	case *liketree.IntegerConstant:
		if n.Value()%divisor != 0 {
			return nil, false
		}
		return liketree.NewIntegerConstant(n.Value()/divisor, n.Type()), true
	case *liketree.BinaryOperator:
		if n.OperatorKind != liketree.Mul {
			return nil, false
		}
		if reduced, ok := divideBy(tree, n.Left, divisor); ok {
			return tree.NewBinaryOperator(liketree.Mul, reduced, n.Right), true
		}
		if reduced, ok := divideBy(tree, n.Right, divisor); ok {
			return tree.NewBinaryOperator(liketree.Mul, n.Left, reduced), true
		}
		return nil, false
	default:
		return nil, false
	}
}

// dropRedundantCasts strips a typecast from either operand of an arithmetic BinaryOperator when
// the cast's target is at least as wide as the operand's own type and removing it leaves the
// whole expression's type unchanged.
func dropRedundantCasts(n *liketree.BinaryOperator) {
	exprType := n.Type()
	if tc, ok := n.Left.(*liketree.Typecast); ok && tc.ToType.BitWidth() >= tc.Operand.Type().BitWidth() {
		old := n.Left
		n.SetLeft(tc.Operand)
		if n.Type() != exprType {
			n.SetLeft(old)
		}
	}
	if tc, ok := n.Right.(*liketree.Typecast); ok && tc.ToType.BitWidth() >= tc.Operand.Type().BitWidth() {
		old := n.Right
		n.SetRight(tc.Operand)
		if n.Type() != exprType {
			n.SetRight(old)
		}
	}
}

// tryPointerRewrite recognizes `(IntT)ptr + K` (or its Add-commutative `K + (IntT)ptr`, or the
// Sub form `(IntT)ptr - K`) and rewrites it either as a struct member address or as normalized
// pointer arithmetic, depending on what ptr points to.
func tryPointerRewrite(tree *liketree.Tree, kind liketree.BinaryOperatorKind, left, right liketree.Expression) (liketree.Expression, bool) {
	if tc, ok := left.(*liketree.Typecast); ok && tc.Operand.Type().IsPointer() {
		if c, ok := right.(*liketree.IntegerConstant); ok {
			if res, ok := rewritePointerPlusConst(tree, kind, tc.Operand, c); ok {
				return res, true
			}
		}
	}
	if kind == liketree.Add {
		if tc, ok := right.(*liketree.Typecast); ok && tc.Operand.Type().IsPointer() {
			if c, ok := left.(*liketree.IntegerConstant); ok {
				if res, ok := rewritePointerPlusConst(tree, liketree.Add, tc.Operand, c); ok {
					return res, true
				}
			}
		}
	}
	return nil, false
}

// rewritePointerPlusConst implements the two pointer-arithmetic rewrites: a struct pointer plus a
// byte offset that lands exactly on a member becomes `&ptr->member`; any other pointer plus a
// byte offset divisible by its pointee's size becomes normalized index arithmetic.
func rewritePointerPlusConst(tree *liketree.Tree, kind liketree.BinaryOperatorKind, ptr liketree.Expression, offset *liketree.IntegerConstant) (liketree.Expression, bool) {
	ptrType := ptr.Type()
	pointee := ptrType.Pointee()
	if pointee == nil {
		return nil, false
	}

	if ptrType.IsStructPointer() {
		if kind != liketree.Add {
			return nil, false
		}
		member, ok := pointee.Declaration().MemberAt(int(offset.Value()) * 8)
		if !ok {
			return nil, false
		}
		access := liketree.NewMemberAccessOperator(ptr, member)
		return tree.NewUnaryOperator(liketree.Reference, access), true
	}

	elemBytes := uint64(pointee.BitWidth() / 8)
	reduced, ok := divideBy(tree, offset, elemBytes)
	if !ok {
		return nil, false
	}
	result := tree.NewBinaryOperator(kind, ptr, reduced)
	return simplifyExpression(tree, result), true
}

// identitySimplify recognizes an algebraic identity element on one side of n (x+0, x*1, x<<0, and
// so on) and returns the surviving operand, wrapped in a static_cast back to n's own type if
// dropping the other operand would otherwise change it.
func identitySimplify(tree *liketree.Tree, n *liketree.BinaryOperator) (liketree.Expression, bool) {
	exprType := n.Type()
	wrap := func(e liketree.Expression) liketree.Expression {
		if e.Type() == exprType {
			return e
		}
		return liketree.NewTypecastStyle(exprType, e, liketree.StaticCast)
	}

	switch n.OperatorKind {
	case liketree.Add:
		if isZeroConst(n.Right) {
			return wrap(n.Left), true
		}
		if isZeroConst(n.Left) {
			return wrap(n.Right), true
		}
	case liketree.Sub:
		if isZeroConst(n.Right) {
			return wrap(n.Left), true
		}
		if isZeroConst(n.Left) {
			return wrap(tree.NewUnaryOperator(liketree.Negation, n.Right)), true
		}
	case liketree.Mul:
		if isOneConst(n.Right) {
			return wrap(n.Left), true
		}
		if isOneConst(n.Left) {
			return wrap(n.Right), true
		}
	case liketree.Shl, liketree.Shr:
		if isZeroConst(n.Right) {
			return wrap(n.Left), true
		}
	case liketree.BitwiseOr, liketree.BitwiseXor:
		if isZeroConst(n.Right) {
			return wrap(n.Left), true
		}
		if isZeroConst(n.Left) {
			return wrap(n.Right), true
		}
	case liketree.LogicalOr:
		if isZeroConst(n.Right) {
			return wrap(n.Left), true
		}
		if isZeroConst(n.Left) {
			return wrap(n.Right), true
		}
	case liketree.LogicalAnd:
		if isOneConst(n.Right) {
			return wrap(n.Left), true
		}
		if isOneConst(n.Left) {
			return wrap(n.Right), true
		}
	}
	return nil, false
}

// negativeLiteralRewrite turns `a + -k` into `a - k` and `a - -k` into `a + k`, for a signed
// integer constant k whose stored size is more than 1 bit: a 1-bit constant is a boolean and this
// rewrite would obscure that, so it's excluded.
func negativeLiteralRewrite(tree *liketree.Tree, n *liketree.BinaryOperator) (liketree.Expression, bool) {
	if n.OperatorKind != liketree.Add && n.OperatorKind != liketree.Sub {
		return nil, false
	}
	neg, ok := n.Right.(*liketree.UnaryOperator)
	if !ok || neg.OperatorKind != liketree.Negation {
		return nil, false
	}
	k, ok := neg.Operand.(*liketree.IntegerConstant)
	if !ok || !k.Type().IsInteger() || k.Type().IsUnsigned() || k.Type().BitWidth() <= 1 {
		return nil, false
	}
	newKind := liketree.Sub
	if n.OperatorKind == liketree.Sub {
		newKind = liketree.Add
	}
	return tree.NewBinaryOperator(newKind, n.Left, k), true
}

// incrementDecrement recognizes `x = x + 1` (in either operand order) as `++x`, and `x = x - 1`
// as `--x`, matching the assigned variable by name on both sides.
func incrementDecrement(tree *liketree.Tree, n *liketree.BinaryOperator) (liketree.Expression, bool) {
	if n.OperatorKind != liketree.Assign {
		return nil, false
	}
	lv, ok := n.Left.(*liketree.VariableIdentifier)
	if !ok {
		return nil, false
	}
	rhs, ok := n.Right.(*liketree.BinaryOperator)
	if !ok {
		return nil, false
	}
	switch rhs.OperatorKind {
	case liketree.Add:
		if (sameVariable(rhs.Left, lv.Name) && isOneConst(rhs.Right)) ||
			(sameVariable(rhs.Right, lv.Name) && isOneConst(rhs.Left)) {
			return tree.NewUnaryOperator(liketree.PrefixIncrement, liketree.NewVariableIdentifier(lv.Name, lv.Type())), true
		}
	case liketree.Sub:
		if sameVariable(rhs.Left, lv.Name) && isOneConst(rhs.Right) {
			return tree.NewUnaryOperator(liketree.PrefixDecrement, liketree.NewVariableIdentifier(lv.Name, lv.Type())), true
		}
	}
	return nil, false
}
