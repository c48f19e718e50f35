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

// simplifyBooleanContext rewrites an expression known to be used only for its truth value: if/
// while/do-while conditions, a switch subject, and the operands of && and ||. A widening cast
// around a scalar is a no-op there, and `x != 0`/`x == 0` are just `x`/`!x`.
func simplifyBooleanContext(tree *liketree.Tree, e liketree.Expression) liketree.Expression {
	if tc, ok := e.(*liketree.Typecast); ok && tc.Operand.Type().IsScalar() {
		return simplifyBooleanContext(tree, tc.Operand)
	}

	if be, ok := e.(*liketree.BinaryOperator); ok {
		switch be.OperatorKind {
		case liketree.Neq:
			if isZeroConst(be.Right) {
				return simplifyBooleanContext(tree, be.Left)
			}
			if isZeroConst(be.Left) {
				return simplifyBooleanContext(tree, be.Right)
			}
		case liketree.Eq:
			if isZeroConst(be.Right) {
				return tree.NewUnaryOperator(liketree.LogicalNot, simplifyBooleanContext(tree, be.Left))
			}
			if isZeroConst(be.Left) {
				return tree.NewUnaryOperator(liketree.LogicalNot, simplifyBooleanContext(tree, be.Right))
			}
		}
	}

	return e
}
