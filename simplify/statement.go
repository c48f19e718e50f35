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

// simplifyStatement dispatches on s's concrete kind and returns its simplified replacement. A
// LabelStatement with zero references in refs is dropped (returns nil); a Block caller filters
// nils out of its statement sequence, an If drops a nil else branch, and the other callers (Tree
// for the function body, an If's then branch, and While, DoWhile and case bodies) put an empty
// Block in its place.
func simplifyStatement(tree *liketree.Tree, s liketree.Statement, refs map[string]int) liketree.Statement {
	switch n := s.(type) {
	case nil:
		return nil
	case *liketree.Block:
		return simplifyBlock(tree, n, refs)
	case *liketree.ExpressionStatement:
		return liketree.NewExpressionStatement(simplifyExpression(tree, n.Expr))
	case *liketree.If:
		return simplifyIf(tree, n, refs)
	case *liketree.While:
		cond := simplifyBooleanContext(tree, simplifyExpression(tree, n.Condition))
		body := nonNilStatement(simplifyStatement(tree, n.Body, refs))
		return liketree.NewWhile(cond, body)
	case *liketree.DoWhile:
		body := nonNilStatement(simplifyStatement(tree, n.Body, refs))
		cond := simplifyBooleanContext(tree, simplifyExpression(tree, n.Condition))
		return liketree.NewDoWhile(body, cond)
	case *liketree.Switch:
		return simplifySwitch(tree, n, refs)
	case *liketree.Return:
		if n.Value == nil {
			return liketree.NewReturn(nil)
		}
		return liketree.NewReturn(simplifyExpression(tree, n.Value))
	case *liketree.Goto:
		return n
	case *liketree.LabelStatement:
		if refs[n.Label] == 0 {
			return nil
		}
		return n
	case *liketree.CommentStatement:
		return n
	default:
		return s
	}
}

// simplifyBlock simplifies every statement of b in order, dropping any that simplify away (a
// LabelStatement with no remaining references) from the result.
func simplifyBlock(tree *liketree.Tree, b *liketree.Block, refs map[string]int) *liketree.Block {
	out := make([]liketree.Statement, 0, len(b.Statements))
	for _, c := range b.Statements {
		if sc := simplifyStatement(tree, c, refs); sc != nil {
			out = append(out, sc)
		}
	}
	return liketree.NewBlock(out...)
}

// nonNilStatement substitutes an empty Block for a nil Statement: While and DoWhile bodies may
// never be nil, even when everything inside them simplified away.
func nonNilStatement(s liketree.Statement) liketree.Statement {
	if s == nil {
		return liketree.NewBlock()
	}
	return s
}

// isEmptyBlock reports whether s is a Block with no statements.
func isEmptyBlock(s liketree.Statement) bool {
	b, ok := s.(*liketree.Block)
	return ok && len(b.Statements) == 0
}

// simplifyIf simplifies an If's condition and branches, then applies the two branch-shape rules:
// an empty else is dropped, and an empty then with a non-empty else is turned into its negation
// (swap the branches instead of printing an empty then-arm).
func simplifyIf(tree *liketree.Tree, n *liketree.If, refs map[string]int) liketree.Statement {
	cond := simplifyBooleanContext(tree, simplifyExpression(tree, n.Condition))
	then := nonNilStatement(simplifyStatement(tree, n.Then, refs))
	els := simplifyStatement(tree, n.Else, refs)

	if isEmptyBlock(els) {
		els = nil
	}
	if isEmptyBlock(then) && els != nil {
		cond = negateCondition(tree, cond)
		then, els = els, nil
	}
	return liketree.NewIf(cond, then, els)
}

// negateCondition wraps cond in a logical-not and runs it back through expression simplification,
// so `!(a == b)` folds to `a != b` the same way any other logical-not would.
func negateCondition(tree *liketree.Tree, cond liketree.Expression) liketree.Expression {
	return simplifyExpression(tree, tree.NewUnaryOperator(liketree.LogicalNot, cond))
}

// simplifySwitch simplifies the switch subject (in boolean context, like the C++ original does
// for every condition-shaped position) and every case body.
func simplifySwitch(tree *liketree.Tree, n *liketree.Switch, refs map[string]int) liketree.Statement {
	expr := simplifyBooleanContext(tree, simplifyExpression(tree, n.Expr))
	cases := make([]*liketree.CaseLabel, len(n.Cases))
	for i, c := range n.Cases {
		cases[i] = &liketree.CaseLabel{Value: c.Value, Body: nonNilStatement(simplifyStatement(tree, c.Body, refs))}
	}
	return liketree.NewSwitch(expr, cases)
}
