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

// Package simplify rewrites a freshly built liketree.Tree into canonical idiomatic C: collapsing
// redundant typecasts, reconstructing pointer indexing and member access from raw address
// arithmetic, folding boolean-context noise, and recognizing increment/decrement forms. It is a
// bottom-up recursive rewriter: every helper takes ownership of a subtree, rewrites it and returns
// ownership of the replacement. Re-running Tree on its own output is a no-op.
package simplify

import "github.com/likec-project/decompiler/liketree"

// Tree simplifies every statement in fn's function body in place, replacing it with its
// simplified form. A function with no body is left untouched.
func Tree(fn *liketree.Tree) {
	if fn == nil || fn.Root == nil || fn.Root.Body == nil {
		return
	}
	refs := countLabelReferences(fn.Root.Body)
	body := simplifyStatement(fn, fn.Root.Body, refs)
	block, ok := body.(*liketree.Block)
	if !ok || block == nil {
		block = liketree.NewBlock()
	}
	fn.Root.Body = block
}

// countLabelReferences walks the whole statement tree once, counting how many Goto statements
// target each label name. LabelStatement removal (simplifyLabelStatement) consults this map
// instead of a live reference count maintained by the tree builder, since liketree's Goto and
// LabelStatement both name their target by a plain string rather than a shared declaration.
func countLabelReferences(s liketree.Statement) map[string]int {
	refs := make(map[string]int)
	var walk func(liketree.Statement)
	walk = func(s liketree.Statement) {
		switch n := s.(type) {
		case nil:
			return
		case *liketree.Block:
			for _, c := range n.Statements {
				walk(c)
			}
		case *liketree.If:
			walk(n.Then)
			walk(n.Else)
		case *liketree.While:
			walk(n.Body)
		case *liketree.DoWhile:
			walk(n.Body)
		case *liketree.Switch:
			for _, c := range n.Cases {
				walk(c.Body)
			}
		case *liketree.Goto:
			refs[n.Label]++
		}
	}
	walk(s)
	return refs
}
