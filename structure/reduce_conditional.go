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

package structure

import "github.com/likec-project/decompiler/sgraph"

// reduceConditional recognizes IF_THEN_ELSE and IF_THEN: entry must
// be a fork-condition whose two successors either both rejoin at a common node (IF_THEN_ELSE) or
// where one successor falls straight through to the other (IF_THEN).
func (a *Analyzer) reduceConditional(region *sgraph.Region, entry sgraph.Node) bool {
	if !sgraph.IsFork(entry) || !sgraph.IsCondition(entry) {
		return false
	}

	out := entry.OutEdges()
	left, right := out[0].Head(), out[1].Head()

	if len(left.InEdges()) == 1 && len(right.InEdges()) == 1 &&
		len(left.OutEdges()) <= 1 && len(right.OutEdges()) <= 1 &&
		(len(left.OutEdges()) == 0 || len(right.OutEdges()) == 0 ||
			left.OutEdges()[0].Head() == right.OutEdges()[0].Head()) {
		sub := sgraph.NewRegion(sgraph.IfThenElse)
		a.graph.AddNode(sub, entry)
		a.graph.AddNode(sub, left)
		a.graph.AddNode(sub, right)
		sub.SetEntry(entry)
		a.graph.AddSubregion(region, sub)
		return true
	}

	if a.tryIfThen(region, entry, left, right) {
		return true
	}
	return a.tryIfThen(region, entry, right, left)
}

// tryIfThen attempts an IF_THEN reduction where l is the "then" branch that either falls off the
// end of the graph or rejoins at r, entry's other successor.
func (a *Analyzer) tryIfThen(region *sgraph.Region, entry, l, r sgraph.Node) bool {
	if len(l.InEdges()) != 1 {
		return false
	}
	out := l.OutEdges()
	if len(out) != 0 && (len(out) != 1 || out[0].Head() != r) {
		return false
	}

	sub := sgraph.NewRegion(sgraph.IfThen)
	a.graph.AddNode(sub, entry)
	a.graph.AddNode(sub, l)
	sub.SetEntry(entry)
	sub.ExitBasicBlock = r.EntryBasicBlock()
	a.graph.AddSubregion(region, sub)
	return true
}
