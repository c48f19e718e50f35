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

// reduceCompoundCondition recognizes a short-circuit && or ||:
// entry must be a fork-condition, and one of its two successors L must itself be a fork-
// condition with exactly one incoming edge that shares a target with entry while its other
// target is not entry. L and entry collapse into a COMPOUND_CONDITION region.
func (a *Analyzer) reduceCompoundCondition(region *sgraph.Region, entry sgraph.Node) bool {
	if !sgraph.IsFork(entry) || !sgraph.IsCondition(entry) {
		return false
	}

	out := entry.OutEdges()
	left, right := out[0].Head(), out[1].Head()

	if a.tryCompoundCondition(region, entry, left, right) {
		return true
	}
	return a.tryCompoundCondition(region, entry, right, left)
}

// tryCompoundCondition attempts to fold entry and l into a COMPOUND_CONDITION region, where l is
// one of entry's two successors and r is the other.
func (a *Analyzer) tryCompoundCondition(region *sgraph.Region, entry, l, r sgraph.Node) bool {
	if len(l.InEdges()) != 1 || !sgraph.IsFork(l) || !sgraph.IsCondition(l) {
		return false
	}

	lOut := l.OutEdges()
	matches := (lOut[0].Head() == r && lOut[1].Head() != entry) ||
		(lOut[1].Head() == r && lOut[0].Head() != entry)
	if !matches {
		return false
	}

	sub := sgraph.NewRegion(sgraph.CompoundCondition)
	a.graph.AddNode(sub, entry)
	a.graph.AddNode(sub, l)
	sub.SetEntry(entry)
	a.graph.AddSubregion(region, sub)
	return true
}
