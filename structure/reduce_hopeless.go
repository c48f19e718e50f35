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

// reduceHopelessConditional is the fallback of last resort:
// when nothing else recognized entry's fork as a more specific pattern, fold it into an
// IF_THEN_ELSE anyway, unconditionally. The LikeC tree builder renders this shape as an
// if/else whose branches end in goto rather than as a clean structured exit.
func (a *Analyzer) reduceHopelessConditional(region *sgraph.Region, entry sgraph.Node) bool {
	if !sgraph.IsFork(entry) || !sgraph.IsCondition(entry) {
		return false
	}

	out := entry.OutEdges()
	left, right := out[0].Head(), out[1].Head()

	sub := sgraph.NewRegion(sgraph.IfThenElse)
	a.graph.AddNode(sub, entry)
	a.graph.AddNode(sub, left)
	a.graph.AddNode(sub, right)
	sub.SetEntry(entry)
	a.graph.AddSubregion(region, sub)
	return true
}
