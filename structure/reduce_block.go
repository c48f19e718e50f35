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

// reduceBlock recognizes a straight-line chain of two or more nodes with no branching among
// themselves. A chain is only worth forming if its head's unique
// predecessor could later become an if/while condition, since a BLOCK region exists solely to
// give such a chain a single node to point at.
func (a *Analyzer) reduceBlock(region *sgraph.Region, entry sgraph.Node) bool {
	pred := sgraph.UniquePredecessor(entry)
	if pred == nil || !sgraph.IsFork(pred) || !sgraph.IsCondition(pred) {
		return false
	}

	var chain []sgraph.Node
	node := entry
	for {
		chain = append(chain, node)
		next := sgraph.UniqueSuccessor(node)
		if next == nil || sgraph.UniquePredecessor(next) == nil {
			break
		}
		node = next
	}

	if len(chain) <= 1 {
		return false
	}

	sub := sgraph.NewRegion(sgraph.Block)
	for _, n := range chain {
		a.graph.AddNode(sub, n)
	}
	sub.SetEntry(entry)
	a.graph.AddSubregion(region, sub)
	return true
}
