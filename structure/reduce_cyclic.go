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

import (
	"github.com/likec-project/decompiler/ir"
	"github.com/likec-project/decompiler/sgraph"
	"github.com/likec-project/decompiler/sgraph/dfs"
	"github.com/likec-project/decompiler/sgraph/loopexplorer"
)

// doWhileCandidate pairs a potential trailing-condition node with the basic block control reaches
// if the loop exits there.
type doWhileCandidate struct {
	node sgraph.Node
	exit *ir.BasicBlock
}

// reduceCyclic recognizes a natural loop rooted at entry, classifies
// it as WHILE or DO_WHILE when the shape matches, strips its continue edges, and recurses
// structural analysis into the new loop region before returning.
func (a *Analyzer) reduceCyclic(region *sgraph.Region, entry sgraph.Node, result *dfs.Result) bool {
	loopNodes := loopexplorer.Explore(entry, result)
	if len(loopNodes) == 0 {
		return false
	}

	sub := sgraph.NewRegion(sgraph.Loop)
	for _, n := range loopNodes {
		a.graph.AddNode(sub, n)
	}
	sub.SetEntry(entry)

	// WHILE detection must happen before addSubregion rewires entry's out-edges.
	if sgraph.IsFork(entry) && sgraph.IsCondition(entry) {
		for _, e := range entry.OutEdges() {
			if head := e.Head(); head != nil && head.Parent() == region {
				sub.Kind = sgraph.While
				sub.ExitBasicBlock = head.EntryBasicBlock()
				break
			}
		}
	}

	// DO_WHILE candidates must also be gathered before addSubregion rewires entry's in-edges:
	// a back edge into entry whose tail is itself a condition with an edge leaving the loop.
	var candidates []doWhileCandidate
	for _, e := range entry.InEdges() {
		if t, ok := result.EdgeType(e); !ok || t != dfs.Back {
			continue
		}
		n := e.Tail()
		if n == nil || !sgraph.IsFork(n) || !sgraph.IsCondition(n) {
			continue
		}
		for _, oe := range n.OutEdges() {
			if head := oe.Head(); head != nil && head.Parent() == region {
				candidates = append(candidates, doWhileCandidate{node: n, exit: head.EntryBasicBlock()})
			}
		}
	}

	a.graph.AddSubregion(region, sub)

	// Continue edges only make structural analysis inside the loop harder; delete them.
	continueEdges := append([]*sgraph.Edge(nil), entry.InEdges()...)
	for _, e := range continueEdges {
		a.graph.DeleteEdge(e)
	}

	a.analyzeRegion(sub)

	for _, c := range candidates {
		if c.node.Parent() == sub {
			sub.Kind = sgraph.DoWhile
			sub.LoopCondition = c.node
			sub.ExitBasicBlock = c.exit
		}
	}

	return true
}
