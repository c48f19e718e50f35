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
	"github.com/likec-project/decompiler/sgraph"
	"github.com/likec-project/decompiler/util/orderedmap"
)

// reduceSwitch recognizes a jump-table dispatch, with an optional leading bounds check, and the
// set of nodes reachable solely from each branch. It runs before reduceHopelessConditional in the same pass so a
// switch's bounds check is never mistaken for a plain if/else first.
func (a *Analyzer) reduceSwitch(region *sgraph.Region, entry sgraph.Node) bool {
	// Do not detect the same switch region twice.
	if region.Kind == sgraph.Switch && region.SwitchNode == entry {
		return false
	}

	basicEntry, ok := entry.(*sgraph.BasicNode)
	if !ok {
		return false
	}

	jump := basicEntry.Block.Jump()
	if jump == nil || !jump.IsUnconditional() || !jump.ThenTarget.IsTable() {
		return false
	}

	index, _, ok := a.dataflow.RecognizeArrayAccess(jump.ThenTarget.Address)
	if !ok {
		return false
	}
	jumpTableSize := len(jump.ThenTarget.Table)

	var boundsCheckNode *sgraph.BasicNode
	if pred := sgraph.UniquePredecessor(entry); pred != nil {
		if predBasic, ok := pred.(*sgraph.BasicNode); ok {
			if predJump := predBasic.Block.Jump(); predJump != nil {
				if bcIndex, maxValue, ok := a.dataflow.RecognizeBoundsCheck(predJump, entry.EntryBasicBlock()); ok {
					if a.dataflow.GetFirstCopy(bcIndex) == a.dataflow.GetFirstCopy(index) {
						boundsCheckNode = predBasic
						if size := int(maxValue) + 1; size < jumpTableSize {
							jumpTableSize = size
						}
					}
				}
			}
		}
	}

	// The node getting control if the bounds check fails is either an exit or a default branch.
	var exitOrDefaultBranch sgraph.Node
	if boundsCheckNode != nil {
		exitOrDefaultBranch = sgraph.GetOtherSuccessor(boundsCheckNode, entry)
	}

	branches := dedupeNodes(entry, exitOrDefaultBranch)

	node2branch := computeNode2Branch(branches)

	getJoinDegree := func(n sgraph.Node) int {
		var seen []sgraph.Node
		for _, e := range n.InEdges() {
			tail := e.Tail()
			if tail == nil {
				continue
			}
			branch, ok := node2branch.Load(tail)
			if !ok {
				continue
			}
			if !containsNode(seen, branch) {
				seen = append(seen, branch)
			}
		}
		return len(seen)
	}

	var exitBranch sgraph.Node
	exitBranchJoinDegree := a.config.SwitchExitJoinDegree
	for _, pair := range branches {
		if degree := getJoinDegree(pair); degree > exitBranchJoinDegree {
			exitBranchJoinDegree = degree
			exitBranch = pair
		}
	}

	var defaultBranch sgraph.Node
	if exitBranch != exitOrDefaultBranch {
		defaultBranch = exitOrDefaultBranch
	}

	sub := sgraph.NewRegion(sgraph.Switch)
	sub.SwitchTerm = index
	sub.JumpTableSize = jumpTableSize

	a.graph.AddNode(sub, entry)
	sub.SwitchNode = entry

	if boundsCheckNode != nil {
		a.graph.AddNode(sub, boundsCheckNode)
		sub.BoundsCheckNode = boundsCheckNode
		sub.SetEntry(boundsCheckNode)
	} else {
		sub.SetEntry(entry)
	}

	if exitBranch != nil {
		sub.ExitBasicBlock = exitBranch.EntryBasicBlock()
	}
	if defaultBranch != nil {
		sub.DefaultBlock = defaultBranch.EntryBasicBlock()
	}

	for _, pair := range node2branch.Pairs {
		if pair.Value != exitBranch {
			a.graph.AddNode(sub, pair.Key)
		}
	}

	a.graph.AddSubregion(region, sub)
	return true
}

// dedupeNodes collects entry's direct successors, plus exitOrDefault if non-nil, in order with
// duplicates removed.
func dedupeNodes(entry sgraph.Node, exitOrDefault sgraph.Node) []sgraph.Node {
	var out []sgraph.Node
	for _, e := range entry.OutEdges() {
		if head := e.Head(); head != nil && !containsNode(out, head) {
			out = append(out, head)
		}
	}
	if exitOrDefault != nil && !containsNode(out, exitOrDefault) {
		out = append(out, exitOrDefault)
	}
	return out
}

func containsNode(haystack []sgraph.Node, needle sgraph.Node) bool {
	for _, n := range haystack {
		if n == needle {
			return true
		}
	}
	return false
}

// computeNode2Branch runs the BFS that, starting from each switch branch, assigns every node
// reachable solely from that one branch to it: a node joins a branch only once every one of its in-edges resolves to the same
// branch.
func computeNode2Branch(branches []sgraph.Node) *orderedmap.OrderedMap[sgraph.Node, sgraph.Node] {
	node2branch := orderedmap.New[sgraph.Node, sgraph.Node]()
	var queue []sgraph.Node

	for _, n := range branches {
		node2branch.Store(n, n)
		queue = append(queue, n)
	}

	for len(queue) > 0 {
		front := queue[0]
		queue = queue[1:]

		for _, oe := range front.OutEdges() {
			head := oe.Head()
			if head == nil {
				continue
			}
			if _, ok := node2branch.Load(head); ok {
				continue
			}

			var branch sgraph.Node
			resolved := true
			for _, ie := range head.InEdges() {
				tail := ie.Tail()
				if tail == nil {
					resolved = false
					break
				}
				inBranch, ok := node2branch.Load(tail)
				if !ok {
					resolved = false
					break
				}
				if branch == nil {
					branch = inBranch
				} else if branch != inBranch {
					resolved = false
					break
				}
			}

			if resolved && branch != nil {
				node2branch.Store(head, branch)
				queue = append(queue, head)
			}
		}
	}

	return node2branch
}
