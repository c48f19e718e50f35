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

// Package sgraph implements the structural graph: a mutable graph of nodes (basic-block leaves
// or regions) and edges that the structure package iteratively reduces into a single root region.
// The graph exclusively owns its nodes and edges; every cross-link (parent pointers, edge
// endpoints) is a plain Go pointer into that ownership, never a second owner.
package sgraph

import "github.com/likec-project/decompiler/ir"

// Node is either a BasicNode (a leaf wrapping one IR basic block) or a Region (a group of child
// nodes refined to a control-flow idiom). Both variants embed nodeCommon, so the shared
// observers below (UniquePredecessor, IsFork, ...) work uniformly across the two kinds without a
// type switch in caller code, only the pattern recognizers in package structure need to
// distinguish BasicNode from Region, and they do so with a type assertion where it matters.
type Node interface {
	// Parent returns the region containing this node, or nil for the graph's root region.
	Parent() *Region
	// InEdges returns the edges whose head is this node.
	InEdges() []*Edge
	// OutEdges returns the edges whose tail is this node.
	OutEdges() []*Edge
	// EntryBasicBlock returns the basic block control reaches first upon entering this node: the
	// node's own block for a BasicNode, or the entry node's EntryBasicBlock, recursively, for a
	// Region.
	EntryBasicBlock() *ir.BasicBlock

	common() *nodeCommon
}

// nodeCommon holds the edge lists and parent pointer shared by BasicNode and Region. It is never
// used standalone; BasicNode and Region embed it.
type nodeCommon struct {
	parent   *Region
	inEdges  []*Edge
	outEdges []*Edge
}

func (c *nodeCommon) Parent() *Region    { return c.parent }
func (c *nodeCommon) InEdges() []*Edge   { return c.inEdges }
func (c *nodeCommon) OutEdges() []*Edge  { return c.outEdges }
func (c *nodeCommon) common() *nodeCommon { return c }

// BasicNode is a structural-graph leaf wrapping exactly one IR basic block.
type BasicNode struct {
	nodeCommon
	Block *ir.BasicBlock
}

// NewBasicNode allocates a BasicNode over block. It is not yet attached to any graph; callers
// add it to a region with Graph.AddNode.
func NewBasicNode(block *ir.BasicBlock) *BasicNode {
	return &BasicNode{Block: block}
}

// EntryBasicBlock returns the wrapped basic block itself.
func (n *BasicNode) EntryBasicBlock() *ir.BasicBlock { return n.Block }

// UniquePredecessor returns n's single in-neighbor, or nil if n has zero or more than one
// incoming edge.
func UniquePredecessor(n Node) Node {
	in := n.InEdges()
	if len(in) == 1 {
		return in[0].Tail()
	}
	return nil
}

// UniqueSuccessor returns n's single out-neighbor, or nil if n has zero or more than one
// outgoing edge.
func UniqueSuccessor(n Node) Node {
	out := n.OutEdges()
	if len(out) == 1 {
		return out[0].Head()
	}
	return nil
}

// IsFork reports whether n has exactly two distinct out-neighbors.
func IsFork(n Node) bool {
	out := n.OutEdges()
	return len(out) == 2 && out[0].Head() != out[1].Head()
}

// GetOtherSuccessor returns any out-neighbor of n other than notThis, or nil if none exists.
func GetOtherSuccessor(n Node, notThis Node) Node {
	for _, e := range n.OutEdges() {
		if e.Head() != notThis {
			return e.Head()
		}
	}
	return nil
}

// IsCondition reports whether n can serve as the entry of an IF/WHILE/COMPOUND_CONDITION
// pattern: a BasicNode ending in a conditional jump whose both targets are known (non-table)
// basic blocks, or a COMPOUND_CONDITION region.
func IsCondition(n Node) bool {
	switch v := n.(type) {
	case *BasicNode:
		jump := v.Block.Jump()
		if jump == nil || jump.Kind != ir.JumpStatement || jump.Condition == nil {
			return false
		}
		return jump.ThenTarget != nil && jump.ThenTarget.Block != nil &&
			jump.ElseTarget != nil && jump.ElseTarget.Block != nil
	case *Region:
		return v.Kind == CompoundCondition
	default:
		return false
	}
}
