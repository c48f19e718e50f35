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

package sgraph

import "github.com/likec-project/decompiler/ir"

// RegionKind discriminates the control-flow idiom a Region currently represents. A region's kind
// starts at Unknown and is refined in place as the structural analyzer recognizes more specific
// patterns.
type RegionKind int

// Region kinds, from least to most refined.
const (
	Unknown RegionKind = iota
	Block
	IfThen
	IfThenElse
	CompoundCondition
	Loop
	While
	DoWhile
	Switch
)

// String renders a RegionKind the way debug dumps and test failure messages want it.
func (k RegionKind) String() string {
	switch k {
	case Unknown:
		return "UNKNOWN"
	case Block:
		return "BLOCK"
	case IfThen:
		return "IF_THEN"
	case IfThenElse:
		return "IF_THEN_ELSE"
	case CompoundCondition:
		return "COMPOUND_CONDITION"
	case Loop:
		return "LOOP"
	case While:
		return "WHILE"
	case DoWhile:
		return "DO_WHILE"
	case Switch:
		return "SWITCH"
	default:
		return "INVALID"
	}
}

// Region groups one or more child nodes under a single entry, refined during analysis from
// Unknown to a specific idiom.
type Region struct {
	nodeCommon

	Kind RegionKind

	// entry is the node through which control enters this region. It must always be a member of
	// children.
	entry Node

	// children is this region's ordered list of immediate child nodes.
	children []Node

	// ExitBasicBlock is the basic block control reaches after this region runs, if known.
	ExitBasicBlock *ir.BasicBlock

	// LoopCondition is the condition node of a DoWhile region's trailing test.
	LoopCondition Node

	// Switch-only fields, populated when Kind == Switch.
	SwitchNode      Node
	SwitchTerm      *ir.Term
	JumpTableSize   int
	BoundsCheckNode Node
	DefaultBlock    *ir.BasicBlock
}

// NewRegion allocates a region of the given kind. It is not yet attached to any graph; callers
// add it to a parent region with Graph.AddNode (for the graph's root) or install it over
// existing children with Graph.AddSubregion.
func NewRegion(kind RegionKind) *Region {
	return &Region{Kind: kind}
}

// EntryBasicBlock returns the entry basic block of this region's entry node, recursively.
func (r *Region) EntryBasicBlock() *ir.BasicBlock {
	if r.entry == nil {
		return nil
	}
	return r.entry.EntryBasicBlock()
}

// Entry returns the region's entry node.
func (r *Region) Entry() Node { return r.entry }

// Children returns the region's ordered child nodes.
func (r *Region) Children() []Node { return r.children }

// SetEntry sets the region's entry node. It panics if entry is not already a member of the
// region's children, enforcing the invariant that a region's entry node is among its child nodes
// at the point of mutation rather than leaving it to be discovered later.
func (r *Region) SetEntry(entry Node) {
	if entry == nil {
		panic("sgraph: region entry must not be nil")
	}
	if !r.hasChild(entry) {
		panic("sgraph: region entry must belong to the region")
	}
	r.entry = entry
}

func (r *Region) hasChild(n Node) bool {
	for _, c := range r.children {
		if c == n {
			return true
		}
	}
	return false
}

// IsCondition reports whether this region is a COMPOUND_CONDITION, the only region kind that can
// itself serve as a condition node for a further reduction.
func (r *Region) IsCondition() bool { return r.Kind == CompoundCondition }
