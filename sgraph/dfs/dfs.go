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

// Package dfs implements the one-shot depth-first traversal the structural analyzer runs at the
// start of every reduction pass: it visits a region's children starting
// from the region's entry, falling back to scanning the child list for any node the entry
// doesn't reach (so unreachable fragments still get classified), and records a pre-order list, a
// post-order list, and an edge-type classification.
package dfs

import "github.com/likec-project/decompiler/sgraph"

// EdgeType classifies one edge relative to the DFS tree that discovered it.
type EdgeType int

// Edge types, named the way a DFS over a directed graph classifies them.
const (
	// Forward is an edge to a node not yet visited when the edge was examined.
	Forward EdgeType = iota
	// Back is an edge to a node currently on the DFS stack, evidence of a loop (GLOSSARY).
	Back
	// Cross is an edge to a node already fully explored, with no ancestor/descendant
	// relationship to the current node in the DFS tree.
	Cross
)

func (t EdgeType) String() string {
	switch t {
	case Forward:
		return "forward"
	case Back:
		return "back"
	case Cross:
		return "cross"
	default:
		return "invalid"
	}
}

// color tracks a node's DFS visitation state during the traversal.
type color int

const (
	white color = iota // unvisited
	gray               // on the current DFS stack
	black              // finished
)

// Result is the outcome of one DFS traversal over a region's children: a preorder list, a
// postorder list, and the type of every edge with both endpoints inside the region.
type Result struct {
	Preorder  []sgraph.Node
	Postorder []sgraph.Node

	edgeType map[*sgraph.Edge]EdgeType
}

// EdgeType returns the classification recorded for e, and true if e had both endpoints inside
// the traversed region. Edges leaving the region (to the parent, i.e. exit edges) are not
// classified.
func (r *Result) EdgeType(e *sgraph.Edge) (EdgeType, bool) {
	t, ok := r.edgeType[e]
	return t, ok
}

// Run performs a DFS over region's children, starting at region.Entry() and then visiting any
// remaining unvisited child (in child-list order) to cover unreachable fragments.
func Run(region *sgraph.Region) *Result {
	r := &Result{edgeType: make(map[*sgraph.Edge]EdgeType)}
	colors := make(map[sgraph.Node]color, len(region.Children()))
	for _, n := range region.Children() {
		colors[n] = white
	}

	var visit func(n sgraph.Node)
	visit = func(n sgraph.Node) {
		colors[n] = gray
		r.Preorder = append(r.Preorder, n)

		for _, e := range n.OutEdges() {
			head := e.Head()
			if head == nil || head.Parent() != region {
				continue // deleted edge, or an exit edge leaving the region
			}
			switch colors[head] {
			case white:
				r.edgeType[e] = Forward
				visit(head)
			case gray:
				r.edgeType[e] = Back
			case black:
				r.edgeType[e] = Cross
			}
		}

		colors[n] = black
		r.Postorder = append(r.Postorder, n)
	}

	if entry := region.Entry(); entry != nil && colors[entry] == white {
		visit(entry)
	}
	for _, n := range region.Children() {
		if colors[n] == white {
			visit(n)
		}
	}

	return r
}
