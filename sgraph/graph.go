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

// Graph owns every node and edge of one function's structural graph. It is built once from a
// cfgview.View (one BasicNode per reachable-or-not basic block, one Edge per CFG successor edge)
// and then mutated in place by package structure until its root region contains no further
// recognizable pattern.
type Graph struct {
	root *Region

	// nodes and edges are retained here purely for enumeration (debug dumps, snapshot tests,
	// and the invariant checker in invariants.go); ownership is what "retained" means in Go.
	// There is no separate free/delete step: a node or edge is simply unreachable from Root once
	// it is fully disconnected.
	nodes []Node
	edges []*Edge
}

// NewGraph allocates a graph whose root region starts empty and Unknown.
func NewGraph() *Graph {
	g := &Graph{}
	root := NewRegion(Unknown)
	g.root = root
	g.nodes = append(g.nodes, root)
	return g
}

// Root returns the graph's root region. The root has no parent, ever.
func (g *Graph) Root() *Region { return g.root }

// Nodes returns every node the graph has ever allocated, including ones now fully disconnected
// from the root by a completed AddSubregion. Used by invariant checks and debug dumps only.
func (g *Graph) Nodes() []Node { return g.nodes }

// AddNode allocates ownership of n to the graph (if not already tracked) and appends it to
// region's child list, setting n's parent pointer.
func (g *Graph) AddNode(region *Region, n Node) {
	n.common().parent = region
	region.children = append(region.children, n)
	if !contains(g.nodes, n) {
		g.nodes = append(g.nodes, n)
	}
}

// NewBasicNode allocates a BasicNode over block and adds it to region.
func (g *Graph) NewBasicNode(region *Region, block *ir.BasicBlock) *BasicNode {
	n := NewBasicNode(block)
	g.AddNode(region, n)
	return n
}

// CreateEdge allocates an edge owned by the graph from tail to head, appending it to tail's
// out-edges and head's in-edges. Both endpoints must be
// non-nil; a freshly created edge is never born deleted.
func (g *Graph) CreateEdge(tail, head Node) *Edge {
	if tail == nil || head == nil {
		panic("sgraph: CreateEdge requires non-nil tail and head")
	}
	e := &Edge{tail: tail, head: head}
	appendTo(tail, e, true)
	appendTo(head, e, false)
	g.edges = append(g.edges, e)
	return e
}

// SetTail removes e from its old tail's out-edges (if any) and adds it to newTail's out-edges.
// newTail == nil logically deletes the edge's tail side; consumers must treat an edge with a nil
// endpoint as deleted.
func (g *Graph) SetTail(e *Edge, newTail Node) {
	removeFrom(e.tail, e, true)
	e.tail = newTail
	appendTo(newTail, e, true)
}

// SetHead removes e from its old head's in-edges (if any) and adds it to newHead's in-edges.
// newHead == nil logically deletes the edge's head side.
func (g *Graph) SetHead(e *Edge, newHead Node) {
	removeFrom(e.head, e, false)
	e.head = newHead
	appendTo(newHead, e, false)
}

// DeleteEdge nulls out both of e's endpoints, removing it from whatever edge lists still held
// it. This is the graph's only deletion primitive; both AddSubregion's edge cancellation and the
// cyclic reducer's continue-edge removal go through it.
func (g *Graph) DeleteEdge(e *Edge) {
	g.SetTail(e, nil)
	g.SetHead(e, nil)
}

// contains reports whether needle is present in haystack, by pointer identity.
func contains(haystack []Node, needle Node) bool {
	for _, n := range haystack {
		if n == needle {
			return true
		}
	}
	return false
}

// AddSubregion is the critical structural-graph operation. Given region (the subregion's new
// parent) and a subregion whose children are currently children of region, it:
//
//  1. removes the subregion's nodes from region's own child list,
//  2. adds the subregion itself as a child of region,
//  3. redirects every edge whose tail was inside the subregion and whose head is in region so its
//     tail becomes the subregion,
//  4. redirects every edge whose head was the subregion's entry and whose tail is in region so
//     its head becomes the subregion,
//  5. cancels every other edge crossing the region/subregion boundary (duplicate in-edges not
//     targeting the entry, and every out-edge after the first to a given destination), and
//  6. promotes the subregion to be region's own entry if region's old entry ended up inside the
//     subregion.
//
// See SPEC_FULL.md §12 for the classification of which edges get cancelled versus redirected.
func (g *Graph) AddSubregion(region *Region, subregion *Region) {
	// Step 1: remove subregion's nodes from region's child list.
	kept := region.children[:0:0]
	for _, n := range region.children {
		if n.common().parent != subregion {
			kept = append(kept, n)
		}
	}
	region.children = kept

	// Step 2: subregion becomes a child of region.
	g.AddNode(region, subregion)

	var edgesToSubregion, edgesFromSubregion, duplicateEdges []*Edge
	var tailsSeen, headsSeen []Node

	for _, n := range subregion.Children() {
		for _, e := range n.InEdges() {
			if e.Tail() == nil {
				continue
			}
			if e.Tail().common().parent == region {
				if e.Head() == subregion.Entry() && !contains(tailsSeen, e.Tail()) {
					edgesToSubregion = append(edgesToSubregion, e)
					tailsSeen = append(tailsSeen, e.Tail())
				} else {
					duplicateEdges = append(duplicateEdges, e)
				}
			}
		}
		for _, e := range n.OutEdges() {
			if e.Head() == nil {
				continue
			}
			if e.Head().common().parent == region {
				if !contains(headsSeen, e.Head()) {
					edgesFromSubregion = append(edgesFromSubregion, e)
					headsSeen = append(headsSeen, e.Head())
				} else {
					duplicateEdges = append(duplicateEdges, e)
				}
			}
		}
	}

	for _, e := range edgesToSubregion {
		g.SetHead(e, subregion)
	}
	for _, e := range edgesFromSubregion {
		g.SetTail(e, subregion)
	}
	for _, e := range duplicateEdges {
		g.DeleteEdge(e)
	}

	// Step 6: if region's entry ended up inside the subregion, the subregion is the new entry.
	if region.entry != nil && region.entry.common().parent == subregion {
		region.entry = subregion
	}
}
