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

// Edge is a directed edge between two structural-graph nodes. Both endpoints are mutable: the
// structural analyzer rewires them in place as it installs subregions, and either endpoint being nil means the edge is logically deleted and must be
// ignored by every consumer (Graph.AddSubregion cancels edges this way instead of actually
// removing them from their owning slices, so iterating a stale edge list mid-rewrite never
// panics).
type Edge struct {
	tail, head Node
}

// Tail returns the edge's source node, or nil if the edge has been deleted.
func (e *Edge) Tail() Node { return e.tail }

// Head returns the edge's destination node, or nil if the edge has been deleted.
func (e *Edge) Head() Node { return e.head }

// removeFrom detaches e from n's appropriate edge list (out-edges if n == e.tail, in-edges if
// n == e.head). It is a no-op if e is not present, which happens when called on a nil endpoint.
func removeFrom(n Node, e *Edge, outgoing bool) {
	if n == nil {
		return
	}
	c := n.common()
	list := &c.inEdges
	if outgoing {
		list = &c.outEdges
	}
	for i, cur := range *list {
		if cur == e {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}

func appendTo(n Node, e *Edge, outgoing bool) {
	if n == nil {
		return
	}
	c := n.common()
	if outgoing {
		c.outEdges = append(c.outEdges, e)
	} else {
		c.inEdges = append(c.inEdges, e)
	}
}
