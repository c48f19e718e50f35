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

import "fmt"

// CheckInvariants verifies the properties that must hold after every public mutation of the
// structural graph: edge/edge-list symmetry (property 1), parent consistency (property 2), and
// entry membership (property 3). It is meant to be called from tests after a sequence of
// mutations, not from production code paths, entry-membership is additionally enforced eagerly
// by Region.SetEntry, so a violation surfacing here means a caller mutated children directly
// instead of going through the
// Graph API.
func CheckInvariants(g *Graph) error {
	for _, n := range g.nodes {
		for _, e := range n.OutEdges() {
			if e.Tail() != n {
				return fmt.Errorf("sgraph: edge in %T's out-edges has tail %v, want %v", n, e.Tail(), n)
			}
		}
		for _, e := range n.InEdges() {
			if e.Head() != n {
				return fmt.Errorf("sgraph: edge in %T's in-edges has head %v, want %v", n, e.Head(), n)
			}
		}
	}

	for _, e := range g.edges {
		if e.Tail() == nil || e.Head() == nil {
			continue // deleted edge, invariant 2 explicitly allows this
		}
		if !edgeListContains(e.Tail().OutEdges(), e) {
			return fmt.Errorf("sgraph: edge not present in tail's out-edges")
		}
		if !edgeListContains(e.Head().InEdges(), e) {
			return fmt.Errorf("sgraph: edge not present in head's in-edges")
		}
	}

	for _, n := range g.nodes {
		if n == Node(g.root) {
			continue
		}
		parent := n.Parent()
		if parent == nil {
			continue // disconnected by a completed AddSubregion; no longer part of the live tree
		}
		if !contains(parent.Children(), n) {
			return fmt.Errorf("sgraph: node's parent does not list it as a child")
		}
	}

	var checkEntry func(r *Region) error
	checkEntry = func(r *Region) error {
		if r.Entry() == nil {
			return nil // region not yet reduced to the point of having a settled entry
		}
		if !contains(r.Children(), r.Entry()) {
			return fmt.Errorf("sgraph: region entry %v is not among its children", r.Entry())
		}
		for _, c := range r.Children() {
			if sub, ok := c.(*Region); ok {
				if err := checkEntry(sub); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return checkEntry(g.root)
}

func edgeListContains(list []*Edge, e *Edge) bool {
	for _, cur := range list {
		if cur == e {
			return true
		}
	}
	return false
}
