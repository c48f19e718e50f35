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

// Package loopexplorer identifies the natural loop of a candidate loop header: a two-color sweep that walks backward from every back edge targeting the header, then
// forward from the header through the nodes that backward sweep reached.
package loopexplorer

import (
	"github.com/likec-project/decompiler/sgraph"
	"github.com/likec-project/decompiler/sgraph/dfs"
)

type color int

const (
	white color = iota
	gray
	black
)

// Explore returns the nodes of entry's natural loop, given the DFS result for entry's parent
// region. It returns nil (an empty set) when no back edge targets entry, matching the contract
// that package structure's reduceCyclic step uses to decide there is no loop here at all.
func Explore(entry sgraph.Node, result *dfs.Result) []sgraph.Node {
	colors := make(map[sgraph.Node]color)

	var backwardVisit func(n sgraph.Node)
	backwardVisit = func(n sgraph.Node) {
		colors[n] = gray
		if n == entry {
			return
		}
		for _, e := range n.InEdges() {
			if tail := e.Tail(); tail != nil && colors[tail] == white {
				backwardVisit(tail)
			}
		}
	}

	for _, e := range entry.InEdges() {
		if t, ok := result.EdgeType(e); ok && t == dfs.Back {
			if tail := e.Tail(); tail != nil && colors[tail] == white {
				backwardVisit(tail)
			}
		}
	}

	var loopNodes []sgraph.Node
	var forwardVisit func(n sgraph.Node)
	forwardVisit = func(n sgraph.Node) {
		colors[n] = black
		loopNodes = append(loopNodes, n)
		for _, e := range n.OutEdges() {
			if head := e.Head(); head != nil && colors[head] == gray {
				forwardVisit(head)
			}
		}
	}

	if colors[entry] == gray {
		forwardVisit(entry)
	}

	return loopNodes
}
