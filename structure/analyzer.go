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

// Package structure implements the structural analyzer: the iterative graph-reduction engine
// that recognizes acyclic and cyclic control-flow patterns and collapses them into nested
// regions. It is the heart of the back-end's first half; the second half
// (package liketree et al.) consumes whatever region tree this package leaves behind, be it
// fully reduced or, for pathological input, still holding a handful of irreducible bare nodes.
package structure

import (
	"github.com/likec-project/decompiler/dataflow"
	"github.com/likec-project/decompiler/sgraph"
	"github.com/likec-project/decompiler/sgraph/dfs"
)

// Canceler reports whether the enclosing decompile has been asked to stop. The analyzer polls it
// only at fixpoint boundaries, never inside a single reduction.
type Canceler interface {
	Canceled() bool
}

// cancelFunc adapts a plain func() bool to Canceler, the way http.HandlerFunc adapts a function
// to an interface; most callers have no other use for a dedicated type.
type cancelFunc func() bool

func (f cancelFunc) Canceled() bool { return f() }

// Never is a Canceler that is never canceled, useful for tests and for callers with no
// cancellation policy of their own.
var Never Canceler = cancelFunc(func() bool { return false })

// Analyzer performs structural analysis on one function's structural graph.
type Analyzer struct {
	graph    *sgraph.Graph
	dataflow dataflow.Oracle
	config   Config
	cancel   Canceler
}

// Config carries the tunables the switch recognizer needs; it is a narrow view of config.Config
// so this package does not have to import the whole configuration surface for one field.
type Config struct {
	SwitchExitJoinDegree int
}

// New builds an Analyzer over graph, consulting oracle for the dataflow facts the switch
// recognizer needs. cancel may be Never.
func New(graph *sgraph.Graph, oracle dataflow.Oracle, cfg Config, cancel Canceler) *Analyzer {
	if cancel == nil {
		cancel = Never
	}
	return &Analyzer{graph: graph, dataflow: oracle, config: cfg, cancel: cancel}
}

// Analyze runs structural analysis starting at the graph's root region.
// It never returns an error: an irreducible root region is a valid, if disappointing, outcome,
// and is left for the tree builder to render as goto/label code.
func (a *Analyzer) Analyze() {
	a.analyzeRegion(a.graph.Root())
}

// analyzeRegion repeatedly classifies region's children with a DFS and tries every reduction in
// priority order until a full pass makes no change.
func (a *Analyzer) analyzeRegion(region *sgraph.Region) {
	for {
		if a.cancel.Canceled() {
			return
		}

		result := dfs.Run(region)
		changed := false

		for _, n := range result.Postorder {
			if a.reduceCompoundCondition(region, n) {
				changed = true
				break
			}
		}
		if changed {
			continue
		}

		for _, n := range result.Postorder {
			if a.reduceCyclic(region, n, result) {
				changed = true
				break
			}
		}
		if changed {
			continue
		}

		for _, n := range result.Postorder {
			if a.reduceBlock(region, n) {
				changed = true
				break
			}
		}
		if changed {
			continue
		}

		for _, n := range result.Postorder {
			if a.reduceConditional(region, n) {
				changed = true
				break
			}
		}
		if changed {
			continue
		}

		for _, n := range result.Postorder {
			if a.reduceSwitch(region, n) || a.reduceHopelessConditional(region, n) {
				changed = true
				break
			}
		}
		if !changed {
			return
		}
	}
}
