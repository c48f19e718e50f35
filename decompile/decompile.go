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

// Package decompile is the single coordinating entry point for one function's back-end
// decompile: it wires an ir.Function and a dataflow.Oracle into a structural graph, drives the
// structural analyzer to a fixpoint, and hands back whatever the analyzer left, fully reduced or
// not, for an external tree builder to walk into a LikeC tree. It mirrors nilaway.go's top-level
// Analyzer/run shape: a hard Go error is reserved for programmer-error-class problems (a nil
// function, a nil oracle); every input-derived failure the structural analyzer or its
// recognizers hit is instead folded into a Diagnostic and the run proceeds best-effort.
package decompile

import (
	"errors"
	"fmt"

	"github.com/likec-project/decompiler/config"
	"github.com/likec-project/decompiler/dataflow"
	"github.com/likec-project/decompiler/ir"
	"github.com/likec-project/decompiler/ir/cfgview"
	"github.com/likec-project/decompiler/sgraph"
	"github.com/likec-project/decompiler/structure"
)

// ErrNilFunction is returned when Input.Function or its entry block is nil.
var ErrNilFunction = errors.New("decompile: function and its entry block must be non-nil")

// ErrNilOracle is returned when Input.Oracle is nil: the structural analyzer's switch
// recognizer cannot run without somewhere to ask dataflow questions, even
// if the answer is always "unknown" (callers with nothing to ask use dataflow.Never instead of
// passing nil).
var ErrNilOracle = errors.New("decompile: dataflow oracle must be non-nil")

// Input bundles everything one decompile run needs from its callers.
type Input struct {
	// Function is the lifted function to structure. Function and Function.Entry must be
	// non-nil.
	Function *ir.Function
	// Oracle answers dataflow questions the switch recognizer needs.
	// Must be non-nil; callers with nothing to ask should pass dataflow.Never rather than nil.
	Oracle dataflow.Oracle
	// Config carries the target platform's scalar widths and the switch recognizer's
	// exit-join-degree threshold. A nil Config is replaced with config.Default().
	Config *config.Config
	// Cancel is polled at the structural analyzer's fixpoint boundaries. A nil Cancel is
	// replaced with structure.Never.
	Cancel structure.Canceler
}

// DiagnosticKind classifies a Diagnostic, mirroring the error taxonomy of spec §7: every kind
// here is a recovered, best-effort fallback, never a hard failure of the run itself.
type DiagnosticKind int

const (
	// Irreducible marks a region the structural analyzer's fixpoint left with more than one
	// child: no pattern in the priority list matched, and the tree builder must fall back to
	// goto/label output for it.
	Irreducible DiagnosticKind = iota
	// CancellationRequested marks a run that stopped partway through because its Canceler
	// reported true at a fixpoint boundary.
	CancellationRequested
)

// String renders a DiagnosticKind for test failure messages and debug dumps.
func (k DiagnosticKind) String() string {
	switch k {
	case Irreducible:
		return "irreducible"
	case CancellationRequested:
		return "cancellation-requested"
	default:
		return "invalid"
	}
}

// Diagnostic records one best-effort fallback taken during a run, the way analysis.Diagnostic
// records one finding of a go/analysis pass: a kind, a human-readable message, and an optional
// reference to the structural-graph region it concerns.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	// Region is the region the diagnostic concerns, or nil when it concerns the whole run
	// rather than one region (e.g. CancellationRequested).
	Region *sgraph.Region
}

// Output is what one decompile run produces: the structural graph (reduced as far as the
// analyzer could take it) and any diagnostics accumulated along the way. The CFG view is
// included because the tree builder needs it to resolve fall-through edges the structural graph
// itself no longer carries once a region has been reduced away.
type Output struct {
	Graph       *sgraph.Graph
	CFG         *cfgview.View
	Diagnostics []Diagnostic
}

// Run builds a structural graph over input.Function's CFG and reduces it to a fixpoint. It
// never returns a non-nil error for an input-derived failure: an irreducible region and a
// cancellation are both recorded as Diagnostics on the returned Output rather than failing the
// call.
func Run(input Input) (*Output, error) {
	if input.Function == nil || input.Function.Entry == nil {
		return nil, fmt.Errorf("%w", ErrNilFunction)
	}
	if input.Oracle == nil {
		return nil, fmt.Errorf("%w", ErrNilOracle)
	}

	cfg := input.Config
	if cfg == nil {
		cfg = config.Default()
	}
	cancel := input.Cancel
	if cancel == nil {
		cancel = structure.Never
	}

	view := cfgview.Build(input.Function)
	graph := buildGraph(view)

	analyzer := structure.New(graph, input.Oracle, structure.Config{
		SwitchExitJoinDegree: cfg.SwitchExitJoinDegree,
	}, cancel)
	analyzer.Analyze()

	out := &Output{Graph: graph, CFG: view}
	if cancel.Canceled() {
		out.Diagnostics = append(out.Diagnostics, Diagnostic{
			Kind:    CancellationRequested,
			Message: "decompile: cancellation requested before the structural graph reached a fixpoint",
		})
	}
	collectIrreducible(graph.Root(), &out.Diagnostics)
	return out, nil
}

// buildGraph wires one sgraph.BasicNode per basic block in view, plus one sgraph.Edge per CFG
// successor edge, all parented directly under graph's root region — exactly the starting shape
// package structure's reduceXxx passes expect to find before the first fixpoint iteration.
func buildGraph(view *cfgview.View) *sgraph.Graph {
	graph := sgraph.NewGraph()
	nodes := make(map[*ir.BasicBlock]*sgraph.BasicNode, len(view.Blocks()))
	for _, b := range view.Blocks() {
		nodes[b] = graph.NewBasicNode(graph.Root(), b)
	}
	for _, b := range view.Blocks() {
		for _, succ := range view.Successors(b) {
			graph.CreateEdge(nodes[b], nodes[succ])
		}
	}
	return graph
}

// collectIrreducible walks region and its subregions, recording an Irreducible diagnostic for
// every region that no pattern matched (its kind is still Unknown) and whose fixpoint left more
// than one top-level child: spec §7's "emit straight-line code with goto + labels for the
// unresolved edges" fallback, made discoverable by the caller without having to re-walk the
// graph themselves.
func collectIrreducible(region *sgraph.Region, diags *[]Diagnostic) {
	if region.Kind == sgraph.Unknown && len(region.Children()) > 1 {
		*diags = append(*diags, Diagnostic{
			Kind:    Irreducible,
			Message: fmt.Sprintf("decompile: region left %d irreducible top-level nodes", len(region.Children())),
			Region:  region,
		})
	}
	for _, c := range region.Children() {
		if sub, ok := c.(*sgraph.Region); ok {
			collectIrreducible(sub, diags)
		}
	}
}
