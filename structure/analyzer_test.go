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

package structure_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/likec-project/decompiler/dataflow"
	"github.com/likec-project/decompiler/ir"
	"github.com/likec-project/decompiler/sgraph"
	"github.com/likec-project/decompiler/structure"
)

// nullOracle answers every dataflow question negatively; tests that never exercise switch
// recognition can use it as a stand-in Oracle.
type nullOracle struct{}

func (nullOracle) AbstractValue(*ir.Term) *dataflow.AbstractValue            { return nil }
func (nullOracle) MemoryLocation(*ir.Term) *ir.MemoryLocation                { return nil }
func (nullOracle) Definitions(*ir.Term) []dataflow.ReachingDefinition        { return nil }
func (nullOracle) RecognizeArrayAccess(*ir.Term) (*ir.Term, int, bool)       { return nil, 0, false }
func (nullOracle) GetFirstCopy(t *ir.Term) *ir.Term                         { return t }
func (nullOracle) RecognizeBoundsCheck(*ir.Statement, *ir.BasicBlock) (*ir.Term, int64, bool) {
	return nil, 0, false
}

func addr(a uint64) *uint64 { return &a }

func condJump(cond *ir.Term, then, els *ir.BasicBlock) *ir.Statement {
	return &ir.Statement{
		Kind:       ir.JumpStatement,
		Condition:  cond,
		ThenTarget: &ir.JumpTarget{Block: then},
		ElseTarget: &ir.JumpTarget{Block: els},
	}
}

func gotoStmt(target *ir.BasicBlock) *ir.Statement {
	return &ir.Statement{Kind: ir.JumpStatement, ThenTarget: &ir.JumpTarget{Block: target}}
}

func someCond() *ir.Term {
	return &ir.Term{Kind: ir.IntegerConstant, BitWidth: 1, IntegerValue: 1}
}

// buildGraph wires up blocks into a graph rooted at an Unknown region, one BasicNode per block,
// with edges following each block's jump successors.
func buildGraph(t *testing.T, blocks []*ir.BasicBlock) *sgraph.Graph {
	t.Helper()
	g := sgraph.NewGraph()
	nodes := make(map[*ir.BasicBlock]*sgraph.BasicNode, len(blocks))
	for _, b := range blocks {
		nodes[b] = g.NewBasicNode(g.Root(), b)
	}
	for _, b := range blocks {
		jump := b.Jump()
		if jump == nil {
			continue
		}
		for _, succ := range jump.ThenTarget.Successors() {
			g.CreateEdge(nodes[b], nodes[succ])
		}
		if jump.ElseTarget != nil {
			for _, succ := range jump.ElseTarget.Successors() {
				g.CreateEdge(nodes[b], nodes[succ])
			}
		}
	}
	g.Root().SetEntry(nodes[blocks[0]])
	return g
}

// TestAnalyzeIfThenElse exercises S-shaped (diamond) control flow: a fork whose two branches
// rejoin at a common successor should collapse to a single IF_THEN_ELSE region.
func TestAnalyzeIfThenElse(t *testing.T) {
	entry := &ir.BasicBlock{Address: addr(0)}
	left := &ir.BasicBlock{Address: addr(1)}
	right := &ir.BasicBlock{Address: addr(2)}
	join := &ir.BasicBlock{Address: addr(3)}

	entry.Statements = []*ir.Statement{condJump(someCond(), left, right)}
	left.Statements = []*ir.Statement{gotoStmt(join)}
	right.Statements = []*ir.Statement{gotoStmt(join)}

	g := buildGraph(t, []*ir.BasicBlock{entry, left, right, join})

	a := structure.New(g, nullOracle{}, structure.Config{SwitchExitJoinDegree: 2}, nil)
	a.Analyze()

	require.NoError(t, sgraph.CheckInvariants(g))

	root := g.Root()
	require.Len(t, root.Children(), 2)

	var ifThenElse *sgraph.Region
	for _, n := range root.Children() {
		if r, ok := n.(*sgraph.Region); ok {
			ifThenElse = r
		}
	}
	require.NotNil(t, ifThenElse, "expected one region child")
	require.Equal(t, sgraph.IfThenElse, ifThenElse.Kind)
	require.Len(t, ifThenElse.Children(), 3)
}

// TestAnalyzeCompoundLoopCondition exercises scenario S1 (compound loop condition): a while loop
// guarded by a short-circuit && condition should yield a WHILE region whose entry is itself a
// COMPOUND_CONDITION region.
func TestAnalyzeCompoundLoopCondition(t *testing.T) {
	head := &ir.BasicBlock{Address: addr(0)}
	second := &ir.BasicBlock{Address: addr(1)}
	body := &ir.BasicBlock{Address: addr(2)}
	after := &ir.BasicBlock{Address: addr(3)}

	// head: if (c1) goto second else goto after
	// second: if (c2) goto body else goto after
	// body: goto head
	head.Statements = []*ir.Statement{condJump(someCond(), second, after)}
	second.Statements = []*ir.Statement{condJump(someCond(), body, after)}
	body.Statements = []*ir.Statement{gotoStmt(head)}

	g := buildGraph(t, []*ir.BasicBlock{head, second, body, after})

	a := structure.New(g, nullOracle{}, structure.Config{SwitchExitJoinDegree: 2}, nil)
	a.Analyze()

	require.NoError(t, sgraph.CheckInvariants(g))

	root := g.Root()
	require.Len(t, root.Children(), 2)

	var loop *sgraph.Region
	for _, n := range root.Children() {
		if r, ok := n.(*sgraph.Region); ok {
			loop = r
		}
	}
	require.NotNil(t, loop, "expected one region child")
	require.Equal(t, sgraph.While, loop.Kind)
	require.Equal(t, after, loop.ExitBasicBlock)

	entry, ok := loop.Entry().(*sgraph.Region)
	require.True(t, ok)
	require.Equal(t, sgraph.CompoundCondition, entry.Kind)
}

// TestAnalyzeIrreducibleFallsBackToHopelessConditional exercises scenario S6: two forks (entry
// and a disconnected twin P) share both of their successors, so neither IF_THEN nor IF_THEN_ELSE
// ever applies (each successor has two incoming edges, never one) and no loop exists either. One
// of the two forks must still reduce via the unconditional fallback, and the resulting graph
// still satisfies every structural invariant even though the other fork is left stranded with its
// duplicate edges into the new region cancelled.
func TestAnalyzeIrreducibleFallsBackToHopelessConditional(t *testing.T) {
	entry := &ir.BasicBlock{Address: addr(0)}
	twin := &ir.BasicBlock{Address: addr(1)}
	left := &ir.BasicBlock{Address: addr(2)}
	right := &ir.BasicBlock{Address: addr(3)}

	entry.Statements = []*ir.Statement{condJump(someCond(), left, right)}
	twin.Statements = []*ir.Statement{condJump(someCond(), left, right)}

	g := buildGraph(t, []*ir.BasicBlock{entry, twin, left, right})

	a := structure.New(g, nullOracle{}, structure.Config{SwitchExitJoinDegree: 2}, nil)
	a.Analyze()

	require.NoError(t, sgraph.CheckInvariants(g))

	var foundHopeless bool
	for _, n := range g.Root().Children() {
		if r, ok := n.(*sgraph.Region); ok && r.Kind == sgraph.IfThenElse {
			foundHopeless = true
		}
	}
	require.True(t, foundHopeless, "expected one fork to fall back to an unconditional IF_THEN_ELSE")
}
