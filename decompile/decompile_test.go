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

package decompile_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/likec-project/decompiler/dataflow"
	"github.com/likec-project/decompiler/decompile"
	"github.com/likec-project/decompiler/ir"
	"github.com/likec-project/decompiler/sgraph"
)

// TestMain asserts that a Run leaves no goroutines behind, directly exercising spec §5's claim
// that the core is single-threaded and synchronous: nothing in decompile.Run spawns a goroutine,
// waits on a channel, or otherwise hands control to another thread.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func addr(a uint64) *uint64 { return &a }

func condJump(then, els *ir.BasicBlock) *ir.Statement {
	cond := &ir.Term{Kind: ir.IntegerConstant, BitWidth: 1, IntegerValue: 1}
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

func TestRunRejectsNilFunction(t *testing.T) {
	_, err := decompile.Run(decompile.Input{Oracle: dataflow.Never})
	require.ErrorIs(t, err, decompile.ErrNilFunction)
}

func TestRunRejectsFunctionWithoutEntry(t *testing.T) {
	_, err := decompile.Run(decompile.Input{Function: &ir.Function{}, Oracle: dataflow.Never})
	require.ErrorIs(t, err, decompile.ErrNilFunction)
}

func TestRunRejectsNilOracle(t *testing.T) {
	entry := &ir.BasicBlock{Address: addr(0)}
	fn := &ir.Function{Name: "f", Entry: entry, Blocks: []*ir.BasicBlock{entry}}

	_, err := decompile.Run(decompile.Input{Function: fn})
	require.ErrorIs(t, err, decompile.ErrNilOracle)
}

// TestRunReducesIfThenElse exercises the wiring from ir.Function through cfgview and into
// sgraph.Graph: a two-armed diamond comes back as an IF_THEN_ELSE region beside its join block
// at the root, with graph invariants intact. The root, left with those two top-level children, is
// the one region reported as Irreducible; the recognized IF_THEN_ELSE region is not.
func TestRunReducesIfThenElse(t *testing.T) {
	entry := &ir.BasicBlock{Address: addr(0)}
	left := &ir.BasicBlock{Address: addr(1)}
	right := &ir.BasicBlock{Address: addr(2)}
	join := &ir.BasicBlock{Address: addr(3)}

	entry.Statements = []*ir.Statement{condJump(left, right)}
	left.Statements = []*ir.Statement{gotoStmt(join)}
	right.Statements = []*ir.Statement{gotoStmt(join)}

	fn := &ir.Function{
		Name:   "diamond",
		Entry:  entry,
		Blocks: []*ir.BasicBlock{entry, left, right, join},
	}

	out, err := decompile.Run(decompile.Input{Function: fn, Oracle: dataflow.Never})
	require.NoError(t, err)
	require.NoError(t, sgraph.CheckInvariants(out.Graph))
	require.Len(t, out.Diagnostics, 1)
	require.Equal(t, decompile.Irreducible, out.Diagnostics[0].Kind)
	require.Same(t, out.Graph.Root(), out.Diagnostics[0].Region)

	root := out.Graph.Root()
	require.Len(t, root.Children(), 2)

	var ifThenElse *sgraph.Region
	for _, n := range root.Children() {
		if r, ok := n.(*sgraph.Region); ok {
			ifThenElse = r
		}
	}
	require.NotNil(t, ifThenElse)
	require.Equal(t, sgraph.IfThenElse, ifThenElse.Kind)
}

// TestRunReportsIrreducible exercises scenario S6: a pathological pair of forks that share both
// successors leaves one fork stranded at the root once the other reduces, and Run must surface
// that as an Irreducible diagnostic rather than silently dropping it.
func TestRunReportsIrreducible(t *testing.T) {
	entryBlk := &ir.BasicBlock{Address: addr(0)}
	twin := &ir.BasicBlock{Address: addr(1)}
	left := &ir.BasicBlock{Address: addr(2)}
	right := &ir.BasicBlock{Address: addr(3)}

	entryBlk.Statements = []*ir.Statement{condJump(left, right)}
	twin.Statements = []*ir.Statement{condJump(left, right)}

	fn := &ir.Function{
		Name:   "sharedSuccessors",
		Entry:  entryBlk,
		Blocks: []*ir.BasicBlock{entryBlk, twin, left, right},
	}

	out, err := decompile.Run(decompile.Input{Function: fn, Oracle: dataflow.Never})
	require.NoError(t, err)
	require.NoError(t, sgraph.CheckInvariants(out.Graph))
	require.NotEmpty(t, out.Diagnostics)

	var found bool
	for _, d := range out.Diagnostics {
		if d.Kind == decompile.Irreducible {
			found = true
		}
	}
	require.True(t, found, "expected an Irreducible diagnostic for the root region")
}

// TestRunHonorsCancellation exercises spec §5's cooperative cancellation: a Canceler that
// reports true immediately must stop the analyzer before any reduction happens, and the run must
// still return a usable (if unreduced) graph plus a CancellationRequested diagnostic, never an
// error.
func TestRunHonorsCancellation(t *testing.T) {
	entry := &ir.BasicBlock{Address: addr(0)}
	left := &ir.BasicBlock{Address: addr(1)}
	right := &ir.BasicBlock{Address: addr(2)}
	join := &ir.BasicBlock{Address: addr(3)}

	entry.Statements = []*ir.Statement{condJump(left, right)}
	left.Statements = []*ir.Statement{gotoStmt(join)}
	right.Statements = []*ir.Statement{gotoStmt(join)}

	fn := &ir.Function{
		Name:   "diamond",
		Entry:  entry,
		Blocks: []*ir.BasicBlock{entry, left, right, join},
	}

	out, err := decompile.Run(decompile.Input{
		Function: fn,
		Oracle:   dataflow.Never,
		Cancel:   alwaysCanceled{},
	})
	require.NoError(t, err)
	require.Len(t, out.Graph.Root().Children(), 4, "no reduction should have run")

	var found bool
	for _, d := range out.Diagnostics {
		if d.Kind == decompile.CancellationRequested {
			found = true
		}
	}
	require.True(t, found, "expected a CancellationRequested diagnostic")
}

type alwaysCanceled struct{}

func (alwaysCanceled) Canceled() bool { return true }
