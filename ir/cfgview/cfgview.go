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

// Package cfgview builds a read-only predecessor/successor oracle over an ir.Function's basic
// blocks. It is intentionally shaped like golang.org/x/tools/go/cfg's
// cfg.CFG/cfg.Block (Succs slices computed once, consulted many times) since that is the
// structural-graph builder's only source of edges before any reduction has happened.
package cfgview

import "github.com/likec-project/decompiler/ir"

// View is an immutable successor/predecessor oracle over one function's basic blocks. It is
// built once per decompile and never mutated; the structural graph (package sgraph) copies its
// edges into a mutable graph rather than writing through it.
type View struct {
	fn    *ir.Function
	succs map[*ir.BasicBlock][]*ir.BasicBlock
	preds map[*ir.BasicBlock][]*ir.BasicBlock
}

// Build computes a View over fn. It panics if fn or fn.Entry is nil: a CFG view with no entry
// block is a caller bug, not a recoverable decompile-time condition.
func Build(fn *ir.Function) *View {
	if fn == nil || fn.Entry == nil {
		panic("cfgview: function and its entry block must be non-nil")
	}

	v := &View{
		fn:    fn,
		succs: make(map[*ir.BasicBlock][]*ir.BasicBlock, len(fn.Blocks)),
		preds: make(map[*ir.BasicBlock][]*ir.BasicBlock, len(fn.Blocks)),
	}

	for _, b := range fn.Blocks {
		v.succs[b] = successorsOf(b)
	}
	for _, b := range fn.Blocks {
		for _, s := range v.succs[b] {
			v.preds[s] = append(v.preds[s], b)
		}
	}
	return v
}

// successorsOf computes the direct successor blocks of b by inspecting its trailing jump. A
// block with no jump (falls through) or whose jump targets are both nil has no successors as far
// as this view is concerned; the caller is expected to have lifted a well-formed function.
func successorsOf(b *ir.BasicBlock) []*ir.BasicBlock {
	jump := b.Jump()
	if jump == nil {
		return nil
	}

	var out []*ir.BasicBlock
	if jump.ThenTarget != nil {
		out = append(out, jump.ThenTarget.Successors()...)
	}
	if jump.ElseTarget != nil {
		out = append(out, jump.ElseTarget.Successors()...)
	}
	return out
}

// Function returns the function this view was built over.
func (v *View) Function() *ir.Function { return v.fn }

// Successors returns the direct successor blocks of b, in the order its jump lists them.
func (v *View) Successors(b *ir.BasicBlock) []*ir.BasicBlock { return v.succs[b] }

// Predecessors returns the blocks with a direct successor edge to b.
func (v *View) Predecessors(b *ir.BasicBlock) []*ir.BasicBlock { return v.preds[b] }

// Blocks returns every basic block of the underlying function, including unreachable ones.
func (v *View) Blocks() []*ir.BasicBlock { return v.fn.Blocks }
