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

package likeprint

import "github.com/likec-project/decompiler/liketree"

// rangeBuilder assembles a RangeTree alongside a single pass of printing: onStart pushes a new
// RangeNode positioned relative to whatever is currently on top of the stack, and onEnd pops it,
// fixing its size from how far printing has advanced since it was pushed.
type rangeBuilder struct {
	stack []rangeFrame
	root  *RangeNode
}

type rangeFrame struct {
	node     *RangeNode
	position int
}

func (b *rangeBuilder) onStart(data liketree.TreeNode, position int) {
	if len(b.stack) == 0 {
		b.root = NewRangeNode(data, 0)
		b.stack = append(b.stack, rangeFrame{node: b.root, position: position})
		return
	}
	top := b.stack[len(b.stack)-1]
	child := top.node.AddChild(NewRangeNode(data, position-top.position))
	b.stack = append(b.stack, rangeFrame{node: child, position: position})
}

func (b *rangeBuilder) onEnd(data liketree.TreeNode, position int) {
	top := b.stack[len(b.stack)-1]
	if top.node.Data != data {
		panic("likeprint: range builder onEnd/onStart mismatch")
	}
	top.node.SetSize(position - top.position)
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *rangeBuilder) finish() *RangeTree {
	return NewRangeTree(b.root)
}
