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

package liketree

import "github.com/likec-project/decompiler/liketype"

// Tree is the root owner of one LikeC abstract syntax tree: its type table, the target platform's
// scalar sizes, and the function currently being assembled.
type Tree struct {
	types *liketype.Table

	intSize     int
	pointerSize int
	ptrdiffSize int

	Root *FunctionDefinition
}

// NewTree allocates an empty tree for a target platform whose int, pointer and ptrdiff_t widths
// are as given.
func NewTree(intSize, pointerSize, ptrdiffSize int) *Tree {
	return &Tree{
		types:       liketype.NewTable(),
		intSize:     intSize,
		pointerSize: pointerSize,
		ptrdiffSize: ptrdiffSize,
	}
}

// Types returns the tree's type interning table.
func (t *Tree) Types() *liketype.Table { return t.types }

// IntSize, PointerSize and PtrdiffSize expose the platform widths used by integer promotion,
// pointer arithmetic and pointer-difference type computation respectively.
func (t *Tree) IntSize() int      { return t.intSize }
func (t *Tree) PointerSize() int  { return t.pointerSize }
func (t *Tree) PtrdiffSize() int { return t.ptrdiffSize }

// IntType returns the platform's plain signed int type, the type used throughout typecalc.go as
// the result of comparisons and logical operators (C has no bool; it uses int).
func (t *Tree) IntType() *liketype.Type {
	return t.types.Integer(t.intSize, false)
}

// FunctionDefinition is the single function a Tree holds.
type FunctionDefinition struct {
	Name       string
	ReturnType *liketype.Type
	Params     []*VariableDeclaration
	Locals     []*VariableDeclaration
	Body       *Block
}

// VariableDeclaration declares one local variable or parameter.
type VariableDeclaration struct {
	Name string
	Type *liketype.Type
}
