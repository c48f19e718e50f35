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

package liketype

import "fmt"

// Table interns every Type a single LikeC tree uses, so pointer equality implies structural
// equality.
// Struct types are interned by declaration identity, not by structural recursion, since a struct
// may legitimately contain a pointer to itself.
type Table struct {
	erroneous *Type
	voidType  *Type

	integers map[integerKey]*Type
	floats   map[int]*Type
	pointers map[pointerKey]*Type
	arrays   map[arrayKey]*Type
	structs  map[*StructDeclaration]*Type
	funcs    map[string]*Type
}

type integerKey struct {
	width    int
	unsigned bool
}

type pointerKey struct {
	width   int
	pointee *Type
}

type arrayKey struct {
	width   int
	element *Type
	length  int
}

// NewTable allocates an empty interning table.
func NewTable() *Table {
	return &Table{
		integers: make(map[integerKey]*Type),
		floats:   make(map[int]*Type),
		pointers: make(map[pointerKey]*Type),
		arrays:   make(map[arrayKey]*Type),
		structs:  make(map[*StructDeclaration]*Type),
		funcs:    make(map[string]*Type),
	}
}

// Erroneous returns the table's single interned erroneous-type value, allocating it on first use.
func (tb *Table) Erroneous() *Type {
	if tb.erroneous == nil {
		tb.erroneous = &Type{kind: Erroneous, bitWidth: -1}
	}
	return tb.erroneous
}

// Void returns the table's single interned void type.
func (tb *Table) Void() *Type {
	if tb.voidType == nil {
		tb.voidType = &Type{kind: Void, bitWidth: 0}
	}
	return tb.voidType
}

// Integer returns the interned integer type of the given width and signedness, by (width,
// signedness).
func (tb *Table) Integer(bitWidth int, unsigned bool) *Type {
	key := integerKey{width: bitWidth, unsigned: unsigned}
	if t, ok := tb.integers[key]; ok {
		return t
	}
	t := &Type{kind: Integer, bitWidth: bitWidth, unsigned: unsigned}
	tb.integers[key] = t
	return t
}

// Float returns the interned float type of the given width.
func (tb *Table) Float(bitWidth int) *Type {
	if t, ok := tb.floats[bitWidth]; ok {
		return t
	}
	t := &Type{kind: Float, bitWidth: bitWidth}
	tb.floats[bitWidth] = t
	return t
}

// Pointer returns the interned pointer-to-pointee type of the given width, by (width, pointee).
func (tb *Table) Pointer(bitWidth int, pointee *Type) *Type {
	key := pointerKey{width: bitWidth, pointee: pointee}
	if t, ok := tb.pointers[key]; ok {
		return t
	}
	t := &Type{kind: Pointer, bitWidth: bitWidth, pointee: pointee}
	tb.pointers[key] = t
	return t
}

// Array returns the interned array type, by (width, element, length).
func (tb *Table) Array(bitWidth int, element *Type, length int) *Type {
	key := arrayKey{width: bitWidth, element: element, length: length}
	if t, ok := tb.arrays[key]; ok {
		return t
	}
	t := &Type{kind: Array, bitWidth: bitWidth, pointee: element, length: length}
	tb.arrays[key] = t
	return t
}

// Struct returns the interned struct type for decl, creating it on first use. decl's identity is
// the interning key: two different *StructDeclaration values are always distinct types even if
// their members happen to match today, since addMember can still diverge them later.
func (tb *Table) Struct(decl *StructDeclaration) *Type {
	if t, ok := tb.structs[decl]; ok {
		return t
	}
	t := &Type{kind: Struct, decl: decl}
	tb.structs[decl] = t
	return t
}

// NewStructDeclaration allocates a fresh, empty struct declaration with the given identifier.
func (tb *Table) NewStructDeclaration(identifier string) *StructDeclaration {
	return &StructDeclaration{Identifier: identifier}
}

// FunctionPointer returns the interned function-pointer type for the given signature, by
// (width, return type, param types, variadic) folded into a single string key for simplicity.
func (tb *Table) FunctionPointer(bitWidth int, returnType *Type, params []*Type, variadic bool) *Type {
	key := fmt.Sprintf("%d|%p|%v|%v", bitWidth, returnType, params, variadic)
	if t, ok := tb.funcs[key]; ok {
		return t
	}
	t := &Type{
		kind:       FunctionPointer,
		bitWidth:   bitWidth,
		returnType: returnType,
		params:     append([]*Type(nil), params...),
		variadic:   variadic,
	}
	tb.funcs[key] = t
	return t
}
