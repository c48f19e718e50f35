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

// Package liketype implements the LikeC type system: a
// small fixed lattice of C-like types (void, integer, float, pointer, array, struct, function
// pointer, plus an erroneous placeholder) together with the interning table that guarantees two
// structurally equal types compare equal by identity.
package liketype

// Kind discriminates the variants of Type.
type Kind int

// Type kinds, named after the C-like shapes the type system models.
const (
	Erroneous Kind = iota
	Void
	Integer
	Float
	Pointer
	Array
	Struct
	FunctionPointer
)

// Type is an interned LikeC type. Every Type is owned by exactly one Table and compares equal to
// another Type of the same Table if and only if they describe the same structural type.
type Type struct {
	kind     Kind
	bitWidth int

	// Integer-only.
	unsigned bool

	// Pointer and Array share a payload: Array is a Pointer refinement carrying a length.
	pointee *Type
	length  int // valid iff kind == Array

	// Struct-only.
	decl *StructDeclaration

	// FunctionPointer-only.
	returnType *Type
	params     []*Type
	variadic   bool
}

// Kind returns t's discriminator.
func (t *Type) Kind() Kind { return t.kind }

// BitWidth returns t's size in bits, the way sizeof() does for every kind except Array, whose
// width is that of the pointer it decays to (see Sizeof). A Struct's width is the sum of its
// members' widths.
func (t *Type) BitWidth() int {
	if t.kind == Struct {
		return t.decl.bitWidth()
	}
	return t.bitWidth
}

// IsUnsigned reports whether an Integer type is unsigned. It panics if t is not an Integer type:
// signedness is only meaningful on an Integer type.
func (t *Type) IsUnsigned() bool {
	if t.kind != Integer {
		panic("liketype: IsUnsigned called on a non-integer type")
	}
	return t.unsigned
}

// Pointee returns the type a Pointer or Array points to / holds, or nil for any other kind.
func (t *Type) Pointee() *Type {
	if t.kind != Pointer && t.kind != Array {
		return nil
	}
	return t.pointee
}

// Length returns an Array's element count. It panics if t is not an Array.
func (t *Type) Length() int {
	if t.kind != Array {
		panic("liketype: Length called on a non-array type")
	}
	return t.length
}

// Declaration returns a Struct type's declaration, or nil for any other kind.
func (t *Type) Declaration() *StructDeclaration {
	if t.kind != Struct {
		return nil
	}
	return t.decl
}

// ReturnType, Params and Variadic describe a FunctionPointer type's signature; they are zero
// values for every other kind.
func (t *Type) ReturnType() *Type { return t.returnType }
func (t *Type) Params() []*Type   { return t.params }
func (t *Type) Variadic() bool    { return t.variadic }

// IsVoid, IsInteger, IsFloat, IsPointer, IsArray and IsStruct classify the type by kind, trading
// dynamic dispatch for a discriminator switch since Type carries no behavior of its own.
// IsPointer reports true for both Pointer and Array, since Array is a Pointer subvariant modeling
// C's array-to-pointer decay (spec invariant 3); IsArray narrows that to the Array kind alone.
func (t *Type) IsVoid() bool    { return t.kind == Void }
func (t *Type) IsInteger() bool { return t.kind == Integer }
func (t *Type) IsFloat() bool   { return t.kind == Float }
func (t *Type) IsPointer() bool { return t.kind == Pointer || t.kind == Array }
func (t *Type) IsArray() bool   { return t.kind == Array }
func (t *Type) IsStruct() bool  { return t.kind == Struct }

// IsArithmetic reports whether t is an Integer or Float type.
func (t *Type) IsArithmetic() bool { return t.IsInteger() || t.IsFloat() }

// IsScalar reports whether t is an arithmetic type or a (non-array) pointer. Arrays decay to
// pointers in most expression contexts but are not scalars themselves (spec invariant 3).
func (t *Type) IsScalar() bool { return t.IsArithmetic() || (t.IsPointer() && !t.IsArray()) }

// IsVoidPointer reports whether t is a pointer to void.
func (t *Type) IsVoidPointer() bool { return t.IsPointer() && t.pointee.IsVoid() }

// IsStructPointer reports whether t is a pointer to a struct.
func (t *Type) IsStructPointer() bool { return t.IsPointer() && t.pointee.IsStruct() }

// Sizeof returns t's size in bits for the C sizeof operator, as distinct from BitWidth: an
// Array's BitWidth is its decayed-pointer width (spec invariant 3), but its Sizeof is the product
// of its element's size and its length (spec invariant 2).
func (t *Type) Sizeof() int {
	if t.kind == Array {
		return t.pointee.Sizeof() * t.length
	}
	return t.BitWidth()
}

// MemberDeclaration is one field of a struct type: a bit offset (from the start of the struct)
// and the type stored there.
type MemberDeclaration struct {
	Name      string
	Type      *Type
	BitOffset int
}

// StructDeclaration is a struct type's out-of-line member list, shared by every Type value of
// that struct, so adding a member is visible through every existing reference to it.
type StructDeclaration struct {
	Identifier string
	members    []*MemberDeclaration
}

// Members returns the struct's fields in declaration order.
func (d *StructDeclaration) Members() []*MemberDeclaration { return d.members }

// AddMember appends a member at the end of the struct, at the bit offset the struct's current
// size already ends at.
func (d *StructDeclaration) AddMember(name string, t *Type) *MemberDeclaration {
	m := &MemberDeclaration{Name: name, Type: t, BitOffset: d.bitWidth()}
	d.members = append(d.members, m)
	return m
}

func (d *StructDeclaration) bitWidth() int {
	var total int
	for _, m := range d.members {
		total += m.Type.BitWidth()
	}
	return total
}

// MemberAt returns the member declaration starting exactly at the given bit offset, and whether
// one was found.
func (d *StructDeclaration) MemberAt(bitOffset int) (*MemberDeclaration, bool) {
	if bitOffset >= d.bitWidth() {
		return nil, false
	}
	current := 0
	for _, m := range d.members {
		if current == bitOffset {
			return m, true
		} else if current > bitOffset {
			break
		}
		current += m.Type.BitWidth()
	}
	return nil, false
}
