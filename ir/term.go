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

// Package ir models the three-address intermediate representation that the structural analyzer
// and tree builder consume. Everything in this package is produced upstream, by the instruction
// lifter and the dataflow analyzer; nothing here is ever
// mutated once a Function reaches the back-end, and the back-end must treat it as read-only for
// the duration of a decompile.
package ir

// TermKind discriminates the variants of Term.
type TermKind int

const (
	// IntegerConstant is a literal integer value of a known bit size.
	IntegerConstant TermKind = iota
	// Intrinsic is a platform intrinsic (e.g. "undefined", "zero flag") with no further
	// structure of interest to the back-end beyond its Kind and bit width.
	Intrinsic
	// MemoryLocationAccess reads or writes a register or stack-region memory location.
	MemoryLocationAccess
	// Dereference reads or writes through a computed address in some memory domain.
	Dereference
	// UnaryTerm applies a unary operator to an operand term.
	UnaryTerm
	// BinaryTerm applies a binary operator to two operand terms.
	BinaryTerm
)

// UnaryTermOp enumerates the unary operator kinds a UnaryTerm may carry.
type UnaryTermOp int

// Unary term operator kinds. The IR only needs enough of these for the structural analyzer's
// pattern recognizers and the dataflow oracle's helpers to operate on; the tree builder
// (an external collaborator) maps them onto richer LikeC unary operators.
const (
	UnaryNot UnaryTermOp = iota
	UnaryNegate
	UnarySignExtend
	UnaryZeroExtend
	UnaryTruncate
)

// BinaryTermOp enumerates the binary operator kinds a BinaryTerm may carry.
type BinaryTermOp int

// Binary term operator kinds used by the IR.
const (
	BinaryAdd BinaryTermOp = iota
	BinarySub
	BinaryMul
	BinaryUnsignedDiv
	BinarySignedDiv
	BinaryUnsignedRem
	BinarySignedRem
	BinaryAnd
	BinaryOr
	BinaryXor
	BinaryShl
	BinaryShr
	BinarySar
	BinaryEqual
	BinaryUnsignedLess
	BinarySignedLess
)

// MemoryDomain distinguishes the address spaces a Dereference term may access. Most
// architectures only need Memory, but some lifters separate out an I/O or MMIO space.
type MemoryDomain int

// Memory domains recognized by dereference terms.
const (
	DomainMemory MemoryDomain = iota
	DomainIO
)

// Access classifies whether a term's position in its statement makes it a read or a write.
type Access int

// Term access classifications, assigned by position within the owning Statement.
const (
	Read Access = iota
	Write
)

// Term is one node of the expression tree attached to a Statement. Terms are owned by their
// Statement and never shared between statements; the back-end only ever reads them.
type Term struct {
	Kind TermKind

	// BitWidth is the width, in bits, of the value this term computes or accesses. Every term
	// carries one.
	BitWidth int

	// Statement is the back-pointer to the term's containing statement. May be nil for terms
	// built transiently by a collaborator outside a real statement.
	Statement *Statement

	// access classifies this term as a read or a write by its position in Statement; it is set
	// by whichever constructor placed the term into a statement slot.
	access Access

	// IntegerValue is populated when Kind == IntegerConstant.
	IntegerValue uint64

	// IntrinsicKind is populated when Kind == Intrinsic; its meaning is intrinsic-specific and
	// opaque to this package.
	IntrinsicKind string

	// Location is populated when Kind == MemoryLocationAccess.
	Location *MemoryLocation

	// Address and Domain are populated when Kind == Dereference.
	Address *Term
	Domain  MemoryDomain

	// UnaryOp and Operand are populated when Kind == UnaryTerm.
	UnaryOp UnaryTermOp
	Operand *Term

	// BinaryOp, Left and Right are populated when Kind == BinaryTerm.
	BinaryOp BinaryTermOp
	Left     *Term
	Right    *Term
}

// Access reports whether this term occupies a read or write position in its statement.
func (t *Term) Access() Access { return t.access }

// MemoryLocation names a register or a stack-relative memory region a term may access, with an
// explicit bit offset and width within that region.
type MemoryLocation struct {
	// Register is the location's register name, or "" if this is a stack location.
	Register string
	// IsStack is true for a stack-relative region; BitOffset is then relative to the frame.
	IsStack bool
	// BitOffset is the bit offset of this location within its register or stack region.
	BitOffset int
	// BitWidth is the width in bits of this location.
	BitWidth int
}

// Equal reports whether two memory locations name the same register or stack region, offset, and
// width. It does not consider aliasing through overlapping regions.
func (m *MemoryLocation) Equal(other *MemoryLocation) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Register == other.Register &&
		m.IsStack == other.IsStack &&
		m.BitOffset == other.BitOffset &&
		m.BitWidth == other.BitWidth
}

// WithAccess returns a shallow copy of t marked with the given access classification. Lifters
// use it to place the same term shape into a read or a write slot of a Statement.
func (t *Term) WithAccess(a Access) *Term {
	cp := *t
	cp.access = a
	return &cp
}

