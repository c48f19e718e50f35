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

import (
	"fmt"

	"github.com/likec-project/decompiler/liketree"
	"github.com/likec-project/decompiler/liketype"
)

// typeName renders t the way the printer's type surface specifies: struct tags used verbatim,
// int<width>_t/uint<width>_t integers except 8-bit which prints as signed/unsigned char, float<
// width> floats, T* pointers, T[length] arrays, and a placeholder for the erroneous type.
func typeName(t *liketype.Type) string {
	if t == nil {
		return "void"
	}
	switch t.Kind() {
	case liketype.Erroneous:
		return "<erroneous type>"
	case liketype.Void:
		return "void"
	case liketype.Integer:
		if t.BitWidth() == 8 {
			if t.IsUnsigned() {
				return "unsigned char"
			}
			return "signed char"
		}
		if t.IsUnsigned() {
			return fmt.Sprintf("uint%d_t", t.BitWidth())
		}
		return fmt.Sprintf("int%d_t", t.BitWidth())
	case liketype.Float:
		return fmt.Sprintf("float%d", t.BitWidth())
	case liketype.Pointer:
		return typeName(t.Pointee()) + "*"
	case liketype.Array:
		return fmt.Sprintf("%s[%d]", typeName(t.Pointee()), t.Length())
	case liketype.Struct:
		return "struct " + t.Declaration().Identifier
	case liketype.FunctionPointer:
		return functionPointerName(t)
	default:
		return "<erroneous type>"
	}
}

func functionPointerName(t *liketype.Type) string {
	s := typeName(t.ReturnType()) + " (*)("
	for i, p := range t.Params() {
		if i > 0 {
			s += ", "
		}
		s += typeName(p)
	}
	if t.Variadic() {
		if len(t.Params()) > 0 {
			s += ", "
		}
		s += "..."
	}
	return s + ")"
}

// formatIntegerConstant renders an integer literal in decimal when it falls in [-100, 100] for a
// signed type or [0, 100] for an unsigned one, and in 0x-prefixed hexadecimal otherwise.
func formatIntegerConstant(n *liketree.IntegerConstant) string {
	typ := n.Type()
	value := n.Value()

	if typ != nil && typ.IsInteger() && !typ.IsUnsigned() {
		signed := int64(value)
		if signed >= -100 && signed <= 100 {
			return fmt.Sprintf("%d", signed)
		}
		if signed < 0 {
			return fmt.Sprintf("-0x%x", -signed)
		}
		return fmt.Sprintf("0x%x", signed)
	}

	if value <= 100 {
		return fmt.Sprintf("%d", value)
	}
	return fmt.Sprintf("0x%x", value)
}
