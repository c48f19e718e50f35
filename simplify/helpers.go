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

package simplify

import "github.com/likec-project/decompiler/liketree"

// constValue returns e's value and true if e is an IntegerConstant.
func constValue(e liketree.Expression) (uint64, bool) {
	if c, ok := e.(*liketree.IntegerConstant); ok {
		return c.Value(), true
	}
	return 0, false
}

// isZeroConst reports whether e is the integer literal 0.
func isZeroConst(e liketree.Expression) bool {
	v, ok := constValue(e)
	return ok && v == 0
}

// isOneConst reports whether e is the integer literal 1.
func isOneConst(e liketree.Expression) bool {
	v, ok := constValue(e)
	return ok && v == 1
}

// sameVariable reports whether e is a VariableIdentifier naming the same variable as name.
func sameVariable(e liketree.Expression, name string) bool {
	v, ok := e.(*liketree.VariableIdentifier)
	return ok && v.Name == name
}
