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

package simplify_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/likec-project/decompiler/likeprint"
	"github.com/likec-project/decompiler/liketree"
	"github.com/likec-project/decompiler/simplify"
)

// printAfterSimplify simplifies tr in place and returns the printed text of fn, its function
// definition.
func printAfterSimplify(t *testing.T, tr *liketree.Tree, fn *liketree.FunctionDefinition) string {
	t.Helper()
	simplify.Tree(tr)
	text, _ := likeprint.Print(fn)
	return text
}

// TestSimplifyIsIdempotent exercises the package doc's own claim: re-running Tree on its own
// output changes nothing. Simplifying twice and comparing the printed text with cmp.Diff gives a
// readable failure if a rewrite rule ever fires on its own replacement.
func TestSimplifyIsIdempotent(t *testing.T) {
	tr := liketree.NewTree(32, 64, 64)
	tb := tr.Types()
	i32 := tb.Integer(32, false)
	i64 := tb.Integer(64, false)

	ptrI32 := tb.Pointer(64, i32)
	p := liketree.NewVariableIdentifier("p", ptrI32)
	cast := liketree.NewTypecast(i64, p)
	eight := liketree.NewIntegerConstant(8, i64)
	add := tr.NewBinaryOperator(liketree.Add, cast, eight)
	deref := tr.NewUnaryOperator(liketree.Dereference, add)
	stmt := liketree.NewExpressionStatement(deref)
	body := liketree.NewBlock(stmt)

	fn := &liketree.FunctionDefinition{Name: "f", ReturnType: tb.Void(), Body: body}
	tr.Root = fn

	first := printAfterSimplify(t, tr, fn)
	second := printAfterSimplify(t, tr, fn)
	require.Empty(t, cmp.Diff(first, second))
}

// TestSimplifyNormalizesPointerArithmetic exercises S3: `*(int32_t*)((int64_t)p + 8)` over a
// pointer to a 32-bit element reconstructs as `p[2]`.
func TestSimplifyNormalizesPointerArithmetic(t *testing.T) {
	tr := liketree.NewTree(32, 64, 64)
	tb := tr.Types()
	i32 := tb.Integer(32, false)
	i64 := tb.Integer(64, false)

	ptrI32 := tb.Pointer(64, i32)
	p := liketree.NewVariableIdentifier("p", ptrI32)
	cast := liketree.NewTypecast(i64, p)
	eight := liketree.NewIntegerConstant(8, i64)
	add := tr.NewBinaryOperator(liketree.Add, cast, eight)
	outerCast := liketree.NewTypecast(tb.Pointer(64, i32), add)
	deref := tr.NewUnaryOperator(liketree.Dereference, outerCast)

	stmt := liketree.NewExpressionStatement(deref)
	body := liketree.NewBlock(stmt)
	fn := &liketree.FunctionDefinition{Name: "f", ReturnType: tb.Void(), Body: body}
	tr.Root = fn

	simplify.Tree(tr)
	text, _ := likeprint.Print(fn)
	require.Contains(t, text, "p[2]")
}

// TestSimplifyReconstructsMemberAddress exercises S5: `*(int32_t*)((int64_t)sp + 4)` over a
// pointer to a two-int32-member struct reconstructs as `sp->b`, the member starting at byte 4.
func TestSimplifyReconstructsMemberAddress(t *testing.T) {
	tr := liketree.NewTree(32, 64, 64)
	tb := tr.Types()
	i32 := tb.Integer(32, false)
	i64 := tb.Integer(64, false)

	decl := tb.NewStructDeclaration("S")
	decl.AddMember("a", i32)
	decl.AddMember("b", i32)
	structType := tb.Struct(decl)
	ptrStruct := tb.Pointer(64, structType)

	sp := liketree.NewVariableIdentifier("sp", ptrStruct)
	cast := liketree.NewTypecast(i64, sp)
	four := liketree.NewIntegerConstant(4, i64)
	add := tr.NewBinaryOperator(liketree.Add, cast, four)
	outerCast := liketree.NewTypecast(tb.Pointer(64, i32), add)
	deref := tr.NewUnaryOperator(liketree.Dereference, outerCast)

	stmt := liketree.NewExpressionStatement(deref)
	body := liketree.NewBlock(stmt)
	fn := &liketree.FunctionDefinition{Name: "f", ReturnType: tb.Void(), Body: body}
	tr.Root = fn

	simplify.Tree(tr)
	text, _ := likeprint.Print(fn)
	require.Contains(t, text, "sp->b")
}

// TestSimplifyBooleanContextCondition exercises S4: a widening cast around `(x & 1) != 0` used as
// an if-condition collapses to plain `x & 1`.
func TestSimplifyBooleanContextCondition(t *testing.T) {
	tr := liketree.NewTree(32, 64, 64)
	tb := tr.Types()
	i32 := tb.Integer(32, false)
	i64 := tb.Integer(64, false)

	x := liketree.NewVariableIdentifier("x", i32)
	one := liketree.NewIntegerConstant(1, i32)
	and := tr.NewBinaryOperator(liketree.BitwiseAnd, x, one)
	zero := liketree.NewIntegerConstant(0, i32)
	neq := tr.NewBinaryOperator(liketree.Neq, and, zero)
	cast := liketree.NewTypecast(i64, neq)

	thenBody := liketree.NewBlock(liketree.NewExpressionStatement(
		liketree.NewIntegerConstant(1, i32)))
	ifStmt := liketree.NewIf(cast, thenBody, nil)
	body := liketree.NewBlock(ifStmt)
	fn := &liketree.FunctionDefinition{Name: "f", ReturnType: tb.Void(), Body: body}
	tr.Root = fn

	simplify.Tree(tr)
	text, _ := likeprint.Print(fn)
	require.Contains(t, text, "if (x & 1)")
}

// TestSimplifyRecognizesIncrement exercises `x = x + 1` folding to `++x`.
func TestSimplifyRecognizesIncrement(t *testing.T) {
	tr := liketree.NewTree(32, 64, 64)
	tb := tr.Types()
	i32 := tb.Integer(32, false)

	x := liketree.NewVariableIdentifier("x", i32)
	one := liketree.NewIntegerConstant(1, i32)
	rhs := tr.NewBinaryOperator(liketree.Add, liketree.NewVariableIdentifier("x", i32), one)
	assign := tr.NewBinaryOperator(liketree.Assign, x, rhs)
	stmt := liketree.NewExpressionStatement(assign)
	body := liketree.NewBlock(stmt)
	fn := &liketree.FunctionDefinition{Name: "f", ReturnType: tb.Void(), Body: body}
	tr.Root = fn

	simplify.Tree(tr)
	text, _ := likeprint.Print(fn)
	require.Contains(t, text, "++x;")
}

// TestSimplifyDropsEmptyElseAndRemovesUnreferencedLabel covers two unrelated statement-level
// rules in one pass: an empty else branch is dropped, and a label with no Goto referencing it is
// removed entirely.
func TestSimplifyDropsEmptyElseAndRemovesUnreferencedLabel(t *testing.T) {
	tr := liketree.NewTree(32, 64, 64)
	tb := tr.Types()
	i32 := tb.Integer(32, false)

	cond := liketree.NewIntegerConstant(1, i32)
	then := liketree.NewBlock(liketree.NewExpressionStatement(liketree.NewIntegerConstant(2, i32)))
	els := liketree.NewBlock()
	ifStmt := liketree.NewIf(cond, then, els)

	label := liketree.NewLabelStatement("unused")
	body := liketree.NewBlock(ifStmt, label)
	fn := &liketree.FunctionDefinition{Name: "f", ReturnType: tb.Void(), Body: body}
	tr.Root = fn

	simplify.Tree(tr)
	text, _ := likeprint.Print(fn)
	require.NotContains(t, text, "else")
	require.NotContains(t, text, "unused:")
}
