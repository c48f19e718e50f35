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

package likeprint_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/likec-project/decompiler/likeprint"
	"github.com/likec-project/decompiler/liketree"
)

// rangeShape is a plain, comparable projection of a RangeNode's structure (offset, size, and
// child count at every level), used so cmp.Diff can compare two RangeTrees without reaching into
// RangeNode's unexported bookkeeping fields.
type rangeShape struct {
	Offset   int
	Size     int
	Children []rangeShape
}

func shapeOf(n *likeprint.RangeNode) rangeShape {
	s := rangeShape{Offset: n.Offset(), Size: n.Size()}
	for _, c := range n.Children() {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

func buildSample(t *testing.T) (*liketree.Tree, *liketree.FunctionDefinition) {
	t.Helper()
	tr := liketree.NewTree(32, 64, 64)
	tb := tr.Types()
	i32 := tb.Integer(32, false)

	a := liketree.NewVariableIdentifier("a", i32)
	ten := liketree.NewIntegerConstant(10, i32)
	cond := tr.NewBinaryOperator(liketree.Lt, a, ten)

	incr := liketree.NewExpressionStatement(
		tr.NewUnaryOperator(liketree.PrefixIncrement, liketree.NewVariableIdentifier("a", i32)))
	body := liketree.NewBlock(incr)
	loop := liketree.NewWhile(cond, body)
	root := liketree.NewBlock(loop)

	fn := &liketree.FunctionDefinition{
		Name:       "f",
		ReturnType: tb.Void(),
		Params:     []*liketree.VariableDeclaration{{Name: "a", Type: i32}},
		Body:       root,
	}
	return tr, fn
}

func TestPrintProducesWhileLoop(t *testing.T) {
	_, fn := buildSample(t)
	text, _ := likeprint.Print(fn)
	require.Contains(t, text, "while (a < 10)")
	require.Contains(t, text, "++a;")
}

func TestPrintRangeTreeRoundtrip(t *testing.T) {
	_, fn := buildSample(t)
	text, rt := likeprint.Print(fn)

	require.NotNil(t, rt.Root())
	start, end := rt.RangeOf(rt.Root())
	require.Equal(t, 0, start)
	require.Equal(t, len(text), end)

	// Every child's printed range must be a substring of its parent's printed range.
	var walk func(n *likeprint.RangeNode)
	walk = func(n *likeprint.RangeNode) {
		s, e := rt.RangeOf(n)
		require.True(t, s >= 0 && e <= len(text) && s <= e)
		for _, child := range n.Children() {
			cs, ce := rt.RangeOf(child)
			require.True(t, cs >= s && ce <= e, "child range must nest inside parent range")
			walk(child)
		}
	}
	walk(rt.Root())

	// spec §8 property 7: a node's recorded range is not just nested, it is a literal roundtrip —
	// slicing the full text at that range must equal printing that same node on its own. Expression
	// nodes never touch indentation (only printStatement does), so the condition "a < 10" can be
	// sliced out and reprinted standalone with no context to normalize away.
	cond := findByData(t, rt.Root(), func(data liketree.TreeNode) bool {
		b, ok := data.(*liketree.BinaryOperator)
		return ok && b.OperatorKind == liketree.Lt
	})
	require.NotNil(t, cond)
	cs, ce := rt.RangeOf(cond)
	sliced := text[cs:ce]

	tr2 := liketree.NewTree(32, 64, 64)
	i32 := tr2.Types().Integer(32, false)
	standaloneCond := tr2.NewBinaryOperator(liketree.Lt,
		liketree.NewVariableIdentifier("a", i32), liketree.NewIntegerConstant(10, i32))
	standaloneFn := &liketree.FunctionDefinition{
		Name:       "g",
		ReturnType: tr2.Types().Void(),
		Body:       liketree.NewBlock(liketree.NewExpressionStatement(standaloneCond)),
	}
	standaloneText, standaloneRT := likeprint.Print(standaloneFn)
	standaloneNode := findByData(t, standaloneRT.Root(), func(data liketree.TreeNode) bool {
		return data == liketree.TreeNode(standaloneCond)
	})
	require.NotNil(t, standaloneNode)
	ss, se := standaloneRT.RangeOf(standaloneNode)

	require.Equal(t, standaloneText[ss:se], sliced)
	require.Equal(t, "a < 10", sliced)
}

// findByData depth-first searches a RangeTree for the node whose Data satisfies match, failing the
// test if none is found.
func findByData(t *testing.T, n *likeprint.RangeNode, match func(liketree.TreeNode) bool) *likeprint.RangeNode {
	t.Helper()
	if match(n.Data) {
		return n
	}
	for _, child := range n.Children() {
		if found := findByData(t, child, match); found != nil {
			return found
		}
	}
	return nil
}

// TestPrintRangeTreeShapeIsStableAcrossEquivalentBuilds prints the same sample function twice,
// built independently both times, and asserts their RangeTree shapes are identical: printing is
// deterministic, so two structurally equal trees must produce byte-for-byte equal range shapes.
func TestPrintRangeTreeShapeIsStableAcrossEquivalentBuilds(t *testing.T) {
	_, fn1 := buildSample(t)
	_, fn2 := buildSample(t)

	_, rt1 := likeprint.Print(fn1)
	_, rt2 := likeprint.Print(fn2)

	require.Empty(t, cmp.Diff(shapeOf(rt1.Root()), shapeOf(rt2.Root())))
}

func TestFormatIntegerConstantDecimalVsHex(t *testing.T) {
	tr := liketree.NewTree(32, 64, 64)
	i32 := tr.Types().Integer(32, false)

	small := liketree.NewExpressionStatement(liketree.NewIntegerConstant(42, i32))
	big := liketree.NewExpressionStatement(liketree.NewIntegerConstant(5000, i32))

	block := liketree.NewBlock(small, big)
	fn := &liketree.FunctionDefinition{Name: "g", ReturnType: tr.Types().Void(), Body: block}
	text, _ := likeprint.Print(fn)

	require.True(t, strings.Contains(text, "42;"))
	require.True(t, strings.Contains(text, "0x1388;"))
}
