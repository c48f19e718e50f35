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

// Package snapshot freezes a structural graph into a compact, comparable value: a tree of Node
// records that mirrors sgraph.Region/BasicNode shape but drops every pointer in favor of indices,
// so two snapshots can be compared with reflect.DeepEqual or encoded for a golden-file regression
// test.
//
// Encoding uses a gob-plus-compression shape: gob gives a stable, reflection-driven wire format
// for a tree of plain structs, and the compressor keeps large golden fixtures (a switch with a
// big jump table, say) from bloating testdata.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"errors"

	"github.com/klauspost/compress/s2"
	"github.com/likec-project/decompiler/sgraph"
)

// Node is one snapshotted structural-graph node: either a basic-block leaf (Kind == "basic") or
// a region (Kind == "region"). Children is empty for a basic node.
type Node struct {
	Kind           string // "basic" or "region"
	BlockAddress   uint64 // valid iff Kind == "basic"
	HasAddress     bool
	RegionKind     string // valid iff Kind == "region"
	EntryIndex     int    // index into Children, or -1 if no entry is set
	HasExitBlock   bool
	ExitBlockAddr  uint64
	Children       []Node
}

// Of walks region and its descendants into a snapshot tree.
func Of(region *sgraph.Region) Node {
	return nodeOf(region)
}

func nodeOf(n sgraph.Node) Node {
	switch v := n.(type) {
	case *sgraph.BasicNode:
		out := Node{Kind: "basic"}
		if v.Block != nil && v.Block.Address != nil {
			out.HasAddress = true
			out.BlockAddress = *v.Block.Address
		}
		return out
	case *sgraph.Region:
		out := Node{Kind: "region", RegionKind: v.Kind.String(), EntryIndex: -1}
		for i, c := range v.Children() {
			if c == v.Entry() {
				out.EntryIndex = i
			}
			out.Children = append(out.Children, nodeOf(c))
		}
		if v.ExitBasicBlock != nil && v.ExitBasicBlock.Address != nil {
			out.HasExitBlock = true
			out.ExitBlockAddr = *v.ExitBasicBlock.Address
		}
		return out
	default:
		return Node{Kind: "unknown"}
	}
}

// Encode gob-encodes n through an s2 compressor.
func Encode(n Node) (b []byte, err error) {
	var buf bytes.Buffer
	writer := s2.NewWriter(&buf)
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err := gob.NewEncoder(writer).Encode(n); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode.
func Decode(b []byte) (Node, error) {
	var n Node
	err := gob.NewDecoder(s2.NewReader(bytes.NewReader(b))).Decode(&n)
	return n, err
}
