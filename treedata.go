// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"encoding/json"
	"fmt"

	"github.com/tiby312/broccoli-project-sub001/internal/restrict"
)

// NodeData is the JSON-serializable shape of one [Node]: its structural
// fields only, not its elements (the elements are the caller's own
// slice and are not duplicated into the sidecar).
type NodeData[N Num] struct {
	Len      int  `json:"len"`
	ContLo   N    `json:"contLo,omitempty"`
	ContHi   N    `json:"contHi,omitempty"`
	Div      N    `json:"div,omitempty"`
	HasDiv   bool `json:"hasDiv,omitempty"`
	Axis     Axis `json:"axis"`
	Leaf     bool `json:"leaf,omitempty"`
	MinElem  int  `json:"minElem,omitempty"`
	NumElem  int  `json:"numElem,omitempty"`
	LeftSize int  `json:"leftSize,omitempty"`
}

// TreeData is a serializable snapshot of a tree's structure (one
// [NodeData] per node, in preorder), independent of the element slice
// it was built over. It round-trips the shape a tree was built into so
// that [FromTreeData] can reassemble a [Tree] over a matching element
// slice without rerunning [Build].
type TreeData[N Num] struct {
	Nodes        []NodeData[N] `json:"nodes"`
	Height       int           `json:"height"`
	LeafCapacity int           `json:"leafCapacity"`
	Sorted       bool          `json:"sorted"`
	NumElems     int           `json:"numElems"`
}

// GetTreeData snapshots t's structure into a [TreeData] value, suitable
// for [json.Marshal] and later reconstruction via [FromTreeData] against
// an element slice with the same length and ordering as the one t was
// built from.
func (t *Tree[N, T]) GetTreeData() TreeData[N] {
	data := TreeData[N]{
		Nodes:        make([]NodeData[N], len(t.nodes)),
		Height:       t.height,
		LeafCapacity: t.leafCapacity,
		Sorted:       t.sorted,
		NumElems:     len(t.elems),
	}
	for i, n := range t.nodes {
		data.Nodes[i] = NodeData[N]{
			Len:      n.Range.Len(),
			ContLo:   n.Cont.Lo,
			ContHi:   n.Cont.Hi,
			Div:      n.Div,
			HasDiv:   n.HasDiv,
			Axis:     n.Axis,
			Leaf:     n.Leaf,
			MinElem:  n.MinElem,
			NumElem:  n.NumElem,
			LeftSize: n.leftSize,
		}
	}
	return data
}

// FromTreeData reassembles a [Tree] over elems using the structure
// recorded in data, without rerunning [Build]. elems must have the same
// length and the same per-node partitioning as the slice data was
// captured from — FromTreeData cannot verify the contents, only the
// node lengths, so passing a differently-ordered slice of the same
// length produces a tree whose invariants silently do not hold.
//
// This is the one fallible boundary in the package: a structural
// mismatch between data and elems is reported as an error rather than
// panicking, since data may have come from an untrusted or stale source
// (a file, a previous process).
func FromTreeData[N Num, T Elem[N]](data TreeData[N], elems []T) (*Tree[N, T], error) {
	if data.NumElems != len(elems) {
		return nil, fmt.Errorf("broccoli: FromTreeData: data has %d elements, got slice of %d", data.NumElems, len(elems))
	}
	if len(data.Nodes) == 0 {
		return &Tree[N, T]{elems: elems}, nil
	}

	nodes := make([]Node[N, T], len(data.Nodes))

	// assign walks the node array in the same recursion build uses, so
	// that each node's Range lands on the same elems span build would
	// have given it: a non-leaf's elements are laid out as its left
	// subtree, then its own middle band, then its right subtree - not
	// the node array's preorder.
	var assign func(nodeIdx, off int) (int, error)
	assign = func(nodeIdx, off int) (int, error) {
		if nodeIdx >= len(data.Nodes) {
			return off, fmt.Errorf("broccoli: FromTreeData: node index %d out of range", nodeIdx)
		}
		nd := data.Nodes[nodeIdx]
		node := Node[N, T]{
			Cont:     Range1D[N]{Lo: nd.ContLo, Hi: nd.ContHi},
			Div:      nd.Div,
			HasDiv:   nd.HasDiv,
			Axis:     nd.Axis,
			Leaf:     nd.Leaf,
			MinElem:  nd.MinElem,
			NumElem:  nd.NumElem,
			leftSize: nd.LeftSize,
		}

		if nd.Leaf {
			if off+nd.Len > len(elems) {
				return off, fmt.Errorf("broccoli: FromTreeData: leaf node %d range [%d:%d] exceeds element slice of length %d", nodeIdx, off, off+nd.Len, len(elems))
			}
			node.Range = restrict.SliceOf[Rect[N], T](elems[off : off+nd.Len])
			nodes[nodeIdx] = node
			return off + nd.Len, nil
		}

		midStart, err := assign(nodeIdx+1, off)
		if err != nil {
			return off, err
		}
		midEnd := midStart + nd.Len
		if midEnd > len(elems) {
			return off, fmt.Errorf("broccoli: FromTreeData: node %d range [%d:%d] exceeds element slice of length %d", nodeIdx, midStart, midEnd, len(elems))
		}
		node.Range = restrict.SliceOf[Rect[N], T](elems[midStart:midEnd])
		nodes[nodeIdx] = node

		rightIdx := nodeIdx + 1 + nd.LeftSize
		end, err := assign(rightIdx, midEnd)
		if err != nil {
			return off, err
		}
		return end, nil
	}

	if _, err := assign(0, 0); err != nil {
		return nil, err
	}

	return &Tree[N, T]{
		nodes:        nodes,
		elems:        elems,
		height:       data.Height,
		leafCapacity: data.LeafCapacity,
		sorted:       data.Sorted,
	}, nil
}

// MarshalJSON satisfies [json.Marshaler] by delegating to [TreeData]
// rather than marshaling the internal node graph directly.
func (t *Tree[N, T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.GetTreeData())
}
