// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"github.com/tiby312/broccoli-project-sub001/internal/restrict"
	"github.com/tiby312/broccoli-project-sub001/internal/sweep"
)

// Node is one position of the tree, stored in DFS preorder in the tree's
// single contiguous node array. The left child of node i is i+1; the
// right child is i+1+leftSize, where leftSize is the number of nodes
// (not elements) in i's left subtree.
type Node[N Num, T Elem[N]] struct {
	// Range is the restricted view over this node's "middle band": the
	// elements whose AABB straddles Div on Axis (or, for a leaf, every
	// element assigned to the leaf). Sorted ascending by the cross
	// axis's low endpoint (invariant 4).
	Range restrict.Slice[Rect[N], T]

	// Cont is the min-max extent of Range on the cross axis. Zero value
	// when Range is empty.
	Cont Range1D[N]

	// Div is the divider value on Axis. HasDiv is false for leaves and
	// for any node whose subtree is empty.
	Div    N
	HasDiv bool

	// Axis is this node's splitting axis, derived from depth parity at
	// build time and cached here for traversal convenience.
	Axis Axis

	// Leaf is true if this node terminates recursion (depth == height-1).
	Leaf bool

	// MinElem is the smaller of the two child subtree element counts; a
	// heuristic input to the parallel driver's sequential-fallback
	// decision.
	MinElem int

	// NumElem is the total element count across both child subtrees
	// (excludes Range itself).
	NumElem int

	// leftSize is the number of nodes in this node's left subtree, used
	// to locate the right child in the preorder array.
	leftSize int
}

// IsLeaf reports whether n is a leaf node.
func (n *Node[N, T]) IsLeaf() bool { return n.Leaf }

// axisBounds returns the closed interval of e on the given axis, in the
// shape the sweep package expects.
func axisBounds[N Num, T Elem[N]](e T, axis Axis) sweep.Bounds[N] {
	lo, hi := e.Bounds().axisRange(axis)
	return sweep.Bounds[N]{Lo: lo, Hi: hi}
}
