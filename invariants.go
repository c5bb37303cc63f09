// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"fmt"

	"github.com/tiby312/broccoli-project-sub001/internal/restrict"
)

// AssertTreeInvariants walks the whole tree checking the five structural
// invariants of the data model (middle-band divider containment,
// strict child-side separation, axis alternation by depth, cross-axis
// sortedness of each range, and node-array shape), returning the first
// violation found as an error. It is a diagnostic for tests and callers
// who mutate elements through [UnpackInner] and want to confirm the
// AABB-relevant fields were left untouched; it is never called from
// [Tree.FindCollidingPairs] or any other query.
func (t *Tree[N, T]) AssertTreeInvariants() error {
	if len(t.nodes) == 0 {
		return nil
	}
	if len(t.nodes) != numNodesForHeight(t.height) {
		return fmt.Errorf("broccoli: node array has %d entries, want %d for height %d", len(t.nodes), numNodesForHeight(t.height), t.height)
	}
	return t.checkNode(0, AxisX)
}

// checkNode recursively checks invariants 1-4 at nodeIdx, and invariant
// 3 (axis alternation) by passing the expected axis down to children.
func (t *Tree[N, T]) checkNode(nodeIdx int, wantAxis Axis) error {
	n := &t.nodes[nodeIdx]

	if !n.Leaf && n.Axis != wantAxis {
		return fmt.Errorf("broccoli: node %d has axis %s, want %s at this depth", nodeIdx, n.Axis, wantAxis)
	}

	elems := restrict.Unwrap(n.Range)
	if t.sorted {
		if err := checkSorted[N, T](elems, n.Axis.Other()); err != nil {
			return fmt.Errorf("broccoli: node %d: %w", nodeIdx, err)
		}
	}

	if n.HasDiv && !n.Leaf {
		for i := range elems {
			lo, hi := elems[i].Bounds().axisRange(n.Axis)
			if !(lo <= n.Div && n.Div <= hi) {
				return fmt.Errorf("broccoli: node %d: element %d range [%v,%v] does not contain divider %v", nodeIdx, i, lo, hi, n.Div)
			}
		}
	}

	if n.Leaf {
		return nil
	}

	l, r := t.leftChild(nodeIdx), t.rightChild(nodeIdx)
	if err := t.checkSubtreeSide(l, n.Axis, n.Div, true); err != nil {
		return err
	}
	if err := t.checkSubtreeSide(r, n.Axis, n.Div, false); err != nil {
		return err
	}

	if err := t.checkNode(l, n.Axis.Other()); err != nil {
		return err
	}
	return t.checkNode(r, n.Axis.Other())
}

// checkSubtreeSide verifies invariant 2: every element anywhere in the
// subtree rooted at nodeIdx lies strictly left (resp. right) of div on
// axis, recursing through all descendants including their middle bands.
func (t *Tree[N, T]) checkSubtreeSide(nodeIdx int, axis Axis, div N, left bool) error {
	n := &t.nodes[nodeIdx]
	elems := restrict.Unwrap(n.Range)
	for i := range elems {
		lo, hi := elems[i].Bounds().axisRange(axis)
		if left && !(hi < div) {
			return fmt.Errorf("broccoli: node %d: element %d range [%v,%v] not strictly left of ancestor divider %v", nodeIdx, i, lo, hi, div)
		}
		if !left && !(lo > div) {
			return fmt.Errorf("broccoli: node %d: element %d range [%v,%v] not strictly right of ancestor divider %v", nodeIdx, i, lo, hi, div)
		}
	}
	if n.Leaf {
		return nil
	}
	if err := t.checkSubtreeSide(t.leftChild(nodeIdx), axis, div, left); err != nil {
		return err
	}
	return t.checkSubtreeSide(t.rightChild(nodeIdx), axis, div, left)
}

// checkSorted verifies invariant 4: elems is sorted ascending by axis's
// low endpoint. checkNode only calls this when t.sorted, since invariant
// 4 does not hold for a tree built with [BuildArgs.NoSort].
func checkSorted[N Num, T Elem[N]](elems []T, axis Axis) error {
	for i := 1; i < len(elems); i++ {
		prevLo, _ := elems[i-1].Bounds().axisRange(axis)
		lo, _ := elems[i].Bounds().axisRange(axis)
		if lo < prevLo {
			return fmt.Errorf("range not sorted ascending at position %d (cross-axis low %v after %v)", i, lo, prevLo)
		}
	}
	return nil
}

// DegenerateMiddleBand reports whether the middle bands of the non-leaf
// nodes together hold more than half of the tree's elements — a symptom of degenerate input (e.g. every
// element sharing the same coordinate on alternating axes) that defeats
// the sweep-and-prune refinement without violating any invariant. This
// is a non-fatal diagnostic, not an invariant: a tree can be perfectly
// valid and still exhibit it on adversarial input.
func (t *Tree[N, T]) DegenerateMiddleBand() bool {
	if len(t.elems) == 0 {
		return false
	}
	middleTotal := 0
	for i := range t.nodes {
		if !t.nodes[i].Leaf {
			middleTotal += t.nodes[i].Range.Len()
		}
	}
	return middleTotal*2 > len(t.elems)
}
