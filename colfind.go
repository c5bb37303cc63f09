// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"github.com/tiby312/broccoli-project-sub001/internal/restrict"
	"github.com/tiby312/broccoli-project-sub001/internal/scratch"
	"github.com/tiby312/broccoli-project-sub001/internal/sweep"
)

// Ref is the restricted handle a pair-finding callback receives for one
// element: it can read the AABB and, via [UnpackInner], mutate the
// element's inner payload, but it can never replace or swap the element
// itself.
type Ref[N Num, T Elem[N]] = restrict.Ref[Rect[N], T]

// UnpackInner returns a pointer to r's inner payload of type I, and true,
// if the element implements [InnerElem][I]; otherwise false.
func UnpackInner[N Num, T Elem[N], I any](r Ref[N, T]) (*I, bool) {
	return restrict.UnpackInner[Rect[N], T, I](r)
}

// PairFunc is a pair-finding callback. The tree guarantees a != b within
// a single call.
type PairFunc[N Num, T Elem[N]] func(a, b Ref[N, T])

// FindCollidingPairs reports every pair of elements in the tree whose
// AABBs overlap (closed-interval semantics), each exactly once, in
// deterministic preorder. If the tree was built with [BuildArgs.NoSort],
// this automatically falls back to the quadratic routine, since the
// cross-axis sweep requires each node's range to be sorted.
func (t *Tree[N, T]) FindCollidingPairs(collide PairFunc[N, T]) {
	if len(t.nodes) == 0 {
		return
	}
	c := &colfinder[N, T]{
		t:       t,
		collide: collide,
		activeA: new(scratch.PreVec),
		activeB: new(scratch.PreVec),
	}
	c.visit(0)
}

type colfinder[N Num, T Elem[N]] struct {
	t       *Tree[N, T]
	collide PairFunc[N, T]
	activeA *scratch.PreVec
	activeB *scratch.PreVec
}

// visit processes nodeIdx as the anchor: first the pairs entirely within
// nodeIdx, then nodeIdx against every descendant, then recurses so each
// child gets its own turn as anchor. Because a pair (a, b) with a
// strictly shallower than b is handled only when the shallower element's
// node is the anchor, every pair surfaces exactly once.
func (c *colfinder[N, T]) visit(nodeIdx int) {
	c.withinNode(nodeIdx)

	n := &c.t.nodes[nodeIdx]
	if n.Leaf {
		return
	}

	l, r := c.t.leftChild(nodeIdx), c.t.rightChild(nodeIdx)
	c.anchorVsSubtree(nodeIdx, l)
	c.anchorVsSubtree(nodeIdx, r)

	c.visit(l)
	c.visit(r)
}

// withinNode emits every overlapping pair inside a single node's range.
// Non-leaf sorted nodes only need the cross-axis sweep, because
// invariant 1 already guarantees every pair overlaps on the node axis.
// Leaves, and any node in a no-sort tree, fall back to the quadratic
// both-axes check.
func (c *colfinder[N, T]) withinNode(nodeIdx int) {
	n := &c.t.nodes[nodeIdx]
	elems := restrict.Unwrap(n.Range)
	if len(elems) < 2 {
		return
	}

	if !n.Leaf && c.t.sorted {
		cross := n.Axis.Other()
		sweep.SingleAxis(len(elems), func(i int) sweep.Bounds[N] {
			return axisBounds[N, T](elems[i], cross)
		}, c.activeA, func(h, i int) {
			c.collide(restrict.RefOf[Rect[N], T](&elems[h]), restrict.RefOf[Rect[N], T](&elems[i]))
		})
		return
	}

	sweep.Quadratic(len(elems), func(i, j int) bool {
		return elems[i].Bounds().Intersects(elems[j].Bounds())
	}, func(i, j int) {
		c.collide(restrict.RefOf[Rect[N], T](&elems[i]), restrict.RefOf[Rect[N], T](&elems[j]))
	})
}

// anchorVsSubtree pairs the fixed anchor against descIdx and, subject to
// descent pruning, every node in descIdx's subtree.
func (c *colfinder[N, T]) anchorVsSubtree(anchorIdx, descIdx int) {
	c.anchorVsNode(anchorIdx, descIdx)

	desc := &c.t.nodes[descIdx]
	if desc.Leaf {
		return
	}

	anchor := &c.t.nodes[anchorIdx]
	left, right := descentReach(anchor, desc)

	l, r := c.t.leftChild(descIdx), c.t.rightChild(descIdx)
	if left {
		c.anchorVsSubtree(anchorIdx, l)
	}
	if right {
		c.anchorVsSubtree(anchorIdx, r)
	}
}

// descentReach reports whether desc's left and right children can
// possibly hold an element overlapping anchor's range. When anchor and
// desc split on the same axis, a desc whose divider lies entirely to one
// side of the anchor range's extent on that shared axis cannot have an
// overlapping element in the child subtree on the far side; a differing
// split axis gives no such cheap test, so both sides stay reachable.
func descentReach[N Num, T Elem[N]](anchor, desc *Node[N, T]) (left, right bool) {
	if desc.Leaf || !desc.HasDiv || anchor.Axis != desc.Axis {
		return true, true
	}
	// anchor.Cont is on the cross axis, so the extent on the split axis
	// is computed from the anchor's range here.
	ext := computeCont[N, T](restrict.Unwrap(anchor.Range), anchor.Axis)
	switch {
	case desc.Div < ext.Lo:
		return false, true
	case desc.Div > ext.Hi:
		return true, false
	default:
		return true, true
	}
}

// anchorVsNode emits overlapping pairs between the anchor's range and a
// single descendant node's range: same-axis nodes merge on the cross
// axis, differing-axis nodes narrow by binary search, and both finish
// with a full rect test.
func (c *colfinder[N, T]) anchorVsNode(anchorIdx, descIdx int) {
	anchor := &c.t.nodes[anchorIdx]
	desc := &c.t.nodes[descIdx]

	aElems := restrict.Unwrap(anchor.Range)
	dElems := restrict.Unwrap(desc.Range)
	if len(aElems) == 0 || len(dElems) == 0 {
		return
	}

	emit := func(ai, di int) {
		c.collide(restrict.RefOf[Rect[N], T](&aElems[ai]), restrict.RefOf[Rect[N], T](&dElems[di]))
	}

	if !c.t.sorted {
		if !anchor.Cont.Intersects(desc.Cont) && anchor.Axis == desc.Axis {
			return
		}
		sweep.QuadraticTwo(len(aElems), len(dElems), func(ai, di int) bool {
			return aElems[ai].Bounds().Intersects(dElems[di].Bounds())
		}, emit)
		return
	}

	if anchor.Axis == desc.Axis {
		cross := anchor.Axis.Other()
		if !anchor.Cont.Intersects(desc.Cont) {
			return
		}
		sweep.TwoSequence(
			len(aElems), func(i int) sweep.Bounds[N] { return axisBounds[N, T](aElems[i], cross) },
			len(dElems), func(i int) sweep.Bounds[N] { return axisBounds[N, T](dElems[i], cross) },
			c.activeA, c.activeB, func(ai, di int) {
				// The merge only checks the cross axis; elements of the two
				// nodes need not overlap on the shared split axis.
				if aElems[ai].Bounds().Intersects(dElems[di].Bounds()) {
					emit(ai, di)
				}
			},
		)
		return
	}

	// Cross-axis case: desc.Range is sorted by desc's cross axis, which
	// equals anchor.Axis (only two axes exist). Narrow candidates by
	// binary search on that axis, then finish with a full rect test.
	for ai := range aElems {
		aLo, aHi := aElems[ai].Bounds().axisRange(anchor.Axis)
		window := sweep.CandidateWindow(len(dElems), func(i int) sweep.Bounds[N] {
			return axisBounds[N, T](dElems[i], anchor.Axis)
		}, aHi)
		for di := 0; di < window; di++ {
			_, dHi := dElems[di].Bounds().axisRange(anchor.Axis)
			if dHi < aLo {
				continue
			}
			if aElems[ai].Bounds().Intersects(dElems[di].Bounds()) {
				emit(ai, di)
			}
		}
	}
}
