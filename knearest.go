// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"sort"

	"github.com/tiby312/broccoli-project-sub001/internal/restrict"
)

// KNearestHandler supplies the distance functions [Tree.FindKNearest]
// needs. DistToAabb gives a lower bound on the distance from the query
// point to any element whose AABB is r — used to prune subtrees whose
// bounding region cannot possibly contain a closer element than ones
// already found. DistToElem gives the exact distance to a specific
// element, used once a subtree can no longer be pruned. Neither method
// receives the query point explicitly; implementations close over it.
type KNearestHandler[N Num, T Elem[N]] interface {
	DistToAabb(r Rect[N]) N
	DistToElem(e T) N
}

// KTier is one group of elements tied for the same rank in a
// [Tree.FindKNearest] result: the library declines to break ties, so
// callers that want a single nearest element must do so themselves.
type KTier[N Num, T Elem[N]] struct {
	Dist  N
	Elems []T
}

// FindKNearest returns at most k tiers of elements ranked by h, nearest
// first. Ties at the same distance are grouped into one tier rather than
// broken arbitrarily, the same tie-handling [Tree.CastRay] uses. An empty
// tree yields a nil result.
//
// Pruning uses each node's accumulated axis bound: descending into a
// left (resp. right) child narrows that axis's upper (resp. lower)
// bound to the parent's divider, since every element in a subtree lies
// on one side of every ancestor divider on that ancestor's axis
// (invariant 2). The cross axis is left at the tree's overall extent,
// since node.Cont only bounds a node's own middle band, not its whole
// subtree.
func (t *Tree[N, T]) FindKNearest(k int, h KNearestHandler[N, T]) []KTier[N, T] {
	if k <= 0 || len(t.nodes) == 0 {
		return nil
	}

	type cand = struct {
		dist N
		e    T
	}
	var all []cand

	global, ok := t.globalBounds()
	if !ok {
		return nil
	}

	// worstKept tracks a safe (but not necessarily tight) upper bound on
	// the k-th smallest distinct distance found so far; a subtree whose
	// DistToAabb lower bound exceeds it cannot improve the result.
	var worstKept N
	haveWorst := false
	recomputeEvery := 64
	sinceRecompute := 0

	var walk func(nodeIdx int, bound Rect[N])
	walk = func(nodeIdx int, bound Rect[N]) {
		if haveWorst && h.DistToAabb(bound) > worstKept {
			return
		}

		n := &t.nodes[nodeIdx]
		elems := restrict.Unwrap(n.Range)
		for i := range elems {
			all = append(all, cand{dist: h.DistToElem(elems[i]), e: elems[i]})
		}

		sinceRecompute++
		if sinceRecompute >= recomputeEvery {
			sinceRecompute = 0
			if w, ok := kthDistinct(all, k); ok {
				worstKept = w
				haveWorst = true
			}
		}

		if n.Leaf {
			return
		}

		leftBound, rightBound := bound, bound
		if n.HasDiv {
			switch n.Axis {
			case AxisX:
				leftBound.MaxX = n.Div
				rightBound.MinX = n.Div
			case AxisY:
				leftBound.MaxY = n.Div
				rightBound.MinY = n.Div
			}
		}
		walk(t.leftChild(nodeIdx), leftBound)
		walk(t.rightChild(nodeIdx), rightBound)
	}
	walk(0, global)

	if len(all) == 0 {
		return nil
	}

	sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })

	var tiers []KTier[N, T]
	i := 0
	for i < len(all) && len(tiers) < k {
		d := all[i].dist
		var elems []T
		for i < len(all) && all[i].dist == d {
			elems = append(elems, all[i].e)
			i++
		}
		tiers = append(tiers, KTier[N, T]{Dist: d, Elems: elems})
	}
	return tiers
}

// kthDistinct returns the k-th smallest distinct distance among cands,
// if at least k distinct distances are present.
func kthDistinct[N Num, T any](cands []struct {
	dist N
	e    T
}, k int) (N, bool) {
	dists := make([]N, len(cands))
	for i, c := range cands {
		dists[i] = c.dist
	}
	sort.Slice(dists, func(i, j int) bool { return dists[i] < dists[j] })

	var zero N
	count := 0
	for i := 0; i < len(dists); i++ {
		if i == 0 || dists[i] != dists[i-1] {
			count++
			if count == k {
				return dists[i], true
			}
		}
	}
	return zero, false
}

// globalBounds returns the bounding rect over every element in the
// tree, and false if the tree is empty.
func (t *Tree[N, T]) globalBounds() (Rect[N], bool) {
	var r Rect[N]
	first := true
	for i := range t.elems {
		b := t.elems[i].Bounds()
		if first {
			r = b
			first = false
			continue
		}
		if b.MinX < r.MinX {
			r.MinX = b.MinX
		}
		if b.MaxX > r.MaxX {
			r.MaxX = b.MaxX
		}
		if b.MinY < r.MinY {
			r.MinY = b.MinY
		}
		if b.MaxY > r.MaxY {
			r.MaxY = b.MaxY
		}
	}
	return r, !first
}
