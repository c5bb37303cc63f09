// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import "github.com/tiby312/broccoli-project-sub001/internal/restrict"

// Point is a 2D coordinate in the tree's numeric domain.
type Point[N Num] struct {
	X, Y N
}

// Ray is a half-line query: every point Point + s*Dir for s >= 0.
type Ray[N Num] struct {
	Point Point[N]
	Dir   Point[N]
}

// RaycastHandler supplies the two cast tests [Tree.CastRay] needs.
// CastToAabb is used for subtree pruning: it reports whether the ray can
// possibly hit anything inside r and, if so, a lower bound on the hit
// magnitude. CastToElem is the exact test against one element's actual
// shape (which may be finer than its AABB).
type RaycastHandler[N Num, T Elem[N]] interface {
	CastToAabb(r Rect[N]) (dist N, hit bool)
	CastToElem(e T) (dist N, hit bool)
}

// RayHit is the result of [Tree.CastRay]: every element tied for the
// smallest hit magnitude found.
type RayHit[N Num, T Elem[N]] struct {
	Dist  N
	Elems []T
}

// CastRay returns the nearest element(s) hit by h's ray, or nil if
// nothing is hit. Two elements tied at the same minimum magnitude are
// both returned rather than one being chosen arbitrarily — the library
// declines to break the tie, matching the behavior of the reference
// implementation this query is modeled on.
//
// Pruning works exactly as in [Tree.FindKNearest]: the subtree bound
// accumulated from ancestor dividers is tested with CastToAabb, and a
// subtree is skipped once its bound either cannot be hit at all or can
// only be hit farther away than the closest element already found.
func (t *Tree[N, T]) CastRay(h RaycastHandler[N, T]) *RayHit[N, T] {
	if len(t.nodes) == 0 {
		return nil
	}

	global, ok := t.globalBounds()
	if !ok {
		return nil
	}

	var result RayHit[N, T]
	haveHit := false

	var walk func(nodeIdx int, bound Rect[N])
	walk = func(nodeIdx int, bound Rect[N]) {
		if d, hit := h.CastToAabb(bound); !hit || (haveHit && d > result.Dist) {
			return
		}

		n := &t.nodes[nodeIdx]
		elems := restrict.Unwrap(n.Range)
		for i := range elems {
			d, hit := h.CastToElem(elems[i])
			if !hit {
				continue
			}
			switch {
			case !haveHit || d < result.Dist:
				result.Dist = d
				result.Elems = append(result.Elems[:0], elems[i])
				haveHit = true
			case d == result.Dist:
				result.Elems = append(result.Elems, elems[i])
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

	if !haveHit {
		return nil
	}
	return &result
}
