// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import "github.com/tiby312/broccoli-project-sub001/internal/restrict"

// RectFunc is called once per matching element by the rect queries.
type RectFunc[N Num, T Elem[N]] func(query Rect[N], e Ref[N, T])

// FindAllInRect reports every element whose AABB is entirely contained
// in query (closed intervals).
func (t *Tree[N, T]) FindAllInRect(query Rect[N], fn RectFunc[N, T]) {
	t.walkRect(0, query, fn, func(e Rect[N]) bool { return query.Contains(e) })
}

// FindAllIntersectRect reports every element whose AABB overlaps query.
func (t *Tree[N, T]) FindAllIntersectRect(query Rect[N], fn RectFunc[N, T]) {
	t.walkRect(0, query, fn, func(e Rect[N]) bool { return query.Intersects(e) })
}

// FindAllNotInRect reports every element whose AABB is not entirely
// contained in query — the complement of [Tree.FindAllInRect].
func (t *Tree[N, T]) FindAllNotInRect(query Rect[N], fn RectFunc[N, T]) {
	t.walkRect(0, query, fn, func(e Rect[N]) bool { return !query.Contains(e) })
}

// walkRect is a preorder descent over every node, testing each element
// in the node's range against pred. A node whose range is empty is
// skipped, but its children are still visited — the middle band can be
// empty at a node whose subtrees are not.
func (t *Tree[N, T]) walkRect(nodeIdx int, query Rect[N], fn RectFunc[N, T], pred func(Rect[N]) bool) {
	if len(t.nodes) == 0 {
		return
	}

	n := &t.nodes[nodeIdx]
	elems := restrict.Unwrap(n.Range)
	for i := range elems {
		if pred(elems[i].Bounds()) {
			fn(query, restrict.RefOf[Rect[N], T](&elems[i]))
		}
	}

	if n.Leaf {
		return
	}

	t.walkRect(t.leftChild(nodeIdx), query, fn, pred)
	t.walkRect(t.rightChild(nodeIdx), query, fn, pred)
}
