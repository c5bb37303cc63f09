// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"iter"

	"github.com/tiby312/broccoli-project-sub001/internal/restrict"
)

// All returns an iterator over every element in the tree, each wrapped
// in a restricted [restrict.Ref] so the callback can read its bounds and
// mutate its inner payload but never swap it out of the tree's backing
// slice. Iteration order follows the node array in preorder and, within
// a node, the node's own Range order; it is not element-insertion order
// and is not guaranteed to be the same across builds of the same input.
func (t *Tree[N, T]) All() iter.Seq[restrict.Ref[Rect[N], T]] {
	return func(yield func(restrict.Ref[Rect[N], T]) bool) {
		for i := range t.nodes {
			n := &t.nodes[i]
			stop := false
			n.Range.Each(func(r restrict.Ref[Rect[N], T]) {
				if stop {
					return
				}
				if !yield(r) {
					stop = true
				}
			})
			if stop {
				return
			}
		}
	}
}

// Nodes returns an iterator over the tree's node array in DFS preorder,
// each paired with its index — the same index [Tree.Node], and the
// receiver leftChild/rightChild helpers, use to locate a node's
// children. Intended for structural introspection (e.g. walking the
// tree to compute a custom statistic); the yielded pointer must not be
// retained past the iteration.
func (t *Tree[N, T]) Nodes() iter.Seq2[int, *Node[N, T]] {
	return func(yield func(int, *Node[N, T]) bool) {
		for i := range t.nodes {
			if !yield(i, &t.nodes[i]) {
				return
			}
		}
	}
}
