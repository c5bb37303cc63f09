// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package broccoli provides a broad-phase spatial index for 2D
// axis-aligned bounding boxes (AABBs).
//
// The index is a balanced, implicit binary tree that interleaves a
// KD-tree-style median split with a sweep-and-prune refinement: every
// node owns a "middle band" of elements whose AABB straddles the node's
// divider on the node's splitting axis, sorted by the cross axis. This
// is what lets the pair-finder discover every overlapping pair with a
// single linear sweep per node instead of an all-pairs scan.
//
// A tree is built once, over a caller-owned mutable slice, and queried
// many times. Build reorders the slice in place; every element from the
// input is still present exactly once when the tree is done, just
// possibly in a different position. There is no incremental insert or
// delete: the update path is to rebuild.
//
// The element type T is a caller type exposing an AABB via [Elem.Bounds].
// T may additionally implement [InnerElem] to expose a mutable inner
// payload to pair-finding callbacks without allowing the callback to
// replace or swap the element itself (see package
// github.com/tiby312/broccoli-project-sub001/internal/restrict).
package broccoli
