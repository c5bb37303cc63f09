// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sweep implements the one-dimensional active-set sweep
// primitives the tree's pair-finder reduces every overlap test to:
// given one or two sequences of intervals already sorted ascending by
// low endpoint, enumerate the pairs whose intervals overlap. Overlap is
// tested on closed intervals: two intervals that merely touch at an
// endpoint count as overlapping (matching the tree's AABB semantics,
// where two boxes sharing an edge collide).
package sweep

import (
	"cmp"
	"sort"

	"github.com/tiby312/broccoli-project-sub001/internal/scratch"
)

// Bounds is a closed interval on one axis.
type Bounds[N cmp.Ordered] struct {
	Lo, Hi N
}

// Overlaps reports whether two closed intervals intersect.
func (b Bounds[N]) Overlaps(o Bounds[N]) bool {
	return b.Lo <= o.Hi && o.Lo <= b.Hi
}

// SingleAxis sweeps the n items returned by get, which must already be
// sorted ascending by Lo, and calls emit(h, i) for every pair h < i whose
// intervals overlap. active is drained on entry and left drained on
// exit so the caller's scratch buffer is ready for reuse by a sibling
// recursive call.
func SingleAxis[N cmp.Ordered](n int, get func(i int) Bounds[N], active *scratch.PreVec, emit func(h, i int)) {
	active.Reset()
	defer active.Reset()

	for i := 0; i < n; i++ {
		e := get(i)

		active.Retain(func(h int) bool { return get(h).Hi >= e.Lo })

		for k := 0; k < active.Len(); k++ {
			emit(active.At(k), i)
		}

		active.Push(i)
	}
}

// TwoSequence merges two disjoint sequences, both already sorted
// ascending by Lo, and calls emit(ai, bi) for every pair whose intervals
// overlap. Because the sequences are disjoint (they come from distinct
// tree node ranges), no self-pair is possible. activeA/activeB are the
// scratch buffers for each side's active set; both are drained on entry
// and exit.
func TwoSequence[N cmp.Ordered](
	lenA int, getA func(i int) Bounds[N],
	lenB int, getB func(i int) Bounds[N],
	activeA, activeB *scratch.PreVec,
	emit func(ai, bi int),
) {
	activeA.Reset()
	activeB.Reset()
	defer activeA.Reset()
	defer activeB.Reset()

	ai, bi := 0, 0
	for ai < lenA || bi < lenB {
		takeA := false
		switch {
		case ai >= lenA:
			takeA = false
		case bi >= lenB:
			takeA = true
		default:
			takeA = getA(ai).Lo <= getB(bi).Lo
		}

		if takeA {
			e := getA(ai)
			activeA.Retain(func(h int) bool { return getA(h).Hi >= e.Lo })
			activeB.Retain(func(h int) bool { return getB(h).Hi >= e.Lo })

			for k := 0; k < activeB.Len(); k++ {
				emit(ai, activeB.At(k))
			}
			activeA.Push(ai)
			ai++
		} else {
			e := getB(bi)
			activeA.Retain(func(h int) bool { return getA(h).Hi >= e.Lo })
			activeB.Retain(func(h int) bool { return getB(h).Hi >= e.Lo })

			for k := 0; k < activeA.Len(); k++ {
				emit(activeA.At(k), bi)
			}
			activeB.Push(bi)
			bi++
		}
	}
}

// CandidateWindow returns the number of leading items (out of n, sorted
// ascending by Lo per get) whose Lo does not exceed queryHi. Every item
// that can possibly overlap [queryLo, queryHi] lies within this prefix;
// the caller still must test each candidate's Hi against queryLo (and,
// for the cross-axis case, a full rect-vs-rect test) to finish the
// overlap decision — this is only the cheap binary-search narrowing step.
func CandidateWindow[N cmp.Ordered](n int, get func(i int) Bounds[N], queryHi N) int {
	return sort.Search(n, func(i int) bool { return get(i).Lo > queryHi })
}

// Quadratic reports, via emit, every overlapping pair among n items with
// no ordering assumption at all: the O(k^2) fallback used by leaves
// (where no divider guarantees node-axis overlap) and by the no-sort
// tree variant.
func Quadratic(n int, overlaps func(i, j int) bool, emit func(i, j int)) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if overlaps(i, j) {
				emit(i, j)
			}
		}
	}
}

// QuadraticTwo reports every overlapping pair between two disjoint
// sequences of lengths lenA, lenB with no ordering assumption.
func QuadraticTwo(lenA, lenB int, overlaps func(ai, bi int) bool, emit func(ai, bi int)) {
	for ai := 0; ai < lenA; ai++ {
		for bi := 0; bi < lenB; bi++ {
			if overlaps(ai, bi) {
				emit(ai, bi)
			}
		}
	}
}
