// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"cmp"
	"math"
	"slices"

	"github.com/tiby312/broccoli-project-sub001/internal/restrict"
)

// DefaultLeafCapacity is the target number of elements per leaf when
// [BuildArgs.LeafCapacity] is left at zero.
const DefaultLeafCapacity = 32

// BuildArgs tunes [BuildWithArgs].
type BuildArgs struct {
	// LeafCapacity caps the number of elements per leaf; <= 0 means
	// [DefaultLeafCapacity].
	LeafCapacity int

	// NoSort skips the cross-axis sort of each node's middle band. The
	// resulting tree is still valid (invariants 1-3 hold) but
	// [Tree.FindCollidingPairs] must fall back to the quadratic
	// in-node/between-node routine, since invariant 4 no longer holds.
	NoSort bool
}

// Build partitions elems into a balanced tree, reordering elems in
// place. Every element of the input slice is present in the tree
// exactly once when Build returns, just possibly at a different index.
func Build[N Num, T Elem[N]](elems []T) *Tree[N, T] {
	return BuildWithArgs(elems, BuildArgs{})
}

// BuildNoSort is [Build] with [BuildArgs.NoSort] set.
func BuildNoSort[N Num, T Elem[N]](elems []T) *Tree[N, T] {
	return BuildWithArgs(elems, BuildArgs{NoSort: true})
}

// BuildWithArgs is [Build] with explicit tuning knobs.
func BuildWithArgs[N Num, T Elem[N]](elems []T, args BuildArgs) *Tree[N, T] {
	leafCap := args.LeafCapacity
	if leafCap <= 0 {
		leafCap = DefaultLeafCapacity
	}

	height := computeHeight(len(elems), leafCap)

	b := &builder[N, T]{sort: !args.NoSort}
	b.nodes = make([]Node[N, T], 0, numNodesForHeight(height))
	b.build(elems, 0, height, AxisX)

	return &Tree[N, T]{
		nodes:        b.nodes,
		elems:        elems,
		height:       height,
		leafCapacity: leafCap,
		sorted:       !args.NoSort,
	}
}

// computeHeight picks the tree's height: h=1 if n <= leafCap, else
// h = 2*floor(log2(n/leafCap)/2) + 1, the largest odd h with
// 2^(h-1) * leafCap <= n. Odd height keeps the root on
// AxisX and preserves axis alternation down to the leaves.
func computeHeight(n, leafCap int) int {
	if n <= leafCap {
		return 1
	}
	l := math.Log2(float64(n) / float64(leafCap))
	h := 2*int(math.Floor(l/2)) + 1
	if h < 1 {
		h = 1
	}
	return h
}

func numNodesForHeight(h int) int {
	return (1 << uint(h)) - 1
}

// builder accumulates the preorder node vector during a recursive
// partition.
type builder[N Num, T Elem[N]] struct {
	nodes []Node[N, T]
	sort  bool
}

// build recursively partitions s (sub-slice of the caller's original
// slice) at depth d out of height, splitting on axis, and appends nodes
// to b.nodes in DFS preorder.
func (b *builder[N, T]) build(s []T, depth, height int, axis Axis) {
	if depth == height-1 {
		b.emitLeaf(s, axis)
		return
	}

	crossAxis := axis.Other()

	if len(s) == 0 {
		idx := len(b.nodes)
		b.nodes = append(b.nodes, Node[N, T]{
			Range: restrict.SliceOf[Rect[N], T](nil),
			Axis:  axis,
		})
		b.build(nil, depth+1, height, crossAxis)
		leftSize := len(b.nodes) - idx - 1
		b.build(nil, depth+1, height, crossAxis)
		b.nodes[idx].leftSize = leftSize
		return
	}

	medIdx := len(s) / 2
	quickselectByAxisLow(s, medIdx, axis)
	medVal, _ := s[medIdx].Bounds().axisRange(axis)

	left, middle, right := threeWayPartition(s, axis, medVal)

	if b.sort {
		sortByCrossAxisLow(middle, crossAxis)
	}
	cont := computeCont[N, T](middle, crossAxis)

	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node[N, T]{
		Range:   restrict.SliceOf[Rect[N], T](middle),
		Cont:    cont,
		Div:     medVal,
		HasDiv:  true,
		Axis:    axis,
		MinElem: min(len(left), len(right)),
		NumElem: len(left) + len(right),
	})

	b.build(left, depth+1, height, crossAxis)
	leftSize := len(b.nodes) - idx - 1
	b.build(right, depth+1, height, crossAxis)
	b.nodes[idx].leftSize = leftSize
}

func (b *builder[N, T]) emitLeaf(s []T, axis Axis) {
	crossAxis := axis.Other()
	if b.sort {
		sortByCrossAxisLow(s, crossAxis)
	}
	cont := computeCont[N, T](s, crossAxis)
	b.nodes = append(b.nodes, Node[N, T]{
		Range: restrict.SliceOf[Rect[N], T](s),
		Cont:  cont,
		Axis:  axis,
		Leaf:  true,
	})
}

func sortByCrossAxisLow[N Num, T Elem[N]](s []T, axis Axis) {
	slices.SortFunc(s, func(a, b T) int {
		al, _ := a.Bounds().axisRange(axis)
		bl, _ := b.Bounds().axisRange(axis)
		return cmp.Compare(al, bl)
	})
}

func computeCont[N Num, T Elem[N]](s []T, axis Axis) Range1D[N] {
	if len(s) == 0 {
		var zero N
		return Range1D[N]{Lo: zero, Hi: zero}
	}
	lo, hi := s[0].Bounds().axisRange(axis)
	for _, e := range s[1:] {
		l, h := e.Bounds().axisRange(axis)
		if l < lo {
			lo = l
		}
		if h > hi {
			hi = h
		}
	}
	return Range1D[N]{Lo: lo, Hi: hi}
}

// threeWayPartition partitions s in place against medVal on axis using a
// Dutch-national-flag scan: elements whose axis-range ends below medVal
// go left, elements whose axis-range starts above medVal go right, and
// everything else (axis-range contains medVal) stays in the middle. The
// element that produced medVal always satisfies lo == medVal <= hi, so
// it always lands in middle.
func threeWayPartition[N Num, T Elem[N]](s []T, axis Axis, medVal N) (left, middle, right []T) {
	low, mid, high := 0, 0, len(s)-1
	for mid <= high {
		lo, hi := s[mid].Bounds().axisRange(axis)
		switch {
		case hi < medVal:
			s[low], s[mid] = s[mid], s[low]
			low++
			mid++
		case lo > medVal:
			s[mid], s[high] = s[high], s[mid]
			high--
		default:
			mid++
		}
	}
	return s[:low], s[low:mid], s[mid:]
}

// quickselectByAxisLow reorders s so that s[k] holds the element whose
// low endpoint on axis is the k-th smallest, in linear expected time
// (Lomuto-partition quickselect with median-of-three pivoting). No
// third-party or standard-library nth-element utility exists in the
// retrieved pack or in [slices]; this is hand-rolled, matching the
// plain-loop style the rest of the pack uses for index arithmetic.
func quickselectByAxisLow[N Num, T Elem[N]](s []T, k int, axis Axis) {
	lo, hi := 0, len(s)-1
	for lo < hi {
		p := partitionLomuto(s, lo, hi, axis)
		switch {
		case k == p:
			return
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
}

func partitionLomuto[N Num, T Elem[N]](s []T, lo, hi int, axis Axis) int {
	mid := lo + (hi-lo)/2
	medianOfThreeToEnd(s, lo, mid, hi, axis)

	pivotVal, _ := s[hi].Bounds().axisRange(axis)
	store := lo
	for i := lo; i < hi; i++ {
		v, _ := s[i].Bounds().axisRange(axis)
		if v < pivotVal {
			s[i], s[store] = s[store], s[i]
			store++
		}
	}
	s[store], s[hi] = s[hi], s[store]
	return store
}

// medianOfThreeToEnd moves the median-by-axis-low of s[lo], s[mid], s[hi]
// into s[hi], giving the Lomuto partition a pivot that avoids worst-case
// quadratic behavior on already-sorted or reverse-sorted input.
func medianOfThreeToEnd[N Num, T Elem[N]](s []T, lo, mid, hi int, axis Axis) {
	loVal, _ := s[lo].Bounds().axisRange(axis)
	midVal, _ := s[mid].Bounds().axisRange(axis)
	hiVal, _ := s[hi].Bounds().axisRange(axis)

	switch {
	case (loVal <= midVal && midVal <= hiVal) || (hiVal <= midVal && midVal <= loVal):
		s[mid], s[hi] = s[hi], s[mid]
	case (midVal <= loVal && loVal <= hiVal) || (hiVal <= loVal && loVal <= midVal):
		s[lo], s[hi] = s[hi], s[lo]
	}
}
