// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"math/rand"
	"testing"
)

func TestFindCollidingPairsEmpty(t *testing.T) {
	tr := Build[int, box](nil)
	got := 0
	tr.FindCollidingPairs(func(a, b Ref[int, box]) { got++ })
	if got != 0 {
		t.Fatalf("got %d callbacks for an empty tree, want 0", got)
	}
}

func TestFindCollidingPairsSingleton(t *testing.T) {
	bs := boxesFromRects([][4]int{{0, 10, 0, 10}})
	tr := Build[int, box](bs)
	got := 0
	tr.FindCollidingPairs(func(a, b Ref[int, box]) { got++ })
	if got != 0 {
		t.Fatalf("got %d callbacks for a single element, want 0", got)
	}
}

func TestFindCollidingPairsIdenticalBoxes(t *testing.T) {
	bs := boxesFromRects([][4]int{{0, 10, 0, 10}, {0, 10, 0, 10}})
	tr := Build[int, box](bs)

	count := 0
	tr.FindCollidingPairs(func(a, b Ref[int, box]) { count++ })
	if count != 1 {
		t.Fatalf("two identical AABBs: got %d pairs, want 1", count)
	}
}

func TestFindCollidingPairsTouchingBoxes(t *testing.T) {
	bs := boxesFromRects([][4]int{{0, 5, 0, 5}, {5, 10, 0, 5}})
	tr := Build[int, box](bs)

	count := 0
	tr.FindCollidingPairs(func(a, b Ref[int, box]) { count++ })
	if count != 1 {
		t.Fatalf("two boxes touching at x=5: got %d pairs, want 1 (closed-interval overlap)", count)
	}
}

func TestFindCollidingPairsMatchesBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		n := rng.Intn(80) + 1
		rects := make([][4]int, n)
		for i := range rects {
			x := rng.Intn(50)
			y := rng.Intn(50)
			rects[i] = [4]int{x, x + rng.Intn(10), y, y + rng.Intn(10)}
		}
		bs := boxesFromRects(rects)
		want := bruteForcePairs(bs)

		tr := Build[int, box](bs)
		got := collidingPairsRaw(tr)

		if len(got) != len(want) {
			t.Fatalf("trial %d: got %d pairs, want %d", trial, len(got), len(want))
		}
		for k := range want {
			if !got[k] {
				t.Fatalf("trial %d: missing pair %v", trial, k)
			}
		}
	}
}

// collidingPairsRaw collects pairs by id, recovering each element's id
// through [UnpackInner] (box.Inner returns &b.id).
func collidingPairsRaw(tr *Tree[int, box]) map[idPair]bool {
	out := make(map[idPair]bool)
	tr.FindCollidingPairs(func(a, b Ref[int, box]) {
		ai, _ := UnpackInner[int, box, int](a)
		bi, _ := UnpackInner[int, box, int](b)
		out[normalizedPair(*ai, *bi)] = true
	})
	return out
}

func TestFindCollidingPairsNoSortMatchesSorted(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	rects := make([][4]int, 60)
	for i := range rects {
		x := rng.Intn(40)
		y := rng.Intn(40)
		rects[i] = [4]int{x, x + rng.Intn(8), y, y + rng.Intn(8)}
	}

	sortedTree := Build[int, box](append([]box(nil), boxesFromRects(rects)...))
	noSortTree := BuildNoSort[int, box](append([]box(nil), boxesFromRects(rects)...))

	wantCount := 0
	sortedTree.FindCollidingPairs(func(a, b Ref[int, box]) { wantCount++ })

	gotCount := 0
	noSortTree.FindCollidingPairs(func(a, b Ref[int, box]) { gotCount++ })

	if gotCount != wantCount {
		t.Fatalf("no-sort tree reported %d pairs, sorted tree reported %d", gotCount, wantCount)
	}
}

func TestFindCollidingPairsDegenerateGrid(t *testing.T) {
	rects := make([][4]int, 40)
	for i := range rects {
		rects[i] = [4]int{5, 5, 5, 5}
	}
	bs := boxesFromRects(rects)
	tr := Build[int, box](bs)

	count := 0
	tr.FindCollidingPairs(func(a, b Ref[int, box]) { count++ })

	want := 40 * 39 / 2
	if count != want {
		t.Fatalf("40 coincident points: got %d pairs, want %d", count, want)
	}
}

func TestUnpackInnerMutatesThroughRef(t *testing.T) {
	elems := []*taggedBox{
		{r: Rect[int]{MinX: 0, MaxX: 5, MinY: 0, MaxY: 5}, tag: 1},
		{r: Rect[int]{MinX: 0, MaxX: 5, MinY: 0, MaxY: 5}, tag: 2},
	}
	tr := Build[int, *taggedBox](elems)

	tr.FindCollidingPairs(func(a, b Ref[int, *taggedBox]) {
		if inner, ok := UnpackInner[int, *taggedBox, int](a); ok {
			*inner += 100
		}
		if inner, ok := UnpackInner[int, *taggedBox, int](b); ok {
			*inner += 100
		}
	})

	for _, e := range tr.Elems() {
		if e.tag < 100 {
			t.Fatalf("element tag = %d, want mutation reflected (>=100)", e.tag)
		}
	}
}
