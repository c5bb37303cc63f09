// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import "testing"

func rectIDs(tr *Tree[int, box], query Rect[int], which func(query Rect[int], fn RectFunc[int, box])) map[int]bool {
	out := make(map[int]bool)
	which(query, func(q Rect[int], r Ref[int, box]) {
		id, _ := UnpackInner[int, box, int](r)
		out[*id] = true
	})
	return out
}

func TestFindAllInRect(t *testing.T) {
	bs := boxesFromRects([][4]int{
		{0, 1, 0, 1},   // fully inside [0,10]x[0,10]
		{5, 20, 5, 20}, // partially outside
		{20, 30, 20, 30}, // fully outside
	})
	tr := Build[int, box](bs)
	query := Rect[int]{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}

	got := rectIDs(tr, query, tr.FindAllInRect)
	if len(got) != 1 || !got[0] {
		t.Fatalf("FindAllInRect = %v, want {0}", got)
	}
}

func TestFindAllIntersectRect(t *testing.T) {
	bs := boxesFromRects([][4]int{
		{0, 1, 0, 1},
		{5, 20, 5, 20},
		{20, 30, 20, 30},
		{11, 12, 11, 12},
	})
	tr := Build[int, box](bs)
	query := Rect[int]{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}

	got := rectIDs(tr, query, tr.FindAllIntersectRect)
	if len(got) != 2 || !got[0] || !got[1] {
		t.Fatalf("FindAllIntersectRect = %v, want {0,1}", got)
	}
}

func TestFindAllNotInRect(t *testing.T) {
	bs := boxesFromRects([][4]int{
		{0, 1, 0, 1},
		{5, 20, 5, 20},
		{20, 30, 20, 30},
	})
	tr := Build[int, box](bs)
	query := Rect[int]{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}

	got := rectIDs(tr, query, tr.FindAllNotInRect)
	if len(got) != 2 || !got[1] || !got[2] {
		t.Fatalf("FindAllNotInRect = %v, want {1,2}", got)
	}
}

func TestRectQueriesOnEmptyTree(t *testing.T) {
	tr := Build[int, box](nil)
	calls := 0
	tr.FindAllIntersectRect(Rect[int]{MaxX: 10, MaxY: 10}, func(q Rect[int], r Ref[int, box]) { calls++ })
	if calls != 0 {
		t.Fatalf("FindAllIntersectRect on empty tree: %d callbacks, want 0", calls)
	}
}
