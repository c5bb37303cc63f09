// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package restrict

import "testing"

type point struct {
	x, y int
	tag  int
}

func (p point) Bounds() [2]int { return [2]int{p.x, p.y} }

func (p *point) Inner() *int { return &p.tag }

func TestRefBounds(t *testing.T) {
	p := point{x: 1, y: 2}
	r := RefOf[[2]int, point](&p)
	if got := r.Bounds(); got != [2]int{1, 2} {
		t.Fatalf("Bounds() = %v, want {1 2}", got)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	p := point{x: 1, y: 2, tag: 5}
	r := RefOf[[2]int, point](&p)

	cp := Copy[[2]int, point](r)
	cp.x = 99

	if p.x != 1 {
		t.Fatalf("mutating the copy changed the original: p.x = %d", p.x)
	}
}

func TestUnpackInnerPointerType(t *testing.T) {
	p := &point{x: 1, y: 2, tag: 5}
	r := RefOf[[2]int, *point](&p)

	inner, ok := UnpackInner[[2]int, *point, int](r)
	if !ok {
		t.Fatal("UnpackInner returned ok=false for a type implementing Innerer")
	}
	*inner = 42
	if p.tag != 42 {
		t.Fatalf("p.tag = %d, want 42 after mutating through UnpackInner", p.tag)
	}
}

func TestUnpackInnerMissing(t *testing.T) {
	// point's Inner() method is defined on *point, not point, so a Ref
	// over a plain point value (not *point) does not satisfy Innerer.
	p := point{x: 1, y: 2}
	pr := RefOf[[2]int, point](&p)
	if _, ok := UnpackInner[[2]int, point, int](pr); ok {
		t.Fatal("UnpackInner returned ok=true for a point value, which does not implement Innerer")
	}
}

func TestSliceIteration(t *testing.T) {
	pts := []point{{x: 1}, {x: 2}, {x: 3}}
	s := SliceOf[[2]int, point](pts)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	var seen []int
	s.Each(func(r Ref[[2]int, point]) {
		seen = append(seen, r.Bounds()[0])
	})
	if len(seen) != 3 || seen[0] != 1 || seen[1] != 2 || seen[2] != 3 {
		t.Fatalf("Each visited %v, want [1 2 3]", seen)
	}
}

func TestSliceSplitAt(t *testing.T) {
	pts := []point{{x: 1}, {x: 2}, {x: 3}, {x: 4}}
	s := SliceOf[[2]int, point](pts)

	left, right := s.SplitAt(1)
	if left.Len() != 1 || right.Len() != 3 {
		t.Fatalf("SplitAt(1) = (%d, %d), want (1, 3)", left.Len(), right.Len())
	}
	if right.At(0).Bounds()[0] != 2 {
		t.Fatalf("right.At(0) = %v, want x=2", right.At(0).Bounds())
	}
}

func TestSliceSplitFirst(t *testing.T) {
	pts := []point{{x: 1}, {x: 2}}
	s := SliceOf[[2]int, point](pts)

	first, rest, ok := s.SplitFirst()
	if !ok || first.Bounds()[0] != 1 || rest.Len() != 1 {
		t.Fatalf("SplitFirst() = (%v, len=%d, %v), want (x=1, len=1, true)", first.Bounds(), rest.Len(), ok)
	}

	empty := SliceOf[[2]int, point](nil)
	if _, _, ok := empty.SplitFirst(); ok {
		t.Fatal("SplitFirst() on empty slice returned ok=true")
	}
}

func TestUnwrapReturnsBackingSlice(t *testing.T) {
	pts := []point{{x: 1}, {x: 2}}
	s := SliceOf[[2]int, point](pts)
	back := Unwrap(s)
	if len(back) != 2 || &back[0] != &pts[0] {
		t.Fatal("Unwrap did not return the original backing array")
	}
}
