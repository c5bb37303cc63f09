// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package restrict implements the tree's "restricted mutable view": a
// handle over a caller's element that allows reading its AABB and
// mutating its optional inner payload, but forbids whole-element
// assignment or swap. The pair-finder hands two such handles to the
// user callback simultaneously; if the callback could swap them, the
// tree's ordering invariants (sortedness by cross axis, divider
// containment) would be silently destroyed. Restricting the capability
// at the API surface, rather than relying on caller discipline, makes
// misuse impossible instead of merely discouraged.
//
// This package knows nothing about AABBs or numeric coordinate types; it
// is parameterized purely over "a type with a Bounds() method returning
// some value B", so the public broccoli package can instantiate it with
// its own Rect[N] without an import cycle.
package restrict

// Bounder is the minimal contract a restricted view needs: a way to read
// some opaque bounds value B (the caller's Rect[N]).
type Bounder[B any] interface {
	Bounds() B
}

// Innerer is implemented by elements that expose a mutable payload.
type Innerer[I any] interface {
	Inner() *I
}

// Ref is a restricted handle onto a single element living at some index
// of an owning slice. It supports reading the AABB and, if the element
// implements Innerer[I], obtaining the inner payload pointer — but never
// exposes *T itself, so there is no way to reassign or swap the element
// through a Ref.
type Ref[B any, T Bounder[B]] struct {
	p *T
}

// RefOf constructs a Ref over p. Exported for use by the tree package,
// which is the only code that may construct handles from raw pointers
// into its node ranges.
func RefOf[B any, T Bounder[B]](p *T) Ref[B, T] {
	return Ref[B, T]{p: p}
}

// Bounds returns the element's AABB.
func (r Ref[B, T]) Bounds() B {
	return (*r.p).Bounds()
}

// Copy returns a value copy of the element. This is safe to expose: a
// copy cannot be swapped back into the tree's backing slice, it is just
// an independent value the caller now owns outright.
func Copy[B any, T Bounder[B]](r Ref[B, T]) T {
	return *r.p
}

// UnpackInner returns a pointer to the element's inner payload of type I,
// and true, if the element implements Innerer[I]; otherwise it returns
// false.
func UnpackInner[B any, T Bounder[B], I any](r Ref[B, T]) (*I, bool) {
	ie, ok := any(*r.p).(Innerer[I])
	if !ok {
		return nil, false
	}
	return ie.Inner(), true
}

// Slice is a restricted view over a contiguous run of elements. It
// offers iteration and splitting but no indexed assignment and no way to
// obtain a *T, so callers cannot swap or overwrite elements through it.
type Slice[B any, T Bounder[B]] struct {
	s []T
}

// SliceOf wraps s. Exported for the tree package only.
func SliceOf[B any, T Bounder[B]](s []T) Slice[B, T] {
	return Slice[B, T]{s: s}
}

// Len returns the number of elements in the view.
func (s Slice[B, T]) Len() int { return len(s.s) }

// At returns a Ref to the element at index i.
func (s Slice[B, T]) At(i int) Ref[B, T] {
	return Ref[B, T]{p: &s.s[i]}
}

// SplitAt splits the view into [0,i) and [i,len).
func (s Slice[B, T]) SplitAt(i int) (Slice[B, T], Slice[B, T]) {
	return Slice[B, T]{s: s.s[:i]}, Slice[B, T]{s: s.s[i:]}
}

// SplitFirst returns the first element's Ref and the remaining view, or
// false if the view is empty.
func (s Slice[B, T]) SplitFirst() (Ref[B, T], Slice[B, T], bool) {
	if len(s.s) == 0 {
		return Ref[B, T]{}, s, false
	}
	return Ref[B, T]{p: &s.s[0]}, Slice[B, T]{s: s.s[1:]}, true
}

// Each calls fn for every element in order.
func (s Slice[B, T]) Each(fn func(Ref[B, T])) {
	for i := range s.s {
		fn(Ref[B, T]{p: &s.s[i]})
	}
}

// Unwrap returns the raw underlying slice. It is used only by the tree
// package itself (its construction code and its own query traversals);
// the raw slice is never passed to a user callback.
func Unwrap[B any, T Bounder[B]](s Slice[B, T]) []T { return s.s }
