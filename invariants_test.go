// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"math/rand"
	"testing"
)

func TestAssertTreeInvariantsValidTree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rects := make([][4]int, 200)
	for i := range rects {
		x := rng.Intn(80)
		y := rng.Intn(80)
		rects[i] = [4]int{x, x + rng.Intn(10), y, y + rng.Intn(10)}
	}
	tr := Build[int, box](boxesFromRects(rects))
	if err := tr.AssertTreeInvariants(); err != nil {
		t.Fatalf("valid tree reported as invalid: %v", err)
	}
}

func TestAssertTreeInvariantsCatchesAxisFlip(t *testing.T) {
	bs := boxesFromRects([][4]int{
		{0, 1, 0, 1}, {2, 3, 2, 3}, {4, 5, 4, 5}, {6, 7, 6, 7},
		{8, 9, 8, 9}, {10, 11, 10, 11}, {12, 13, 12, 13}, {14, 15, 14, 15},
	})
	tr := BuildWithArgs[int, box](bs, BuildArgs{LeafCapacity: 2})
	if tr.NumNodes() < 3 {
		t.Skip("not enough nodes to corrupt an interior axis")
	}

	root := tr.Node(0)
	root.Axis = root.Axis.Other()

	if err := tr.AssertTreeInvariants(); err == nil {
		t.Fatal("AssertTreeInvariants did not catch a flipped root axis")
	}
}

func TestAssertTreeInvariantsCatchesDividerViolation(t *testing.T) {
	bs := boxesFromRects([][4]int{
		{0, 1, 0, 1}, {2, 3, 2, 3}, {4, 5, 4, 5}, {6, 7, 6, 7},
		{8, 9, 8, 9}, {10, 11, 10, 11}, {12, 13, 12, 13}, {14, 15, 14, 15},
	})
	tr := BuildWithArgs[int, box](bs, BuildArgs{LeafCapacity: 2})

	root := tr.Node(0)
	if !root.HasDiv {
		t.Skip("root has no divider to violate")
	}
	// Push the divider far outside the tree's whole coordinate range so
	// no element's span can possibly straddle it.
	root.Div = -1000

	if err := tr.AssertTreeInvariants(); err == nil {
		t.Fatal("AssertTreeInvariants did not catch a divider outside every middle-band element's range")
	}
}

func TestDegenerateMiddleBandFalseOnWellDistributedInput(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	rects := make([][4]int, 400)
	for i := range rects {
		x := rng.Intn(1000)
		y := rng.Intn(1000)
		rects[i] = [4]int{x, x + 1, y, y + 1}
	}
	tr := Build[int, box](boxesFromRects(rects))
	if tr.DegenerateMiddleBand() {
		t.Fatal("DegenerateMiddleBand = true for well-distributed, mostly-disjoint input")
	}
}

func TestDegenerateMiddleBandEmptyTree(t *testing.T) {
	tr := Build[int, box](nil)
	if tr.DegenerateMiddleBand() {
		t.Fatal("DegenerateMiddleBand = true for an empty tree")
	}
}
