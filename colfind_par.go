// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package broccoli

import (
	"sync"

	"github.com/tiby312/broccoli-project-sub001/internal/restrict"
	"github.com/tiby312/broccoli-project-sub001/internal/scratch"
)

// DefaultSeqFallbackBuild and DefaultSeqFallbackQuery are the default
// sequential-fallback thresholds for [BuildPar] and
// [FindCollidingPairsPar]: below these subtree element counts, the
// fork-join driver stops spawning goroutines and recurses on the calling
// goroutine instead.
const (
	DefaultSeqFallbackBuild = 512
	DefaultSeqFallbackQuery = 256
)

// ParallelArgs tunes the fork-join drivers.
type ParallelArgs struct {
	// SeqFallbackBuild gates [BuildPar]; <= 0 means
	// [DefaultSeqFallbackBuild].
	SeqFallbackBuild int

	// SeqFallbackQuery gates [FindCollidingPairsPar]; <= 0 means
	// [DefaultSeqFallbackQuery].
	SeqFallbackQuery int
}

// Splitter lets a parallel query's per-goroutine accumulator be divided
// for a forked sibling task and folded back together at the join point —
// e.g. collecting pairs into per-task slices and concatenating them.
type Splitter[S any] interface {
	// Div returns a fresh accumulator for a sibling task forked off the
	// receiver.
	Div() S
	// Add folds other's accumulated results into the receiver.
	Add(other S)
}

// BuildPar is [Build] run across a fork-join worker pool: below
// args.SeqFallbackBuild elements in the smaller child subtree, recursion
// falls back to the same sequential algorithm [Build] uses.
func BuildPar[N Num, T Elem[N]](elems []T, args ParallelArgs) *Tree[N, T] {
	threshold := args.SeqFallbackBuild
	if threshold <= 0 {
		threshold = DefaultSeqFallbackBuild
	}

	height := computeHeight(len(elems), DefaultLeafCapacity)
	pb := &parBuilder[N, T]{sort: true, threshold: threshold}
	nodes := pb.build(elems, 0, height, AxisX)

	return &Tree[N, T]{
		nodes:        nodes,
		elems:        elems,
		height:       height,
		leafCapacity: DefaultLeafCapacity,
		sorted:       true,
	}
}

type parBuilder[N Num, T Elem[N]] struct {
	sort      bool
	threshold int
}

// build mirrors builder.build but, once the smaller child subtree's
// element count exceeds the threshold, builds the right subtree on a
// forked goroutine while the left subtree continues on the calling one,
// joining the two node vectors together afterward. Below the threshold
// it hands off entirely to the sequential builder.
func (b *parBuilder[N, T]) build(s []T, depth, height int, axis Axis) []Node[N, T] {
	if depth == height-1 || len(s) <= b.threshold {
		seq := &builder[N, T]{sort: b.sort}
		seq.build(s, depth, height, axis)
		return seq.nodes
	}

	crossAxis := axis.Other()

	medIdx := len(s) / 2
	quickselectByAxisLow(s, medIdx, axis)
	medVal, _ := s[medIdx].Bounds().axisRange(axis)
	left, middle, right := threeWayPartition(s, axis, medVal)

	if b.sort {
		sortByCrossAxisLow(middle, crossAxis)
	}
	cont := computeCont[N, T](middle, crossAxis)

	parent := Node[N, T]{
		Range:   restrict.SliceOf[Rect[N], T](middle),
		Cont:    cont,
		Div:     medVal,
		HasDiv:  true,
		Axis:    axis,
		MinElem: min(len(left), len(right)),
		NumElem: len(left) + len(right),
	}

	if parent.MinElem <= b.threshold {
		seq := &builder[N, T]{sort: b.sort}
		idx := len(seq.nodes)
		seq.nodes = append(seq.nodes, parent)
		seq.build(left, depth+1, height, crossAxis)
		leftSize := len(seq.nodes) - idx - 1
		seq.build(right, depth+1, height, crossAxis)
		seq.nodes[idx].leftSize = leftSize
		return seq.nodes
	}

	var rightNodes []Node[N, T]
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rightNodes = b.build(right, depth+1, height, crossAxis)
	}()

	leftNodes := b.build(left, depth+1, height, crossAxis)
	wg.Wait()

	parent.leftSize = len(leftNodes)

	result := make([]Node[N, T], 0, 1+len(leftNodes)+len(rightNodes))
	result = append(result, parent)
	result = append(result, leftNodes...)
	result = append(result, rightNodes...)
	return result
}

// FindCollidingPairsPar runs the same traversal as [Tree.FindCollidingPairs]
// across a fork-join worker pool. acc seeds the root task's accumulator;
// collide is invoked once per colliding pair with the current task's
// accumulator. Forked tasks receive a fresh accumulator via
// [Splitter.Div] and fold it back into the parent via [Splitter.Add]
// after joining, so the interleaving of collide calls across goroutines
// is unspecified but the final accumulator set is equivalent to
// [Tree.FindCollidingPairs]'s sequential traversal.
//
// collide must be safe to call concurrently from different goroutines
// (each receives a distinct accumulator value, so a collide that only
// touches its acc argument is automatically safe).
func FindCollidingPairsPar[N Num, T Elem[N], S Splitter[S]](t *Tree[N, T], args ParallelArgs, acc S, collide func(acc S, a, b Ref[N, T])) S {
	if len(t.nodes) == 0 {
		return acc
	}

	threshold := args.SeqFallbackQuery
	if threshold <= 0 {
		threshold = DefaultSeqFallbackQuery
	}

	pool := scratch.NewPool()
	runParCollide(t, 0, threshold, pool, acc, collide)
	return acc
}

// runParCollide forks one goroutine per right subtree above threshold,
// same as [parBuilder.build]. Each goroutine (the caller's and the
// forked one) draws its own pair of active-set buffers from pool so
// concurrent sweeps never share a PreVec, and returns them once its
// subtree is done.
func runParCollide[N Num, T Elem[N], S Splitter[S]](t *Tree[N, T], nodeIdx, threshold int, pool *scratch.Pool, acc S, collide func(S, Ref[N, T], Ref[N, T])) {
	n := &t.nodes[nodeIdx]
	activeA, activeB := pool.Get(), pool.Get()
	defer pool.Put(activeA)
	defer pool.Put(activeB)

	cf := &colfinder[N, T]{
		t:       t,
		activeA: activeA,
		activeB: activeB,
		collide: func(a, b Ref[N, T]) { collide(acc, a, b) },
	}

	if n.Leaf || n.MinElem <= threshold {
		cf.visit(nodeIdx)
		return
	}

	cf.withinNode(nodeIdx)
	l, r := t.leftChild(nodeIdx), t.rightChild(nodeIdx)

	rightAcc := acc.Div()
	rightActiveA, rightActiveB := pool.Get(), pool.Get()
	cfRight := &colfinder[N, T]{
		t:       t,
		activeA: rightActiveA,
		activeB: rightActiveB,
		collide: func(a, b Ref[N, T]) { collide(rightAcc, a, b) },
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer pool.Put(rightActiveA)
		defer pool.Put(rightActiveB)
		cfRight.anchorVsSubtree(nodeIdx, r)
		runParCollide(t, r, threshold, pool, rightAcc, collide)
	}()

	cf.anchorVsSubtree(nodeIdx, l)
	runParCollide(t, l, threshold, pool, acc, collide)
	wg.Wait()

	acc.Add(rightAcc)
}

// PairVecSplitter is a ready-made [Splitter] that collects colliding
// pairs (by value copy) into a slice, used by tests and benchmarks to
// compare the parallel traversal's result set against the sequential
// one.
type PairVecSplitter[N Num, T Elem[N]] struct {
	Pairs []Pair[N, T]
}

// Pair is a snapshot (by value) of a reported colliding pair.
type Pair[N Num, T Elem[N]] struct {
	A, B T
}

// Collect is a collide-callback adapter for [FindCollidingPairsPar] that
// appends to a [PairVecSplitter].
func (s *PairVecSplitter[N, T]) Collect(a, b Ref[N, T]) {
	s.Pairs = append(s.Pairs, Pair[N, T]{
		A: restrict.Copy[Rect[N], T](a),
		B: restrict.Copy[Rect[N], T](b),
	})
}

// Div returns a fresh, empty splitter for a forked sibling task.
func (s *PairVecSplitter[N, T]) Div() *PairVecSplitter[N, T] {
	return &PairVecSplitter[N, T]{}
}

// Add appends other's pairs onto s.
func (s *PairVecSplitter[N, T]) Add(other *PairVecSplitter[N, T]) {
	s.Pairs = append(s.Pairs, other.Pairs...)
}
