// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package scratch manages the reusable active-set buffers (PreVec) used
// by the one-dimensional sweep primitives.
// Every recursive call into a node needs a scratch vector to hold the
// sweep's active set; allocating one per call would dominate runtime on
// deep trees, so a per-goroutine pool hands out already-allocated
// buffers and only drains (never frees) them between calls.
package scratch

import (
	"sync"
	"sync/atomic"
)

// PreVec is a reusable scratch buffer of element indices, used as the
// active set during a one-dimensional sweep. It is drained, not
// reallocated, between uses so deeper recursive calls see an empty but
// already-sized buffer.
type PreVec struct {
	idx []int
}

// Reset drains the buffer to length zero without releasing its backing
// array.
func (p *PreVec) Reset() { p.idx = p.idx[:0] }

// Push appends an index to the active set.
func (p *PreVec) Push(i int) { p.idx = append(p.idx, i) }

// Len returns the number of active indices.
func (p *PreVec) Len() int { return len(p.idx) }

// At returns the active index at position i.
func (p *PreVec) At(i int) int { return p.idx[i] }

// Retain keeps only the indices for which keep returns true, compacting
// in place; used to evict expired active-set entries during a sweep.
func (p *PreVec) Retain(keep func(i int) bool) {
	w := 0
	for _, v := range p.idx {
		if keep(v) {
			p.idx[w] = v
			w++
		}
	}
	p.idx = p.idx[:w]
}

// Pool is a typed wrapper around sync.Pool specialized for *PreVec
// instances: it tracks total-allocated and currently-live counts for
// diagnostics and reuses buffers across recursive calls and, in the
// parallel driver, across forked goroutines (each of which gets its own
// PreVec, never a shared one).
type Pool struct {
	sync.Pool

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

// NewPool creates a pool of *PreVec scratch buffers.
func NewPool() *Pool {
	p := &Pool{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return new(PreVec)
	}
	return p
}

// Get retrieves a drained *PreVec from the pool, allocating a new one if
// needed.
func (p *Pool) Get() *PreVec {
	if p == nil {
		return new(PreVec)
	}
	p.currentLive.Add(1)
	return p.Pool.Get().(*PreVec)
}

// Put returns pv to the pool after draining it.
func (p *Pool) Put(pv *PreVec) {
	if p == nil {
		return
	}
	p.currentLive.Add(-1)
	pv.Reset()
	p.Pool.Put(pv)
}

// Stats returns the number of currently checked-out buffers and the
// total ever allocated.
func (p *Pool) Stats() (live, total int64) {
	if p == nil {
		return 0, 0
	}
	return p.currentLive.Load(), p.totalAllocated.Load()
}
