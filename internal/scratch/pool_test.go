// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package scratch

import "testing"

func TestPreVecPushRetain(t *testing.T) {
	var pv PreVec
	pv.Push(1)
	pv.Push(2)
	pv.Push(3)

	if pv.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", pv.Len())
	}

	pv.Retain(func(i int) bool { return i != 2 })
	if pv.Len() != 2 || pv.At(0) != 1 || pv.At(1) != 3 {
		t.Fatalf("after Retain: len=%d, want [1 3]", pv.Len())
	}

	pv.Reset()
	if pv.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", pv.Len())
	}
}

func TestPoolGetPutStats(t *testing.T) {
	p := NewPool()

	if live, total := p.Stats(); live != 0 || total != 0 {
		t.Fatalf("fresh pool Stats() = (%d, %d), want (0, 0)", live, total)
	}

	a := p.Get()
	if live, total := p.Stats(); live != 1 || total != 1 {
		t.Fatalf("after one Get: Stats() = (%d, %d), want (1, 1)", live, total)
	}

	a.Push(5)
	p.Put(a)
	if live, _ := p.Stats(); live != 0 {
		t.Fatalf("after Put: live = %d, want 0", live)
	}

	b := p.Get()
	if b.Len() != 0 {
		t.Fatalf("buffer reused from pool was not drained: Len() = %d", b.Len())
	}
	if _, total := p.Stats(); total != 1 {
		t.Fatalf("reusing a returned buffer allocated a new one: total = %d, want 1", total)
	}
}

func TestNilPoolIsUsable(t *testing.T) {
	var p *Pool
	pv := p.Get()
	if pv == nil || pv.Len() != 0 {
		t.Fatal("nil *Pool.Get() should still hand back a usable, empty PreVec")
	}
	p.Put(pv) // must not panic
}
