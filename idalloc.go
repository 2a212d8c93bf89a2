// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import "sync"

// Object id ranges follow Wayland convention: client-assigned ids occupy the
// low range, server-assigned ids (returned in new_id replies this server
// originates) occupy the top of the 32-bit space.
const (
	// ClientIDRangeStart is the first id a client may assign to an object it
	// creates.
	ClientIDRangeStart uint32 = 0x00000001
	// ClientIDRangeEnd is the last id a client may assign.
	ClientIDRangeEnd uint32 = 0xfeffffff
	// ServerIDRangeStart is the first id this server may hand out for
	// objects it creates on the client's behalf.
	ServerIDRangeStart uint32 = 0xff000000
	// ServerIDRangeEnd is the last id in the server-assigned range.
	ServerIDRangeEnd uint32 = 0xffffffff
)

// ObjectIDAllocator hands out server-assigned object ids (component K) from
// the reserved top of the 32-bit id space and reclaims them on Free. It never
// reuses an id still considered live, and never returns an id outside
// [ServerIDRangeStart, ServerIDRangeEnd].
//
// An ObjectIDAllocator is safe for concurrent use.
type ObjectIDAllocator struct {
	mu        sync.Mutex
	next      uint32
	exhausted bool
	free      []uint32
	live      map[uint32]struct{}
}

// NewObjectIDAllocator returns an allocator ready to hand out ids starting at
// ServerIDRangeStart.
func NewObjectIDAllocator() *ObjectIDAllocator {
	return &ObjectIDAllocator{
		next: ServerIDRangeStart,
		live: make(map[uint32]struct{}),
	}
}

// Alloc returns an unused id in the server-assigned range, preferring the
// most recently freed id over minting a new one. ok is false once the range
// is exhausted.
func (a *ObjectIDAllocator) Alloc() (id uint32, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
		a.live[id] = struct{}{}
		return id, true
	}

	if a.exhausted {
		return 0, false
	}
	id = a.next
	a.live[id] = struct{}{}
	if a.next == ServerIDRangeEnd {
		// a.next+1 would overflow back to 0, the reserved Wayland null id;
		// mark exhausted instead of letting it wrap.
		a.exhausted = true
	} else {
		a.next++
	}
	return id, true
}

// Free releases id back to the pool. Freeing an id that is not currently
// live, or that falls outside the server-assigned range, is a no-op.
func (a *ObjectIDAllocator) Free(id uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.live[id]; !ok {
		return
	}
	delete(a.live, id)
	a.free = append(a.free, id)
}

// Live reports whether id is currently allocated and not yet freed.
func (a *ObjectIDAllocator) Live(id uint32) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.live[id]
	return ok
}
