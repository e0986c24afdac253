// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package bufferpool maintains pools of reference-counted, fixed-size
// byte buffers.
//
// A pooled Buffer implements zslice.Buffer, so its storage can back
// zslice.Slice views: take the Buffer from the pool, fill it through
// MutBytes while it is still exclusive, then share Slices over it. Each
// long-lived Slice should hold one retention, released when the Slice is
// discarded; when the count reaches zero the storage returns to the pool
// for reuse.
package bufferpool

import (
	"sync"
	"sync/atomic"
)

// Pool maintains a pool of fixed-size buffers, allocating a fresh one
// when none is available.
type Pool struct {
	// Size is the size of the buffers in this pool.
	Size int

	base sync.Pool
}

// Get returns a Buffer with a reference count of 1.
//
// The Buffer's length is capped to the pool's Size until Truncate is
// called. The caller must Release the Buffer when done with it.
func (bp *Pool) Get() *Buffer {
	b, ok := bp.base.Get().(*Buffer)
	if !ok {
		b = &Buffer{
			bytes: make([]byte, bp.Size),
		}
	}

	b.pool = bp
	b.size = -1
	b.refcount = 1
	return b
}

// Buffer is a fixed-size byte buffer that returns to its Pool for reuse
// once every reference to it has been released.
//
// Failing to release a Buffer does not leak memory; it only prevents the
// storage from being reused.
type Buffer struct {
	refcount int64

	bytes []byte
	size  int

	pool *Pool
}

// Bytes returns the Buffer's storage, honoring any Truncate cap.
//
// Bytes makes *Buffer a zslice.Buffer.
func (b *Buffer) Bytes() []byte {
	if b.size >= 0 {
		return b.bytes[:b.size]
	}
	return b.bytes
}

// MutBytes returns the Buffer's storage for writing.
//
// Writing is only legal while the Buffer is exclusively held, before any
// views over it have been shared.
func (b *Buffer) MutBytes() []byte { return b.Bytes() }

// Len returns the number of bytes in the Buffer.
func (b *Buffer) Len() int { return len(b.Bytes()) }

// Truncate caps the number of bytes exposed by Bytes and MutBytes.
//
// Truncate must be called before views over the Buffer are shared; the
// length must stay fixed for the shared lifetime.
func (b *Buffer) Truncate(size int) {
	b.size = size
}

// Retain increases the Buffer's reference count. Each Retain must be
// paired with a Release.
func (b *Buffer) Retain() { atomic.AddInt64(&b.refcount, 1) }

// Release drops one reference to the Buffer. When the last reference is
// released, the Buffer returns to its pool.
//
// Release is safe for concurrent use. A given reference must only be
// released once.
func (b *Buffer) Release() {
	if atomic.AddInt64(&b.refcount, -1) != 0 {
		return
	}

	var pool *Pool
	pool, b.pool = b.pool, nil
	pool.base.Put(b)
}
