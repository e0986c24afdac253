// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package zslice offers Slice, a shared, sub-rangeable view over byte
// storage, used to carry payload bytes through the stack without copying.
//
// A Slice is a window (start, end) over a Buffer. Copying a Slice copies
// the window bounds and the Buffer handle, never the bytes. Sub-views
// share the same Buffer with adjusted bounds, so a payload can be carved
// up into headers and fragments with no allocation.
//
// With great power comes great responsibility: any entity holding a Slice
// keeps the whole backing Buffer alive, and the Buffer's contents must be
// treated as immutable from the moment the first Slice exists over it.
// The sole exception is MutBytes, which is documented separately.
package zslice

// Buffer is contiguous, addressable byte storage of a fixed length.
//
// A Buffer must be safe to share between goroutines once its contents are
// frozen. It must not reallocate or change length while any Slice exists
// over it.
//
// Concrete Buffer types can be recovered from a Slice via its Buffer
// method and an ordinary type assertion.
type Buffer interface {
	// Bytes returns the Buffer's full storage. Callers must not modify the
	// returned slice once the Buffer is shared.
	Bytes() []byte

	// MutBytes returns the Buffer's full storage for writing. It is only
	// legal to write through it while the caller has exclusive access to
	// the Buffer (typically immediately after allocation, before sharing).
	MutBytes() []byte
}

// Mem is a Buffer backed by an ordinary byte slice.
type Mem []byte

var _ Buffer = Mem(nil)

// Bytes implements Buffer.
func (m Mem) Bytes() []byte { return m }

// MutBytes implements Buffer.
func (m Mem) MutBytes() []byte { return m }
