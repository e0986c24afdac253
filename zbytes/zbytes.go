// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package zbytes provides B, the payload container carried by
// publications.
//
// B is an ordered sequence of zslice.Slice views. Building a payload out
// of existing Slices never copies bytes; the only copies are FromString
// (out of the immutable string) and flattening a multi-slice container
// with Bytes.
package zbytes

import (
	"github.com/danjacques/gozbus/zslice"
)

// B is a payload: zero or more byte slices observed in sequence.
//
// The zero B is an empty payload.
type B struct {
	slices []zslice.Slice
}

// FromSlice returns a payload viewing s.
func FromSlice(s zslice.Slice) B {
	if s.IsEmpty() {
		return B{}
	}
	return B{slices: []zslice.Slice{s}}
}

// FromBytes returns a payload viewing b without copying. The caller must
// not modify b afterwards.
func FromBytes(b []byte) B {
	return FromSlice(zslice.Wrap(b))
}

// FromString returns a payload holding a copy of s.
func FromString(s string) B {
	return FromBytes([]byte(s))
}

// Len returns the total payload length in bytes.
func (b B) Len() int {
	total := 0
	for _, s := range b.slices {
		total += s.Len()
	}
	return total
}

// IsEmpty returns true if the payload contains no bytes.
func (b B) IsEmpty() bool { return b.Len() == 0 }

// Slices returns the payload's underlying views, in order. The returned
// slice must not be modified.
func (b B) Slices() []zslice.Slice { return b.slices }

// Append returns a payload with s appended after b's existing content.
func (b B) Append(s zslice.Slice) B {
	if s.IsEmpty() {
		return b
	}
	out := make([]zslice.Slice, 0, len(b.slices)+1)
	out = append(out, b.slices...)
	out = append(out, s)
	return B{slices: out}
}

// Bytes returns the payload as one contiguous byte slice.
//
// When the payload holds at most one view this is zero-copy; otherwise
// the views are flattened into a fresh allocation.
func (b B) Bytes() []byte {
	switch len(b.slices) {
	case 0:
		return nil
	case 1:
		return b.slices[0].Bytes()
	}

	out := make([]byte, 0, b.Len())
	for _, s := range b.slices {
		out = append(out, s.Bytes()...)
	}
	return out
}

// Equal returns true if o holds the same byte content as b, regardless
// of how the content is split across views.
func (b B) Equal(o B) bool {
	if b.Len() != o.Len() {
		return false
	}

	ab, ob := b.Bytes(), o.Bytes()
	for i := range ab {
		if ab[i] != ob[i] {
			return false
		}
	}
	return true
}
