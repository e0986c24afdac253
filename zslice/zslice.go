// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package zslice

import (
	"fmt"

	"github.com/danjacques/gozbus/support/fmtutil"

	"github.com/pkg/errors"
)

// ErrOutOfBounds is returned by Make when the requested window does not
// fit inside the Buffer.
var ErrOutOfBounds = errors.New("zslice: bounds out of range")

// Slice is a window over a shared Buffer.
//
// The zero Slice is an empty view over no storage.
//
// A Slice value can be copied freely; copies observe the same bytes and
// share the same Buffer. Content mutation through MutBytes is visible to
// every copy. Two Slices compare Equal by content, regardless of which
// Buffer backs them.
type Slice struct {
	buf        Buffer
	start, end int
}

// New returns a Slice spanning all of buf.
func New(buf Buffer) Slice {
	return Slice{buf: buf, end: len(buf.Bytes())}
}

// Wrap returns a Slice spanning all of b.
func Wrap(b []byte) Slice { return New(Mem(b)) }

// Make returns a Slice over buf[start:end].
//
// It returns ErrOutOfBounds when end exceeds the Buffer's length or
// start exceeds end; the caller retains buf either way.
func Make(buf Buffer, start, end int) (Slice, error) {
	if start < 0 || start > end || end > len(buf.Bytes()) {
		return Slice{}, errors.Wrapf(ErrOutOfBounds, "[%d:%d] of %d", start, end, len(buf.Bytes()))
	}
	return Slice{buf: buf, start: start, end: end}, nil
}

// Buffer returns the backing Buffer handle.
//
// Type-assert on the result to recover a concrete Buffer implementation,
// e.g. to reclaim a pooled allocation.
func (s Slice) Buffer() Buffer { return s.buf }

// Len returns the length of the window.
func (s Slice) Len() int { return s.end - s.start }

// IsEmpty returns true if the window contains no bytes.
func (s Slice) IsEmpty() bool { return s.Len() == 0 }

// Bytes returns the bytes of the window.
//
// The returned slice aliases the backing Buffer and must not be
// modified.
func (s Slice) Bytes() []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf.Bytes()[s.start:s.end:s.end]
}

// MutBytes returns the bytes of the window for writing.
//
// This is an aliasing hazard: nothing enforces exclusive access, and
// writes are visible through every Slice sharing the Buffer. It exists
// so freshly-allocated buffers can be filled in place (zero-copy I/O);
// the caller must guarantee no concurrent reader or writer.
func (s Slice) MutBytes() []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf.MutBytes()[s.start:s.end]
}

// Sub returns a view of the window [start:end], with offsets relative to
// s. The new Slice shares s's Buffer. Returns false when the requested
// range does not fit inside s.
func (s Slice) Sub(start, end int) (Slice, bool) {
	if start < 0 || start > end || end > s.Len() {
		return Slice{}, false
	}
	return Slice{buf: s.buf, start: s.start + start, end: s.start + end}, true
}

// At returns the byte at window offset i. It panics if i is out of
// bounds, matching ordinary slice indexing.
func (s Slice) At(i int) byte { return s.Bytes()[i] }

// Range returns the bytes at window offsets [a:b]. It panics if the
// range is out of bounds, matching ordinary slice indexing.
func (s Slice) Range(a, b int) []byte { return s.Bytes()[a:b] }

// Equal returns true if o observes the same byte content as s. Identity
// of the backing Buffers is irrelevant.
func (s Slice) Equal(o Slice) bool {
	a, b := s.Bytes(), o.Bytes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the window's bytes in hex.
func (s Slice) String() string {
	return fmtutil.HexSlice(s.Bytes()).String()
}

// Format implements fmt.Formatter. The %v verb renders the window's
// bytes; the alternate form %+v additionally shows the window bounds and
// the full backing storage.
func (s Slice) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('+') {
		var buf []byte
		if s.buf != nil {
			buf = s.buf.Bytes()
		}
		fmt.Fprintf(f, "zslice.Slice{start: %d, end: %d, buf: %s}",
			s.start, s.end, fmtutil.HexSlice(buf))
		return
	}
	fmt.Fprint(f, s.String())
}
