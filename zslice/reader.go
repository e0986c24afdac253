// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package zslice

import (
	"io"
)

// Reader face of a Slice.
//
// A *Slice doubles as a sequential cursor over its own window: reading
// advances the window's start, and the remaining window is what is left
// to read. Because a Slice copy is cheap and independent, snapshotting a
// reader is just copying the Slice value.
//
// End of input is reported as io.EOF, from every read method. Callers
// treat it as "this source has no more bytes" and recover at their own
// level.

var _ interface {
	io.Reader
	io.ByteReader
} = (*Slice)(nil)

// Read copies up to len(p) bytes out of the window into p, advancing the
// cursor by the number of bytes copied.
//
// Unlike a general io.Reader, Read never returns (0, nil): if nothing
// can be copied, because the window is drained or p is empty, it
// returns io.EOF.
func (s *Slice) Read(p []byte) (int, error) {
	n := copy(p, s.Bytes())
	if n == 0 {
		return 0, io.EOF
	}
	s.start += n
	return n, nil
}

// ReadByte reads and returns the next byte in the window.
func (s *Slice) ReadByte() (byte, error) {
	if s.IsEmpty() {
		return 0, io.EOF
	}
	b := s.buf.Bytes()[s.start]
	s.start++
	return b, nil
}

// ReadExact copies exactly len(p) bytes into p.
//
// If fewer than len(p) bytes remain, ReadExact returns io.EOF and the
// cursor does not move.
func (s *Slice) ReadExact(p []byte) error {
	if len(p) > s.Len() {
		return io.EOF
	}
	s.start += copy(p, s.Bytes())
	return nil
}

// ReadSlice returns a view of the next n bytes and advances the cursor
// by n. No bytes are copied; the returned Slice shares the backing
// Buffer.
//
// If fewer than n bytes remain, ReadSlice returns io.EOF and the cursor
// does not move.
func (s *Slice) ReadSlice(n int) (Slice, error) {
	sub, ok := s.Sub(0, n)
	if !ok {
		return Slice{}, io.EOF
	}
	s.start += n
	return sub, nil
}

// ReadSlices reads a view of the next n bytes, as ReadSlice, and hands
// it to fn.
func (s *Slice) ReadSlices(n int, fn func(Slice)) error {
	sub, err := s.ReadSlice(n)
	if err != nil {
		return err
	}
	fn(sub)
	return nil
}

// Remaining returns the number of unread bytes in the window.
func (s *Slice) Remaining() int { return s.Len() }

// CanRead returns true if at least one unread byte remains.
func (s *Slice) CanRead() bool { return !s.IsEmpty() }

// Mark returns a token for the current cursor position, for use with
// Rewind.
func (s *Slice) Mark() int { return s.start }

// Rewind restores the cursor to a position previously returned by Mark
// on the same Slice. It always succeeds.
func (s *Slice) Rewind(mark int) bool {
	s.start = mark
	return true
}
