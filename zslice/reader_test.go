// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package zslice

import (
	"io"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Slice reader", func() {
	var s Slice

	BeforeEach(func() {
		s = Wrap([]byte{0x0a, 0x0b, 0x0c, 0x0d})
	})

	Context("Read", func() {
		It("copies into the destination and advances", func() {
			buf := make([]byte, 3)

			n, err := s.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(3))
			Expect(buf).To(Equal([]byte{0x0a, 0x0b, 0x0c}))
			Expect(s.Remaining()).To(Equal(1))

			n, err = s.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(1))
			Expect(buf[0]).To(Equal(byte(0x0d)))
		})

		It("fails once the window is drained", func() {
			buf := make([]byte, 8)

			n, err := s.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(4))

			_, err = s.Read(buf)
			Expect(err).To(Equal(io.EOF))
		})

		It("never returns zero bytes with success", func() {
			n, err := s.Read(nil)

			Expect(n).To(Equal(0))
			Expect(err).To(Equal(io.EOF))
			Expect(s.Remaining()).To(Equal(4))
		})
	})

	Context("ReadByte", func() {
		It("reconstructs the window byte by byte, then fails", func() {
			var got []byte
			for {
				b, err := s.ReadByte()
				if err != nil {
					Expect(err).To(Equal(io.EOF))
					break
				}
				got = append(got, b)
			}

			Expect(got).To(Equal([]byte{0x0a, 0x0b, 0x0c, 0x0d}))

			_, err := s.ReadByte()
			Expect(err).To(Equal(io.EOF))
		})
	})

	Context("ReadExact", func() {
		It("fills the destination completely", func() {
			buf := make([]byte, 4)

			Expect(s.ReadExact(buf)).To(Succeed())
			Expect(buf).To(Equal([]byte{0x0a, 0x0b, 0x0c, 0x0d}))
			Expect(s.CanRead()).To(BeFalse())
		})

		It("fails without advancing when the window is short", func() {
			buf := make([]byte, 5)

			Expect(s.ReadExact(buf)).To(Equal(io.EOF))
			Expect(s.Remaining()).To(Equal(4))

			b, err := s.ReadByte()
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal(byte(0x0a)))
		})
	})

	Context("ReadSlice", func() {
		It("returns a zero-copy view and advances past it", func() {
			sub, err := s.ReadSlice(3)

			Expect(err).ToNot(HaveOccurred())
			Expect(sub.Bytes()).To(Equal([]byte{0x0a, 0x0b, 0x0c}))

			b, err := s.ReadByte()
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal(byte(0x0d)))

			_, err = s.ReadByte()
			Expect(err).To(Equal(io.EOF))
		})

		It("matches what Read would have returned", func() {
			clone := s

			sub, err := s.ReadSlice(3)
			Expect(err).ToNot(HaveOccurred())

			buf := make([]byte, 3)
			n, err := clone.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(3))

			Expect(sub.Bytes()).To(Equal(buf))
			Expect(s.Remaining()).To(Equal(clone.Remaining()))
		})

		It("fails without advancing when the window is short", func() {
			_, err := s.ReadSlice(5)

			Expect(err).To(Equal(io.EOF))
			Expect(s.Remaining()).To(Equal(4))
		})

		It("hands the view to a sink via ReadSlices", func() {
			var got Slice
			Expect(s.ReadSlices(2, func(sub Slice) { got = sub })).To(Succeed())

			Expect(got.Bytes()).To(Equal([]byte{0x0a, 0x0b}))
			Expect(s.Remaining()).To(Equal(2))
		})
	})

	Context("Mark and Rewind", func() {
		It("replays reads from the marked position", func() {
			m := s.Mark()

			b, err := s.ReadByte()
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal(byte(0x0a)))

			b, err = s.ReadByte()
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal(byte(0x0b)))

			Expect(s.Rewind(m)).To(BeTrue())

			b, err = s.ReadByte()
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal(byte(0x0a)))
		})

		It("restores remaining count after arbitrary reads", func() {
			m := s.Mark()
			before := s.Remaining()

			_, _ = s.ReadSlice(2)
			buf := make([]byte, 1)
			_, _ = s.Read(buf)

			Expect(s.Rewind(m)).To(BeTrue())
			Expect(s.Remaining()).To(Equal(before))
		})
	})
})
