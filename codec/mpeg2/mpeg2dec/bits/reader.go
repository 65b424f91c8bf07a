/*
DESCRIPTION
  reader.go provides a bit reader implementation over a fixed byte slice,
  used to walk the variable-length codes of an MPEG-1/2 video chunk.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides a bit reader used by the MPEG-1/2 video decoder to
// walk variable-length codes within a single start-code-delimited chunk.
package bits

import "errors"

// ErrOverrun is returned once a read or peek has walked past the end of the
// underlying chunk. The slice decoder treats this as a truncated slice
// (section 7 of the design: BitstreamIllegal) rather than a fatal error.
var ErrOverrun = errors.New("bits: read past end of chunk")

// Reader is a 32-bit big-endian shift register over a byte slice. It mirrors
// the bit_buf/bits/bit_ptr register of the reference decoder, but since a
// whole chunk is always available in memory up front (see the chunker),
// it operates directly on a slice instead of an io.Reader, so that an
// overrun can be detected precisely at the byte that caused it instead of
// surfacing as a generic EOF partway through a refill.
type Reader struct {
	buf []byte
	pos int // byte offset of the next unread byte in buf

	reg  uint32 // the 32-bit shift register
	left int    // number of valid unused bits currently held in reg
	real int    // of those, how many are backed by buf rather than end-of-chunk padding

	overrun bool
}

// NewReader returns a Reader over buf, primed with its first 32 bits (or
// fewer, if buf is shorter, zero-padded as the reference decoder does at
// end of stream).
func NewReader(buf []byte) *Reader {
	r := &Reader{buf: buf}
	r.fill()
	return r
}

// fill tops up the shift register from the byte slice until at least 24
// bits are held, matching the "need_bits" guarantee of section 4.3. Once
// buf is exhausted it pads with zero bits so Peek/Get never index out of
// range; those padding bits are not counted in r.real, so overrun is only
// raised once the caller actually consumes one (see Consume).
func (r *Reader) fill() {
	for r.left <= 24 {
		var b uint32
		if r.pos < len(r.buf) {
			b = uint32(r.buf[r.pos])
			r.pos++
			r.real += 8
		}
		r.reg |= b << uint(24-r.left)
		r.left += 8
	}
}

// NeedBits guarantees at least 25 unused bits are available in the register,
// refilling from the underlying buffer if required.
func (r *Reader) NeedBits() {
	if r.left <= 24 {
		r.fill()
	}
}

// Peek returns the top n bits (1 <= n <= 24) of the register without
// consuming them.
func (r *Reader) Peek(n int) uint32 {
	r.NeedBits()
	return r.reg >> uint(32-n)
}

// PeekSigned returns the top n bits sign-extended as a two's-complement
// value.
func (r *Reader) PeekSigned(n int) int32 {
	v := int32(r.Peek(n))
	v -= (v >> uint(n-1)) << uint(n)
	return v
}

// Consume shifts the register left by n bits, discarding them, and refills
// as needed. It is the caller's responsibility to have peeked at least n
// bits first. Consuming past the last bit actually backed by the chunk
// buffer sets Overrun.
func (r *Reader) Consume(n int) {
	if n > r.real {
		r.overrun = true
		r.real = 0
	} else {
		r.real -= n
	}
	r.reg <<= uint(n)
	r.left -= n
	r.fill()
}

// Get reads and consumes the next n bits, returning them as an unsigned
// value.
func (r *Reader) Get(n int) uint32 {
	v := r.Peek(n)
	r.Consume(n)
	return v
}

// GetSigned reads and consumes the next n bits as a sign-extended value.
func (r *Reader) GetSigned(n int) int32 {
	v := r.PeekSigned(n)
	r.Consume(n)
	return v
}

// Flag reads and consumes a single bit, returning it as a bool.
func (r *Reader) Flag() bool {
	return r.Get(1) != 0
}

// Overrun reports whether the reader has consumed past the end of the
// chunk buffer. Once true, all further decoded values for the current
// slice should be treated as unreliable and decoding of the slice aborted.
func (r *Reader) Overrun() bool {
	return r.overrun
}

// BytePos returns the byte offset within buf of the first byte not yet
// shifted into the register (i.e. how far the underlying cursor has moved).
func (r *Reader) BytePos() int {
	return r.pos
}

// ByteAligned reports whether the reader sits on a byte boundary relative
// to the chunk start (used by macroblock stuffing detection).
func (r *Reader) ByteAligned() bool {
	return (32-r.left)%8 == 0
}
