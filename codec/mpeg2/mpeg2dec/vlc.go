/*
DESCRIPTION
  vlc.go provides a generic table-driven variable-length code reader used
  by every VLC table in the slice decoder: macroblock_address_increment,
  macroblock_type, motion_code, coded_block_pattern and the two DCT
  coefficient tables.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import (
	"github.com/pkg/errors"

	"github.com/ausocean/mpeg2/codec/mpeg2/mpeg2dec/bits"
)

// errVLCNotFound indicates that no entry of a vlcTable matched the bits
// peeked from the stream; per section 7 this is a BitstreamIllegal error
// that aborts the current slice.
var errVLCNotFound = errors.New("mpeg2dec: no matching vlc entry")

// vlcEntry is one codeword of a variable-length code table: a bit pattern
// of a given length mapping to a decoded value.
type vlcEntry struct {
	length int
	bits   uint32
	value  int
}

// vlcTable is a flat list of codewords for one syntax element. Entries are
// tried in the order they are listed, relying on the prefix-free property
// of the standard's VLC tables: since the code is a valid prefix code,
// exactly one entry can match a given bit pattern prefix, whatever the
// order.
type vlcTable []vlcEntry

// maxLen returns the length, in bits, of the longest codeword in t.
func (t vlcTable) maxLen() int {
	max := 0
	for _, e := range t {
		if e.length > max {
			max = e.length
		}
	}
	return max
}

// decode peeks increasingly many bits from r until a codeword of t
// matches, then consumes exactly that codeword and returns its value.
// Table entries form a prefix-free code, so the first match found, tried
// in any order, is necessarily the unique correct one.
func (t vlcTable) decode(r *bits.Reader) (int, error) {
	for _, e := range t {
		if int(r.Peek(e.length)) == int(e.bits) {
			r.Consume(e.length)
			return e.value, nil
		}
	}
	return 0, errVLCNotFound
}
