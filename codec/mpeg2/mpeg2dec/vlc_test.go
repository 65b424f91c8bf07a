/*
DESCRIPTION
  vlc_test.go provides testing for functionality found in vlc.go and
  canonical.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import (
	"testing"

	"github.com/ausocean/mpeg2/codec/mpeg2/mpeg2dec/bits"
)

// field is one (length, value) bitfield, MSB-first, for packBits.
type field struct {
	length int
	value  uint32
}

// packBits lays out a sequence of fields MSB-first into a byte slice,
// zero-padding the final byte, so a vlcTable or header parser can be
// exercised against a real bits.Reader instead of hand-built byte
// literals per case.
func packBits(fields ...field) []byte {
	var bitCount int
	for _, f := range fields {
		bitCount += f.length
	}
	out := make([]byte, (bitCount+7)/8)
	pos := 0
	for _, f := range fields {
		for i := f.length - 1; i >= 0; i-- {
			if f.value&(1<<uint(i)) != 0 {
				out[pos/8] |= 1 << uint(7-pos%8)
			}
			pos++
		}
	}
	return out
}

func TestCanonicalVLCRoundTrip(t *testing.T) {
	// Five symbols with a realistic skewed length distribution: one
	// 1-bit code, two 2-bit codes, two 3-bit codes (Kraft sum
	// 1/2+1/4+1/4+1/8+1/8 = 1.25 > 1, so drop one to keep it valid).
	lengths := []int{1, 2, 3, 3}
	values := []int{10, 20, 30, 40}
	table := buildCanonicalVLC(lengths, values)

	if len(table) != len(values) {
		t.Fatalf("len(table) = %d, want %d", len(table), len(values))
	}

	for _, entry := range table {
		buf := packBits(field{entry.length, entry.bits})
		r := bits.NewReader(buf)
		got, err := table.decode(r)
		if err != nil {
			t.Fatalf("decode() error = %v for entry %+v", err, entry)
		}
		if got != entry.value {
			t.Errorf("decode() = %d, want %d for entry %+v", got, entry.value, entry)
		}
	}
}

func TestVLCDecodeNoMatch(t *testing.T) {
	table := vlcTable{{length: 2, bits: 0b11, value: 1}}
	r := bits.NewReader([]byte{0x00})
	if _, err := table.decode(r); err == nil {
		t.Fatalf("decode() error = nil, want errVLCNotFound")
	}
}
