/*
DESCRIPTION
  idct_test.go provides testing for functionality found in idct.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "testing"

func TestIDCTBlockAllZero(t *testing.T) {
	var block [64]int
	idctBlock(&block)
	for i, v := range block {
		if v != 0 {
			t.Fatalf("block[%d] = %d, want 0", i, v)
		}
	}
}

// TestIDCTBlockDCMatchesShortcut checks that running the full two-pass
// transform on a block whose only nonzero coefficient is the DC term
// produces the same constant value idctDCOnly computes directly: the
// fast path is only a valid substitute for the general transform if
// their scaling agrees.
func TestIDCTBlockDCMatchesShortcut(t *testing.T) {
	for _, dc := range []int{0, 1, 8, 64, 500, -500, -64} {
		var full [64]int
		full[0] = dc
		idctBlock(&full)

		var fast [64]int
		fast[0] = dc
		idctDCOnly(&fast)

		for i := range full {
			if full[i] != fast[i] {
				t.Fatalf("dc=%d: full[%d] = %d, fast[%d] = %d, want equal", dc, i, full[i], i, fast[i])
			}
		}
	}
}

func TestClip255(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{255, 255},
		{256, 255},
		{128, 128},
	}
	for _, test := range tests {
		if got := clip255(test.in); got != test.want {
			t.Errorf("clip255(%d) = %d, want %d", test.in, got, test.want)
		}
	}
}
