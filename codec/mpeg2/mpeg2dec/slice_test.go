/*
DESCRIPTION
  slice_test.go provides testing for functionality found in slice.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import (
	"testing"

	"github.com/ausocean/mpeg2/codec/mpeg2/mpeg2dec/bits"
)

func TestDecodeMBAddressIncrementSingle(t *testing.T) {
	buf := packBits(field{4, 0b0010}) // value 5
	r := bits.NewReader(buf)
	v, err := decodeMBAddressIncrement(r)
	if err != nil {
		t.Fatalf("decodeMBAddressIncrement() error = %v", err)
	}
	if v != 5 {
		t.Errorf("v = %d, want 5", v)
	}
}

func TestDecodeMBAddressIncrementEscape(t *testing.T) {
	// macroblock_escape (adds 33) followed by value 1.
	buf := packBits(field{11, 0b00000001000}, field{1, 0b1})
	r := bits.NewReader(buf)
	v, err := decodeMBAddressIncrement(r)
	if err != nil {
		t.Fatalf("decodeMBAddressIncrement() error = %v", err)
	}
	if v != 34 {
		t.Errorf("v = %d, want 34 (33 + 1)", v)
	}
}

func TestDecodeMBAddressIncrementStuffingSkipped(t *testing.T) {
	// macroblock_stuffing (discarded) followed by value 2.
	buf := packBits(field{11, 0b00000001111}, field{3, 0b011})
	r := bits.NewReader(buf)
	v, err := decodeMBAddressIncrement(r)
	if err != nil {
		t.Fatalf("decodeMBAddressIncrement() error = %v", err)
	}
	if v != 2 {
		t.Errorf("v = %d, want 2", v)
	}
}

func TestInitialDCPred(t *testing.T) {
	if got := initialDCPred(&Picture{IntraDCPrecision: 0}); got != 128 {
		t.Errorf("initialDCPred(0) = %d, want 128", got)
	}
	if got := initialDCPred(&Picture{IntraDCPrecision: 2}); got != 512 {
		t.Errorf("initialDCPred(2) = %d, want 512", got)
	}
}

func TestNonIntraDCReset(t *testing.T) {
	if got := nonIntraDCReset(&Picture{IntraDCPrecision: 0}); got != 128 {
		t.Errorf("nonIntraDCReset(0) = %d, want 128", got)
	}
	if got := nonIntraDCReset(&Picture{IntraDCPrecision: 1}); got != 256 {
		t.Errorf("nonIntraDCReset(1) = %d, want 256", got)
	}
}

func TestDecodeDCDiff(t *testing.T) {
	cases := []struct {
		size int
		raw  uint32
		want int
	}{
		{1, 0, -1},
		{1, 1, 1},
		{2, 0b00, -3},
		{2, 0b11, 3},
		{3, 0b100, 4}, // half = 4, raw == half -> positive branch
	}
	for _, c := range cases {
		buf := packBits(field{c.size, c.raw})
		r := bits.NewReader(buf)
		if got := decodeDCDiff(r, c.size); got != c.want {
			t.Errorf("decodeDCDiff(size=%d, raw=%b) = %d, want %d", c.size, c.raw, got, c.want)
		}
	}
}

func TestOnlyDCNonZero(t *testing.T) {
	var block [64]int
	if !onlyDCNonZero(&block) {
		t.Errorf("onlyDCNonZero(all zero) = false, want true")
	}
	block[0] = 100
	if !onlyDCNonZero(&block) {
		t.Errorf("onlyDCNonZero(dc only) = false, want true")
	}
	block[10] = 1
	if onlyDCNonZero(&block) {
		t.Errorf("onlyDCNonZero(dc + ac) = true, want false")
	}
}

func TestDequantCoefMPEG1Oddifies(t *testing.T) {
	seq := &Sequence{MPEG1: true}
	pic := &Picture{QuantizerScale: 2}
	// Non-intra: ((2*|1|+1) * 16 * 2) / 16 = 6, an even result that
	// oddify must nudge to 5 for an MPEG-1 stream.
	got := dequantCoef(1, pic, seq, false, 16)
	if got != 5 {
		t.Errorf("dequantCoef() = %d, want 5 (oddified from 6)", got)
	}
}

func TestDequantCoefMPEG2LeavesEven(t *testing.T) {
	seq := &Sequence{MPEG1: false}
	pic := &Picture{QuantizerScale: 2}
	got := dequantCoef(1, pic, seq, false, 16)
	if got != 6 {
		t.Errorf("dequantCoef() = %d, want 6 (untouched for MPEG-2)", got)
	}
}

func TestDequantCoefSaturates(t *testing.T) {
	seq := &Sequence{MPEG1: false}
	pic := &Picture{QuantizerScale: 112}
	got := dequantCoef(127, pic, seq, true, 83)
	if got != 2047 {
		t.Errorf("dequantCoef() = %d, want 2047 (saturated)", got)
	}
}

// decoderWithFrames builds a Decoder whose frame store has a current
// picture to write into and a forward reference plane filled by plane(),
// sized generously so half-pel motion never reads out of bounds.
func decoderWithFrames(w, h int) (*Decoder, *Frame, *Frame) {
	cur := &Frame{
		Y: make([]byte, w*h), Cb: make([]byte, w*h/4), Cr: make([]byte, w*h/4),
		YStride: w, CStride: w / 2, Width: w, Height: h,
	}
	ref := &Frame{
		Y: plane(w, h), Cb: plane(w/2, h/2), Cr: plane(w/2, h/2),
		YStride: w, CStride: w / 2, Width: w, Height: h,
	}
	d := &Decoder{store: &frameStore{current: cur, forward: ref}}
	return d, cur, ref
}

// TestCompensateMotion16x8PredictsHalvesIndependently checks that the
// two 16x8 halves of a motion16x8 macroblock are each predicted with
// their own vector, rather than the whole macroblock being predicted
// once with only the first half's vector.
func TestCompensateMotion16x8PredictsHalvesIndependently(t *testing.T) {
	d, cur, ref := decoderWithFrames(32, 32)
	t_ := mbType{motionForward: true}
	mv := motionResult{v0: [2]int{0, 0}, v1: [2]int{4, 0}} // top half: (0,0); bottom half: mv_x=2px right (4 = 2<<1)
	d.compensate(0, 0, t_, motion16x8, mv, motionResult{})

	// Top half (rows 0-7) should equal ref at (0,0).
	if got, want := cur.Y[0], ref.Y[0]; got != want {
		t.Errorf("top half Y[0] = %d, want %d", got, want)
	}
	// Bottom half (rows 8-15) should be shifted 2 pixels right of ref.
	row := 8
	wantRow := ref.Y[row*32+2 : row*32+2+4]
	gotRow := cur.Y[row*32 : row*32+4]
	for i := range wantRow {
		if gotRow[i] != wantRow[i] {
			t.Errorf("bottom half Y row %d = %v, want %v", row, gotRow, wantRow)
			break
		}
	}
}

// TestCompensateDualPrimeBlendsSecondPrediction checks that dual-prime
// blends a second, dmv-offset prediction on top of the first rather than
// only ever writing the first one.
func TestCompensateDualPrimeBlendsSecondPrediction(t *testing.T) {
	d, cur, ref := decoderWithFrames(32, 32)
	t_ := mbType{motionForward: true}
	mv := motionResult{v0: [2]int{0, 0}, dmv: [2]int{4, 0}} // second prediction shifted 2px right
	d.compensate(0, 0, t_, motionDualPrime, mv, motionResult{})

	want := avg2(ref.Y[0], ref.Y[2])
	if got := cur.Y[0]; got != want {
		t.Errorf("Y[0] = %d, want %d (blend of the two predictions)", got, want)
	}
}

// TestStoreBlockFieldDCTInterleavesRows checks that field-DCT luma
// blocks are written to every other row, with the bottom-field pair
// (blocks 2,3) one row below the top-field pair (blocks 0,1), instead of
// the four blocks tiling the macroblock as contiguous 8x8 frame blocks.
func TestStoreBlockFieldDCTInterleavesRows(t *testing.T) {
	d, cur, _ := decoderWithFrames(16, 16)
	var topBlock, botBlock [64]int
	for i := range topBlock {
		topBlock[i] = 10
		botBlock[i] = 20
	}
	d.storeBlock(0, 0, 0, &topBlock, true, true)
	d.storeBlock(0, 0, 2, &botBlock, true, true)

	if cur.Y[0*16] != 10 {
		t.Errorf("row 0 (top field) = %d, want 10", cur.Y[0*16])
	}
	if cur.Y[1*16] != 20 {
		t.Errorf("row 1 (bottom field) = %d, want 20", cur.Y[1*16])
	}
	if cur.Y[2*16] != 10 {
		t.Errorf("row 2 (top field) = %d, want 10", cur.Y[2*16])
	}
	if cur.Y[3*16] != 20 {
		t.Errorf("row 3 (bottom field) = %d, want 20", cur.Y[3*16])
	}
}
