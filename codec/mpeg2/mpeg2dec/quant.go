/*
DESCRIPTION
  quant.go provides the default quantizer matrices, the non-linear
  quantizer scale table, and the dequantization and saturation/mismatch
  routines defined in section 7.4 of ISO/IEC 13818-2.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// defaultIntraQuantizerMatrix is loaded, in zig-zag order, as the intra
// quantizer matrix when a sequence header does not supply a custom one.
var defaultIntraQuantizerMatrix = [64]uint8{
	8,
	16, 16,
	19, 16, 19,
	22, 22, 22, 22,
	22, 22, 26, 24, 26,
	27, 27, 27, 26, 26, 26,
	26, 27, 27, 27, 29, 29, 29,
	34, 34, 34, 29, 29, 29, 27, 27,
	29, 29, 32, 32, 34, 34, 37,
	38, 37, 35, 35, 34, 35,
	38, 38, 40, 40, 40,
	48, 48, 46, 46,
	56, 56, 58,
	69, 69,
	83,
}

// defaultNonIntraQuantizerMatrix is the flat matrix used when a sequence
// header does not supply a custom non-intra quantizer matrix.
var defaultNonIntraQuantizerMatrix = [64]uint8{
	16, 16, 16, 16, 16, 16, 16, 16,
	16, 16, 16, 16, 16, 16, 16, 16,
	16, 16, 16, 16, 16, 16, 16, 16,
	16, 16, 16, 16, 16, 16, 16, 16,
	16, 16, 16, 16, 16, 16, 16, 16,
	16, 16, 16, 16, 16, 16, 16, 16,
	16, 16, 16, 16, 16, 16, 16, 16,
	16, 16, 16, 16, 16, 16, 16, 16,
}

// nonLinearQuantizerScale implements the q_scale_type mapping of table
// 7-6: when q_scale_type is set, quantizer_scale_code is translated
// through this table rather than doubled directly.
var nonLinearQuantizerScale = [32]int{
	0, 1, 2, 3, 4, 5, 6, 7,
	8, 10, 12, 14, 16, 18, 20, 22,
	24, 28, 32, 36, 40, 44, 48, 52,
	56, 64, 72, 80, 88, 96, 104, 112,
}

// quantizerScale derives quantizer_scale from quantizer_scale_code
// (5 bits) and the q_scale_type flag, per section 7.4.2.2.
func quantizerScale(code int, qScaleType bool) int {
	if qScaleType {
		return nonLinearQuantizerScale[code]
	}
	return code << 1
}

// saturate clips a dequantized coefficient to the legal range required by
// invariant I-3: every decoded DCT coefficient lies in [-2048, 2047].
func saturate(v int) int {
	switch {
	case v < -2048:
		return -2048
	case v > 2047:
		return 2047
	default:
		return v
	}
}

// mismatchControl applies the end-of-block mismatch control of section
// 7.4.4: the XOR of all 64 coefficients in a non-intra, non-MPEG-1 block
// must equal 1. If it does not, the LSB of the final coefficient is
// flipped to restore the parity invariant.
func mismatchControl(block *[64]int) {
	sum := 0
	for _, c := range block {
		sum ^= c & 1
	}
	if sum == 0 {
		block[63] ^= 1
	}
}

// oddify forces the LSB of a dequantized MPEG-1 coefficient to 1, rounding
// toward zero on ties, as required by the MPEG-1 (but not MPEG-2)
// dequantization formula.
func oddify(v int) int {
	if v&1 != 0 {
		return v
	}
	if v > 0 {
		return v - 1
	}
	if v < 0 {
		return v + 1
	}
	return v
}

// dequantizeIntra dequantizes an intra coefficient at scan position i using
// the intra quantizer matrix and the current quantizer_scale, following the
// formula of section 7.4.4 (non-DC coefficients; the DC coefficient uses
// the predictor-based path in dcDequantize).
func dequantizeIntra(level int, matrixVal uint8, quantizerScale int) int {
	return (level * int(matrixVal) * quantizerScale) / 8
}

// dequantizeNonIntra dequantizes a non-intra coefficient, following the
// formula of section 7.4.4.
func dequantizeNonIntra(level int, matrixVal uint8, quantizerScale int) int {
	v := ((2*absInt(level) + 1) * int(matrixVal) * quantizerScale) / 16
	if level < 0 {
		v = -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
