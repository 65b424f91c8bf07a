/*
DESCRIPTION
  motioncomp.go implements the half-pel motion compensation kernels
  used for every prediction shape described in section 4.6: a single
  16x16 frame prediction, two 16x8 predictions (the upper and lower
  halves of a macroblock, each with its own vector), and the two-vector average
  used for dual-prime and for bidirectionally predicted B macroblocks.
  The reference decoder splits these into its mc_*.c kernel table
  indexed by (x half, y half); this file keeps that same decomposition
  but as a pair of put/avg functions parameterised on the half-pel
  flags, since Go has no equivalent to indexing a table of function
  pointers by two booleans worth keeping idiomatic.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// predictBlock writes into dst the w x h prediction sourced from ref at
// (x, y), applying the half-pel interpolation selected by halfX/halfY.
// Fractional positions average either 2 (one axis half-pel) or 4 (both
// axes half-pel) neighbouring samples with rounding, per section 4.6.2.
func predictBlock(dst []byte, dstStride int, ref []byte, refStride, refX, refY, w, h int, halfX, halfY bool) {
	switch {
	case !halfX && !halfY:
		for r := 0; r < h; r++ {
			copy(dst[r*dstStride:r*dstStride+w], ref[(refY+r)*refStride+refX:(refY+r)*refStride+refX+w])
		}
	case halfX && !halfY:
		for r := 0; r < h; r++ {
			srow := ref[(refY+r)*refStride:]
			drow := dst[r*dstStride:]
			for c := 0; c < w; c++ {
				drow[c] = avg2(srow[refX+c], srow[refX+c+1])
			}
		}
	case !halfX && halfY:
		for r := 0; r < h; r++ {
			s0 := ref[(refY+r)*refStride:]
			s1 := ref[(refY+r+1)*refStride:]
			drow := dst[r*dstStride:]
			for c := 0; c < w; c++ {
				drow[c] = avg2(s0[refX+c], s1[refX+c])
			}
		}
	default:
		for r := 0; r < h; r++ {
			s0 := ref[(refY+r)*refStride:]
			s1 := ref[(refY+r+1)*refStride:]
			drow := dst[r*dstStride:]
			for c := 0; c < w; c++ {
				drow[c] = avg4(s0[refX+c], s0[refX+c+1], s1[refX+c], s1[refX+c+1])
			}
		}
	}
}

// blendBlock averages a second prediction into dst in place, used to
// combine a dual-prime or bidirectional B macroblock's two predictions
// (section 4.6.4 and 4.6.5): dst already holds the first prediction;
// this overwrites it with the rounded average of itself and the second.
func blendBlock(dst []byte, dstStride int, ref []byte, refStride, refX, refY, w, h int, halfX, halfY bool) {
	second := make([]byte, h*w)
	predictBlock(second, w, ref, refStride, refX, refY, w, h, halfX, halfY)
	for r := 0; r < h; r++ {
		drow := dst[r*dstStride:]
		srow := second[r*w:]
		for c := 0; c < w; c++ {
			drow[c] = avg2(drow[c], srow[c])
		}
	}
}

func avg2(a, b byte) byte {
	return byte((int(a) + int(b) + 1) >> 1)
}

func avg4(a, b, c, d byte) byte {
	return byte((int(a) + int(b) + int(c) + int(d) + 2) >> 2)
}

// addResidual adds a fully inverse-transformed 8x8 block (already
// clipped-range ints) onto an existing prediction in dst, used for
// non-intra and predicted-intra blocks; writes are saturated to [0,255].
func addResidual(dst []byte, stride int, block *[64]int) {
	for r := 0; r < 8; r++ {
		row := dst[r*stride : r*stride+8]
		for c := 0; c < 8; c++ {
			row[c] = clip255(int(row[c]) + block[r*8+c])
		}
	}
}

// storeIntra writes a fully inverse-transformed 8x8 block directly into
// dst, used for intra blocks which have no prediction to add onto.
func storeIntra(dst []byte, stride int, block *[64]int) {
	for r := 0; r < 8; r++ {
		row := dst[r*stride : r*stride+8]
		for c := 0; c < 8; c++ {
			row[c] = clip255(block[r*8+c])
		}
	}
}
