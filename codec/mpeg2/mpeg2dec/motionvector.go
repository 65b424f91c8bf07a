/*
DESCRIPTION
  motionvector.go decodes motion_code/motion_residual syntax elements
  into a motion vector delta and the full vector against a predictor,
  and implements the dual-prime motion type's extra differential motion
  vector, following get_motion_delta, bound_motion_vector and get_dmv of
  the reference decoder's slice.c.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "github.com/ausocean/mpeg2/codec/mpeg2/mpeg2dec/bits"

// predictor holds the two motion vector predictors (section 4.6): index
// 0 is used by frame/field pictures with one vector per direction, and
// by the first of two vectors in 16x8/field-dual prediction; index 1 is
// the second. [x,y] per entry.
type predictor [2][2]int

// reset zeroes both predictors, as required at the start of every slice
// and whenever an intra or skipped macroblock is encountered without
// concealment motion vectors (section 4.6).
func (p *predictor) reset() {
	*p = predictor{}
}

// decodeMotionDelta reads one motion_code (table B-10) and, if fCode
// calls for residual bits, a motion_residual, combining them into a
// signed delta as defined in section 7.6.3.1. fCode is the picture's
// f_code for this component minus one (the raw bitstream value less one,
// as stored in Picture.FCode), so an fCode of 0 reads no residual bits at
// all.
func decodeMotionDelta(r *bits.Reader, fCode int) (int, error) {
	code, err := motionCodeTable.decode(r)
	if err != nil {
		return 0, err
	}
	if code == 0 {
		return 0, nil
	}
	sign := r.Flag() // motion_sign, present whenever motion_code != 0.

	delta := (code-1)<<uint(fCode) + 1
	if fCode > 0 {
		delta += int(r.Get(fCode))
	}
	if sign {
		delta = -delta
	}
	return delta, nil
}

// boundMotionVector wraps vector into the legal range for fCode, per
// section 7.6.3.3: the range is +/-(16<<fCode), and a vector that
// overflows it wraps around rather than saturating, since the reference
// frame is conceptually tiled.
func boundMotionVector(vector, fCode int) int {
	limit := 16 << uint(fCode)
	r := 2 * limit
	if vector < -limit {
		return vector + r
	}
	if vector >= limit {
		return vector - r
	}
	return vector
}

// decodeDMV reads a dmvector (table B-11) as used by the dual-prime
// motion type, per section 4.6.4.
func decodeDMV(r *bits.Reader) (int, error) {
	return dmvectorTable.decode(r)
}

// applyMotionVector updates the predictor at index idx with delta and
// returns the resulting bounded component, corresponding to the
// motion_x = pmv + get_motion_delta(); motion_x = bound_motion_vector()
// pairing repeated throughout slice.c's motion_* functions.
func applyMotionVector(pred *predictor, idx, axis, delta, fCode int) int {
	v := pred[idx][axis] + delta
	v = boundMotionVector(v, fCode)
	pred[idx][axis] = v
	return v
}
