/*
DESCRIPTION
  slice.go implements the slice VLC decoder of section 4.4: it walks the
  macroblocks of one slice, decoding macroblock_type, the optional
  motion-type/dct-type bits, quantizer_scale_code, motion vectors,
  coded_block_pattern and up to six 8x8 DCT coefficient blocks per
  macroblock, dispatching each decoded block to the inverse DCT and then
  to either the intra store path or the inter (motion compensation +
  residual add) path. Skipped macroblocks between two coded ones are
  filled per the zero-motion (P) or previous-motion (B) rule.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import (
	"github.com/pkg/errors"

	"github.com/ausocean/mpeg2/codec/mpeg2/mpeg2dec/bits"
)

// motionType enumerates the decoded motion_type field, section 4.6.
type motionType int

const (
	motionFieldMode motionType = iota + 1
	motionFrameMode
	motion16x8
	motionDualPrime
)

// mbState carries the per-slice state threaded through the macroblock
// loop: the motion vector predictors, the running intra DC predictors,
// and the block position.
type mbState struct {
	fwd, bwd predictor
	dcPred   [3]int
	mbWidth  int
}

// decodeSlice decodes one start-code-delimited slice chunk and reports
// whether it was the picture's last slice (its macroblocks reached the
// bottom-right corner of the coded picture on the bottommost slice
// row), in which case the frame store has already been rotated.
func (d *Decoder) decodeSlice(c chunk) (bool, error) {
	mbWidth := d.seq.CodedWidth / 16
	mbHeight := d.seq.CodedHeight / 16

	if d.store.current == nil {
		if _, err := d.store.allocate(d.sink, d.pic.Structure, d.pic.SecondField); err != nil {
			return false, err
		}
	}

	r := bits.NewReader(c.payload)
	qScaleCode := int(r.Get(5))
	d.pic.QuantizerScale = quantizerScale(qScaleCode, d.pic.QScaleType)
	for r.Flag() { // extra_bit_slice
		r.Get(8)
	}

	st := &mbState{mbWidth: mbWidth}
	st.dcPred[0] = initialDCPred(d.pic)
	st.dcPred[1] = initialDCPred(d.pic)
	st.dcPred[2] = initialDCPred(d.pic)

	row := int(c.code)
	inc, err := decodeMBAddressIncrement(r)
	if err != nil {
		return false, errSliceTruncated
	}
	mbAddress := (row-1)*mbWidth + inc - 1

	for {
		mbX, mbY := mbAddress%mbWidth, mbAddress/mbWidth
		if err := d.decodeMacroblock(r, st, mbX, mbY); err != nil {
			if errors.Cause(err) == errVLCNotFound || r.Overrun() {
				return false, errSliceTruncated
			}
			return false, err
		}
		mbAddress++

		if r.Overrun() || mbAddress >= mbWidth*mbHeight {
			break
		}

		next, err := decodeMBAddressIncrement(r)
		if err != nil {
			break // End of slice: no further macroblock_address_increment found.
		}
		for i := 1; i < next && mbAddress < mbWidth*mbHeight; i++ {
			mbX, mbY := mbAddress%mbWidth, mbAddress/mbWidth
			d.decodeSkippedMacroblock(st, mbX, mbY)
			mbAddress++
		}
	}

	last := row == mbHeight && mbAddress >= mbWidth*mbHeight
	if last {
		d.store.complete(d.sink, d.pic.CodingType)
	}
	return last, nil
}

// initialDCPred returns the intra DC predictor reset value of section
// 4.4: 1 << (intra_dc_precision + 7).
func initialDCPred(p *Picture) int {
	return 1 << uint(p.IntraDCPrecision+7)
}

// decodeMBAddressIncrement reads one or more macroblock_address_increment
// codewords, folding in the 0x08 escape (adds 33) and skipping 0x0F
// MPEG-1 stuffing codes, per section 4.4. A run of more than
// maxMBAStuffingRun stuffing codes is reported as errVLCNotFound.
func decodeMBAddressIncrement(r *bits.Reader) (int, error) {
	total := 0
	stuffing := 0
	for {
		v, err := mbAddrIncTable.decode(r)
		if err != nil {
			return 0, err
		}
		switch v {
		case mbaEscape:
			total += 33
		case mbaStuffing:
			stuffing++
			if stuffing > maxMBAStuffingRun {
				return 0, errVLCNotFound
			}
			continue
		default:
			return total + v, nil
		}
	}
}

// decodeMacroblock decodes one coded macroblock at macroblock position
// (mbX, mbY), updating st's predictors and writing its reconstruction
// into the current frame.
func (d *Decoder) decodeMacroblock(r *bits.Reader, st *mbState, mbX, mbY int) error {
	mb, err := mbTypeTable(d.pic.CodingType).decode(r)
	if err != nil {
		return err
	}
	t := decodeMBFlags(mb)

	mt := motionFrameMode
	if (d.pic.Structure != FramePicture || !d.pic.FramePredFrameDCT) && (t.motionForward || t.motionBackward) {
		// The 2-bit code selects field/frame/dual-prime in a frame
		// picture and field/16x8/dual-prime in a field picture.
		switch code := r.Get(2); {
		case code == 3:
			mt = motionDualPrime
		case code == 2 && d.pic.Structure != FramePicture:
			mt = motion16x8
		default:
			mt = motionType(code)
		}
	}

	fieldDCT := false
	if !d.pic.FramePredFrameDCT && (t.pattern || t.intra) && d.pic.Structure == FramePicture {
		fieldDCT = r.Flag()
	}

	if t.quant {
		d.pic.QuantizerScale = quantizerScale(int(r.Get(5)), d.pic.QScaleType)
	}

	var mvFwd, mvBwd motionResult
	if t.motionForward {
		mvFwd = d.decodeMV(r, &st.fwd, 0, mt)
	}
	if t.motionBackward {
		mvBwd = d.decodeMV(r, &st.bwd, 1, mt)
	}

	cbp := 0x3f
	if t.pattern {
		v, err := codedBlockPatternTable.decode(r)
		if err != nil {
			return err
		}
		cbp = v
	}

	if !t.intra {
		d.compensate(mbX, mbY, t, mt, mvFwd, mvBwd)
		st.dcPred[0], st.dcPred[1], st.dcPred[2] = nonIntraDCReset(d.pic), nonIntraDCReset(d.pic), nonIntraDCReset(d.pic)
	}

	for b := 0; b < 6; b++ {
		coded := t.intra || cbp&(1<<uint(5-b)) != 0
		if !coded {
			continue
		}
		cc := 0
		if b == 4 {
			cc = 1
		} else if b == 5 {
			cc = 2
		}
		block, err := d.decodeBlock(r, t.intra, cc, st)
		if err != nil {
			return err
		}
		d.storeBlock(mbX, mbY, b, block, t.intra, fieldDCT)
	}
	return nil
}

// nonIntraDCReset implements the "128 << intra_dc_precision" reset
// applied before every non-intra macroblock, per section 4.4.
func nonIntraDCReset(p *Picture) int {
	return 128 << uint(p.IntraDCPrecision)
}

// motionResult holds the motion vector(s) decodeMV produced for one
// direction of one macroblock: v0 always, v1 the second 16x8 half's
// independent vector when mt is motion16x8, and dmv the differential
// motion vector read for dual-prime's second, opposite-parity prediction.
type motionResult struct {
	v0, v1 [2]int
	dmv    [2]int
}

// decodeMV decodes one direction's motion vector(s): a single pair for
// frame/field prediction, two independent pairs for motion16x8 (one per
// 16x8 half), or one pair plus a differential motion vector for
// motionDualPrime, per section 4.6.
func (d *Decoder) decodeMV(r *bits.Reader, pred *predictor, dir int, mt motionType) motionResult {
	fCodeX := d.pic.FCode[dir][0]
	fCodeY := d.pic.FCode[dir][1]

	dx, _ := decodeMotionDelta(r, fCodeX)
	x := applyMotionVector(pred, 0, 0, dx, fCodeX)
	dy, _ := decodeMotionDelta(r, fCodeY)
	y := applyMotionVector(pred, 0, 1, dy, fCodeY)

	res := motionResult{v0: [2]int{x, y}, v1: [2]int{x, y}}

	if mt == motion16x8 {
		dx2, _ := decodeMotionDelta(r, fCodeX)
		x2 := applyMotionVector(pred, 1, 0, dx2, fCodeX)
		dy2, _ := decodeMotionDelta(r, fCodeY)
		y2 := applyMotionVector(pred, 1, 1, dy2, fCodeY)
		res.v1 = [2]int{x2, y2}
	}
	if mt == motionDualPrime {
		dmvX, _ := decodeDMV(r)
		dmvY, _ := decodeDMV(r)
		res.dmv = [2]int{dmvX, dmvY}
	}
	return res
}

// decodeSkippedMacroblock fills one skipped macroblock per section 4.4:
// zero motion for P pictures, the carried-over motion vectors for B
// pictures, and no residual in either case. Intra DC predictors reset
// as they would for any non-intra macroblock.
func (d *Decoder) decodeSkippedMacroblock(st *mbState, mbX, mbY int) {
	st.dcPred[0], st.dcPred[1], st.dcPred[2] = nonIntraDCReset(d.pic), nonIntraDCReset(d.pic), nonIntraDCReset(d.pic)

	t := mbType{motionForward: true}
	var mvFwd, mvBwd motionResult
	switch d.pic.CodingType {
	case PictureB:
		t.motionForward, t.motionBackward = true, true
		mvFwd.v0 = [2]int{st.fwd[0][0], st.fwd[0][1]}
		mvBwd.v0 = [2]int{st.bwd[0][0], st.bwd[0][1]}
	default:
		st.fwd.reset()
		mvFwd.v0 = [2]int{0, 0}
	}
	d.compensate(mbX, mbY, t, motionFrameMode, mvFwd, mvBwd)
}

// compensate performs motion compensation for one macroblock's luma and
// chroma blocks, writing the result (or the blended forward/backward
// average) directly into the current frame. motion16x8 predicts each
// 16x8 half independently with its own vector; motionDualPrime blends a
// second, dmv-offset prediction from the same (forward) reference on top
// of the first, per section 4.6.
func (d *Decoder) compensate(mbX, mbY int, t mbType, mt motionType, mvFwd, mvBwd motionResult) {
	cur := d.store.current
	if cur == nil {
		return
	}
	lx, ly := mbX*16, mbY*16
	cx, cy := mbX*8, mbY*8

	if mt == motion16x8 {
		halves := [2]struct {
			fwd, bwd [2]int
			ly, cy   int
		}{
			{mvFwd.v0, mvBwd.v0, ly, cy},
			{mvFwd.v1, mvBwd.v1, ly + 8, cy + 4},
		}
		for _, h := range halves {
			if t.motionForward && d.store.forward != nil {
				ref := d.store.forward
				predictMB(cur.Y, ref.Y, cur.YStride, ref.YStride, lx, h.ly, h.fwd[0], h.fwd[1], 16, 8, false)
				predictMB(cur.Cb, ref.Cb, cur.CStride, ref.CStride, cx, h.cy, h.fwd[0]/2, h.fwd[1]/2, 8, 4, false)
				predictMB(cur.Cr, ref.Cr, cur.CStride, ref.CStride, cx, h.cy, h.fwd[0]/2, h.fwd[1]/2, 8, 4, false)
			}
			if t.motionBackward && d.store.backward != nil {
				ref := d.store.backward
				blend := t.motionForward
				predictMB(cur.Y, ref.Y, cur.YStride, ref.YStride, lx, h.ly, h.bwd[0], h.bwd[1], 16, 8, blend)
				predictMB(cur.Cb, ref.Cb, cur.CStride, ref.CStride, cx, h.cy, h.bwd[0]/2, h.bwd[1]/2, 8, 4, blend)
				predictMB(cur.Cr, ref.Cr, cur.CStride, ref.CStride, cx, h.cy, h.bwd[0]/2, h.bwd[1]/2, 8, 4, blend)
			}
		}
		return
	}

	if mt == motionDualPrime {
		if d.store.forward != nil {
			ref := d.store.forward
			v, dmv := mvFwd.v0, mvFwd.dmv
			predictMB(cur.Y, ref.Y, cur.YStride, ref.YStride, lx, ly, v[0], v[1], 16, 16, false)
			predictMB(cur.Y, ref.Y, cur.YStride, ref.YStride, lx, ly, v[0]+dmv[0], v[1]+dmv[1], 16, 16, true)
			predictMB(cur.Cb, ref.Cb, cur.CStride, ref.CStride, cx, cy, v[0]/2, v[1]/2, 8, 8, false)
			predictMB(cur.Cb, ref.Cb, cur.CStride, ref.CStride, cx, cy, (v[0]+dmv[0])/2, (v[1]+dmv[1])/2, 8, 8, true)
			predictMB(cur.Cr, ref.Cr, cur.CStride, ref.CStride, cx, cy, v[0]/2, v[1]/2, 8, 8, false)
			predictMB(cur.Cr, ref.Cr, cur.CStride, ref.CStride, cx, cy, (v[0]+dmv[0])/2, (v[1]+dmv[1])/2, 8, 8, true)
		}
		return
	}

	if t.motionForward && d.store.forward != nil {
		ref := d.store.forward
		predictMB(cur.Y, ref.Y, cur.YStride, ref.YStride, lx, ly, mvFwd.v0[0], mvFwd.v0[1], 16, 16, false)
		predictMB(cur.Cb, ref.Cb, cur.CStride, ref.CStride, cx, cy, mvFwd.v0[0]/2, mvFwd.v0[1]/2, 8, 8, false)
		predictMB(cur.Cr, ref.Cr, cur.CStride, ref.CStride, cx, cy, mvFwd.v0[0]/2, mvFwd.v0[1]/2, 8, 8, false)
	}
	if t.motionBackward && d.store.backward != nil {
		ref := d.store.backward
		blend := t.motionForward
		predictMB(cur.Y, ref.Y, cur.YStride, ref.YStride, lx, ly, mvBwd.v0[0], mvBwd.v0[1], 16, 16, blend)
		predictMB(cur.Cb, ref.Cb, cur.CStride, ref.CStride, cx, cy, mvBwd.v0[0]/2, mvBwd.v0[1]/2, 8, 8, blend)
		predictMB(cur.Cr, ref.Cr, cur.CStride, ref.CStride, cx, cy, mvBwd.v0[0]/2, mvBwd.v0[1]/2, 8, 8, blend)
	}
}

// predictMB performs one direction's half-pel motion compensated
// prediction of one plane's w x h block at (dstX, dstY), either writing
// it (blend = false) or averaging it into the existing prediction
// (blend = true, used to combine forward and backward predictions).
func predictMB(dstPlane, refPlane []byte, dstStride, refStride, dstX, dstY, mvX, mvY, w, h int, blend bool) {
	ix, hx := mvX>>1, mvX&1 != 0
	iy, hy := mvY>>1, mvY&1 != 0
	dst := dstPlane[dstY*dstStride+dstX:]
	if blend {
		blendBlock(dst, dstStride, refPlane, refStride, dstX+ix, dstY+iy, w, h, hx, hy)
	} else {
		predictBlock(dst, dstStride, refPlane, refStride, dstX+ix, dstY+iy, w, h, hx, hy)
	}
}

// decodeBlock decodes one 8x8 block's coefficients (DC differential for
// intra blocks, run-level coded coefficients thereafter), dequantizes
// and saturates them, applies mismatch control, and runs the inverse
// DCT, returning the spatial-domain residual.
func (d *Decoder) decodeBlock(r *bits.Reader, intra bool, cc int, st *mbState) (*[64]int, error) {
	var block [64]int
	start := 0

	matrix := &d.seq.NonIntraQuantizerMatrix
	if intra {
		matrix = &d.seq.IntraQuantizerMatrix
		size, err := dcSizeTable(cc).decode(r)
		if err != nil {
			return nil, err
		}
		diff := 0
		if size > 0 {
			diff = decodeDCDiff(r, size)
		}
		st.dcPred[cc] += diff
		block[0] = saturate(st.dcPred[cc])
		start = 1
	}

	table := dctTableForBlock(intra, d.pic.IntraVLCFormat)
	i := start
	for i < 64 {
		rl, err := table.decode(r)
		if err != nil {
			return nil, err
		}
		if rl.run == dctEndOfBlock {
			break
		}

		var run, level int
		if rl.run == dctEscape {
			run = int(r.Get(6))
			level = int(r.GetSigned(12))
		} else {
			run = rl.run
			level = rl.level
			if r.Flag() {
				level = -level
			}
		}

		i += run
		if i >= 64 {
			break
		}
		pos := d.pic.Scan[i]
		block[pos] = dequantCoef(level, d.pic, d.seq, intra, matrix[pos])
		i++
	}

	if !d.seq.MPEG1 {
		mismatchControl(&block)
	}
	if block[0] != 0 && onlyDCNonZero(&block) {
		idctDCOnly(&block)
	} else {
		idctBlock(&block)
	}
	return &block, nil
}

// decodeDCDiff decodes the signed DC differential of a given size,
// following the size/value encoding common to every DC table in the
// standard: the high half of the size-bit range encodes non-negative
// values, the low half negative ones.
func decodeDCDiff(r *bits.Reader, size int) int {
	raw := int(r.Get(size))
	half := 1 << uint(size-1)
	if raw < half {
		return raw - (1 << uint(size)) + 1
	}
	return raw
}

// dequantCoef dequantizes one non-DC coefficient per section 7.4.4,
// applying MPEG-1 oddification in place of mismatch control where
// relevant, and the universal saturation invariant.
func dequantCoef(level int, pic *Picture, seq *Sequence, intra bool, matrixVal uint8) int {
	var v int
	if intra {
		v = dequantizeIntra(level, matrixVal, pic.QuantizerScale)
	} else {
		v = dequantizeNonIntra(level, matrixVal, pic.QuantizerScale)
	}
	if seq.MPEG1 {
		v = oddify(v)
	}
	return saturate(v)
}

// onlyDCNonZero reports whether block has no nonzero coefficient beyond
// position 0, the condition for the IDCT's DC-only fast path.
func onlyDCNonZero(block *[64]int) bool {
	for i := 1; i < 64; i++ {
		if block[i] != 0 {
			return false
		}
	}
	return true
}

// storeBlock writes a decoded and inverse-transformed block into the
// current frame at the macroblock/sub-block position it belongs to. When
// fieldDCT is set (only possible for the four luma blocks of a frame
// picture's macroblock, section 4.4), blocks 0 and 1 hold the top field's
// rows and blocks 2 and 3 the bottom field's: each occupies every other
// row of the macroblock, so the row stride used to walk the block is
// doubled and the bottom-field pair starts one row lower, rather than the
// four blocks simply tiling the 16x16 area top-to-bottom.
func (d *Decoder) storeBlock(mbX, mbY, b int, block *[64]int, intra, fieldDCT bool) {
	cur := d.store.current
	if cur == nil {
		return
	}

	var plane []byte
	var stride, offset int
	switch {
	case b < 4:
		plane = cur.Y
		x := mbX*16 + (b%2)*8
		if fieldDCT {
			row := mbY*16 + b/2 // Top field (blocks 0,1) at row mbY*16, bottom field (2,3) one row down.
			stride = cur.YStride * 2
			offset = row*cur.YStride + x
		} else {
			stride = cur.YStride
			offset = (mbY*16+(b/2)*8)*cur.YStride + x
		}
	case b == 4:
		plane, stride = cur.Cb, cur.CStride
		offset = mbY*8*cur.CStride + mbX*8
	default:
		plane, stride = cur.Cr, cur.CStride
		offset = mbY*8*cur.CStride + mbX*8
	}

	dst := plane[offset:]
	if intra {
		storeIntra(dst, stride, block)
	} else {
		addResidual(dst, stride, block)
	}
}
