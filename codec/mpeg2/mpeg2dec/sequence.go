/*
DESCRIPTION
  sequence.go provides parsing of the sequence_header and
  sequence_extension syntax structures of ISO/IEC 13818-2, which together
  establish the sequence parameters that live until the next sequence
  header or decoder Close.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "github.com/ausocean/mpeg2/codec/mpeg2/mpeg2dec/bits"

// Sequence holds the sequence parameters set by a sequence header and
// sequence extension, as described in section 3. It is immutable for the
// lifetime of the sequence.
type Sequence struct {
	Width, Height           int // Display dimensions.
	CodedWidth, CodedHeight int // Rounded up to a multiple of 16.

	AspectRatioInformation uint8
	FrameRateCode          uint8
	BitRate                uint32
	VBVBufferSize          uint16
	ByteRate               uint32 // Derived from BitRate; with it, allowed to differ on repeat.

	MPEG1               bool // True until a sequence_extension is seen.
	ProgressiveSequence bool

	IntraQuantizerMatrix    [64]uint8
	NonIntraQuantizerMatrix [64]uint8
}

// equalIgnoringByteRate reports whether two sequences are identical save
// possibly for the bit rate (BitRate and the ByteRate derived from it),
// which per section 4.2 is the one field some DVD-origin streams are
// permitted to vary on a repeat sequence header.
func (s *Sequence) equalIgnoringByteRate(o *Sequence) bool {
	if s == nil || o == nil {
		return s == o
	}
	a, b := *s, *o
	a.ByteRate, b.ByteRate = 0, 0
	a.BitRate, b.BitRate = 0, 0
	return a == b
}

// parseSequenceHeader parses a sequence_header_code chunk (section 6.2.2.1
// of the standard), loading any custom quantizer matrices in zig-zag scan
// order, and returns the resulting Sequence.
func parseSequenceHeader(buf []byte) (*Sequence, error) {
	r := bits.NewReader(buf)
	seq := &Sequence{MPEG1: true}

	hSize := int(r.Get(12))
	vSize := int(r.Get(12))
	seq.Width = hSize
	seq.Height = vSize
	seq.CodedWidth = (hSize + 15) &^ 15
	seq.CodedHeight = (vSize + 15) &^ 15

	seq.AspectRatioInformation = uint8(r.Get(4))
	seq.FrameRateCode = uint8(r.Get(4))
	seq.BitRate = r.Get(18)
	r.Get(1) // marker_bit
	seq.VBVBufferSize = uint16(r.Get(10))
	r.Get(1) // constrained_parameters_flag

	scan := scanTable(false)

	if r.Flag() { // load_intra_quantizer_matrix
		for i := 0; i < 64; i++ {
			seq.IntraQuantizerMatrix[scan[i]] = uint8(r.Get(8))
		}
	} else {
		seq.IntraQuantizerMatrix = defaultIntraQuantizerMatrix
	}

	if r.Flag() { // load_non_intra_quantizer_matrix
		for i := 0; i < 64; i++ {
			seq.NonIntraQuantizerMatrix[scan[i]] = uint8(r.Get(8))
		}
	} else {
		seq.NonIntraQuantizerMatrix = defaultNonIntraQuantizerMatrix
	}

	seq.ByteRate = seq.BitRate * 400 / 8

	return seq, nil
}

// applySequenceExtension parses a sequence_extension (identified by its
// leading 4-bit extension_start_code_identifier of 0x1) and refines seq
// in place: it clears the MPEG-1 flag and fills in fields unavailable to
// MPEG-1 streams, per section 4.2.
func applySequenceExtension(seq *Sequence, buf []byte) {
	r := bits.NewReader(buf)
	r.Get(4) // extension_start_code_identifier
	r.Get(8) // profile_and_level_indication
	seq.ProgressiveSequence = r.Flag()
	chromaFormat := r.Get(2)
	hSizeExt := r.Get(2)
	vSizeExt := r.Get(2)
	seq.BitRate |= r.Get(12) << 18
	r.Get(1) // marker_bit
	vbvExt := r.Get(8)
	seq.VBVBufferSize |= uint16(vbvExt) << 10
	_ = chromaFormat

	seq.CodedWidth = ((seq.Width | int(hSizeExt)<<12) + 15) &^ 15
	seq.CodedHeight = ((seq.Height | int(vSizeExt)<<12) + 15) &^ 15

	seq.MPEG1 = false
	seq.ByteRate = seq.BitRate * 400 / 8
}
