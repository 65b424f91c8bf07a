/*
DESCRIPTION
  picture.go provides parsing of the picture_header, picture_coding_
  extension and group_of_pictures_header syntax structures of ISO/IEC
  13818-2, which together establish the per-picture parameters described
  in section 3.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "github.com/ausocean/mpeg2/codec/mpeg2/mpeg2dec/bits"

// PictureCodingType enumerates the picture coding types of table 6-12.
type PictureCodingType int

// Picture coding types.
const (
	PictureI PictureCodingType = 1 + iota
	PictureP
	PictureB
	PictureD
)

// PictureStructure enumerates picture_structure, table 6-14.
type PictureStructure int

// Picture structures.
const (
	TopField PictureStructure = 1 + iota
	BottomField
	FramePicture
)

// Picture holds the per-picture parameters set by a picture header and
// picture coding extension, living until the next picture header.
type Picture struct {
	CodingType PictureCodingType
	Structure  PictureStructure

	FCode [2][2]int // [forward/backward][horizontal/vertical], pre-decremented by 1.

	IntraDCPrecision         int
	FramePredFrameDCT        bool
	ConcealmentMotionVectors bool
	QScaleType               bool
	IntraVLCFormat           bool
	AlternateScan            bool
	TopFieldFirst            bool
	RepeatFirstField         bool
	ProgressiveFrame         bool
	SecondField              bool
	CurrentField             int

	Scan *[64]uint8

	QuantizerScale int
	PTS            uint32
}

// parsePictureHeader parses a picture_header (section 6.2.3), which
// supplies the coding type and, for MPEG-1 streams, the only f_code
// values the sequence will ever see.
func parsePictureHeader(buf []byte) *Picture {
	r := bits.NewReader(buf)
	r.Get(10) // temporal_reference
	p := &Picture{Structure: FramePicture}
	p.CodingType = PictureCodingType(r.Get(3))
	r.Get(16) // vbv_delay

	if p.CodingType == PictureP || p.CodingType == PictureB {
		fullPel := r.Flag()
		fCode := int(r.Get(3)) - 1
		_ = fullPel
		p.FCode[0][0], p.FCode[0][1] = fCode, fCode
	}
	if p.CodingType == PictureB {
		fullPel := r.Flag()
		fCode := int(r.Get(3)) - 1
		_ = fullPel
		p.FCode[1][0], p.FCode[1][1] = fCode, fCode
	}

	p.Scan = scanTable(false)
	return p
}

// applyPictureCodingExtension parses a picture_coding_extension (section
// 6.2.3.1), refining p with the MPEG-2-only fields: f_code per
// direction/axis, intra DC precision, the interlace flags and the scan
// table selection.
func applyPictureCodingExtension(p *Picture, buf []byte) {
	r := bits.NewReader(buf)
	r.Get(4) // extension_start_code_identifier

	p.FCode[0][0] = int(r.Get(4)) - 1
	p.FCode[0][1] = int(r.Get(4)) - 1
	p.FCode[1][0] = int(r.Get(4)) - 1
	p.FCode[1][1] = int(r.Get(4)) - 1

	p.IntraDCPrecision = int(r.Get(2))
	p.Structure = PictureStructure(r.Get(2))
	p.TopFieldFirst = r.Flag()
	frm := r.Flag() // frame_pred_frame_dct
	p.FramePredFrameDCT = frm
	p.ConcealmentMotionVectors = r.Flag()
	p.QScaleType = r.Flag()
	p.IntraVLCFormat = r.Flag()
	p.AlternateScan = r.Flag()
	p.RepeatFirstField = r.Flag()
	_ = r.Flag() // chroma_420_type
	p.ProgressiveFrame = r.Flag()

	p.Scan = scanTable(p.AlternateScan)
}

// gopHeader holds the time_code and flags of a group_of_pictures_header
// (section 6.2.2.6). The decoder does not interpret time_code beyond
// parsing it; closed_gop and broken_link inform reference management
// that is outside the scope of this core.
type gopHeader struct {
	TimeCode   uint32
	ClosedGOP  bool
	BrokenLink bool
}

func parseGOPHeader(buf []byte) *gopHeader {
	r := bits.NewReader(buf)
	g := &gopHeader{}
	g.TimeCode = r.Get(25)
	g.ClosedGOP = r.Flag()
	g.BrokenLink = r.Flag()
	return g
}
