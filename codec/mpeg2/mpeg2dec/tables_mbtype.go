/*
DESCRIPTION
  tables_mbtype.go provides the macroblock_type VLC tables of tables B-2
  (I pictures), B-3 (P pictures) and B-4 (B pictures) in ISO/IEC 13818-2,
  decoded into a set of per-macroblock mode flags.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// mbType carries the decoded flags of a macroblock_type codeword, as
// defined by tables B-2 through B-4. Exactly which fields are meaningful
// depends on the picture coding type.
type mbType struct {
	quant          bool // macroblock_quant: quantizer_scale_code follows.
	motionForward  bool // macroblock_motion_forward.
	motionBackward bool // macroblock_motion_backward.
	pattern        bool // macroblock_pattern: coded_block_pattern follows.
	intra          bool // macroblock_intra.
}

// Macroblock type tables are encoded as (flags value, codeword) pairs
// packed into the vlcTable value field using the bit layout below, since
// mbType itself cannot be stored in a vlcEntry.
const (
	mbQuant = 1 << iota
	mbMotionFwd
	mbMotionBwd
	mbPattern
	mbIntra
)

func decodeMBFlags(v int) mbType {
	return mbType{
		quant:          v&mbQuant != 0,
		motionForward:  v&mbMotionFwd != 0,
		motionBackward: v&mbMotionBwd != 0,
		pattern:        v&mbPattern != 0,
		intra:          v&mbIntra != 0,
	}
}

// mbTypeITable implements table B-2 (I pictures).
var mbTypeITable = vlcTable{
	{1, 0b1, mbIntra},
	{2, 0b01, mbIntra | mbQuant},
}

// mbTypePTable implements table B-3 (P pictures).
var mbTypePTable = vlcTable{
	{1, 0b1, mbMotionFwd | mbPattern},
	{2, 0b01, mbPattern},
	{3, 0b001, mbMotionFwd},
	{5, 0b00011, mbIntra},
	{5, 0b00010, mbMotionFwd | mbPattern | mbQuant},
	{6, 0b000011, mbPattern | mbQuant},
	{6, 0b000010, mbIntra | mbQuant},
}

// mbTypeBTable implements table B-4 (B pictures).
var mbTypeBTable = vlcTable{
	{2, 0b10, mbMotionFwd | mbMotionBwd},
	{2, 0b11, mbMotionFwd | mbMotionBwd | mbPattern},
	{3, 0b010, mbMotionBwd},
	{3, 0b011, mbMotionBwd | mbPattern},
	{4, 0b0010, mbMotionFwd},
	{4, 0b0011, mbMotionFwd | mbPattern},
	{5, 0b00011, mbIntra},
	{6, 0b000010, mbMotionFwd | mbMotionBwd | mbQuant},
	{6, 0b000011, mbMotionFwd | mbMotionBwd | mbPattern | mbQuant},
	{6, 0b000001, mbMotionBwd | mbPattern | mbQuant},
	{6, 0b000000, mbMotionFwd | mbPattern | mbQuant},
	{6, 0b000100, mbIntra | mbQuant},
}

// mbTypeTable selects the macroblock_type table for a picture coding type.
func mbTypeTable(codingType PictureCodingType) vlcTable {
	switch codingType {
	case PictureI:
		return mbTypeITable
	case PictureP:
		return mbTypePTable
	case PictureB:
		return mbTypeBTable
	default:
		// D pictures carry no macroblock_type; I is a safe, unused default.
		return mbTypeITable
	}
}
