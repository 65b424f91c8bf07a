/*
DESCRIPTION
  picture_test.go provides testing for functionality found in
  picture.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "testing"

func TestParsePictureHeaderIntra(t *testing.T) {
	buf := packBits(
		field{10, 0}, // temporal_reference
		field{3, uint32(PictureI)},
		field{16, 0}, // vbv_delay
	)
	p := parsePictureHeader(buf)
	if p.CodingType != PictureI {
		t.Fatalf("CodingType = %v, want PictureI", p.CodingType)
	}
	if p.FCode != ([2][2]int{}) {
		t.Errorf("FCode = %v, want zero value for an intra picture", p.FCode)
	}
}

func TestParsePictureHeaderPredictive(t *testing.T) {
	buf := packBits(
		field{10, 0},
		field{3, uint32(PictureP)},
		field{16, 0},
		field{1, 0}, // full_pel_forward_vector
		field{3, 3}, // forward_f_code
	)
	p := parsePictureHeader(buf)
	if p.CodingType != PictureP {
		t.Fatalf("CodingType = %v, want PictureP", p.CodingType)
	}
	want := 3 - 1
	if p.FCode[0][0] != want || p.FCode[0][1] != want {
		t.Errorf("FCode[0] = %v, want [%d %d]", p.FCode[0], want, want)
	}
}

func TestApplyPictureCodingExtension(t *testing.T) {
	p := &Picture{}
	buf := packBits(
		field{4, 0},                     // extension_start_code_identifier
		field{4, 2}, field{4, 2}, field{4, 5}, field{4, 5}, // f_codes
		field{2, 1},                     // intra_dc_precision
		field{2, uint32(FramePicture)},  // picture_structure
		field{1, 1},                     // top_field_first
		field{1, 1},                     // frame_pred_frame_dct
		field{1, 0},                     // concealment_motion_vectors
		field{1, 1},                     // q_scale_type
		field{1, 0},                     // intra_vlc_format
		field{1, 1},                     // alternate_scan
		field{1, 0},                     // repeat_first_field
		field{1, 0},                     // chroma_420_type
		field{1, 1},                     // progressive_frame
	)
	applyPictureCodingExtension(p, buf)

	if p.FCode[0][0] != 1 || p.FCode[0][1] != 1 || p.FCode[1][0] != 4 || p.FCode[1][1] != 4 {
		t.Errorf("FCode = %v, want [[1 1] [4 4]]", p.FCode)
	}
	if p.IntraDCPrecision != 1 {
		t.Errorf("IntraDCPrecision = %d, want 1", p.IntraDCPrecision)
	}
	if !p.TopFieldFirst || !p.FramePredFrameDCT || !p.QScaleType || !p.AlternateScan || !p.ProgressiveFrame {
		t.Errorf("flags not parsed as expected: %+v", p)
	}
	if p.ConcealmentMotionVectors || p.IntraVLCFormat || p.RepeatFirstField {
		t.Errorf("flags expected false were set: %+v", p)
	}
	if p.Scan != scanTable(true) {
		t.Errorf("Scan not set to the alternate table")
	}
}

func TestParseGOPHeader(t *testing.T) {
	buf := packBits(
		field{25, 0x1ABCDEF & ((1 << 25) - 1)},
		field{1, 1}, // closed_gop
		field{1, 0}, // broken_link
	)
	g := parseGOPHeader(buf)
	if !g.ClosedGOP || g.BrokenLink {
		t.Errorf("ClosedGOP/BrokenLink = %v/%v, want true/false", g.ClosedGOP, g.BrokenLink)
	}
}
