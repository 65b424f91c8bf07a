/*
DESCRIPTION
  sequence_test.go provides testing for functionality found in
  sequence.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSequenceHeaderDefaults(t *testing.T) {
	buf := packBits(
		field{12, 704},  // horizontal_size_value
		field{12, 576},  // vertical_size_value
		field{4, 8},     // aspect_ratio_information
		field{4, 3},     // frame_rate_code
		field{18, 12345}, // bit_rate_value
		field{1, 1},     // marker_bit
		field{10, 100},  // vbv_buffer_size_value
		field{1, 0},     // constrained_parameters_flag
		field{1, 0},     // load_intra_quantizer_matrix
		field{1, 0},     // load_non_intra_quantizer_matrix
	)

	seq, err := parseSequenceHeader(buf)
	if err != nil {
		t.Fatalf("parseSequenceHeader() error = %v", err)
	}

	if seq.Width != 704 || seq.Height != 576 {
		t.Errorf("Width/Height = %d/%d, want 704/576", seq.Width, seq.Height)
	}
	if seq.CodedWidth != 704 || seq.CodedHeight != 576 {
		t.Errorf("CodedWidth/CodedHeight = %d/%d, want 704/576", seq.CodedWidth, seq.CodedHeight)
	}
	if seq.BitRate != 12345 {
		t.Errorf("BitRate = %d, want 12345", seq.BitRate)
	}
	if seq.ByteRate != 12345*400/8 {
		t.Errorf("ByteRate = %d, want %d", seq.ByteRate, 12345*400/8)
	}
	if !seq.MPEG1 {
		t.Errorf("MPEG1 = false before any sequence_extension, want true")
	}
	if seq.IntraQuantizerMatrix != defaultIntraQuantizerMatrix {
		t.Errorf("IntraQuantizerMatrix not defaulted")
	}
	if seq.NonIntraQuantizerMatrix != defaultNonIntraQuantizerMatrix {
		t.Errorf("NonIntraQuantizerMatrix not defaulted")
	}
}

func TestParseSequenceHeaderRoundsCodedSize(t *testing.T) {
	buf := packBits(
		field{12, 701}, // not a multiple of 16
		field{12, 577},
		field{4, 0},
		field{4, 0},
		field{18, 0},
		field{1, 1},
		field{10, 0},
		field{1, 0},
		field{1, 0},
		field{1, 0},
	)
	seq, err := parseSequenceHeader(buf)
	if err != nil {
		t.Fatalf("parseSequenceHeader() error = %v", err)
	}
	if seq.CodedWidth != 704 || seq.CodedHeight != 592 {
		t.Errorf("CodedWidth/CodedHeight = %d/%d, want 704/592", seq.CodedWidth, seq.CodedHeight)
	}
}

// TestApplySequenceExtensionFields checks every field touched by a
// sequence_extension at once; cmp.Diff makes the mismatch readable when
// any single one of the several bit-packed fields is wrong, which a
// field-by-field comparison would otherwise take many assertions to
// pinpoint.
func TestApplySequenceExtensionFields(t *testing.T) {
	seq := &Sequence{
		MPEG1:         true,
		Width:         352,
		Height:        288,
		BitRate:       100,
		VBVBufferSize: 5,
	}
	buf := packBits(
		field{4, 1}, // extension_start_code_identifier
		field{8, 0}, // profile_and_level_indication
		field{1, 1}, // progressive_sequence
		field{2, 1}, // chroma_format
		field{2, 0}, // horizontal_size_extension
		field{2, 0}, // vertical_size_extension
		field{12, 0},
		field{1, 1}, // marker_bit
		field{8, 0},
	)
	applySequenceExtension(seq, buf)

	want := &Sequence{
		MPEG1:               false,
		ProgressiveSequence: true,
		Width:               352,
		Height:              288,
		CodedWidth:          352,
		CodedHeight:         288,
		BitRate:             100,
		ByteRate:            100 * 400 / 8,
		VBVBufferSize:       5,
	}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Errorf("applySequenceExtension() mismatch (-want +got):\n%s", diff)
	}
}

func TestEqualIgnoringByteRate(t *testing.T) {
	a := &Sequence{Width: 704, Height: 576, ByteRate: 1000}
	b := &Sequence{Width: 704, Height: 576, ByteRate: 2000}
	if !a.equalIgnoringByteRate(b) {
		t.Errorf("equalIgnoringByteRate() = false, want true (only ByteRate differs)")
	}

	c := &Sequence{Width: 352, Height: 288, ByteRate: 1000}
	if a.equalIgnoringByteRate(c) {
		t.Errorf("equalIgnoringByteRate() = true, want false (Width/Height differ)")
	}
}
