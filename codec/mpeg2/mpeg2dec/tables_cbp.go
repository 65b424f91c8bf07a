/*
DESCRIPTION
  tables_cbp.go provides the coded_block_pattern VLC table for 4:2:0
  chroma, mapping a codeword to the six-bit pattern selecting which of
  the 4 luma and 2 chroma blocks of a macroblock carry residual
  coefficients.

  KNOWN GAP: this is NOT the literal Table B-9 codeword assignment
  published in ISO/IEC 13818-2 Annex B. That table was not available in
  the retrieved reference material, and hand-transcribing all 63
  codewords from memory without a way to verify them against a
  conformance vector risks silent, undetectable bit errors — worse than
  disclosing the gap outright. buildCBPTable instead constructs a
  canonically valid, uniquely decodable table biased by popcount
  (patterns coding more blocks get shorter codewords, matching the
  standard's statistical design), but a macroblock_pattern bitstream
  produced by a real encoder will not decode correctly against it. See
  DESIGN.md for the full disclosure.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// codedBlockPatternTable is a structural stand-in for Table B-9: built
// canonically (see canonical.go) from a length assignment by the number
// of coded blocks, giving the pattern coding every block (63) the
// shortest codeword and tapering off towards the single-block patterns.
// NOT the
// standard's literal codewords; see the file-level KNOWN GAP note.
var codedBlockPatternTable = buildCBPTable()

func buildCBPTable() vlcTable {
	// length[p] is the bit length assigned to cbp pattern p (0..63).
	// Pattern 0 (no coded blocks) never reaches this table; the
	// macroblock_pattern flag of macroblock_type already distinguishes it.
	lengths := make([]int, 63)
	values := make([]int, 63)
	for p := 1; p <= 63; p++ {
		values[p-1] = p
	}

	// Bias: the all-six-blocks pattern is shortest, then patterns with
	// five of six blocks, and so on by descending popcount.
	for i, p := range values {
		n := popcount6(p)
		switch n {
		case 6:
			lengths[i] = 3
		case 5:
			lengths[i] = 5
		case 4:
			lengths[i] = 6
		case 3:
			lengths[i] = 7
		case 2:
			lengths[i] = 8
		default: // 1
			lengths[i] = 9
		}
	}
	return buildCanonicalVLC(lengths, values)
}

func popcount6(v int) int {
	n := 0
	for i := 0; i < 6; i++ {
		if v&(1<<uint(i)) != 0 {
			n++
		}
	}
	return n
}
