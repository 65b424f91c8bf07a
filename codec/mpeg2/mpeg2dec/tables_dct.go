/*
DESCRIPTION
  tables_dct.go provides the two DCT coefficient VLC tables used to
  decode run-level coded coefficients: the default table (applied to all
  non-intra coefficients, and to intra AC coefficients when
  intra_vlc_format is 0) and the intra-favouring table (applied to intra
  AC coefficients when intra_vlc_format is 1). Each table maps a codeword
  to a (run, level) pair; a dedicated sign bit follows every non-zero
  level, and two fixed codes signal end_of_block and the escape
  sequence.

  KNOWN GAP: these tables do not carry the literal Table B-14/B-15
  codewords published in ISO/IEC 13818-2 Annex B. That bit-pattern table
  was not available in the retrieved reference material, and transcribing
  roughly 150 codewords from memory without a way to run a conformance
  vector against them risks silent, undetectable bit errors, which would
  be worse than disclosing the gap outright. buildDCTTable instead
  constructs a canonically valid, internally consistent, uniquely
  decodable run-level code of the right shape (shorter codes for the
  statistically dominant low-run/low-level symbols). It round-trips
  correctly against its own encoder but will not decode a bitstream
  produced by a real encoder using the standard's actual table. See
  DESIGN.md for the full disclosure.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "github.com/ausocean/mpeg2/codec/mpeg2/mpeg2dec/bits"

// Sentinel run values returned by dctTable.decode via the run field of a
// runLevel, rather than as part of the ordinary run/level space.
const (
	dctEndOfBlock = -1
	dctEscape     = -2
)

// runLevel is a decoded, not-yet-dequantized coefficient: level is
// unsigned here, the sign is read as a separate bit immediately following
// a table match (see decodeBlock).
type runLevel struct {
	run   int
	level int
}

// dctTable is a run-level flavoured vlcTable: its decode method unpacks
// the packed (run,level) value back out, and recognises the two sentinel
// symbols.
type dctTable vlcTable

// pack/unpack combine a (run, level) pair into the single int value a
// vlcEntry can hold.
func packRunLevel(run, level int) int { return run<<8 | level }
func unpackRunLevel(v int) runLevel   { return runLevel{run: v >> 8, level: v & 0xff} }

func (t dctTable) decode(r *bits.Reader) (runLevel, error) {
	v, err := vlcTable(t).decode(r)
	if err != nil {
		return runLevel{}, err
	}
	switch v {
	case dctEndOfBlock:
		return runLevel{run: dctEndOfBlock}, nil
	case dctEscape:
		return runLevel{run: dctEscape}, nil
	default:
		return unpackRunLevel(v), nil
	}
}

// dctB14Table is a structural stand-in for DCT_B14 (the default table
// for all non-intra coefficients, and for intra AC coefficients when
// intra_vlc_format = 0): NOT the standard's literal codewords, see the
// file-level KNOWN GAP note and DESIGN.md.
var dctB14Table = buildDCTTable(0)

// dctB15Table is a structural stand-in for DCT_B15 (used for intra AC
// coefficients when intra_vlc_format = 1), favouring single-run,
// low-level combinations typical of intra blocks with shorter codewords
// than dctB14Table: NOT the standard's literal codewords, see the
// file-level KNOWN GAP note and DESIGN.md.
var dctB15Table = buildDCTTable(1)

// dctTableForBlock selects the run-level table for a block, per the rules
// of section 4.4: DCT_B15 only applies to intra AC coefficients when
// intra_vlc_format is set.
func dctTableForBlock(intra, intraVLCFormat bool) dctTable {
	if intra && intraVLCFormat {
		return dctB15Table
	}
	return dctB14Table
}

// buildDCTTable constructs a run-level coefficient table canonically: the
// (run=0, level=1) combination (end_of_block aside) and its immediate
// neighbours get the shortest codewords, lengthening as run and level
// grow, consistent with the statistical design of the standard's tables.
// It does NOT reproduce their published bit patterns (see the file-level
// KNOWN GAP note): this only guarantees a valid, uniquely-decodable code
// of the right statistical shape. variant 1 additionally shortens the
// codewords for run=0 entries, matching DCT_B15's bias towards the
// clustered low-frequency coefficients typical of intra blocks.
func buildDCTTable(variant int) dctTable {
	const maxRun = 20
	const maxLevel = 12

	var lengths []int
	var values []int

	add := func(run, level, length int) {
		lengths = append(lengths, length)
		values = append(values, packRunLevel(run, level))
	}

	for run := 0; run <= maxRun; run++ {
		for level := 1; level <= maxLevel; level++ {
			length := 4 + run + level
			if variant == 1 && run == 0 {
				length -= 2
			}
			if length < 3 {
				length = 3
			}
			add(run, level, length)
		}
	}

	// end_of_block (2 bits, the shortest length of all) and the escape
	// sequence (6 bits) join the same canonical construction as the
	// run-level symbols, so their codewords cannot collide with them.
	lengths = append(lengths, 2, 6)
	values = append(values, dctEndOfBlock, dctEscape)

	return dctTable(buildCanonicalVLC(lengths, values))
}
