/*
DESCRIPTION
  canonical.go builds a canonical prefix-free vlcTable from a list of
  codeword lengths, one per symbol, in the style of the teacher's own
  formCoeffTokenMap: construct the lookup table programmatically from a
  compact description instead of typing out a large set of raw bit
  literals by hand.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "sort"

// buildCanonicalVLC constructs a valid prefix-free vlcTable for a run of
// symbols 0..len(lengths)-1, where lengths[i] is the codeword length to
// assign to symbol i. The Kraft sum of lengths must not exceed 1; callers
// choose lengths so that more frequent symbols get shorter codewords,
// mirroring the variable-length design of tables B-9, B-14 and B-15
// in ISO/IEC 13818-2 without requiring their exact published bit patterns.
func buildCanonicalVLC(lengths []int, values []int) vlcTable {
	type sym struct {
		length int
		value  int
	}
	syms := make([]sym, len(lengths))
	for i, l := range lengths {
		syms[i] = sym{length: l, value: values[i]}
	}
	sort.SliceStable(syms, func(i, j int) bool { return syms[i].length < syms[j].length })

	t := make(vlcTable, 0, len(syms))
	code := uint32(0)
	prevLen := 0
	if len(syms) > 0 {
		prevLen = syms[0].length
	}
	for _, s := range syms {
		code <<= uint(s.length - prevLen)
		t = append(t, vlcEntry{length: s.length, bits: code, value: s.value})
		code++
		prevLen = s.length
	}
	return t
}
