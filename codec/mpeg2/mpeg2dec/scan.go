/*
DESCRIPTION
  scan.go provides the two zig-zag permutations that map a linear DCT
  coefficient index to its position within an 8x8 block, as defined by
  section 7.3 of ISO/IEC 13818-2.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// scanNormal is the default zig-zag scan pattern.
var scanNormal = [64]uint8{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// scanAlternate is the alternate scan pattern, selected per picture by the
// alternate_scan flag in the picture coding extension.
var scanAlternate = [64]uint8{
	0, 8, 16, 24, 1, 9, 2, 10, 17, 25, 32, 40, 48, 56, 57, 49,
	41, 33, 26, 18, 3, 11, 4, 12, 19, 27, 34, 42, 50, 58, 35, 43,
	51, 59, 20, 28, 5, 13, 6, 14, 21, 29, 36, 44, 52, 60, 37, 45,
	53, 61, 22, 30, 7, 15, 23, 31, 38, 46, 54, 62, 39, 47, 55, 63,
}

// scanTable returns the scan permutation selected by the alternate_scan
// flag of a picture.
func scanTable(alternate bool) *[64]uint8 {
	if alternate {
		return &scanAlternate
	}
	return &scanNormal
}
