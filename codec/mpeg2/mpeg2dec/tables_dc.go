/*
DESCRIPTION
  tables_dc.go provides the dct_dc_size VLC tables of tables B-12 (luma)
  and B-13 (chroma) in ISO/IEC 13818-2, used to decode the number of bits
  of the intra DC differential that follows.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// dctDCSizeLumaTable implements table B-12.
var dctDCSizeLumaTable = vlcTable{
	{3, 0b100, 0},
	{2, 0b00, 1},
	{2, 0b01, 2},
	{3, 0b101, 3},
	{3, 0b110, 4},
	{4, 0b1110, 5},
	{5, 0b11110, 6},
	{6, 0b111110, 7},
	{7, 0b1111110, 8},
	{8, 0b11111110, 9},
	{9, 0b111111110, 10},
	{9, 0b111111111, 11},
}

// dctDCSizeChromaTable implements table B-13.
var dctDCSizeChromaTable = vlcTable{
	{2, 0b00, 0},
	{2, 0b01, 1},
	{2, 0b10, 2},
	{3, 0b110, 3},
	{4, 0b1110, 4},
	{5, 0b11110, 5},
	{6, 0b111110, 6},
	{7, 0b1111110, 7},
	{8, 0b11111110, 8},
	{9, 0b111111110, 9},
	{10, 0b1111111110, 10},
	{10, 0b1111111111, 11},
}

// dcSizeTable selects the appropriate table for a component; cc 0 is
// luma, 1 and 2 are Cb and Cr.
func dcSizeTable(cc int) vlcTable {
	if cc == 0 {
		return dctDCSizeLumaTable
	}
	return dctDCSizeChromaTable
}
