/*
DESCRIPTION
  tables_mba.go provides the macroblock_address_increment VLC table of
  table B-1 in ISO/IEC 13818-2, along with the two special codes: the
  macroblock_escape code (which adds 33 and continues), and the MPEG-1-only
  macroblock_stuffing code.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

const (
	mbaEscape   = -1 // macroblock_escape: adds 33 and continues decoding.
	mbaStuffing = -2 // macroblock_stuffing: MPEG-1 only, discarded.
)

// mbAddrIncTable implements table B-1. Values greater than zero are a
// direct macroblock_address_increment; the two sentinels above are handled
// specially by the caller.
var mbAddrIncTable = vlcTable{
	{1, 0b1, 1},
	{3, 0b011, 2},
	{3, 0b010, 3},
	{4, 0b0011, 4},
	{4, 0b0010, 5},
	{5, 0b00011, 6},
	{5, 0b00010, 7},
	{7, 0b0000111, 8},
	{7, 0b0000110, 9},
	{8, 0b00001011, 10},
	{8, 0b00001010, 11},
	{8, 0b00001001, 12},
	{8, 0b00001000, 13},
	{8, 0b00000111, 14},
	{8, 0b00000110, 15},
	{10, 0b0000010111, 16},
	{10, 0b0000010110, 17},
	{10, 0b0000010101, 18},
	{10, 0b0000010100, 19},
	{10, 0b0000010011, 20},
	{10, 0b0000010010, 21},
	{11, 0b00000100011, 22},
	{11, 0b00000100010, 23},
	{11, 0b00000100001, 24},
	{11, 0b00000100000, 25},
	{11, 0b00000011111, 26},
	{11, 0b00000011110, 27},
	{11, 0b00000011101, 28},
	{11, 0b00000011100, 29},
	{11, 0b00000011011, 30},
	{11, 0b00000011010, 31},
	{11, 0b00000011001, 32},
	{11, 0b00000011000, 33},
	{11, 0b00000001111, mbaStuffing},
	{11, 0b00000001000, mbaEscape},
}

// maxMBAStuffingRun bounds a run of consecutive macroblock_stuffing codes.
// Section 9's open question notes the standard does not clearly bound an
// MPEG-1 stuffing run; we cap it defensively so a corrupt stream cannot
// spin the slice decoder forever.
const maxMBAStuffingRun = 1024
