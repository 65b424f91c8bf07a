/*
DESCRIPTION
  tables_motion.go provides the motion_code VLC table (table B-10) and the
  dmvector VLC table (table B-11) of ISO/IEC 13818-2, used to decode
  motion vector differentials and dual-prime displacement deltas.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// motionCodeTable implements table B-10. The decoded value is the
// magnitude of motion_code, 0 to 16; the sign bit itself is not part of
// this table and is read separately by decodeMotionDelta.
var motionCodeTable = vlcTable{
	{1, 0b1, 0},
	{3, 0b010, 1},
	{4, 0b0010, 2},
	{6, 0b000010, 3},
	{7, 0b0000110, 4},
	{7, 0b0000101, 5},
	{9, 0b000001010, 6},
	{9, 0b000001000, 7},
	{10, 0b0000011001, 8},
	{10, 0b0000011000, 9},
	{10, 0b0000010111, 10},
	{10, 0b0000010110, 11},
	{10, 0b0000010101, 12},
	{10, 0b0000010100, 13},
	{10, 0b0000010011, 14},
	{10, 0b0000010010, 15},
	{11, 0b00000010001, 16},
}

// dmvectorTable implements table B-11, decoding the dual-prime
// displacement delta into {-1, 0, 1}.
var dmvectorTable = vlcTable{
	{1, 0b0, 0},
	{2, 0b10, 1},
	{2, 0b11, -1},
}
