/*
DESCRIPTION
  chunker.go locates start codes (0x000001XX) in an accumulated input
  buffer and splits it into chunks ready for the state machine of
  state.go, mirroring copy_chunk in the reference decoder's decode.c:
  rather than copying byte by byte into a side buffer, it scans for the
  next start code in place and hands back a slice of the caller's
  buffer, analogous in technique to the byte-at-a-time 0x000001 scan of
  the teacher's h264 lexer but operating on a buffer already in memory
  instead of a streaming io.Reader.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// Start codes of section 6.2 this decoder's state machine distinguishes.
const (
	scPictureStart    byte = 0x00
	scSliceStartMin   byte = 0x01
	scSliceStartMax   byte = 0xaf
	scUserDataStart   byte = 0xb2
	scSequenceHeader  byte = 0xb3
	scSequenceEndCode byte = 0xb7
	scGroupStart      byte = 0xb8
	scExtensionStart  byte = 0xb5
	scSystemStartMin  byte = 0xb9
)

// chunk is one start-code-delimited unit: code is the 4th byte of the
// 0x000001XX prefix, payload is everything from the byte after code up
// to (but not including) the next start code's 0x000001 prefix.
type chunk struct {
	code    byte
	payload []byte
}

// nextChunk finds the first start code at or after offset start in buf
// and returns the chunk it begins, plus the offset of the first byte of
// the 0x000001 prefix of the following start code. found is false, and
// next is len(buf), if buf[start:] does not yet hold both of those start
// codes, meaning the caller should retain buf[start:] and wait for more
// input.
func nextChunk(buf []byte, start int) (c chunk, next int, found bool) {
	first := indexStartCode(buf, start)
	if first < 0 {
		return chunk{}, len(buf), false
	}
	code := buf[first+3]
	payloadStart := first + 4

	second := indexStartCode(buf, payloadStart)
	if second < 0 {
		return chunk{}, len(buf), false
	}
	return chunk{code: code, payload: buf[payloadStart:second]}, second, true
}

// indexStartCode returns the index of the first byte of the next
// 0x000001 prefix in buf at or after from, or -1 if none is present.
func indexStartCode(buf []byte, from int) int {
	for i := from; i+2 < len(buf); i++ {
		if buf[i] == 0 && buf[i+1] == 0 && buf[i+2] == 1 {
			return i
		}
	}
	return -1
}
