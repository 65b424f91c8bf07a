/*
DESCRIPTION
  decoder.go provides the top-level Decoder type and its public API:
  Buffer, Parse, PTS, Skip, SetBuf and Close, corresponding respectively
  to the reference decoder's mpeg2_buffer, mpeg2_parse, mpeg2_pts,
  mpeg2_skip, mpeg2_set_buf and mpeg2_close in libmpeg2's decode.c. The
  push model is preserved: the caller supplies bytes with Buffer (and
  optionally a timestamp with PTS), then repeatedly calls Parse, which consumes exactly one chunk
  per call and reports what it did via the returned Event.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

// Package mpeg2dec provides a decoder for ISO/IEC 11172-2 (MPEG-1) and
// ISO/IEC 13818-2 (MPEG-2) elementary video streams.
package mpeg2dec

import (
	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"
)

// Log is the logger used by this package. Callers that want decode
// diagnostics should set this before use, following the pattern of the
// sibling codec packages in this module.
var Log logging.Logger

func logDebug(msg string, args ...interface{}) {
	if Log != nil {
		Log.Debug(msg, args...)
	}
}

func logWarning(msg string, args ...interface{}) {
	if Log != nil {
		Log.Warning(msg, args...)
	}
}

// Event reports what the most recent call to Parse accomplished, so the
// caller can decide whether a Frame is now ready to be obtained from its
// Sink, as defined in section 6. The set of events mirrors the named
// decoder states of the reference implementation's public state machine
// (buffer/sequence/sequence-repeated/gop/picture/picture-2nd/slice-1st/
// slice/end/invalid) rather than collapsing them all into one no-op value.
type Event int

// Events returned by Parse.
const (
	// EventNone indicates a chunk was consumed but produced no
	// caller-visible effect (an ignored extension or user-data chunk).
	EventNone Event = iota

	// EventSequence indicates a new or changed sequence_header was
	// parsed; the frame store has been reset and the Sink re-configured.
	EventSequence

	// EventSequenceRepeated indicates a sequence_header identical to the
	// previous one (its bit_rate aside) was parsed; per section 3 the
	// frame store and Sink are left untouched, so no frame buffers are
	// re-requested for a repeat the stream didn't actually change.
	EventSequenceRepeated

	// EventGOP indicates a group_of_pictures_header was parsed.
	EventGOP

	// EventPicture indicates a picture_header was parsed.
	EventPicture

	// EventPicture2nd indicates a picture_coding_extension completed
	// the second field of a field-coded picture pair.
	EventPicture2nd

	// EventSlice1st indicates the first slice of the current picture
	// was decoded.
	EventSlice1st

	// EventSliceDecoded indicates a subsequent slice of the current
	// picture was decoded.
	EventSliceDecoded

	// EventPictureDecoded indicates the last slice of a picture was
	// decoded and a complete picture is now sitting in the buffer
	// passed to Sink.SetFrame.
	EventPictureDecoded

	// EventInvalid indicates a start code arrived out of order; the
	// decoder folded it into the invalid state and will resume cleanly
	// once a legal header is next seen.
	EventInvalid

	// EventSequenceEnd indicates a sequence_end_code was parsed; the
	// last reference pictures still held in the frame store have been
	// flushed to the Sink in display order.
	EventSequenceEnd
)

// Decoder holds all state for decoding one MPEG-1/MPEG-2 elementary
// stream: the current sequence and picture parameters, the three-slot
// frame store, and the Sink frames are delivered to.
type Decoder struct {
	sink Sink

	st    state
	input []byte // Bytes buffered by Buffer but not yet consumed by Parse.
	pos   int    // Read position within input.
	pts   []ptsMark

	seq              *Sequence
	pic              *Picture
	gop              *gopHeader
	store            *frameStore
	closed           bool
	fatal            bool
	mismatchCtl      bool
	sliceSeen        bool             // Whether a slice of the current picture has been decoded yet.
	lastFieldStruct  PictureStructure // Structure of the last field-coded picture seen, 0 between pairs.
}

// ptsMark records a presentation timestamp and the byte offset in input
// it applies to, mirroring mpeg2_pts in the reference decoder, which
// attaches a PTS to the next picture start code found at or after the
// given offset.
type ptsMark struct {
	offset int
	pts    uint32
	valid  bool
}

// NewDecoder returns a Decoder that delivers decoded pictures to sink.
func NewDecoder(sink Sink) *Decoder {
	return &Decoder{sink: sink, st: stateStart, store: newFrameStore()}
}

// Buffer appends data to the decoder's input queue for the next calls
// to Parse to consume, corresponding to mpeg2_buffer.
func (d *Decoder) Buffer(data []byte) {
	if d.pos > 0 {
		d.input = append(d.input[:0], d.input[d.pos:]...)
		for i := range d.pts {
			d.pts[i].offset -= d.pos
		}
		d.pos = 0
	}
	d.input = append(d.input, data...)
}

// PTS attaches a presentation timestamp to the next picture_start_code
// chunk that begins at or after the byte most recently appended by
// Buffer, corresponding to mpeg2_pts.
func (d *Decoder) PTS(pts uint32) {
	d.pts = append(d.pts, ptsMark{offset: len(d.input), pts: pts, valid: true})
}

// Skip instructs the decoder to decode (for reference) but not display
// the next n pictures, corresponding to mpeg2_skip. Skipped pictures
// are still delivered to the Sink, flagged with FlagPrediction.
func (d *Decoder) Skip(n int) {
	d.store.skip += n
}

// SetBuf installs sink as the decoder's frame consumer, replacing any
// previous one, corresponding to mpeg2_set_buf. It is only valid before
// the first call to Parse after NewDecoder.
func (d *Decoder) SetBuf(sink Sink) {
	d.sink = sink
}

// Close delivers any reference picture still held by the frame store to
// the Sink and closes the Sink, corresponding to mpeg2_close; Parse
// returns an error from then on. Close is idempotent: calling it on an
// already-closed Decoder is a no-op.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.sink == nil {
		return nil
	}
	d.store.flush(d.sink)
	return d.sink.Close()
}

// Parse consumes exactly one start-code-delimited chunk from the
// buffered input and acts on it, returning the Event describing what
// happened. It returns ErrNeedMoreData if input does not yet contain a
// complete chunk; the caller should Buffer more data and retry. Once a
// fatal error (currently only ErrSinkSetupFailure) has occurred, Parse
// continues to return that error until Close.
func (d *Decoder) Parse() (Event, error) {
	if d.closed {
		return EventNone, errors.New("mpeg2dec: decoder is closed")
	}
	if d.fatal {
		return EventNone, ErrSinkSetupFailure
	}

	c, next, found := nextChunk(d.input, d.pos)
	if !found {
		return EventNone, ErrNeedMoreData
	}

	var pts uint32
	var ptsValid bool
	if c.code == scPictureStart {
		pts, ptsValid = d.consumePTS(d.pos)
	}
	d.pos = next

	t := classify(d.st, c.code)
	d.st = t.next

	ev, err := d.act(t.action, c, pts, ptsValid)
	if err != nil && fatalError(err) {
		d.fatal = true
	}
	return ev, err
}

// consumePTS pops and returns the newest ptsMark whose offset is at or
// before the start of the chunk now being consumed, matching the
// reference decoder's behaviour of associating a PTS with the picture
// header that follows its mpeg2_pts call.
func (d *Decoder) consumePTS(chunkStart int) (uint32, bool) {
	var pts uint32
	var ok bool
	kept := d.pts[:0]
	for _, m := range d.pts {
		if m.valid && m.offset <= chunkStart {
			pts, ok = m.pts, true
			continue
		}
		kept = append(kept, m)
	}
	d.pts = kept
	return pts, ok
}

// act dispatches a classified chunk to the appropriate header parser or
// the slice decoder, updating d's sequence/picture/frame-store state.
func (d *Decoder) act(a action, c chunk, pts uint32, ptsValid bool) (Event, error) {
	switch a {
	case actionIllegal:
		logWarning("mpeg2dec: illegal chunk", "code", c.code, "state", d.st)
		return EventInvalid, nil

	case actionIgnore:
		return EventNone, nil

	case actionSequenceHeader:
		seq, err := parseSequenceHeader(c.payload)
		if err != nil {
			return EventNone, errors.Wrap(err, "parsing sequence header")
		}
		repeat := d.seq != nil && seq.equalIgnoringByteRate(d.seq)
		if d.seq != nil && !repeat {
			logDebug("mpeg2dec: sequence header changed", "err", errSequenceRepeatMismatch)
		}
		d.seq = seq
		if repeat {
			// A genuine repeat carries no new dimensions: the frame
			// store keeps its current/forward/backward slots and the
			// Sink keeps whatever buffers it already allocated.
			return EventSequenceRepeated, nil
		}
		if d.sink != nil {
			if err := d.sink.Setup(seq.CodedWidth, seq.CodedHeight); err != nil {
				return EventNone, errors.Wrap(ErrSinkSetupFailure, err.Error())
			}
		}
		d.store.reset(seq.CodedWidth, seq.CodedHeight)
		return EventSequence, nil

	case actionSequenceExtension:
		if d.seq == nil {
			return EventNone, errors.New("mpeg2dec: sequence extension without sequence header")
		}
		applySequenceExtension(d.seq, c.payload)
		return EventNone, nil

	case actionGOPHeader:
		d.gop = parseGOPHeader(c.payload)
		return EventGOP, nil

	case actionPictureHeader:
		if d.seq == nil {
			return EventNone, errors.New("mpeg2dec: picture header without sequence header")
		}
		d.pic = parsePictureHeader(c.payload)
		if ptsValid {
			d.pic.PTS = pts
		}
		d.sliceSeen = false
		return EventPicture, nil

	case actionPictureExtension:
		if d.pic == nil {
			return EventNone, errors.New("mpeg2dec: picture extension without picture header")
		}
		applyPictureCodingExtension(d.pic, c.payload)

		if d.pic.Structure == FramePicture {
			d.lastFieldStruct = 0
			return EventNone, nil
		}
		d.pic.SecondField = d.lastFieldStruct != 0 && d.lastFieldStruct != d.pic.Structure
		if d.pic.SecondField {
			d.lastFieldStruct = 0
			return EventPicture2nd, nil
		}
		d.lastFieldStruct = d.pic.Structure
		return EventNone, nil

	case actionSlice:
		if d.seq == nil || d.pic == nil {
			return EventNone, errSliceTruncated
		}
		last, err := d.decodeSlice(c)
		if err != nil {
			logDebug("mpeg2dec: slice decode error", "err", err)
			return EventNone, errors.Wrap(err, "decoding slice")
		}
		if last {
			return EventPictureDecoded, nil
		}
		first := !d.sliceSeen
		d.sliceSeen = true
		if first {
			return EventSlice1st, nil
		}
		return EventSliceDecoded, nil

	case actionSequenceEnd:
		d.store.flush(d.sink)
		return EventSequenceEnd, nil

	default:
		return EventNone, errors.Errorf("mpeg2dec: unhandled action %d", a)
	}
}
