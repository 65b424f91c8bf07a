/*
DESCRIPTION
  state.go implements the header state machine described in section 7:
  it tracks which headers are legal given which have already been seen,
  and reports BitstreamIllegal when a chunk's start code arrives out of
  order, so that Decoder.Parse can fold it into STATE_INVALID rather
  than misinterpreting an orphaned slice or picture header.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// state identifies what headers the decoder has validly seen so far,
// in the sense required to interpret the next chunk.
type state int

// States of the header state machine.
const (
	stateInvalid state = iota
	stateStart         // Nothing decoded yet; only a sequence header is legal.
	stateSequence      // Sequence (and extension) seen; GOP or picture may follow.
	stateGOP           // GOP header seen; a picture header must follow.
	statePicture       // Picture header (and extension) seen; slices may follow.
	stateSlice         // At least one slice of the current picture decoded.
)

// transition names the decoder action a start code triggers from a given
// state, along with the state it leaves the machine in. It mirrors the
// shape of the teacher's StateTransx table, here keyed on (state, code)
// rather than (pStateIdx) since the legal next header depends on both.
type transition struct {
	next   state
	action action
}

// action identifies which chunk handler Decoder.Parse should invoke.
type action int

// Actions a transition can request.
const (
	actionIllegal action = iota
	actionSequenceHeader
	actionSequenceExtension
	actionGOPHeader
	actionPictureHeader
	actionPictureExtension
	actionSlice
	actionSequenceEnd
	actionIgnore // Extension/user-data codes the core decoder does not need.
)

// stateTransTab is the header state machine: for each (state, start code)
// pair it names the action to take and the state to adopt having taken
// it. Slice start codes are matched by a range check in classify before
// this table is consulted; any other code without an entry here is
// illegal in that state.
var stateTransTab = map[state]map[byte]transition{
	stateStart: {
		scSequenceHeader: {stateSequence, actionSequenceHeader},
	},
	stateInvalid: {
		scSequenceHeader: {stateSequence, actionSequenceHeader},
	},
	stateSequence: {
		scSequenceHeader:  {stateSequence, actionSequenceHeader},
		scExtensionStart:  {stateSequence, actionSequenceExtension},
		scGroupStart:      {stateGOP, actionGOPHeader},
		scPictureStart:    {statePicture, actionPictureHeader},
		scSequenceEndCode: {stateStart, actionSequenceEnd},
	},
	stateGOP: {
		scPictureStart:   {statePicture, actionPictureHeader},
		scSequenceHeader: {stateSequence, actionSequenceHeader},
	},
	statePicture: {
		scExtensionStart:  {statePicture, actionPictureExtension},
		scSequenceHeader:  {stateSequence, actionSequenceHeader},
		scGroupStart:      {stateGOP, actionGOPHeader},
		scSequenceEndCode: {stateStart, actionSequenceEnd},
	},
	stateSlice: {
		scSequenceHeader:  {stateSequence, actionSequenceHeader},
		scGroupStart:      {stateGOP, actionGOPHeader},
		scPictureStart:    {statePicture, actionPictureHeader},
		scSequenceEndCode: {stateStart, actionSequenceEnd},
	},
}

// classify looks up the action for code from state, additionally
// recognising slice start codes (0x01-0xAF) from statePicture or
// stateSlice without an explicit table entry per code value.
func classify(s state, code byte) transition {
	if code >= scSliceStartMin && code <= scSliceStartMax {
		if s == statePicture || s == stateSlice {
			return transition{stateSlice, actionSlice}
		}
		return transition{stateInvalid, actionIllegal}
	}
	if code == scUserDataStart || code == scExtensionStart && s == stateStart {
		return transition{s, actionIgnore}
	}
	t, ok := stateTransTab[s][code]
	if !ok {
		return transition{stateInvalid, actionIllegal}
	}
	return t
}
