/*
DESCRIPTION
  state_test.go provides testing for functionality found in state.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "testing"

func TestClassifySliceStartCodes(t *testing.T) {
	for _, code := range []byte{scSliceStartMin, 0x45, scSliceStartMax} {
		got := classify(statePicture, code)
		if got.action != actionSlice || got.next != stateSlice {
			t.Errorf("classify(statePicture, %#x) = %+v, want slice action", code, got)
		}
	}

	// The same range is illegal before any picture header has been seen.
	got := classify(stateSequence, scSliceStartMin)
	if got.action != actionIllegal {
		t.Errorf("classify(stateSequence, slice start) = %+v, want illegal", got)
	}
}

func TestClassifySequenceFlow(t *testing.T) {
	got := classify(stateStart, scSequenceHeader)
	if got.action != actionSequenceHeader || got.next != stateSequence {
		t.Fatalf("classify(stateStart, sequence header) = %+v", got)
	}

	got = classify(stateSequence, scGroupStart)
	if got.action != actionGOPHeader || got.next != stateGOP {
		t.Fatalf("classify(stateSequence, group start) = %+v", got)
	}

	got = classify(stateGOP, scPictureStart)
	if got.action != actionPictureHeader || got.next != statePicture {
		t.Fatalf("classify(stateGOP, picture start) = %+v", got)
	}
}

func TestClassifyOutOfOrderIsIllegal(t *testing.T) {
	// A picture header cannot legally arrive before any sequence header.
	got := classify(stateStart, scPictureStart)
	if got.action != actionIllegal {
		t.Errorf("classify(stateStart, picture start) = %+v, want illegal", got)
	}
}

func TestClassifyUserDataIsAlwaysIgnored(t *testing.T) {
	for _, s := range []state{stateStart, stateSequence, stateGOP, statePicture, stateSlice} {
		got := classify(s, scUserDataStart)
		if got.action != actionIgnore || got.next != s {
			t.Errorf("classify(%v, user data) = %+v, want ignore/unchanged state", s, got)
		}
	}
}
