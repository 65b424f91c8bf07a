/*
DESCRIPTION
  framestore_test.go provides testing for functionality found in
  framestore.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "testing"

// recordingSink is a minimal Sink that records the order Frames are
// delivered in, following the fake-collaborator style the teacher's
// own tests use in place of a mocking library.
type recordingSink struct {
	delivered []*Frame
}

func (s *recordingSink) Setup(width, height int) error { return nil }

func (s *recordingSink) AllocateFrame(width, height int, format PixelFormat) (*Frame, error) {
	return &Frame{Width: width, Height: height}, nil
}

func (s *recordingSink) SetFrame(f *Frame, flags FrameFlags) {}

func (s *recordingSink) DrawFrame(f *Frame) {
	s.delivered = append(s.delivered, f)
}

func (s *recordingSink) Close() error { return nil }

// TestFrameStoreReorder checks that an I,P,B,B,P decode sequence is
// delivered to the sink in display order I,B,B,P, with the final P held
// back until flush, per section 4.7's rotation rule.
func TestFrameStoreReorder(t *testing.T) {
	sink := &recordingSink{}
	fs := newFrameStore()
	fs.reset(16, 16)

	i, _ := fs.allocate(sink, FramePicture, false)
	i.ID = "I"
	fs.complete(sink, PictureI)

	p1, _ := fs.allocate(sink, FramePicture, false)
	p1.ID = "P1"
	fs.complete(sink, PictureP)

	b1, _ := fs.allocate(sink, FramePicture, false)
	b1.ID = "B1"
	fs.complete(sink, PictureB)

	b2, _ := fs.allocate(sink, FramePicture, false)
	b2.ID = "B2"
	fs.complete(sink, PictureB)

	p2, _ := fs.allocate(sink, FramePicture, false)
	p2.ID = "P2"
	fs.complete(sink, PictureP)

	fs.flush(sink)

	var gotOrder []interface{}
	for _, f := range sink.delivered {
		gotOrder = append(gotOrder, f.ID)
	}

	want := []interface{}{"I", "B1", "B2", "P1", "P2"}
	if len(gotOrder) != len(want) {
		t.Fatalf("delivered %v, want %v", gotOrder, want)
	}
	for i := range want {
		if gotOrder[i] != want[i] {
			t.Errorf("delivery order %v, want %v", gotOrder, want)
			break
		}
	}
}

func TestFrameStoreResetClearsSlots(t *testing.T) {
	sink := &recordingSink{}
	fs := newFrameStore()
	fs.reset(16, 16)
	f, _ := fs.allocate(sink, FramePicture, false)
	f.ID = "I"
	fs.complete(sink, PictureI)

	fs.reset(32, 32)
	if fs.forward != nil || fs.backward != nil || fs.current != nil {
		t.Errorf("reset did not clear reference slots")
	}
}
