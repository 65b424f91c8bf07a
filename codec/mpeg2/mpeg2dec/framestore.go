/*
DESCRIPTION
  framestore.go implements the three-slot reference frame buffer and
  display-order reordering described in section 4.7: one slot each for
  the forward and backward reference pictures, and one for the picture
  currently being decoded. On every non-B picture, once decoding
  completes, the slots rotate (forward <- backward, backward <- current)
  and the picture that was in backward (the previous reference) is
  delivered to the sink, which is what turns decode order (I,P,B,B,P,B,B,...) into display
  order (I,B,B,P,B,B,P,...). B pictures are never referenced and are
  delivered the moment they are decoded.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// frameStore owns the three reference slots described in section 4.7.
type frameStore struct {
	width, height int

	forward  *Frame // Older reference; already delivered, dropped on the next rotation.
	backward *Frame // Most recent I/P reference; delivered on the next rotation or at flush.
	current  *Frame // The picture presently being filled.

	skip int // Remaining pictures to decode-only, per Decoder.Skip.
}

func newFrameStore() *frameStore {
	return &frameStore{}
}

// reset is called on every new (not repeated) sequence header: it forgets the previous
// sequence's reference pictures, since their dimensions may no longer
// match.
func (fs *frameStore) reset(width, height int) {
	fs.width, fs.height = width, height
	fs.forward = nil
	fs.backward = nil
	fs.current = nil
}

// allocate obtains a Frame for the picture about to be decoded,
// announces it to sink via SetFrame, and installs it as fs.current. For
// the second field of a field picture, the same Frame is reused so the
// two fields interleave into one frame store (section 4.7).
func (fs *frameStore) allocate(sink Sink, structure PictureStructure, secondField bool) (*Frame, error) {
	flags := structureFlags(structure)
	if fs.skip > 0 {
		flags |= FlagPrediction
	}

	var f *Frame
	var err error
	if secondField && fs.current != nil {
		f = fs.current
	} else {
		f, err = sink.AllocateFrame(fs.width, fs.height, PixelFormatYUV420P)
		if err != nil {
			return nil, err
		}
	}
	sink.SetFrame(f, flags)
	fs.current = f
	return f, nil
}

// structureFlags maps a PictureStructure onto the FrameFlags bit Sink
// expects for it.
func structureFlags(s PictureStructure) FrameFlags {
	switch s {
	case TopField:
		return FlagTopField
	case BottomField:
		return FlagBottomField
	default:
		return FlagBothFields
	}
}

// complete is called once a picture's last slice has been decoded. It
// rotates the reference slots per section 4.7 and delivers whichever
// picture has now reached its display position.
func (fs *frameStore) complete(sink Sink, codingType PictureCodingType) {
	cur := fs.current
	fs.current = nil

	if codingType == PictureB {
		fs.deliver(sink, cur)
		fs.consumeSkip()
		return
	}

	fs.deliver(sink, fs.backward)
	fs.forward = fs.backward
	fs.backward = cur
	fs.consumeSkip()
}

func (fs *frameStore) consumeSkip() {
	if fs.skip > 0 {
		fs.skip--
	}
}

func (fs *frameStore) deliver(sink Sink, f *Frame) {
	if sink == nil || f == nil {
		return
	}
	sink.DrawFrame(f)
}

// flush delivers the reference picture still held at end of stream or
// decoder close, per section 4.7. Only backward can be holding a picture
// that has not yet reached the sink: forward was delivered by the
// rotation that moved it out of backward.
func (fs *frameStore) flush(sink Sink) {
	fs.deliver(sink, fs.backward)
	fs.forward = nil
	fs.backward = nil
}
