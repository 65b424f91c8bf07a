/*
DESCRIPTION
  sink.go provides the video output capability interface that the decoder
  drives, as defined by section 6.1: buffer allocation, per-picture and
  per-slice hooks, and final display/flip. This formalizes the reference
  decoder's vo_instance indirection as a Go interface the decoder holds by
  value.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

// PixelFormat identifies the sample layout a Sink is asked to allocate.
// The core decoder only ever requests planar 4:2:0.
type PixelFormat int

// The single pixel format the decoder requests.
const (
	PixelFormatYUV420P PixelFormat = iota
)

// FrameFlags enumerate the per-picture intent communicated to a Sink via
// SetFrame, as defined in section 6.1.
type FrameFlags uint8

// Flag bits of FrameFlags.
const (
	// FlagPrediction marks a picture decoded for reference only; it is
	// not intended for display (set when the caller requested Skip).
	FlagPrediction FrameFlags = 1 << iota

	// FlagTopField indicates the top field of the current frame is being
	// filled.
	FlagTopField

	// FlagBottomField indicates the bottom field of the current frame is
	// being filled.
	FlagBottomField

	// FlagBothFields indicates a complete frame picture is being filled.
	FlagBothFields
)

// Frame wraps the three plane buffers of one picture, as allocated by a
// Sink's AllocateFrame. Stride is in bytes and may exceed the nominal
// plane width (for field pictures, the luma stride is doubled so that two
// field decodes interleave into one frame store; see section 4.7).
type Frame struct {
	Y, Cb, Cr        []byte
	YStride, CStride int
	Width, Height    int
	ID               interface{}
}

// Sink is the capability interface the decoder drives to obtain storage
// for decoded pictures and to announce when a picture has reached its
// display position, as defined by section 6.1. Implementations own the
// pixel storage; the decoder only ever reads and writes through the
// pointers returned by AllocateFrame.
type Sink interface {
	// Setup is called once per sequence with the coded dimensions.
	// Failure is fatal (ErrSinkSetupFailure).
	Setup(width, height int) error

	// AllocateFrame returns a new Frame of the given dimensions and
	// format. The decoder calls it each time it starts a picture with no
	// current frame, which is once per picture (a second field reuses its
	// first field's frame); earlier frames are not recycled, so the number
	// of calls per sequence is not limited to three.
	AllocateFrame(width, height int, format PixelFormat) (*Frame, error)

	// SetFrame announces which buffer is about to be filled and the
	// field intent for the picture now being decoded.
	SetFrame(f *Frame, flags FrameFlags)

	// DrawFrame is called once a picture has reached its display
	// position, in display order (not decode order).
	DrawFrame(f *Frame)

	// Close releases the frame buffers it allocated and any output resources.
	Close() error
}

// SliceDrawer is an optional capability a Sink may additionally implement
// to receive an incremental callback after each decoded slice, useful for
// progressive display. The decoder type-asserts for this interface rather
// than requiring every Sink to implement a no-op.
type SliceDrawer interface {
	DrawSlice(f *Frame, row int)
}

// drawSlice invokes Sink.DrawSlice if sink implements SliceDrawer.
func drawSlice(sink Sink, f *Frame, row int) {
	if d, ok := sink.(SliceDrawer); ok {
		d.DrawSlice(f, row)
	}
}
