/*
DESCRIPTION
  errors.go enumerates the recoverable and fatal error kinds of section 7
  of the design and the sentinel values the decoder surfaces for them.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package mpeg2dec

import "github.com/pkg/errors"

// ErrNeedMoreData is returned by (*Decoder).Parse when the buffered input
// does not yet contain a full chunk to act on. It is not a failure; the
// caller should supply more data via Buffer and call Parse again.
var ErrNeedMoreData = errors.New("mpeg2dec: need more input")

// ErrSinkSetupFailure wraps an error returned by Sink.Setup. Per section 7
// this is fatal: the decoder refuses further input until Close.
var ErrSinkSetupFailure = errors.New("mpeg2dec: sink setup failed")

// errSliceTruncated marks a slice that ended because the bitstream reader
// ran past the end of its chunk; decoding continues with the next chunk
// (section 7, BitstreamIllegal).
var errSliceTruncated = errors.New("mpeg2dec: slice truncated")

// errSequenceRepeatMismatch indicates that a repeated sequence header
// differed from the previous one in more than byte_rate, so the sequence
// is being treated as new rather than a repeat.
var errSequenceRepeatMismatch = errors.New("mpeg2dec: sequence header mismatch")

// fatalError reports whether err should stop the decoder from accepting
// further input until Close, versus being folded into STATE_INVALID and
// resumed on the next legal header, per the error policy table.
func fatalError(err error) bool {
	return errors.Cause(err) == ErrSinkSetupFailure
}
