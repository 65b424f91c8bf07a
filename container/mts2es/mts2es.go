/*
DESCRIPTION
  mts2es.go extracts the video elementary stream from an MPEG transport
  stream's PES packets, producing the flat byte sequence that
  codec/mpeg2/mpeg2dec consumes via Decoder.Buffer. This lives outside
  the decoding core (spec.md's Non-goal on container demuxers); it is a
  caller of mpeg2dec, not part of it, included here only as a concrete
  home for the corpus's MPEG-TS demuxing dependency.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

// Package mts2es extracts an MPEG-1/2 video elementary stream from an
// MPEG transport stream.
package mts2es

import (
	"io"

	"github.com/Comcast/gots/v2/packet"
	"github.com/Comcast/gots/v2/pes"
	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"
)

// Log is the logger used by this package, following the package-level
// logger convention of codec/jpeg and codec/mpeg2/mpeg2dec.
var Log logging.Logger

// Extractor reads transport stream packets from src and writes the
// reassembled video PES payload of pid to dst.
type Extractor struct {
	src io.Reader
	dst io.Writer
	pid int

	partial []byte // Bytes of a PES packet accumulated across TS packets.
}

// NewExtractor returns an Extractor that copies the elementary stream
// of the given video PID from src into writes to dst.
func NewExtractor(dst io.Writer, src io.Reader, pid int) *Extractor {
	return &Extractor{src: src, dst: dst, pid: pid}
}

// Run reads transport stream packets from src until EOF or an error,
// writing each complete video PES payload's data bytes to dst.
func (e *Extractor) Run() error {
	buf := make([]byte, packet.PacketSize)
	for {
		_, err := io.ReadFull(e.src, buf)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return e.flush()
		}
		if err != nil {
			return errors.Wrap(err, "reading transport stream packet")
		}

		pkt := packet.Packet(buf)
		if pkt.PID() != uint16(e.pid) {
			continue
		}

		if pkt.PayloadUnitStartIndicator() {
			if err := e.flush(); err != nil {
				return err
			}
		}

		payload, err := pkt.Payload()
		if err != nil {
			if Log != nil {
				Log.Warning("mts2es: bad packet payload", "err", err)
			}
			continue
		}
		e.partial = append(e.partial, payload...)
	}
}

// flush parses any accumulated PES packet and writes its data bytes to
// dst, then resets the accumulator.
func (e *Extractor) flush() error {
	if len(e.partial) == 0 {
		return nil
	}
	data := e.partial
	e.partial = nil

	header, err := pes.NewPESHeader(data)
	if err != nil {
		if Log != nil {
			Log.Warning("mts2es: bad pes header", "err", err)
		}
		return nil
	}
	payload := header.Data()
	if len(payload) == 0 {
		return nil
	}
	_, err = e.dst.Write(payload)
	return errors.Wrap(err, "writing elementary stream payload")
}
