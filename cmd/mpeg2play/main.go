/*
DESCRIPTION
  mpeg2play is a bare bones program that decodes an MPEG-1/2 elementary
  video stream file and reports each decoded frame to a no-op sink,
  exercising codec/mpeg2/mpeg2dec end to end from the command line. It
  is a caller of the decoder, not part of it: the outer CLI, timing and
  display responsibilities are all Non-goals of the decoder itself.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/mpeg2/codec/mpeg2/mpeg2dec"
)

// Logging related constants, following cmd/looper's convention.
const (
	logPath      = "/var/log/mpeg2play/mpeg2play.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logSuppress  = true
)

func main() {
	filePtr := flag.String("path", "", "Path to an MPEG-1/2 elementary video stream file.")
	verbosityPtr := flag.Int("verbosity", int(logging.Info), "Logging verbosity level.")
	flag.Parse()

	if *filePtr == "" {
		log.Fatal("path is required")
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}

	lg := logging.New(int8(*verbosityPtr), io.MultiWriter(fileLog, os.Stderr), logSuppress)
	mpeg2dec.Log = lg

	watchVerbosity(lg, *verbosityPtr)

	f, err := os.Open(*filePtr)
	if err != nil {
		log.Fatalf("could not open %s: %v", *filePtr, err)
	}
	defer f.Close()

	if err := play(f, lg); err != nil {
		log.Fatalf("play: %v", err)
	}
}

// play reads the whole file into memory and feeds it to a Decoder in
// chunks, discarding decoded frames via discardSink. The decoder's own
// concurrency model (spec.md section 5) assumes a single caller driving
// Parse in a loop, which is exactly what this does.
func play(r io.Reader, lg logging.Logger) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}

	dec := mpeg2dec.NewDecoder(&discardSink{log: lg})
	defer dec.Close()

	dec.Buffer(data)

	frames := 0
	for {
		ev, err := dec.Parse()
		if errors.Is(err, mpeg2dec.ErrNeedMoreData) {
			break
		}
		if err != nil {
			return errors.Wrap(err, "parse")
		}
		if ev == mpeg2dec.EventPictureDecoded {
			frames++
		}
		if ev == mpeg2dec.EventSequenceEnd {
			break
		}
	}
	lg.Info("decoding finished", "frames", frames)
	return nil
}

// watchVerbosity watches the log file's directory with fsnotify, logging
// each write event there at debug level and each watcher error as a
// warning. It does not change the logger's verbosity: the level given by
// the verbosity flag at startup holds for the whole run.
func watchVerbosity(lg logging.Logger, verbosity int) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		lg.Warning("could not start config watcher", "err", err)
		return
	}

	dir := logPath[:len(logPath)-len("/mpeg2play.log")]
	if err := watcher.Add(dir); err != nil {
		lg.Warning("could not watch log directory", "dir", dir, "err", err)
		watcher.Close()
		return
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					lg.Debug("log directory changed", "event", event.String())
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				lg.Warning("config watcher error", "err", err)
			}
		}
	}()
}

// discardSink implements mpeg2dec.Sink by allocating real planar
// buffers (so the decoder's motion compensation has somewhere to read
// reference pixels from) but otherwise doing nothing with completed
// frames: a stand-in for the display/output backend spec.md excludes.
type discardSink struct {
	log logging.Logger
}

func (s *discardSink) Setup(width, height int) error {
	return nil
}

func (s *discardSink) AllocateFrame(width, height int, format mpeg2dec.PixelFormat) (*mpeg2dec.Frame, error) {
	cStride := width / 2
	return &mpeg2dec.Frame{
		Y:       make([]byte, width*height),
		Cb:      make([]byte, cStride*height/2),
		Cr:      make([]byte, cStride*height/2),
		YStride: width,
		CStride: cStride,
		Width:   width,
		Height:  height,
	}, nil
}

func (s *discardSink) SetFrame(f *mpeg2dec.Frame, flags mpeg2dec.FrameFlags) {}

func (s *discardSink) DrawFrame(f *mpeg2dec.Frame) {
	if s.log != nil {
		s.log.Debug("frame decoded", "id", f.ID)
	}
}

func (s *discardSink) Close() error { return nil }
