// internal/recorder/recorder.go
package recorder

import (
	"fmt"
	"io"
	"strconv"
)

// fileRecorder writes whitespace-separated integers, one "%d " token per
// value, with no buffering: a crash loses at most the token in flight.
type fileRecorder struct {
	dist  io.Writer
	sound io.Writer

	buf []byte
}

// New returns a Recorder writing to the given distance and sound logs.
func New(dist, sound io.Writer) Recorder {
	return &fileRecorder{
		dist:  dist,
		sound: sound,
		buf:   make([]byte, 0, 32),
	}
}

func (r *fileRecorder) AppendDistance(p DistancePair) error {
	if err := r.put(r.dist, p.S1); err != nil {
		return fmt.Errorf("recorder: distance log: %w", err)
	}
	if err := r.put(r.dist, p.S2); err != nil {
		return fmt.Errorf("recorder: distance log: %w", err)
	}
	return nil
}

func (r *fileRecorder) AppendSound(v int) error {
	if err := r.put(r.sound, v); err != nil {
		return fmt.Errorf("recorder: sound log: %w", err)
	}
	return nil
}

func (r *fileRecorder) put(w io.Writer, v int) error {
	r.buf = strconv.AppendInt(r.buf[:0], int64(v), 10)
	r.buf = append(r.buf, ' ')
	_, err := w.Write(r.buf)
	return err
}
