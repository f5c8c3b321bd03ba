// internal/status/board.go
package status

import "time"

// Board tracks per-channel health over a run.
// Not safe for concurrent use; the sampler owns it.
type Board struct {
	ch [NumChannels]tracker
}

type tracker struct {
	health     uint16
	reads      uint64
	failures   uint64
	lastError  string
	errorSince time.Time
}

func NewBoard() *Board {
	return &Board{}
}

// Observe records the outcome of one read.
func (b *Board) Observe(c Channel, now time.Time, err error) {
	if c < 0 || c >= NumChannels {
		return
	}
	t := &b.ch[c]
	t.reads++

	if err == nil {
		t.health = HealthOK
		t.errorSince = time.Time{}
		return
	}

	t.failures++
	t.lastError = err.Error()
	if t.health != HealthError {
		t.errorSince = now
	}
	t.health = HealthError
}

// Snapshot returns the current state of one channel.
func (b *Board) Snapshot(c Channel, now time.Time) Snapshot {
	if c < 0 || c >= NumChannels {
		return Snapshot{Channel: c}
	}
	t := b.ch[c]

	s := Snapshot{
		Channel:   c,
		Health:    t.health,
		Reads:     t.reads,
		Failures:  t.failures,
		LastError: t.lastError,
	}

	if t.health == HealthError && !t.errorSince.IsZero() {
		secs := int64(now.Sub(t.errorSince) / time.Second)
		// seconds_in_error MUST NOT wrap
		if secs > MaxSecondsInError {
			secs = MaxSecondsInError
		}
		if secs > 0 {
			s.SecondsInError = uint16(secs)
		}
	}
	return s
}

// Snapshots returns every channel in order.
func (b *Board) Snapshots(now time.Time) []Snapshot {
	out := make([]Snapshot, 0, NumChannels)
	for c := Channel(0); c < NumChannels; c++ {
		out = append(out, b.Snapshot(c, now))
	}
	return out
}
