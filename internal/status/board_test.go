// internal/status/board_test.go
package status

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 2, 22, 0, 0, 0, time.UTC)

func TestBoard_UnknownUntilRead(t *testing.T) {
	b := NewBoard()
	s := b.Snapshot(Sound2, t0)
	if s.Health != HealthUnknown || s.Reads != 0 {
		t.Fatalf("unexpected fresh snapshot: %+v", s)
	}
}

func TestBoard_ErrorThenRecovery(t *testing.T) {
	b := NewBoard()
	boom := errors.New("echo timeout")

	b.Observe(Distance1, t0, nil)
	b.Observe(Distance1, t0.Add(time.Second), boom)
	b.Observe(Distance1, t0.Add(5*time.Second), boom)

	s := b.Snapshot(Distance1, t0.Add(11*time.Second))
	if s.Health != HealthError {
		t.Fatalf("health: got=%s want=ERROR", HealthName(s.Health))
	}
	if s.SecondsInError != 10 {
		t.Fatalf("seconds in error: got=%d want=10", s.SecondsInError)
	}
	if s.Reads != 3 || s.Failures != 2 {
		t.Fatalf("counts: reads=%d failures=%d", s.Reads, s.Failures)
	}

	b.Observe(Distance1, t0.Add(12*time.Second), nil)
	s = b.Snapshot(Distance1, t0.Add(13*time.Second))
	if s.Health != HealthOK || s.SecondsInError != 0 {
		t.Fatalf("after recovery: %+v", s)
	}
	if s.LastError != "echo timeout" {
		t.Fatalf("last error must survive recovery, got=%q", s.LastError)
	}
}

func TestBoard_SecondsInErrorSaturates(t *testing.T) {
	b := NewBoard()
	b.Observe(Sound1, t0, errors.New("read failed"))

	s := b.Snapshot(Sound1, t0.Add(48*time.Hour))
	if s.SecondsInError != MaxSecondsInError {
		t.Fatalf("seconds in error: got=%d want=%d", s.SecondsInError, MaxSecondsInError)
	}
}

func TestSnapshots_Order(t *testing.T) {
	snaps := NewBoard().Snapshots(t0)
	if len(snaps) != int(NumChannels) {
		t.Fatalf("len: got=%d want=%d", len(snaps), NumChannels)
	}
	for i, s := range snaps {
		if s.Channel != Channel(i) {
			t.Fatalf("snapshot %d: channel=%s", i, s.Channel)
		}
	}
}

func TestChannelMapping(t *testing.T) {
	if DistanceChannel(2) != Distance2 || SoundChannel(1) != Sound1 {
		t.Fatalf("channel mapping broken")
	}
}

func TestEncode(t *testing.T) {
	s := Snapshot{
		Channel:        Distance2,
		Health:         HealthError,
		Reads:          9,
		Failures:       4,
		LastError:      "gateway: echo timeout",
		SecondsInError: 3,
	}
	want := `distance2 health=ERROR reads=9 failures=4 seconds_in_error=3 last_error="gateway: echo timeout"`
	if got := Encode(s); got != want {
		t.Fatalf("Encode:\n got=%s\nwant=%s", got, want)
	}
}
