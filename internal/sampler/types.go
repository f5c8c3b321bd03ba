// internal/sampler/types.go
package sampler

import (
	"time"

	"github.com/tamzrod/sleep-recorder/internal/status"
)

// Watchdog is the liveness device the loop must keep pinging.
type Watchdog interface {
	Ping() error
}

// Observer receives every loop event. Implementations MUST NOT block.
type Observer interface {
	ObserveRead(c status.Channel, err error)
	ObserveOnset(sensor int)
	ObservePing(err error)
	ObserveTick()
}

// RunState is all mutable state of one sampling run.
type RunState struct {
	Start       time.Time
	StartSecond int64 // Start as whole Unix seconds

	// LastTick is the elapsed second of the last distance tick, -1 before
	// the first. A qualifying second yields at most one tick.
	LastTick int64
	Ticks    int

	// Per sound sensor (index 0 = sensor 1): the last Unix second an
	// onset or a read error was recorded.
	LastOnset      [2]int64
	LastSoundError [2]int64
}

func newRunState(start time.Time) RunState {
	sec := start.Unix()
	return RunState{
		Start:          start,
		StartSecond:    sec,
		LastTick:       -1,
		LastOnset:      [2]int64{sec - 1, sec - 1},
		LastSoundError: [2]int64{sec - 1, sec - 1},
	}
}

// Result summarises a finished run.
type Result struct {
	Start    time.Time
	Elapsed  time.Duration
	Ticks    int
	Onsets   [2]int
	Canceled bool // stopped by context before RunLength elapsed

	DistanceFailures int
	SoundFailures    int

	Health []status.Snapshot
}
