// internal/recorder/types.go
package recorder

// Sentinels written in place of a reading. Both are negative so readers can
// tell them apart from any real measurement.
const (
	DistanceSentinel = -1
	SoundSentinel    = -2
)

// DistancePair is one liveness tick: a reading from each distance sensor.
type DistancePair struct {
	S1 int
	S2 int
}

// Sensor returns the reading for sensor id (1 or 2).
func (p DistancePair) Sensor(id int) int {
	if id == 2 {
		return p.S2
	}
	return p.S1
}

// Recorder appends samples to the run's two raw logs.
type Recorder interface {
	AppendDistance(p DistancePair) error
	AppendSound(v int) error
}

// DistanceLog is a parsed distance log.
type DistanceLog struct {
	Pairs     []DistancePair
	Malformed int // unparsable tokens (read as sentinels) plus a dangling odd token
}

// SoundLog is a parsed sound log.
type SoundLog struct {
	Onsets    []int // elapsed seconds
	Errors    int   // sentinel tokens skipped
	Malformed int   // unparsable tokens skipped
}
