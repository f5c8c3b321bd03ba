// internal/analyzer/analyzer.go
package analyzer

import (
	"github.com/tamzrod/sleep-recorder/internal/recorder"
)

// Analysis is everything the report is built from.
type Analysis struct {
	Motion []MotionEntry
	Sound  SoundReport

	// input quality, for the run log
	DistanceTicks     int
	DistanceMalformed int
	SoundErrors       int
	SoundMalformed    int
}

// Analyze runs both passes over the parsed logs.
// Empty logs give empty sections, never an error.
func Analyze(dl recorder.DistanceLog, sl recorder.SoundLog, runMinutes, periodSeconds int) Analysis {
	return Analysis{
		Motion:            AnalyzeMotion(dl.Pairs, periodSeconds),
		Sound:             AnalyzeSound(sl.Onsets, runMinutes),
		DistanceTicks:     len(dl.Pairs),
		DistanceMalformed: dl.Malformed,
		SoundErrors:       sl.Errors,
		SoundMalformed:    sl.Malformed,
	}
}

// BusiestMinuteCount is the highest per-minute onset count.
func (a Analysis) BusiestMinuteCount() int {
	best := 0
	for _, n := range a.Sound.ByMinute {
		if n > best {
			best = n
		}
	}
	return best
}
