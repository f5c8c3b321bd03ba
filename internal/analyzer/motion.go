// internal/analyzer/motion.go
package analyzer

import (
	"github.com/tamzrod/sleep-recorder/internal/gateway"
	"github.com/tamzrod/sleep-recorder/internal/recorder"
)

// MotionThresholdCm is the smallest tick-to-tick change that is not movement.
const MotionThresholdCm = 8

// MotionEntry is one detected movement.
type MotionEntry struct {
	Tick           int // index into the distance log, >= 1
	ElapsedSeconds int // Tick * cadence
	Sensor         int // sensor with the larger change; 1 on a tie
	MagnitudeCm    int
}

func (e MotionEntry) Minute() int { return e.ElapsedSeconds / 60 }
func (e MotionEntry) Second() int { return e.ElapsedSeconds % 60 }

// AnalyzeMotion diffs consecutive ticks of both sensors and reports every
// tick where either moved more than MotionThresholdCm.
// A change touching a sentinel on either side counts as zero.
func AnalyzeMotion(pairs []recorder.DistancePair, periodSeconds int) []MotionEntry {
	var out []MotionEntry

	for j := 1; j < len(pairs); j++ {
		best, sensor := 0, 0
		for _, id := range gateway.Sensors {
			d := delta(pairs[j-1].Sensor(id), pairs[j].Sensor(id))
			// strict: sensor 1 keeps a tie
			if d > best {
				best, sensor = d, id
			}
		}

		if best > MotionThresholdCm {
			out = append(out, MotionEntry{
				Tick:           j,
				ElapsedSeconds: j * periodSeconds,
				Sensor:         sensor,
				MagnitudeCm:    best,
			})
		}
	}
	return out
}

func delta(prev, cur int) int {
	if prev < 0 || cur < 0 {
		return 0
	}
	if cur > prev {
		return cur - prev
	}
	return prev - cur
}
