// cmd/sleeprecorder/analysis.go
package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tamzrod/sleep-recorder/internal/analyzer"
	"github.com/tamzrod/sleep-recorder/internal/config"
	"github.com/tamzrod/sleep-recorder/internal/recorder"
)

// analyzeLogs re-reads both raw logs and runs the analysis.
// Malformed tokens are logged, never fatal.
func analyzeLogs(rc config.RunConfig, log *zap.SugaredLogger) (analyzer.Analysis, error) {
	dl, err := recorder.ReadDistanceFile(rc.DistanceLogFile)
	if err != nil {
		return analyzer.Analysis{}, fmt.Errorf("analysis: %w", err)
	}
	sl, err := recorder.ReadSoundFile(rc.SoundLogFile)
	if err != nil {
		return analyzer.Analysis{}, fmt.Errorf("analysis: %w", err)
	}

	a := analyzer.Analyze(dl, sl, rc.RunLength, rc.CadenceSeconds())

	if a.DistanceMalformed > 0 || a.SoundMalformed > 0 {
		log.Warnw("malformed log tokens",
			"distance", a.DistanceMalformed,
			"sound", a.SoundMalformed,
		)
	}
	if a.Sound.Dropped > 0 {
		log.Warnw("sound onsets past end of run", "dropped", a.Sound.Dropped)
	}
	log.Infow("analysis done",
		"ticks", a.DistanceTicks,
		"movements", len(a.Motion),
		"sound_errors", a.SoundErrors,
	)
	return a, nil
}
