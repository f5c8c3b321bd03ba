// internal/recorder/builder.go
package recorder

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
)

// Open creates (truncating) the distance and sound logs for a new run.
// The returned closer closes both files.
func Open(distPath, soundPath string) (Recorder, func() error, error) {
	dist, err := os.Create(distPath)
	if err != nil {
		return nil, nil, fmt.Errorf("recorder: open distance log: %w", err)
	}

	sound, err := os.Create(soundPath)
	if err != nil {
		_ = dist.Close()
		return nil, nil, fmt.Errorf("recorder: open sound log: %w", err)
	}

	closeAll := func() error {
		return multierr.Combine(dist.Close(), sound.Close())
	}

	return New(dist, sound), closeAll, nil
}
