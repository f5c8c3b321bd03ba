// internal/sampler/presence.go
package sampler

import (
	"context"
	"fmt"

	"github.com/tamzrod/sleep-recorder/internal/gateway"
)

// WaitForPresence blocks until someone is within the threshold of either
// distance sensor. Every interval it pings the watchdog and reads both
// sensors. Attempts on which both sensors fail are counted; after
// MaxPresenceFailures in a row the gate gives up with ErrSensorsUnavailable.
func (s *Sampler) WaitForPresence(ctx context.Context) error {
	s.log.Infow("waiting for presence",
		"threshold_cm", s.cfg.PresenceThresholdCm,
		"interval", s.cfg.PresenceInterval,
	)

	failures := 0
	for {
		if err := s.wait(ctx, s.cfg.PresenceInterval); err != nil {
			return err
		}
		s.ping()

		seen := false
		bothFailed := true
		for _, id := range gateway.Sensors {
			cm, err := s.readDistance(ctx, id)
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if err != nil {
				s.log.Debugw("presence read failed", "sensor", id, "error", err)
				continue
			}
			bothFailed = false
			if cm <= s.cfg.PresenceThresholdCm {
				seen = true
			}
		}

		if seen {
			s.log.Info("presence detected")
			return nil
		}

		if !bothFailed {
			failures = 0
			continue
		}

		failures++
		s.log.Warnw("no distance sensor answered", "attempt", failures, "max", s.cfg.MaxPresenceFailures)
		if s.cfg.MaxPresenceFailures > 0 && failures >= s.cfg.MaxPresenceFailures {
			return fmt.Errorf("%w: %d attempts in a row", ErrSensorsUnavailable, failures)
		}
	}
}
