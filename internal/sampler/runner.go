// internal/sampler/runner.go
package sampler

import (
	"context"
	"time"

	"github.com/tamzrod/sleep-recorder/internal/gateway"
	"github.com/tamzrod/sleep-recorder/internal/recorder"
	"github.com/tamzrod/sleep-recorder/internal/status"
)

// Run samples until RunSeconds have elapsed or ctx is done.
// Busy loop: sound sensors are read on every iteration; distance sensors
// and the watchdog once per cadence second.
// Sensor failures become sentinels; only recorder failures are fatal.
func (s *Sampler) Run(ctx context.Context) (Result, error) {
	st := newRunState(s.clk.Now())

	s.log.Infow("collection started",
		"run_seconds", s.cfg.RunSeconds,
		"cadence_seconds", s.cfg.CadenceSeconds,
	)

	res := Result{Start: st.Start}
	finish := func() Result {
		res.Elapsed = s.clk.Since(st.Start)
		res.Ticks = st.Ticks
		res.Health = s.Health()
		return res
	}

	for {
		if ctx.Err() != nil {
			res.Canceled = true
			s.log.Warnw("collection interrupted", "elapsed", s.clk.Since(st.Start).Truncate(time.Second))
			return finish(), nil
		}

		elapsed := int64(s.clk.Since(st.Start) / time.Second)
		if elapsed >= s.cfg.RunSeconds {
			break
		}

		// ---- distance + liveness ----
		if elapsed%s.cfg.CadenceSeconds == 0 && elapsed != st.LastTick {
			st.LastTick = elapsed
			if err := s.tick(ctx, &st, &res); err != nil {
				return finish(), err
			}
		}

		// ---- sound ----
		for _, id := range gateway.Sensors {
			if err := s.sound(ctx, &st, &res, id); err != nil {
				return finish(), err
			}
		}
	}

	s.log.Infow("collection complete", "ticks", st.Ticks, "onsets", res.Onsets)
	return finish(), nil
}

func (s *Sampler) tick(ctx context.Context, st *RunState, res *Result) error {
	s.ping()

	var pair recorder.DistancePair
	for _, id := range gateway.Sensors {
		cm, err := s.readDistance(ctx, id)
		if err != nil && ctx.Err() == nil {
			res.DistanceFailures++
			s.log.Warnw("distance read failed", "sensor", id, "tick", st.Ticks, "error", err)
		}
		if id == gateway.Sensor1 {
			pair.S1 = cm
		} else {
			pair.S2 = cm
		}
	}

	if err := s.rec.AppendDistance(pair); err != nil {
		return errorf("tick %d: %w", st.Ticks, err)
	}

	st.Ticks++
	s.observeTick()
	return nil
}

func (s *Sampler) sound(ctx context.Context, st *RunState, res *Result, sensor int) error {
	active, err := s.gw.ReadSoundActive(ctx, sensor)
	s.observeRead(status.SoundChannel(sensor), err)

	sec := s.clk.Now().Unix()
	i := sensor - 1

	if err != nil {
		if ctx.Err() != nil || st.LastSoundError[i] == sec {
			return nil
		}
		st.LastSoundError[i] = sec
		res.SoundFailures++
		s.log.Warnw("sound read failed", "sensor", sensor, "error", err)
		if err := s.rec.AppendSound(recorder.SoundSentinel); err != nil {
			return errorf("sound sensor %d: %w", sensor, err)
		}
		return nil
	}

	if !active || st.LastOnset[i] == sec {
		return nil
	}

	st.LastOnset[i] = sec
	if err := s.rec.AppendSound(int(sec - st.StartSecond)); err != nil {
		return errorf("sound sensor %d: %w", sensor, err)
	}
	res.Onsets[i]++
	s.observeOnset(sensor)
	return nil
}
