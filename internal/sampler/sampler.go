// internal/sampler/sampler.go
package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/tamzrod/sleep-recorder/internal/config"
	"github.com/tamzrod/sleep-recorder/internal/gateway"
	"github.com/tamzrod/sleep-recorder/internal/recorder"
	"github.com/tamzrod/sleep-recorder/internal/status"
)

// ErrSensorsUnavailable ends the presence gate when neither distance
// sensor can be read for too long.
var ErrSensorsUnavailable = errors.New("sampler: both distance sensors unavailable")

// Config is the runtime config the sampler needs.
type Config struct {
	CadenceSeconds int64 // distance tick and watchdog ping period
	RunSeconds     int64

	PresenceThresholdCm int
	PresenceInterval    time.Duration
	MaxPresenceFailures int
}

// NewConfig derives the sampler config. rc.WatchdogTimeout MUST be the
// timeout the device actually applied.
func NewConfig(rc config.RunConfig, p config.PresenceConfig) Config {
	cfg := Config{
		CadenceSeconds:      int64(rc.CadenceSeconds()),
		RunSeconds:          int64(rc.RunLength) * 60,
		PresenceThresholdCm: p.ThresholdCm,
		PresenceInterval:    time.Duration(p.IntervalMs) * time.Millisecond,
		MaxPresenceFailures: p.MaxFailures,
	}

	// the gate pings too; it must never wait longer than the cadence
	if limit := time.Duration(cfg.CadenceSeconds) * time.Second; cfg.PresenceInterval > limit {
		cfg.PresenceInterval = limit
	}
	return cfg
}

// Sampler drives the gateway, the recorder and the watchdog.
// Single goroutine of control; not safe for concurrent use.
type Sampler struct {
	cfg   Config
	gw    gateway.Gateway
	wd    Watchdog
	rec   recorder.Recorder
	clk   clock.Clock
	log   *zap.SugaredLogger
	obs   []Observer
	board *status.Board
}

// New creates a sampler with immutable config.
func New(
	cfg Config,
	gw gateway.Gateway,
	wd Watchdog,
	rec recorder.Recorder,
	clk clock.Clock,
	log *zap.SugaredLogger,
	obs ...Observer,
) (*Sampler, error) {
	if cfg.CadenceSeconds <= 0 {
		return nil, errors.New("sampler: cadence must be > 0")
	}
	if cfg.RunSeconds <= 0 {
		return nil, errors.New("sampler: run length must be > 0")
	}
	if gw == nil || wd == nil || rec == nil {
		return nil, errors.New("sampler: gateway, watchdog and recorder required")
	}
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Sampler{
		cfg:   cfg,
		gw:    gw,
		wd:    wd,
		rec:   rec,
		clk:   clk,
		log:   log,
		obs:   obs,
		board: status.NewBoard(),
	}, nil
}

// Health returns the per-channel health seen so far.
func (s *Sampler) Health() []status.Snapshot {
	return s.board.Snapshots(s.clk.Now())
}

// ---- observation fan-out ----

func (s *Sampler) observeRead(c status.Channel, err error) {
	s.board.Observe(c, s.clk.Now(), err)
	for _, o := range s.obs {
		o.ObserveRead(c, err)
	}
}

func (s *Sampler) ping() {
	err := s.wd.Ping()
	if err != nil {
		s.log.Errorw("watchdog ping failed", "error", err)
	} else {
		s.log.Debug("watchdog pinged")
	}
	for _, o := range s.obs {
		o.ObservePing(err)
	}
}

func (s *Sampler) observeOnset(sensor int) {
	for _, o := range s.obs {
		o.ObserveOnset(sensor)
	}
}

func (s *Sampler) observeTick() {
	for _, o := range s.obs {
		o.ObserveTick()
	}
}

// readDistance maps every failure to the distance sentinel.
func (s *Sampler) readDistance(ctx context.Context, sensor int) (int, error) {
	cm, err := s.gw.ReadDistance(ctx, sensor)
	s.observeRead(status.DistanceChannel(sensor), err)
	if err != nil {
		return recorder.DistanceSentinel, err
	}
	return cm, nil
}

// wait blocks for d on the sampler clock.
func (s *Sampler) wait(ctx context.Context, d time.Duration) error {
	t := s.clk.Timer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// errorf wraps fatal loop errors.
func errorf(format string, args ...any) error {
	return fmt.Errorf("sampler: "+format, args...)
}
