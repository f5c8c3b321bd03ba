// cmd/sleeprecorder/record.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tamzrod/sleep-recorder/internal/config"
	"github.com/tamzrod/sleep-recorder/internal/hardware"
	"github.com/tamzrod/sleep-recorder/internal/logging"
	"github.com/tamzrod/sleep-recorder/internal/metrics"
	"github.com/tamzrod/sleep-recorder/internal/recorder"
	"github.com/tamzrod/sleep-recorder/internal/report"
	"github.com/tamzrod/sleep-recorder/internal/sampler"
	"github.com/tamzrod/sleep-recorder/internal/status"
	"github.com/tamzrod/sleep-recorder/internal/watchdog"
)

// record runs one night: presence gate, sampling, analysis, report.
// Failing to open the config, an output file or the watchdog is fatal.
func record(ctx context.Context, opts options) (err error) {
	// --------------------
	// Run config + log
	// --------------------

	rc, err := loadRunConfig(opts.configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(logging.Options{
		Name:  programName,
		File:  rc.LogFile,
		Debug: opts.debug,
	})
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeLog()) }()

	log.Infow("config loaded",
		"path", opts.configPath,
		"watchdog_timeout", rc.WatchdogTimeout,
		"run_length_min", rc.RunLength,
		"distance_log", rc.DistanceLogFile,
		"sound_log", rc.SoundLogFile,
		"report", rc.ReportFile,
	)

	defer func() {
		if err != nil {
			log.Errorw("run failed", "error", err)
		}
	}()

	// --------------------
	// Hardware profile
	// --------------------

	hw, err := config.LoadHardware(opts.hardwarePath)
	if err != nil {
		return err
	}
	if err := config.Validate(hw); err != nil {
		return fmt.Errorf("hardware profile validation failed: %w", err)
	}
	config.Normalize(hw)

	// --------------------
	// Output files
	// --------------------

	rec, closeRec, err := recorder.Open(rc.DistanceLogFile, rc.SoundLogFile)
	if err != nil {
		return err
	}
	recClosed := false
	defer func() {
		if !recClosed {
			err = multierr.Append(err, closeRec())
		}
	}()

	reportFile, err := os.OpenFile(rc.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("report: open %s: %w", rc.ReportFile, err)
	}
	defer func() { err = multierr.Append(err, reportFile.Close()) }()

	log.Info("output files opened")

	// --------------------
	// Sensors
	// --------------------

	gw, closeGw, err := hardware.Build(hw)
	if err != nil {
		return fmt.Errorf("sensor gateway (%s): %w", hw.Backend, err)
	}
	defer func() { err = multierr.Append(err, closeGw()) }()

	log.Infow("sensors initialized", "backend", hw.Backend)

	// --------------------
	// Watchdog
	// --------------------

	wd, err := watchdog.Open(opts.watchdogDevice)
	if err != nil {
		return err
	}
	log.Infow("watchdog opened", "device", wd.Path())

	// every exit path stops sampling on purpose, so always disarm
	defer func() {
		if derr := wd.Disarm(); derr != nil && !errors.Is(derr, watchdog.ErrClosed) {
			err = multierr.Append(err, derr)
			return
		}
		log.Info("watchdog disarmed and closed")
	}()

	effective, err := wd.SetTimeout(rc.WatchdogTimeout)
	if err != nil {
		return err
	}
	if effective != rc.WatchdogTimeout {
		log.Warnw("watchdog timeout adjusted by driver", "requested", rc.WatchdogTimeout, "effective", effective)
	}
	rc.WatchdogTimeout = effective
	log.Infow("watchdog timeout set", "seconds", effective, "cadence_seconds", rc.CadenceSeconds())

	// --------------------
	// Sample
	// --------------------

	m := metrics.New()
	defer func() {
		if opts.metricsFile == "" {
			return
		}
		if merr := m.WriteTextfile(opts.metricsFile); merr != nil {
			log.Warnw("metrics not written", "error", merr)
		}
	}()

	s, err := sampler.New(sampler.NewConfig(rc, hw.Presence), gw, wd, rec, clock.New(), log, m)
	if err != nil {
		return err
	}

	if err := s.WaitForPresence(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted before presence was detected, nothing recorded")
			return nil
		}
		return err
	}

	res, err := s.Run(ctx)
	if err != nil {
		return err
	}
	m.SetDuration(res.Elapsed.Seconds())
	logHealth(log, res.Health)
	m.SetHealth(res.Health)

	// logs must be flushed and closed before they are re-read
	recClosed = true
	if err := closeRec(); err != nil {
		return err
	}

	// --------------------
	// Analyze + report
	// --------------------

	a, err := analyzeLogs(rc, log)
	if err != nil {
		return err
	}
	m.SetAnalysis(len(a.Motion), a.BusiestMinuteCount())

	w := report.Writer{Program: programName}
	if err := w.Write(reportFile, a); err != nil {
		return err
	}
	log.Infow("report made", "path", rc.ReportFile)

	return nil
}

func logHealth(log *zap.SugaredLogger, snaps []status.Snapshot) {
	for _, s := range snaps {
		if s.Health == status.HealthError {
			log.Warn(status.Encode(s))
			continue
		}
		log.Info(status.Encode(s))
	}
}
