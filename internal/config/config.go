// internal/config/config.go
package config

import (
	"fmt"
	"strings"
)

// ---- RECOGNIZED KEYS ----

const (
	KeyWatchdogTimeout = "WATCHDOG_TIMEOUT"
	KeyRunLength       = "RUN_LENGTH"
	KeyLogFile         = "LOG_FILE"
	KeyDistanceLogFile = "ULTRA_STAT_FILE"
	KeySoundLogFile    = "SOUND_STAT_FILE"
	KeyReportFile      = "REPORT_FILE"
)

// ---- DEFAULTS ----

const (
	DefaultConfigPath      = "/home/pi/sleep_config.cfg"
	DefaultWatchdogTimeout = 10
	DefaultRunLength       = 1
	DefaultLogFile         = "/home/pi/defaultLog.log"
	DefaultDistanceLogFile = "/home/pi/defaultUltra.txt"
	DefaultSoundLogFile    = "/home/pi/defaultSound.txt"
	DefaultReportFile      = "/home/pi/defaultRep.txt"
)

// RunConfig is produced once at startup and never mutated afterwards.
type RunConfig struct {
	WatchdogTimeout int // seconds
	RunLength       int // minutes

	LogFile         string
	DistanceLogFile string
	SoundLogFile    string
	ReportFile      string
}

// Default returns the configuration used when no source is available.
func Default() RunConfig {
	return RunConfig{
		WatchdogTimeout: DefaultWatchdogTimeout,
		RunLength:       DefaultRunLength,
		LogFile:         DefaultLogFile,
		DistanceLogFile: DefaultDistanceLogFile,
		SoundLogFile:    DefaultSoundLogFile,
		ReportFile:      DefaultReportFile,
	}
}

// CadenceSeconds is the liveness/distance period: one second short of the
// watchdog timeout, never below one second.
func (c RunConfig) CadenceSeconds() int {
	if c.WatchdogTimeout <= 2 {
		return 1
	}
	return c.WatchdogTimeout - 1
}

// String renders the config in the same KEY = VALUE format Parse accepts.
func (c RunConfig) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# watchdog timeout #\n%s = %d\n", KeyWatchdogTimeout, c.WatchdogTimeout)
	fmt.Fprintf(&b, "# log file name #\n%s = %s\n", KeyLogFile, c.LogFile)
	fmt.Fprintf(&b, "# stat file name #\n%s = %s\n", KeyDistanceLogFile, c.DistanceLogFile)
	fmt.Fprintf(&b, "# stat file name #\n%s = %s\n", KeySoundLogFile, c.SoundLogFile)
	fmt.Fprintf(&b, "# report file name #\n%s = %s\n", KeyReportFile, c.ReportFile)
	fmt.Fprintf(&b, "# run length in minutes #\n%s = %d\n", KeyRunLength, c.RunLength)
	return b.String()
}
