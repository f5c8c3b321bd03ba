// internal/config/parse_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleConfig = `#sample config file#

#watchdog timeout#
WATCHDOG_TIMEOUT = 6

#log file name#
LOG_FILE = /home/pi/sleep_log.log

#stat file name#
ULTRA_STAT_FILE = /home/pi/sleep_ultra_stats.txt

#stat file name#
SOUND_STAT_FILE = /home/pi/sleep_sound_stats.txt

#report file name#
REPORT_FILE = /home/pi/sleep_report.txt

#how long program records data for in minutes#
RUN_LENGTH = 480
`

func TestParse_NilSourceIsDefault(t *testing.T) {
	if diff := cmp.Diff(Default(), Parse(nil)); diff != "" {
		t.Fatalf("Parse(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptySourceIsDefault(t *testing.T) {
	if diff := cmp.Diff(Default(), Parse(strings.NewReader(""))); diff != "" {
		t.Fatalf("Parse(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SampleFile(t *testing.T) {
	want := RunConfig{
		WatchdogTimeout: 6,
		RunLength:       480,
		LogFile:         "/home/pi/sleep_log.log",
		DistanceLogFile: "/home/pi/sleep_ultra_stats.txt",
		SoundLogFile:    "/home/pi/sleep_sound_stats.txt",
		ReportFile:      "/home/pi/sleep_report.txt",
	}
	got := Parse(strings.NewReader(sampleConfig))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DefaultsRoundTrip(t *testing.T) {
	def := Default()
	got := Parse(strings.NewReader(def.String()))
	if diff := cmp.Diff(def, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CustomRoundTrip(t *testing.T) {
	cfg := RunConfig{
		WatchdogTimeout: 14,
		RunLength:       600,
		LogFile:         "/var/log/sleep.log",
		DistanceLogFile: "/data/ultra-1.txt",
		SoundLogFile:    "/data/sound_1.txt",
		ReportFile:      "./report.txt",
	}
	got := Parse(strings.NewReader(cfg.String()))
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PartialFileKeepsDefaults(t *testing.T) {
	got := Parse(strings.NewReader("RUN_LENGTH = 30\n"))

	want := Default()
	want.RunLength = 30
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MalformedInputs(t *testing.T) {
	cases := []struct {
		name  string
		input string
		check func(RunConfig) bool
	}{
		{
			name:  "trailing garbage on number",
			input: "WATCHDOG_TIMEOUT = 12abc\n",
			check: func(c RunConfig) bool { return c.WatchdogTimeout == DefaultWatchdogTimeout },
		},
		{
			name:  "overflowing number",
			input: "RUN_LENGTH = 99999999999999999999\n",
			check: func(c RunConfig) bool { return c.RunLength == DefaultRunLength },
		},
		{
			name:  "zero means default",
			input: "WATCHDOG_TIMEOUT = 0\n",
			check: func(c RunConfig) bool { return c.WatchdogTimeout == DefaultWatchdogTimeout },
		},
		{
			name:  "unknown key ignored",
			input: "SPEED = 5\nFAVOURITE_FILE = /tmp/x\n",
			check: func(c RunConfig) bool { return c == Default() },
		},
		{
			name:  "path for numeric key ignored",
			input: "RUN_LENGTH = /tmp/x\n",
			check: func(c RunConfig) bool { return c.RunLength == DefaultRunLength },
		},
		{
			name:  "number for path key ignored",
			input: "LOG_FILE = 42\n",
			check: func(c RunConfig) bool { return c.LogFile == DefaultLogFile },
		},
		{
			name:  "missing equals",
			input: "WATCHDOG_TIMEOUT 7\n",
			check: func(c RunConfig) bool { return c.WatchdogTimeout == DefaultWatchdogTimeout },
		},
		{
			name:  "stray punctuation",
			input: "!!! ??\nWATCHDOG_TIMEOUT! = 7\n",
			check: func(c RunConfig) bool { return c == Default() },
		},
		{
			name:  "later broken value keeps earlier good one",
			input: "RUN_LENGTH = 20\nRUN_LENGTH = 3x\n",
			check: func(c RunConfig) bool { return c.RunLength == 20 },
		},
		{
			name:  "value on next line is not bound",
			input: "LOG_FILE =\n/tmp/orphan.log\n",
			check: func(c RunConfig) bool { return c.LogFile == DefaultLogFile },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(strings.NewReader(tc.input))
			if !tc.check(got) {
				t.Fatalf("unexpected config: %+v", got)
			}
		})
	}
}

func TestParse_Comments(t *testing.T) {
	input := "#inline# WATCHDOG_TIMEOUT = 7 # trailing comment\n" +
		"LOG_FILE = /tmp/a.log#comment right after path\n" +
		"# RUN_LENGTH = 99\n"

	got := Parse(strings.NewReader(input))
	if got.WatchdogTimeout != 7 {
		t.Fatalf("timeout: got=%d want=7", got.WatchdogTimeout)
	}
	if got.LogFile != "/tmp/a.log" {
		t.Fatalf("log file: got=%q want=/tmp/a.log", got.LogFile)
	}
	if got.RunLength != DefaultRunLength {
		t.Fatalf("commented run length must be ignored, got=%d", got.RunLength)
	}
}

func TestParse_NoSpacesAroundEquals(t *testing.T) {
	got := Parse(strings.NewReader("WATCHDOG_TIMEOUT=8\nREPORT_FILE=/tmp/r.txt\n"))
	if got.WatchdogTimeout != 8 || got.ReportFile != "/tmp/r.txt" {
		t.Fatalf("unexpected config: %+v", got)
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	cfg, err := ParseFile(filepath.Join(t.TempDir(), "nope.cfg"))
	if err == nil {
		t.Fatalf("expected open error, got nil")
	}
	if cfg != Default() {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sleep_config.cfg")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile err=%v", err)
	}
	if cfg.RunLength != 480 {
		t.Fatalf("run length: got=%d want=480", cfg.RunLength)
	}
}

func TestCadenceSeconds(t *testing.T) {
	cfg := Default()
	if got := cfg.CadenceSeconds(); got != 9 {
		t.Fatalf("cadence: got=%d want=9", got)
	}
	cfg.WatchdogTimeout = 1
	if got := cfg.CadenceSeconds(); got != 1 {
		t.Fatalf("cadence floor: got=%d want=1", got)
	}
	cfg.WatchdogTimeout = 3
	if got := cfg.CadenceSeconds(); got != 2 {
		t.Fatalf("cadence: got=%d want=2", got)
	}
}
