// internal/report/report.go
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/tamzrod/sleep-recorder/internal/analyzer"
)

// TimeLayout stamps the report header lines.
const TimeLayout = "01-02-2006  15:04:05."

const (
	headerTitle = "THIS DAY'S REPORT:"
	headerRule  = "________________________________________________"

	soundSection  = "Report on sound data:"
	motionSection = "Report on ultrasonic data:"

	soundLabel  = "Greatest sound activity at"
	motionLabel = "Movement at"
)

// Writer formats an analysis as the nightly report.
type Writer struct {
	Program string
	Clock   clock.Clock // nil means wall clock
}

func (w Writer) now() time.Time {
	if w.Clock == nil {
		return time.Now()
	}
	return w.Clock.Now()
}

// Write emits one day's report. Sections are always present, possibly empty.
func (w Writer) Write(out io.Writer, a analyzer.Analysis) error {
	bw := bufio.NewWriter(out)
	ts := w.now().Format(TimeLayout)

	w.line(bw, ts, headerTitle+"\n"+headerRule+"\n")

	w.line(bw, ts, soundSection+"\n")
	for _, m := range a.Sound.Top {
		entry(bw, soundLabel, m, 0, a.Sound.ByMinute[m])
	}

	w.line(bw, ts, motionSection+"\n")
	for _, e := range a.Motion {
		entry(bw, motionLabel, e.Minute(), e.Second(), e.MagnitudeCm)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

// AppendFile appends the report to path, creating it if needed.
// Successive nights accumulate in one file.
func (w Writer) AppendFile(path string, a analyzer.Analysis) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("report: open %s: %w", path, err)
	}
	if err := w.Write(f, a); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}
	return nil
}

// ---- formatting ----

func (w Writer) line(bw *bufio.Writer, ts, msg string) {
	fmt.Fprintf(bw, "%s : %s : %s\n", ts, w.Program, msg)
}

func entry(bw *bufio.Writer, label string, minute, second, value int) {
	fmt.Fprintf(bw, "%s: %d:%d - %d\n", label, minute, second, value)
}
