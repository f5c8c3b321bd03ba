// internal/status/encode.go
package status

import (
	"strconv"
	"strings"
)

// Encode renders a snapshot as one key=value log line.
// No IO. No side effects.
func Encode(s Snapshot) string {
	var b strings.Builder

	b.WriteString(s.Channel.String())
	b.WriteString(" health=")
	b.WriteString(HealthName(s.Health))
	b.WriteString(" reads=")
	b.WriteString(strconv.FormatUint(s.Reads, 10))
	b.WriteString(" failures=")
	b.WriteString(strconv.FormatUint(s.Failures, 10))

	if s.Health == HealthError {
		b.WriteString(" seconds_in_error=")
		b.WriteString(strconv.Itoa(int(s.SecondsInError)))
	}
	if s.LastError != "" {
		b.WriteString(" last_error=")
		b.WriteString(strconv.Quote(s.LastError))
	}
	return b.String()
}
