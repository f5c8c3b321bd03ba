// internal/status/snapshot.go
package status

// Snapshot is the health of one channel at a point in time.
// It contains no logic.
type Snapshot struct {
	Channel        Channel
	Health         uint16
	Reads          uint64
	Failures       uint64
	LastError      string
	SecondsInError uint16
}
