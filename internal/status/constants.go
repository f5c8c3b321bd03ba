// internal/status/constants.go
package status

// ---- CHANNELS ----

// Channel identifies one physical sensor.
type Channel int

const (
	Distance1 Channel = iota
	Distance2
	Sound1
	Sound2

	NumChannels
)

var channelNames = [NumChannels]string{
	Distance1: "distance1",
	Distance2: "distance2",
	Sound1:    "sound1",
	Sound2:    "sound2",
}

func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return "unknown"
	}
	return channelNames[c]
}

// DistanceChannel maps sensor id 1|2 to its channel.
func DistanceChannel(sensor int) Channel { return Distance1 + Channel(sensor-1) }

// SoundChannel maps sensor id 1|2 to its channel.
func SoundChannel(sensor int) Channel { return Sound1 + Channel(sensor-1) }

// ---- HEALTH CODES ----

// HealthUnknown represents a sensor that was never read.
const HealthUnknown uint16 = 0

// HealthOK represents a sensor whose last read succeeded.
const HealthOK uint16 = 1

// HealthError represents a sensor whose last read failed.
const HealthError uint16 = 2

// HealthName returns a short label for a health code.
func HealthName(h uint16) string {
	switch h {
	case HealthOK:
		return "OK"
	case HealthError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ---- LIMITS ----

// MaxSecondsInError is where SecondsInError saturates.
const MaxSecondsInError = 65535
