// internal/gateway/gateway.go
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sensor ids. Both sensor families have exactly two members.
const (
	Sensor1 = 1
	Sensor2 = 2
)

// Sensors lists sensor ids in scan order.
var Sensors = [2]int{Sensor1, Sensor2}

// Measurement limits.
const (
	// MicrosPerCm converts echo round-trip time to distance (speed of sound, there and back).
	MicrosPerCm = 58

	// MaxDistanceCm is the first implausible distance.
	MaxDistanceCm = 1000
)

var (
	ErrInvalidSensor = errors.New("gateway: invalid sensor id")
	ErrEchoTimeout   = errors.New("gateway: echo timeout")
	ErrOutOfRange    = errors.New("gateway: distance out of range")
	ErrClosed        = errors.New("gateway: closed")
)

// Gateway abstracts the hardware the sampler reads.
// Both reads are blocking and fallible; callers map failures to sentinels.
type Gateway interface {
	ReadDistance(ctx context.Context, sensor int) (int, error) // cm
	ReadSoundActive(ctx context.Context, sensor int) (bool, error)
	Close() error
}

// CheckSensor validates a sensor id.
func CheckSensor(sensor int) error {
	if sensor != Sensor1 && sensor != Sensor2 {
		return fmt.Errorf("%w: %d", ErrInvalidSensor, sensor)
	}
	return nil
}

// DistanceFromEcho converts an echo pulse width to centimetres.
func DistanceFromEcho(pulse time.Duration) (int, error) {
	cm := int(pulse.Microseconds() / MicrosPerCm)
	return CheckDistance(cm)
}

// CheckDistance rejects implausible readings.
func CheckDistance(cm int) (int, error) {
	if cm < 0 || cm >= MaxDistanceCm {
		return 0, fmt.Errorf("%w: %d cm", ErrOutOfRange, cm)
	}
	return cm, nil
}

// MaxEchoPulse is the longest echo that still yields a plausible distance.
const MaxEchoPulse = time.Duration(MaxDistanceCm*MicrosPerCm) * time.Microsecond
