// internal/config/hardware.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Hardware is the optional board profile. It selects the sensor gateway
// backend and maps the two distance and two sound sensors onto it.
type Hardware struct {
	Backend  string         `yaml:"backend"` // "gpio" (default) or "modbus"
	GPIO     GPIOConfig     `yaml:"gpio"`
	Modbus   ModbusConfig   `yaml:"modbus"`
	Presence PresenceConfig `yaml:"presence"`
}

const (
	BackendGPIO   = "gpio"
	BackendModbus = "modbus"
)

// ---- GPIO ----

type GPIOConfig struct {
	Distance []DistancePins `yaml:"distance"` // index 0 = sensor 1
	Sound    []string       `yaml:"sound"`    // index 0 = sensor 1

	TriggerPulseUs int `yaml:"trigger_pulse_us"`
	EchoTimeoutMs  int `yaml:"echo_timeout_ms"`
}

type DistancePins struct {
	Trigger string `yaml:"trigger"`
	Echo    string `yaml:"echo"`
}

// ---- MODBUS ----

type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	DistanceRegisters []uint16 `yaml:"distance_registers"` // input registers, cm
	SoundInputs       []uint16 `yaml:"sound_inputs"`       // discrete inputs
}

// ---- PRESENCE GATE ----

type PresenceConfig struct {
	ThresholdCm int `yaml:"threshold_cm"`
	IntervalMs  int `yaml:"interval_ms"`
	MaxFailures int `yaml:"max_failures"`
}

// DefaultHardware is the Raspberry Pi wiring the recorder was built for:
// trigger BCM17/18, echo BCM14/15, sound BCM23/24.
func DefaultHardware() *Hardware {
	hw := &Hardware{}
	Normalize(hw)
	return hw
}

// LoadHardware reads a YAML board profile. An empty path yields the
// default profile. The result is not validated.
func LoadHardware(path string) (*Hardware, error) {
	if path == "" {
		return &Hardware{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hardware profile: %w", err)
	}

	var hw Hardware
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&hw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("hardware profile %s: %w", path, err)
	}
	return &hw, nil
}
