// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks hardware profile correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(hw *Hardware) error {
	if hw == nil {
		return fmt.Errorf("hardware profile: nil")
	}

	switch hw.Backend {
	case "", BackendGPIO, BackendModbus:
	default:
		return fmt.Errorf("hardware profile: unknown backend %q", hw.Backend)
	}

	// ------------------------------------------------------------
	// GPIO PIN MAP VALIDATION
	// ------------------------------------------------------------

	g := hw.GPIO

	if n := len(g.Distance); n != 0 && n != 2 {
		return fmt.Errorf("gpio: distance must list exactly 2 sensors, got %d", n)
	}
	if n := len(g.Sound); n != 0 && n != 2 {
		return fmt.Errorf("gpio: sound must list exactly 2 sensors, got %d", n)
	}
	if g.TriggerPulseUs < 0 {
		return fmt.Errorf("gpio: trigger_pulse_us must be >= 0")
	}
	if g.EchoTimeoutMs < 0 {
		return fmt.Errorf("gpio: echo_timeout_ms must be >= 0")
	}

	// key = pin name
	pinOwner := make(map[string]string)
	claim := func(pin, owner string) error {
		if pin == "" {
			return fmt.Errorf("gpio: %s pin is empty", owner)
		}
		if prev, exists := pinOwner[pin]; exists {
			return fmt.Errorf("gpio: pin %s used by both %s and %s", pin, prev, owner)
		}
		pinOwner[pin] = owner
		return nil
	}

	for i, d := range g.Distance {
		if err := claim(d.Trigger, fmt.Sprintf("distance[%d].trigger", i+1)); err != nil {
			return err
		}
		if err := claim(d.Echo, fmt.Sprintf("distance[%d].echo", i+1)); err != nil {
			return err
		}
	}
	for i, s := range g.Sound {
		if err := claim(s, fmt.Sprintf("sound[%d]", i+1)); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// MODBUS GEOMETRY VALIDATION
	// ------------------------------------------------------------

	m := hw.Modbus

	if hw.Backend == BackendModbus && m.Endpoint == "" {
		return fmt.Errorf("modbus: endpoint required")
	}
	if n := len(m.DistanceRegisters); n != 0 && n != 2 {
		return fmt.Errorf("modbus: distance_registers must list exactly 2 addresses, got %d", n)
	}
	if n := len(m.SoundInputs); n != 0 && n != 2 {
		return fmt.Errorf("modbus: sound_inputs must list exactly 2 addresses, got %d", n)
	}
	if len(m.DistanceRegisters) == 2 && m.DistanceRegisters[0] == m.DistanceRegisters[1] {
		return fmt.Errorf("modbus: distance registers overlap at %d", m.DistanceRegisters[0])
	}
	if len(m.SoundInputs) == 2 && m.SoundInputs[0] == m.SoundInputs[1] {
		return fmt.Errorf("modbus: sound inputs overlap at %d", m.SoundInputs[0])
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("modbus: timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// PRESENCE GATE
	// ------------------------------------------------------------

	p := hw.Presence
	if p.ThresholdCm < 0 || p.IntervalMs < 0 || p.MaxFailures < 0 {
		return fmt.Errorf("presence: values must be >= 0")
	}

	return nil
}
