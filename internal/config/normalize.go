// internal/config/normalize.go
package config

// Hardware defaults.
const (
	DefaultTriggerPulseUs = 10
	DefaultEchoTimeoutMs  = 100

	DefaultModbusTimeoutMs = 1000

	DefaultPresenceThresholdCm = 60
	DefaultPresenceIntervalMs  = 2000
	DefaultPresenceMaxFailures = 30
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(hw *Hardware) {
	if hw == nil {
		return
	}

	if hw.Backend == "" {
		hw.Backend = BackendGPIO
	}

	// ------------------------------------------------------------
	// GPIO: stock Raspberry Pi wiring
	// ------------------------------------------------------------

	g := &hw.GPIO
	if len(g.Distance) == 0 {
		g.Distance = []DistancePins{
			{Trigger: "GPIO17", Echo: "GPIO14"},
			{Trigger: "GPIO18", Echo: "GPIO15"},
		}
	}
	if len(g.Sound) == 0 {
		g.Sound = []string{"GPIO23", "GPIO24"}
	}
	if g.TriggerPulseUs == 0 {
		g.TriggerPulseUs = DefaultTriggerPulseUs
	}
	if g.EchoTimeoutMs == 0 {
		g.EchoTimeoutMs = DefaultEchoTimeoutMs
	}

	// ------------------------------------------------------------
	// MODBUS: registers 0/1, discrete inputs 0/1
	// ------------------------------------------------------------

	m := &hw.Modbus
	if len(m.DistanceRegisters) == 0 {
		m.DistanceRegisters = []uint16{0, 1}
	}
	if len(m.SoundInputs) == 0 {
		m.SoundInputs = []uint16{0, 1}
	}
	if m.TimeoutMs == 0 {
		m.TimeoutMs = DefaultModbusTimeoutMs
	}
	if m.UnitID == 0 {
		m.UnitID = 1
	}

	// ------------------------------------------------------------
	// PRESENCE GATE
	// ------------------------------------------------------------

	p := &hw.Presence
	if p.ThresholdCm == 0 {
		p.ThresholdCm = DefaultPresenceThresholdCm
	}
	if p.IntervalMs == 0 {
		p.IntervalMs = DefaultPresenceIntervalMs
	}
	if p.MaxFailures == 0 {
		p.MaxFailures = DefaultPresenceMaxFailures
	}
}
