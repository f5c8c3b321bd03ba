// internal/hardware/builder.go
package hardware

import (
	"fmt"
	"time"

	"github.com/tamzrod/sleep-recorder/internal/config"
	"github.com/tamzrod/sleep-recorder/internal/gateway"
	"github.com/tamzrod/sleep-recorder/internal/gateway/gpio"
	"github.com/tamzrod/sleep-recorder/internal/gateway/modbus"
)

// Build constructs the sensor gateway selected by the hardware profile.
// The profile MUST be validated and normalized.
// One attempt, fail fast at startup.
func Build(hw *config.Hardware) (gateway.Gateway, func() error, error) {
	if hw == nil {
		return nil, nil, fmt.Errorf("hardware: nil profile")
	}

	var (
		g   gateway.Gateway
		err error
	)

	switch hw.Backend {
	case config.BackendGPIO:
		g, err = buildGPIO(hw.GPIO)
	case config.BackendModbus:
		g, err = buildModbus(hw.Modbus)
	default:
		return nil, nil, fmt.Errorf("hardware: unknown backend %q", hw.Backend)
	}
	if err != nil {
		return nil, nil, err
	}

	return g, g.Close, nil
}

func buildGPIO(c config.GPIOConfig) (gateway.Gateway, error) {
	m, err := PinMap(c)
	if err != nil {
		return nil, err
	}
	return gpio.Open(
		m,
		time.Duration(c.TriggerPulseUs)*time.Microsecond,
		time.Duration(c.EchoTimeoutMs)*time.Millisecond,
	)
}

func buildModbus(c config.ModbusConfig) (gateway.Gateway, error) {
	mc, err := ModbusConfig(c)
	if err != nil {
		return nil, err
	}
	return modbus.Dial(mc)
}

// ---- geometry mapping ----

// PinMap maps the profile's pin lists onto the two sensor slots.
func PinMap(c config.GPIOConfig) (gpio.PinMap, error) {
	var m gpio.PinMap
	if len(c.Distance) != 2 || len(c.Sound) != 2 {
		return m, fmt.Errorf("hardware: gpio profile must name 2 distance and 2 sound sensors")
	}
	for i := 0; i < 2; i++ {
		m.Trigger[i] = c.Distance[i].Trigger
		m.Echo[i] = c.Distance[i].Echo
		m.Sound[i] = c.Sound[i]
	}
	return m, nil
}

// ModbusConfig maps the profile's register lists onto the two sensor slots.
func ModbusConfig(c config.ModbusConfig) (modbus.Config, error) {
	mc := modbus.Config{
		Endpoint: c.Endpoint,
		UnitID:   c.UnitID,
		Timeout:  time.Duration(c.TimeoutMs) * time.Millisecond,
	}
	if len(c.DistanceRegisters) != 2 || len(c.SoundInputs) != 2 {
		return mc, fmt.Errorf("hardware: modbus profile must name 2 distance registers and 2 sound inputs")
	}
	copy(mc.DistanceRegisters[:], c.DistanceRegisters)
	copy(mc.SoundInputs[:], c.SoundInputs)
	return mc, nil
}
