// internal/hardware/builder_test.go
package hardware

import (
	"testing"
	"time"

	"github.com/tamzrod/sleep-recorder/internal/config"
)

func TestPinMap_Defaults(t *testing.T) {
	hw := config.DefaultHardware()

	m, err := PinMap(hw.GPIO)
	if err != nil {
		t.Fatalf("PinMap err=%v", err)
	}
	if m.Trigger[0] != "GPIO17" || m.Echo[0] != "GPIO14" {
		t.Fatalf("sensor 1 pins: got trigger=%s echo=%s", m.Trigger[0], m.Echo[0])
	}
	if m.Trigger[1] != "GPIO18" || m.Echo[1] != "GPIO15" {
		t.Fatalf("sensor 2 pins: got trigger=%s echo=%s", m.Trigger[1], m.Echo[1])
	}
	if m.Sound != [2]string{"GPIO23", "GPIO24"} {
		t.Fatalf("sound pins: got=%v", m.Sound)
	}
}

func TestPinMap_Unnormalized(t *testing.T) {
	if _, err := PinMap(config.GPIOConfig{}); err == nil {
		t.Fatalf("expected error for empty pin lists, got nil")
	}
}

func TestModbusConfig(t *testing.T) {
	hw := &config.Hardware{
		Backend: config.BackendModbus,
		Modbus: config.ModbusConfig{
			Endpoint:          "10.0.0.5:502",
			UnitID:            7,
			TimeoutMs:         250,
			DistanceRegisters: []uint16{20, 21},
		},
	}
	config.Normalize(hw)

	mc, err := ModbusConfig(hw.Modbus)
	if err != nil {
		t.Fatalf("ModbusConfig err=%v", err)
	}
	if mc.UnitID != 7 || mc.Timeout != 250*time.Millisecond {
		t.Fatalf("unexpected transport: %+v", mc)
	}
	if mc.DistanceRegisters != [2]uint16{20, 21} || mc.SoundInputs != [2]uint16{0, 1} {
		t.Fatalf("unexpected geometry: %+v", mc)
	}
}

func TestBuild_UnknownBackend(t *testing.T) {
	if _, _, err := Build(&config.Hardware{Backend: "spi"}); err == nil {
		t.Fatalf("expected unknown backend error, got nil")
	}
}

func TestBuild_ModbusUnreachable(t *testing.T) {
	hw := &config.Hardware{
		Backend: config.BackendModbus,
		Modbus:  config.ModbusConfig{Endpoint: "127.0.0.1:1", TimeoutMs: 100},
	}
	config.Normalize(hw)

	if _, _, err := Build(hw); err == nil {
		t.Fatalf("expected connect error, got nil")
	}
}
