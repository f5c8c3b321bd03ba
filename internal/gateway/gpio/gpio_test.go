// internal/gateway/gpio/gpio_test.go
package gpio

import (
	"context"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/tamzrod/sleep-recorder/internal/gateway"
)

type testPins struct {
	trig  [2]*gpiotest.Pin
	echo  [2]*gpiotest.Pin
	sound [2]*gpiotest.Pin
}

func newTestGateway(t *testing.T) (*Gateway, *testPins) {
	t.Helper()

	tp := &testPins{}
	cfg := Config{
		TriggerPulse: 10 * time.Microsecond,
		EchoTimeout:  5 * time.Millisecond,
	}
	for i := 0; i < 2; i++ {
		tp.trig[i] = &gpiotest.Pin{N: "TRIG", Num: 17 + i}
		tp.echo[i] = &gpiotest.Pin{N: "ECHO", Num: 14 + i}
		tp.sound[i] = &gpiotest.Pin{N: "SOUND", Num: 23 + i}
		cfg.Distance[i] = DistancePins{Trigger: tp.trig[i], Echo: tp.echo[i]}
		cfg.Sound[i] = tp.sound[i]
	}

	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	return g, tp
}

func TestNew_DrivesTriggersLow(t *testing.T) {
	_, tp := newTestGateway(t)
	for i, p := range tp.trig {
		if p.L != gpio.Low {
			t.Fatalf("trigger %d not low after New", i+1)
		}
	}
}

func TestNew_MissingPin(t *testing.T) {
	cfg := Config{EchoTimeout: time.Millisecond}
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected missing pin error, got nil")
	}
}

func TestReadSoundActive(t *testing.T) {
	g, tp := newTestGateway(t)
	tp.sound[0].L = gpio.High
	tp.sound[1].L = gpio.Low

	ctx := context.Background()
	on, err := g.ReadSoundActive(ctx, gateway.Sensor1)
	if err != nil || !on {
		t.Fatalf("sensor 1: got=%v err=%v, want active", on, err)
	}
	on, err = g.ReadSoundActive(ctx, gateway.Sensor2)
	if err != nil || on {
		t.Fatalf("sensor 2: got=%v err=%v, want quiet", on, err)
	}
}

func TestReadDistance_NoEchoTimesOut(t *testing.T) {
	g, tp := newTestGateway(t)
	tp.echo[0].L = gpio.Low

	start := time.Now()
	_, err := g.ReadDistance(context.Background(), gateway.Sensor1)
	if !errors.Is(err, gateway.ErrEchoTimeout) {
		t.Fatalf("expected ErrEchoTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("echo wait not bounded: took %v", elapsed)
	}
	if tp.trig[0].L != gpio.Low {
		t.Fatalf("trigger left high")
	}
}

func TestReadDistance_EchoStuckHigh(t *testing.T) {
	g, tp := newTestGateway(t)
	tp.echo[1].L = gpio.High

	_, err := g.ReadDistance(context.Background(), gateway.Sensor2)
	if !errors.Is(err, gateway.ErrEchoTimeout) {
		t.Fatalf("expected ErrEchoTimeout, got %v", err)
	}
}

func TestReadDistance_CanceledContext(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.ReadDistance(ctx, gateway.Sensor1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRead_InvalidSensor(t *testing.T) {
	g, _ := newTestGateway(t)
	if _, err := g.ReadDistance(context.Background(), 3); !errors.Is(err, gateway.ErrInvalidSensor) {
		t.Fatalf("expected ErrInvalidSensor, got %v", err)
	}
	if _, err := g.ReadSoundActive(context.Background(), 0); !errors.Is(err, gateway.ErrInvalidSensor) {
		t.Fatalf("expected ErrInvalidSensor, got %v", err)
	}
}

func TestClose(t *testing.T) {
	g, _ := newTestGateway(t)
	if err := g.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if _, err := g.ReadSoundActive(context.Background(), gateway.Sensor1); !errors.Is(err, gateway.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("second Close err=%v", err)
	}
}
