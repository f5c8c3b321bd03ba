// internal/gateway/gpio/gpio.go
package gpio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/tamzrod/sleep-recorder/internal/gateway"
)

// DistancePins is one trigger/echo ultrasonic sensor.
type DistancePins struct {
	Trigger gpio.PinOut
	Echo    gpio.PinIn
}

// Config wires already-resolved pins. Index 0 is sensor 1.
type Config struct {
	Distance [2]DistancePins
	Sound    [2]gpio.PinIn

	TriggerPulse time.Duration // trigger high time
	EchoTimeout  time.Duration // max wait for the echo to start
}

// PinMap names pins as the periph.io registry knows them ("GPIO17").
type PinMap struct {
	Trigger [2]string
	Echo    [2]string
	Sound   [2]string
}

// Gateway reads sensors wired directly to GPIO lines.
// Echo edges are busy-polled; both waits are bounded.
type Gateway struct {
	mu     sync.Mutex
	cfg    Config
	closed bool
}

// Open initializes the host drivers and resolves every pin by name.
func Open(m PinMap, triggerPulse, echoTimeout time.Duration) (*Gateway, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio: host init: %w", err)
	}

	byName := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio: unknown pin %q", name)
		}
		return p, nil
	}

	cfg := Config{
		TriggerPulse: triggerPulse,
		EchoTimeout:  echoTimeout,
	}
	for i := 0; i < 2; i++ {
		trig, err := byName(m.Trigger[i])
		if err != nil {
			return nil, err
		}
		echo, err := byName(m.Echo[i])
		if err != nil {
			return nil, err
		}
		snd, err := byName(m.Sound[i])
		if err != nil {
			return nil, err
		}
		cfg.Distance[i] = DistancePins{Trigger: trig, Echo: echo}
		cfg.Sound[i] = snd
	}

	return New(cfg)
}

// New configures the pins: triggers as low outputs, echo and sound lines as inputs.
func New(cfg Config) (*Gateway, error) {
	if cfg.EchoTimeout <= 0 {
		return nil, errors.New("gpio: echo timeout must be > 0")
	}

	for i, d := range cfg.Distance {
		if d.Trigger == nil || d.Echo == nil {
			return nil, fmt.Errorf("gpio: distance sensor %d: pin missing", i+1)
		}
		if err := d.Trigger.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("gpio: trigger %s: %w", d.Trigger, err)
		}
		if err := d.Echo.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("gpio: echo %s: %w", d.Echo, err)
		}
	}
	for i, s := range cfg.Sound {
		if s == nil {
			return nil, fmt.Errorf("gpio: sound sensor %d: pin missing", i+1)
		}
		if err := s.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("gpio: sound %s: %w", s, err)
		}
	}

	return &Gateway{cfg: cfg}, nil
}

// ReadDistance fires the trigger and times the echo pulse.
func (g *Gateway) ReadDistance(ctx context.Context, sensor int) (int, error) {
	if err := gateway.CheckSensor(sensor); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return 0, gateway.ErrClosed
	}

	p := g.cfg.Distance[sensor-1]

	if err := p.Trigger.Out(gpio.High); err != nil {
		return 0, fmt.Errorf("gpio: trigger %s high: %w", p.Trigger, err)
	}
	spin(g.cfg.TriggerPulse)
	if err := p.Trigger.Out(gpio.Low); err != nil {
		return 0, fmt.Errorf("gpio: trigger %s low: %w", p.Trigger, err)
	}

	// wait for echo to start
	deadline := time.Now().Add(g.cfg.EchoTimeout)
	for p.Echo.Read() == gpio.Low {
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("%w: sensor %d: echo never started", gateway.ErrEchoTimeout, sensor)
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}
	start := time.Now()

	// wait for echo to end; past MaxEchoPulse the reading is useless anyway
	for p.Echo.Read() == gpio.High {
		if time.Since(start) > gateway.MaxEchoPulse {
			return 0, fmt.Errorf("%w: sensor %d: echo stuck high", gateway.ErrEchoTimeout, sensor)
		}
	}

	return gateway.DistanceFromEcho(time.Since(start))
}

// ReadSoundActive reports whether the sound sensor output is high.
func (g *Gateway) ReadSoundActive(ctx context.Context, sensor int) (bool, error) {
	if err := gateway.CheckSensor(sensor); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false, gateway.ErrClosed
	}
	return g.cfg.Sound[sensor-1].Read() == gpio.High, nil
}

// Close drives the triggers low and halts every pin.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.closed = true

	var last error
	for _, d := range g.cfg.Distance {
		if err := d.Trigger.Out(gpio.Low); err != nil {
			last = err
		}
		if err := d.Trigger.Halt(); err != nil {
			last = err
		}
		if err := d.Echo.Halt(); err != nil {
			last = err
		}
	}
	for _, s := range g.cfg.Sound {
		if err := s.Halt(); err != nil {
			last = err
		}
	}
	return last
}

// spin busy-waits d. time.Sleep is far too coarse for a 10µs trigger.
func spin(d time.Duration) {
	end := time.Now().Add(d)
	for time.Now().Before(end) {
	}
}
