// internal/gateway/modbus/client.go
package modbus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/sleep-recorder/internal/gateway"
)

// Gateway reads the sensors from a remote I/O module over Modbus TCP.
// Distances are input registers holding centimetres; sound sensors are
// discrete inputs. Requests are serialized on one connection.
type Gateway struct {
	mu     sync.Mutex
	conn   io.Closer
	client modbus.Client
	cfg    Config
	closed bool
}

type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration

	DistanceRegisters [2]uint16 // index 0 = sensor 1
	SoundInputs       [2]uint16
}

// Dial connects to the endpoint. One attempt, no retries.
func Dial(cfg Config) (*Gateway, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("gateway modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("gateway modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return newGateway(modbus.NewClient(h), h, cfg), nil
}

func newGateway(client modbus.Client, conn io.Closer, cfg Config) *Gateway {
	return &Gateway{
		conn:   conn,
		client: client,
		cfg:    cfg,
	}
}

func (g *Gateway) ReadDistance(ctx context.Context, sensor int) (int, error) {
	if err := gateway.CheckSensor(sensor); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return 0, gateway.ErrClosed
	}

	addr := g.cfg.DistanceRegisters[sensor-1]
	raw, err := g.client.ReadInputRegisters(addr, 1)
	if err != nil {
		return 0, fmt.Errorf("gateway modbus: read register %d: %w", addr, err)
	}

	regs := unpackRegisters(raw)
	if len(regs) < 1 {
		return 0, fmt.Errorf("gateway modbus: register %d: short response", addr)
	}

	return gateway.CheckDistance(int(regs[0]))
}

func (g *Gateway) ReadSoundActive(ctx context.Context, sensor int) (bool, error) {
	if err := gateway.CheckSensor(sensor); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false, gateway.ErrClosed
	}

	addr := g.cfg.SoundInputs[sensor-1]
	raw, err := g.client.ReadDiscreteInputs(addr, 1)
	if err != nil {
		return false, fmt.Errorf("gateway modbus: read input %d: %w", addr, err)
	}
	if len(raw) < 1 {
		return false, fmt.Errorf("gateway modbus: input %d: short response", addr)
	}

	return unpackBits(raw, 1)[0], nil
}

func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.closed = true

	if g.conn == nil {
		return nil
	}
	return g.conn.Close()
}

// ---- helpers ----

func unpackBits(data []byte, count int) []bool {
	out := make([]bool, count)
	for i := 0; i < count; i++ {
		byteIdx := i / 8
		bitIdx := i % 8
		if byteIdx >= len(data) {
			continue
		}
		out[i] = data[byteIdx]&(1<<bitIdx) != 0
	}
	return out
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
