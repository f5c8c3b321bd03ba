// internal/watchdog/watchdog.go
package watchdog

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// DefaultDevice is the kernel watchdog character device.
const DefaultDevice = "/dev/watchdog"

// magicClose tells the driver the close is intentional.
const magicClose = "V"

var (
	ErrClosed      = errors.New("watchdog: closed")
	ErrUnsupported = errors.New("watchdog: unsupported platform")
)

// Watchdog is an open hardware watchdog.
// Once opened the device is armed: if it is not pinged within the
// timeout the host reboots. Only Disarm stops it.
type Watchdog struct {
	mu     sync.Mutex
	f      *os.File
	path   string
	closed bool
}

// Open opens and arms the device.
func Open(path string) (*Watchdog, error) {
	if path == "" {
		path = DefaultDevice
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("watchdog: open %s: %w", path, err)
	}
	return &Watchdog{f: f, path: path}, nil
}

func (w *Watchdog) Path() string { return w.path }

// SetTimeout requests a timeout in seconds and returns the value the
// driver actually applied.
func (w *Watchdog) SetTimeout(seconds int) (int, error) {
	if seconds <= 0 {
		return 0, fmt.Errorf("watchdog: timeout must be > 0, got %d", seconds)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, ErrClosed
	}
	if err := setTimeout(w.f, seconds); err != nil {
		return 0, fmt.Errorf("watchdog: set timeout %ds: %w", seconds, err)
	}
	got, err := getTimeout(w.f)
	if err != nil {
		return 0, fmt.Errorf("watchdog: read back timeout: %w", err)
	}
	return got, nil
}

// Ping resets the countdown.
func (w *Watchdog) Ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if err := keepAlive(w.f); err != nil {
		return fmt.Errorf("watchdog: keepalive: %w", err)
	}
	return nil
}

// Disarm writes the magic close character and closes the device.
func (w *Watchdog) Disarm() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	w.closed = true

	_, werr := w.f.WriteString(magicClose)
	cerr := w.f.Close()
	if werr != nil {
		return fmt.Errorf("watchdog: disarm: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("watchdog: close: %w", cerr)
	}
	return nil
}

// Close releases the device without disarming it.
// The host will reboot when the timeout expires.
func (w *Watchdog) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.f.Close()
}
