// internal/watchdog/watchdog_linux.go
//go:build linux

package watchdog

import (
	"os"

	"golang.org/x/sys/unix"
)

func setTimeout(f *os.File, seconds int) error {
	return unix.IoctlSetPointerInt(int(f.Fd()), unix.WDIOC_SETTIMEOUT, seconds)
}

func getTimeout(f *os.File) (int, error) {
	return unix.IoctlGetInt(int(f.Fd()), unix.WDIOC_GETTIMEOUT)
}

func keepAlive(f *os.File) error {
	return unix.IoctlSetInt(int(f.Fd()), unix.WDIOC_KEEPALIVE, 0)
}
