// internal/watchdog/watchdog_other.go
//go:build !linux

package watchdog

import "os"

func setTimeout(*os.File, int) error { return ErrUnsupported }

func getTimeout(*os.File) (int, error) { return 0, ErrUnsupported }

func keepAlive(*os.File) error { return ErrUnsupported }
