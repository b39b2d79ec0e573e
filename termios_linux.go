//go:build linux

package vt100

import "golang.org/x/sys/unix"

// Linux termios ioctls: TCSETSW applies with drain semantics (waits for
// queued output to finish, discards no input), matching §4.D exactly.
const (
	ioctlGetTermiosRequest      = unix.TCGETS
	ioctlSetTermiosDrainRequest = unix.TCSETSW
)
