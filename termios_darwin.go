//go:build darwin

package vt100

import "golang.org/x/sys/unix"

// Darwin termios ioctls, adapted from the teacher's own EnterRawMode
// (TIOCGETA/TIOCSETA in screen.go): TIOCSETAW applies with drain
// semantics rather than the teacher's immediate TIOCSETA, per §4.D.
const (
	ioctlGetTermiosRequest      = unix.TIOCGETA
	ioctlSetTermiosDrainRequest = unix.TIOCSETAW
)
