//go:build linux || darwin

package vt100

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// TermiosGuard is a scoped raw-mode acquisition on a single input fd, per
// §4.D. Acquire remembers the fd's current termios and installs a raw
// configuration; Release unconditionally restores what it remembered.
// Grounded on the teacher pack's EnterRawMode/ExitRawMode pair in
// screen.go, generalized here to both represented POSIX kernels (the
// teacher only ever ran on Darwin) and to the spec's drain-on-apply
// requirement, which the teacher's TIOCSETA/TCSETS call does not itself
// provide.
type TermiosGuard struct {
	fd     int
	orig   *unix.Termios
	active bool
}

// NewTermiosGuard returns a guard over fd. It acquires nothing yet.
func NewTermiosGuard(fd int) *TermiosGuard {
	return &TermiosGuard{fd: fd}
}

// Acquire reads the fd's current termios, remembers it, and installs raw
// mode: BRKINT|ICRNL|INPCK|ISTRIP|IXON cleared, CS8 set, ECHO|ICANON|IEXTEN
// cleared, ISIG cleared unless passthroughSignals is requested, VMIN=1 and
// VTIME=0 for blocking single-byte reads. The new termios is applied with
// drain semantics (TCSETSW/TIOCSETAW), so any output already queued on the
// fd flushes under the old settings first. Nested acquisition — calling
// Acquire while the guard is already active — is rejected.
func (g *TermiosGuard) Acquire(passthroughSignals bool) error {
	if g.active {
		return fmt.Errorf("vt100: termios guard already holds raw mode on fd %d", g.fd)
	}

	current, err := unix.IoctlGetTermios(g.fd, ioctlGetTermiosRequest)
	if err != nil {
		return fmt.Errorf("vt100: get termios: %w", err)
	}
	orig := *current
	g.orig = &orig

	raw := *current
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	if passthroughSignals {
		raw.Lflag |= unix.ISIG
	} else {
		raw.Lflag &^= unix.ISIG
	}
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(g.fd, ioctlSetTermiosDrainRequest, &raw); err != nil {
		g.orig = nil
		return fmt.Errorf("vt100: set raw termios: %w", err)
	}

	g.active = true
	return nil
}

// Release reapplies the termios remembered by Acquire, with drain
// semantics, and marks the guard inactive. It is safe to call on an
// inactive guard (a no-op) and safe to call more than once; callers
// typically defer it immediately after a successful Acquire so it runs
// on every exit path from the raw-mode scope.
func (g *TermiosGuard) Release() error {
	if !g.active {
		return nil
	}
	g.active = false
	orig := g.orig
	g.orig = nil
	if orig == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(g.fd, ioctlSetTermiosDrainRequest, orig); err != nil {
		return fmt.Errorf("vt100: restore termios: %w", err)
	}
	return nil
}

// Active reports whether the guard currently holds raw mode on its fd.
func (g *TermiosGuard) Active() bool { return g.active }
