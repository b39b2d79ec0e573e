// Command vt100demo is a worked example of the host fd-discovery contract
// from spec.md §6: it opens /dev/tty when standard input is a terminal and
// falls back to the standard input file descriptor otherwise. The policy lives here,
// not in the core — the core "accepts the FD through construction and does
// not care which".
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	vt100 "github.com/kungfusheep/vt100"
)

func main() {
	fd, closeFD, err := discoverFD()
	if err != nil {
		fmt.Fprintln(os.Stderr, "vt100demo:", err)
		os.Exit(1)
	}
	defer closeFD()

	term := vt100.NewTerminal(fd, vt100.WithColorDepth(vt100.Depth24Bit))
	if err := term.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "vt100demo: start:", err)
		os.Exit(1)
	}
	defer term.Stop()

	screen := vt100.NewScreen(40, 10)
	wp := vt100.WritePosition{Xpos: 2, Ypos: 1, Width: 36, Height: 1}
	screen.DirectDraw(wp, "hello, vt100 - press q to quit", "bold fg:#00ff88")
	term.Render(screen)

	for {
		keys, err := term.ReadKeys()
		if err != nil {
			return
		}
		quit := false
		for _, k := range keys {
			if r, ok := k.Key.IsChar(); ok && r == 'q' {
				quit = true
			}
			if k.Key.Equal(vt100.KeySigInt) {
				quit = true
			}
		}
		if quit {
			return
		}
		time.Sleep(16 * time.Millisecond)
	}
}

// discoverFD opens /dev/tty read/write when stdin looks like a real
// terminal, otherwise falls back to the stdin fd (read) doubling as the
// Terminal's single fd, matching the contract's "standard input/output"
// fallback for the common case of a demo piped into a non-tty.
func discoverFD() (int, func(), error) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err == nil {
			return int(f.Fd()), func() { f.Close() }, nil
		}
	}
	return int(os.Stdin.Fd()), func() {}, nil
}
