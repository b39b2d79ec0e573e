//go:build linux

package vt100

import "golang.org/x/sys/unix"

// fdSetWordBits is the bit width of one unix.FdSet word on this platform.
const fdSetWordBits = 64

func fdSet(fd int, set *unix.FdSet) {
	set.Bits[fd/fdSetWordBits] |= int64(1) << (uint(fd) % fdSetWordBits)
}

func fdIsSet(fd int, set *unix.FdSet) bool {
	return set.Bits[fd/fdSetWordBits]&(int64(1)<<(uint(fd)%fdSetWordBits)) != 0
}
