//go:build darwin

package vt100

import "golang.org/x/sys/unix"

// fdSetWordBits is the bit width of one unix.FdSet word on this platform.
const fdSetWordBits = 32

func fdSet(fd int, set *unix.FdSet) {
	set.Bits[fd/fdSetWordBits] |= int32(1) << (uint32(fd) % fdSetWordBits)
}

func fdIsSet(fd int, set *unix.FdSet) bool {
	return set.Bits[fd/fdSetWordBits]&(int32(1)<<(uint32(fd)%fdSetWordBits)) != 0
}
