package vt100

import (
	"unicode/utf8"

	"golang.org/x/sys/unix"
)

// Reader wraps a raw POSIX file descriptor for non-blocking byte input.
// Grounded on the teacher pack's reliance on golang.org/x/sys/unix for
// every syscall-level terminal interaction, extended here with the
// readiness-checked read loop of other_examples' vtinput reader.
type Reader struct {
	fd     int
	buf    []byte
	closed bool
}

// NewReader returns a Reader over fd.
func NewReader(fd int) *Reader {
	return &Reader{fd: fd, buf: make([]byte, 4096)}
}

// Read performs one non-blocking read: a zero-timeout unix.Select checks
// readiness first, so the call never blocks; when nothing is ready it
// returns an empty, non-error result. A readiness or read error marks the
// reader closed, and every subsequent call then returns empty.
func (r *Reader) Read(max int) (string, error) {
	if r.closed {
		return "", nil
	}
	if max <= 0 || max > len(r.buf) {
		max = len(r.buf)
	}

	var rfds unix.FdSet
	fdSet(r.fd, &rfds)
	tv := unix.Timeval{}
	n, err := unix.Select(r.fd+1, &rfds, nil, nil, &tv)
	if err != nil {
		r.closed = true
		return "", err
	}
	if n == 0 || !fdIsSet(r.fd, &rfds) {
		return "", nil
	}

	nread, err := unix.Read(r.fd, r.buf[:max])
	if err != nil {
		r.closed = true
		return "", err
	}
	if nread == 0 {
		r.closed = true
		return "", nil
	}

	return toValidUTF8Lossy(r.buf[:nread]), nil
}

// Closed reports whether a prior readiness or read error closed the
// reader.
func (r *Reader) Closed() bool { return r.closed }

// toValidUTF8Lossy decodes b as UTF-8, substituting utf8.RuneError for
// any invalid byte. Plain unicode/utf8 already defines the replacement
// convention, so no ecosystem decoder is needed for this concern.
func toValidUTF8Lossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		out = append(out, r)
		i += size
	}
	return string(out)
}
