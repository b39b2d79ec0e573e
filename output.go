package vt100

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// TerminalSize mirrors the fields unix.Winsize decodes into.
type TerminalSize struct {
	Rows int
	Cols int
}

// Output holds a fd and a reusable write buffer. Every operation builds
// one escape sequence into the buffer and flushes immediately via a
// short-write-tolerant, EINTR-retrying write loop — grounded on the
// teacher's own bytes.Buffer-based writeStyle/writeColor/MoveCursor in
// screen.go, generalized from a fixed SGR ordering to the spec's four
// color depths.
type Output struct {
	fd     int
	buf    []byte
	logger logrus.FieldLogger
}

// NewOutput returns an Output writing to fd. A nil logger defaults to
// logrus's standard logger.
func NewOutput(fd int, logger logrus.FieldLogger) *Output {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Output{fd: fd, buf: make([]byte, 0, 64), logger: logger}
}

func (o *Output) write(s string) {
	o.buf = append(o.buf[:0], s...)
	o.flush()
}

// flush drains o.buf with non-retrying semantics for everything except
// EINTR (retried) and short writes (resumed from the first unwritten
// byte), per §4.H/§7.2.
// Any other error is logged and dropped: output is best-effort.
func (o *Output) flush() {
	b := o.buf
	for len(b) > 0 {
		n, err := unix.Write(o.fd, b)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			o.logger.WithError(err).WithField("fd", o.fd).Warn("vt100: output write failed, dropping")
			return
		}
		b = b[n:]
	}
}

// SetTitle emits the xterm window-title OSC sequence. ESC and BEL bytes
// are stripped from title first so they cannot prematurely terminate (or
// escape) the sequence.
func (o *Output) SetTitle(title string) {
	sanitized := strings.Map(func(r rune) rune {
		if r == '\x1b' || r == '\x07' {
			return -1
		}
		return r
	}, title)
	o.write("\x1b]2;" + sanitized + "\x07")
}

// EraseScreen clears the entire screen.
func (o *Output) EraseScreen() { o.write("\x1b[2J") }

// EraseEndOfLine clears from the cursor to the end of the current line.
func (o *Output) EraseEndOfLine() { o.write("\x1b[K") }

// EraseDown clears from the cursor to the end of the screen.
func (o *Output) EraseDown() { o.write("\x1b[J") }

// EnterAltScreen switches to the alternate screen buffer and homes the
// cursor.
func (o *Output) EnterAltScreen() { o.write("\x1b[?1049h\x1b[H") }

// ExitAltScreen restores the primary screen buffer.
func (o *Output) ExitAltScreen() { o.write("\x1b[?1049l") }

// EnableMouse turns on button, any-motion, urxvt extended, and SGR
// mouse reporting, in that order.
func (o *Output) EnableMouse() { o.write("\x1b[?1000h\x1b[?1003h\x1b[?1015h\x1b[?1006h") }

// DisableMouse turns the four mouse modes back off in the order 1000,
// 1015, 1006, 1003 (button mode first, any-motion mode last).
func (o *Output) DisableMouse() { o.write("\x1b[?1000l\x1b[?1015l\x1b[?1006l\x1b[?1003l") }

// MoveCursorTo positions the cursor at the 0-indexed (x,y).
func (o *Output) MoveCursorTo(x, y int) {
	o.write("\x1b[" + itoa(y+1) + ";" + itoa(x+1) + "H")
}

// CursorUp moves the cursor up n rows.
func (o *Output) CursorUp(n int) {
	if n <= 0 {
		return
	}
	o.write("\x1b[" + itoa(n) + "A")
}

// CursorDown moves the cursor down n rows.
func (o *Output) CursorDown(n int) {
	if n <= 0 {
		return
	}
	o.write("\x1b[" + itoa(n) + "B")
}

// CursorForward moves the cursor forward n columns.
func (o *Output) CursorForward(n int) {
	if n <= 0 {
		return
	}
	o.write("\x1b[" + itoa(n) + "C")
}

// CursorBack moves the cursor back n columns.
func (o *Output) CursorBack(n int) {
	if n <= 0 {
		return
	}
	o.write("\x1b[" + itoa(n) + "D")
}

// HideCursor hides the cursor.
func (o *Output) HideCursor() { o.write("\x1b[?25l") }

// ShowCursor hides then shows the cursor, matching the literal sequence
// spec.md §4.H specifies for "show" (a defensive re-assert rather than a
// bare \e[?25h).
func (o *Output) ShowCursor() { o.write("\x1b[?25l\x1b[?25h") }

// CursorShape selects one of the DECSCUSR cursor shapes.
type CursorShape int

const (
	CursorBlinkingBlock     CursorShape = 1
	CursorBlock             CursorShape = 2
	CursorBlinkingUnderline CursorShape = 3
	CursorUnderline         CursorShape = 4
	CursorBlinkingBeam      CursorShape = 5
	CursorBeam              CursorShape = 6
)

// SetCursorShape emits the DECSCUSR sequence for shape.
func (o *Output) SetCursorShape(shape CursorShape) {
	o.write("\x1b[" + itoa(int(shape)) + " q")
}

// ResetCursorShape restores the terminal-default cursor shape.
func (o *Output) ResetCursorShape() { o.write("\x1b[0 q") }

// NeverChangeCursorShape is a no-op, matching the spec's NeverChange
// cursor-shape policy value.
func (o *Output) NeverChangeCursorShape() {}

// DisableWrap turns off terminal line autowrap.
func (o *Output) DisableWrap() { o.write("\x1b[?7l") }

// EnableWrap turns on terminal line autowrap.
func (o *Output) EnableWrap() { o.write("\x1b[?7h") }

// SetAttributes emits "\e[0;<codes>m", or a bare "\e[0m" if attrs
// contributes no codes. Codes are assembled in the exact order spec.md
// §4.H specifies: fg, bg, bold, italic, blink, underline, reverse,
// hidden, strike.
func (o *Output) SetAttributes(attrs Attrs, depth ColorDepth) {
	var codes []string
	if attrs.HasForeground {
		if c := colorCode(attrs.Foreground, attrs.Background, attrs.HasBackground, depth, true); c != "" {
			codes = append(codes, c)
		}
	}
	if attrs.HasBackground {
		if c := colorCode(attrs.Background, attrs.Foreground, attrs.HasForeground, depth, false); c != "" {
			codes = append(codes, c)
		}
	}
	if attrs.Bold.on() {
		codes = append(codes, "1")
	}
	if attrs.Italic.on() {
		codes = append(codes, "3")
	}
	if attrs.Blink.on() {
		codes = append(codes, "5")
	}
	if attrs.Underline.on() {
		codes = append(codes, "4")
	}
	if attrs.Reverse.on() {
		codes = append(codes, "7")
	}
	if attrs.Hidden.on() {
		codes = append(codes, "8")
	}
	if attrs.Strike.on() {
		codes = append(codes, "9")
	}

	if len(codes) == 0 {
		o.write("\x1b[0m")
		return
	}
	o.write("\x1b[0;" + strings.Join(codes, ";") + "m")
}

// colorCode renders one color field's SGR code fragment (without the
// leading "0;"/";" separator, which the caller joins in). other/hasOther
// is the opposing color field, consulted only when rendering the
// background at 4-bit depth: an equal hex foreground's ANSI slot is then
// excluded so the two do not collide.
func colorCode(c Color, other Color, hasOther bool, depth ColorDepth, fg bool) string {
	switch c.Kind() {
	case ColorDefault:
		return ""
	case ColorAnsi:
		a, _ := c.AsAnsi()
		if fg {
			return itoa(a.Code())
		}
		return itoa(a.BgCode())
	default: // hex
		r, g, b := c.RGB()
		switch depth {
		case DepthMonochrome:
			return ""
		case Depth4Bit:
			var exclude []AnsiColor
			if !fg && hasOther && other.Kind() == ColorHex && other.Equal(c) {
				exclude = append(exclude, c.ClosestAnsi())
			}
			a := c.ClosestAnsi(exclude...)
			if fg {
				return itoa(a.Code())
			}
			return itoa(a.BgCode())
		case Depth8Bit:
			idx := 16 + 36*(int(r)*6/256) + 6*(int(g)*6/256) + int(b)*6/256
			if fg {
				return "38;5;" + itoa(idx)
			}
			return "48;5;" + itoa(idx)
		default: // Depth24Bit
			// Byte order is r;b;g, not r;g;b: a preserved wire-compat quirk
			// of the ported system (spec.md §4.H / §9 Open Questions).
			if fg {
				return "38;2;" + itoa(int(r)) + ";" + itoa(int(b)) + ";" + itoa(int(g))
			}
			return "48;2;" + itoa(int(r)) + ";" + itoa(int(b)) + ";" + itoa(int(g))
		}
	}
}

// Size queries the terminal's current row/column count via
// ioctl(TIOCGWINSZ). On failure it returns the zero size rather than an
// error, per §4.H.
func (o *Output) Size() TerminalSize {
	ws, err := unix.IoctlGetWinsize(o.fd, unix.TIOCGWINSZ)
	if err != nil {
		return TerminalSize{}
	}
	return TerminalSize{Rows: int(ws.Row), Cols: int(ws.Col)}
}

// RequestCPR writes a cursor-position report request. The reply arrives
// as ordinary input and is decoded by the parser as KeyCPRResponse.
func (o *Output) RequestCPR() { o.write("\x1b[6n") }
