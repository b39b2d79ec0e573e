package vt100

// KeySymbol identifies a decoded keypress. It is a closed tagged sum: a
// printable character, a control code, a navigation/function key (with
// modifier crosses), or one of a small set of terminal-protocol signals
// (bracketed paste, CPR reply, mouse event, scroll wheel).
type KeySymbol struct {
	kind byte   // internal discriminant: 'c' char, 'n' named (control-digit keys included)
	char rune   // for Char
	name string // for Named/control-digit: canonical lowercase binding name
}

// KeyPress pairs a decoded key symbol with the literal bytes that produced
// it. text is used for re-emission (e.g. pasted content, or the raw bytes
// behind an escape-prefixed meta key).
type KeyPress struct {
	Key  KeySymbol
	Text string
}

// Char returns the key symbol for a printable rune.
func Char(r rune) KeySymbol { return KeySymbol{kind: 'c', char: r} }

// IsChar reports whether k is a printable character key, returning it.
func (k KeySymbol) IsChar() (rune, bool) {
	if k.kind == 'c' {
		return k.char, true
	}
	return 0, false
}

// named builds a fixed key symbol identified by its canonical binding name.
func named(name string) KeySymbol { return KeySymbol{kind: 'n', name: name} }

// String returns the stable lowercase binding name for k (e.g. "c-s-left",
// "a" for Char('a')).
func (k KeySymbol) String() string {
	if k.kind == 'c' {
		return string(k.char)
	}
	return k.name
}

// Equal reports whether two key symbols denote the same logical key.
func (k KeySymbol) Equal(other KeySymbol) bool {
	return k.kind == other.kind && k.char == other.char && k.name == other.name
}

// Named key symbols. Names follow the teacher pack's own convention
// (prompt_toolkit's key names, transcribed from original_source) of a
// modifier-prefix + base name: c- (control), s- (shift). Alt/Meta has no
// name prefix; it is decoded as a separate leading KeyEscape (see modEntry).
var (
	KeyEscape       = named("escape")
	KeyShiftEscape  = named("s-escape")
	KeyBackTab      = named("back-tab")
	KeyScrollUp     = named("scroll-up")
	KeyScrollDown   = named("scroll-down")
	KeyBracketPaste = named("bracketed-paste")
	KeyCPRResponse  = named("cpr-response")
	KeyMouseEvent   = named("vt100-mouse-event")
	KeySigInt       = named("c-c")
	KeyAny          = named("<any>")
	KeyIgnore       = named("<ignore>")
)

// Control keys C-A .. C-Z and the punctuation controls.
var controlLetters = map[byte]string{
	0x00: "c-@", // NUL, also Ctrl-Space
	0x01: "c-a", 0x02: "c-b", 0x03: "c-c", 0x04: "c-d", 0x05: "c-e",
	0x06: "c-f", 0x07: "c-g", 0x08: "c-h", 0x09: "c-i", 0x0a: "c-j",
	0x0b: "c-k", 0x0c: "c-l", 0x0d: "c-m", 0x0e: "c-n", 0x0f: "c-o",
	0x10: "c-p", 0x11: "c-q", 0x12: "c-r", 0x13: "c-s", 0x14: "c-t",
	0x15: "c-u", 0x16: "c-v", 0x17: "c-w", 0x18: "c-x", 0x19: "c-y",
	0x1a: "c-z",
	0x1c: "c-\\", 0x1d: "c-]", 0x1e: "c-^", 0x1f: "c-_",
}

// Navigation keys, undecorated.
var (
	KeyLeft     = named("left")
	KeyRight    = named("right")
	KeyUp       = named("up")
	KeyDown     = named("down")
	KeyHome     = named("home")
	KeyEnd      = named("end")
	KeyInsert   = named("insert")
	KeyDelete   = named("delete")
	KeyPageUp   = named("pageup")
	KeyPageDown = named("pagedown")
)

var navBaseNames = []string{"left", "right", "up", "down", "home", "end", "insert", "delete", "pageup", "pagedown"}

// modifierCross returns the named key for a navigation/function base name
// decorated with a modifier combination, e.g. modifierCross("left", "c-s")
// yields the "c-s-left" key symbol.
func modifierCross(base, mod string) KeySymbol {
	if mod == "" {
		return named(base)
	}
	return named(mod + "-" + base)
}

func fKey(n int, mod string) KeySymbol {
	name := "f" + itoa(n)
	if mod != "" {
		name = mod + "-" + name
	}
	return named(name)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// aliases maps a binding-registration-time alias to its canonical name.
// Resolved by ResolveBindingName, not by the parser itself (spec.md §3:
// "aliases ... are resolved at binding-registration time").
var aliases = map[string]string{
	"backspace": "c-h",
	"enter":     "c-m",
	"tab":       "c-i",
	"c-space":   "c-@",
}

// ResolveBindingName resolves a user-facing binding name (which may be an
// alias such as "backspace" or "enter") to the canonical key-symbol name
// used internally and by the parser's output.
func ResolveBindingName(name string) string {
	if canon, ok := aliases[name]; ok {
		return canon
	}
	return name
}

// modEntry decomposes an xterm CSI modifier parameter into the non-alt
// name prefix it contributes to the base key, plus whether Alt/Meta is
// part of the combination. Terminals send literal Alt as a bare ESC
// prefix (the "Meta" glossary entry), so any modifier-cross that
// includes Alt is represented as two key presses: [Escape, <rest>] —
// matching spec.md's S6 scenario ("\e[1;3A" -> Escape, Up) rather than
// inventing a dedicated "m-up" symbol for the Alt component.
type modEntry struct {
	prefix string
	alt    bool
}

// modifierNumber maps the xterm CSI modifier parameter (2..8) to its
// decomposition, per spec.md §4.A.
var modifierNumber = map[byte]modEntry{
	'2': {"s", false},
	'3': {"", true},
	'4': {"s", true},
	'5': {"c", false},
	'6': {"c-s", false},
	'7': {"c", true},
	'8': {"c-s", true},
}

// expand produces the one- or two-symbol key sequence for base decorated
// with this modifier combination.
func (m modEntry) expand(base string) []KeySymbol {
	k := modifierCross(base, m.prefix)
	if m.alt {
		return []KeySymbol{KeyEscape, k}
	}
	return []KeySymbol{k}
}

// expandF is expand for function keys (fKey already folds in the prefix).
func (m modEntry) expandF(n int) []KeySymbol {
	if m.alt {
		return []KeySymbol{KeyEscape, fKey(n, m.prefix)}
	}
	return []KeySymbol{fKey(n, m.prefix)}
}

// digitName builds the control/shift-digit key name (mintty numeric
// keypad crosses), e.g. digitName("3") -> "c-3" or just "3" if no prefix.
func (m modEntry) digitName(digit string) string {
	if m.prefix == "" {
		return digit
	}
	return m.prefix + "-" + digit
}
