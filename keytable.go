package vt100

import "regexp"

// keyTable is the immutable byte-sequence -> key-symbol-list mapping,
// covering C0 controls, ESC, CSI/SS3 navigation and function keys, and
// the xterm/rxvt/linux-console dialect variants enumerated in spec.md
// §4.A. It is built once (packageKeyTable, below) and shared read-only,
// per the §9 design note on key-table dedup.
type keyTable map[string][]KeySymbol

// buildKeyTable constructs the full key table. Grounded on the flat
// sequence->key shape of other_examples' UncleGedd input table and the
// key-symbol taxonomy of charmbracelet/bubbletea's key.go.
func buildKeyTable() keyTable {
	t := make(keyTable, 256)

	// C0 controls, 0x00-0x1F plus 0x7F (unified with Ctrl-H per spec.md
	// §4.A: "0x7F maps to ControlH").
	for b, name := range controlLetters {
		t[string([]byte{b})] = []KeySymbol{named(name)}
	}
	t["\x7f"] = []KeySymbol{named("c-h")}
	t["\t"] = []KeySymbol{named("c-i")}
	t["\r"] = []KeySymbol{named("c-m")}

	t["\x1b"] = []KeySymbol{KeyEscape}
	t["\x1b\x1b"] = []KeySymbol{KeyShiftEscape}
	t["\x1b[Z"] = []KeySymbol{KeyBackTab}

	// Normal-mode and application-mode (SS3) arrows.
	arrow := map[byte]string{'A': "up", 'B': "down", 'C': "right", 'D': "left"}
	for code, base := range arrow {
		t["\x1b["+string(code)] = []KeySymbol{named(base)}
		t["\x1bO"+string(code)] = []KeySymbol{named(base)}
	}
	// Home/End, CSI-letter and SS3 forms.
	t["\x1b[H"] = []KeySymbol{KeyHome}
	t["\x1b[F"] = []KeySymbol{KeyEnd}
	t["\x1bOH"] = []KeySymbol{KeyHome}
	t["\x1bOF"] = []KeySymbol{KeyEnd}
	// linux console home/end.
	t["\x1b[1~"] = []KeySymbol{KeyHome}
	t["\x1b[4~"] = []KeySymbol{KeyEnd}

	// \e[N~ editing keys.
	tilde := map[byte]string{
		'2': "insert", '3': "delete", '5': "pageup", '6': "pagedown",
	}
	for code, base := range tilde {
		t["\x1b["+string(code)+"~"] = []KeySymbol{named(base)}
	}

	// xterm SS3 function keys F1-F4.
	ss3F := map[byte]int{'P': 1, 'Q': 2, 'R': 3, 'S': 4}
	for code, n := range ss3F {
		t["\x1bO"+string(code)] = []KeySymbol{fKey(n, "")}
	}
	// linux console function keys F1-F5: \e[[A .. \e[[E
	linuxF := map[byte]int{'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5}
	for code, n := range linuxF {
		t["\x1b[["+string(code)] = []KeySymbol{fKey(n, "")}
	}
	// rxvt/xterm CSI-number function keys.
	csiF := map[string]int{
		"11": 1, "12": 2, "13": 3, "14": 4, "15": 5, "17": 6, "18": 7,
		"19": 8, "20": 9, "21": 10, "23": 11, "24": 12,
		"25": 13, "26": 14, "28": 15, "29": 16, "31": 17, "32": 18,
		"33": 19, "34": 20,
	}
	for num, n := range csiF {
		t["\x1b["+num+"~"] = []KeySymbol{fKey(n, "")}
	}

	// Modifier-number crosses: \e[1;<m>X for arrows/home/end/F1-F4.
	letterBase := map[byte]string{
		'A': "up", 'B': "down", 'C': "right", 'D': "left",
		'H': "home", 'F': "end",
	}
	for m, mod := range modifierNumber {
		for code, base := range letterBase {
			t["\x1b[1;"+string(m)+string(code)] = mod.expand(base)
		}
		ss3Letter := map[byte]int{'P': 1, 'Q': 2, 'R': 3, 'S': 4}
		for code, n := range ss3Letter {
			t["\x1b[1;"+string(m)+string(code)] = mod.expandF(n)
			// also legitimate for some terminals to send the modifier cross via SS3.
			t["\x1bO1;"+string(m)+string(code)] = mod.expandF(n)
		}
		// Modified editing keys: \e[<n>;<m>~.
		for code, base := range tilde {
			t["\x1b["+string(code)+";"+string(m)+"~"] = mod.expand(base)
		}
	}

	// mintty control/shift digit keys: \e[1;<m>{p..y} -> keypad 0..9.
	digitLetters := []byte{'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y'}
	for m, mod := range modifierNumber {
		for i, l := range digitLetters {
			digit := itoa(i)
			if mod.alt {
				t["\x1b[1;"+string(m)+string(l)] = []KeySymbol{KeyEscape, named(mod.digitName(digit))}
			} else {
				t["\x1b[1;"+string(m)+string(l)] = []KeySymbol{named(mod.digitName(digit))}
			}
		}
	}
	// numpad-5 with no modifier: ignored per spec.md §4.A.
	t["\x1b[E"] = []KeySymbol{KeyIgnore}

	// Scroll wheel (xterm SGR-independent button encodings used by some
	// terminals for wheel events outside full mouse reporting).
	t["\x1b[62~"] = []KeySymbol{KeyScrollUp}
	t["\x1b[63~"] = []KeySymbol{KeyScrollDown}

	// Bracketed paste start sentinel. The end sentinel ("\x1b[201~") is
	// handled specially by the parser's paste-mode scan, not via table
	// lookup (spec.md §4.C).
	t["\x1b[200~"] = []KeySymbol{KeyBracketPaste}

	return t
}

var packageKeyTable = buildKeyTable()

// Regex contracts from spec.md §6, used by the parser to classify a
// pending prefix as a complete or partial CPR reply / mouse event.
var (
	cprFullPattern      = regexp.MustCompile(`^\x1b\[\d+;\d+R$`)
	mouseFullPattern    = regexp.MustCompile(`^\x1b\[(<?[\d;]+[mM]|M...)$`)
	partialCSIPattern   = regexp.MustCompile(`^\x1b\[[\d;]*$`)
	partialMousePattern = regexp.MustCompile(`^\x1b\[(<?[\d;]*|M.{0,2})$`)
)

// maxTableKeyLen is the longest byte sequence present in the static key
// table; used by isPrefixMatch as a cheap early-out.
var maxTableKeyLen = func() int {
	max := 0
	for k := range packageKeyTable {
		if len(k) > max {
			max = len(k)
		}
	}
	return max
}()
