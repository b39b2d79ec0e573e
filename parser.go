package vt100

import (
	"bytes"
	"unicode/utf8"
)

// pasteEndMarker closes a bracketed-paste run started by the KeyBracketPaste
// table entry ("\x1b[200~").
var pasteEndMarker = []byte("\x1b[201~")

// Parser is an incremental VT100/xterm byte-to-keypress state machine. It
// retains unresolved bytes across Feed calls (prefix, or pasteBuffer while
// inBracketedPaste) until a full match, an unambiguous mismatch, or an
// explicit Flush resolves them. A Parser is not safe for concurrent use.
type Parser struct {
	prefix           []byte
	pasteBuffer      []byte
	inBracketedPaste bool
}

// NewParser returns an empty parser ready to receive bytes via Feed.
func NewParser() *Parser {
	return &Parser{}
}

// Feed appends data to the parser's held state and returns every KeyPress
// that can be resolved without further input. Bytes that remain ambiguous
// (an escape prefix that could still extend) are retained for the next
// Feed or Flush call.
func (p *Parser) Feed(data []byte) []KeyPress {
	if p.inBracketedPaste {
		p.pasteBuffer = append(p.pasteBuffer, data...)
	} else {
		p.prefix = append(p.prefix, data...)
	}
	return p.run(false)
}

// Flush signals that no more bytes will arrive soon, resolving any pending
// escape-prefix ambiguity toward its shortest interpretation (e.g. a lone
// ESC becomes KeyEscape rather than waiting for a possible CSI sequence).
func (p *Parser) Flush() []KeyPress {
	return p.run(true)
}

// run drains the parser's held state, emitting every KeyPress that can be
// resolved. It is the single outer loop described by the "parser as a pure
// function" design note: bracketed-paste continuation is handled by
// looping over the held buffer rather than by recursing into Feed.
func (p *Parser) run(flushing bool) []KeyPress {
	var out []KeyPress
	for {
		if p.inBracketedPaste {
			idx := bytes.Index(p.pasteBuffer, pasteEndMarker)
			if idx < 0 {
				return out
			}
			text := string(p.pasteBuffer[:idx])
			remainder := p.pasteBuffer[idx+len(pasteEndMarker):]
			p.pasteBuffer = nil
			p.inBracketedPaste = false
			out = append(out, KeyPress{Key: KeyBracketPaste, Text: text})
			p.prefix = append(p.prefix, remainder...)
			continue
		}

		if len(p.prefix) == 0 {
			return out
		}

		if !flushing && isPrefixMatch(p.prefix) {
			return out
		}

		if keys, ok := fullMatch(p.prefix); ok {
			out = p.consume(out, keys, p.prefix, nil)
			flushing = false
			continue
		}

		if i, keys, ok := longestProperPrefixMatch(p.prefix); ok {
			out = p.consume(out, keys, p.prefix[:i], p.prefix[i:])
			flushing = false
			continue
		}

		r, size := utf8.DecodeRune(p.prefix)
		out = append(out, KeyPress{Key: Char(r), Text: string(p.prefix[:size])})
		p.prefix = p.prefix[size:]
		flushing = false
	}
}

// consume applies a resolved match: either entering bracketed-paste mode
// (the KeyBracketPaste start sentinel is never itself surfaced to the
// caller) or emitting keys and retaining remainder as the new prefix.
func (p *Parser) consume(out []KeyPress, keys []KeySymbol, raw, remainder []byte) []KeyPress {
	if len(keys) == 1 && keys[0].Equal(KeyBracketPaste) {
		p.inBracketedPaste = true
		p.pasteBuffer = append([]byte(nil), remainder...)
		p.prefix = nil
		return out
	}
	p.prefix = remainder
	return append(out, emit(keys, raw)...)
}

// emit builds the KeyPress list for a resolved multi-symbol match. The
// first symbol (the leading Escape of a meta-prefixed combination) carries
// the full matched text; subsequent symbols carry empty text.
func emit(keys []KeySymbol, raw []byte) []KeyPress {
	text := string(raw)
	out := make([]KeyPress, len(keys))
	for i, k := range keys {
		if i == 0 {
			out[i] = KeyPress{Key: k, Text: text}
		} else {
			out[i] = KeyPress{Key: k}
		}
	}
	return out
}

// fullMatch reports whether prefix exactly matches a key-table entry, a
// complete CPR reply, or a complete mouse event.
func fullMatch(prefix []byte) ([]KeySymbol, bool) {
	if keys, ok := packageKeyTable[string(prefix)]; ok {
		return keys, true
	}
	if cprFullPattern.Match(prefix) {
		return []KeySymbol{KeyCPRResponse}, true
	}
	if mouseFullPattern.Match(prefix) {
		return []KeySymbol{KeyMouseEvent}, true
	}
	return nil, false
}

// longestProperPrefixMatch finds the longest i < len(prefix) such that
// prefix[:i] is a full match, returning its keys and the split index.
func longestProperPrefixMatch(prefix []byte) (int, []KeySymbol, bool) {
	for i := len(prefix) - 1; i >= 1; i-- {
		if keys, ok := fullMatch(prefix[:i]); ok {
			return i, keys, true
		}
	}
	return 0, nil, false
}

// isPrefixMatch reports whether some longer key-table sequence starts with
// prefix, or prefix is a partial CPR reply or mouse event per the §6
// regex contracts. It also treats an incomplete multi-byte UTF-8 lead
// sequence as a prefix match, so a non-ASCII rune split across Feed calls
// is never mis-decoded as a run of replacement characters.
func isPrefixMatch(prefix []byte) bool {
	if len(prefix) == 0 {
		return false
	}
	if len(prefix) <= maxTableKeyLen {
		for k := range packageKeyTable {
			if len(k) > len(prefix) && bytes.HasPrefix([]byte(k), prefix) {
				return true
			}
		}
	}
	if partialCSIPattern.Match(prefix) || partialMousePattern.Match(prefix) {
		return true
	}
	if prefix[0] >= 0x80 && !utf8.FullRune(prefix) {
		return true
	}
	return false
}
