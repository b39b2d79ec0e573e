package vt100

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

// AttrSetting is a tri-state flag value: explicitly on, explicitly off, or
// "inherit" (defer to the next setting in a merge chain). The zero value
// is Automatic, matching the teacher pack's Rust source's #[default].
type AttrSetting uint8

const (
	AttrAutomatic AttrSetting = iota
	AttrEnabled
	AttrDisabled
)

// merge folds two settings right-absorbing: if the accumulator (a) is
// still Automatic, other takes over; otherwise a's explicit value stands.
func (a AttrSetting) merge(other AttrSetting) AttrSetting {
	if a == AttrAutomatic {
		return other
	}
	return a
}

func (a AttrSetting) on() bool { return a == AttrEnabled }

// Attrs is the fully resolved style of a cell or run of text: a pair of
// optional colors plus seven tri-state text attributes.
type Attrs struct {
	Foreground    Color
	HasForeground bool
	Background    Color
	HasBackground bool

	Bold, Italic, Underline, Strike, Blink, Reverse, Hidden AttrSetting
}

// baseAttrs is the merge-chain root: every tri-state flag defaults to
// Disabled when every later element of the chain leaves it Automatic,
// per §4.F's "default at the root is Disabled".
var baseAttrs = Attrs{
	Bold: AttrDisabled, Italic: AttrDisabled, Underline: AttrDisabled,
	Strike: AttrDisabled, Blink: AttrDisabled, Reverse: AttrDisabled, Hidden: AttrDisabled,
}

// ResolveAttrs resolves a single style string directly against the root
// default, bypassing the class resolver — used by the renderer, which
// already has the full cascade baked into each cell's style string.
func ResolveAttrs(styleString string) Attrs {
	return MergeAttrs([]Attrs{baseAttrs, ParseStyleString(styleString)})
}

// MergeAttrs folds a list of Attrs right-to-left: the last element's
// explicit settings win, earlier elements only fill in fields the later
// ones left Automatic (or colors left unset). MergeAttrs([x]) == x.
func MergeAttrs(list []Attrs) Attrs {
	var result Attrs
	for i := len(list) - 1; i >= 0; i-- {
		a := list[i]
		if !result.HasForeground && a.HasForeground {
			result.Foreground, result.HasForeground = a.Foreground, true
		}
		if !result.HasBackground && a.HasBackground {
			result.Background, result.HasBackground = a.Background, true
		}
		result.Bold = result.Bold.merge(a.Bold)
		result.Italic = result.Italic.merge(a.Italic)
		result.Underline = result.Underline.merge(a.Underline)
		result.Strike = result.Strike.merge(a.Strike)
		result.Blink = result.Blink.merge(a.Blink)
		result.Reverse = result.Reverse.merge(a.Reverse)
		result.Hidden = result.Hidden.merge(a.Hidden)
	}
	return result
}

// ParseStyleString processes a whitespace-delimited style string
// left-to-right per §4.F. Unknown or malformed tokens (including a
// color parse failure on fg:/bg:) are silently ignored, matching the
// lenient style-parse error taxonomy.
func ParseStyleString(s string) Attrs {
	var a Attrs
	for _, tok := range strings.Fields(s) {
		switch {
		case tok == "noinherit":
			a.Bold, a.Italic, a.Underline = AttrDisabled, AttrDisabled, AttrDisabled
			a.Strike, a.Blink, a.Reverse, a.Hidden = AttrDisabled, AttrDisabled, AttrDisabled, AttrDisabled
		case tok == "bold":
			a.Bold = AttrEnabled
		case tok == "nobold":
			a.Bold = AttrDisabled
		case tok == "italic":
			a.Italic = AttrEnabled
		case tok == "noitalic":
			a.Italic = AttrDisabled
		case tok == "underline":
			a.Underline = AttrEnabled
		case tok == "nounderline":
			a.Underline = AttrDisabled
		case tok == "strike":
			a.Strike = AttrEnabled
		case tok == "nostrike":
			a.Strike = AttrDisabled
		case tok == "blink":
			a.Blink = AttrEnabled
		case tok == "noblink":
			a.Blink = AttrDisabled
		case tok == "reverse":
			a.Reverse = AttrEnabled
		case tok == "noreverse":
			a.Reverse = AttrDisabled
		case tok == "hidden":
			a.Hidden = AttrEnabled
		case tok == "nohidden":
			a.Hidden = AttrDisabled
		case strings.HasPrefix(tok, "fg:"):
			if c, ok := ParseColor(tok[len("fg:"):]); ok {
				a.Foreground, a.HasForeground = c, true
			}
		case strings.HasPrefix(tok, "bg:"):
			if c, ok := ParseColor(tok[len("bg:"):]); ok {
				a.Background, a.HasBackground = c, true
			}
			// Bare color tokens without fg:/bg: are ignored: open question
			// resolved against accepting them as an implicit foreground.
		}
	}
	return a
}

// classNamePattern is the construction-time validity check for a
// StandardStyle rule's class-names string.
var classNamePattern = regexp.MustCompile(`^[a-z0-9.\s_-]*$`)

// StyleRule is one (class-names, style-string) entry in a StandardStyle.
type StyleRule struct {
	ClassNames string
	Style      string
}

type compiledRule struct {
	classes map[string]bool
	attrs   Attrs
}

// StandardStyle compiles a list of class-keyed style rules once at
// construction and resolves per-lookup class contexts against them.
type StandardStyle struct {
	rules []compiledRule
	hash  uint64
}

// NewStandardStyle compiles rules into a StandardStyle. A rule whose
// class-names string doesn't match ^[a-z0-9.\s_-]*$ is the only
// construction-time error the style model raises.
func NewStandardStyle(rules []StyleRule) (*StandardStyle, error) {
	compiled := make([]compiledRule, 0, len(rules))
	h := fnv.New64a()
	for _, r := range rules {
		if !classNamePattern.MatchString(r.ClassNames) {
			return nil, fmt.Errorf("vt100: invalid class names %q", r.ClassNames)
		}
		classes := make(map[string]bool)
		for _, c := range strings.Fields(r.ClassNames) {
			classes[c] = true
		}
		compiled = append(compiled, compiledRule{classes: classes, attrs: ParseStyleString(r.Style)})
		h.Write([]byte(r.ClassNames))
		h.Write([]byte{0})
		h.Write([]byte(r.Style))
		h.Write([]byte{0})
	}
	return &StandardStyle{rules: compiled, hash: h.Sum64()}, nil
}

// InvalidationHash folds every rule's class names and style string into a
// single cache key: two StandardStyle instances built from identical
// rules hash identically.
func (s *StandardStyle) InvalidationHash() uint64 { return s.hash }

// GetAttrs resolves the attrs for a lookup: every rule whose class set
// intersects classContext contributes to the merge chain, in rule
// declaration order, followed by the inline style string's own tokens
// (which therefore take final precedence).
func (s *StandardStyle) GetAttrs(classContext []string, styleString string) Attrs {
	ctx := make(map[string]bool, len(classContext))
	for _, c := range classContext {
		ctx[c] = true
	}
	chain := make([]Attrs, 0, len(s.rules)+2)
	chain = append(chain, baseAttrs)
	for _, rule := range s.rules {
		if ruleMatches(rule.classes, ctx) {
			chain = append(chain, rule.attrs)
		}
	}
	chain = append(chain, ParseStyleString(styleString))
	return MergeAttrs(chain)
}

func ruleMatches(ruleClasses, ctx map[string]bool) bool {
	for c := range ruleClasses {
		if ctx[c] {
			return true
		}
	}
	return false
}
