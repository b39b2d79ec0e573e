package vt100

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorKind discriminates the three forms a Color can take.
type ColorKind uint8

const (
	// ColorDefault is the terminal's own default foreground/background.
	ColorDefault ColorKind = iota
	// ColorAnsi is one of the sixteen named ANSI colors.
	ColorAnsi
	// ColorHex is a full 24-bit RGB triple.
	ColorHex
)

// AnsiColor enumerates the sixteen standard/bright ANSI colors plus the
// terminal default, matching the teacher pack's Color16 basic-color set.
type AnsiColor uint8

const (
	AnsiDefault AnsiColor = iota
	AnsiBlack
	AnsiRed
	AnsiGreen
	AnsiYellow
	AnsiBlue
	AnsiMagenta
	AnsiCyan
	AnsiWhite
	AnsiBrightBlack
	AnsiBrightRed
	AnsiBrightGreen
	AnsiBrightYellow
	AnsiBrightBlue
	AnsiBrightMagenta
	AnsiBrightCyan
	AnsiBrightWhite
)

// Code returns the SGR foreground code for a.
func (a AnsiColor) Code() int {
	switch a {
	case AnsiBlack:
		return 30
	case AnsiRed:
		return 31
	case AnsiGreen:
		return 32
	case AnsiYellow:
		return 33
	case AnsiBlue:
		return 34
	case AnsiMagenta:
		return 35
	case AnsiCyan:
		return 36
	case AnsiWhite:
		return 37
	case AnsiBrightBlack:
		return 90
	case AnsiBrightRed:
		return 91
	case AnsiBrightGreen:
		return 92
	case AnsiBrightYellow:
		return 93
	case AnsiBrightBlue:
		return 94
	case AnsiBrightMagenta:
		return 95
	case AnsiBrightCyan:
		return 96
	case AnsiBrightWhite:
		return 97
	default:
		return 39
	}
}

// BgCode returns the SGR background code for a.
func (a AnsiColor) BgCode() int {
	return a.Code() + 10
}

// ansiRGB is the fixed display-RGB approximation table from §6, used for
// nearest-ANSI distance math.
var ansiRGB = map[AnsiColor][3]uint8{
	AnsiBlack:         {0, 0, 0},
	AnsiRed:           {205, 0, 0},
	AnsiGreen:         {0, 205, 0},
	AnsiYellow:        {205, 205, 0},
	AnsiBlue:          {0, 0, 238},
	AnsiMagenta:       {205, 0, 205},
	AnsiCyan:          {0, 205, 205},
	AnsiWhite:         {229, 229, 229},
	AnsiBrightBlack:   {127, 127, 127},
	AnsiBrightRed:     {255, 0, 0},
	AnsiBrightGreen:   {0, 255, 0},
	AnsiBrightYellow:  {255, 255, 0},
	AnsiBrightBlue:    {92, 92, 255},
	AnsiBrightMagenta: {255, 0, 255},
	AnsiBrightCyan:    {0, 255, 255},
	AnsiBrightWhite:   {255, 255, 255},
}

// RGB returns the display RGB approximation of a. AnsiDefault reports
// (0,0,0), the same "safe for distance math, not the real default" rule
// as Color.RGB.
func (a AnsiColor) RGB() (uint8, uint8, uint8) {
	t, ok := ansiRGB[a]
	if !ok {
		return 0, 0, 0
	}
	return t[0], t[1], t[2]
}

// ansiSearchOrder is the candidate scan order used by nearest-ANSI search;
// the comparator is strict-less-than, so earlier entries win ties.
var ansiSearchOrder = []AnsiColor{
	AnsiRed, AnsiGreen, AnsiBlue, AnsiYellow, AnsiMagenta, AnsiCyan, AnsiWhite,
	AnsiBrightRed, AnsiBrightGreen, AnsiBrightBlue, AnsiBrightYellow,
	AnsiBrightMagenta, AnsiBrightCyan, AnsiBrightWhite,
	AnsiBlack, AnsiBrightBlack,
}

// ansiAliases maps ansi-name tokens (including prompt_toolkit-style
// aliases such as ansidarkred, ansipurple) to their canonical AnsiColor.
var ansiAliases = map[string]AnsiColor{
	"ansidefault":        AnsiDefault,
	"ansiblack":          AnsiBlack,
	"ansired":            AnsiRed,
	"ansidarkred":        AnsiRed,
	"ansigreen":          AnsiGreen,
	"ansidarkgreen":      AnsiGreen,
	"ansiyellow":         AnsiYellow,
	"ansibrown":          AnsiYellow,
	"ansiblue":           AnsiBlue,
	"ansidarkblue":       AnsiBlue,
	"ansimagenta":        AnsiMagenta,
	"ansipurple":         AnsiMagenta,
	"ansicyan":           AnsiCyan,
	"ansiteal":           AnsiCyan,
	"ansiwhite":          AnsiWhite,
	"ansilightgray":      AnsiWhite,
	"ansibrightblack":    AnsiBrightBlack,
	"ansidarkgray":       AnsiBrightBlack,
	"ansibrightred":      AnsiBrightRed,
	"ansibrightgreen":    AnsiBrightGreen,
	"ansibrightyellow":   AnsiBrightYellow,
	"ansibrightblue":     AnsiBrightBlue,
	"ansibrightmagenta":  AnsiBrightMagenta,
	"ansifuchsia":        AnsiBrightMagenta,
	"ansibrightcyan":     AnsiBrightCyan,
	"ansiturquoise":      AnsiBrightCyan,
	"ansibrightwhite":    AnsiBrightWhite,
}

// Color is the closed sum of everything a foreground/background can be:
// the terminal's own default, one of the sixteen ANSI colors, or a full
// RGB triple.
type Color struct {
	kind    ColorKind
	ansi    AnsiColor
	r, g, b uint8
}

// DefaultColor returns the terminal-default color.
func DefaultColor() Color { return Color{kind: ColorDefault} }

// Ansi returns the color for one of the sixteen named ANSI colors.
func Ansi(a AnsiColor) Color { return Color{kind: ColorAnsi, ansi: a} }

// HexColor returns a 24-bit RGB color.
func HexColor(r, g, b uint8) Color { return Color{kind: ColorHex, r: r, g: g, b: b} }

// Kind reports which variant c holds.
func (c Color) Kind() ColorKind { return c.kind }

// AsAnsi reports the ANSI color and true if c is ColorAnsi.
func (c Color) AsAnsi() (AnsiColor, bool) {
	if c.kind == ColorAnsi {
		return c.ansi, true
	}
	return AnsiDefault, false
}

// AsHex reports the RGB triple and true if c is ColorHex.
func (c Color) AsHex() (uint8, uint8, uint8, bool) {
	if c.kind == ColorHex {
		return c.r, c.g, c.b, true
	}
	return 0, 0, 0, false
}

// RGB returns the display RGB for c. Default reports (0,0,0) purely so
// that distance math never has to special-case it; the semantic default
// is emitted to the terminal as SGR 39/49, never as RGB.
func (c Color) RGB() (uint8, uint8, uint8) {
	switch c.kind {
	case ColorAnsi:
		return c.ansi.RGB()
	case ColorHex:
		return c.r, c.g, c.b
	default:
		return 0, 0, 0
	}
}

// Equal reports whether two colors denote the same value.
func (c Color) Equal(other Color) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case ColorAnsi:
		return c.ansi == other.ansi
	case ColorHex:
		return c.r == other.r && c.g == other.g && c.b == other.b
	default:
		return true
	}
}

// ParseColor is the total color-string parser of §4.E: empty string or
// "default" yields DefaultColor; "ansi…" names (including aliases) yield
// an Ansi color; the ~150-entry named table and #RRGGBB/#RGB hex forms
// yield a Hex color; anything else fails.
func ParseColor(s string) (Color, bool) {
	if s == "" || s == "default" {
		return DefaultColor(), true
	}
	lower := strings.ToLower(s)
	if a, ok := ansiAliases[lower]; ok {
		return Ansi(a), true
	}
	if rgb, ok := namedColors[lower]; ok {
		return HexColor(rgb.r, rgb.g, rgb.b), true
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := parseHexColor(s); ok {
			return c, true
		}
	}
	return Color{}, false
}

// parseHexColor handles #RRGGBB and #RGB (digits expanded), delegating
// the actual hex decode to go-colorful so the byte math matches its
// well-tested parser rather than a hand-rolled one.
func parseHexColor(s string) (Color, bool) {
	switch len(s) {
	case 7:
		cc, err := colorful.Hex(s)
		if err != nil {
			return Color{}, false
		}
		r, g, b := cc.RGB255()
		return HexColor(r, g, b), true
	case 4:
		expanded := "#" +
			string([]byte{s[1], s[1]}) +
			string([]byte{s[2], s[2]}) +
			string([]byte{s[3], s[3]})
		cc, err := colorful.Hex(expanded)
		if err != nil {
			return Color{}, false
		}
		r, g, b := cc.RGB255()
		return HexColor(r, g, b), true
	default:
		return Color{}, false
	}
}

// ClosestAnsi resolves c to its nearest 4-bit ANSI color. Default and
// Ansi colors return themselves (a no-op search). Hex colors run the
// saturation-gated squared-RGB nearest search described in §4.E, with an
// optional caller-supplied exclusion list (used by the renderer to avoid
// foreground/background collisions).
func (c Color) ClosestAnsi(exclude ...AnsiColor) AnsiColor {
	switch c.kind {
	case ColorDefault:
		return AnsiDefault
	case ColorAnsi:
		return c.ansi
	default:
		return closestAnsiFromRGB(c.r, c.g, c.b, exclude)
	}
}

func closestAnsiFromRGB(r, g, b uint8, exclude []AnsiColor) AnsiColor {
	ri, gi, bi := int(r), int(g), int(b)
	saturation := abs(ri-gi) + abs(gi-bi) + abs(bi-ri)

	excluded := make(map[AnsiColor]bool, len(exclude)+3)
	for _, a := range exclude {
		excluded[a] = true
	}
	if saturation > 30 {
		excluded[AnsiWhite] = true
		excluded[AnsiBrightBlack] = true
		excluded[AnsiBlack] = true
	}

	best := AnsiDefault
	bestDistance := 257 * 257 * 3
	for _, candidate := range ansiSearchOrder {
		if excluded[candidate] {
			continue
		}
		cr, cg, cb := candidate.RGB()
		dr, dg, db := ri-int(cr), gi-int(cg), bi-int(cb)
		score := dr*dr + dg*dg + db*db
		if score < bestDistance {
			bestDistance = score
			best = candidate
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// PerceptualDistance reports the CIE94 perceptual distance between two
// hex colors, an enrichment beyond the spec-mandated squared-RGB nearest
// search — useful for callers that want a human-weighted distance rather
// than the raw channel math ClosestAnsi uses internally. Non-hex colors
// are compared via their RGB() approximation.
func (c Color) PerceptualDistance(other Color) float64 {
	cr, cg, cb := c.RGB()
	or, og, ob := other.RGB()
	a := colorful.Color{R: float64(cr) / 255, G: float64(cg) / 255, B: float64(cb) / 255}
	b := colorful.Color{R: float64(or) / 255, G: float64(og) / 255, B: float64(ob) / 255}
	return a.DistanceCIE94(b)
}

// ColorDepth selects which color-encoding tier the output emitter targets.
// Named distinctly from Color's Default sentinel per the §9 open question.
type ColorDepth uint8

const (
	DepthMonochrome ColorDepth = iota
	Depth4Bit
	Depth8Bit
	Depth24Bit
)
