package vt100

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is a single grid position: a rune, the style string that will
// eventually resolve to Attrs, and the rune's display width.
type Cell struct {
	Char  rune
	Style string
	Width int
}

// NewCell builds a Cell, computing Width from Char via East-Asian-Width
// rules (control bytes render as the character that follows the caret in
// their caret notation and report width 1, the footprint of that single
// character; the '^' itself is not drawn).
func NewCell(r rune, style string) Cell {
	return Cell{Char: r, Style: style, Width: cellWidth(r)}
}

func cellWidth(r rune) int {
	if isControlByte(r) {
		return 1
	}
	return runewidth.RuneWidth(r)
}

func isControlByte(r rune) bool {
	return (r >= 0x00 && r <= 0x1f) || r == 0x7f
}

// caretNotation returns the character that follows the caret in a C0/DEL
// control byte's caret notation ('@'..'_' for ^@..^_, '?' for ^?). The
// leading '^' is not part of the result.
func caretNotation(r rune) rune {
	if r == 0x7f {
		return '?'
	}
	return rune('@' + r)
}

// glyphOf returns the rune a cell actually draws: caretNotation's
// character for control bytes (without a '^'), the rune itself otherwise.
func glyphOf(r rune) rune {
	if isControlByte(r) {
		return caretNotation(r)
	}
	return r
}

// WritePosition is the clip rectangle passed to every draw primitive.
type WritePosition struct {
	Xpos, Ypos, Width, Height int
}

func (wp WritePosition) contains(x, y int) bool {
	return x >= wp.Xpos && x < wp.Xpos+wp.Width && y >= wp.Ypos && y < wp.Ypos+wp.Height
}

// Point is a zero-based grid coordinate.
type Point struct {
	X, Y int
}

// DefaultChar is the transparent fill used for unset cells.
var DefaultChar = NewCell(' ', "[transparent]")

type floatDraw struct {
	z  int
	fn func()
}

// Screen is the sparse cell grid of §4.G: only populated columns are
// stored per row, so a mostly-empty frame costs little to hold or clear.
// Screens are constructed fresh per render frame.
type Screen struct {
	rows   map[int]map[int]Cell
	Width  int
	Height int

	ShowCursor bool
	CursorX    int
	CursorY    int
	MenuX      int
	MenuY      int

	floats      []floatDraw
	nextFloatID int
}

// NewScreen returns an empty width×height screen with the cursor shown
// at the origin.
func NewScreen(width, height int) *Screen {
	return &Screen{
		rows:       make(map[int]map[int]Cell),
		Width:      width,
		Height:     height,
		ShowCursor: true,
	}
}

func (s *Screen) row(y int) map[int]Cell {
	r, ok := s.rows[y]
	if !ok {
		r = make(map[int]Cell)
		s.rows[y] = r
	}
	return r
}

// Get returns the cell at (x,y), or DefaultChar if unset.
func (s *Screen) Get(x, y int) Cell {
	if r, ok := s.rows[y]; ok {
		if c, ok := r[x]; ok {
			return c
		}
	}
	return DefaultChar
}

func (s *Screen) set(x, y int, c Cell) {
	s.row(y)[x] = c
}

// DirectDraw writes each character of data starting at (wp.Xpos, wp.Ypos).
// A newline advances to (wp.Xpos, y+1). Writing stops the instant the
// cursor leaves wp; no cell outside wp is ever touched.
func (s *Screen) DirectDraw(wp WritePosition, data string, style string) {
	x, y := wp.Xpos, wp.Ypos
	for _, r := range data {
		if !wp.contains(x, y) {
			return
		}
		if r == '\n' {
			x, y = wp.Xpos, y+1
			continue
		}
		cell := NewCell(r, style)
		s.set(x, y, cell)
		if cell.Width == 2 {
			x++
			if wp.contains(x, y) {
				s.set(x, y, Cell{Char: 0, Style: style, Width: 0})
			}
		}
		x++
	}
}

// FillArea composes style onto every cell in wp, appending it (after) or
// prepending it (otherwise) with a separating space. An empty style is a
// no-op.
func (s *Screen) FillArea(wp WritePosition, style string, after bool) {
	if style == "" {
		return
	}
	for y := wp.Ypos; y < wp.Ypos+wp.Height; y++ {
		for x := wp.Xpos; x < wp.Xpos+wp.Width; x++ {
			cell := s.Get(x, y)
			cell.Style = composeStyle(cell.Style, style, after)
			s.set(x, y, cell)
		}
	}
}

// AppendStyleToContent appends style to every populated cell's style
// string — used by parent layouts to inject a class cascade.
func (s *Screen) AppendStyleToContent(style string) {
	if style == "" {
		return
	}
	for _, row := range s.rows {
		for x, cell := range row {
			cell.Style = composeStyle(cell.Style, style, true)
			row[x] = cell
		}
	}
}

func composeStyle(existing, addition string, after bool) string {
	if existing == "" {
		return addition
	}
	if after {
		return existing + " " + addition
	}
	return addition + " " + existing
}

// DrawWithZIndex queues fn to run during DrawAllFloats, in ascending z
// order (ties broken by insertion order).
func (s *Screen) DrawWithZIndex(z int, fn func()) {
	s.floats = append(s.floats, floatDraw{z: z, fn: fn})
}

// DrawAllFloats executes every queued float draw in ascending z order and
// clears the queue.
func (s *Screen) DrawAllFloats() {
	sort.SliceStable(s.floats, func(i, j int) bool { return s.floats[i].z < s.floats[j].z })
	for _, f := range s.floats {
		f.fn()
	}
	s.floats = nil
}

// BufferRepresentation dumps the screen as width×height characters per
// line, each line right-trimmed, for use in tests.
func (s *Screen) BufferRepresentation() string {
	var b strings.Builder
	for y := 0; y < s.Height; y++ {
		var line strings.Builder
		for x := 0; x < s.Width; x++ {
			cell := s.Get(x, y)
			if cell.Char == 0 {
				continue
			}
			line.WriteRune(glyphOf(cell.Char))
		}
		fmt.Fprintln(&b, strings.TrimRight(line.String(), " "))
	}
	return strings.TrimRight(b.String(), "\n")
}
