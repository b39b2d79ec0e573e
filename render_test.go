package vt100

import (
	"io"
	"os"
	"strings"
	"testing"
)

func renderToString(t *testing.T, build func(*Screen)) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	screen := NewScreen(5, 1)
	build(screen)

	out := NewOutput(int(w.Fd()), nil)
	NewRenderer().Render(out, screen, TerminalSize{Rows: 1, Cols: 5}, Depth24Bit)
	w.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(got)
}

// TestRenderS7 covers scenario S7: a 1-row screen with a single bold,
// truecolor-red cell emits the SGR sequence immediately followed by the
// character.
func TestRenderS7(t *testing.T) {
	out := renderToString(t, func(s *Screen) {
		s.DirectDraw(WritePosition{Xpos: 0, Ypos: 0, Width: 1, Height: 1}, "H", "bold fg:#ff0000")
	})
	if !strings.Contains(out, "\x1b[0;38;2;255;0;0;1mH") {
		t.Fatalf("render output %q does not contain the S7 sequence", out)
	}
}

func TestRenderHidesCursorAndDisablesWrap(t *testing.T) {
	out := renderToString(t, func(s *Screen) {})
	if !strings.HasPrefix(out, "\x1b[?25l\x1b[?7l") {
		t.Fatalf("render output %q should start by hiding the cursor and disabling wrap", out)
	}
}

func TestRenderShowsCursorWhenRequested(t *testing.T) {
	out := renderToString(t, func(s *Screen) { s.ShowCursor = true })
	if !strings.HasSuffix(out, "\x1b[?25l\x1b[?25h") {
		t.Fatalf("render output %q should end by showing the cursor", out)
	}
}

func TestRenderHidesCursorWhenNotRequested(t *testing.T) {
	out := renderToString(t, func(s *Screen) { s.ShowCursor = false })
	if strings.HasSuffix(out, "\x1b[?25h") {
		t.Fatal("render should not show the cursor when screen.ShowCursor is false")
	}
}

// TestRenderIdempotence covers universal property 7: two independent
// renders of byte-identical screens, each starting from a fresh
// Renderer (so the starting cursor position is identical too), produce
// byte-equal output.
func TestRenderIdempotence(t *testing.T) {
	build := func(s *Screen) {
		s.DirectDraw(WritePosition{Xpos: 0, Ypos: 0, Width: 5, Height: 1}, "abc", "underline")
	}
	first := renderToString(t, build)
	second := renderToString(t, build)
	if first != second {
		t.Fatalf("render not idempotent:\n%q\n%q", first, second)
	}
}

func TestRenderStopsAtLastPopulatedColumn(t *testing.T) {
	// Only column 3 is populated; max_col should clamp to it rather than
	// the full screen width, per §4.I step 3.
	out := renderToString(t, func(s *Screen) {
		s.DirectDraw(WritePosition{Xpos: 3, Ypos: 0, Width: 2, Height: 1}, "x", "")
	})
	if !strings.Contains(out, "x") {
		t.Fatalf("render output %q missing the populated cell", out)
	}
	// Column 4 is not painted: after "x" come only the closing attribute
	// reset and the cursor show.
	if !strings.HasSuffix(out, "x\x1b[0m\x1b[?25l\x1b[?25h") {
		t.Fatalf("render output %q paints past the last populated column", out)
	}
}
