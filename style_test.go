package vt100

import "testing"

func TestAttrSettingMerge(t *testing.T) {
	if got := AttrAutomatic.merge(AttrEnabled); got != AttrEnabled {
		t.Fatalf("Automatic.merge(Enabled) = %v, want Enabled", got)
	}
	if got := AttrDisabled.merge(AttrEnabled); got != AttrDisabled {
		t.Fatalf("Disabled.merge(Enabled) = %v, want Disabled (left-absorbing only for Automatic)", got)
	}
}

func TestMergeAttrsIdentity(t *testing.T) {
	x := Attrs{HasForeground: true, Foreground: Ansi(AnsiRed), Bold: AttrEnabled}
	got := MergeAttrs([]Attrs{x})
	if !attrsEqual(got, x) {
		t.Fatalf("MergeAttrs([x]) = %+v, want %+v", got, x)
	}
}

func attrsEqual(a, b Attrs) bool {
	return a.HasForeground == b.HasForeground && a.Foreground.Equal(b.Foreground) &&
		a.HasBackground == b.HasBackground && a.Background.Equal(b.Background) &&
		a.Bold == b.Bold && a.Italic == b.Italic && a.Underline == b.Underline &&
		a.Strike == b.Strike && a.Blink == b.Blink && a.Reverse == b.Reverse && a.Hidden == b.Hidden
}

func TestMergeAttrsAutomaticCoalesces(t *testing.T) {
	base := Attrs{Bold: AttrEnabled, Italic: AttrDisabled}
	override := Attrs{} // every flag Automatic
	got := MergeAttrs([]Attrs{base, override})
	if got.Bold != AttrEnabled || got.Italic != AttrDisabled {
		t.Fatalf("got %+v, want base's explicit settings to survive an Automatic override", got)
	}
}

func TestMergeAttrsColorFirstNonNone(t *testing.T) {
	base := Attrs{HasForeground: true, Foreground: Ansi(AnsiGreen)}
	override := Attrs{} // no color set
	got := MergeAttrs([]Attrs{base, override})
	if !got.HasForeground {
		t.Fatal("expected base's foreground to survive")
	}
	if a, _ := got.Foreground.AsAnsi(); a != AnsiGreen {
		t.Fatalf("got %v, want AnsiGreen", a)
	}
}

func TestParseStyleString(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		a := ParseStyleString("bold italic underline")
		if a.Bold != AttrEnabled || a.Italic != AttrEnabled || a.Underline != AttrEnabled {
			t.Fatalf("got %+v", a)
		}
		if a.Strike != AttrAutomatic {
			t.Fatalf("untouched flag should stay Automatic, got %v", a.Strike)
		}
	})

	t.Run("negation", func(t *testing.T) {
		a := ParseStyleString("bold nobold")
		if a.Bold != AttrDisabled {
			t.Fatalf("later token should win: got %v, want Disabled", a.Bold)
		}
	})

	t.Run("noinherit", func(t *testing.T) {
		a := ParseStyleString("noinherit bold")
		if a.Italic != AttrDisabled || a.Underline != AttrDisabled {
			t.Fatalf("noinherit should disable every other flag, got %+v", a)
		}
		if a.Bold != AttrEnabled {
			t.Fatalf("explicit bold after noinherit should still apply, got %v", a.Bold)
		}
	})

	t.Run("fg and bg", func(t *testing.T) {
		a := ParseStyleString("fg:#ff0000 bg:ansiblue")
		if !a.HasForeground || !a.HasBackground {
			t.Fatalf("got %+v", a)
		}
		r, g, b, _ := a.Foreground.AsHex()
		if r != 0xff || g != 0 || b != 0 {
			t.Fatalf("fg = %x,%x,%x", r, g, b)
		}
		if bg, _ := a.Background.AsAnsi(); bg != AnsiBlue {
			t.Fatalf("bg = %v, want AnsiBlue", bg)
		}
	})

	t.Run("bare color ignored", func(t *testing.T) {
		a := ParseStyleString("red bold")
		if a.HasForeground {
			t.Fatal("bare color token without fg:/bg: should be ignored")
		}
		if a.Bold != AttrEnabled {
			t.Fatal("other tokens on the same line should still apply")
		}
	})

	t.Run("bad color silently ignored", func(t *testing.T) {
		a := ParseStyleString("fg:not-a-color bold")
		if a.HasForeground {
			t.Fatal("failed fg parse should not set HasForeground")
		}
		if a.Bold != AttrEnabled {
			t.Fatal("other tokens should still apply")
		}
	})
}

func TestResolveAttrsRootDefault(t *testing.T) {
	a := ResolveAttrs("")
	if a.Bold.on() || a.Italic.on() || a.Underline.on() || a.Strike.on() || a.Blink.on() || a.Reverse.on() || a.Hidden.on() {
		t.Fatalf("empty style over the root default should have every flag off, got %+v", a)
	}
}

func TestStandardStyleInvalidClassNames(t *testing.T) {
	_, err := NewStandardStyle([]StyleRule{{ClassNames: "Bad Class!", Style: "bold"}})
	if err == nil {
		t.Fatal("expected an error for invalid class names")
	}
}

func TestStandardStyleGetAttrs(t *testing.T) {
	ss, err := NewStandardStyle([]StyleRule{
		{ClassNames: "error", Style: "bold fg:#ff0000"},
		{ClassNames: "dim", Style: "fg:ansiblack"},
	})
	if err != nil {
		t.Fatalf("NewStandardStyle: %v", err)
	}

	a := ss.GetAttrs([]string{"error"}, "")
	if !a.Bold.on() {
		t.Fatal("expected bold from the matched 'error' rule")
	}
	r, _, _, _ := a.Foreground.AsHex()
	if r != 0xff {
		t.Fatalf("expected matched rule's foreground, got %+v", a.Foreground)
	}

	// Inline style takes precedence over the class rule.
	a = ss.GetAttrs([]string{"dim"}, "fg:ansired")
	if fg, _ := a.Foreground.AsAnsi(); fg != AnsiRed {
		t.Fatalf("inline style should win over class rule, got %v", fg)
	}
}

func TestStandardStyleInvalidationHash(t *testing.T) {
	rules := []StyleRule{{ClassNames: "x", Style: "bold"}}
	a, err := NewStandardStyle(rules)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewStandardStyle(rules)
	if err != nil {
		t.Fatal(err)
	}
	if a.InvalidationHash() != b.InvalidationHash() {
		t.Fatal("identical rule sets should hash identically")
	}

	c, err := NewStandardStyle([]StyleRule{{ClassNames: "x", Style: "italic"}})
	if err != nil {
		t.Fatal(err)
	}
	if a.InvalidationHash() == c.InvalidationHash() {
		t.Fatal("different rule sets should hash differently")
	}
}
