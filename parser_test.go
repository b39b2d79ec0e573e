package vt100

import (
	"reflect"
	"testing"
)

func keyPressesEqual(a, b []KeyPress) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Key.Equal(b[i].Key) || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}

func TestParserScenarios(t *testing.T) {
	t.Run("S1 plain characters", func(t *testing.T) {
		p := NewParser()
		got := p.Feed([]byte("hello"))
		want := []KeyPress{
			{Key: Char('h'), Text: "h"},
			{Key: Char('e'), Text: "e"},
			{Key: Char('l'), Text: "l"},
			{Key: Char('l'), Text: "l"},
			{Key: Char('o'), Text: "o"},
		}
		if !keyPressesEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("S2 arrow up", func(t *testing.T) {
		p := NewParser()
		got := p.Feed([]byte("\x1b[A"))
		want := []KeyPress{{Key: KeyUp, Text: "\x1b[A"}}
		if !keyPressesEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("S3 lone CSI introducer resolved by flush", func(t *testing.T) {
		p := NewParser()
		if got := p.Feed([]byte("\x1b[")); len(got) != 0 {
			t.Fatalf("feed should buffer, got %+v", got)
		}
		got := p.Flush()
		want := []KeyPress{
			{Key: KeyEscape, Text: "\x1b"},
			{Key: Char('['), Text: "["},
		}
		if !keyPressesEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("S4 bracketed paste", func(t *testing.T) {
		p := NewParser()
		got := p.Feed([]byte("\x1b[200~abc\x1b[201~"))
		want := []KeyPress{{Key: KeyBracketPaste, Text: "abc"}}
		if !keyPressesEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("S5 control-delete", func(t *testing.T) {
		p := NewParser()
		got := p.Feed([]byte("\x1b[3;5~"))
		want := []KeyPress{{Key: named("c-delete"), Text: "\x1b[3;5~"}}
		if !keyPressesEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("S6 alt-up decomposes to escape and up", func(t *testing.T) {
		p := NewParser()
		got := p.Feed([]byte("\x1b[1;3A"))
		want := []KeyPress{
			{Key: KeyEscape, Text: "\x1b[1;3A"},
			{Key: KeyUp, Text: ""},
		}
		if !keyPressesEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})
}

func TestParserBracketedPasteStraddlesFeedBoundary(t *testing.T) {
	p := NewParser()
	chunks := []string{"\x1b[200", "~ab", "c\x1b[2", "01~"}
	var got []KeyPress
	for _, c := range chunks {
		got = append(got, p.Feed([]byte(c))...)
	}
	want := []KeyPress{{Key: KeyBracketPaste, Text: "abc"}}
	if !keyPressesEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParserTotalityAcrossArbitraryChunking(t *testing.T) {
	input := "hi\x1b[A\x1b[1;3Ax\x1b[200~paste me\x1b[201~\x1b[3;5~\x1b"

	reference := NewParser()
	want := reference.Feed([]byte(input))
	want = append(want, reference.Flush()...)

	splits := [][]int{
		{1, 3, 5},
		{0, len(input)},
		{2, 2, 2, len(input)},
	}
	for _, cuts := range splits {
		p := NewParser()
		var got []KeyPress
		pos := 0
		for _, cut := range cuts {
			if cut <= pos || cut > len(input) {
				continue
			}
			got = append(got, p.Feed([]byte(input[pos:cut]))...)
			pos = cut
		}
		if pos < len(input) {
			got = append(got, p.Feed([]byte(input[pos:]))...)
		}
		got = append(got, p.Flush()...)
		if !keyPressesEqual(got, want) {
			t.Errorf("chunking %v: got %+v, want %+v", cuts, got, want)
		}
	}
}

func TestParserTextRoundTrip(t *testing.T) {
	input := "abc\x1b[A\x1b[3;5~def"
	p := NewParser()
	got := p.Feed([]byte(input))
	got = append(got, p.Flush()...)

	var rebuilt string
	for _, kp := range got {
		rebuilt += kp.Text
	}
	if rebuilt != input {
		t.Errorf("round-trip: got %q, want %q", rebuilt, input)
	}
}

func TestParserInvalidCSIFallsBackToCharacters(t *testing.T) {
	p := NewParser()
	got := p.Feed([]byte("\x1b[9Z"))
	got = append(got, p.Flush()...)
	want := []KeyPress{
		{Key: KeyEscape, Text: "\x1b"},
		{Key: Char('['), Text: "["},
		{Key: Char('9'), Text: "9"},
		{Key: Char('Z'), Text: "Z"},
	}
	if !keyPressesEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParserMultibyteRuneNotSplitAcrossFeeds(t *testing.T) {
	r := '日'
	buf := make([]byte, 4)
	n := copy(buf, string(r))
	buf = buf[:n]

	p := NewParser()
	var got []KeyPress
	for i := 0; i < n-1; i++ {
		if got2 := p.Feed(buf[i : i+1]); len(got2) != 0 {
			t.Fatalf("rune should not be split before all bytes arrive, got %+v at byte %d", got2, i)
		}
	}
	got = p.Feed(buf[n-1:])
	got = append(got, p.Flush()...)
	want := []KeyPress{{Key: Char(r), Text: string(r)}}
	if !keyPressesEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParserCPRResponse(t *testing.T) {
	p := NewParser()
	got := p.Feed([]byte("\x1b[24;80R"))
	want := []KeyPress{{Key: KeyCPRResponse, Text: "\x1b[24;80R"}}
	if !keyPressesEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestKeySymbolString(t *testing.T) {
	if got := Char('q').String(); got != "q" {
		t.Errorf("Char('q').String() = %q, want %q", got, "q")
	}
	if got := KeyUp.String(); got != "up" {
		t.Errorf("KeyUp.String() = %q, want %q", got, "up")
	}
}

func TestResolveBindingName(t *testing.T) {
	cases := map[string]string{
		"backspace": "c-h",
		"enter":     "c-m",
		"left":      "left",
	}
	for in, want := range cases {
		if got := ResolveBindingName(in); got != want {
			t.Errorf("ResolveBindingName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeySymbolEqualIgnoresReflectIdentity(t *testing.T) {
	a := named("left")
	b := KeyLeft
	if !a.Equal(b) {
		t.Errorf("expected %+v to equal %+v", a, b)
	}
	if reflect.DeepEqual(a, Char('a')) {
		t.Errorf("named(\"left\") should not equal Char('a')")
	}
}
