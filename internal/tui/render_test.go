package tui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), 1, false)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected matched style for first rune")
	}
	if runes[1].s != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesCompleted(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), -1, false)
	if runes[0].s != correctStyle.Render("a") || runes[1].s != correctStyle.Render("b") {
		t.Fatalf("expected matched style for all runes when completed")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes([]rune("one two"), 1, false)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected matched style for typed rune")
	}
	if runes[1].s != cursorStyle.Render("n") {
		t.Fatalf("expected cursor style at the cursor")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for rest of word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesSpaceGlyph(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), 1, true)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != cursorStyle.Render("␣") {
		t.Fatalf("expected space glyph at the cursor")
	}
	if !runes[1].isSpace {
		t.Fatalf("expected glyph rune to keep its space flag")
	}
}

func TestBuildStyledRunesMatchedSpaceStaysPlain(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), 2, true)
	if runes[1].s != correctStyle.Render(" ") {
		t.Fatalf("expected matched space without glyph")
	}
}

func TestBuildStyledRunesSpaceGlyphOff(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), 1, false)
	if runes[1].s != cursorStyle.Render(" ") {
		t.Fatalf("expected plain space at the cursor")
	}
}

func plainRunes(s string) []styledRune {
	out := make([]styledRune, 0, len(s))
	for _, r := range s {
		out = append(out, styledRune{
			s:       string(r),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	got := wrapStyledRunes(plainRunes("one two three"), 7)
	if got != "one\ntwo\nthree" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesHardBreaksLongWord(t *testing.T) {
	got := wrapStyledRunes(plainRunes("abcdefgh"), 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesZeroWidth(t *testing.T) {
	got := wrapStyledRunes(plainRunes("one two"), 0)
	if got != "one two" {
		t.Fatalf("expected no wrapping, got %q", got)
	}
}
