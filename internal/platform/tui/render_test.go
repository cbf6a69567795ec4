package tui

import (
	"strings"
	"testing"

	"github.com/quellen/wander/internal/core"
)

// stripEscapes removes ANSI escape sequences so tests can compare the
// visible glyph stream regardless of the active color profile.
func stripEscapes(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func TestRenderScreenPlainRows(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	got := RenderScreen(s)
	if got != "abc\ndef" {
		t.Errorf("RenderScreen = %q, want %q", got, "abc\ndef")
	}
}

func TestRenderScreenKeepsGlyphOrderAcrossRuns(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetCell(0, 0, 'a', core.ColorDefault)
	s.SetCell(1, 0, 'b', core.ColorRed)
	s.SetCell(2, 0, 'c', core.ColorRed)
	s.SetCell(3, 0, 'd', core.ColorGreen)

	got := stripEscapes(RenderScreen(s))
	if got != "abcd" {
		t.Errorf("visible glyphs = %q, want %q", got, "abcd")
	}
}

func TestRenderScreenUnknownColorFallsBack(t *testing.T) {
	s := core.NewScreen(2, 1)
	s.SetCell(0, 0, 'x', core.Color(250))
	s.SetCell(1, 0, 'y', core.ColorDefault)

	got := stripEscapes(RenderScreen(s))
	if got != "xy" {
		t.Errorf("visible glyphs = %q, want %q", got, "xy")
	}
}
