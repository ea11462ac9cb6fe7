package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/chi-feng/typing-game/internal/phrase"
)

// spaceGlyph marks untyped spaces when the space marks toggle is on.
const spaceGlyph = '␣'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles the typing form around the cursor: the matched
// prefix, the cursor itself, the rest of the word under the cursor, then
// everything still pending. A negative cursor renders the whole phrase as
// matched.
func buildStyledRunes(target []rune, cursor int, showSpaceGlyph bool) []styledRune {
	wordStart, wordEnd := -1, -1
	if start, end, ok := phrase.Bounds(target, cursor); ok {
		wordStart, wordEnd = start, end
	}

	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		displayed := r
		matched := cursor < 0 || i < cursor
		style := pendingStyle
		switch {
		case matched:
			style = correctStyle
		case i == cursor:
			style = cursorStyle
		case i >= wordStart && i < wordEnd:
			style = currentWordStyle
		}
		if r == ' ' && !matched && showSpaceGlyph {
			displayed = spaceGlyph
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: r == ' ',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
