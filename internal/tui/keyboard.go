package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chi-feng/typing-game/internal/keyboard"
	"github.com/chi-feng/typing-game/internal/phrase"
)

var (
	keycapStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	keycapWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	keycapNextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#C89A3A")).
			Bold(true)
	keycapHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// keyHighlights resolves which keycaps to light for the cursor position:
// the key of the expected rune, whether it needs shift, and the keys for
// the rest of the word under the cursor.
func keyHighlights(target []rune, cursor int) (next keyboard.Position, hasNext bool, needShift bool, word map[keyboard.Position]bool) {
	word = make(map[keyboard.Position]bool)
	if cursor >= 0 && cursor < len(target) {
		if pos, ok := keyboard.Locate(target[cursor]); ok {
			next = pos
			hasNext = true
			needShift = keyboard.NeedsShift(target[cursor])
		}
	}
	for _, r := range phrase.Upcoming(target, cursor) {
		pos, ok := keyboard.Locate(r)
		if !ok || (hasNext && pos == next) {
			continue
		}
		word[pos] = true
	}
	return next, hasNext, needShift, word
}

// renderKeyboard draws the keycap rows with the next key lit and the rest
// of the current word tinted.
func renderKeyboard(target []rune, cursor int) string {
	next, hasNext, needShift, word := keyHighlights(target, cursor)

	rows := keyboard.Rows()
	lines := make([]string, 0, len(rows)+1)
	for ri, row := range rows {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", ri))
		for ci, key := range []rune(row) {
			label := " " + string(key) + " "
			if key == ' ' {
				label = "   space   "
			}
			pos := keyboard.Position{Row: ri, Col: ci}
			switch {
			case hasNext && pos == next:
				b.WriteString(keycapNextStyle.Render(label))
			case word[pos]:
				b.WriteString(keycapWordStyle.Render(label))
			default:
				b.WriteString(keycapStyle.Render(label))
			}
			b.WriteByte(' ')
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	if needShift {
		lines = append(lines, keycapHintStyle.Render("⇧ hold shift"))
	}
	return strings.Join(lines, "\n")
}
