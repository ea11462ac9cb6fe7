// Package phrase provides phrase normalization, phrase sets, and word
// scanning for the typing game.
package phrase

import "strings"

// typable maps characters that do not appear on the keyboard to the closest
// sequence a player can type. An empty replacement drops the character, so
// the typing form may be shorter than the display form.
var typable = map[rune]string{
	'‘': "'",   // left single quote
	'’': "'",   // right single quote
	'‚': "'",   // low single quote
	'“': `"`,   // left double quote
	'”': `"`,   // right double quote
	'„': `"`,   // low double quote
	'–': "-",   // en dash
	'—': "-",   // em dash
	'―': "-",   // horizontal bar
	'−': "-",   // minus sign
	'…': "...", // ellipsis
	' ': " ",   // no-break space
	'™': "",    // trade mark sign
	'®': "",    // registered sign
	'©': "",    // copyright sign
}

// Normalize returns the typing form of text: every special character is
// replaced by its typable equivalent, everything else passes through.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := typable[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Phrase pairs the display text with the form the player actually types.
// The two forms may differ in length when normalization drops characters.
type Phrase struct {
	Display string
	Typing  string
}

// New builds a Phrase from display text.
func New(display string) Phrase {
	return Phrase{Display: display, Typing: Normalize(display)}
}
