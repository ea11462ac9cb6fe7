// Package keyboard maps runes to physical key positions on a US QWERTY
// layout, including the shift fallback for symbols and uppercase letters.
package keyboard

import "unicode"

// layout holds the unshifted legend of every key, row by row. All legends
// are ASCII, so column positions equal rune positions.
var layout = []string{
	"`1234567890-=",
	"qwertyuiop[]\\",
	"asdfghjkl;'",
	"zxcvbnm,./",
	" ",
}

// shifted maps a symbol to the base key that produces it with shift held.
var shifted = map[rune]rune{
	'~': '`',
	'!': '1',
	'@': '2',
	'#': '3',
	'$': '4',
	'%': '5',
	'^': '6',
	'&': '7',
	'*': '8',
	'(': '9',
	')': '0',
	'_': '-',
	'+': '=',
	'{': '[',
	'}': ']',
	'|': '\\',
	':': ';',
	'"': '\'',
	'<': ',',
	'>': '.',
	'?': '/',
}

// Position identifies a key by its row and column in the layout.
type Position struct {
	Row int
	Col int
}

// Locate returns the position of the key that produces r. Uppercase letters
// resolve to their lowercase key and shifted symbols to their base key, so
// '@' locates the '2' key. ok is false for runes with no key.
func Locate(r rune) (Position, bool) {
	r = unicode.ToLower(r)
	if base, ok := shifted[r]; ok {
		r = base
	}
	for ri, row := range layout {
		col := 0
		for _, key := range row {
			if key == r {
				return Position{Row: ri, Col: col}, true
			}
			col++
		}
	}
	return Position{}, false
}

// NeedsShift reports whether typing r requires the shift key.
func NeedsShift(r rune) bool {
	if unicode.IsUpper(r) {
		return true
	}
	_, ok := shifted[r]
	return ok
}

// Rows returns the unshifted key legends, row by row.
func Rows() []string {
	return layout
}
