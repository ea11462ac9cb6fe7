package phrase

// Bounds returns the [start, end) rune bounds of the word containing cursor.
// The word extends backward to the nearest space (or the phrase start) and
// forward to the next space (or the phrase end). A cursor on a space yields
// empty bounds at the cursor. ok is false when cursor is outside the phrase.
func Bounds(runes []rune, cursor int) (start, end int, ok bool) {
	if cursor < 0 || cursor >= len(runes) {
		return 0, 0, false
	}
	if runes[cursor] == ' ' {
		return cursor, cursor, true
	}
	start = cursor
	for start > 0 && runes[start-1] != ' ' {
		start--
	}
	end = cursor
	for end < len(runes) && runes[end] != ' ' {
		end++
	}
	return start, end, true
}

// Upcoming returns the not-yet-typed runes of the word under cursor. When
// cursor sits on a space the word is empty. The result is empty when cursor
// is at or past the end of the phrase.
func Upcoming(runes []rune, cursor int) []rune {
	_, end, ok := Bounds(runes, cursor)
	if !ok {
		return nil
	}
	out := make([]rune, end-cursor)
	copy(out, runes[cursor:end])
	return out
}
