// Package speech announces keys and phrases through an external
// text-to-speech command.
package speech

import (
	"unicode"

	"github.com/chi-feng/typing-game/internal/model"
)

// Speaker announces keys and phrases. Speech runs in the background; a new
// utterance replaces the one still playing.
type Speaker interface {
	// SpeakKey announces a single key, such as "a" or "space".
	SpeakKey(key rune)
	// SpeakPhrase reads text aloud.
	SpeakPhrase(text string)
	// Close stops any speech in progress.
	Close() error
}

// Compile-time interface checks.
var (
	_ Speaker = (*Engine)(nil)
	_ Speaker = NoOp{}
)

// NoOp is a speaker that does nothing. Used when speech is unavailable.
type NoOp struct{}

// SpeakKey does nothing.
func (NoOp) SpeakKey(rune) {}

// SpeakPhrase does nothing.
func (NoOp) SpeakPhrase(string) {}

// Close does nothing.
func (NoOp) Close() error { return nil }

// keyNames maps keys whose spoken name is not the key itself.
var keyNames = map[rune]string{
	' ':  "space",
	'.':  "period",
	',':  "comma",
	'!':  "exclamation mark",
	'?':  "question mark",
	'\'': "apostrophe",
	'"':  "quote",
	';':  "semicolon",
	':':  "colon",
	'-':  "hyphen",
	'/':  "slash",
	'\\': "backslash",
	'(':  "open paren",
	')':  "close paren",
	'&':  "ampersand",
	'@':  "at sign",
	'#':  "number sign",
	'$':  "dollar sign",
	'%':  "percent",
	'*':  "star",
	'+':  "plus",
	'=':  "equals",
	'_':  "underscore",
}

// KeyName returns the spoken name of a key. Letters are spoken in
// lowercase regardless of the case expected by the phrase.
func KeyName(key rune) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	return string(unicode.ToLower(key))
}

// FromConfig builds a speaker from the speech configuration, falling back
// to NoOp when no text-to-speech command is available.
func FromConfig(cfg model.SpeechConfig) (Speaker, error) {
	engine, err := New(cfg)
	if err != nil {
		return NoOp{}, err
	}
	return engine, nil
}
