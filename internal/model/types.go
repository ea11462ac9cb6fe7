// Package model defines shared data structures.
package model

import "time"

// SpeechConfig selects the TTS command and its delivery parameters.
type SpeechConfig struct {
	Command     string
	LetterPitch int
	PhraseRate  int
}

// Toggles are the persisted UI preferences.
type Toggles struct {
	ShowSpaceGlyph bool
	SpeakKeys      bool
	ShowKeyboard   bool
}

// DefaultToggles returns the documented preference defaults.
func DefaultToggles() Toggles {
	return Toggles{ShowSpaceGlyph: false, SpeakKeys: false, ShowKeyboard: true}
}

// BestTime is a stored record time, keyed by the typing form of a phrase.
type BestTime struct {
	Phrase     string
	BestMs     int64
	AchievedAt time.Time
}

// Attempt captures one completed phrase.
type Attempt struct {
	ID          int64
	SetKey      string
	Phrase      string
	Chars       int
	DurationMs  int64
	CompletedAt time.Time
}

// TimesConfig defines filters and options for the times review UI.
type TimesConfig struct {
	SetKey      string
	Last        int
	TrendWindow int
}
