// Package session tracks the state of one practice run: the active phrase,
// the match cursor, and the timer.
package session

import (
	"strings"
	"time"
	"unicode"

	"github.com/chi-feng/typing-game/internal/phrase"
)

// Status is the timer state of the current phrase.
type Status int

const (
	// Idle means no correct keystroke has been typed yet.
	Idle Status = iota
	// Running means the timer started and the phrase is in progress.
	Running
	// Completed means every rune was matched; the elapsed time is frozen.
	Completed
)

// MatchResult reports what a keystroke did to the session.
type MatchResult struct {
	Accepted  bool
	Started   bool
	Completed bool
}

// Session holds the mutable state of a practice run. It is not safe for
// concurrent use; the TUI event loop is its only caller.
type Session struct {
	lib         *phrase.Library
	setIndex    int
	phraseIndex int
	custom      *phrase.Phrase

	target []rune
	cursor int

	status    Status
	startedAt time.Time
	elapsed   time.Duration

	// gen increments on every reset. Scheduled tick and auto-advance
	// messages carry the generation they were created under and are
	// dropped when it no longer matches.
	gen int

	now func() time.Time
}

// New starts a session on the set with the given key, falling back to the
// default set and then to the first set when the key is unknown.
func New(lib *phrase.Library, setKey string) *Session {
	s := &Session{lib: lib, now: time.Now}
	if i, ok := lib.IndexOf(setKey); ok {
		s.setIndex = i
	} else if i, ok := lib.IndexOf(phrase.DefaultSetKey); ok {
		s.setIndex = i
	}
	s.load()
	return s
}

// load resets all per-phrase state for the current phrase.
func (s *Session) load() {
	s.target = []rune(s.Phrase().Typing)
	s.cursor = 0
	s.status = Idle
	s.elapsed = 0
	s.gen++
}

func (s *Session) set() phrase.Set {
	return s.lib.At(s.setIndex)
}

func (s *Session) wrapPhrase(i int) int {
	n := len(s.set().Phrases)
	return ((i % n) + n) % n
}

// Phrase returns the phrase being typed: the custom phrase when one is
// active, otherwise the selected phrase of the current set.
func (s *Session) Phrase() phrase.Phrase {
	if s.custom != nil {
		return *s.custom
	}
	return s.set().Phrases[s.phraseIndex]
}

// Set returns the current phrase set.
func (s *Session) Set() phrase.Set {
	return s.set()
}

// SetKey returns the key of the current set.
func (s *Session) SetKey() string {
	return s.set().Key
}

// IsCustom reports whether a custom phrase overlay is active.
func (s *Session) IsCustom() bool {
	return s.custom != nil
}

// PhraseIndex returns the position of the current phrase within its set.
func (s *Session) PhraseIndex() int {
	return s.phraseIndex
}

// PhraseCount returns the number of phrases in the current set.
func (s *Session) PhraseCount() int {
	return len(s.set().Phrases)
}

// TypingRunes returns the typing form of the current phrase.
func (s *Session) TypingRunes() []rune {
	return s.target
}

// Cursor returns the index of the next expected rune. Everything before it
// has been matched.
func (s *Session) Cursor() int {
	return s.cursor
}

// Expected returns the rune the player must type next.
func (s *Session) Expected() (rune, bool) {
	if s.cursor >= len(s.target) {
		return 0, false
	}
	return s.target[s.cursor], true
}

// Status returns the timer state.
func (s *Session) Status() Status {
	return s.status
}

// Generation returns the current reset generation.
func (s *Session) Generation() int {
	return s.gen
}

// Match applies one keystroke. The comparison is case-insensitive; on a
// match the cursor advances past the expected rune in its original case.
// Mismatches and keystrokes after completion change nothing.
func (s *Session) Match(r rune) MatchResult {
	if s.status == Completed || s.cursor >= len(s.target) {
		return MatchResult{}
	}
	expected := s.target[s.cursor]
	if unicode.ToLower(r) != unicode.ToLower(expected) {
		return MatchResult{}
	}
	res := MatchResult{Accepted: true}
	if s.status == Idle {
		s.status = Running
		s.startedAt = s.now()
		res.Started = true
	}
	s.cursor++
	if s.cursor == len(s.target) {
		s.status = Completed
		s.elapsed = s.now().Sub(s.startedAt)
		res.Completed = true
	}
	return res
}

// Elapsed returns the time spent on the current phrase: zero while idle,
// live while running, frozen once completed.
func (s *Session) Elapsed() time.Duration {
	switch s.status {
	case Running:
		return s.now().Sub(s.startedAt)
	case Completed:
		return s.elapsed
	default:
		return 0
	}
}

// Next moves to the next phrase, wrapping past the end of the set. When a
// custom phrase is active it is cleared instead, returning to the set.
func (s *Session) Next() {
	if s.custom != nil {
		s.custom = nil
	} else {
		s.phraseIndex = s.wrapPhrase(s.phraseIndex + 1)
	}
	s.load()
}

// Previous moves to the previous phrase, wrapping past the start of the
// set. When a custom phrase is active it is cleared instead.
func (s *Session) Previous() {
	if s.custom != nil {
		s.custom = nil
	} else {
		s.phraseIndex = s.wrapPhrase(s.phraseIndex - 1)
	}
	s.load()
}

// NextSet switches to the next set, wrapping around the library.
func (s *Session) NextSet() {
	s.moveSet(1)
}

// PreviousSet switches to the previous set, wrapping around the library.
func (s *Session) PreviousSet() {
	s.moveSet(-1)
}

func (s *Session) moveSet(delta int) {
	n := s.lib.Len()
	s.setIndex = ((s.setIndex+delta)%n + n) % n
	s.phraseIndex = 0
	s.custom = nil
	s.load()
}

// SelectSet switches to the set with the given key.
func (s *Session) SelectSet(key string) bool {
	i, ok := s.lib.IndexOf(key)
	if !ok {
		return false
	}
	s.setIndex = i
	s.phraseIndex = 0
	s.custom = nil
	s.load()
	return true
}

// SetCustom replaces the current phrase with a custom one. Text that
// normalizes to nothing typable is rejected.
func (s *Session) SetCustom(text string) bool {
	p := phrase.New(strings.TrimSpace(text))
	if p.Typing == "" {
		return false
	}
	s.custom = &p
	s.load()
	return true
}
