package speech

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/chi-feng/typing-game/internal/model"
)

// defaultCommands are tried in order when no command is configured.
var defaultCommands = []string{"say", "espeak", "espeak-ng"}

// Engine shells out to a text-to-speech command. Starting an utterance
// cancels the previous one, so rapid keystrokes never queue up speech.
type Engine struct {
	command     string
	letterPitch int
	phraseRate  int

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New resolves the text-to-speech command and returns an engine for it.
// An empty command picks the first available default.
func New(cfg model.SpeechConfig) (*Engine, error) {
	command := cfg.Command
	if command == "" {
		for _, candidate := range defaultCommands {
			if _, err := exec.LookPath(candidate); err == nil {
				command = candidate
				break
			}
		}
		if command == "" {
			return nil, fmt.Errorf("no text-to-speech command found (tried %v)", defaultCommands)
		}
	} else if _, err := exec.LookPath(command); err != nil {
		return nil, fmt.Errorf("text-to-speech command %q not found: %w", command, err)
	}
	return &Engine{
		command:     command,
		letterPitch: cfg.LetterPitch,
		phraseRate:  cfg.PhraseRate,
	}, nil
}

// SpeakKey announces a single key at the configured letter pitch.
func (e *Engine) SpeakKey(key rune) {
	e.speak(e.keyArgs(KeyName(key)))
}

// SpeakPhrase reads text aloud at the configured phrase rate.
func (e *Engine) SpeakPhrase(text string) {
	if text == "" {
		return
	}
	e.speak(e.phraseArgs(text))
}

// Close stops any utterance in progress.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	return nil
}

func (e *Engine) keyArgs(text string) []string {
	var args []string
	switch filepath.Base(e.command) {
	case "espeak", "espeak-ng":
		if e.letterPitch > 0 {
			args = append(args, "-p", strconv.Itoa(e.letterPitch))
		}
	}
	return append(args, text)
}

func (e *Engine) phraseArgs(text string) []string {
	var args []string
	switch filepath.Base(e.command) {
	case "say":
		if e.phraseRate > 0 {
			args = append(args, "-r", strconv.Itoa(e.phraseRate))
		}
	case "espeak", "espeak-ng":
		if e.phraseRate > 0 {
			args = append(args, "-s", strconv.Itoa(e.phraseRate))
		}
	}
	return append(args, text)
}

// speak cancels the running utterance and starts a new one in the
// background. Failures are swallowed: speech is best-effort.
func (e *Engine) speak(args []string) {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.mu.Unlock()

	cmd := exec.CommandContext(ctx, e.command, args...)
	go func() {
		defer cancel()
		if err := cmd.Run(); err != nil {
			// Cancelled by a newer utterance or the command failed.
			_ = err
		}
	}()
}
