// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Speech   SpeechConfig   `toml:"speech"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Set            *string `toml:"set"`
	SpeakKeys      *bool   `toml:"speak-keys"`
	ShowKeyboard   *bool   `toml:"show-keyboard"`
	ShowSpaceGlyph *bool   `toml:"show-space-glyph"`
}

// SpeechConfig maps text-to-speech settings.
type SpeechConfig struct {
	Command     *string `toml:"command"`
	LetterPitch *int    `toml:"letter-pitch"`
	PhraseRate  *int    `toml:"phrase-rate"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
