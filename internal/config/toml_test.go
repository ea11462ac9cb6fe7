package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[practice]
set = "pangrams"
speak-keys = true

[speech]
command = "espeak"
phrase-rate = 150
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Practice.Set == nil || *cfg.Practice.Set != "pangrams" {
		t.Fatalf("Set = %v, want pangrams", cfg.Practice.Set)
	}
	if cfg.Practice.SpeakKeys == nil || !*cfg.Practice.SpeakKeys {
		t.Fatalf("SpeakKeys = %v, want true", cfg.Practice.SpeakKeys)
	}
	// Unset values stay nil so flag/default precedence can tell them apart.
	if cfg.Practice.ShowKeyboard != nil {
		t.Fatalf("ShowKeyboard = %v, want nil", cfg.Practice.ShowKeyboard)
	}
	if cfg.Speech.Command == nil || *cfg.Speech.Command != "espeak" {
		t.Fatalf("Command = %v, want espeak", cfg.Speech.Command)
	}
	if cfg.Speech.PhraseRate == nil || *cfg.Speech.PhraseRate != 150 {
		t.Fatalf("PhraseRate = %v, want 150", cfg.Speech.PhraseRate)
	}
	if cfg.Speech.LetterPitch != nil {
		t.Fatalf("LetterPitch = %v, want nil", cfg.Speech.LetterPitch)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Practice.Set != nil {
		t.Fatal("missing file produced non-zero config")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice\nset="), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}
