package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/chi-feng/typing-game/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func TestBestTimeRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.BestTime(ctx, "the cat"); err != nil || ok {
		t.Fatalf("BestTime on empty store = ok %v, err %v", ok, err)
	}

	achieved := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	want := model.BestTime{Phrase: "the cat", BestMs: 2100, AchievedAt: achieved}
	if err := s.SaveBestTime(ctx, want); err != nil {
		t.Fatalf("SaveBestTime failed: %v", err)
	}

	got, ok, err := s.BestTime(ctx, "the cat")
	if err != nil {
		t.Fatalf("BestTime failed: %v", err)
	}
	if !ok {
		t.Fatal("BestTime not found after save")
	}
	if got.BestMs != want.BestMs || !got.AchievedAt.Equal(want.AchievedAt) {
		t.Fatalf("BestTime = %+v, want %+v", got, want)
	}
}

func TestSaveBestTimeUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := model.BestTime{Phrase: "hi", BestMs: 3000, AchievedAt: time.Now().UTC()}
	if err := s.SaveBestTime(ctx, first); err != nil {
		t.Fatalf("SaveBestTime failed: %v", err)
	}
	second := first
	second.BestMs = 1800
	if err := s.SaveBestTime(ctx, second); err != nil {
		t.Fatalf("SaveBestTime upsert failed: %v", err)
	}

	got, ok, err := s.BestTime(ctx, "hi")
	if err != nil || !ok {
		t.Fatalf("BestTime = ok %v, err %v", ok, err)
	}
	if got.BestMs != 1800 {
		t.Fatalf("BestMs = %d, want 1800", got.BestMs)
	}

	all, err := s.ListBestTimes(ctx)
	if err != nil {
		t.Fatalf("ListBestTimes failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ListBestTimes returned %d rows, want 1", len(all))
	}
}

func TestListAttemptsFilterAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	attempts := []model.Attempt{
		{SetKey: "starter", Phrase: "cat", Chars: 3, DurationMs: 2000, CompletedAt: base},
		{SetKey: "pangrams", Phrase: "sphinx", Chars: 6, DurationMs: 4000, CompletedAt: base.Add(time.Minute)},
		{SetKey: "starter", Phrase: "dog", Chars: 3, DurationMs: 1800, CompletedAt: base.Add(2 * time.Minute)},
		{SetKey: "starter", Phrase: "cat", Chars: 3, DurationMs: 1500, CompletedAt: base.Add(3 * time.Minute)},
	}
	for _, a := range attempts {
		if _, err := s.InsertAttempt(ctx, a); err != nil {
			t.Fatalf("InsertAttempt failed: %v", err)
		}
	}

	all, err := s.ListAttempts(ctx, model.TimesConfig{})
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("ListAttempts returned %d rows, want 4", len(all))
	}
	if !all[0].CompletedAt.Equal(base) {
		t.Fatalf("attempts not ordered oldest first: %+v", all[0])
	}

	starter, err := s.ListAttempts(ctx, model.TimesConfig{SetKey: "starter"})
	if err != nil {
		t.Fatalf("ListAttempts with set filter failed: %v", err)
	}
	if len(starter) != 3 {
		t.Fatalf("filtered attempts = %d, want 3", len(starter))
	}

	recent, err := s.ListAttempts(ctx, model.TimesConfig{SetKey: "starter", Last: 2})
	if err != nil {
		t.Fatalf("ListAttempts with limit failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("limited attempts = %d, want 2", len(recent))
	}
	if recent[0].Phrase != "dog" || recent[1].Phrase != "cat" {
		t.Fatalf("limited attempts out of order: %+v", recent)
	}
}

func TestPrefRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.Pref(ctx, PrefSet); err != nil || ok {
		t.Fatalf("Pref on empty store = ok %v, err %v", ok, err)
	}
	if err := s.SavePref(ctx, PrefSet, "pangrams"); err != nil {
		t.Fatalf("SavePref failed: %v", err)
	}
	if err := s.SavePref(ctx, PrefSet, "proverbs"); err != nil {
		t.Fatalf("SavePref overwrite failed: %v", err)
	}
	value, ok, err := s.Pref(ctx, PrefSet)
	if err != nil || !ok {
		t.Fatalf("Pref = ok %v, err %v", ok, err)
	}
	if value != "proverbs" {
		t.Fatalf("Pref = %q, want proverbs", value)
	}
}

func TestLoadToggles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := model.DefaultToggles()

	got, err := s.LoadToggles(ctx, base)
	if err != nil {
		t.Fatalf("LoadToggles failed: %v", err)
	}
	if got != base {
		t.Fatalf("LoadToggles on empty store = %+v, want base %+v", got, base)
	}

	if err := s.SaveTogglePref(ctx, PrefSpeakKeys, true); err != nil {
		t.Fatalf("SaveTogglePref failed: %v", err)
	}
	if err := s.SaveTogglePref(ctx, PrefShowKeyboard, false); err != nil {
		t.Fatalf("SaveTogglePref failed: %v", err)
	}

	got, err = s.LoadToggles(ctx, base)
	if err != nil {
		t.Fatalf("LoadToggles failed: %v", err)
	}
	if !got.SpeakKeys || got.ShowKeyboard {
		t.Fatalf("LoadToggles = %+v, want stored overrides applied", got)
	}
	if got.ShowSpaceGlyph != base.ShowSpaceGlyph {
		t.Fatalf("untouched toggle changed: %+v", got)
	}
}

func TestLoadTogglesIgnoresCorruptValue(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SavePref(ctx, PrefSpeakKeys, "maybe"); err != nil {
		t.Fatalf("SavePref failed: %v", err)
	}
	base := model.DefaultToggles()
	got, err := s.LoadToggles(ctx, base)
	if err != nil {
		t.Fatalf("LoadToggles failed: %v", err)
	}
	if got.SpeakKeys != base.SpeakKeys {
		t.Fatalf("corrupt pref changed toggle: %+v", got)
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "game.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
