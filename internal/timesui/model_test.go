package timesui

import (
	"strings"
	"testing"
	"time"

	"github.com/chi-feng/typing-game/internal/model"
)

func TestBuildBestTableData(t *testing.T) {
	best := []model.BestTime{
		{Phrase: "the cat", BestMs: 2100, AchievedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)},
	}

	cols, rows := buildBestTableData(best, 80)

	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][0] != "the cat" {
		t.Fatalf("unexpected phrase cell: %q", rows[0][0])
	}
	if rows[0][1] != "2.1s" {
		t.Fatalf("unexpected best cell: %q", rows[0][1])
	}
	if rows[0][2] != "2024-05-01 09:30" {
		t.Fatalf("unexpected achieved cell: %q", rows[0][2])
	}
}

func TestBuildBestTableDataTruncatesLongPhrase(t *testing.T) {
	long := strings.Repeat("x", 200)
	best := []model.BestTime{{Phrase: long, BestMs: 1000, AchievedAt: time.Now()}}

	cols, rows := buildBestTableData(best, 60)

	if got := len([]rune(rows[0][0])); got > cols[0].Width {
		t.Fatalf("expected phrase truncated to %d, got %d", cols[0].Width, got)
	}
	if !strings.HasSuffix(rows[0][0], "...") {
		t.Fatalf("expected ellipsis on truncated phrase, got %q", rows[0][0])
	}
}

func TestRenderTrendTabEmpty(t *testing.T) {
	if got := renderTrendTab(nil, 10, 80); got != "No attempts yet." {
		t.Fatalf("unexpected empty trend tab: %q", got)
	}
}

func TestRenderTrendTabSummary(t *testing.T) {
	now := time.Now()
	attempts := []model.Attempt{
		{Phrase: "cat", Chars: 3, DurationMs: 3000, CompletedAt: now.Add(-2 * time.Minute)},
		{Phrase: "dog", Chars: 3, DurationMs: 2500, CompletedAt: now.Add(-time.Minute)},
		{Phrase: "owl", Chars: 3, DurationMs: 2000, CompletedAt: now},
	}

	out := renderTrendTab(attempts, 5, 80)

	if !strings.Contains(out, "Attempts: 3") {
		t.Fatalf("expected attempt count in summary, got %q", out)
	}
	if !strings.Contains(out, "Best WPM") {
		t.Fatalf("expected WPM summary, got %q", out)
	}
	if !strings.Contains(out, "moving average") {
		t.Fatalf("expected trend legend, got %q", out)
	}
}

func TestWindowStepping(t *testing.T) {
	steps := []struct {
		in   int
		next int
		prev int
	}{
		{1, 5, 1},
		{5, 10, 1},
		{7, 10, 5},
		{10, 15, 5},
	}
	for _, tt := range steps {
		if got := nextWindow(tt.in); got != tt.next {
			t.Errorf("nextWindow(%d) = %d, want %d", tt.in, got, tt.next)
		}
		if got := prevWindow(tt.in); got != tt.prev {
			t.Errorf("prevWindow(%d) = %d, want %d", tt.in, got, tt.prev)
		}
	}
}
