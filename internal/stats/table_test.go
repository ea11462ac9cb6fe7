package stats

import "testing"

func TestRenderTableAlignsColumns(t *testing.T) {
	headers := []string{"Phrase", "Best", "Achieved"}
	rows := [][]string{
		{"the cat", "2.1s", "2024-05-01 09:30"},
		{"hi", "12.0s", "2024-05-02 10:00"},
	}

	lines := renderTable(headers, rows, 1)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Phrase    Best  Achieved" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "the cat   2.1s  2024-05-01 09:30" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "hi       12.0s  2024-05-02 10:00" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if lines := renderTable(nil, nil); lines != nil {
		t.Fatalf("expected nil for empty table, got %v", lines)
	}
}

func TestRenderTableRaggedRows(t *testing.T) {
	lines := renderTable([]string{"A"}, [][]string{{"x", "extra"}})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}
