package stats

import (
	"math"
	"testing"
)

func TestWPM(t *testing.T) {
	tests := []struct {
		name       string
		chars      int
		durationMs int64
		want       float64
	}{
		{name: "one word in twelve seconds", chars: 5, durationMs: 12000, want: 5.0},
		{name: "ten chars in one minute", chars: 10, durationMs: 60000, want: 2.0},
		{name: "zero duration", chars: 10, durationMs: 0, want: 0},
		{name: "zero chars", chars: 0, durationMs: 5000, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WPM(tt.chars, tt.durationMs)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("WPM = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{ms: 2800, want: "2.8s"},
		{ms: 150, want: "0.2s"},
		{ms: 2050, want: "2.1s"},
		{ms: 0, want: "0.0s"},
		{ms: 61000, want: "61.0s"},
	}
	for _, tt := range tests {
		if got := FormatMs(tt.ms); got != tt.want {
			t.Errorf("FormatMs(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	got := MovingAverage(values, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("MovingAverage[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMovingAverageWindowOneCopies(t *testing.T) {
	values := []float64{1, 2, 3}
	got := MovingAverage(values, 1)
	got[0] = 99
	if values[0] != 1 {
		t.Fatal("MovingAverage aliased its input")
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	got := Sparkline([]float64{3, 3, 3})
	if len(got) != 3 {
		t.Fatalf("Sparkline length = %d, want 3", len(got))
	}
	if got[0] != got[1] || got[1] != got[2] {
		t.Fatalf("flat series not uniform: %q", got)
	}
}
