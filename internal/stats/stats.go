// Package stats contains time calculations and report rendering for the
// times review.
package stats

import (
	"fmt"
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// WPM returns words per minute for an attempt, using the five characters
// per word convention.
func WPM(chars int, durationMs int64) float64 {
	if chars <= 0 || durationMs <= 0 {
		return 0
	}
	minutes := float64(durationMs) / 60000.0
	return (float64(chars) / 5.0) / minutes
}

// FormatMs renders a duration in seconds with tenths, such as "2.8s".
// Tenths round half up, so 150ms renders as "0.2s".
func FormatMs(ms int64) string {
	tenths := (ms + 50) / 100
	return fmt.Sprintf("%d.%ds", tenths/10, tenths%10)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
