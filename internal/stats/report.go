package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/chi-feng/typing-game/internal/model"
	"github.com/chi-feng/typing-game/internal/store"
)

// Report contains precomputed data for the times review.
type Report struct {
	Best     []model.BestTime
	Attempts []model.Attempt
}

// BuildReport loads best times and attempts for the times review. The set
// filter and limit apply to attempts; records are always listed in full.
func BuildReport(ctx context.Context, st *store.Store, cfg model.TimesConfig) (Report, error) {
	best, err := st.ListBestTimes(ctx)
	if err != nil {
		return Report{}, err
	}
	attempts, err := st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{Best: best, Attempts: attempts}, nil
}

// durationsSeconds converts attempt durations to seconds, oldest first.
func durationsSeconds(attempts []model.Attempt) []float64 {
	out := make([]float64, len(attempts))
	for i, a := range attempts {
		out[i] = float64(a.DurationMs) / 1000.0
	}
	return out
}

// RenderBestTimes prints the record table, most recent first.
func RenderBestTimes(w io.Writer, best []model.BestTime) error {
	if len(best) == 0 {
		_, err := fmt.Fprintln(w, "No best times yet.")
		return err
	}
	headers := []string{"Phrase", "Best", "Achieved"}
	rows := make([][]string, 0, len(best))
	for _, bt := range best {
		rows = append(rows, []string{
			bt.Phrase,
			FormatMs(bt.BestMs),
			bt.AchievedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	for _, line := range renderTable(headers, rows, 1) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSummary prints aggregate numbers for the attempts.
func RenderSummary(w io.Writer, attempts []model.Attempt) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts yet.")
		return err
	}
	var totalMs int64
	var totalWPM, bestWPM float64
	for _, a := range attempts {
		totalMs += a.DurationMs
		wpm := WPM(a.Chars, a.DurationMs)
		totalWPM += wpm
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(attempts))
	if _, err := fmt.Fprintf(w, "Attempts: %d\n", len(attempts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg time: %s\n", FormatMs(totalMs/int64(len(attempts)))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.1f\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.1f\n", bestWPM); err != nil {
		return err
	}

	recent := attempts
	if len(recent) > 20 {
		recent = recent[len(recent)-20:]
	}
	if _, err := fmt.Fprintf(w, "Recent: %s\n", Sparkline(durationsSeconds(recent))); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints the duration trend plot sized to the given total
// width.
func RenderTrend(w io.Writer, attempts []model.Attempt, window, totalWidth, height int) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts yet.")
		return err
	}
	durations := durationsSeconds(attempts)
	trend := Trend{
		Values:  durations,
		Average: MovingAverage(durations, window),
		Height:  height,
	}
	if totalWidth > 0 {
		trend.Width = TrendWidthFor(totalWidth)
	}
	return trend.Render(w)
}
