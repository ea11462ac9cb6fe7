// Package main provides the CLI entrypoint for typing-game.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chi-feng/typing-game/internal/config"
	"github.com/chi-feng/typing-game/internal/model"
	"github.com/chi-feng/typing-game/internal/phrase"
	"github.com/chi-feng/typing-game/internal/session"
	"github.com/chi-feng/typing-game/internal/speech"
	"github.com/chi-feng/typing-game/internal/stats"
	"github.com/chi-feng/typing-game/internal/store"
	"github.com/chi-feng/typing-game/internal/timesui"
	"github.com/chi-feng/typing-game/internal/tui"
)

const (
	defaultTrendWindow = 10
	defaultLetterPitch = 60
	defaultPhraseRate  = 140
)

var (
	practiceSet      string
	practiceSpeech   bool
	practiceKeyboard bool
	practiceSpaces   bool

	timesSet    string
	timesLast   int
	timesWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typing-game",
		Short:         "Terminal typing practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceSet, "set", "", "phrase set key")
	rootCmd.Flags().BoolVar(&practiceSpeech, "speech", false, "speak each expected key")
	rootCmd.Flags().BoolVar(&practiceKeyboard, "keyboard", true, "show the keycap pane")
	rootCmd.Flags().BoolVar(&practiceSpaces, "space-glyph", false, "mark pending spaces with a visible glyph")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newTimesCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "set", &practiceSet, fileCfg.Practice.Set)
	applyBoolConfig(cmd, "speech", &practiceSpeech, fileCfg.Practice.SpeakKeys)
	applyBoolConfig(cmd, "keyboard", &practiceKeyboard, fileCfg.Practice.ShowKeyboard)
	applyBoolConfig(cmd, "space-glyph", &practiceSpaces, fileCfg.Practice.ShowSpaceGlyph)

	lib, err := phrase.LoadLibrary(config.DefaultSetDir())
	if err != nil {
		return fmt.Errorf("failed to load phrase sets: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()

	// Stored preferences override config file values; explicit flags
	// override both.
	toggles := model.Toggles{
		SpeakKeys:      practiceSpeech,
		ShowKeyboard:   practiceKeyboard,
		ShowSpaceGlyph: practiceSpaces,
	}
	stored, err := st.LoadToggles(ctx, toggles)
	if err != nil {
		logErrf("failed to load preferences: %v\n", err)
		stored = toggles
	}
	if cmd.Flags().Changed("speech") {
		stored.SpeakKeys = practiceSpeech
	}
	if cmd.Flags().Changed("keyboard") {
		stored.ShowKeyboard = practiceKeyboard
	}
	if cmd.Flags().Changed("space-glyph") {
		stored.ShowSpaceGlyph = practiceSpaces
	}

	setKey := practiceSet
	if !cmd.Flags().Changed("set") {
		if val, ok, perr := st.Pref(ctx, store.PrefSet); perr != nil {
			logErrf("failed to load set preference: %v\n", perr)
		} else if ok {
			setKey = val
		}
	}

	speaker, err := speech.FromConfig(speechConfig(fileCfg))
	if err != nil {
		logErrf("speech unavailable: %v\n", err)
	}
	defer func() {
		if cerr := speaker.Close(); cerr != nil {
			logErrf("failed to stop speech: %v\n", cerr)
		}
	}()

	sess := session.New(lib, setKey)
	m := tui.NewModel(sess, st, speaker, stored)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func speechConfig(fileCfg config.FileConfig) model.SpeechConfig {
	cfg := model.SpeechConfig{
		LetterPitch: defaultLetterPitch,
		PhraseRate:  defaultPhraseRate,
	}
	if fileCfg.Speech.Command != nil {
		cfg.Command = *fileCfg.Speech.Command
	}
	if fileCfg.Speech.LetterPitch != nil {
		cfg.LetterPitch = *fileCfg.Speech.LetterPitch
	}
	if fileCfg.Speech.PhraseRate != nil {
		cfg.PhraseRate = *fileCfg.Speech.PhraseRate
	}
	return cfg
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List phrase sets",
		Args:  cobra.NoArgs,
		RunE:  runSetsCmd,
	}
}

func runSetsCmd(cmd *cobra.Command, _ []string) error {
	lib, err := phrase.LoadLibrary(config.DefaultSetDir())
	if err != nil {
		return fmt.Errorf("failed to load phrase sets: %w", err)
	}
	for _, set := range lib.Sets() {
		line := fmt.Sprintf("%-12s %s (%d phrases)", set.Key, set.Name, len(set.Phrases))
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newTimesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "times",
		Short: "Review best times and the duration trend",
		RunE:  runTimesCmd,
	}
	cmd.Flags().StringVar(&timesSet, "set", "", "set key filter")
	cmd.Flags().IntVar(&timesLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&timesWindow, "window", defaultTrendWindow, "moving average window")
	return cmd
}

func runTimesCmd(_ *cobra.Command, _ []string) error {
	cfg := model.TimesConfig{
		SetKey:      timesSet,
		Last:        timesLast,
		TrendWindow: timesWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return printTimes(os.Stdout, st, cfg)
	}

	m := timesui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run times TUI: %w", err)
	}
	return nil
}

// printTimes writes the plain-text report for piped output.
func printTimes(w io.Writer, st *store.Store, cfg model.TimesConfig) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	if err := stats.RenderBestTimes(w, report.Best); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSummary(w, report.Attempts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderTrend(w, report.Attempts, cfg.TrendWindow, 0, 0); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return `# typing-game configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# set = "starter"           # Initial phrase set key
# speak-keys = false        # Speak each expected key
# show-keyboard = true      # Show the keycap pane
# show-space-glyph = false  # Mark pending spaces with a visible glyph

[speech]
# command = "espeak"        # Text-to-speech command (say, espeak, espeak-ng)
# letter-pitch = 60         # Pitch for spoken keys (espeak only)
# phrase-rate = 140         # Speaking rate for sentences
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
