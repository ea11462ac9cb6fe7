// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chi-feng/typing-game/internal/model"
	"github.com/chi-feng/typing-game/internal/session"
	"github.com/chi-feng/typing-game/internal/speech"
	"github.com/chi-feng/typing-game/internal/stats"
	"github.com/chi-feng/typing-game/internal/store"
)

const (
	tickInterval = 100 * time.Millisecond
	advanceDelay = 3 * time.Second
)

// tickMsg refreshes the timer display while a phrase is running.
type tickMsg struct {
	gen int
}

// advanceMsg moves to the next phrase after the completion pause.
type advanceMsg struct {
	gen int
	seq int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Copy().Underline(true).Bold(true)
	displayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	timerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	bannerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	bestBannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	modalStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(1, 2)
	modalTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea practice UI.
type Model struct {
	session *session.Session
	store   *store.Store
	speaker speech.Speaker
	toggles model.Toggles

	width  int
	height int

	bestMs  int64
	hasBest bool

	banner     string
	advanceAt  time.Time
	advanceSeq int

	customMode  bool
	customInput textinput.Model
	customError string
}

// NewModel constructs a practice UI model.
func NewModel(sess *session.Session, st *store.Store, speaker speech.Speaker, toggles model.Toggles) *Model {
	input := textinput.New()
	input.Prompt = "Phrase: "
	input.Placeholder = "the quick brown fox"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)

	m := &Model{
		session:     sess,
		store:       st,
		speaker:     speaker,
		toggles:     toggles,
		customInput: input,
	}
	m.loadBest()
	m.announceKey()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.customInput.Width = maxInt(10, modalInnerWidth(m.width)-lipgloss.Width(m.customInput.Prompt))
		return m, nil
	case tickMsg:
		// Ticks from before the last reset are stale and die here. Ticking
		// continues through the completion pause for the countdown.
		if msg.gen == m.session.Generation() && m.session.Status() != session.Idle {
			return m, m.tick()
		}
		return m, nil
	case advanceMsg:
		// Stale or superseded advances die here, and the custom modal
		// holds the phrase in place until it closes.
		if msg.gen == m.session.Generation() && msg.seq == m.advanceSeq &&
			m.session.Status() == session.Completed && !m.customMode {
			m.moveTo(m.session.Next)
		}
		return m, nil
	case tea.KeyMsg:
		if m.customMode {
			return m.updateCustom(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyLeft:
		m.moveTo(m.session.Previous)
		return m, nil
	case tea.KeyRight:
		m.moveTo(m.session.Next)
		return m, nil
	case tea.KeyUp:
		m.switchSet(m.session.PreviousSet)
		return m, nil
	case tea.KeyDown:
		m.switchSet(m.session.NextSet)
		return m, nil
	case tea.KeyCtrlE:
		return m.startCustom()
	case tea.KeyCtrlS:
		m.toggles.SpeakKeys = !m.toggles.SpeakKeys
		m.persistToggle(store.PrefSpeakKeys, m.toggles.SpeakKeys)
		if m.toggles.SpeakKeys {
			m.announceKey()
		}
		return m, nil
	case tea.KeyCtrlK:
		m.toggles.ShowKeyboard = !m.toggles.ShowKeyboard
		m.persistToggle(store.PrefShowKeyboard, m.toggles.ShowKeyboard)
		return m, nil
	case tea.KeyCtrlG:
		m.toggles.ShowSpaceGlyph = !m.toggles.ShowSpaceGlyph
		m.persistToggle(store.PrefShowSpaceGlyph, m.toggles.ShowSpaceGlyph)
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		// Matched text stays matched; the cursor never moves back.
		return m, nil
	case tea.KeySpace:
		return m, m.handleRune(' ')
	case tea.KeyRunes:
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			if cmd := m.handleRune(r); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)
	default:
		return m, nil
	}
}

// handleRune applies one keystroke to the session and schedules the timer
// or the auto-advance as needed.
func (m *Model) handleRune(r rune) tea.Cmd {
	res := m.session.Match(r)
	if !res.Accepted {
		return nil
	}
	var cmds []tea.Cmd
	if res.Started {
		cmds = append(cmds, m.tick())
	}
	if res.Completed {
		m.finishPhrase()
		m.advanceAt = time.Now().Add(advanceDelay)
		cmds = append(cmds, m.scheduleAdvance())
		return tea.Batch(cmds...)
	}
	m.announceKey()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) tick() tea.Cmd {
	gen := m.session.Generation()
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// scheduleAdvance arms the completion pause, superseding any advance still
// in flight.
func (m *Model) scheduleAdvance() tea.Cmd {
	gen := m.session.Generation()
	m.advanceSeq++
	seq := m.advanceSeq
	return tea.Tick(advanceDelay, func(time.Time) tea.Msg {
		return advanceMsg{gen: gen, seq: seq}
	})
}

// moveTo runs a session navigation and refreshes the per-phrase state.
func (m *Model) moveTo(move func()) {
	move()
	m.banner = ""
	m.loadBest()
	m.announceKey()
}

func (m *Model) switchSet(move func()) {
	m.moveTo(move)
	if err := m.store.SavePref(context.Background(), store.PrefSet, m.session.SetKey()); err != nil {
		logErrf("failed to save set preference: %v\n", err)
	}
}

func (m *Model) persistToggle(name string, value bool) {
	if err := m.store.SaveTogglePref(context.Background(), name, value); err != nil {
		logErrf("failed to save preference: %v\n", err)
	}
}

func (m *Model) loadBest() {
	m.bestMs = 0
	m.hasBest = false
	bt, ok, err := m.store.BestTime(context.Background(), m.session.Phrase().Typing)
	if err != nil {
		logErrf("failed to load best time: %v\n", err)
		return
	}
	if ok {
		m.bestMs = bt.BestMs
		m.hasBest = true
	}
}

// finishPhrase records the attempt, updates the best time, and builds the
// completion banner and narration.
func (m *Model) finishPhrase() {
	ctx := context.Background()
	p := m.session.Phrase()
	elapsedMs := m.session.Elapsed().Milliseconds()

	setKey := m.session.SetKey()
	if m.session.IsCustom() {
		setKey = "custom"
	}
	attempt := model.Attempt{
		SetKey:      setKey,
		Phrase:      p.Typing,
		Chars:       len(m.session.TypingRunes()),
		DurationMs:  elapsedMs,
		CompletedAt: time.Now(),
	}
	if _, err := m.store.InsertAttempt(ctx, attempt); err != nil {
		logErrf("failed to save attempt: %v\n", err)
	}

	took := stats.FormatMs(elapsedMs)
	switch {
	case !m.hasBest:
		m.banner = fmt.Sprintf("Completed in %s", took)
		m.speakResult(fmt.Sprintf("Completed in %s seconds", spokenSeconds(elapsedMs)))
		m.saveBest(ctx, p.Typing, elapsedMs)
	case elapsedMs < m.bestMs:
		gain := stats.FormatMs(m.bestMs - elapsedMs)
		m.banner = fmt.Sprintf("New best! %s (%s faster)", took, gain)
		m.speakResult(fmt.Sprintf("New best! %s seconds", spokenSeconds(elapsedMs)))
		m.saveBest(ctx, p.Typing, elapsedMs)
	default:
		m.banner = fmt.Sprintf("%s (best %s)", took, stats.FormatMs(m.bestMs))
		m.speakResult(fmt.Sprintf("%s seconds. Your best is %s seconds",
			spokenSeconds(elapsedMs), spokenSeconds(m.bestMs)))
	}
}

func (m *Model) saveBest(ctx context.Context, phraseText string, ms int64) {
	bt := model.BestTime{Phrase: phraseText, BestMs: ms, AchievedAt: time.Now()}
	if err := m.store.SaveBestTime(ctx, bt); err != nil {
		logErrf("failed to save best time: %v\n", err)
		return
	}
	m.bestMs = ms
	m.hasBest = true
}

func (m *Model) announceKey() {
	if !m.toggles.SpeakKeys {
		return
	}
	if r, ok := m.session.Expected(); ok {
		m.speaker.SpeakKey(r)
	}
}

func (m *Model) speakResult(text string) {
	if m.toggles.SpeakKeys {
		m.speaker.SpeakPhrase(text)
	}
}

func (m *Model) startCustom() (tea.Model, tea.Cmd) {
	m.customMode = true
	m.customError = ""
	m.customInput.SetValue("")
	return m, m.customInput.Focus()
}

func (m *Model) updateCustom(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.customMode = false
		m.customError = ""
		if m.session.Status() == session.Completed {
			// Restart the pause on the phrase the modal interrupted.
			m.advanceAt = time.Now().Add(advanceDelay)
			return m, m.scheduleAdvance()
		}
		return m, nil
	case tea.KeyEnter:
		if !m.session.SetCustom(m.customInput.Value()) {
			m.customError = "Enter at least one typable character."
			return m, nil
		}
		m.customMode = false
		m.customError = ""
		m.banner = ""
		m.loadBest()
		m.announceKey()
		return m, nil
	}
	var cmd tea.Cmd
	m.customInput, cmd = m.customInput.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.customMode {
		return m.renderCustomModal()
	}
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	footerHeight := lipgloss.Height(footer)
	if m.height <= footerHeight+1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-footerHeight, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + footer
}

func (m *Model) renderContent() string {
	sections := []string{
		m.renderHeader(),
		"",
		m.renderPhrase(),
		"",
		m.renderStatus(),
	}
	if m.toggles.ShowKeyboard {
		sections = append(sections, "", renderKeyboard(m.session.TypingRunes(), m.session.Cursor()))
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("%s · %d/%d", m.session.Set().Name, m.session.PhraseIndex()+1, m.session.PhraseCount())
	if m.session.IsCustom() {
		title = "Custom phrase"
	}
	if m.hasBest {
		title += "   Best " + stats.FormatMs(m.bestMs)
	}
	return headerStyle.Render(title)
}

func (m *Model) renderPhrase() string {
	target := m.session.TypingRunes()
	cursor := -1
	if m.session.Status() != session.Completed {
		cursor = m.session.Cursor()
	}
	styled := buildStyledRunes(target, cursor, m.toggles.ShowSpaceGlyph)
	width := m.contentWidth()
	typed := wrapStyledRunes(styled, width)

	p := m.session.Phrase()
	if p.Display != p.Typing {
		display := displayStyle.Render(p.Display)
		if width > 0 {
			display = displayStyle.Width(width).Render(p.Display)
		}
		return display + "\n" + typed
	}
	return typed
}

func (m *Model) renderStatus() string {
	switch m.session.Status() {
	case session.Running:
		return timerStyle.Render(stats.FormatMs(m.session.Elapsed().Milliseconds()))
	case session.Completed:
		countdown := timerStyle.Render(fmt.Sprintf("  next in %ds", countdownSeconds(m.advanceAt)))
		if strings.HasPrefix(m.banner, "New best") {
			return bestBannerStyle.Render(m.banner) + countdown
		}
		return bannerStyle.Render(m.banner) + countdown
	default:
		return timerStyle.Render("0.0s")
	}
}

func (m *Model) renderFooter() string {
	help := fmt.Sprintf("←/→ phrase  ↑/↓ set  ^E custom  ^S sound %s  ^K keyboard  ^G spaces  ^C quit",
		onOff(m.toggles.SpeakKeys))
	return lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footerStyle.Render(help))
}

func (m *Model) renderCustomModal() string {
	body := []string{
		modalTitleStyle.Render("Custom Phrase"),
		m.customInput.View(),
		footerStyle.Render("Enter to practice it / Esc to cancel"),
	}
	if m.customError != "" {
		body = append(body, errorStyle.Render(m.customError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	width := int(float64(m.width) * 0.70)
	if width < 1 {
		width = 1
	}
	return width
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func spokenSeconds(ms int64) string {
	return fmt.Sprintf("%.1f", float64(ms)/1000.0)
}

// countdownSeconds returns the whole seconds left before deadline, rounded
// up and never below 1.
func countdownSeconds(deadline time.Time) int {
	remaining := time.Until(deadline)
	secs := int((remaining + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
