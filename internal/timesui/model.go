// Package timesui provides the Bubble Tea results interface.
package timesui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chi-feng/typing-game/internal/model"
	"github.com/chi-feng/typing-game/internal/stats"
	"github.com/chi-feng/typing-game/internal/store"
)

const (
	tabBest = iota
	tabTrend
)

const (
	trendHeight        = 10
	defaultTrendWindow = 10
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea results UI.
type Model struct {
	store *store.Store
	cfg   model.TimesConfig

	report stats.Report
	errMsg string

	tabs       []string
	activeTab  int
	viewport   viewport.Model
	bestTable  table.Model
	bestLayout tableLayout

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a results UI model.
func NewModel(st *store.Store, cfg model.TimesConfig) *Model {
	if cfg.TrendWindow < 1 {
		cfg.TrendWindow = defaultTrendWindow
	}
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Best Times", "Trend"},
	}
	m.initInputs()
	m.bestTable = buildBestTable(nil, 0, 1)
	m.viewport = viewport.New(0, 0)
	m.refreshReport()
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
		m.updateLayout()
		m.renderTrendContent()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.filterMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.activeTab == tabBest {
			m.bestTable.Focus()
		} else {
			m.bestTable.Blur()
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.TrendWindow = nextWindow(m.cfg.TrendWindow)
			m.renderTrendContent()
			return m, nil
		case "-":
			m.cfg.TrendWindow = prevWindow(m.cfg.TrendWindow)
			m.renderTrendContent()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabBest {
				m.bestTable.GotoTop()
			} else {
				m.viewport.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabBest {
				m.bestTable.GotoBottom()
			} else {
				m.viewport.GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabBest {
				var cmd tea.Cmd
				m.bestTable, cmd = m.bestTable.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Set: "),
		newFilterInput("Last: "),
		newFilterInput("Trend window: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[0].SetValue(strings.TrimSpace(m.cfg.SetKey))
	if m.cfg.Last > 0 {
		m.filterInputs[1].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[1].SetValue("")
	}
	m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.TrendWindow))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
	m.applyBestTable(m.width, bodyHeight, true)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabBest {
		m.bestTable.Focus()
	} else {
		m.bestTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	set := m.cfg.SetKey
	if set == "" {
		set = "any"
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: set=%s  last=%s  window=%d", set, last, m.cfg.TrendWindow)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Quit: q")
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabBest {
		if len(m.report.Best) == 0 {
			return fitLines("No best times yet.", m.width, height)
		}
		view := tableMutedStyle.Render(m.bestTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewport.View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.viewport.SetContent("Failed to load results.")
		return
	}
	m.errMsg = ""
	m.report = report
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.applyBestTable(width, bodyHeight, true)
	m.renderTrendContent()
}

func (m *Model) renderTrendContent() {
	if m.errMsg != "" {
		m.viewport.SetContent("Failed to load results.")
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewport.SetContent(renderTrendTab(m.report.Attempts, m.cfg.TrendWindow, width))
}

func renderTrendTab(attempts []model.Attempt, window, width int) string {
	if len(attempts) == 0 {
		return "No attempts yet."
	}
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, attempts); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	buf.WriteString("\n")
	if err := stats.RenderTrend(&buf, attempts, window, width, trendHeight); err != nil {
		return fmt.Sprintf("Failed to render trend: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildBestTable(best []model.BestTime, width, height int) table.Model {
	cols, rows := buildBestTableData(best, width)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(bestTableStyles())
	return t
}

func buildBestTableData(best []model.BestTime, width int) ([]table.Column, []table.Row) {
	phraseWidth := maxInt(12, width-10-18-4)
	columns := []table.Column{
		{Title: "Phrase", Width: phraseWidth},
		{Title: "Best", Width: 10},
		{Title: "Achieved", Width: 18},
	}
	rows := make([]table.Row, 0, len(best))
	for _, bt := range best {
		rows = append(rows, table.Row{
			truncateLine(bt.Phrase, phraseWidth),
			stats.FormatMs(bt.BestMs),
			bt.AchievedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return columns, rows
}

func (m *Model) applyBestTable(width, height int, force bool) {
	cols, rows := buildBestTableData(m.report.Best, width)
	viewportHeight := maxInt(1, height-1)
	if !force &&
		m.bestLayout.width == width &&
		m.bestLayout.height == viewportHeight &&
		m.bestLayout.rowCount == len(rows) {
		return
	}
	m.bestTable.SetColumns(cols)
	m.bestTable.SetRows(rows)
	m.bestLayout.rowCount = len(rows)
	m.setBestTableSize(width, height)
}

func (m *Model) setBestTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	m.bestLayout.width = width
	m.bestLayout.height = viewportHeight
	m.bestTable.SetWidth(width)
	m.bestTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustBestTableHeight(height)
	if m.bestLayout.height != viewportHeight {
		m.bestLayout.height = viewportHeight
		m.bestTable.SetHeight(viewportHeight)
	}
}

// adjustBestTableHeight compensates for the table view adding header and
// border lines beyond the configured height.
func (m *Model) adjustBestTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.bestTable.Height()
	viewHeight := lipgloss.Height(m.bestTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.bestTable.SetHeight(height)
	viewHeight = lipgloss.Height(m.bestTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func bestTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	set := strings.TrimSpace(m.filterInputs[0].Value())

	lastInput := strings.TrimSpace(m.filterInputs[1].Value())
	last := 0
	if lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	windowInput := strings.TrimSpace(m.filterInputs[2].Value())
	window := defaultTrendWindow
	if windowInput != "" {
		parsed, err := strconv.Atoi(windowInput)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid trend window (use integer >= 1)")
		}
		window = parsed
	}

	m.cfg = model.TimesConfig{
		SetKey:      set,
		Last:        last,
		TrendWindow: window,
	}
	return nil
}

func nextWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
