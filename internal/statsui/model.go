// Package statsui provides the Bubble Tea run history interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sortlab/internal/model"
	"github.com/verte-zerg/sortlab/internal/stats"
	"github.com/verte-zerg/sortlab/internal/store"
)

const (
	tabOverview = iota
	tabRuns
	tabPractice
)

const timeLayout = "2006-01-02 15:04"

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
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store  *store.Store
	filter model.HistoryFilter

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	tables    map[int]*table.Model

	width  int
	height int
}

// NewModel constructs a history UI model.
func NewModel(st *store.Store, filter model.HistoryFilter) *Model {
	runs := newTable(runColumns())
	practice := newTable(practiceColumns())
	m := &Model{
		store:    st,
		filter:   filter,
		tabs:     []string{"Overview", "Runs", "Practice"},
		overview: viewport.New(0, 0),
		tables:   map[int]*table.Model{tabRuns: &runs, tabPractice: &practice},
	}
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
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if t := m.tables[m.activeTab]; t != nil {
				t.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if t := m.tables[m.activeTab]; t != nil {
				t.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if t := m.tables[m.activeTab]; t != nil {
				*t, cmd = t.Update(msg)
				return m, cmd
			}
			m.overview, cmd = m.overview.Update(msg)
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
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range m.tables {
		t.SetWidth(m.width)
		t.SetHeight(max(1, bodyHeight-1))
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	for tab, t := range m.tables {
		if tab == m.activeTab {
			t.Focus()
		} else {
			t.Blur()
		}
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
	return tabs + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	mode := m.filter.Mode
	if mode == "" {
		mode = "any"
	}
	since := "any"
	if m.filter.Since != nil {
		since = m.filter.Since.Format("2006-01-02")
	}
	last := "all"
	if m.filter.Last > 0 {
		last = strconv.Itoa(m.filter.Last)
	}
	summary := fmt.Sprintf("Filter: mode=%s  since=%s  last=%s", mode, since, last)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/bottom: g/G  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	switch m.activeTab {
	case tabRuns:
		if len(m.report.Runs) == 0 {
			return "No runs found."
		}
		return tableMutedStyle.Render(m.tables[tabRuns].View())
	case tabPractice:
		if len(m.report.Practice) == 0 {
			return "No practice runs found."
		}
		return tableMutedStyle.Render(m.tables[tabPractice].View())
	default:
		return m.overview.View()
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.filter)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load history.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.tables[tabRuns].SetRows(runRows(report.Runs))
	m.tables[tabRuns].GotoBottom()
	m.tables[tabPractice].SetRows(practiceRows(report.Practice))
	m.tables[tabPractice].GotoBottom()
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, width))
}

func renderOverview(report stats.Report, width int) string {
	if len(report.Runs) == 0 {
		return "No runs found."
	}
	sections := []string{renderSummaryCards(report, width)}
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, report.Runs); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	if len(report.Practice) > 0 {
		if err := stats.RenderPracticeSummary(&buf, report.Practice); err != nil {
			return fmt.Sprintf("Failed to render practice summary: %v", err)
		}
	}
	sections = append(sections, strings.TrimRight(buf.String(), "\n"))
	return strings.Join(sections, "\n\n")
}

func renderSummaryCards(report stats.Report, width int) string {
	var comparisons, swaps, early int
	for _, r := range report.Runs {
		comparisons += r.Comparisons
		swaps += r.Swaps
		if r.EarlyTerminated {
			early++
		}
	}
	accuracy := "-"
	if len(report.Practice) > 0 {
		var score, mistakes int
		for _, p := range report.Practice {
			score += p.Result.Score
			mistakes += p.Result.Mistakes
		}
		accuracy = fmt.Sprintf("%.1f%%", stats.PracticeAccuracy(score, mistakes)*100)
	}
	count := float64(len(report.Runs))
	cards := []string{
		metricCard("Runs", strconv.Itoa(len(report.Runs))),
		metricCard("Avg Comparisons", fmt.Sprintf("%.1f", float64(comparisons)/count)),
		metricCard("Avg Swaps", fmt.Sprintf("%.1f", float64(swaps)/count)),
		metricCard("Early Exits", strconv.Itoa(early)),
		metricCard("Practice Acc", accuracy),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return t
}

func runColumns() []table.Column {
	return []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "Mode", Width: 9},
		{Title: "Variant", Width: 9},
		{Title: "Size", Width: 4},
		{Title: "Passes", Width: 6},
		{Title: "Comparisons", Width: 11},
		{Title: "Swaps", Width: 5},
		{Title: "Result", Width: 11},
	}
}

func practiceColumns() []table.Column {
	return []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "Size", Width: 4},
		{Title: "Score", Width: 5},
		{Title: "Mistakes", Width: 8},
		{Title: "Hints", Width: 5},
		{Title: "Accuracy", Width: 8},
		{Title: "Result", Width: 11},
	}
}

func runRows(runs []model.RunRecord) []table.Row {
	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		variant := "plain"
		if r.Optimized {
			variant = "optimized"
		}
		rows = append(rows, table.Row{
			r.EndedAt.Local().Format(timeLayout),
			r.Mode,
			variant,
			strconv.Itoa(len(r.Initial)),
			strconv.Itoa(r.Passes),
			strconv.Itoa(r.Comparisons),
			strconv.Itoa(r.Swaps),
			runResult(r),
		})
	}
	return rows
}

func practiceRows(practice []model.PracticeAggregate) []table.Row {
	rows := make([]table.Row, 0, len(practice))
	for _, p := range practice {
		rows = append(rows, table.Row{
			p.Run.EndedAt.Local().Format(timeLayout),
			strconv.Itoa(len(p.Run.Initial)),
			strconv.Itoa(p.Result.Score),
			strconv.Itoa(p.Result.Mistakes),
			strconv.Itoa(p.Result.HintsUsed),
			fmt.Sprintf("%.1f%%", stats.PracticeAccuracy(p.Result.Score, p.Result.Mistakes)*100),
			runResult(p.Run),
		})
	}
	return rows
}

func runResult(r model.RunRecord) string {
	switch {
	case !r.Completed:
		return "abandoned"
	case r.EarlyTerminated:
		return "early exit"
	default:
		return "sorted"
	}
}

func tableStyles() table.Styles {
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
