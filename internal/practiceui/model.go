// Package practiceui provides the Bubble Tea practice interface, where every
// comparison has to be decided by the user before the array moves.
package practiceui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/sortlab/internal/bubblesort"
	"github.com/verte-zerg/sortlab/internal/logging"
	"github.com/verte-zerg/sortlab/internal/model"
	"github.com/verte-zerg/sortlab/internal/stats"
	"github.com/verte-zerg/sortlab/internal/store"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")).Italic(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea practice UI.
type Model struct {
	config   model.Config
	store    *store.Store
	logger   *log.Logger
	practice *bubblesort.Practice

	keys keyMap
	help help.Model

	width  int
	height int

	feedback   string
	feedbackOK bool
	hint       string

	startedAt time.Time
	saved     bool
}

// NewModel constructs a practice model over values.
func NewModel(cfg model.Config, values []int, st *store.Store, logger *log.Logger) (*Model, error) {
	p, err := bubblesort.NewPractice(values, bubblesort.Options{Optimized: cfg.Optimized})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Model{
		config:   cfg,
		store:    st,
		logger:   logger,
		practice: p,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}, nil
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
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Swap):
			m.decide(true)
		case key.Matches(msg, m.keys.Keep):
			m.decide(false)
		case key.Matches(msg, m.keys.Hint):
			m.hint = m.practice.UseHint()
		case key.Matches(msg, m.keys.Restart):
			m.saveResult()
			m.practice.Restart()
			m.feedback = ""
			m.hint = ""
			m.startedAt = time.Time{}
			m.saved = false
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.practice.Snapshot()
	width := m.contentWidth()
	sections := []string{
		titleStyle.Render("Bubble Sort Practice"),
		"",
		strings.Join(stats.BarLines(snap.Values, snap.Statuses, width, true), "\n"),
		"",
	}
	if snap.Terminal {
		sections = append(sections, m.renderSummary())
	} else {
		sections = append(sections, questionStyle.Render(m.renderQuestion(snap)))
	}
	if m.feedback != "" {
		style := wrongStyle
		if m.feedbackOK {
			style = correctStyle
		}
		sections = append(sections, style.Render(m.feedback))
	}
	if m.hint != "" {
		sections = append(sections, hintStyle.Render(runewidth.Wrap(m.hint, width)))
	}
	sections = append(sections, "", m.renderScore(), "", m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Close saves the practice if any decision was made. It is safe to call more
// than once.
func (m *Model) Close() {
	m.saveResult()
}

// Summary returns the current scorecard.
func (m *Model) Summary() bubblesort.PracticeSummary {
	return m.practice.Summary()
}

func (m *Model) decide(shouldSwap bool) {
	if m.practice.Finished() {
		m.feedbackOK = false
		m.feedback = "Practice finished. Press r to try again."
		return
	}
	if m.startedAt.IsZero() {
		m.startedAt = time.Now()
	}
	m.hint = ""
	rec := m.practice.SubmitDecision(shouldSwap)
	m.feedbackOK = rec.IsCorrect
	m.feedback = feedbackFor(rec)
	if m.practice.Finished() {
		m.saveResult()
	}
}

func feedbackFor(rec bubblesort.DecisionRecord) string {
	if !rec.IsCorrect {
		if rec.GroundTruth {
			return fmt.Sprintf("Not quite: %d > %d, so they should be swapped.", rec.LeftValue, rec.RightValue)
		}
		return fmt.Sprintf("Not quite: %d ≤ %d, so they stay in place.", rec.LeftValue, rec.RightValue)
	}
	switch rec.Outcome.Kind {
	case bubblesort.KindSorted:
		return "Correct! The array is sorted."
	case bubblesort.KindEarlyTerminated:
		return "Correct! No swaps in a whole pass, so the array is sorted."
	case bubblesort.KindPassComplete:
		if rec.Outcome.PassCompleted != nil {
			return fmt.Sprintf("Correct! Pass %d done with %d swaps.", rec.Outcome.PassCompleted.Pass, rec.Outcome.PassCompleted.Swaps)
		}
	}
	if rec.GroundTruth {
		return fmt.Sprintf("Correct! %d and %d swapped.", rec.LeftValue, rec.RightValue)
	}
	return "Correct! No swap needed."
}

func (m *Model) renderQuestion(snap bubblesort.Snapshot) string {
	left, right := snap.Values[snap.CompareIndex], snap.Values[snap.CompareIndex+1]
	return fmt.Sprintf("Pass %d: swap %d and %d? (y/n)", snap.Pass+1, left, right)
}

func (m *Model) renderSummary() string {
	s := m.practice.Summary()
	lines := []string{
		correctStyle.Render("Sorted!"),
		fmt.Sprintf("Passes %d  Swaps %d", s.Passes, s.TotalSwaps),
		fmt.Sprintf("Accuracy %.1f%% (%d correct, %d mistakes, %d hints)",
			s.Accuracy*100, s.Score, s.Mistakes, s.HintsUsed),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderScore() string {
	return footerStyle.Render(fmt.Sprintf("Score %d  Mistakes %d  Hints %d",
		m.practice.Score(), m.practice.Mistakes(), m.practice.Summary().HintsUsed))
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(20, int(float64(m.width)*0.70))
}

// saveResult stores the run with its scorecard and every decision once.
// Practices without any decision are not recorded.
func (m *Model) saveResult() {
	decisions := m.practice.Decisions()
	if m.saved || len(decisions) == 0 {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}
	snap := m.practice.Snapshot()
	summary := m.practice.Summary()
	started := m.startedAt
	if started.IsZero() {
		started = time.Now()
	}
	run := model.RunRecord{
		StartedAt:       started,
		EndedAt:         time.Now(),
		Optimized:       snap.Optimized,
		Initial:         m.practice.Initial(),
		Final:           snap.Values,
		Passes:          snap.PassesCompleted,
		Comparisons:     snap.Counters.TotalComparisons,
		Swaps:           snap.Counters.TotalSwaps,
		EarlyTerminated: snap.TerminatedEarly,
		Completed:       snap.Terminal,
	}
	result := model.PracticeResult{
		Score:     summary.Score,
		Mistakes:  summary.Mistakes,
		HintsUsed: summary.HintsUsed,
	}
	rows := make([]model.DecisionRow, len(decisions))
	for i, d := range decisions {
		rows[i] = model.DecisionRow{
			Seq:           i,
			QuestionIndex: d.QuestionIndex,
			Pass:          d.Pass,
			CompareIndex:  d.CompareIndex,
			UserDecision:  d.UserDecision,
			GroundTruth:   d.GroundTruth,
			IsCorrect:     d.IsCorrect,
		}
	}
	if _, err := m.store.InsertPractice(context.Background(), run, result, rows); err != nil {
		m.logger.Error("failed to save practice", "err", err)
	}
}
