// Package tui provides the Bubble Tea sorting visualizer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/sortlab/internal/bubblesort"
	"github.com/verte-zerg/sortlab/internal/logging"
	"github.com/verte-zerg/sortlab/internal/model"
	"github.com/verte-zerg/sortlab/internal/playback"
	"github.com/verte-zerg/sortlab/internal/stats"
	"github.com/verte-zerg/sortlab/internal/store"
)

const historyTableHeight = 8

var speedSteps = []time.Duration{
	50 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
	300 * time.Millisecond,
	500 * time.Millisecond,
	800 * time.Millisecond,
	1000 * time.Millisecond,
	1500 * time.Millisecond,
	2000 * time.Millisecond,
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type frameMsg struct {
	frame playback.Frame
}

type revealMsg struct {
	seq int
}

// Model implements the Bubble Tea visualizer UI.
type Model struct {
	config model.Config
	store  *store.Store
	logger *log.Logger

	ctrl   *playback.Controller
	frames chan playback.Frame
	done   chan struct{}
	closed bool

	keys        keyMap
	help        help.Model
	history     table.Model
	showHistory bool

	width  int
	height int

	snap     bubblesort.Snapshot
	state    playback.State
	speedIdx int
	message  string

	// two-phase manual stepping
	revealing bool
	revealSeq int

	initial   []int
	startedAt time.Time
	saved     bool
}

// NewModel wraps engine with a playback controller. Extra options are applied
// after the defaults, which lets tests replace the scheduler.
func NewModel(cfg model.Config, engine *bubblesort.Engine, st *store.Store, logger *log.Logger, opts ...playback.Option) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Model{
		config: cfg,
		store:  st,
		logger: logger,
		frames: make(chan playback.Frame, 1),
		done:   make(chan struct{}),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	speed := time.Duration(cfg.SpeedMs) * time.Millisecond
	if speed <= 0 {
		speed = playback.DefaultSpeed
	}
	m.speedIdx = nearestSpeed(speed)
	base := []playback.Option{
		playback.WithSpeed(speedSteps[m.speedIdx]),
		playback.WithFrameHandler(m.deliver),
		playback.WithLogger(logger),
	}
	m.ctrl = playback.New(engine, append(base, opts...)...)
	m.history = table.New(
		table.WithColumns(historyColumns(nil)),
		table.WithHeight(historyTableHeight),
	)
	m.resetView(m.ctrl.Snapshot())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return waitForFrame(m.frames, m.done)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		if msg.frame.State.Run == m.state.Run {
			m.applyFrame(msg.frame)
		}
		return m, waitForFrame(m.frames, m.done)
	case revealMsg:
		if !m.revealing || msg.seq != m.revealSeq {
			return m, nil
		}
		m.revealing = false
		m.applyFrame(m.ctrl.Step())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	sections := []string{
		m.renderHeader(),
		"",
		strings.Join(stats.BarLines(m.snap.Values, m.snap.Statuses, width, true), "\n"),
		"",
		m.renderCursor(),
		m.renderCounters(),
	}
	if m.message != "" {
		sections = append(sections, messageStyle.Render(runewidth.Truncate(m.message, width, "…")))
	}
	if m.showHistory {
		sections = append(sections, "", m.history.View())
	}
	sections = append(sections, "", m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Close tears the controller down and saves any unsaved progress. It is safe
// to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.ctrl.Teardown()
	close(m.done)
	m.snap = m.ctrl.Snapshot()
	m.saveRun()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Play):
		m.cancelReveal()
		m.markStarted()
		m.ctrl.Toggle()
		m.state = m.ctrl.State()
		if m.snap.Terminal {
			m.message = "Already sorted. Press r to replay or R for a new array."
		}
	case key.Matches(msg, m.keys.Step):
		return m, m.step()
	case key.Matches(msg, m.keys.Reset):
		m.saveRun()
		m.resetView(m.ctrl.Reset())
		m.message = "Reset to the initial array."
	case key.Matches(msg, m.keys.Randomize):
		m.saveRun()
		snap, err := m.ctrl.Randomize(m.config.Size, m.config.Min, m.config.Max)
		if err != nil {
			m.logger.Warn("randomize failed", "err", err)
			m.message = err.Error()
			return m, nil
		}
		m.resetView(snap)
		m.message = fmt.Sprintf("New array of %d values.", len(snap.Values))
	case key.Matches(msg, m.keys.Faster):
		m.changeSpeed(-1)
	case key.Matches(msg, m.keys.Slower):
		m.changeSpeed(1)
	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		m.refreshHistory()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// step performs a manual tick. With two-phase pacing the first press only
// highlights the pair and the tick follows after half the playback delay.
func (m *Model) step() tea.Cmd {
	if m.snap.Terminal {
		m.message = "Already sorted."
		return nil
	}
	m.markStarted()
	if !m.config.TwoPhase || m.state.Running || m.revealing {
		m.cancelReveal()
		m.applyFrame(m.ctrl.Step())
		return nil
	}
	left, right := m.snap.CompareIndex, m.snap.CompareIndex+1
	if right >= len(m.snap.Values) {
		m.applyFrame(m.ctrl.Step())
		return nil
	}
	m.revealing = true
	m.revealSeq++
	seq := m.revealSeq
	m.message = fmt.Sprintf("Comparing %d and %d...", m.snap.Values[left], m.snap.Values[right])
	return tea.Tick(speedSteps[m.speedIdx]/2, func(time.Time) tea.Msg {
		return revealMsg{seq: seq}
	})
}

func (m *Model) cancelReveal() {
	if m.revealing {
		m.revealing = false
		m.revealSeq++
	}
}

func (m *Model) markStarted() {
	if m.startedAt.IsZero() {
		m.startedAt = time.Now()
	}
}

func (m *Model) changeSpeed(delta int) {
	idx := m.speedIdx + delta
	if idx < 0 || idx >= len(speedSteps) {
		return
	}
	if err := m.ctrl.SetSpeed(speedSteps[idx]); err != nil {
		m.logger.Warn("failed to change speed", "err", err)
		return
	}
	m.speedIdx = idx
	m.state = m.ctrl.State()
}

func (m *Model) applyFrame(f playback.Frame) {
	m.snap = f.Snapshot
	m.state = f.State
	m.message = describeOutcome(f.Outcome, f.Snapshot)
	if m.showHistory {
		m.refreshHistory()
	}
	if f.Snapshot.Terminal {
		m.saveRun()
	}
}

func (m *Model) resetView(snap bubblesort.Snapshot) {
	m.cancelReveal()
	m.snap = snap
	m.state = m.ctrl.State()
	m.initial = append([]int(nil), snap.Values...)
	m.startedAt = time.Time{}
	m.saved = false
	m.message = ""
	m.refreshHistory()
}

func (m *Model) refreshHistory() {
	rows := stats.HistoryRows(m.ctrl.History())
	cols := historyColumns(rows)
	width := 0
	for _, c := range cols {
		width += c.Width + 2
	}
	m.history.SetColumns(cols)
	m.history.SetRows(toTableRows(rows))
	m.history.SetWidth(width)
	m.history.GotoBottom()
}

// saveRun records the current run once. Runs without a single tick are
// skipped.
func (m *Model) saveRun() {
	if m.saved || m.snap.Counters.TotalSteps == 0 {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}
	started := m.startedAt
	if started.IsZero() {
		started = time.Now()
	}
	run := model.RunRecord{
		StartedAt:       started,
		EndedAt:         time.Now(),
		Mode:            model.ModeVisualize,
		Optimized:       m.snap.Optimized,
		Initial:         m.initial,
		Final:           m.snap.Values,
		Passes:          m.snap.PassesCompleted,
		Comparisons:     m.snap.Counters.TotalComparisons,
		Swaps:           m.snap.Counters.TotalSwaps,
		EarlyTerminated: m.snap.TerminatedEarly,
		Completed:       m.snap.Terminal,
	}
	if _, err := m.store.InsertRun(context.Background(), run); err != nil {
		m.logger.Error("failed to save run", "err", err)
	}
}

// deliver runs on the controller's timer goroutine. It blocks until the UI
// takes the frame, or gives up once the model is closed.
func (m *Model) deliver(f playback.Frame) {
	select {
	case m.frames <- f:
	case <-m.done:
	}
}

func waitForFrame(frames <-chan playback.Frame, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-frames:
			return frameMsg{frame: f}
		case <-done:
			return nil
		}
	}
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	width := int(float64(m.width) * 0.70)
	if width < 20 {
		width = min(m.width, 20)
	}
	return width
}

func (m *Model) renderHeader() string {
	variant := "plain"
	if m.snap.Optimized {
		variant = "optimized"
	}
	title := titleStyle.Render("Bubble Sort") + footerStyle.Render(" · "+variant)
	speed := fmt.Sprintf("%dms", speedSteps[m.speedIdx].Milliseconds())
	state := pausedStyle.Render("paused")
	if m.state.Running {
		state = runningStyle.Render("playing")
	}
	return title + "  " + state + footerStyle.Render(" · "+speed)
}

func (m *Model) renderCursor() string {
	switch {
	case m.snap.TerminatedEarly:
		return fmt.Sprintf("Sorted early after %d passes", m.snap.PassesCompleted)
	case m.snap.Terminal:
		return fmt.Sprintf("Sorted after %d passes", m.snap.PassesCompleted)
	default:
		return fmt.Sprintf("Pass %d · comparing positions %d and %d",
			m.snap.Pass+1, m.snap.CompareIndex, m.snap.CompareIndex+1)
	}
}

func (m *Model) renderCounters() string {
	c := m.snap.Counters
	return footerStyle.Render(fmt.Sprintf("Steps %d  Comparisons %d  Swaps %d  Swaps this pass %d",
		c.TotalSteps, c.TotalComparisons, c.TotalSwaps, c.SwapsInCurrentPass))
}

func describeOutcome(out bubblesort.Outcome, snap bubblesort.Snapshot) string {
	switch out.Kind {
	case bubblesort.KindSorted:
		return fmt.Sprintf("Sorted: %d comparisons, %d swaps.", snap.Counters.TotalComparisons, snap.Counters.TotalSwaps)
	case bubblesort.KindEarlyTerminated:
		return fmt.Sprintf("Pass %d made no swaps, so the array is sorted.", snap.PassesCompleted)
	case bubblesort.KindPassComplete:
		if out.PassCompleted != nil {
			return fmt.Sprintf("Pass %d complete with %d swaps.", out.PassCompleted.Pass, out.PassCompleted.Swaps)
		}
	}
	if out.Left < 0 || out.Right >= len(snap.Values) {
		return ""
	}
	left, right := snap.Values[out.Left], snap.Values[out.Right]
	if out.Swapped {
		return fmt.Sprintf("Swapped %d and %d.", right, left)
	}
	return fmt.Sprintf("%d ≤ %d, no swap.", left, right)
}

func historyColumns(rows [][]string) []table.Column {
	cols := make([]table.Column, len(stats.HistoryHeaders))
	for i, title := range stats.HistoryHeaders {
		width := runewidth.StringWidth(title)
		for _, row := range rows {
			if i < len(row) {
				width = max(width, runewidth.StringWidth(row[i]))
			}
		}
		cols[i] = table.Column{Title: title, Width: width}
	}
	return cols
}

func toTableRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		out[i] = table.Row(row)
	}
	return out
}

func nearestSpeed(d time.Duration) int {
	best := 0
	for i, s := range speedSteps {
		if absDuration(s-d) < absDuration(speedSteps[best]-d) {
			best = i
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
