// Package main provides the CLI entrypoint for sortlab.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/sortlab/internal/bubblesort"
	"github.com/verte-zerg/sortlab/internal/config"
	"github.com/verte-zerg/sortlab/internal/generator"
	"github.com/verte-zerg/sortlab/internal/model"
	"github.com/verte-zerg/sortlab/internal/practiceui"
	"github.com/verte-zerg/sortlab/internal/stats"
	"github.com/verte-zerg/sortlab/internal/statsui"
	"github.com/verte-zerg/sortlab/internal/store"
	"github.com/verte-zerg/sortlab/internal/tui"
)

var (
	rootLab     labFlags
	practiceLab labFlags
	runLab      labFlags

	logDebug bool
	logFile  string

	runCompare bool
	runBars    bool
	runNoSave  bool

	historyMode  string
	historySince string
	historyLast  int
	historyText  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sortlab",
		Short:         "Step through Bubble Sort one comparison at a time",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runVisualizeCmd,
	}
	rootCmd.PersistentFlags().BoolVar(&logDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	addLabFlags(rootCmd, &rootLab)

	rootCmd.AddCommand(newPracticeCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPresetsCmd())
	return rootCmd
}

func runVisualizeCmd(cmd *cobra.Command, _ []string) error {
	lab, err := loadLab(cmd, &rootLab)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cmd, lab.file, true)
	if err != nil {
		return err
	}
	defer closeLog()

	gen := generator.New()
	values, err := resolveValues(lab.cfg, gen, "")
	if err != nil {
		return err
	}
	engine, err := bubblesort.New(values, bubblesort.Options{Optimized: lab.cfg.Optimized, Generator: gen})
	if err != nil {
		return err
	}

	st, err := store.Open(lab.env.DBPathOrDefault())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st, logger)

	logger.Debug("starting visualizer", "length", len(values), "optimized", lab.cfg.Optimized, "speed_ms", lab.cfg.SpeedMs)
	m := tui.NewModel(lab.cfg, engine, st, logger)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newPracticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Decide every swap yourself",
		Args:  cobra.NoArgs,
		RunE:  runPracticeCmd,
	}
	addLabFlags(cmd, &practiceLab)
	return cmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	lab, err := loadLab(cmd, &practiceLab)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cmd, lab.file, true)
	if err != nil {
		return err
	}
	defer closeLog()

	values, err := resolveValues(lab.cfg, generator.New(), "practice")
	if err != nil {
		return err
	}
	st, err := store.Open(lab.env.DBPathOrDefault())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st, logger)

	m, err := practiceui.NewModel(lab.cfg, values, st, logger)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run practice TUI: %w", err)
	}
	m.Close()

	s := m.Summary()
	if s.Score+s.Mistakes == 0 {
		return nil
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Score %d  Mistakes %d  Hints %d  Accuracy %.1f%%\n",
		s.Score, s.Mistakes, s.HintsUsed, s.Accuracy*100)
	return err
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sort headlessly and print the pass history",
		Args:  cobra.NoArgs,
		RunE:  runHeadlessCmd,
	}
	addLabFlags(cmd, &runLab)
	cmd.Flags().BoolVar(&runCompare, "compare", false, "compare plain and optimized variants")
	cmd.Flags().BoolVar(&runBars, "bars", false, "print a bar chart after every pass")
	cmd.Flags().BoolVar(&runNoSave, "no-save", false, "do not record the run")
	return cmd
}

func runHeadlessCmd(cmd *cobra.Command, _ []string) error {
	lab, err := loadLab(cmd, &runLab)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cmd, lab.file, false)
	if err != nil {
		return err
	}
	defer closeLog()

	gen := generator.New()
	values, err := resolveValues(lab.cfg, gen, "")
	if err != nil {
		return err
	}
	started := time.Now()
	snap, err := runHeadless(cmd.OutOrStdout(), values, lab.cfg, runCompare, runBars)
	if err != nil {
		return err
	}
	if runNoSave {
		return nil
	}

	st, err := store.Open(lab.env.DBPathOrDefault())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st, logger)
	run := model.RunRecord{
		StartedAt:       started,
		EndedAt:         time.Now(),
		Mode:            model.ModeHeadless,
		Optimized:       snap.Optimized,
		Initial:         values,
		Final:           snap.Values,
		Passes:          snap.PassesCompleted,
		Comparisons:     snap.Counters.TotalComparisons,
		Swaps:           snap.Counters.TotalSwaps,
		EarlyTerminated: snap.TerminatedEarly,
		Completed:       snap.Terminal,
	}
	id, err := st.InsertRun(context.Background(), run)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	logger.Debug("run saved", "id", id)
	return nil
}

// runHeadless ticks an engine to completion and prints its report.
func runHeadless(w io.Writer, values []int, cfg model.Config, compare, bars bool) (bubblesort.Snapshot, error) {
	engine, err := bubblesort.New(values, bubblesort.Options{Optimized: cfg.Optimized})
	if err != nil {
		return bubblesort.Snapshot{}, err
	}
	if bars {
		if _, err := fmt.Fprintln(w, "Initial"); err != nil {
			return bubblesort.Snapshot{}, err
		}
		snap := engine.Snapshot()
		if err := stats.RenderBars(w, snap.Values, snap.Statuses, 0); err != nil {
			return bubblesort.Snapshot{}, err
		}
	}
	for !engine.Terminal() {
		out := engine.Tick()
		if !bars || out.PassCompleted == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "\nAfter pass %d (%d swaps)\n", out.PassCompleted.Pass, out.PassCompleted.Swaps); err != nil {
			return bubblesort.Snapshot{}, err
		}
		snap := engine.Snapshot()
		if err := stats.RenderBars(w, snap.Values, snap.Statuses, 0); err != nil {
			return bubblesort.Snapshot{}, err
		}
	}
	if bars {
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return bubblesort.Snapshot{}, err
		}
	}

	snap := engine.Snapshot()
	if err := stats.RenderHistory(w, engine.History()); err != nil {
		return snap, err
	}
	if err := stats.RenderRunResult(w, snap); err != nil {
		return snap, err
	}
	if !compare {
		return snap, nil
	}

	other, err := bubblesort.New(values, bubblesort.Options{Optimized: !cfg.Optimized})
	if err != nil {
		return snap, err
	}
	other.RunToEnd()
	plain, optimized := snap, other.Snapshot()
	if cfg.Optimized {
		plain, optimized = optimized, plain
	}
	return snap, stats.RenderComparison(w, plain, optimized)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyMode, "mode", "", "mode filter (visualize, practice, run)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().BoolVar(&historyText, "text", false, "print a text summary instead of the TUI")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter, err := buildHistoryFilter(historyMode, historySince, historyLast)
	if err != nil {
		return err
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	st, err := store.Open(envCfg.DBPathOrDefault())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyText {
		report, err := stats.BuildReport(context.Background(), st, filter)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		out := cmd.OutOrStdout()
		if err := stats.RenderSummary(out, report.Runs); err != nil {
			return err
		}
		if len(report.Practice) == 0 {
			return nil
		}
		return stats.RenderPracticeSummary(out, report.Practice)
	}

	m := statsui.NewModel(st, filter)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func buildHistoryFilter(mode, since string, last int) (model.HistoryFilter, error) {
	switch mode {
	case "", model.ModeVisualize, model.ModePractice, model.ModeHeadless:
	default:
		return model.HistoryFilter{}, fmt.Errorf("invalid --mode %q (want visualize, practice or run)", mode)
	}
	if last < 0 {
		return model.HistoryFilter{}, fmt.Errorf("--last must be >= 0")
	}
	filter := model.HistoryFilter{Mode: mode, Last: last}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.HistoryFilter{}, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	return filter, nil
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

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List example arrays",
		Args:  cobra.NoArgs,
		RunE:  runPresetsCmd,
	}
}

func runPresetsCmd(cmd *cobra.Command, _ []string) error {
	for _, name := range generator.PresetNames() {
		values, _ := generator.Preset(name)
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, joinInts(values)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func closeStore(st *store.Store, logger *log.Logger) {
	if cerr := st.Close(); cerr != nil {
		logger.Error("failed to close db", "err", cerr)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
