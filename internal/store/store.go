// Package store handles SQLite persistence of the run log.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/sortlab/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			optimized INTEGER NOT NULL,
			initial TEXT NOT NULL,
			final TEXT NOT NULL,
			passes INTEGER NOT NULL,
			comparisons INTEGER NOT NULL,
			swaps INTEGER NOT NULL,
			early_terminated INTEGER NOT NULL,
			completed INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS practice_results (
			run_id TEXT PRIMARY KEY REFERENCES runs(id),
			score INTEGER NOT NULL,
			mistakes INTEGER NOT NULL,
			hints INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS decisions (
			run_id TEXT NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			question_index INTEGER NOT NULL,
			pass INTEGER NOT NULL,
			compare_index INTEGER NOT NULL,
			user_decision INTEGER NOT NULL,
			ground_truth INTEGER NOT NULL,
			is_correct INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InsertRun stores a run and returns its generated ID.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := insertRun(ctx, s.db, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

func insertRun(ctx context.Context, ex execer, run model.RunRecord) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, ended_at, mode, optimized, initial, final, passes, comparisons, swaps, early_terminated, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Mode,
		boolInt(run.Optimized),
		joinInts(run.Initial),
		joinInts(run.Final),
		run.Passes,
		run.Comparisons,
		run.Swaps,
		boolInt(run.EarlyTerminated),
		boolInt(run.Completed),
	)
	return err
}

// InsertPractice stores a practice run, its scorecard and every decision.
func (s *Store) InsertPractice(ctx context.Context, run model.RunRecord, result model.PracticeResult, decisions []model.DecisionRow) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.Mode = model.ModePractice

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if err = insertRun(ctx, tx, run); err != nil {
		return "", err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO practice_results (run_id, score, mistakes, hints) VALUES (?, ?, ?, ?)`,
		run.ID, result.Score, result.Mistakes, result.HintsUsed,
	); err != nil {
		return "", err
	}

	if len(decisions) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO decisions (run_id, seq, question_index, pass, compare_index, user_decision, ground_truth, is_correct)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, d := range decisions {
			if _, err = stmt.ExecContext(ctx, run.ID, d.Seq, d.QuestionIndex, d.Pass, d.CompareIndex,
				boolInt(d.UserDecision), boolInt(d.GroundTruth), boolInt(d.IsCorrect)); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

const runColumns = `r.id, r.started_at, r.ended_at, r.mode, r.optimized, r.initial, r.final,
	r.passes, r.comparisons, r.swaps, r.early_terminated, r.completed`

// ListRuns returns runs matching the filter, oldest first.
func (s *Store) ListRuns(ctx context.Context, filter model.HistoryFilter) ([]model.RunRecord, error) {
	where, args := filterClauses(filter)
	query := fmt.Sprintf(`SELECT %s FROM runs r WHERE %s ORDER BY r.ended_at ASC`, runColumns, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trimLast(runs, filter.Last), nil
}

// ListPractice returns practice runs with their scorecards, oldest first.
func (s *Store) ListPractice(ctx context.Context, filter model.HistoryFilter) ([]model.PracticeAggregate, error) {
	filter.Mode = model.ModePractice
	where, args := filterClauses(filter)
	query := fmt.Sprintf(`SELECT %s, p.score, p.mistakes, p.hints
		FROM runs r
		JOIN practice_results p ON p.run_id = r.id
		WHERE %s
		ORDER BY r.ended_at ASC`, runColumns, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PracticeAggregate
	for rows.Next() {
		var agg model.PracticeAggregate
		run, err := scanRun(rows, &agg.Result.Score, &agg.Result.Mistakes, &agg.Result.HintsUsed)
		if err != nil {
			return nil, err
		}
		agg.Run = run
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(result) > filter.Last {
		result = result[len(result)-filter.Last:]
	}
	return result, nil
}

// ListDecisions returns the stored answers of one practice run in order.
func (s *Store) ListDecisions(ctx context.Context, runID string) ([]model.DecisionRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, question_index, pass, compare_index, user_decision, ground_truth, is_correct
		 FROM decisions WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.DecisionRow
	for rows.Next() {
		var d model.DecisionRow
		var user, truth, correct int
		if err := rows.Scan(&d.Seq, &d.QuestionIndex, &d.Pass, &d.CompareIndex, &user, &truth, &correct); err != nil {
			return nil, err
		}
		d.UserDecision = user != 0
		d.GroundTruth = truth != 0
		d.IsCorrect = correct != 0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner, extra ...any) (model.RunRecord, error) {
	var run model.RunRecord
	var startedAt, endedAt, initial, final string
	var optimized, early, completed int
	dest := []any{&run.ID, &startedAt, &endedAt, &run.Mode, &optimized, &initial, &final,
		&run.Passes, &run.Comparisons, &run.Swaps, &early, &completed}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return model.RunRecord{}, err
	}
	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return model.RunRecord{}, err
	}
	if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return model.RunRecord{}, err
	}
	if run.Initial, err = splitInts(initial); err != nil {
		return model.RunRecord{}, err
	}
	if run.Final, err = splitInts(final); err != nil {
		return model.RunRecord{}, err
	}
	run.Optimized = optimized != 0
	run.EarlyTerminated = early != 0
	run.Completed = completed != 0
	return run, nil
}

func filterClauses(filter model.HistoryFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Mode != "" {
		clauses = append(clauses, "r.mode = ?")
		args = append(args, filter.Mode)
	}
	if filter.Since != nil {
		clauses = append(clauses, "r.ended_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

func trimLast(runs []model.RunRecord, last int) []model.RunRecord {
	if last > 0 && len(runs) > last {
		return runs[len(runs)-last:]
	}
	return runs
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("corrupt array column %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}
