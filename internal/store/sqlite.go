package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/vecta-co/leadgen-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	input_path  TEXT NOT NULL,
	output_path TEXT NOT NULL,
	summary     TEXT,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, kind model.RunKind, inputPath, outputPath string) (*model.Run, error) {
	run := &model.Run{
		ID:         uuid.New().String(),
		Kind:       kind,
		Status:     model.RunStatusRunning,
		InputPath:  inputPath,
		OutputPath: outputPath,
		StartedAt:  time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, status, input_path, output_path, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), string(run.Status), run.InputPath, run.OutputPath, run.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, status model.RunStatus, summary *model.RunSummary) error {
	var summaryJSON sql.NullString
	if summary != nil {
		data, err := json.Marshal(summary)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal summary")
		}
		summaryJSON = sql.NullString{String: string(data), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, summary = ?, finished_at = ? WHERE id = ?`,
		string(status), summaryJSON, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, status, input_path, output_path, summary, started_at, finished_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var (
			run         model.Run
			summaryJSON sql.NullString
			finishedAt  sql.NullTime
		)
		if err := rows.Scan(&run.ID, &run.Kind, &run.Status, &run.InputPath, &run.OutputPath,
			&summaryJSON, &run.StartedAt, &finishedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		if summaryJSON.Valid {
			var summary model.RunSummary
			if err := json.Unmarshal([]byte(summaryJSON.String), &summary); err != nil {
				return nil, eris.Wrapf(err, "sqlite: unmarshal summary for run %s", run.ID)
			}
			run.Summary = &summary
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}
