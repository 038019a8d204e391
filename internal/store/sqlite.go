package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/agenthands/scorecard/internal/core/model"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results db '%s': %w", path, err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		uuid       TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS evaluations (
		uuid        TEXT PRIMARY KEY,
		run_uuid    TEXT NOT NULL REFERENCES runs(uuid),
		sample_id   TEXT NOT NULL,
		predicted   TEXT NOT NULL,
		truth       TEXT NOT NULL,
		precision   REAL NOT NULL,
		recall      REAL NOT NULL,
		f1          REAL NOT NULL,
		exact_count INTEGER NOT NULL,
		fuzzy_score REAL NOT NULL,
		report      TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_evaluations_run ON evaluations(run_uuid);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate results db: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run model.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (uuid, name, created_at) VALUES (?, ?, ?)`,
		run.UUID, run.Name, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.UUID, err)
	}
	return nil
}

func (s *SQLiteStore) SaveEvaluation(ctx context.Context, ev model.Evaluation) error {
	predicted, err := json.Marshal(ev.Predicted)
	if err != nil {
		return fmt.Errorf("failed to marshal predicted list: %w", err)
	}
	truth, err := json.Marshal(ev.Truth)
	if err != nil {
		return fmt.Errorf("failed to marshal truth list: %w", err)
	}
	report, err := json.Marshal(ev.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO evaluations
		 (uuid, run_uuid, sample_id, predicted, truth, precision, recall, f1, exact_count, fuzzy_score, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.UUID, ev.RunUUID, ev.SampleID, string(predicted), string(truth),
		ev.Report.Precision, ev.Report.Recall, ev.Report.F1,
		ev.Report.ExactCount, ev.Report.FuzzyScore, string(report), ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save evaluation %s: %w", ev.UUID, err)
	}
	return nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]model.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT uuid, name, created_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		if err := rows.Scan(&r.UUID, &r.Name, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) ListEvaluations(ctx context.Context, runUUID string) ([]model.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT uuid, run_uuid, sample_id, predicted, truth, report, created_at
		 FROM evaluations WHERE run_uuid = ? ORDER BY created_at`, runUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations for run %s: %w", runUUID, err)
	}
	defer rows.Close()

	var evs []model.Evaluation
	for rows.Next() {
		var ev model.Evaluation
		var predicted, truth, report string
		if err := rows.Scan(&ev.UUID, &ev.RunUUID, &ev.SampleID, &predicted, &truth, &report, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		if err := json.Unmarshal([]byte(predicted), &ev.Predicted); err != nil {
			return nil, fmt.Errorf("failed to unmarshal predicted list: %w", err)
		}
		if err := json.Unmarshal([]byte(truth), &ev.Truth); err != nil {
			return nil, fmt.Errorf("failed to unmarshal truth list: %w", err)
		}
		if err := json.Unmarshal([]byte(report), &ev.Report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report: %w", err)
		}
		evs = append(evs, ev)
	}
	return evs, rows.Err()
}

func (s *SQLiteStore) GetRunSummary(ctx context.Context, runUUID string) (model.RunSummary, error) {
	summary := model.RunSummary{RunUUID: runUUID}
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(precision), 0), COALESCE(AVG(recall), 0), COALESCE(AVG(f1), 0)
		 FROM evaluations WHERE run_uuid = ?`, runUUID).
		Scan(&summary.Samples, &summary.MeanPrecision, &summary.MeanRecall, &summary.MeanF1)
	if err != nil {
		return summary, fmt.Errorf("failed to summarize run %s: %w", runUUID, err)
	}
	return summary, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
