package store

import (
	"context"

	"github.com/agenthands/scorecard/internal/core/model"
)

// ResultStore persists evaluation runs and their score reports. The engine
// treats it as optional: a nil store means score-and-forget.
type ResultStore interface {
	SaveRun(ctx context.Context, run model.Run) error
	SaveEvaluation(ctx context.Context, ev model.Evaluation) error
	ListRuns(ctx context.Context) ([]model.Run, error)
	ListEvaluations(ctx context.Context, runUUID string) ([]model.Evaluation, error)
	GetRunSummary(ctx context.Context, runUUID string) (model.RunSummary, error)
	Close() error
}
