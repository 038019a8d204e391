package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/scorecard/internal/config"
	"github.com/agenthands/scorecard/internal/core/extraction"
	"github.com/agenthands/scorecard/internal/core/model"
	"github.com/agenthands/scorecard/internal/core/scoring"
	"github.com/agenthands/scorecard/internal/core/similarity"
	"github.com/agenthands/scorecard/internal/llm"
	"github.com/agenthands/scorecard/internal/store"
)

// Engine turns one raw model response into a structured candidate list and a
// score report against ground truth. It owns no cross-call state beyond the
// optional similarity cache inside its oracle.
type Engine struct {
	Extractor *extraction.Extractor
	Matcher   *scoring.Matcher
	Store     store.ResultStore
}

// NewEngine wires the pipeline for one configuration. Oracle selection is
// per-engine rather than process-wide, so engines with different
// configurations can score concurrently.
func NewEngine(cfg *config.Config, client llm.Client, st store.ResultStore) *Engine {
	var oracle similarity.Oracle = similarity.Lexical{}
	if cfg.Scoring.UseSemantic && client != nil {
		oracle = similarity.NewSemantic(client)
	}
	if cfg.Cache.Enabled {
		oracle = similarity.NewCached(oracle, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}

	return &Engine{
		Extractor: extraction.NewExtractor(cfg.Scoring.MaxNameLength),
		Matcher:   scoring.NewMatcher(oracle, cfg.Scoring.Threshold),
		Store:     st,
	}
}

// Evaluate extracts the candidate list from the response text and scores it
// against the ground-truth list. Total: malformed responses produce a report
// with an empty prediction, never an error.
func (e *Engine) Evaluate(ctx context.Context, responseText string, truth []string) model.ScoreReport {
	predicted := e.Extractor.Extract(responseText)
	matches := e.Matcher.Match(ctx, predicted, truth)
	return scoring.Score(predicted, truth, matches)
}

// EvaluateSample scores one dataset sample and persists the evaluation when a
// store is configured.
func (e *Engine) EvaluateSample(ctx context.Context, runUUID, sampleID, responseText string, truth []string) (model.Evaluation, error) {
	predicted := e.Extractor.Extract(responseText)
	matches := e.Matcher.Match(ctx, predicted, truth)

	ev := model.Evaluation{
		UUID:      uuid.New().String(),
		RunUUID:   runUUID,
		SampleID:  sampleID,
		Predicted: predicted,
		Truth:     truth,
		Report:    scoring.Score(predicted, truth, matches),
		CreatedAt: time.Now().UTC(),
	}

	if e.Store != nil {
		if err := e.Store.SaveEvaluation(ctx, ev); err != nil {
			return ev, fmt.Errorf("failed to save evaluation: %w", err)
		}
	}
	return ev, nil
}
