package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/scorecard/internal/config"
	"github.com/agenthands/scorecard/internal/core/model"
)

func TestEvaluateLexicalEndToEnd(t *testing.T) {
	engine := NewEngine(config.Default(), nil, nil)
	ctx := context.Background()

	report := engine.Evaluate(ctx,
		"分析完成。\nEIF list: [Job Info, Employee Info]",
		[]string{"job info", "employee info"})

	assert.Equal(t, 2, report.ExactCount)
	assert.Equal(t, 1.0, report.Precision)
	assert.Equal(t, 1.0, report.Recall)
	assert.Equal(t, 1.0, report.F1)
	assert.Empty(t, report.TruthMissed)
}

func TestEvaluateSemanticFuzzyMatch(t *testing.T) {
	cfg := config.Default()
	cfg.Scoring.UseSemantic = true
	client := &MockLLMClient{Response: "0.9"}
	engine := NewEngine(cfg, client, nil)

	report := engine.Evaluate(context.Background(),
		"EIF list: [Customer Data]",
		[]string{"Client Data"})

	require.Len(t, report.Matches, 1)
	assert.Equal(t, model.MatchFuzzy, report.Matches[0].Type)
	assert.InDelta(t, 0.9, report.Matches[0].Score, 1e-9)
	assert.InDelta(t, 0.9, report.Precision, 1e-9)
	assert.Equal(t, 1, client.Calls)
}

func TestEvaluateSemanticDegradesOnFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Scoring.UseSemantic = true
	engine := NewEngine(cfg, &MockLLMClient{Err: errors.New("timeout")}, nil)

	// The oracle failure must degrade to lexical scoring, never surface.
	report := engine.Evaluate(context.Background(),
		"EIF list: [Totally Different]",
		[]string{"Client Data"})

	require.Len(t, report.Matches, 1)
	assert.Equal(t, model.MatchUnmatched, report.Matches[0].Type)
	assert.Zero(t, report.F1)
}

func TestEvaluateUnparseableResponse(t *testing.T) {
	engine := NewEngine(config.Default(), nil, nil)

	report := engine.Evaluate(context.Background(), "", []string{"Job Info"})
	assert.Zero(t, report.Precision)
	assert.Zero(t, report.Recall)
	assert.Zero(t, report.F1)
	assert.Equal(t, []string{"Job Info"}, report.TruthMissed)
}

func TestEvaluateCachedSemanticReusesScores(t *testing.T) {
	cfg := config.Default()
	cfg.Scoring.UseSemantic = true
	cfg.Cache.Enabled = true
	client := &MockLLMClient{Response: "0.85"}
	engine := NewEngine(cfg, client, nil)
	ctx := context.Background()

	engine.Evaluate(ctx, "EIF list: [Customer Data]", []string{"Client Data"})
	engine.Evaluate(ctx, "EIF list: [Customer Data]", []string{"Client Data"})

	assert.Equal(t, 1, client.Calls)
}
