package model

import "time"

type MatchType string

const (
	MatchExact     MatchType = "exact"
	MatchFuzzy     MatchType = "fuzzy"
	MatchUnmatched MatchType = "unmatched"
)

// MatchResult records how a single predicted name was resolved against the
// ground truth. Truth is empty when the prediction went unmatched. Each
// ground-truth entry is claimed by at most one non-unmatched result.
type MatchResult struct {
	Predicted string    `json:"predicted"`
	Truth     string    `json:"truth,omitempty"`
	Type      MatchType `json:"type"`
	Score     float64   `json:"score"`
}

// ScoreReport aggregates the match results of one scoring call. FuzzyScore is
// the sum of accepted fuzzy similarities, so the effective match total
// (ExactCount + FuzzyScore) is a real number.
type ScoreReport struct {
	Precision    float64       `json:"precision"`
	Recall       float64       `json:"recall"`
	F1           float64       `json:"f1"`
	ExactCount   int           `json:"exact_count"`
	FuzzyScore   float64       `json:"fuzzy_score"`
	Matches      []MatchResult `json:"matches"`
	TruthMissed  []string      `json:"truth_missed,omitempty"`
	MatchDetails []string      `json:"match_details,omitempty"`
}

// Evaluation is one persisted scoring call: the raw inputs plus the report.
type Evaluation struct {
	UUID      string      `json:"uuid"`
	RunUUID   string      `json:"run_uuid"`
	SampleID  string      `json:"sample_id"`
	Predicted []string    `json:"predicted"`
	Truth     []string    `json:"truth"`
	Report    ScoreReport `json:"report"`
	CreatedAt time.Time   `json:"created_at"`
}

// Run groups the evaluations of one batch or API session.
type Run struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RunSummary holds per-run aggregates over the stored evaluations.
type RunSummary struct {
	RunUUID       string  `json:"run_uuid"`
	Samples       int     `json:"samples"`
	MeanPrecision float64 `json:"mean_precision"`
	MeanRecall    float64 `json:"mean_recall"`
	MeanF1        float64 `json:"mean_f1"`
}
