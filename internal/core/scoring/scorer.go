package scoring

import (
	"fmt"

	"github.com/agenthands/scorecard/internal/core/model"
)

// Score aggregates match results into a report. Fuzzy matches contribute
// their fractional similarity, not a flat 1.0: a near-miss is worth less than
// a perfect match, so the effective total is a real number.
func Score(predicted, truth []string, matches []model.MatchResult) model.ScoreReport {
	report := model.ScoreReport{Matches: matches}

	if len(predicted) == 0 && len(truth) == 0 {
		// Vacuous agreement.
		report.Precision = 1.0
		report.Recall = 1.0
		report.F1 = 1.0
		return report
	}
	if len(predicted) == 0 || len(truth) == 0 {
		report.TruthMissed = append(report.TruthMissed, truth...)
		return report
	}

	for _, m := range matches {
		switch m.Type {
		case model.MatchExact:
			report.ExactCount++
		case model.MatchFuzzy:
			report.FuzzyScore += m.Score
			report.MatchDetails = append(report.MatchDetails,
				fmt.Sprintf("%s <-> %s (%.2f)", m.Predicted, m.Truth, m.Score))
		}
	}

	total := float64(report.ExactCount) + report.FuzzyScore
	precision := total / float64(len(predicted))
	recall := total / float64(len(truth))

	report.Precision = precision
	report.Recall = recall
	if precision+recall > 0 {
		report.F1 = 2 * precision * recall / (precision + recall)
	}

	report.TruthMissed = missedTruth(truth, matches)
	return report
}

// missedTruth lists ground-truth entries not claimed by any match, counting
// duplicates per instance.
func missedTruth(truth []string, matches []model.MatchResult) []string {
	claims := make(map[string]int, len(matches))
	for _, m := range matches {
		if m.Truth != "" {
			claims[m.Truth]++
		}
	}

	var missed []string
	for _, t := range truth {
		if claims[t] > 0 {
			claims[t]--
			continue
		}
		missed = append(missed, t)
	}
	return missed
}
