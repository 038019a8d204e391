package scoring

import (
	"context"

	"github.com/agenthands/scorecard/internal/config"
	"github.com/agenthands/scorecard/internal/core/common"
	"github.com/agenthands/scorecard/internal/core/model"
	"github.com/agenthands/scorecard/internal/core/similarity"
)

// Matcher pairs predicted names against ground truth: an exact pass on
// normalized forms first, then greedy in-order fuzzy assignment through the
// oracle. Greedy and order-sensitive rather than an optimal bipartite
// assignment; lists are small and the simple policy keeps scores stable on
// existing data.
type Matcher struct {
	Oracle    similarity.Oracle
	Threshold float64
}

func NewMatcher(oracle similarity.Oracle, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = config.DefaultThreshold
	}
	return &Matcher{
		Oracle:    oracle,
		Threshold: threshold,
	}
}

// Match resolves every predicted name to at most one ground-truth entry.
// Each truth entry is claimed at most once. A fuzzy match is accepted only
// when the best similarity strictly exceeds the threshold; ties keep the
// first-encountered truth item. Input slices are not mutated.
func (m *Matcher) Match(ctx context.Context, predicted, truth []string) []model.MatchResult {
	normPred := common.NormalizeAll(predicted)
	normTruth := common.NormalizeAll(truth)

	predSet := make(map[string]struct{}, len(normPred))
	for _, p := range normPred {
		predSet[p] = struct{}{}
	}
	truthSet := make(map[string]struct{}, len(normTruth))
	for _, t := range normTruth {
		truthSet[t] = struct{}{}
	}

	claimed := make([]bool, len(truth))
	results := make([]model.MatchResult, 0, len(predicted))

	for i, p := range predicted {
		if _, ok := truthSet[normPred[i]]; ok {
			results = append(results, m.claimExact(p, normPred[i], truth, normTruth, claimed))
			continue
		}

		// Fuzzy pass over truths still unclaimed and without an exact
		// partner of their own. Similarity always sees the original
		// strings; the oracle decides how to treat them.
		best := -1
		bestScore := 0.0
		for j, t := range truth {
			if claimed[j] {
				continue
			}
			if _, ok := predSet[normTruth[j]]; ok {
				continue
			}
			score := m.Oracle.Similarity(ctx, p, t)
			if score > bestScore {
				bestScore = score
				best = j
			}
		}

		if best >= 0 && bestScore > m.Threshold {
			claimed[best] = true
			results = append(results, model.MatchResult{
				Predicted: p,
				Truth:     truth[best],
				Type:      model.MatchFuzzy,
				Score:     bestScore,
			})
		} else {
			results = append(results, model.MatchResult{
				Predicted: p,
				Type:      model.MatchUnmatched,
				Score:     bestScore,
			})
		}
	}

	return results
}

// claimExact consumes the first unclaimed truth instance sharing the
// normalized key. A prediction whose key was already fully consumed (a
// duplicate) goes unmatched without touching the oracle.
func (m *Matcher) claimExact(pred, key string, truth, normTruth []string, claimed []bool) model.MatchResult {
	for j := range truth {
		if !claimed[j] && normTruth[j] == key {
			claimed[j] = true
			return model.MatchResult{
				Predicted: pred,
				Truth:     truth[j],
				Type:      model.MatchExact,
				Score:     1.0,
			}
		}
	}
	return model.MatchResult{
		Predicted: pred,
		Type:      model.MatchUnmatched,
	}
}
