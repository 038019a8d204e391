package similarity

import (
	"context"
	"strings"

	"github.com/agenthands/scorecard/internal/core/common"
)

// Oracle scores the similarity of two raw entity names in [0,1]. Symmetric by
// convention. Implementations never fail: scoring must always complete, so
// any internal error degrades to a cheaper estimate instead of propagating.
type Oracle interface {
	Similarity(ctx context.Context, a, b string) float64
}

// Lexical is the offline oracle: token-set Jaccard over normalized names.
// When either name is a single glued token (no whitespace boundaries, as in
// CJK names) it degrades to character-set Jaccard. Deterministic, no I/O.
type Lexical struct{}

func (Lexical) Similarity(_ context.Context, a, b string) float64 {
	a = common.NormalizeName(a)
	b = common.NormalizeName(b)
	if a == "" || b == "" {
		return 0
	}

	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) <= 1 || len(tb) <= 1 {
		return jaccard(runeSet(a), runeSet(b))
	}
	return jaccard(tokenSet(ta), tokenSet(tb))
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func runeSet(s string) map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for _, r := range s {
		set[string(r)] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
