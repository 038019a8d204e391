package similarity

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"

	"github.com/agenthands/scorecard/internal/llm"
)

const similarityPrompt = `You are an IFPUG function point analysis expert. Decide whether the following two function point names refer to the same real-world entity.

Name 1: %s
Name 2: %s

Consider:
1. Do they denote the same external data source or interface?
2. Account for translations, synonyms and abbreviations.
3. Semantic identity matters, not literal equality.

Reply with a similarity score, a single decimal between 0.0 and 1.0:
- 1.0: the same function point
- 0.8-0.9: highly similar, very likely the same
- 0.5-0.7: moderately similar, possibly related
- 0.0-0.4: dissimilar or unrelated

Answer with the number only, e.g. 0.95`

var decimalPattern = regexp.MustCompile(`\d+\.?\d*`)

// Semantic asks a language model whether two names denote the same entity.
// It compares the original strings, not normalized forms: normalization can
// strip meaning-bearing qualifiers. Any transport or parse failure logs a
// warning and degrades to the composed Lexical oracle for the same pair, so
// a call never fails.
type Semantic struct {
	llm      llm.Client
	fallback Lexical
}

func NewSemantic(client llm.Client) *Semantic {
	return &Semantic{llm: client}
}

func (s *Semantic) Similarity(ctx context.Context, a, b string) float64 {
	resp, err := s.llm.Generate(ctx, fmt.Sprintf(similarityPrompt, a, b))
	if err != nil {
		log.Printf("Warning: similarity query failed for '%s' vs '%s': %v, falling back to lexical", a, b, err)
		return s.fallback.Similarity(ctx, a, b)
	}

	text := decimalPattern.FindString(resp)
	if text == "" {
		log.Printf("Warning: no score in similarity response '%s', falling back to lexical", resp)
		return s.fallback.Similarity(ctx, a, b)
	}

	score, err := strconv.ParseFloat(text, 64)
	if err != nil {
		log.Printf("Warning: unparseable score '%s', falling back to lexical", text)
		return s.fallback.Similarity(ctx, a, b)
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
