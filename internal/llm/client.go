package llm

import (
	"context"
)

// Client is the single capability the scoring engine needs from a language
// model: send one user-turn prompt, get the completion text back.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
