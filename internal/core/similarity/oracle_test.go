package similarity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicalTokenJaccard(t *testing.T) {
	lex := Lexical{}
	ctx := context.Background()

	// {employee, record} vs {employee, records, table}: 1 shared of 4.
	score := lex.Similarity(ctx, "Employee Record", "Employee Records Table")
	assert.InDelta(t, 0.25, score, 1e-9)

	assert.Equal(t, 1.0, lex.Similarity(ctx, "Job Info", "job   INFO"))
	assert.Equal(t, 0.0, lex.Similarity(ctx, "Alpha Beta", "Gamma Delta"))
}

func TestLexicalDeterministic(t *testing.T) {
	lex := Lexical{}
	ctx := context.Background()

	first := lex.Similarity(ctx, "Employee Record", "Employee Records Table")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, lex.Similarity(ctx, "Employee Record", "Employee Records Table"))
	}
}

func TestLexicalCharacterFallback(t *testing.T) {
	lex := Lexical{}
	ctx := context.Background()

	// Single glued tokens: character-set Jaccard. {客,户,信,息} vs {客,户,资,料}.
	score := lex.Similarity(ctx, "客户信息", "客户资料")
	assert.InDelta(t, 1.0/3.0, score, 1e-9)
}

func TestLexicalEmptyInputs(t *testing.T) {
	lex := Lexical{}
	ctx := context.Background()

	assert.Equal(t, 0.0, lex.Similarity(ctx, "", "Job Info"))
	assert.Equal(t, 0.0, lex.Similarity(ctx, "Job Info", ""))
	assert.Equal(t, 0.0, lex.Similarity(ctx, "", ""))
}

func TestLexicalBounds(t *testing.T) {
	lex := Lexical{}
	ctx := context.Background()

	pairs := [][2]string{
		{"a", "b"}, {"a b c", "c d e"}, {"职位信息", "员工信息"}, {"Same Name", "Same Name"},
	}
	for _, p := range pairs {
		s := lex.Similarity(ctx, p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}
