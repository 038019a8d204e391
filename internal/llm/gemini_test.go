package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiTextExtractsText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("0.85")}}},
		},
	}

	txt, err := geminiText(resp)
	require.NoError(t, err)
	assert.Equal(t, "0.85", txt)
}

func TestGeminiTextNoCandidates(t *testing.T) {
	_, err := geminiText(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}

func TestGeminiTextSafetyBlockedCandidate(t *testing.T) {
	// Blocked generations carry a candidate with nil Content; this must be an
	// error, not a panic, so callers can fall back.
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonSafety, Content: nil},
		},
	}

	_, err := geminiText(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestGeminiTextEmptyParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{}}},
		},
	}

	_, err := geminiText(resp)
	assert.Error(t, err)
}
