package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("## Plan\n"),
				genai.ImageData("png", []byte{0x89}),
				genai.Text("Oats with berries"),
			}},
		}},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "## Plan\nOats with berries", text)
}

func TestResponseText_Empty(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"nil content":   {Candidates: []*genai.Candidate{{}}},
		"blank text": {Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("  \n")}},
		}}},
	}

	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := responseText(resp)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}
