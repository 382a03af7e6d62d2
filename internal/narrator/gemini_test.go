package narrator

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestGetText(t *testing.T) {
	assert.Equal(t, "", getText(nil))
	assert.Equal(t, "", getText(&genai.GenerateContentResponse{}))
	assert.Equal(t, "", getText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Serena steps "),
				genai.Blob{MIMEType: "image/png"},
				genai.Text("into the ballroom."),
			}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	assert.Equal(t, "Serena steps into the ballroom.", getText(resp))
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "", "")
	assert.Error(t, err)
}
