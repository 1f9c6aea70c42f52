package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type IGemini interface {
	Ask(ctx context.Context, prompt string) (string, error)
	Close()
}

type geminiClient struct {
	modelName string
	persona   string
	client    *genai.Client
}

// NewGeminiClient builds the text client. The persona preamble is prepended
// to every request so replies keep a consistent voice across turns.
func NewGeminiClient(apiKey, modelName, persona string) (IGemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		modelName: modelName,
		persona:   persona,
		client:    client,
	}, nil
}

func (g *geminiClient) Ask(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)

	fullPrompt := fmt.Sprintf("%s\nUser: %s", g.persona, prompt)

	res, err := model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	part := res.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return string(text), nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
