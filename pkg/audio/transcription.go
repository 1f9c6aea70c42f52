package audio

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type TranscriptionService struct {
	client *openai.Client
}

func NewTranscriptionService(apiKey string) *TranscriptionService {
	client := openai.NewClient(apiKey)
	return &TranscriptionService{client: client}
}

func (t *TranscriptionService) TranscribeAudio(ctx context.Context, filePath string) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filePath,
		Language: "en",
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}
