package stt

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperEngine transcribes audio through the OpenAI Whisper API.
type WhisperEngine struct {
	client   *openai.Client
	language string
}

func NewWhisperEngine(apiKey, language string) (*WhisperEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("whisper engine requires an OpenAI API key")
	}
	return &WhisperEngine{
		client:   openai.NewClient(apiKey),
		language: language,
	}, nil
}

func (w *WhisperEngine) Name() string { return "whisper" }

func (w *WhisperEngine) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audioData),
		FilePath: "voice.ogg", // name only, used by the API to sniff the format
		Language: w.language,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription failed: %w", err)
	}
	return resp.Text, nil
}
