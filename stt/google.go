// ovozlabs/ovoz-voice-service/stt/google.go
package stt

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// GoogleEngine transcribes voice notes with the Google Cloud Speech API.
// Chat-platform voice messages arrive as OGG/Opus at 48kHz.
type GoogleEngine struct {
	speechClient *speech.Client
	language     string
}

// NewGoogleEngine creates a new Google Cloud Speech client.
// It relies on Application Default Credentials for authentication.
func NewGoogleEngine(ctx context.Context, language string) (*GoogleEngine, error) {
	speechClient, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	if language == "" {
		language = "en-US"
	}
	return &GoogleEngine{speechClient: speechClient, language: language}, nil
}

// Close cleans up the speech client connection.
func (g *GoogleEngine) Close() {
	if g.speechClient != nil {
		g.speechClient.Close()
	}
}

func (g *GoogleEngine) Name() string { return "google" }

// Transcribe sends the complete audio in one synchronous Recognize call
// and joins the returned alternatives into a single transcript.
func (g *GoogleEngine) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	resp, err := g.speechClient.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_OGG_OPUS,
			SampleRateHertz: 48000,
			LanguageCode:    g.language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return "", fmt.Errorf("could not recognize audio: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript)
			transcript.WriteString(" ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}
