// ovozlabs/ovoz-voice-service/stt/stt.go
package stt

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ovozlabs/ovoz-voice-service/config"
	"github.com/ovozlabs/ovoz-voice-service/interfaces"
)

// NewEngine creates a speech-to-text engine from configuration.
func NewEngine(ctx context.Context, cfg *config.EngineConfig) (interfaces.SpeechToText, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = "whisper"
		log.Printf("[STT] provider not set, defaulting to 'whisper'")
	}

	switch provider {
	case "whisper":
		return NewWhisperEngine(cfg.OpenAIKey, cfg.Language)
	case "google":
		return NewGoogleEngine(ctx, cfg.Language)
	case "stub":
		return &StubEngine{}, nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: whisper, google, stub", cfg.Provider)
	}
}
