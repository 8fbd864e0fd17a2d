package stt

import (
	"context"
	"log"
)

// StubEngine is a mock implementation of the speech-to-text engine.
type StubEngine struct{}

func (s *StubEngine) Name() string { return "stub" }

// Transcribe returns a canned transcription.
func (s *StubEngine) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	log.Printf("[STUB_STT] Transcribe called with %d bytes", len(audioData))
	return "[transcribed audio]", nil
}
