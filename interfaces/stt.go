// ovozlabs/ovoz-voice-service/interfaces/stt.go
package interfaces

import "context"

// SpeechToText is the interface for the speech-to-text engine
type SpeechToText interface {
	Transcribe(ctx context.Context, audioData []byte) (string, error)
	Name() string
}
