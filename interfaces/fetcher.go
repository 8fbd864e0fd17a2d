package interfaces

import "context"

// AudioFetcher resolves an opaque audio reference into raw audio bytes.
// References are handles issued by the chat platform (file IDs, URLs).
type AudioFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}
