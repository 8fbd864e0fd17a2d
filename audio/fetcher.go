package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxAudioBytes caps a single download. Voice notes are capped at two
// minutes upstream, which is well under this at Opus bitrates.
const maxAudioBytes = 25 << 20

// HTTPFetcher downloads audio bytes from URL-style references handed out
// by the chat platform's file API.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid audio reference %q: %w", ref, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("could not download audio: status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read audio body: %w", err)
	}
	if len(data) > maxAudioBytes {
		return nil, fmt.Errorf("audio exceeds %d byte download cap", maxAudioBytes)
	}
	return data, nil
}
