package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ogg-opus-bytes"))
	}))
	defer server.Close()

	data, err := NewHTTPFetcher(5 * time.Second).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("ogg-opus-bytes"), data)
}

func TestHTTPFetcher_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(5 * time.Second).Fetch(context.Background(), server.URL)
	assert.ErrorContains(t, err, "404")
}

func TestHTTPFetcher_BadReference(t *testing.T) {
	_, err := NewHTTPFetcher(5 * time.Second).Fetch(context.Background(), "://not-a-url")
	assert.Error(t, err)
}
