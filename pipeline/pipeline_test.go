package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovozlabs/ovoz-voice-service/entitlement"
)

type fakeEngine struct {
	text  string
	err   error
	calls int
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func newTestPipeline(store entitlement.Store, engine *fakeEngine, fetcher *fakeFetcher) *Pipeline {
	return New(store, entitlement.NewAdmissionController(store), engine, fetcher, time.Minute)
}

func TestHandle_FirstUseIsFreeAndRecorded(t *testing.T) {
	ctx := context.Background()
	store := entitlement.NewMemoryStore()
	engine := &fakeEngine{text: "hello"}
	p := newTestPipeline(store, engine, &fakeFetcher{data: []byte("ogg")})

	sub := Submission{UserID: "500", Duration: 30 * time.Second, AudioRef: "file-1"}
	text, err := p.Handle(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	rec, err := store.Get(ctx, "500")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, entitlement.Record{Consumed: 1, Limit: 1}, *rec)

	// The freebie is spent: the next submission is refused.
	_, err = p.Handle(ctx, sub)
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, 1, engine.calls)
}

func TestHandle_DurationGuard(t *testing.T) {
	ctx := context.Background()
	store := entitlement.NewMemoryStore()
	engine := &fakeEngine{text: "ok"}
	fetcher := &fakeFetcher{data: []byte("ogg")}
	p := newTestPipeline(store, engine, fetcher)

	// 121 seconds is rejected before any work happens.
	_, err := p.Handle(ctx, Submission{UserID: "501", Duration: 121 * time.Second})
	assert.ErrorIs(t, err, ErrDurationExceeded)
	assert.Zero(t, fetcher.calls)
	assert.Zero(t, engine.calls)
	rec, err := store.Get(ctx, "501")
	require.NoError(t, err)
	assert.Nil(t, rec)

	// Exactly 120 seconds is accepted.
	_, err = p.Handle(ctx, Submission{UserID: "501", Duration: 120 * time.Second, AudioRef: "file-2"})
	assert.NoError(t, err)
}

func TestHandle_QuotaExhausted(t *testing.T) {
	ctx := context.Background()
	store := entitlement.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "502", entitlement.Record{Consumed: 5, Limit: 5}))
	engine := &fakeEngine{text: "ok"}
	p := newTestPipeline(store, engine, &fakeFetcher{data: []byte("ogg")})

	_, err := p.Handle(ctx, Submission{UserID: "502", Duration: time.Second, AudioRef: "file-3"})
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Zero(t, engine.calls)
}

func TestHandle_FetchFailureChargesNothing(t *testing.T) {
	ctx := context.Background()
	store := entitlement.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "503", entitlement.Record{Consumed: 0, Limit: 5}))
	engine := &fakeEngine{text: "ok"}
	p := newTestPipeline(store, engine, &fakeFetcher{err: errors.New("file API is down")})

	_, err := p.Handle(ctx, Submission{UserID: "503", Duration: time.Second, AudioRef: "file-4"})

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, engine.calls)
	rec, _ := store.Get(ctx, "503")
	assert.Equal(t, 0, rec.Consumed)
}

func TestHandle_EngineFailureChargesNothing(t *testing.T) {
	ctx := context.Background()
	store := entitlement.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "504", entitlement.Record{Consumed: 2, Limit: 5}))
	p := newTestPipeline(store, &fakeEngine{err: errors.New("model overloaded")}, &fakeFetcher{data: []byte("ogg")})

	_, err := p.Handle(ctx, Submission{UserID: "504", Duration: time.Second, AudioRef: "file-5"})

	var engineErr *EngineError
	assert.ErrorAs(t, err, &engineErr)

	rec, err := store.Get(ctx, "504")
	require.NoError(t, err)
	assert.Equal(t, entitlement.Record{Consumed: 2, Limit: 5}, *rec)
}

func TestHandle_GrantedUserConsumesUntilExhausted(t *testing.T) {
	ctx := context.Background()
	store := entitlement.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "505", entitlement.Record{Consumed: 0, Limit: 5}))
	p := newTestPipeline(store, &fakeEngine{text: "salom"}, &fakeFetcher{data: []byte("ogg")})

	sub := Submission{UserID: "505", Duration: 10 * time.Second, AudioRef: "file-6"}
	for i := 0; i < 5; i++ {
		text, err := p.Handle(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, "salom", text)
	}

	_, err := p.Handle(ctx, sub)
	assert.ErrorIs(t, err, ErrQuotaExhausted)
}

type brokenStore struct{ *entitlement.MemoryStore }

func (brokenStore) Get(ctx context.Context, userID string) (*entitlement.Record, error) {
	return nil, errors.New("storage unavailable")
}

func TestHandle_StoreFailureDeniesConsumption(t *testing.T) {
	store := brokenStore{entitlement.NewMemoryStore()}
	engine := &fakeEngine{text: "ok"}
	p := New(store, entitlement.NewAdmissionController(store), engine, &fakeFetcher{data: []byte("ogg")}, time.Minute)

	_, err := p.Handle(context.Background(), Submission{UserID: "506", Duration: time.Second, AudioRef: "file-7"})
	assert.Error(t, err)
	assert.Zero(t, engine.calls)
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, UserMessage(ErrDurationExceeded), "2 minutes")
	assert.Contains(t, UserMessage(ErrQuotaExhausted), "quota")
	assert.Contains(t, UserMessage(&FetchError{Err: errors.New("x")}), "download")
	assert.Contains(t, UserMessage(&EngineError{Err: errors.New("boom")}), "boom")
	assert.Contains(t, UserMessage(errors.New("other")), "went wrong")
}
