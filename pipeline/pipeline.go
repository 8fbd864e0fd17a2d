// ovozlabs/ovoz-voice-service/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ovozlabs/ovoz-voice-service/audio"
	"github.com/ovozlabs/ovoz-voice-service/entitlement"
	"github.com/ovozlabs/ovoz-voice-service/interfaces"
	logger "github.com/ovozlabs/ovoz-voice-service/log"
)

// MaxDuration is the longest voice note accepted into the pipeline.
const MaxDuration = 120 * time.Second

// Submission is a single transcription request. It lives for exactly one
// Handle call and is never persisted.
type Submission struct {
	UserID     string
	Duration   time.Duration
	AudioRef   string
	ReceivedAt time.Time
}

// Pipeline orchestrates one voice submission: duration guard, admission
// check, audio fetch, engine call, charge.
type Pipeline struct {
	store         entitlement.Store
	admission     *entitlement.AdmissionController
	engine        interfaces.SpeechToText
	fetcher       interfaces.AudioFetcher
	engineTimeout time.Duration
	archiveAudio  bool
}

func New(store entitlement.Store, admission *entitlement.AdmissionController, engine interfaces.SpeechToText, fetcher interfaces.AudioFetcher, engineTimeout time.Duration) *Pipeline {
	if engineTimeout <= 0 {
		engineTimeout = 60 * time.Second
	}
	return &Pipeline{
		store:         store,
		admission:     admission,
		engine:        engine,
		fetcher:       fetcher,
		engineTimeout: engineTimeout,
	}
}

// ArchiveAudio enables best-effort persistence of fetched voice notes to
// the data directory, so failed transcriptions can be replayed by hand.
func (p *Pipeline) ArchiveAudio(enabled bool) {
	p.archiveAudio = enabled
}

// Handle runs one submission to completion and returns the transcript.
// The whole run holds the user's guard, so a second submission from the
// same user cannot slip past the admission check before this one is
// charged. Exactly one engine call is made per run, never retried, and
// the ledger is only touched after the engine has succeeded.
func (p *Pipeline) Handle(ctx context.Context, sub Submission) (string, error) {
	if sub.Duration > MaxDuration {
		return "", ErrDurationExceeded
	}

	unlock := p.admission.LockUser(sub.UserID)
	defer unlock()

	allowed, err := p.admission.MayConsume(ctx, sub.UserID)
	if err != nil {
		// Fail closed: an unreadable ledger denies consumption.
		return "", fmt.Errorf("admission check failed: %w", err)
	}
	if !allowed {
		return "", ErrQuotaExhausted
	}

	audioData, err := p.fetcher.Fetch(ctx, sub.AudioRef)
	if err != nil {
		return "", &FetchError{Err: err}
	}

	if p.archiveAudio {
		if _, err := audio.Save(sub.ReceivedAt.Unix(), sub.UserID, audioData); err != nil {
			logger.Info("[PIPELINE] could not archive audio for user %s: %v", sub.UserID, err)
		}
	}

	engineCtx, cancel := context.WithTimeout(ctx, p.engineTimeout)
	defer cancel()
	text, err := p.engine.Transcribe(engineCtx, audioData)
	if err != nil {
		return "", &EngineError{Err: err}
	}

	if err := p.charge(ctx, sub.UserID); err != nil {
		return "", fmt.Errorf("could not charge user %s: %w", sub.UserID, err)
	}

	return text, nil
}

// charge records one consumed transcription. A user with no ledger record
// has just spent the implicit free use, which becomes a {1, 1} record so
// the freebie cannot repeat.
func (p *Pipeline) charge(ctx context.Context, userID string) error {
	err := p.store.IncrementConsumed(ctx, userID)
	if errors.Is(err, entitlement.ErrNotRegistered) {
		return p.store.Set(ctx, userID, entitlement.Record{Consumed: 1, Limit: 1})
	}
	return err
}
