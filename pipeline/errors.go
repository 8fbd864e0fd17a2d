package pipeline

import (
	"errors"
	"fmt"
)

// Terminal submission outcomes. All of these end the current submission
// and are reported to the requesting user as plain text; none of them may
// take the process down.
var (
	// ErrDurationExceeded rejects audio longer than MaxDuration before
	// any ledger access happens.
	ErrDurationExceeded = errors.New("audio duration exceeds the allowed maximum")

	// ErrQuotaExhausted means the user's entitlement is spent and only an
	// operator grant can lift it.
	ErrQuotaExhausted = errors.New("transcription quota exhausted")
)

// FetchError wraps a failure to download the submitted audio. The
// submission is abandoned without any charge; the user may simply resend.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not fetch audio: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// EngineError wraps a speech-to-text failure. A failed transcription must
// not burn the user's credit.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("transcription engine failed: %v", e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// UserMessage maps a pipeline error to the plain text shown to the
// requesting user.
func UserMessage(err error) string {
	var fetchErr *FetchError
	var engineErr *EngineError

	switch {
	case errors.Is(err, ErrDurationExceeded):
		return "Audio must be 2 minutes or less. Please send a shorter recording."
	case errors.Is(err, ErrQuotaExhausted):
		return "You have used up your quota. Please choose a plan and complete the payment."
	case errors.As(err, &fetchErr):
		return "Could not download your audio. Please try sending it again."
	case errors.As(err, &engineErr):
		return fmt.Sprintf("Transcription failed: %v. You were not charged, please try again.", engineErr.Err)
	default:
		return "Something went wrong while processing your audio. Please try again."
	}
}
