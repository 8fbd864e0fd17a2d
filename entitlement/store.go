// ovozlabs/ovoz-voice-service/entitlement/store.go
package entitlement

import (
	"context"
	"errors"
)

// Record is the per-user credit ledger entry.
type Record struct {
	Consumed int `json:"consumed"`
	Limit    int `json:"limit"`
}

// Remaining returns how many transcriptions the user has left.
func (r Record) Remaining() int {
	if r.Consumed >= r.Limit {
		return 0
	}
	return r.Limit - r.Consumed
}

// ErrNotRegistered is returned by IncrementConsumed when no record exists
// for the user.
var ErrNotRegistered = errors.New("user is not registered in the ledger")

// Store is the durable mapping from user ID to Record.
//
// Get returns (nil, nil) for a user that has never been registered.
// Set fully replaces the user's record. IncrementConsumed adds one to
// Consumed for an existing record and fails with ErrNotRegistered
// otherwise. Every successful write must be visible to subsequent reads,
// and the backing storage must survive a process restart without
// corruption on partial writes.
type Store interface {
	Get(ctx context.Context, userID string) (*Record, error)
	Set(ctx context.Context, userID string, rec Record) error
	IncrementConsumed(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
	Close() error
}
