package entitlement

import (
	"context"
	"sync"
)

// AdmissionController decides whether a user may consume one more
// transcription. The decision itself is a pure read; callers that follow
// it with a charge must hold the user's guard for the whole sequence so
// two in-flight submissions cannot both pass the check before either is
// charged.
type AdmissionController struct {
	store Store

	mu     sync.Mutex
	guards map[string]*sync.Mutex
}

func NewAdmissionController(store Store) *AdmissionController {
	return &AdmissionController{
		store:  store,
		guards: map[string]*sync.Mutex{},
	}
}

// MayConsume reports whether the user is currently entitled to one more
// transcription. A user with no record gets a single implicit free use.
// Store failures deny admission.
func (a *AdmissionController) MayConsume(ctx context.Context, userID string) (bool, error) {
	rec, err := a.store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return true, nil
	}
	return rec.Consumed < rec.Limit, nil
}

// LockUser acquires the per-user guard and returns its release func.
func (a *AdmissionController) LockUser(userID string) func() {
	a.mu.Lock()
	guard, ok := a.guards[userID]
	if !ok {
		guard = &sync.Mutex{}
		a.guards[userID] = guard
	}
	a.mu.Unlock()

	guard.Lock()
	return guard.Unlock
}
