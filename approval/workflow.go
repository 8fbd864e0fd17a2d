// ovozlabs/ovoz-voice-service/approval/workflow.go
package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/ovozlabs/ovoz-voice-service/entitlement"
	"github.com/ovozlabs/ovoz-voice-service/interfaces"
)

// ErrUnauthorized is returned when anyone but the designated operator
// attempts a grant.
var ErrUnauthorized = errors.New("only the operator can approve payments")

// Workflow is the single privileged path that can raise a user's
// allowance or reset their consumption. The operator reviews a payment
// proof out of band and then issues a grant.
type Workflow struct {
	store      entitlement.Store
	operatorID string
	notifier   interfaces.Notifier
}

func NewWorkflow(store entitlement.Store, operatorID string, notifier interfaces.Notifier) *Workflow {
	return &Workflow{
		store:      store,
		operatorID: operatorID,
		notifier:   notifier,
	}
}

// Grant replaces the user's ledger record with {0, limit} and tells the
// user about their new allowance. The caller identity must match the
// configured operator exactly.
func (w *Workflow) Grant(ctx context.Context, callerID, userID string, limit int) error {
	if w.operatorID == "" || callerID != w.operatorID {
		return ErrUnauthorized
	}
	if limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", limit)
	}

	if err := w.store.Set(ctx, userID, entitlement.Record{Consumed: 0, Limit: limit}); err != nil {
		return fmt.Errorf("could not grant entitlement to user %s: %w", userID, err)
	}

	if w.notifier != nil {
		msg := fmt.Sprintf("Payment approved. You now have %d audio transcriptions available.", limit)
		if err := w.notifier.NotifyUser(ctx, userID, msg); err != nil {
			// The grant already happened; a lost notification is not a
			// reason to report failure to the operator.
			return nil
		}
	}
	return nil
}
