package health

import (
	"context"
	"fmt"
	"time"

	"github.com/ovozlabs/ovoz-voice-service/entitlement"
	"github.com/ovozlabs/ovoz-voice-service/interfaces"
)

// GetStoreStatus checks and returns the status of the entitlement store as a formatted string.
func GetStoreStatus(store entitlement.Store) string {
	if store == nil {
		return "ERROR: initialization failed"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		return fmt.Sprintf("ERROR: %v", err)
	}
	return "OK"
}

// GetEngineStatus checks and returns the status of the STT engine as a formatted string.
func GetEngineStatus(engine interfaces.SpeechToText) string {
	if engine == nil {
		return "ERROR: initialization failed"
	}
	// The engines don't expose a ping, so we assume OK if initialized.
	return fmt.Sprintf("OK (%s)", engine.Name())
}

// GetNotifierStatus reports whether an outbound transport adapter is wired.
func GetNotifierStatus(n interfaces.Notifier) string {
	if n == nil {
		return "Not Configured"
	}
	return "OK"
}
