package services

import (
	"context"
	"log"
)

// StubNotifier is a mock transport used until a real chat-platform
// adapter is attached, and in local development.
type StubNotifier struct{}

// NotifyUser logs the outbound user message.
func (s *StubNotifier) NotifyUser(ctx context.Context, userID, text string) error {
	log.Printf("[STUB_NOTIFY] to user %s: %s", userID, text)
	return nil
}

// NotifyOperator logs the outbound operator message.
func (s *StubNotifier) NotifyOperator(ctx context.Context, text string) error {
	log.Printf("[STUB_NOTIFY] to operator: %s", text)
	return nil
}
