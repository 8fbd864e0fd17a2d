package interfaces

import "context"

// Notifier is the outbound surface to the chat platform. The transport
// implementation lives outside this repo; the core only needs to push
// plain text to a user or to the operator.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, text string) error
	NotifyOperator(ctx context.Context, text string) error
}
