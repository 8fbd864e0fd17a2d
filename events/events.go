// Package events is the boundary where the chat-platform transport hands
// inbound activity to the core. The transport adapter itself lives in a
// separate repo; it converts platform updates into these event structs and
// delivers outbound text through the Notifier.
package events

import (
	"time"
)

// VoiceEvent is one inbound voice message.
type VoiceEvent struct {
	UserID     string
	Duration   time.Duration
	AudioRef   string
	ReceivedAt time.Time
}

// CommandEvent is one inbound text command.
type CommandEvent struct {
	UserID string
	Text   string
}

// TierEvent is fired when a user picks a paid tier from the tariff menu.
type TierEvent struct {
	UserID string
	TierID string
}
