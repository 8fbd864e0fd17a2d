package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ovozlabs/ovoz-voice-service/approval"
	logger "github.com/ovozlabs/ovoz-voice-service/log"
)

func commandWord(text string) string {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimPrefix(parts[0], "/")
}

func welcomeText() string {
	var b strings.Builder
	b.WriteString("Welcome to the voice-to-text bot!\n\n")
	b.WriteString("You get one free transcription to try it out.\n")
	b.WriteString("Tiers:\n")
	for i, tier := range approval.Tiers {
		b.WriteString(fmt.Sprintf("%d) %s\n", i+1, tier.Label()))
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- Audio must not exceed 2 minutes.\n")
	b.WriteString("- Make sure your voice is clearly audible.\n")
	b.WriteString("- Each audio uses one transcription from your balance.")
	return b.String()
}

func (h *Handler) startCommand(ctx context.Context, ev CommandEvent) {
	_ = h.Notifier.NotifyUser(ctx, ev.UserID, welcomeText())
}

func (h *Handler) helpCommand(ctx context.Context, ev CommandEvent) {
	_ = h.Notifier.NotifyUser(ctx, ev.UserID, welcomeText())
}

// approveCommand is the ApprovalWorkflow surface. Authorization is
// enforced inside the workflow, not here, so a forged command from a
// regular user cannot bypass it.
func (h *Handler) approveCommand(ctx context.Context, ev CommandEvent) {
	userID, limit, err := approval.ParseGrantCommand(ev.Text)
	if err != nil {
		_ = h.Notifier.NotifyUser(ctx, ev.UserID, approval.Usage)
		return
	}

	if err := h.Workflow.Grant(ctx, ev.UserID, userID, limit); err != nil {
		if errors.Is(err, approval.ErrUnauthorized) {
			_ = h.Notifier.NotifyUser(ctx, ev.UserID, "You are not allowed to approve payments.")
			return
		}
		logger.Error(fmt.Sprintf("granting %d transcriptions to user %s", limit, userID), err)
		_ = h.Notifier.NotifyUser(ctx, ev.UserID, "Approval failed, see the service log.")
		return
	}

	if h.Metrics != nil {
		h.Metrics.IncrementGrants()
	}
	_ = h.Notifier.NotifyUser(ctx, ev.UserID, fmt.Sprintf("Approved: user %s now has %d transcriptions.", userID, limit))
}
