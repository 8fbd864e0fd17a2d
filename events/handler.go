// ovozlabs/ovoz-voice-service/events/handler.go
package events

import (
	"context"
	"fmt"

	"github.com/ovozlabs/ovoz-voice-service/approval"
	"github.com/ovozlabs/ovoz-voice-service/interfaces"
	logger "github.com/ovozlabs/ovoz-voice-service/log"
	"github.com/ovozlabs/ovoz-voice-service/pipeline"
	"github.com/ovozlabs/ovoz-voice-service/worker"
)

// Metrics receives outcome counts for the status endpoint. May be nil.
type Metrics interface {
	IncrementSubmissions()
	IncrementTranscriptions()
	IncrementRejections()
	IncrementGrants()
}

// Handler routes inbound events to the pipeline and the approval workflow.
type Handler struct {
	Pool     *worker.WorkerPool
	Pipeline *pipeline.Pipeline
	Workflow *approval.Workflow
	Notifier interfaces.Notifier
	Metrics  Metrics
}

func NewHandler(pool *worker.WorkerPool, p *pipeline.Pipeline, w *approval.Workflow, n interfaces.Notifier, m Metrics) *Handler {
	return &Handler{Pool: pool, Pipeline: p, Workflow: w, Notifier: n, Metrics: m}
}

// HandleVoice enqueues one voice submission for transcription and lets the
// user know work has started. The wait message mirrors what the engine
// typically needs for a two-minute note.
func (h *Handler) HandleVoice(ctx context.Context, ev VoiceEvent) {
	if h.Metrics != nil {
		h.Metrics.IncrementSubmissions()
	}

	if err := h.Notifier.NotifyUser(ctx, ev.UserID, "Processing started. Please wait up to a minute..."); err != nil {
		logger.Info("[EVENTS] could not send progress message to user %s: %v", ev.UserID, err)
	}

	h.Pool.Submit(worker.TranscriptionJob{
		Ctx: ctx,
		Submission: pipeline.Submission{
			UserID:     ev.UserID,
			Duration:   ev.Duration,
			AudioRef:   ev.AudioRef,
			ReceivedAt: ev.ReceivedAt,
		},
		Pipeline: h.Pipeline,
		Notifier: h.Notifier,
		OnDone:   h.countOutcome,
	})
}

func (h *Handler) countOutcome(err error) {
	if h.Metrics == nil {
		return
	}
	if err != nil {
		h.Metrics.IncrementRejections()
		return
	}
	h.Metrics.IncrementTranscriptions()
}

type commandHandlerFunc func(h *Handler, ctx context.Context, ev CommandEvent)

var commandHandlers = map[string]commandHandlerFunc{
	"start":   (*Handler).startCommand,
	"help":    (*Handler).helpCommand,
	"approve": (*Handler).approveCommand,
}

// HandleCommand routes a text command. Unknown commands get a short hint
// instead of silence.
func (h *Handler) HandleCommand(ctx context.Context, ev CommandEvent) {
	command := commandWord(ev.Text)
	if handler, ok := commandHandlers[command]; ok {
		handler(h, ctx, ev)
		return
	}
	_ = h.Notifier.NotifyUser(ctx, ev.UserID, fmt.Sprintf("`%s` is not a valid command. Try /help.", ev.Text))
}

// HandleTierSelection notifies the operator that a payment is pending and
// tells the user what to do next.
func (h *Handler) HandleTierSelection(ctx context.Context, ev TierEvent) {
	tier, ok := approval.FindTier(ev.TierID)
	if !ok {
		_ = h.Notifier.NotifyUser(ctx, ev.UserID, "Unknown tier. Please pick one from the menu.")
		return
	}

	if err := h.Notifier.NotifyOperator(ctx, approval.PaymentPendingNotice(ev.UserID, tier)); err != nil {
		logger.Error(fmt.Sprintf("notifying operator about tier selection by user %s", ev.UserID), err)
	}
	_ = h.Notifier.NotifyUser(ctx, ev.UserID, approval.PaymentInstructions(tier))
}
