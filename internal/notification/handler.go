package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/storefront/internal/event"
)

// Handler turns storefront events into WhatsApp messages.
type Handler struct {
	sender Sender
}

func NewHandler(sender Sender) *Handler {
	return &Handler{sender: sender}
}

// HandleEvent dispatches a decoded envelope to the matching message
// builder. Event types without a message are ignored.
func (h *Handler) HandleEvent(ctx context.Context, env event.Envelope) error {
	switch env.Type {
	case event.TypeOTPRequested:
		return h.handleOTPRequested(ctx, env)
	case event.TypePaymentConfirmed:
		return h.handlePaymentConfirmed(ctx, env)
	}
	return nil
}

func (h *Handler) handleOTPRequested(ctx context.Context, env event.Envelope) error {
	var e event.OTPRequested
	if err := json.Unmarshal(env.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OTPRequested event: %v", err)
		return err
	}

	return h.sender.Send(ctx, e.Contact, BuildOTPMessage(e.Code))
}

func (h *Handler) handlePaymentConfirmed(ctx context.Context, env event.Envelope) error {
	var e event.PaymentConfirmed
	if err := json.Unmarshal(env.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal PaymentConfirmed event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing PaymentConfirmed event for order %s, user %s", e.OrderID, e.UserID)
	return h.sender.Send(ctx, e.Contact, BuildPaymentConfirmedMessage(e.OrderID, e.Amount, e.Reference))
}
