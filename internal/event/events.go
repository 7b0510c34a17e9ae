package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeOTPRequested     = "OTPRequested"
	TypePaymentConfirmed = "PaymentConfirmed"
)

// Envelope wraps a domain event for transport.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Data       json.RawMessage `json:"data"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// OTPRequested is published when a one-time code is issued for a contact.
type OTPRequested struct {
	Contact     string    `json:"contact"`
	Code        string    `json:"code"`
	RequestedAt time.Time `json:"requested_at"`
}

// PaymentConfirmed is published after a bank transfer is confirmed and the
// purchased subset has been removed from the cart.
type PaymentConfirmed struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	Contact     string    `json:"contact"`
	Amount      int       `json:"amount"`
	Reference   string    `json:"reference"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Publisher delivers envelopes to interested consumers. A nil Publisher
// disables publishing.
type Publisher interface {
	Publish(ctx context.Context, key string, env Envelope) error
}

// Wrap builds an envelope around an event payload.
func Wrap(eventType string, data any) (Envelope, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:         uuid.New().String(),
		Type:       eventType,
		Data:       jsonData,
		OccurredAt: time.Now(),
	}, nil
}
