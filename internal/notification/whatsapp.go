package notification

import (
	"context"
	"log"
)

// Sender delivers WhatsApp messages. Real delivery is out of scope; the
// default implementation only logs so the flow stays observable.
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// LogSender writes outgoing messages to the process log.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, message string) error {
	log.Printf("[Notifier] WhatsApp to %s:\n%s", to, message)
	return nil
}
