// Package notify delivers customer and agent messages. Delivery is best
// effort: callers treat every send as fire-and-forget and never roll back
// domain state when a message fails.
package notify

import (
	"context"
	"log"
)

type Sender interface {
	Notify(ctx context.Context, contact string, message string) error
}

// LogSender writes messages to the process log. It stands in for the SMS
// gateway in development and tests.
type LogSender struct{}

func (LogSender) Notify(_ context.Context, contact string, message string) error {
	log.Printf("[notify] to=%s message=%q", contact, message)
	return nil
}
