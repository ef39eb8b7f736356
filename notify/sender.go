package notify

import (
	"context"

	"zombiezen.com/go/log"
)

// Sender delivers a reminder message to a phone number.
type Sender interface {
	Send(to, body string) error
}

// LogSender writes reminder messages to the log instead of delivering
// them. It is the default when no messaging credentials are configured.
type LogSender struct {
	ctx context.Context
}

func NewLogSender(ctx context.Context) *LogSender {
	return &LogSender{ctx: ctx}
}

func (s *LogSender) Send(to, body string) error {
	log.Infof(s.ctx, "reminder for %s: %s", to, body)
	return nil
}
