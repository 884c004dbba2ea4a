// Package notifier adapts the outbound notification transport. The real
// SMS/push/email gateway is an external collaborator; this implementation
// writes the composed message to the structured log so a delivery can be
// observed end to end without a live gateway.
package notifier

import (
	"context"
	"log/slog"
)

// LogSender implements the Sender port by logging the message.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-backed sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "notifier")}
}

// Send writes the outbound message to the log.
func (s *LogSender) Send(ctx context.Context, recipient, message string) error {
	s.logger.InfoContext(ctx, "Notification sent", "recipient", recipient, "message", message)
	return nil
}
