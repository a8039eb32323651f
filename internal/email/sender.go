// Package email delivers transactional mail such as account activation links.
package email

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers one HTML message
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// LogSender writes messages to the log instead of delivering them.
// It is used when no SMTP relay is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, subject, _ string) error {
	s.logger.Info("Email delivery disabled, message dropped",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
