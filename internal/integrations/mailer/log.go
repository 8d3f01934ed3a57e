package mailer

import (
	"context"
	"strings"
)

// LogSender ничего не отправляет, только пишет письмо в лог.
// Используется локально и когда почтовый провайдер не настроен
type LogSender struct {
	logger Logger
}

func NewLogSender(logger Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, subject, html string) error {
	if strings.TrimSpace(to) == "" {
		return ErrInvalidRecipient
	}
	s.logger.Info("Mailer: would send email to=%s subject=%q (%d bytes)", to, subject, len(html))
	return nil
}
