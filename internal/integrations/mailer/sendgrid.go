package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridEndpoint = "/v3/mail/send"

// SendGridSender отправляет письма через SendGrid API
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    Logger
}

// NewSendGridSender создает отправителя SendGrid
func NewSendGridSender(cfg SendGridConfig, logger Logger) (*SendGridSender, error) {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		return nil, fmt.Errorf("%w: sendgrid api key and from email are required", ErrNotConfigured)
	}

	request := sendgrid.GetRequest(cfg.APIKey, sendGridEndpoint, cfg.Host)
	request.Method = "POST"

	return &SendGridSender{
		client:    &sendgrid.Client{Request: request},
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}, nil
}

// Send отправляет HTML письмо
func (s *SendGridSender) Send(ctx context.Context, to, subject, html string) error {
	if strings.TrimSpace(to) == "" {
		return ErrInvalidRecipient
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromEmail),
		subject,
		mail.NewEmail("", to),
		"",
		html,
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", ErrSendFailed, err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid returned status %d: %s", ErrSendFailed, response.StatusCode, response.Body)
	}

	s.logger.Info("Mailer: email sent via sendgrid to=%s subject=%q status=%d", to, subject, response.StatusCode)
	return nil
}
