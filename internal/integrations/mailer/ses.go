package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

const charsetUTF8 = "UTF-8"

// SESSender отправляет письма через AWS SES v2
type SESSender struct {
	client    SESAPI
	fromEmail string
	fromName  string
	logger    Logger
}

// NewSESSender создает отправителя поверх готового клиента
func NewSESSender(client SESAPI, cfg SESConfig, logger Logger) (*SESSender, error) {
	if client == nil || cfg.FromEmail == "" {
		return nil, fmt.Errorf("%w: ses client and from email are required", ErrNotConfigured)
	}
	return &SESSender{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}, nil
}

// NewSESSenderFromEnv загружает AWS credentials из окружения (цепочка по умолчанию)
func NewSESSenderFromEnv(ctx context.Context, cfg SESConfig, logger Logger) (*SESSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", ErrNotConfigured, err)
	}
	return NewSESSender(sesv2.NewFromConfig(awsCfg), cfg, logger)
}

// Send отправляет HTML письмо
func (s *SESSender) Send(ctx context.Context, to, subject, html string) error {
	if strings.TrimSpace(to) == "" {
		return ErrInvalidRecipient
	}

	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String(charsetUTF8),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(html),
						Charset: aws.String(charsetUTF8),
					},
				},
			},
		},
	}

	output, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("%w: ses: %v", ErrSendFailed, err)
	}

	s.logger.Info("Mailer: email sent via ses to=%s subject=%q message_id=%s", to, subject, aws.ToString(output.MessageId))
	return nil
}
