package mailer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SESAPI часть клиента sesv2, которой пользуется SESSender
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}
