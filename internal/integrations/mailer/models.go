package mailer

// SendGridConfig настройки SendGrid
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	// Host переопределяет https://api.sendgrid.com (для тестов и прокси)
	Host string
}

// SESConfig настройки AWS SES
type SESConfig struct {
	Region    string
	FromEmail string
	FromName  string
}
