package notify

import (
	"time"

	gomail "gopkg.in/mail.v2"
)

// EmailConfig holds SMTP configuration for the email channel.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
}

// Enabled reports whether enough SMTP settings are present to send.
func (c EmailConfig) Enabled() bool {
	return c.SMTPServer != "" && c.SMTPUser != "" && c.SMTPPass != "" && c.ToEmail != ""
}

// EmailNotifier delivers notifications via SMTP.
type EmailNotifier struct {
	cfg EmailConfig
}

// NewEmailNotifier creates an email channel with the given SMTP
// configuration. An empty FromEmail falls back to the SMTP user.
func NewEmailNotifier(cfg EmailConfig) *EmailNotifier {
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.SMTPUser
	}
	return &EmailNotifier{cfg: cfg}
}

func (s *EmailNotifier) Notify(title, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", title)
	m.SetBody("text/plain", content)

	dialer := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	return dialer.DialAndSend(m)
}
