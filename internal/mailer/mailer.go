package mailer

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends listing confirmation emails.
type SMTPMailer struct {
	sender string
	d      dialer
	logger *logger.Logger
}

var _ domain.Notifier = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg Config, log *logger.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.Sender == "" {
		return nil, fmt.Errorf("SMTP host, port, and sender email must be configured")
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	if cfg.Port == 465 {
		d.SSL = true
	}
	return newSMTPMailer(cfg.Sender, d, log), nil
}

func newSMTPMailer(sender string, d dialer, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{sender: sender, d: d, logger: log.Named("SMTPMailer")}
}

func listingCreatedMessage(from, to, listingName string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "New Listing Created")
	m.SetBody("text/plain", fmt.Sprintf("Your listing '%s' has been created successfully.", listingName))
	return m
}

// SendListingCreatedEmail gives up when ctx is done; the dial may still finish in the background.
func (s *SMTPMailer) SendListingCreatedEmail(ctx context.Context, toEmail, listingName string) error {
	if toEmail == "" {
		return fmt.Errorf("no recipient provided for email")
	}
	m := listingCreatedMessage(s.sender, toEmail, listingName)

	done := make(chan error, 1)
	go func() {
		done <- s.d.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("Email sending cancelled", zap.String("to", toEmail), zap.Error(ctx.Err()))
		return fmt.Errorf("email sending cancelled or timed out: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			s.logger.Error("Failed to send email", zap.String("to", toEmail), zap.Error(err))
			return fmt.Errorf("failed to send email: %w", err)
		}
	}
	s.logger.Info("Listing confirmation email sent", zap.String("to", toEmail))
	return nil
}
