package mailer

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/program-store-api/internal/config"
	"github.com/program-store-api/internal/models"
)

// Attachment is a file attached to an outbound message
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is an outbound email
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender is the email contract consumed by the fulfillment notifier.
// The concrete implementation dials SMTP; tests use a mock.
type Sender interface {
	Send(msg *Message) error
}

// smtpSender implements Sender over SMTP via gomail
type smtpSender struct {
	cfg *config.MailConfig
	log zerolog.Logger
}

// NewSMTPSender creates an SMTP-backed mail sender
func NewSMTPSender(cfg *config.MailConfig, log zerolog.Logger) Sender {
	return &smtpSender{
		cfg: cfg,
		log: log.With().Str("component", "mailer").Logger(),
	}
}

// Send delivers a single message. Failures are returned as UpstreamFailure;
// the caller decides whether to swallow them.
func (s *smtpSender) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		data := att.Data
		m.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}),
		)
	}

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := dialer.DialAndSend(m); err != nil {
		s.log.Error().Err(err).Str("to", msg.To).Msg("Failed to send email")
		return fmt.Errorf("%w: send email: %v", models.ErrUpstreamFailure, err)
	}

	s.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}
