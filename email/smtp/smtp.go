// Package smtp delivers mail through a plain SMTP relay using gomail.
//
// The transport registers itself under the "smtp" provider name; import it
// for side effects:
//
//	import _ "github.com/pelatformlabs/toolkits-sub000/email/smtp"
package smtp

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/pelatformlabs/toolkits-sub000/email"
	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
)

func init() {
	email.RegisterFactory(email.ProviderSMTP, func(cfg email.Config, log *logger.Logger) (email.Sender, error) {
		return NewSender(cfg, log)
	})
}

// dialer abstracts gomail's dial-and-send so tests can intercept delivery.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender delivers messages over SMTP.
type Sender struct {
	dialer dialer
	log    *logger.Logger
}

// NewSender builds an SMTP sender from the configured host, port and
// credentials. The connection is established lazily on the first Send.
func NewSender(cfg email.Config, log *logger.Logger) (*Sender, error) {
	if cfg.SMTPHost == "" {
		return nil, apperrors.ConfigError("smtp_host is required")
	}
	if log == nil {
		log = logger.Nop()
	}
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	// Implicit TLS; otherwise gomail upgrades via STARTTLS when offered.
	d.SSL = cfg.SMTPSSL
	return &Sender{dialer: d, log: log.WithComponent("email.smtp")}, nil
}

// Provider returns the provider name.
func (s *Sender) Provider() string { return email.ProviderSMTP }

// Send delivers the message through the relay. SMTP servers do not return a
// message identifier, so the result carries a locally generated one.
func (s *Sender) Send(ctx context.Context, msg *email.Message) (*email.SendResult, error) {
	m := buildMessage(msg)

	// gomail has no context support; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err)
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return nil, apperrors.ExternalServiceError("smtp", err)
	}
	return &email.SendResult{
		MessageID: uuid.NewString(),
		Provider:  email.ProviderSMTP,
		SentAt:    time.Now().UTC(),
	}, nil
}

func buildMessage(msg *email.Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From.String())
	m.SetHeader("To", addressList(msg.To)...)
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", addressList(msg.Cc)...)
	}
	if len(msg.Bcc) > 0 {
		m.SetHeader("Bcc", addressList(msg.Bcc)...)
	}
	if msg.ReplyTo.Email != "" {
		m.SetHeader("Reply-To", msg.ReplyTo.String())
	}
	m.SetHeader("Subject", msg.Subject)
	for k, v := range msg.Headers {
		m.SetHeader(k, v)
	}

	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Text)
	}

	for _, a := range msg.Attachments {
		content := a.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		m.Attach(a.Filename, settings...)
	}
	return m
}

func addressList(addrs []email.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}
