// Package resend implements the email transport for the Resend HTTP API.
package resend

import (
	"context"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/pelatformlabs/toolkits-sub000/email"
	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
)

func init() {
	email.RegisterFactory(email.ProviderResend, func(cfg email.Config, log *logger.Logger) (email.Sender, error) {
		return NewSender(cfg, log), nil
	})
}

// emailsAPI is the slice of the Resend SDK this transport uses. Tests
// inject a mock implementation.
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements email.Sender over the Resend API.
type Sender struct {
	emails emailsAPI
	log    *logger.Logger
}

var _ email.Sender = (*Sender)(nil)

// NewSender creates a Resend transport from the given config.
func NewSender(cfg email.Config, log *logger.Logger) *Sender {
	if log == nil {
		log = logger.Nop()
	}
	client := resend.NewClient(cfg.APIKey)
	return &Sender{
		emails: client.Emails,
		log:    log.WithComponent("email.resend"),
	}
}

func (s *Sender) Provider() string { return email.ProviderResend }

// Send dispatches msg through the Resend API.
func (s *Sender) Send(ctx context.Context, msg *email.Message) (*email.SendResult, error) {
	params := &resend.SendEmailRequest{
		From:    msg.From.String(),
		To:      addressList(msg.To),
		Cc:      addressList(msg.Cc),
		Bcc:     addressList(msg.Bcc),
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		Headers: msg.Headers,
	}
	if msg.ReplyTo.Email != "" {
		params.ReplyTo = msg.ReplyTo.String()
	}
	for _, a := range msg.Attachments {
		// Resend infers the content type from the filename when unset.
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		})
	}
	for name, value := range msg.Tags {
		params.Tags = append(params.Tags, resend.Tag{Name: name, Value: value})
	}

	res, err := s.emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, apperrors.ExternalServiceError("resend", err)
	}

	return &email.SendResult{
		MessageID: res.Id,
		Provider:  email.ProviderResend,
		SentAt:    time.Now(),
	}, nil
}

func addressList(addrs []email.Address) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}
