package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
)

// Service sits in front of a Sender and applies the platform's sending
// policy: default sender and reply-to addresses, plain-text alternatives
// derived from HTML bodies, and template rendering. It is safe for
// concurrent use; UpdateConfig swaps the transport atomically.
type Service struct {
	mu     sync.RWMutex
	sender Sender
	cfg    Config
	log    *logger.Logger
}

// NewService creates a Service over the transport selected by cfg.
func NewService(cfg Config, log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Get("email")
	}
	sender, err := NewSender(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Service{
		sender: sender,
		cfg:    cfg,
		log:    log.WithComponent("email"),
	}, nil
}

// NewServiceFromEnv builds a Service from environment configuration.
// It fails with a CONFIG_ERROR when no transport is configured.
func NewServiceFromEnv(log *logger.Logger) (*Service, error) {
	return NewService(LoadConfigFromEnv(), log)
}

// Provider returns the active transport's name.
func (s *Service) Provider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sender.Provider()
}

// UpdateConfig validates cfg, constructs its transport and swaps it in.
// In-flight sends finish on the previous transport.
func (s *Service) UpdateConfig(cfg Config) error {
	sender, err := NewSender(cfg, s.log)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sender = sender
	s.cfg = cfg
	s.mu.Unlock()
	s.log.Info("email transport updated", logger.Fields(
		logger.FieldProvider, sender.Provider(),
	))
	return nil
}

// Send dispatches msg, filling in configured defaults first. The message
// must have at least one recipient and a subject.
func (s *Service) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	s.mu.RLock()
	sender := s.sender
	cfg := s.cfg
	s.mu.RUnlock()

	if err := prepare(msg, cfg); err != nil {
		return nil, err
	}

	res, err := sender.Send(ctx, msg)
	if err != nil {
		s.log.Error("send failed", logger.MergeWithError(logger.Fields(
			logger.FieldProvider, sender.Provider(),
		), err))
		return nil, apperrors.Wrap(err)
	}

	s.log.Info("email sent", logger.Fields(
		logger.FieldProvider, res.Provider,
		logger.FieldMessageID, res.MessageID,
	))
	return res, nil
}

// SendHTML is a convenience wrapper for a simple HTML message to a single
// recipient.
func (s *Service) SendHTML(ctx context.Context, to, subject, htmlBody string) (*SendResult, error) {
	return s.Send(ctx, &Message{
		To:      []Address{{Email: to}},
		Subject: subject,
		HTML:    htmlBody,
	})
}

// SendTemplate renders tpl with data as the HTML body and dispatches the
// result. The plain-text alternative is derived from the rendered output.
func (s *Service) SendTemplate(ctx context.Context, msg *Message, tpl string, data any) (*SendResult, error) {
	t, err := template.New("email").Parse(tpl)
	if err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("email: invalid template: %v", err))
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("email: template execution: %v", err))
	}
	msg.HTML = buf.String()
	msg.Text = ""
	return s.Send(ctx, msg)
}

// prepare validates msg and fills defaults in place.
func prepare(msg *Message, cfg Config) error {
	if msg == nil {
		return apperrors.Validation("email: message must not be nil")
	}
	if len(msg.To) == 0 {
		return apperrors.Validation("email: at least one recipient is required")
	}
	for _, to := range msg.To {
		if to.Email == "" {
			return apperrors.Validation("email: recipient address must not be empty")
		}
	}
	if msg.Subject == "" {
		return apperrors.Validation("email: subject is required")
	}
	if msg.HTML == "" && msg.Text == "" {
		return apperrors.Validation("email: message body is required")
	}

	if msg.From.Email == "" {
		if cfg.From == "" {
			return apperrors.ConfigError("email: message has no sender and no default from address is configured")
		}
		msg.From = cfg.DefaultFrom()
	}
	if msg.ReplyTo.Email == "" && cfg.ReplyTo != "" {
		msg.ReplyTo = Address{Email: cfg.ReplyTo}
	}
	if msg.Text == "" && msg.HTML != "" {
		msg.Text = HTMLToText(msg.HTML)
	}
	return nil
}
