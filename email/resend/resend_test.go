package resend

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"

	"github.com/pelatformlabs/toolkits-sub000/email"
	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
)

type mockEmails struct {
	sendFunc func(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

func (m *mockEmails) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	return m.sendFunc(ctx, params)
}

func newTestSender(m *mockEmails) *Sender {
	return &Sender{emails: m, log: logger.Nop()}
}

func TestSend_MapsMessageFields(t *testing.T) {
	var got *resend.SendEmailRequest
	s := newTestSender(&mockEmails{
		sendFunc: func(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
			got = params
			return &resend.SendEmailResponse{Id: "re_123"}, nil
		},
	})

	msg := &email.Message{
		From:    email.Address{Email: "no-reply@example.com", Name: "Example"},
		To:      []email.Address{{Email: "user@example.com"}},
		Cc:      []email.Address{{Email: "cc@example.com"}},
		ReplyTo: email.Address{Email: "support@example.com"},
		Subject: "Welcome",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
		Tags:    map[string]string{"campaign": "onboarding"},
	}

	res, err := s.Send(context.Background(), msg)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if res.MessageID != "re_123" || res.Provider != email.ProviderResend {
		t.Errorf("result = %+v", res)
	}

	if got.From != "Example <no-reply@example.com>" {
		t.Errorf("From = %q", got.From)
	}
	if len(got.To) != 1 || got.To[0] != "user@example.com" {
		t.Errorf("To = %v", got.To)
	}
	if got.ReplyTo != "support@example.com" {
		t.Errorf("ReplyTo = %q", got.ReplyTo)
	}
	if got.Subject != "Welcome" || got.Html != "<p>Hi</p>" || got.Text != "Hi" {
		t.Errorf("body fields = %q/%q/%q", got.Subject, got.Html, got.Text)
	}
	if len(got.Tags) != 1 || got.Tags[0].Name != "campaign" || got.Tags[0].Value != "onboarding" {
		t.Errorf("Tags = %v", got.Tags)
	}
}

func TestSend_WrapsAPIFailure(t *testing.T) {
	s := newTestSender(&mockEmails{
		sendFunc: func(_ context.Context, _ *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
			return nil, errors.New("401 invalid api key")
		},
	})

	_, err := s.Send(context.Background(), &email.Message{
		To:      []email.Address{{Email: "user@example.com"}},
		Subject: "x",
		Text:    "x",
	})
	if err == nil {
		t.Fatal("Send should fail")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeExternalService {
		t.Errorf("error = %v, want EXTERNAL_SERVICE_ERROR", err)
	}
	if !appErr.Retryable {
		t.Error("external service errors should be retryable")
	}
}
