package email

import (
	"context"
	"time"
)

// Address is an email address with an optional display name.
type Address struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

// String renders the address in RFC 5322 form.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}

// Attachment is a file attached to a message.
type Attachment struct {
	Filename string
	Content  []byte
	// ContentType is derived from the filename when empty.
	ContentType string
}

// Message is a single outbound email. From and ReplyTo may be left empty;
// the service fills them from its configured defaults before dispatch.
type Message struct {
	From    Address
	To      []Address
	Cc      []Address
	Bcc     []Address
	ReplyTo Address
	Subject string
	// HTML is the rich body. Text is the plain-text alternative; when empty
	// the service derives it from HTML.
	HTML string
	Text string

	Headers     map[string]string
	Attachments []Attachment
	// Tags are provider-side labels for analytics, where supported.
	Tags map[string]string
}

// SendResult reports a successful dispatch.
type SendResult struct {
	// MessageID is the provider's identifier for the accepted message.
	MessageID string
	// Provider names the backend that sent it.
	Provider string
	SentAt   time.Time
}

// Sender dispatches messages through one transport. Implementations live in
// the provider subpackages and are registered via RegisterFactory.
type Sender interface {
	Provider() string
	Send(ctx context.Context, msg *Message) (*SendResult, error)
}
