// Package email provides transactional email sending with pluggable
// transports.
//
// The Sender interface covers a single dispatch; Service layers the
// platform's sending policy on top: default sender and reply-to addresses,
// derived plain-text alternatives, template rendering and hot config
// swapping.
//
// # Transports
//
//   - email/resend: the Resend HTTP API
//   - email/smtp: any SMTP relay
//
// Transports register themselves via RegisterFactory from init(), so
// callers blank-import the ones they want:
//
//	import (
//	    "github.com/pelatformlabs/toolkits-sub000/email"
//	    _ "github.com/pelatformlabs/toolkits-sub000/email/resend"
//	)
//
//	svc, err := email.NewService(email.Config{
//	    Provider: email.ProviderResend,
//	    APIKey:   key,
//	    From:     "no-reply@example.com",
//	}, log)
//
// Configuration can also come from PELATFORM_EMAIL_* / PELATFORM_RESEND_* /
// PELATFORM_SMTP_* environment variables via LoadConfigFromEnv, which
// auto-detects the transport from the credentials present.
package email
