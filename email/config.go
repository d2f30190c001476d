package email

import (
	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/validation"
)

// Provider constants for supported email transports.
const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
)

// Default configuration values.
const (
	DefaultSMTPPort = 587
	DefaultFromName = "Pelatform"
)

// Config holds email configuration. Provider selects the transport; each
// transport reads only its own credential fields.
type Config struct {
	// Provider selects the transport: resend or smtp.
	Provider string `mapstructure:"provider" json:"provider" validate:"omitempty,oneof=resend smtp"`

	// From is the default sender address applied to messages that carry none.
	From string `mapstructure:"from" json:"from" validate:"omitempty,email"`
	// FromName is the default sender display name.
	FromName string `mapstructure:"from_name" json:"from_name"`
	// ReplyTo is the default reply-to address.
	ReplyTo string `mapstructure:"reply_to" json:"reply_to" validate:"omitempty,email"`

	// --- Resend ---

	// APIKey is the Resend API key.
	APIKey string `mapstructure:"api_key" json:"api_key"`

	// --- SMTP ---

	SMTPHost     string `mapstructure:"smtp_host" json:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port" json:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user" json:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password" json:"smtp_password"`
	// SMTPSSL selects implicit TLS instead of STARTTLS. Defaults to true
	// on port 465.
	SMTPSSL bool `mapstructure:"smtp_ssl" json:"smtp_ssl"`

	// Enabled controls whether the email component is active.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults. When no
// provider is named it is inferred from the credentials that are present.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		switch {
		case c.APIKey != "":
			c.Provider = ProviderResend
		case c.SMTPHost != "":
			c.Provider = ProviderSMTP
		}
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = DefaultSMTPPort
	}
	if c.SMTPPort == 465 {
		c.SMTPSSL = true
	}
	if c.FromName == "" {
		c.FromName = DefaultFromName
	}
}

// Validate checks that the configuration is complete for the selected
// transport.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	switch c.Provider {
	case ProviderResend:
		if c.APIKey == "" {
			return apperrors.ConfigError("email: api_key is required for resend provider")
		}
	case ProviderSMTP:
		if c.SMTPHost == "" {
			return apperrors.ConfigError("email: smtp_host is required for smtp provider")
		}
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			return apperrors.ConfigError("email: smtp_port must be a valid port number")
		}
	case "":
		return apperrors.ConfigError("email: no provider configured and none detectable from credentials")
	default:
		return apperrors.ConfigError("email: unsupported provider " + c.Provider)
	}
	return nil
}

// DefaultFrom returns the configured default sender as an Address.
func (c *Config) DefaultFrom() Address {
	return Address{Email: c.From, Name: c.FromName}
}
