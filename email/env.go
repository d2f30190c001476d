package email

import (
	"github.com/pelatformlabs/toolkits-sub000/config"
)

// Environment variable names, each with its legacy aliases.
var (
	EnvProvider = []string{"PELATFORM_EMAIL_PROVIDER", "EMAIL_PROVIDER"}
	EnvFrom     = []string{"PELATFORM_EMAIL_FROM", "EMAIL_FROM"}
	EnvFromName = []string{"PELATFORM_EMAIL_FROM_NAME", "EMAIL_FROM_NAME"}
	EnvReplyTo  = []string{"PELATFORM_EMAIL_REPLY_TO", "EMAIL_REPLY_TO"}

	EnvResendAPIKey = []string{"PELATFORM_RESEND_API_KEY", "RESEND_API_KEY"}

	EnvSMTPHost     = []string{"PELATFORM_SMTP_HOST", "SMTP_HOST"}
	EnvSMTPPort     = []string{"PELATFORM_SMTP_PORT", "SMTP_PORT"}
	EnvSMTPUser     = []string{"PELATFORM_SMTP_USER", "SMTP_USER"}
	EnvSMTPPassword = []string{"PELATFORM_SMTP_PASSWORD", "SMTP_PASSWORD"}
	EnvSMTPSSL      = []string{"PELATFORM_SMTP_SSL", "SMTP_SSL"}
)

// LoadConfigFromEnv builds a Config from environment variables. When no
// provider is named, resend wins if its API key is set, then smtp if a host
// is set. A config with no detectable provider is returned as-is with
// Enabled false, so callers can treat email as an optional capability.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Provider:     config.Env(EnvProvider...),
		From:         config.Env(EnvFrom...),
		FromName:     config.Env(EnvFromName...),
		ReplyTo:      config.Env(EnvReplyTo...),
		APIKey:       config.Env(EnvResendAPIKey...),
		SMTPHost:     config.Env(EnvSMTPHost...),
		SMTPPort:     config.EnvInt(0, EnvSMTPPort...),
		SMTPUser:     config.Env(EnvSMTPUser...),
		SMTPPassword: config.Env(EnvSMTPPassword...),
		SMTPSSL:      config.EnvBool(false, EnvSMTPSSL...),
	}
	cfg.ApplyDefaults()
	cfg.Enabled = cfg.Provider != ""
	return cfg
}

// ValidateResendEnv reports which variables the resend transport still
// needs. The report is data, not an error: a missing optional transport is
// the caller's call.
func ValidateResendEnv() config.EnvReport {
	return config.CheckEnv(EnvResendAPIKey, EnvFrom)
}

// ValidateSMTPEnv reports which variables the smtp transport still needs.
func ValidateSMTPEnv() config.EnvReport {
	report := config.CheckEnv(EnvSMTPHost, EnvSMTPUser, EnvSMTPPassword, EnvFrom)
	if port := config.Env(EnvSMTPPort...); port != "" {
		if config.EnvInt(-1, EnvSMTPPort...) <= 0 {
			report.AddInvalid(EnvSMTPPort[0], "must be a positive integer")
		}
	}
	return report
}
