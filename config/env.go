package config

import (
	"os"
	"strconv"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
)

// EnvReport summarizes the state of a set of environment variables.
// Validation helpers return a report as data rather than failing, so
// callers can decide whether a partially configured provider is an error.
type EnvReport struct {
	// Missing lists required variables that are not set (or empty).
	Missing []string
	// Invalid maps variable names to a reason they failed validation.
	Invalid map[string]string
}

// OK reports whether every required variable was present and valid.
func (r EnvReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Invalid) == 0
}

// AddInvalid records a validation failure for a variable.
func (r *EnvReport) AddInvalid(name, reason string) {
	if r.Invalid == nil {
		r.Invalid = make(map[string]string)
	}
	r.Invalid[name] = reason
}

// Env returns the value of the first set (non-empty) variable among names.
// Later names act as legacy aliases for the first.
func Env(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// EnvBool parses the first set variable among names as a boolean.
// Unset or unparseable values return the fallback.
func EnvBool(fallback bool, names ...string) bool {
	v := Env(names...)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// EnvInt parses the first set variable among names as an int.
// Unset or unparseable values return the fallback.
func EnvInt(fallback int, names ...string) int {
	v := Env(names...)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// RequireEnv returns the value of name, or a CONFIG_ERROR naming the
// missing variable. Aliases are consulted in order; the error always names
// the canonical (first) variable.
func RequireEnv(name string, aliases ...string) (string, error) {
	if v := Env(append([]string{name}, aliases...)...); v != "" {
		return v, nil
	}
	return "", apperrors.MissingEnvVar(name)
}

// CheckEnv builds an EnvReport for a set of required variables.
// Each entry may carry aliases: the variable counts as present when any
// alias is set, but the report always names the canonical variable.
func CheckEnv(required ...[]string) EnvReport {
	var report EnvReport
	for _, names := range required {
		if len(names) == 0 {
			continue
		}
		if Env(names...) == "" {
			report.Missing = append(report.Missing, names[0])
		}
	}
	return report
}
