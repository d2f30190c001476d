// Package validation provides input validation for the pelatform toolkit.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for configuration and request records.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    From string `validate:"required,email"`
//	    Name string `validate:"required,min=2"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("bucket", cfg.Bucket)
//	v.OneOf("provider", cfg.Provider, []string{"aws", "minio"})
//	err := v.Validate()
package validation
