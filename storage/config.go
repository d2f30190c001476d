package storage

import (
	"errors"
	"fmt"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/util"
)

// Provider constants for supported storage backends. The S3 family shares
// one implementation parameterized by endpoint and URL shape.
const (
	ProviderAWS          = "aws"
	ProviderCloudflareR2 = "cloudflare-r2"
	ProviderMinIO        = "minio"
	ProviderDigitalOcean = "digitalocean"
	ProviderSupabase     = "supabase"
	ProviderCustom       = "custom"
	ProviderCloudinary   = "cloudinary"
	ProviderLocal        = "local"
)

// Default configuration values.
const (
	DefaultProvider    = ProviderLocal
	DefaultBasePath    = "/tmp/pelatform-storage"
	DefaultRegion      = "us-east-1"
	DefaultMaxFileSize = int64(100 * 1024 * 1024) // 100 MB
)

// S3Providers lists the discriminants served by the S3-compatible backend.
var S3Providers = []string{
	ProviderAWS, ProviderCloudflareR2, ProviderMinIO,
	ProviderDigitalOcean, ProviderSupabase, ProviderCustom,
}

// IsS3Provider reports whether name maps onto the S3-compatible backend.
func IsS3Provider(name string) bool {
	return util.Contains(S3Providers, name)
}

// Config holds storage configuration. It is a tagged union: Provider selects
// the backend, and each backend reads only its own fields. The struct is
// read at construction time and never re-validated per call.
type Config struct {
	// Provider selects the storage backend.
	Provider string `mapstructure:"provider" json:"provider"`

	// --- S3 family ---

	// Bucket is the bucket name.
	Bucket string `mapstructure:"bucket" json:"bucket"`

	// Region is the provider region (AWS region, DO region slug, "auto" for R2).
	Region string `mapstructure:"region" json:"region"`

	// Endpoint is a custom S3-compatible endpoint. Required for
	// cloudflare-r2, minio, digitalocean, supabase and custom; ignored for aws.
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`

	// AccessKey and SecretKey are static credentials. When both are empty
	// the AWS default credential chain applies.
	AccessKey string `mapstructure:"access_key" json:"access_key"`
	SecretKey string `mapstructure:"secret_key" json:"secret_key"`

	// ForcePathStyle forces path-style addressing. Non-AWS endpoints get it
	// regardless.
	ForcePathStyle bool `mapstructure:"force_path_style" json:"force_path_style"`

	// PublicBaseURL overrides the derived public URL prefix (e.g. a CDN
	// domain in front of the bucket).
	PublicBaseURL string `mapstructure:"public_base_url" json:"public_base_url"`

	// --- Cloudinary ---

	CloudName string `mapstructure:"cloud_name" json:"cloud_name"`
	APIKey    string `mapstructure:"api_key" json:"api_key"`
	APISecret string `mapstructure:"api_secret" json:"api_secret"`

	// --- Local filesystem ---

	// BasePath is the root directory for local storage.
	BasePath string `mapstructure:"base_path" json:"base_path"`

	// --- Shared ---

	// MaxFileSize is the maximum allowed upload size in bytes.
	MaxFileSize int64 `mapstructure:"max_file_size" json:"max_file_size"`

	// Enabled controls whether the storage component is active.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
}

// Validate checks that the configuration is complete for the selected
// provider. It returns a CONFIG_ERROR wrapping every missing field.
func (c *Config) Validate() error {
	switch {
	case c.Provider == ProviderLocal:
		if c.BasePath == "" {
			return apperrors.ConfigError("storage: base_path is required for local provider")
		}
	case IsS3Provider(c.Provider):
		var errs []error
		if c.Bucket == "" {
			errs = append(errs, errors.New("bucket is required"))
		}
		if c.Region == "" {
			errs = append(errs, errors.New("region is required"))
		}
		if c.Provider != ProviderAWS && c.Endpoint == "" {
			errs = append(errs, fmt.Errorf("endpoint is required for %s", c.Provider))
		}
		if (c.AccessKey == "") != (c.SecretKey == "") {
			errs = append(errs, errors.New("access_key and secret_key must be set together"))
		}
		if len(errs) > 0 {
			return apperrors.ConfigError(
				fmt.Sprintf("storage: invalid %s config: %v", c.Provider, errors.Join(errs...)))
		}
	case c.Provider == ProviderCloudinary:
		var errs []error
		if c.CloudName == "" {
			errs = append(errs, errors.New("cloud_name is required"))
		}
		if c.APIKey == "" {
			errs = append(errs, errors.New("api_key is required"))
		}
		if c.APISecret == "" {
			errs = append(errs, errors.New("api_secret is required"))
		}
		if len(errs) > 0 {
			return apperrors.ConfigError(
				fmt.Sprintf("storage: invalid cloudinary config: %v", errors.Join(errs...)))
		}
	default:
		return apperrors.ConfigError(fmt.Sprintf("storage: unsupported provider %q", c.Provider))
	}
	return nil
}

// GetBucket implements BucketDescriber for startup summaries.
func (c *Config) GetBucket() string { return c.Bucket }
