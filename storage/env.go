package storage

import (
	"github.com/pelatformlabs/toolkits-sub000/config"
	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/util"
)

// Environment variable names for the S3 provider family. Each canonical
// name carries legacy aliases accepted for backward compatibility.
var (
	EnvS3Provider  = []string{"PELATFORM_S3_PROVIDER", "STORAGE_PROVIDER"}
	EnvS3Bucket    = []string{"PELATFORM_S3_BUCKET", "S3_BUCKET"}
	EnvS3Region    = []string{"PELATFORM_S3_REGION", "S3_REGION", "AWS_REGION"}
	EnvS3Endpoint  = []string{"PELATFORM_S3_ENDPOINT", "S3_ENDPOINT"}
	EnvS3AccessKey = []string{"PELATFORM_S3_ACCESS_KEY", "S3_ACCESS_KEY", "AWS_ACCESS_KEY_ID"}
	EnvS3SecretKey = []string{"PELATFORM_S3_SECRET_KEY", "S3_SECRET_KEY", "AWS_SECRET_ACCESS_KEY"}
	EnvS3PublicURL = []string{"PELATFORM_S3_PUBLIC_URL", "S3_PUBLIC_URL"}
)

// EnvMaxFileSize caps upload sizes; accepts human-readable values such as
// "100MB" or a plain byte count.
var EnvMaxFileSize = []string{"PELATFORM_STORAGE_MAX_FILE_SIZE", "STORAGE_MAX_FILE_SIZE"}

// Environment variable names for the Cloudinary provider.
var (
	EnvCloudinaryCloudName = []string{"PELATFORM_CLOUDINARY_CLOUD_NAME", "CLOUDINARY_CLOUD_NAME"}
	EnvCloudinaryAPIKey    = []string{"PELATFORM_CLOUDINARY_API_KEY", "CLOUDINARY_API_KEY"}
	EnvCloudinaryAPISecret = []string{"PELATFORM_CLOUDINARY_API_SECRET", "CLOUDINARY_API_SECRET"}
)

// LoadFromEnv builds a Config from environment variables. The provider is
// taken from PELATFORM_S3_PROVIDER unless Cloudinary credentials are present
// and no S3 provider is named, in which case cloudinary is selected.
//
// Missing required variables produce CONFIG_ERROR errors naming the
// canonical variable, so callers can surface an actionable message.
func LoadFromEnv() (Config, error) {
	provider := config.Env(EnvS3Provider...)
	if provider == "" {
		if config.Env(EnvCloudinaryCloudName...) != "" {
			provider = ProviderCloudinary
		} else {
			provider = DefaultProvider
		}
	}

	cfg := Config{Provider: provider, Enabled: true}

	switch {
	case IsS3Provider(provider):
		bucket, err := config.RequireEnv(EnvS3Bucket[0], EnvS3Bucket[1:]...)
		if err != nil {
			return Config{}, err
		}
		cfg.Bucket = bucket
		cfg.Region = config.Env(EnvS3Region...)
		// Credentials pasted into .env files often carry stray quotes.
		cfg.AccessKey = util.SanitizeEnvValue(config.Env(EnvS3AccessKey...))
		cfg.SecretKey = util.SanitizeEnvValue(config.Env(EnvS3SecretKey...))
		cfg.PublicBaseURL = config.Env(EnvS3PublicURL...)
		if provider == ProviderAWS {
			cfg.Endpoint = config.Env(EnvS3Endpoint...)
		} else {
			endpoint, err := config.RequireEnv(EnvS3Endpoint[0], EnvS3Endpoint[1:]...)
			if err != nil {
				return Config{}, err
			}
			cfg.Endpoint = endpoint
		}
	case provider == ProviderCloudinary:
		report := CheckCloudinaryEnv()
		if !report.OK() {
			return Config{}, apperrors.MissingEnvVar(report.Missing[0])
		}
		cfg.CloudName = config.Env(EnvCloudinaryCloudName...)
		cfg.APIKey = config.Env(EnvCloudinaryAPIKey...)
		cfg.APISecret = config.Env(EnvCloudinaryAPISecret...)
	case provider == ProviderLocal:
		cfg.BasePath = config.Env("PELATFORM_STORAGE_PATH", "STORAGE_PATH")
	}

	cfg.MaxFileSize = util.ParseSize(config.Env(EnvMaxFileSize...), DefaultMaxFileSize)
	cfg.ApplyDefaults()
	return cfg, nil
}

// CheckS3Env reports which required S3 environment variables are missing
// without constructing a config. Region and endpoint are not checked here
// because their requirement depends on the provider.
func CheckS3Env() config.EnvReport {
	return config.CheckEnv(EnvS3Bucket, EnvS3AccessKey, EnvS3SecretKey)
}

// CheckCloudinaryEnv reports which required Cloudinary environment variables
// are missing.
func CheckCloudinaryEnv() config.EnvReport {
	return config.CheckEnv(EnvCloudinaryCloudName, EnvCloudinaryAPIKey, EnvCloudinaryAPISecret)
}
