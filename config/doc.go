// Package config provides configuration loading and validation for the
// pelatform toolkit.
//
// It uses Viper to load configuration from files and environment variables,
// supporting YAML config files, .env files (via godotenv), and environment
// variable overrides. The Env/CheckEnv helpers give the storage and email
// factories a uniform way to read PELATFORM_* variables (with legacy
// aliases) and to report missing configuration as data instead of errors.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("my-service", &cfg)
package config
