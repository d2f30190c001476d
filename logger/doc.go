// Package logger provides structured logging for the pelatform toolkit
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("storage")
//	log.Info("upload complete", logger.Fields("key", "a/b.png"))
package logger
