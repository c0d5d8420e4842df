// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of credentials (API keys, bearer tokens, passwords)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log output:
//   - HTTP headers (Authorization, Cookie, X-Api-Key)
//   - Analysis service API keys, by attribute name or by their sk- prefix
//   - Bearer tokens embedded in error messages
//   - Secret values detected by pattern matching (JWTs, private keys)
//
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure of secrets in logs that may be shared or stored.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("rendering report",
//	    "input", "report.json",
//	    "api_key", "sk-ant-api03-...", // Will be sanitized
//	)
//
//	slog.SetDefault(logger)
package log
