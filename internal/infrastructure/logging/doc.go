// Package logging provides structured logging for the Otodata bridge.
//
// It wraps Go's standard log/slog package to give every component the same
// structured output with service/version default fields.
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("tank discovered", "serial", serial)
//	logger.Error("mqtt connect failed", "error", err)
//
// Never log broker credentials or the InfluxDB token.
package logging
