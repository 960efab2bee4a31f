// Package logging provides structured logging for the rffetap tool.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the tool. Logging is silent by default so that
// decode output on stdout stays parseable; set RFFETAP_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (capture bytes, parser internals)
//   - Info: Normal operations (captures loaded, decode sessions, clients)
//   - Warn: Non-fatal issues (dropped annotations, slow clients)
//   - Error: Fatal issues (startup failures, unreadable captures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Capture loaded",
//	    zap.String("path", "bus.csv"),
//	    zap.Int("samples", 48000),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogCaptureLoaded(path, "csv", len(samples))
//	logging.LogDecodeSession(path, samples, annotations, warnings, elapsed)
//	logging.LogClient(remoteAddr, "websocket_connected")
//	logging.LogAnnotationDrop(remoteAddr, dropped)
//
// # Configuration
//
// Initialize logging at command startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Log output goes to stderr so it never interleaves with decoded
// annotations on stdout.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
