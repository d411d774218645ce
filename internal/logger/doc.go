// Package logger provides a simple, thread-safe logging facility.
//
// The logger supports four levels: Debug, Info, Warn, and Error.
// Each log entry includes a timestamp, level, optional source tag
// (worker ID, component name), and message.
//
// # Basic Usage
//
// Using the default logger:
//
//	logger.Info("", "Pool started")
//	logger.Info("worker-1", "Executing request")
//	logger.Error("worker-1", "Failed: %v", err)
//
// Creating a custom logger:
//
//	l := logger.New(os.Stderr, logger.LevelDebug)
//	l.Debug("worker-1", "Debug message")
//
// # Log Levels
//
// Messages below the configured level are filtered:
//   - LevelDebug: all messages
//   - LevelInfo: Info, Warn, Error
//   - LevelWarn: Warn, Error
//   - LevelError: Error only
//
// ParseLevel converts a name such as "debug" or "warn" to a Level, for use
// with command-line flags and config files.
//
// # Thread Safety
//
// All logging operations are protected by a mutex and safe for concurrent use.
package logger
