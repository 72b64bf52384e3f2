// Package logging provides structured logging for the flashpad CLI.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the tool. It provides both general logging functions
// and specialized functions for flashrom and ROM-file logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (subprocess args, padding deltas)
//   - Info: Normal operations (probes, reads, writes)
//   - Warn: Non-fatal issues (parse fallbacks, retries)
//   - Error: Fatal issues (missing flashrom, failed writes)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Chip probed",
//	    zap.String("programmer", "ch341a_spi"),
//	    zap.String("chip", "W25Q64.V"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogROMFile(path, size, "read")
//	logging.LogPadding(path, "strip", before, after)
//
// # Configuration
//
// Logging is silent by default so CLI output stays clean. Set the
// FLASHPAD_LOG_LEVEL environment variable to enable it:
//
//	FLASHPAD_LOG_LEVEL=debug flashpad probe
//
// Commands initialize it at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
