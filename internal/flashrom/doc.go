// Package flashrom drives the flashrom command-line tool for chip
// detection, reads, writes and chip queries.
//
// All chip access is delegated to the external flashrom binary; this
// package invokes it via os/exec, captures its textual output, and parses
// the handful of output shapes the workflows depend on. Nothing here
// speaks to programmer hardware directly.
//
// # Architecture
//
//	┌─────────────────┐
//	│ CLI Command     │
//	│ (flashpad)      │
//	└────────┬────────┘
//	         │
//	         v
//	┌─────────────────┐
//	│ Workflow        │  ReadROM / WriteROM / GetChipInfo: sequences
//	│ (ops.go)        │  probes, scratch copies, padding, flashing
//	└────────┬────────┘
//	         │
//	         v
//	┌─────────────────┐
//	│ Executor        │  Runs flashrom with context + timeout, captures
//	│                 │  or streams output
//	└────────┬────────┘
//	         │
//	         v
//	┌─────────────────┐
//	│ Parser          │  Extracts versions, programmer lists, probe
//	│ (regex-based)   │  results and sizes from flashrom's text output
//	└─────────────────┘
//
// # Executor
//
//	config := flashrom.Config{
//	    FlashromPath: "flashrom",
//	    Programmer:   "ch341a_spi",
//	    Timeout:      10 * time.Minute,
//	}
//	exec := flashrom.NewExecutor(config, logger)
//	chips, err := exec.Probe(ctx)
//
// Long operations (Read, Write) stream flashrom's own progress output to
// the terminal; queries capture it silently.
//
// # Workflows
//
// ReadROM dumps a chip and can strip the trailing erased-flash (0xFF)
// padding from the dump. WriteROM flashes an image, converting Intel HEX
// inputs and padding a scratch copy up to the chip size when requested;
// the caller's file is never modified. GetChipInfo assembles a report
// from the identity, size and write-protect queries, optionally measuring
// used space from a scratch dump.
//
// # Error Handling
//
// The package defines specific error types for different failure modes:
//   - ExecutionError: flashrom exited non-zero or failed to start
//   - ParseError: output didn't match the expected format
//   - TimeoutError: the operation exceeded the configured timeout
//   - PrerequisiteError: the flashrom binary is missing or broken
//   - NoChipError / NoProgrammerError: probe and selection failures
//
// All errors include context and unwrap with errors.Unwrap().
//
// # Concurrency
//
// The package is designed for single-threaded use. Each operation holds
// the programmer for its duration and flashrom itself rejects concurrent
// access to the same hardware.
package flashrom
