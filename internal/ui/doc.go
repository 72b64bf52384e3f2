// Package ui provides terminal UI components for the flashpad CLI.
//
// This package uses Bubble Tea and Lipgloss to render polished terminal
// output for flashrom operations. Most components follow a "run once and
// exit" pattern - they render output compellingly but don't require user
// interaction. The chip picker is the exception: it runs a short
// interactive session when a probe matches several chip models.
//
// # Architecture
//
// The UI package provides five main component types:
//
//   - Header: Command banner showing operation name and parameters
//   - Progress: Step list showing real-time operation status
//   - Result: Success/failure/warning boxes with styled information
//   - ToolOutput: Raw flashrom output box for verbose mode
//   - ChipSelectModel: Interactive picker for ambiguous probe results
//
// Commands compose these directly via the Print* helpers, which handle
// terminal width detection and spacing.
//
// # Usage Pattern
//
//	ui.PrintCommandHeader("CHIP READ", "flashpad read", map[string]string{
//	    "Programmer": "ch341a_spi",
//	    "Output":     "dump.bin",
//	})
//
//	// ... run the operation, printing steps as they complete ...
//
//	ui.PrintSuccess("Read complete", map[string]string{
//	    "Chip": "W25Q64.V",
//	    "Size": "8 MiB",
//	})
//
// Dangerous operations (flash writes) gate on typed confirmation via
// ConfirmDangerousOperation before any flashrom invocation.
package ui
