// Package config provides user configuration management for flashpad.
//
// This package manages a YAML-based configuration file that stores user-defined
// metadata for programmers, including nicknames, last known chips, and application
// preferences. The configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/flashpad/config.yaml or $HOME/.config/flashpad/config.yaml
//   - macOS: $HOME/.config/flashpad/config.yaml
//   - Windows: %LOCALAPPDATA%\flashpad\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a successful operation so later commands can default to it
//	registry.RecordOperation("ch341a_spi", "W25Q64.V")
//	registry.SetProgrammerNickname("ch341a_spi", "blue clip")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
