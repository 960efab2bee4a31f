// Package config provides user configuration management for rffetap.
//
// This package manages a YAML-based configuration file that stores decode
// defaults (address display format, capture layout, channel bit positions)
// and streaming server preferences. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/rffetap/config.yaml or $HOME/.config/rffetap/config.yaml
//   - macOS: $HOME/.config/rffetap/config.yaml
//   - Windows: %LOCALAPPDATA%\rffetap\config.yaml
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//
//	cfg.Decode.AddressFormat = "unshifted"
//	cfg.Serve.Listen = ":9000"
//
//	// Save changes atomically
//	if err := cfg.Save(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// The global config uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
