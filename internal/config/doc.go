// Package config loads, normalizes, and validates perch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: conflict policy and destination layout for organize runs,
// the recognized media extension set, sidecar merge behavior, run history
// retention, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
