// Package config loads, normalizes, and validates the daemon configuration
// file.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. User-facing preferences live in the
// settings document; this file carries the operational knobs the daemon needs
// before any service starts: directories, the control socket, and log output.
//
// Always obtain daemon settings through this package so downstream code
// receives sanitized paths, canonical log formats, and clear validation
// errors.
package config
