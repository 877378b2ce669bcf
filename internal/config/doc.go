// Package config loads, normalizes, and validates inkwell configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/inkwell/config.toml or a
// project-local inkwell.toml. Command-line flags layer on top of the loaded
// values; the run configuration handed to the processor is immutable.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
