// Package config loads, normalizes, and validates audiocatalog configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts) and
// reads TOML files. Settings split into a [scan] section consumed by the
// scan pipeline and a [logging] section consumed by internal/logging.
//
// Always obtain settings through this package so downstream code receives
// lower-cased extensions, canonical log formats, and clear validation errors.
package config
