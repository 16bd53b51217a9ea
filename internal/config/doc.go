// Package config loads, normalizes, and validates sublign configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SUBLIGN_MODEL. The Config type centralizes every knob the CLI needs, from
// MFCC frame geometry to the shift search margin, so nothing downstream bakes
// in its own constants.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
