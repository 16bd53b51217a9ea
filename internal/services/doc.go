// Package services defines shared utilities consumed by the sync pipeline and
// its command surface.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, media names, and pipeline
//     stage names for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent across components.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across the tool.
package services
