// Package history stores sync decisions in a local SQLite database so
// users can audit which subtitles were shifted, by how much, and which
// were rejected by the confidence gate.
package history
