// Package notify pushes run milestones to an ntfy topic when one is
// configured, and quietly does nothing otherwise.
package notify
