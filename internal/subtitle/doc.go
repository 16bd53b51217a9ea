// Package subtitle reads, shifts, and rewrites SRT files and projects
// their cues onto the audio analysis frame grid.
package subtitle
