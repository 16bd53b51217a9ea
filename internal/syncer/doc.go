// Package syncer orchestrates the alignment pipeline end to end: media
// discovery, audio featurization, speech prediction, shift search, and
// the in-place subtitle rewrite for accepted shifts. Runs are serialized
// with a file lock and each outcome is recorded in history.
package syncer
