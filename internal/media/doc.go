// Package media models the media files sublign can analyse.
//
// An Item is constructed from a path whose extension must belong to a closed,
// case-sensitive set of container formats. Items know how to find their
// sidecar .srt subtitles by prefix match, and Discover walks directories to
// collect every supported file for batch runs.
package media
