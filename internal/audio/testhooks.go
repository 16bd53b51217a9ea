package audio

import (
	"context"

	"sublign/internal/media/ffprobe"
)

// SetProbeForTests overrides the ffprobe runner during tests.
func SetProbeForTests(fn func(context.Context, string, string) (ffprobe.Result, error)) func() {
	previous := probeMedia
	probeMedia = fn
	return func() {
		probeMedia = previous
	}
}

// SetExtractForTests overrides the ffmpeg transcode during tests.
func SetExtractForTests(fn func(context.Context, string, string, int, int, string) error) func() {
	previous := extractAudio
	extractAudio = fn
	return func() {
		extractAudio = previous
	}
}
