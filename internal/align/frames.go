package align

import (
	"math"
	"time"
)

// SecondsPerFrame returns the span one analysis frame covers. With the
// default 16 kHz rate and 512-sample hop that is 32 ms.
func SecondsPerFrame(sampleRate, hopLength int) float64 {
	return float64(hopLength) / float64(sampleRate)
}

// FrameForTime maps a cue timestamp onto the analysis frame grid,
// rounding to the nearest frame.
func FrameForTime(d time.Duration, sampleRate, hopLength int) int {
	return int(math.Round(d.Seconds() / SecondsPerFrame(sampleRate, hopLength)))
}

// SecondsForFrames converts a whole-frame offset into seconds.
func SecondsForFrames(frames, sampleRate, hopLength int) float64 {
	return float64(frames) * SecondsPerFrame(sampleRate, hopLength)
}

// FramesForSeconds converts a margin in seconds into whole frames,
// truncating any fractional frame.
func FramesForSeconds(seconds float64, sampleRate, hopLength int) int {
	return int(seconds / SecondsPerFrame(sampleRate, hopLength))
}
