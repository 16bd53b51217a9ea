package align

import (
	"math"
	"testing"
	"time"
)

func TestSecondsPerFrame(t *testing.T) {
	if got := SecondsPerFrame(16000, 512); got != 0.032 {
		t.Errorf("SecondsPerFrame(16000, 512) = %v, want 0.032", got)
	}
}

func TestFrameForTimeRoundsToNearest(t *testing.T) {
	cases := []struct {
		at   time.Duration
		want int
	}{
		{0, 0},
		{32 * time.Millisecond, 1},
		{15 * time.Millisecond, 0},
		{17 * time.Millisecond, 1},
		{48 * time.Millisecond, 2},
		{time.Second, 31},
		{time.Minute, 1875},
	}
	for _, tc := range cases {
		if got := FrameForTime(tc.at, 16000, 512); got != tc.want {
			t.Errorf("FrameForTime(%v) = %d, want %d", tc.at, got, tc.want)
		}
	}
}

func TestFramesForSecondsTruncates(t *testing.T) {
	cases := []struct {
		seconds float64
		want    int
	}{
		{12, 375},
		{12.01, 375},
		{0.05, 1},
		{0.032, 1},
		{0.031, 0},
	}
	for _, tc := range cases {
		if got := FramesForSeconds(tc.seconds, 16000, 512); got != tc.want {
			t.Errorf("FramesForSeconds(%v) = %d, want %d", tc.seconds, got, tc.want)
		}
	}
}

func TestSecondsForFrames(t *testing.T) {
	if got := SecondsForFrames(-31, 16000, 512); math.Abs(got-(-0.992)) > 1e-9 {
		t.Errorf("SecondsForFrames(-31) = %v, want -0.992", got)
	}
	if got := SecondsForFrames(375, 16000, 512); math.Abs(got-12) > 1e-9 {
		t.Errorf("SecondsForFrames(375) = %v, want 12", got)
	}
}

func TestFrameTimeRoundTrip(t *testing.T) {
	frames := []int{0, 1, 2, 31, 62, 100, 375, 1875}
	for _, h := range frames {
		seconds := SecondsForFrames(h, 16000, 512)
		at := time.Duration(seconds * float64(time.Second))
		if got := FrameForTime(at, 16000, 512); got != h {
			t.Errorf("round trip for frame %d gave %d", h, got)
		}
	}
}
