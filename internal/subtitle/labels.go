package subtitle

import (
	"sublign/internal/align"
	"sublign/internal/services"
)

// Labels projects the track's cues onto the analysis frame grid. The
// result has exactly one element per feature frame, 1.0 for frames any
// cue covers and 0.0 elsewhere. Cues extending past the analysed audio
// are silently clipped, which happens whenever media longer than the
// transcode cap carries late subtitles.
func (t *Track) Labels(frames, sampleRate, hopLength int) ([]float64, error) {
	if frames < 0 {
		return nil, services.Wrap(services.ErrPrecondition, "subtitle", "labels",
			"negative frame count", nil)
	}
	labels := make([]float64, frames)
	for _, entry := range t.Entries() {
		start := align.FrameForTime(entry.Start, sampleRate, hopLength)
		end := align.FrameForTime(entry.End, sampleRate, hopLength) + 1
		if start < 0 {
			start = 0
		}
		for i := start; i < end && i < len(labels); i++ {
			labels[i] = 1
		}
	}
	return labels, nil
}
