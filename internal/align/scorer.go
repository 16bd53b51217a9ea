package align

import (
	"fmt"
	"math"
)

// probabilityEpsilon keeps predicted probabilities away from 0 and 1 so
// the cross entropy stays finite.
const probabilityEpsilon = 1e-15

// Candidate pairs a whole-frame shift with its cross entropy against the
// subtitle labels.
type Candidate struct {
	Offset int
	Loss   float64
}

// Score evaluates every whole-frame shift in [-marginFrames, marginFrames)
// by cyclically rolling the labels and scoring them against the speech
// probabilities. Frames within the margin of either edge are excluded so
// every candidate is judged on the same core region.
func Score(predictions, labels []float64, marginFrames int) ([]Candidate, error) {
	if len(predictions) != len(labels) {
		return nil, fmt.Errorf("score shifts: %d predictions against %d labels", len(predictions), len(labels))
	}
	if marginFrames <= 0 {
		return nil, fmt.Errorf("score shifts: margin of %d frames leaves nothing to search", marginFrames)
	}
	n := len(predictions)
	if 2*marginFrames >= n {
		return nil, fmt.Errorf("score shifts: %d frames too short for a %d frame margin", n, marginFrames)
	}

	candidates := make([]Candidate, 0, 2*marginFrames)
	rolled := make([]float64, n)
	core := predictions[marginFrames : n-marginFrames]
	for offset := -marginFrames; offset < marginFrames; offset++ {
		rollInto(rolled, labels, offset)
		loss := crossEntropy(core, rolled[marginFrames:n-marginFrames])
		candidates = append(candidates, Candidate{Offset: offset, Loss: loss})
	}
	return candidates, nil
}

// rollInto writes a cyclic shift of src into dst, moving content forward
// by offset positions so dst[i] = src[(i-offset) mod n].
func rollInto(dst, src []float64, offset int) {
	n := len(src)
	for i := 0; i < n; i++ {
		j := (i - offset) % n
		if j < 0 {
			j += n
		}
		dst[i] = src[j]
	}
}

// crossEntropy is the mean binary cross entropy of clipped predictions
// against 0/1 labels.
func crossEntropy(predictions, labels []float64) float64 {
	total := 0.0
	for i, p := range predictions {
		if p < probabilityEpsilon {
			p = probabilityEpsilon
		} else if p > 1-probabilityEpsilon {
			p = 1 - probabilityEpsilon
		}
		if labels[i] >= 0.5 {
			total -= math.Log(p)
		} else {
			total -= math.Log(1 - p)
		}
	}
	return total / float64(len(predictions))
}
