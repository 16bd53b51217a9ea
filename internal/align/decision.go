package align

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Decision records how a scored shift search concluded. Confident
// reports the gate on its own; Accepted also reflects safe mode being
// switched off.
type Decision struct {
	Accepted   bool
	Confident  bool
	BestOffset int
	BestLoss   float64
	MeanLoss   float64
	LossStdDev float64
}

// Decide picks the lowest-loss candidate, keeping the earliest offset on
// ties, and applies the confidence gate: the minimum loss must fall
// strictly below the mean minus one standard deviation of all candidate
// losses. With safe disabled the best candidate is accepted regardless.
func Decide(candidates []Candidate, safe bool) (Decision, error) {
	if len(candidates) == 0 {
		return Decision{}, fmt.Errorf("decide shift: no scored candidates")
	}

	best := candidates[0]
	losses := make([]float64, len(candidates))
	for i, c := range candidates {
		losses[i] = c.Loss
		if c.Loss < best.Loss {
			best = c
		}
	}
	mean := stat.Mean(losses, nil)
	std := stat.PopStdDev(losses, nil)
	confident := best.Loss < mean-std

	return Decision{
		Accepted:   confident || !safe,
		Confident:  confident,
		BestOffset: best.Offset,
		BestLoss:   best.Loss,
		MeanLoss:   mean,
		LossStdDev: std,
	}, nil
}
