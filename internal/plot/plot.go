// Package plot renders the loss curve a shift search produced, which is
// the quickest way to judge why a shift was accepted or rejected.
package plot

import (
	"fmt"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"sublign/internal/align"
)

// SaveLossCurve writes a PNG of candidate losses against their shift in
// seconds, highlighting the winning offset.
func SaveLossCurve(path, title string, candidates []align.Candidate, decision align.Decision, sampleRate, hopLength int) error {
	if len(candidates) == 0 {
		return fmt.Errorf("plot loss curve: no candidates to draw")
	}

	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = "shift (s)"
	p.Y.Label.Text = "log loss"
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(candidates))
	for i, c := range candidates {
		points[i].X = align.SecondsForFrames(c.Offset, sampleRate, hopLength)
		points[i].Y = c.Loss
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("plot loss curve: %w", err)
	}
	p.Add(line)

	best, err := plotter.NewScatter(plotter.XYs{{
		X: align.SecondsForFrames(decision.BestOffset, sampleRate, hopLength),
		Y: decision.BestLoss,
	}})
	if err != nil {
		return fmt.Errorf("plot loss curve: %w", err)
	}
	p.Add(best)

	if err := p.Save(20*vg.Centimeter, 10*vg.Centimeter, path); err != nil {
		return fmt.Errorf("plot loss curve: %w", err)
	}
	return nil
}
