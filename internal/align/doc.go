// Package align searches for the whole-frame shift that best lines up
// subtitle cues with predicted speech activity. Shifts are scored by
// binary cross entropy over a margin-trimmed core region and accepted
// only when the best loss stands out from the candidate distribution.
package align
