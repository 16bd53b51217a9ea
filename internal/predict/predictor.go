package predict

import (
	"context"

	"sublign/internal/audio"
)

// Predictor scores per-frame speech activity from cepstral features.
// Implementations return one probability in [0, 1] per feature frame.
type Predictor interface {
	Predict(ctx context.Context, features *audio.FeatureMatrix) ([]float64, error)
	// Describe identifies the model for logs and history records.
	Describe() string
	Close() error
}
