package audio

// FeatureMatrix holds cepstral features with one row per coefficient and
// one column per analysis frame. Frames advance by the configured hop, so
// column t covers the audio around t*hop/rate seconds.
type FeatureMatrix struct {
	coefficients int
	frames       int
	data         []float32
}

// NewFeatureMatrix allocates a zeroed matrix of the given shape.
func NewFeatureMatrix(coefficients, frames int) *FeatureMatrix {
	if coefficients < 0 {
		coefficients = 0
	}
	if frames < 0 {
		frames = 0
	}
	return &FeatureMatrix{
		coefficients: coefficients,
		frames:       frames,
		data:         make([]float32, coefficients*frames),
	}
}

// Coefficients returns the number of rows.
func (m *FeatureMatrix) Coefficients() int {
	if m == nil {
		return 0
	}
	return m.coefficients
}

// Frames returns the number of analysis frames.
func (m *FeatureMatrix) Frames() int {
	if m == nil {
		return 0
	}
	return m.frames
}

// At returns the value for the given coefficient row and frame column.
func (m *FeatureMatrix) At(coefficient, frame int) float32 {
	return m.data[coefficient*m.frames+frame]
}

// Set stores a value at the given coefficient row and frame column.
func (m *FeatureMatrix) Set(coefficient, frame int, v float32) {
	m.data[coefficient*m.frames+frame] = v
}

// FrameMajor returns a copy of the matrix flattened frame by frame, the
// layout speech models expect for a (frames, coefficients, 1) input.
func (m *FeatureMatrix) FrameMajor() []float32 {
	if m == nil {
		return nil
	}
	out := make([]float32, m.frames*m.coefficients)
	for t := 0; t < m.frames; t++ {
		for c := 0; c < m.coefficients; c++ {
			out[t*m.coefficients+c] = m.data[c*m.frames+t]
		}
	}
	return out
}
