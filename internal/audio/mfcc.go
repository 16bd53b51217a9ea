package audio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"sublign/internal/config"
)

// logFloor keeps mel energies away from log(0) on silent frames.
const logFloor = 1e-10

// ComputeMFCC turns mono samples into mel frequency cepstral coefficients.
// Frames are centered, so the matrix has 1 + len(samples)/hop columns and
// column t describes the audio around t*hop/rate seconds.
func ComputeMFCC(samples []float32, cfg config.Audio) (*FeatureMatrix, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("compute mfcc: no audio samples")
	}
	if cfg.SampleRate <= 0 || cfg.HopLength <= 0 || cfg.FFTSize <= 0 || cfg.MelBands <= 0 || cfg.Coefficients <= 0 {
		return nil, fmt.Errorf("compute mfcc: invalid analysis parameters")
	}
	if cfg.Coefficients > cfg.MelBands {
		return nil, fmt.Errorf("compute mfcc: %d coefficients exceed %d mel bands", cfg.Coefficients, cfg.MelBands)
	}

	n := cfg.FFTSize
	hop := cfg.HopLength
	frames := 1 + len(samples)/hop

	win := hannWindow(n)
	fft := fourier.NewFFT(n)
	filters := melFilterbank(cfg.SampleRate, n, cfg.MelBands)
	basis := dctBasis(cfg.Coefficients, cfg.MelBands)

	matrix := NewFeatureMatrix(cfg.Coefficients, frames)
	buf := make([]float64, n)
	spec := make([]complex128, n/2+1)
	power := make([]float64, n/2+1)
	logMel := make([]float64, cfg.MelBands)
	pad := n / 2

	for t := 0; t < frames; t++ {
		start := t*hop - pad
		for k := 0; k < n; k++ {
			buf[k] = float64(sampleAt(samples, start+k)) * win[k]
		}
		fft.Coefficients(spec, buf)
		for k, c := range spec {
			power[k] = real(c)*real(c) + imag(c)*imag(c)
		}
		for m, filter := range filters {
			energy := 0.0
			for k, w := range filter {
				if w != 0 {
					energy += w * power[k]
				}
			}
			if energy < logFloor {
				energy = logFloor
			}
			logMel[m] = math.Log(energy)
		}
		for c, row := range basis {
			v := 0.0
			for m, w := range row {
				v += w * logMel[m]
			}
			matrix.Set(c, t, float32(v))
		}
	}
	return matrix, nil
}

// sampleAt reads samples with reflection at both edges so centered frames
// stay defined near the boundaries.
func sampleAt(samples []float32, i int) float32 {
	n := len(samples)
	if n == 1 {
		return samples[0]
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return samples[i]
}

func hannWindow(n int) []float64 {
	if n == 1 {
		return []float64{1}
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// melFilterbank builds triangular filters on the HTK mel scale covering
// 0..sampleRate/2 across the positive FFT bins.
func melFilterbank(sampleRate, fftSize, bands int) [][]float64 {
	bins := fftSize/2 + 1
	maxMel := hzToMel(float64(sampleRate) / 2)
	edges := make([]int, bands+2)
	for j := range edges {
		hz := melToHz(maxMel * float64(j) / float64(bands+1))
		edges[j] = int(math.Floor(float64(fftSize+1) * hz / float64(sampleRate)))
		if edges[j] >= bins {
			edges[j] = bins - 1
		}
	}

	filters := make([][]float64, bands)
	for m := range filters {
		filter := make([]float64, bins)
		left, center, right := edges[m], edges[m+1], edges[m+2]
		for k := left + 1; k < center; k++ {
			filter[k] = float64(k-left) / float64(center-left)
		}
		if right > center {
			for k := center; k <= right; k++ {
				filter[k] = float64(right-k) / float64(right-center)
			}
		}
		filters[m] = filter
	}
	return filters
}

// dctBasis returns the orthonormal type-II DCT rows that map log mel
// energies to cepstral coefficients.
func dctBasis(coefficients, bands int) [][]float64 {
	basis := make([][]float64, coefficients)
	scale := math.Sqrt(2 / float64(bands))
	for i := range basis {
		row := make([]float64, bands)
		for m := range row {
			row[m] = scale * math.Cos(math.Pi*float64(i)*(2*float64(m)+1)/(2*float64(bands)))
		}
		if i == 0 {
			for m := range row {
				row[m] /= math.Sqrt2
			}
		}
		basis[i] = row
	}
	return basis
}
