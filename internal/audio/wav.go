package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// DecodeWAV reads a PCM WAV file into mono float32 samples scaled to
// [-1, 1] and reports the file's sample rate.
func DecodeWAV(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("decode wav: %s is not a valid wav file", path)
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav: %w", err)
	}
	if buf.Format == nil {
		return nil, 0, fmt.Errorf("decode wav: missing format header")
	}
	if buf.Format.NumChannels != 1 {
		return nil, 0, fmt.Errorf("decode wav: expected mono, got %d channels", buf.Format.NumChannels)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))
	samples := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float32(s) / scale
	}
	return samples, buf.Format.SampleRate, nil
}
