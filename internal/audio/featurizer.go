package audio

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"sublign/internal/config"
	"sublign/internal/logging"
	"sublign/internal/media"
	"sublign/internal/media/ffprobe"
	"sublign/internal/services"
)

// probeMedia is the ffprobe runner used before transcoding. Tests override it.
var probeMedia = ffprobe.Inspect

// extractAudio runs the ffmpeg transcode. Tests override it.
var extractAudio = ExtractAudio

// Featurizer produces cepstral feature matrices from media files. It
// transcodes through a temporary WAV in the configured work directory and
// removes the WAV whether or not analysis succeeds.
type Featurizer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewFeaturizer wires a featurizer against the given configuration.
func NewFeaturizer(cfg *config.Config, logger *slog.Logger) *Featurizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Featurizer{cfg: cfg, logger: logging.NewComponentLogger(logger, "audio")}
}

// Featurize probes, transcodes, decodes, and analyses one media file.
func (f *Featurizer) Featurize(ctx context.Context, item *media.Item) (*FeatureMatrix, error) {
	if item == nil {
		return nil, services.Wrap(services.ErrPrecondition, "audio", "featurize", "no media item", nil)
	}

	probe, err := probeMedia(ctx, f.cfg.FFprobeBinary(), item.Path)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "audio", "probe", "ffprobe failed", err)
	}
	if probe.AudioStreamCount() == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "audio", "probe",
			fmt.Sprintf("%s has no audio stream", filepath.Base(item.Path)), nil)
	}

	maxSeconds := f.cfg.Audio.MaxTranscodeSeconds
	if d := probe.DurationSeconds(); d > 0 && d < float64(maxSeconds) {
		maxSeconds = int(math.Ceil(d))
	}

	wavPath := filepath.Join(f.cfg.Paths.WorkDir, fmt.Sprintf("%s-%s.wav", item.Name, uuid.NewString()))
	defer os.Remove(wavPath)

	f.logger.InfoContext(ctx, "transcoding audio",
		logging.String(logging.FieldMedia, item.Path),
		logging.Int("sample_rate", f.cfg.Audio.SampleRate),
		logging.Int("max_seconds", maxSeconds))
	if err := extractAudio(ctx, f.cfg.FFmpegBinary(), item.Path, f.cfg.Audio.SampleRate, maxSeconds, wavPath); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "audio", "transcode", "ffmpeg transcode failed", err)
	}

	samples, rate, err := DecodeWAV(wavPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "audio", "decode", "transcoded wav unreadable", err)
	}
	if rate != f.cfg.Audio.SampleRate {
		return nil, services.Wrap(services.ErrExternalTool, "audio", "decode",
			fmt.Sprintf("transcode produced %d Hz, expected %d Hz", rate, f.cfg.Audio.SampleRate), nil)
	}

	features, err := ComputeMFCC(samples, f.cfg.Audio)
	if err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "audio", "analyse", "feature extraction failed", err)
	}
	f.logger.InfoContext(ctx, "analysed audio",
		logging.String(logging.FieldMedia, item.Path),
		logging.Int("frames", features.Frames()),
		logging.Float64("seconds", float64(len(samples))/float64(f.cfg.Audio.SampleRate)))
	return features, nil
}
