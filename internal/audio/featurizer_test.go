package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sublign/internal/config"
	"sublign/internal/media"
	"sublign/internal/media/ffprobe"
	"sublign/internal/services"
)

func featurizerConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	return &cfg
}

func mediaItem(t *testing.T, dir, name string) *media.Item {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("container"), 0o644); err != nil {
		t.Fatalf("write media file: %v", err)
	}
	item, err := media.NewItem(path)
	if err != nil {
		t.Fatalf("NewItem(%s): %v", name, err)
	}
	return item
}

func audioProbe(duration string) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{{Index: 1, CodecType: "audio", CodecName: "aac"}},
		Format:  ffprobe.Format{Duration: duration},
	}
}

func TestFeaturizeProducesFeatures(t *testing.T) {
	cfg := featurizerConfig(t)
	item := mediaItem(t, t.TempDir(), "movie.mkv")

	restoreProbe := SetProbeForTests(func(context.Context, string, string) (ffprobe.Result, error) {
		return audioProbe("2.0"), nil
	})
	defer restoreProbe()

	var capSeconds int
	restoreExtract := SetExtractForTests(func(_ context.Context, _ string, _ string, rate, maxSeconds int, dest string) error {
		capSeconds = maxSeconds
		writeTestWAV(t, dest, rate, 1, sineSamples(rate, 440, 1, 0.5))
		return nil
	})
	defer restoreExtract()

	featurizer := NewFeaturizer(cfg, nil)
	features, err := featurizer.Featurize(context.Background(), item)
	if err != nil {
		t.Fatalf("Featurize returned error: %v", err)
	}
	wantFrames := 1 + cfg.Audio.SampleRate/cfg.Audio.HopLength
	if features.Frames() != wantFrames {
		t.Errorf("expected %d frames, got %d", wantFrames, features.Frames())
	}
	if capSeconds != 2 {
		t.Errorf("expected transcode capped at probed duration 2s, got %d", capSeconds)
	}

	leftovers, err := filepath.Glob(filepath.Join(cfg.Paths.WorkDir, "*.wav"))
	if err != nil {
		t.Fatalf("glob work dir: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("expected temporary wav removed, found %v", leftovers)
	}
}

func TestFeaturizeKeepsConfiguredCapForLongMedia(t *testing.T) {
	cfg := featurizerConfig(t)
	item := mediaItem(t, t.TempDir(), "show.mp4")

	restoreProbe := SetProbeForTests(func(context.Context, string, string) (ffprobe.Result, error) {
		return audioProbe("7200.0"), nil
	})
	defer restoreProbe()

	var capSeconds int
	restoreExtract := SetExtractForTests(func(_ context.Context, _ string, _ string, rate, maxSeconds int, dest string) error {
		capSeconds = maxSeconds
		writeTestWAV(t, dest, rate, 1, sineSamples(rate, 440, 0.5, 0.5))
		return nil
	})
	defer restoreExtract()

	if _, err := NewFeaturizer(cfg, nil).Featurize(context.Background(), item); err != nil {
		t.Fatalf("Featurize returned error: %v", err)
	}
	if capSeconds != cfg.Audio.MaxTranscodeSeconds {
		t.Errorf("expected configured cap %d, got %d", cfg.Audio.MaxTranscodeSeconds, capSeconds)
	}
}

func TestFeaturizeRejectsMediaWithoutAudio(t *testing.T) {
	cfg := featurizerConfig(t)
	item := mediaItem(t, t.TempDir(), "silent.avi")

	restoreProbe := SetProbeForTests(func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video"}}}, nil
	})
	defer restoreProbe()

	extracted := false
	restoreExtract := SetExtractForTests(func(context.Context, string, string, int, int, string) error {
		extracted = true
		return nil
	})
	defer restoreExtract()

	_, err := NewFeaturizer(cfg, nil).Featurize(context.Background(), item)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if extracted {
		t.Error("expected no transcode for media without audio")
	}
}

func TestFeaturizeWrapsProbeFailure(t *testing.T) {
	cfg := featurizerConfig(t)
	item := mediaItem(t, t.TempDir(), "broken.flv")

	restoreProbe := SetProbeForTests(func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{}, errors.New("ffprobe exploded")
	})
	defer restoreProbe()

	_, err := NewFeaturizer(cfg, nil).Featurize(context.Background(), item)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestFeaturizeCleansUpAfterBadTranscode(t *testing.T) {
	cfg := featurizerConfig(t)
	item := mediaItem(t, t.TempDir(), "movie.wmv")

	restoreProbe := SetProbeForTests(func(context.Context, string, string) (ffprobe.Result, error) {
		return audioProbe("1.0"), nil
	})
	defer restoreProbe()

	restoreExtract := SetExtractForTests(func(_ context.Context, _ string, _ string, _, _ int, dest string) error {
		return os.WriteFile(dest, []byte("not audio"), 0o644)
	})
	defer restoreExtract()

	_, err := NewFeaturizer(cfg, nil).Featurize(context.Background(), item)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}

	leftovers, globErr := filepath.Glob(filepath.Join(cfg.Paths.WorkDir, "*.wav"))
	if globErr != nil {
		t.Fatalf("glob work dir: %v", globErr)
	}
	if len(leftovers) != 0 {
		t.Errorf("expected temporary wav removed after failure, found %v", leftovers)
	}
}

func TestFeaturizeRejectsNilItem(t *testing.T) {
	cfg := featurizerConfig(t)
	_, err := NewFeaturizer(cfg, nil).Featurize(context.Background(), nil)
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}
