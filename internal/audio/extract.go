package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ExtractAudio transcodes the first audio stream of source into a mono
// PCM WAV at the requested sample rate. A positive maxSeconds caps the
// transcode so feature extraction stays bounded on long files.
func ExtractAudio(ctx context.Context, ffmpegBinary, source string, sampleRate, maxSeconds int, dest string) error {
	if strings.TrimSpace(ffmpegBinary) == "" {
		return fmt.Errorf("ffmpeg binary not configured")
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
	}
	if maxSeconds > 0 {
		args = append(args, "-t", strconv.Itoa(maxSeconds))
	}
	args = append(args,
		"-vn", "-sn", "-dn",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-c:a", "pcm_s16le",
		dest,
	)

	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg transcode: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
