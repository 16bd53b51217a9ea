package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStubFFmpeg(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub ffmpeg: %v", err)
	}
	return path
}

func TestExtractAudioBuildsCommand(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	stub := writeStubFFmpeg(t, dir, fmt.Sprintf("echo \"$@\" > %q", argsFile))

	dest := filepath.Join(dir, "out.wav")
	if err := ExtractAudio(context.Background(), stub, "/library/movie.mkv", 16000, 30, dest); err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}

	recorded, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	args := strings.TrimSpace(string(recorded))
	for _, want := range []string{
		"-i /library/movie.mkv",
		"-t 30",
		"-ac 1",
		"-ar 16000",
		"-c:a pcm_s16le",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q: %s", want, args)
		}
	}
	if !strings.HasSuffix(args, dest) {
		t.Errorf("expected destination as final argument, got %s", args)
	}
	if strings.Index(args, "-i ") < strings.Index(args, "-loglevel") {
		t.Errorf("expected input after global flags, got %s", args)
	}
}

func TestExtractAudioSkipsCapWhenUnbounded(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	stub := writeStubFFmpeg(t, dir, fmt.Sprintf("echo \"$@\" > %q", argsFile))

	if err := ExtractAudio(context.Background(), stub, "in.mkv", 16000, 0, filepath.Join(dir, "out.wav")); err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}
	recorded, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	if strings.Contains(string(recorded), "-t ") {
		t.Errorf("expected no duration cap, got %s", recorded)
	}
}

func TestExtractAudioWrapsFailureOutput(t *testing.T) {
	dir := t.TempDir()
	stub := writeStubFFmpeg(t, dir, "echo \"no such stream\" >&2\nexit 3")

	err := ExtractAudio(context.Background(), stub, "in.mkv", 16000, 0, filepath.Join(dir, "out.wav"))
	if err == nil {
		t.Fatal("expected error from failing ffmpeg")
	}
	if !strings.Contains(err.Error(), "ffmpeg transcode") {
		t.Errorf("expected transcode context in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no such stream") {
		t.Errorf("expected captured stderr in error, got %v", err)
	}
}

func TestExtractAudioRequiresBinary(t *testing.T) {
	if err := ExtractAudio(context.Background(), "  ", "in.mkv", 16000, 0, "out.wav"); err == nil {
		t.Fatal("expected error for missing ffmpeg binary")
	}
}
