package plot

import (
	"os"
	"path/filepath"
	"testing"

	"sublign/internal/align"
)

func TestSaveLossCurveWritesPNG(t *testing.T) {
	candidates := []align.Candidate{
		{Offset: -2, Loss: 4.1},
		{Offset: -1, Loss: 3.9},
		{Offset: 0, Loss: 1.2},
		{Offset: 1, Loss: 3.8},
	}
	decision := align.Decision{BestOffset: 0, BestLoss: 1.2}
	path := filepath.Join(t.TempDir(), "movie.srt.losses.png")

	if err := SaveLossCurve(path, "movie.srt", candidates, decision, 16000, 512); err != nil {
		t.Fatalf("SaveLossCurve returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read plot: %v", err)
	}
	if len(raw) < 8 || string(raw[1:4]) != "PNG" {
		t.Errorf("expected PNG output, got %d bytes starting %q", len(raw), raw[:min(len(raw), 8)])
	}
}

func TestSaveLossCurveRequiresCandidates(t *testing.T) {
	err := SaveLossCurve(filepath.Join(t.TempDir(), "out.png"), "movie.srt", nil, align.Decision{}, 16000, 512)
	if err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}
