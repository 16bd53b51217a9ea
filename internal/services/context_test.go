package services_test

import (
	"context"
	"testing"

	"sublign/internal/services"
)

func TestContextRoundTrips(t *testing.T) {
	ctx := context.Background()

	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id on empty context")
	}

	ctx = services.WithRunID(ctx, "run-42")
	ctx = services.WithMedia(ctx, "movie.mkv")
	ctx = services.WithStage(ctx, "featurize")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-42" {
		t.Fatalf("unexpected run id: %q ok=%v", id, ok)
	}
	if media, ok := services.MediaFromContext(ctx); !ok || media != "movie.mkv" {
		t.Fatalf("unexpected media: %q ok=%v", media, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "featurize" {
		t.Fatalf("unexpected stage: %q ok=%v", stage, ok)
	}
}

func TestEmptyValuesAreNotStored(t *testing.T) {
	ctx := services.WithStage(context.Background(), "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected empty stage to be ignored")
	}
}
