package audio

import "testing"

func TestFeatureCacheRoundTrip(t *testing.T) {
	cache := NewFeatureCache()
	if _, ok := cache.Get("/library/movie.mkv"); ok {
		t.Fatal("expected empty cache miss")
	}

	matrix := NewFeatureMatrix(13, 4)
	cache.Put("/library/movie.mkv", matrix)
	got, ok := cache.Get("/library/movie.mkv")
	if !ok || got != matrix {
		t.Fatalf("expected cached matrix back, got %v ok=%v", got, ok)
	}
	if cache.Len() != 1 {
		t.Errorf("expected one entry, got %d", cache.Len())
	}

	cache.Invalidate("/library/movie.mkv")
	if _, ok := cache.Get("/library/movie.mkv"); ok {
		t.Error("expected miss after invalidation")
	}
	if cache.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", cache.Len())
	}
}

func TestFeatureCacheReplacesEntries(t *testing.T) {
	cache := NewFeatureCache()
	first := NewFeatureMatrix(13, 2)
	second := NewFeatureMatrix(13, 8)
	cache.Put("a.mkv", first)
	cache.Put("a.mkv", second)
	got, _ := cache.Get("a.mkv")
	if got != second {
		t.Error("expected replacement to win")
	}
	if cache.Len() != 1 {
		t.Errorf("expected one entry after replacement, got %d", cache.Len())
	}
}

func TestFeatureCacheNilReceiver(t *testing.T) {
	var cache *FeatureCache
	cache.Put("a.mkv", NewFeatureMatrix(1, 1))
	cache.Invalidate("a.mkv")
	if _, ok := cache.Get("a.mkv"); ok {
		t.Error("expected nil cache to miss")
	}
	if cache.Len() != 0 {
		t.Error("expected nil cache length 0")
	}
}
