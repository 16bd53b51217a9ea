package audio

// FeatureCache keeps computed feature matrices keyed by media path so a
// batch run analyses each file once even when it carries several
// subtitles. Runs process media sequentially, so the cache takes no locks.
type FeatureCache struct {
	entries map[string]*FeatureMatrix
}

// NewFeatureCache returns an empty cache.
func NewFeatureCache() *FeatureCache {
	return &FeatureCache{entries: make(map[string]*FeatureMatrix)}
}

// Get returns the cached matrix for a media path, if any.
func (c *FeatureCache) Get(path string) (*FeatureMatrix, bool) {
	if c == nil {
		return nil, false
	}
	m, ok := c.entries[path]
	return m, ok
}

// Put stores the matrix for a media path, replacing any previous entry.
func (c *FeatureCache) Put(path string, m *FeatureMatrix) {
	if c == nil || m == nil {
		return
	}
	c.entries[path] = m
}

// Invalidate drops the entry for a media path.
func (c *FeatureCache) Invalidate(path string) {
	if c == nil {
		return
	}
	delete(c.entries, path)
}

// Len reports how many media files currently have cached features.
func (c *FeatureCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
