package syncer

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"sublign/internal/config"
)

// RunLock serializes sync runs that share a working directory so two
// invocations never rewrite the same subtitles concurrently.
type RunLock struct {
	lock *flock.Flock
}

// NewRunLock builds the lock for the configured working directory without
// acquiring it.
func NewRunLock(cfg *config.Config) *RunLock {
	return &RunLock{lock: flock.New(filepath.Join(cfg.Paths.WorkDir, "sublign.lock"))}
}

// Acquire takes the lock, failing immediately when another run holds it.
func (l *RunLock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another sublign run is already in progress (lock %s)", l.lock.Path())
	}
	return nil
}

// Release drops the lock. Safe to call when the lock was never acquired.
func (l *RunLock) Release() error {
	return l.lock.Unlock()
}
